// Package dsl 提供基于 CEL (Common Expression Language) 的结果过滤表达式。
//
// CEL 是 Google 开发的表达式语言，类型安全、高性能、线程安全。
// 引擎用它对推荐结果做声明式后置过滤，例如只保留英文文章：
//
//	item.lang == "en"
//	item.score > 0.2 && label.strategy.contains("collaborative")
//	query.user_id != "" || item.content_type == "HTML"
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/artrec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("query", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Filter 是编译好的过滤表达式，可跨请求并发复用。
type Filter struct {
	expr string
	prg  cel.Program
}

// NewFilter 编译表达式。表达式必须返回布尔值；编译错误在构建期暴露，
// 不留到查询路径。
func NewFilter(expr string) (*Filter, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}
	return &Filter{expr: expr, prg: prg}, nil
}

// Expr 返回原始表达式（日志/错误消息用）。
func (f *Filter) Expr() string { return f.expr }

// Matches 对单条推荐结果求值。
// art 可以为 nil（物品元信息缺失时相关字段为空串）。
func (f *Filter) Matches(rec *core.Recommendation, art *core.Article, q core.Query) (bool, error) {
	out, _, err := f.prg.Eval(buildInput(rec, art, q))
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", f.expr, err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression %q must return boolean, got %T", f.expr, out.Value())
	}
	return result, nil
}

func buildInput(rec *core.Recommendation, art *core.Article, q core.Query) map[string]any {
	item := map[string]any{
		"id":           rec.ItemID,
		"score":        rec.Score,
		"title":        rec.Title,
		"lang":         "",
		"content_type": "",
	}
	if art != nil {
		item["lang"] = art.Lang
		item["content_type"] = art.ContentType
	}

	// label.strategy 直接访问 Label 的 Value；不存在的 key 由表达式自行兜底
	labels := make(map[string]any, len(rec.Labels))
	for k, v := range rec.Labels {
		labels[k] = v.Value
	}

	return map[string]any{
		"item":  item,
		"label": labels,
		"query": map[string]any{
			"user_id":  q.UserID,
			"item_id":  q.ItemID,
			"strategy": string(q.Strategy),
		},
	}
}
