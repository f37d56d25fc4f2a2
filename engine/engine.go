package engine

import (
	"context"
	"sort"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/index"
	"github.com/rushteam/artrec/pkg/dsl"
	"github.com/rushteam/artrec/store"
	"github.com/rushteam/artrec/strategy"
)

// DefaultK 是查询未指定 k 时的默认返回条数。
const DefaultK = 5

// Engine 是聚合调度器：校验查询、保证索引新鲜、按标签分发策略、
// 统一执行 TopK 截断与平局规则、回填标题后返回结果。
//
// 每次 Recommend 都是对当前快照的纯读：快照 + 索引在查询期间不变，
// 任意多查询可并发执行；唯一的变更入口是 Load/reload，由 RecordStore 串行化。
type Engine struct {
	records  *store.RecordStore
	builder  *index.Builder
	scorers  map[core.Strategy]strategy.Strategy
	fallback strategy.Strategy
	filter   *dsl.Filter
	defaultK int
}

// Option 配置 Engine 的可选项。
type Option func(*options)

type options struct {
	cfg      *Config
	features core.FeatureService
}

// WithConfig 使用 YAML 配置（见 config.go）。
func WithConfig(cfg *Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithFeatureService 接入外部物品特征（如 feast.Provider），
// 构建索引时合并进内容特征向量。
func WithFeatureService(fs core.FeatureService) Option {
	return func(o *options) { o.features = fs }
}

// New 创建引擎。records 通常已 Load 过；也可以先建引擎再调 Load。
func New(records *store.RecordStore, opts ...Option) (*Engine, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	cfg := o.cfg
	if cfg == nil {
		cfg = &Config{}
	}

	builder := index.NewBuilder()
	builder.Features = o.features
	if len(cfg.Engine.EventWeights) > 0 {
		builder.EventWeights = cfg.Engine.EventWeights
	}
	if len(cfg.Engine.StopWords) > 0 {
		stop := make(map[string]struct{}, len(cfg.Engine.StopWords))
		for _, w := range cfg.Engine.StopWords {
			stop[w] = struct{}{}
		}
		builder.StopWords = stop
	}

	content := &strategy.ContentBased{Metric: cfg.Engine.ContentMetric}
	collab := &strategy.Collaborative{
		Metric:          cfg.Engine.CollabMetric,
		TopSimilarUsers: cfg.Engine.TopSimilarUsers,
		MinCommonItems:  cfg.Engine.MinCommonItems,
		MinCommonUsers:  cfg.Engine.MinCommonUsers,
	}
	hybrid := &strategy.Hybrid{
		Content:       content,
		Collaborative: collab,
		ContentWeight: cfg.Engine.ContentWeight,
		CollabWeight:  cfg.Engine.CollabWeight,
	}

	e := &Engine{
		records: records,
		builder: builder,
		scorers: map[core.Strategy]strategy.Strategy{
			core.StrategyContentBased:  content,
			core.StrategyCollaborative: collab,
			core.StrategyHybrid:        hybrid,
		},
		defaultK: cfg.Engine.DefaultK,
	}
	if e.defaultK <= 0 {
		e.defaultK = DefaultK
	}
	if cfg.Engine.PopularFallback {
		e.fallback = &strategy.Popular{}
	}
	if cfg.Engine.Filter != "" {
		f, err := dsl.NewFilter(cfg.Engine.Filter)
		if err != nil {
			return nil, err
		}
		e.filter = f
	}
	return e, nil
}

// Load 从三个表格数据源（重新）加载关系，委托给 RecordStore。
// 失败时上一个快照继续服务，索引缓存也不会失效。
func (e *Engine) Load(ctx context.Context, users, items, interactions core.RowSource) error {
	return e.records.Load(ctx, users, items, interactions)
}

// Records 返回底层记录存储（id 枚举等辅助查询用）。
func (e *Engine) Records() *store.RecordStore { return e.records }

// Recommend 是引擎对外唯一的查询面。
//
// 校验失败（调用方错误）在任何计算之前返回：
//   - userId/itemId 都缺失 → MISSING_QUERY_KEY
//   - 未知策略名 → INVALID_STRATEGY
//   - k < 0 → INVALID_K（k == 0 视为未指定，取默认值）
//
// “没有推荐结果”不是错误：合法查询可能得到空列表（冷启动）。
func (e *Engine) Recommend(ctx context.Context, q core.Query) ([]*core.Recommendation, error) {
	if !q.HasKey() {
		return nil, core.ErrMissingQueryKey
	}
	if q.K < 0 {
		return nil, core.ErrInvalidK
	}
	tag, err := core.ParseStrategy(string(q.Strategy))
	if err != nil {
		return nil, err
	}
	k := q.K
	if k == 0 {
		k = e.defaultK
	}

	snap := e.records.Snapshot()
	ix, err := e.builder.Build(ctx, snap)
	if err != nil {
		return nil, err
	}

	scorer := e.scorers[tag]
	recs, err := scorer.Score(ctx, ix, q, k)
	if err != nil {
		return nil, err
	}

	if len(recs) == 0 && e.fallback != nil {
		recs, err = e.fallback.Score(ctx, ix, q, k)
		if err != nil {
			return nil, err
		}
	}

	// 标题回填：元信息缺失的物品保留空标题，不丢弃
	for _, rec := range recs {
		if art, ok := snap.Articles[rec.ItemID]; ok {
			rec.Title = art.Title
		}
	}

	if e.filter != nil {
		kept := recs[:0]
		for _, rec := range recs {
			ok, err := e.filter.Matches(rec, snap.Articles[rec.ItemID], q)
			if err != nil {
				return nil, err
			}
			if ok {
				kept = append(kept, rec)
			}
		}
		recs = kept
	}

	// 截断与平局规则统一在这里兜底执行，策略内部排序只是优化
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].ItemID < recs[j].ItemID
	})
	if len(recs) > k {
		recs = recs[:k]
	}
	return recs, nil
}
