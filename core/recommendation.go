package core

import "github.com/rushteam/artrec/pkg/utils"

// Recommendation 是单条推荐结果：按查询临时生成，不持久化。
// Score 为策略自定义刻度，越高越相关；Labels 记录产出来源（哪个策略、什么度量），
// 用于 explain 与观测。
type Recommendation struct {
	ItemID string
	Score  float64
	// Title 由引擎从记录存储回填；物品元信息缺失时保留空串，不丢弃该条结果。
	Title  string
	Labels map[string]utils.Label
}

func NewRecommendation(itemID string, score float64) *Recommendation {
	return &Recommendation{
		ItemID: itemID,
		Score:  score,
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (r *Recommendation) PutLabel(key string, lbl utils.Label) {
	if r.Labels == nil {
		r.Labels = make(map[string]utils.Label)
	}
	if old, ok := r.Labels[key]; ok {
		r.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	r.Labels[key] = lbl
}

// GetLabel 获取 Label。
func (r *Recommendation) GetLabel(key string) (utils.Label, bool) {
	if r.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := r.Labels[key]
	return lbl, ok
}
