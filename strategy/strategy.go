package strategy

import (
	"context"
	"sort"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/index"
)

// Strategy 是打分策略的最小抽象：输入索引与查询，输出排好序的推荐列表。
// 你可以把它理解为“按标签可替换的策略单元”：content / collaborative / hybrid
// 共用同一契约，新增策略不需要改动调度方。
//
// 契约：
//   - 返回长度 <= k，按分数降序，同分按 itemId 升序（字典序）保证确定性
//   - 查询键没有历史（冷启动）返回空列表，不是错误
type Strategy interface {
	Name() string
	Score(ctx context.Context, ix *index.Indices, q core.Query, k int) ([]*core.Recommendation, error)
}

// rankTop 把 itemId -> score 转成排序列表并截断到 k。
// 排序规则全局统一：分数降序、itemId 升序打破平局。
func rankTop(scores map[string]float64, k int) []*core.Recommendation {
	out := make([]*core.Recommendation, 0, len(scores))
	for itemID, score := range scores {
		out = append(out, core.NewRecommendation(itemID, score))
	}
	sortRecommendations(out)
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

func sortRecommendations(recs []*core.Recommendation) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].ItemID < recs[j].ItemID
	})
}
