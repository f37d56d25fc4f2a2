package strategy

import (
	"context"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/index"
	"github.com/rushteam/artrec/pkg/utils"
)

// Popular 是热门兜底策略：按交互次数排序。
// 不参与公开的策略枚举（未知策略名仍是 INVALID_STRATEGY），只在引擎显式
// 开启冷启动兜底时使用；默认关闭，冷启动保持返回空列表的契约。
type Popular struct{}

func (s *Popular) Name() string { return "strategy.popular" }

func (s *Popular) Score(
	_ context.Context,
	ix *index.Indices,
	q core.Query,
	k int,
) ([]*core.Recommendation, error) {
	history := ix.UserItems[q.UserID]

	// 直接枚举热度表：只在交互关系里出现的物品同样参与兜底
	scores := make(map[string]float64, len(ix.ItemPopularity))
	for itemID, n := range ix.ItemPopularity {
		if itemID == q.ItemID {
			continue
		}
		if _, seen := history[itemID]; seen {
			continue
		}
		if n > 0 {
			scores[itemID] = float64(n)
		}
	}

	out := rankTop(scores, k)
	for _, rec := range out {
		rec.PutLabel("strategy", utils.Label{Value: "popular", Source: "fallback"})
	}
	return out, nil
}
