package strategy

import (
	"context"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/index"
	"github.com/rushteam/artrec/pkg/utils"
)

// ContentBased 是基于内容的打分策略（Content-Based Recommendation）。
//
// 核心思想："用户喜欢具有某些特征的物品，推荐具有相似特征的其他物品"
//
// 两条路径：
//   - 给定 itemId（i2i）：按特征重叠（默认 Jaccard）对候选物品排序，排除查询物品自身
//   - 给定 userId（u2i）：把用户交互过的物品特征按强度加权聚合成偏好向量，
//     对全部物品排序，排除已交互物品
//
// 冷启动：查询键没有历史/特征时返回空列表，不猜测。
type ContentBased struct {
	// Metric 相似度度量方式：jaccard / cosine，默认 jaccard
	Metric string
}

func (s *ContentBased) Name() string { return "strategy.content" }

func (s *ContentBased) Score(
	_ context.Context,
	ix *index.Indices,
	q core.Query,
	k int,
) ([]*core.Recommendation, error) {
	metric := s.Metric
	if metric == "" {
		metric = "jaccard"
	}

	var scores map[string]float64
	// 两个键都给时优先 itemId：内容策略天然按物品相似工作
	if q.ItemID != "" {
		scores = s.scoreByItem(ix, q.ItemID, metric)
	} else {
		scores = s.scoreByUser(ix, q.UserID, metric)
	}

	out := rankTop(scores, k)
	for _, rec := range out {
		rec.PutLabel("strategy", utils.Label{Value: string(core.StrategyContentBased), Source: "content"})
		rec.PutLabel("metric", utils.Label{Value: metric, Source: "content"})
	}
	return out, nil
}

func (s *ContentBased) scoreByItem(ix *index.Indices, itemID, metric string) map[string]float64 {
	queryFeats := ix.ItemFeatures[itemID]
	if len(queryFeats) == 0 {
		return nil
	}

	scores := make(map[string]float64)
	for _, candidateID := range ix.ItemIDs {
		if candidateID == itemID {
			continue // 查询物品自身永不出现在结果里
		}
		feats := ix.ItemFeatures[candidateID]
		if len(feats) == 0 {
			continue
		}
		if sim := similarity(metric, queryFeats, feats); sim > 0 {
			scores[candidateID] = sim
		}
	}
	return scores
}

func (s *ContentBased) scoreByUser(ix *index.Indices, userID, metric string) map[string]float64 {
	history := ix.UserItems[userID]
	if len(history) == 0 {
		return nil // 冷启动
	}

	// 偏好向量：交互物品的特征按交互强度加权累加
	profile := make(map[string]float64)
	for itemID, strength := range history {
		for tok, w := range ix.ItemFeatures[itemID] {
			profile[tok] += strength * w
		}
	}
	if len(profile) == 0 {
		return nil
	}

	scores := make(map[string]float64)
	for _, candidateID := range ix.ItemIDs {
		if _, interacted := history[candidateID]; interacted {
			continue // 已交互物品不重复推荐
		}
		feats := ix.ItemFeatures[candidateID]
		if len(feats) == 0 {
			continue
		}
		if sim := similarity(metric, profile, feats); sim > 0 {
			scores[candidateID] = sim
		}
	}
	return scores
}

func similarity(metric string, a, b map[string]float64) float64 {
	switch metric {
	case "cosine":
		return cosineSimilarity(a, b)
	default:
		return jaccardSimilarity(a, b)
	}
}
