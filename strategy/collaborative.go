package strategy

import (
	"context"
	"sort"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/index"
	"github.com/rushteam/artrec/pkg/utils"
)

// Collaborative 是协同过滤打分策略（Collaborative Filtering）。
//
// 两条路径：
//   - 给定 userId（u2i，User-CF）："兴趣相似的用户，喜欢相似的物品"。
//     按邻接重叠（默认 cosine）找 TopN 相似用户，把邻居的交互物品按相似度
//     加权累加，排除目标用户已交互物品。
//   - 给定 itemId（i2i，Item-CF）："被同一批用户喜欢的物品，相互相似"。
//     用 ItemUsers 倒排表对候选物品算对称相似度，排除查询物品自身。
//
// 冷启动：查询键没有交互历史时返回空列表，不是错误。
type Collaborative struct {
	// Metric 相似度度量方式：cosine / jaccard，默认 cosine
	Metric string

	// TopSimilarUsers 聚合时考虑的 TopN 相似用户，默认 50
	TopSimilarUsers int

	// MinCommonItems 两个用户至少需要多少个共同物品才计算相似度，默认 1
	MinCommonItems int

	// MinCommonUsers 两个物品至少需要多少个共同用户才计算相似度，默认 1
	MinCommonUsers int
}

func (s *Collaborative) Name() string { return "strategy.collaborative" }

func (s *Collaborative) Score(
	_ context.Context,
	ix *index.Indices,
	q core.Query,
	k int,
) ([]*core.Recommendation, error) {
	metric := s.Metric
	if metric == "" {
		metric = "cosine"
	}

	var scores map[string]float64
	// 两个键都给时优先 userId：协同策略围绕用户行为工作
	if q.UserID != "" {
		scores = s.scoreByUser(ix, q.UserID, metric)
	} else {
		scores = s.scoreByItem(ix, q.ItemID, metric)
	}

	out := rankTop(scores, k)
	for _, rec := range out {
		rec.PutLabel("strategy", utils.Label{Value: string(core.StrategyCollaborative), Source: "collaborative"})
		rec.PutLabel("metric", utils.Label{Value: metric, Source: "collaborative"})
	}
	return out, nil
}

type neighbor struct {
	id  string
	sim float64
}

func (s *Collaborative) scoreByUser(ix *index.Indices, userID, metric string) map[string]float64 {
	targetItems := ix.UserItems[userID]
	if len(targetItems) == 0 {
		return nil // 冷启动
	}

	minCommon := s.MinCommonItems
	if minCommon <= 0 {
		minCommon = 1
	}
	topN := s.TopSimilarUsers
	if topN <= 0 {
		topN = 50
	}

	// 邻居从邻接表枚举：只在交互关系里出现过的用户同样可以作为邻居。
	// 确定性由 topNeighbors 的排序保证，与 map 遍历顺序无关。
	neighbors := make([]neighbor, 0)
	for otherID, otherItems := range ix.UserItems {
		if otherID == userID || len(otherItems) == 0 {
			continue
		}
		if commonCount(targetItems, otherItems) < minCommon {
			continue
		}
		if sim := similarity(metric, targetItems, otherItems); sim > 0 {
			neighbors = append(neighbors, neighbor{id: otherID, sim: sim})
		}
	}

	neighbors = topNeighbors(neighbors, topN)

	// score[item] = Σ(邻居相似度 * 邻居对该物品的强度)，跳过已交互物品
	scores := make(map[string]float64)
	for _, nb := range neighbors {
		for itemID, strength := range ix.UserItems[nb.id] {
			if _, seen := targetItems[itemID]; seen {
				continue
			}
			scores[itemID] += nb.sim * strength
		}
	}
	return scores
}

func (s *Collaborative) scoreByItem(ix *index.Indices, itemID, metric string) map[string]float64 {
	targetUsers := ix.ItemUsers[itemID]
	if len(targetUsers) == 0 {
		return nil // 冷启动
	}

	minCommon := s.MinCommonUsers
	if minCommon <= 0 {
		minCommon = 1
	}

	// 候选从倒排表枚举：没有元信息、只有交互的物品同样可以被召回。
	// 确定性由 rankTop 的排序保证。
	scores := make(map[string]float64)
	for candidateID, candidateUsers := range ix.ItemUsers {
		if candidateID == itemID || len(candidateUsers) == 0 {
			continue
		}
		if commonCount(targetUsers, candidateUsers) < minCommon {
			continue
		}
		if sim := similarity(metric, targetUsers, candidateUsers); sim > 0 {
			scores[candidateID] = sim
		}
	}
	return scores
}

// topNeighbors 按相似度降序（同分按 id 升序）截取前 n 个。
func topNeighbors(neighbors []neighbor, n int) []neighbor {
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].sim != neighbors[j].sim {
			return neighbors[i].sim > neighbors[j].sim
		}
		return neighbors[i].id < neighbors[j].id
	})
	if len(neighbors) > n {
		neighbors = neighbors[:n]
	}
	return neighbors
}
