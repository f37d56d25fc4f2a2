package strategy

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/index"
	"github.com/rushteam/artrec/pkg/utils"
)

// Hybrid 是混合策略：并发执行内容与协同两路子策略，按权重合并。
//
// 合并规则：
//   - combined = ContentWeight*content + CollabWeight*collaborative
//   - 按 itemId 去重，保留合并后的最大分
//   - 一路为空时优雅降级为另一路的原始排名（不降级为空）
//
// Labels 在去重时按 MergeLabel 累积，一条结果能解释出它来自哪几路。
type Hybrid struct {
	Content       Strategy
	Collaborative Strategy

	// ContentWeight / CollabWeight 两路权重；都为零时取默认 0.5/0.5
	ContentWeight float64
	CollabWeight  float64
}

func (s *Hybrid) Name() string { return "strategy.hybrid" }

func (s *Hybrid) Score(
	ctx context.Context,
	ix *index.Indices,
	q core.Query,
	k int,
) ([]*core.Recommendation, error) {
	var contentRecs, collabRecs []*core.Recommendation
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		contentRecs, err = s.Content.Score(egCtx, ix, q, k)
		return
	})
	eg.Go(func() (err error) {
		collabRecs, err = s.Collaborative.Score(egCtx, ix, q, k)
		return
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// 单路为空：直接采用另一路的排名，分数保持原样
	if len(contentRecs) == 0 {
		return s.labelOnly(collabRecs), nil
	}
	if len(collabRecs) == 0 {
		return s.labelOnly(contentRecs), nil
	}

	wc, wf := s.ContentWeight, s.CollabWeight
	if wc == 0 && wf == 0 {
		wc, wf = 0.5, 0.5
	}

	merged := make(map[string]*core.Recommendation, len(contentRecs)+len(collabRecs))
	for _, rec := range contentRecs {
		combined := core.NewRecommendation(rec.ItemID, wc*rec.Score)
		for key, lbl := range rec.Labels {
			combined.PutLabel(key, lbl)
		}
		merged[rec.ItemID] = combined
	}
	for _, rec := range collabRecs {
		if exist, ok := merged[rec.ItemID]; ok {
			// 两路都命中：加权相加，Labels 合并
			exist.Score += wf * rec.Score
			for key, lbl := range rec.Labels {
				exist.PutLabel(key, lbl)
			}
			continue
		}
		combined := core.NewRecommendation(rec.ItemID, wf*rec.Score)
		for key, lbl := range rec.Labels {
			combined.PutLabel(key, lbl)
		}
		merged[rec.ItemID] = combined
	}

	out := make([]*core.Recommendation, 0, len(merged))
	for _, rec := range merged {
		rec.PutLabel("strategy", utils.Label{Value: string(core.StrategyHybrid), Source: "hybrid"})
		out = append(out, rec)
	}
	sortRecommendations(out)
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out, nil
}

func (s *Hybrid) labelOnly(recs []*core.Recommendation) []*core.Recommendation {
	for _, rec := range recs {
		rec.PutLabel("strategy", utils.Label{Value: string(core.StrategyHybrid), Source: "hybrid"})
	}
	return recs
}
