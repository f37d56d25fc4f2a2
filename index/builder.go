package index

import (
	"context"
	"sync"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/store"
)

// DefaultImplicitWeight 是没有显式 rating 时单次事件的隐式权重。
const DefaultImplicitWeight = 1.0

// Builder 按快照代数构建并缓存 Indices。
// 缓存是引擎里唯一的性能敏感状态：同一代只构建一次，旧代索引随旧快照
// 被最后一个查询释放后自然回收。
type Builder struct {
	// EventWeights 按事件类型覆盖隐式权重（如 VIEW=1.0、LIKE=2.0）；
	// 未命中的事件类型用 DefaultImplicitWeight。
	EventWeights map[string]float64

	// StopWords 追加停用词（小写）
	StopWords map[string]struct{}

	// Features 可选的外部特征服务（如 Feast），构建时合并进 ItemFeatures
	Features core.FeatureService

	mu     sync.Mutex
	cached *Indices
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Build 返回快照对应的索引；同代命中缓存，换代后重建。
func (b *Builder) Build(ctx context.Context, snap *store.Snapshot) (*Indices, error) {
	if snap == nil {
		return nil, core.NewDomainError(core.ModuleIndex, core.ErrorCodeEmptyRelation,
			"index: no snapshot loaded")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cached != nil && b.cached.Generation == snap.Generation {
		return b.cached, nil
	}

	ix := &Indices{
		Generation:     snap.Generation,
		UserItems:      make(map[string]map[string]float64),
		ItemUsers:      make(map[string]map[string]float64),
		ItemFeatures:   make(map[string]map[string]float64, len(snap.Articles)),
		ItemPopularity: make(map[string]int),
		UserIDs:        snap.UserIDs,
		ItemIDs:        snap.ArticleIDs,
	}

	for _, in := range snap.Interactions {
		w := b.interactionWeight(in)
		userItems := ix.UserItems[in.UserID]
		if userItems == nil {
			userItems = make(map[string]float64)
			ix.UserItems[in.UserID] = userItems
		}
		userItems[in.ItemID] += w

		itemUsers := ix.ItemUsers[in.ItemID]
		if itemUsers == nil {
			itemUsers = make(map[string]float64)
			ix.ItemUsers[in.ItemID] = itemUsers
		}
		itemUsers[in.UserID] += w

		ix.ItemPopularity[in.ItemID]++
	}

	for id, art := range snap.Articles {
		feats := make(map[string]float64)
		for _, tok := range tokenize(art.Title, b.StopWords) {
			feats[tok]++
		}
		for _, tok := range tokenize(art.Text, b.StopWords) {
			feats[tok]++
		}
		if art.Lang != "" {
			feats["lang:"+art.Lang] = 1
		}
		ix.ItemFeatures[id] = feats
	}

	if b.Features != nil {
		if err := b.mergeExternalFeatures(ctx, ix); err != nil {
			return nil, err
		}
	}

	b.cached = ix
	return ix, nil
}

// Invalidate 丢弃缓存（测试与显式重建用）。
func (b *Builder) Invalidate() {
	b.mu.Lock()
	b.cached = nil
	b.mu.Unlock()
}

func (b *Builder) interactionWeight(in core.Interaction) float64 {
	if in.HasRating {
		return in.Rating
	}
	if w, ok := b.EventWeights[in.EventType]; ok {
		return w
	}
	return DefaultImplicitWeight
}

// mergeExternalFeatures 把外部特征叠加到分词特征上。
// 外部服务不可用视为构建失败：索引必须是快照（含外部特征）的确定性函数，
// 静默降级会让同一代得到两套不同索引。
func (b *Builder) mergeExternalFeatures(ctx context.Context, ix *Indices) error {
	feats, err := b.Features.ItemFeatures(ctx, ix.ItemIDs)
	if err != nil {
		return err
	}
	for itemID, ext := range feats {
		dst, ok := ix.ItemFeatures[itemID]
		if !ok {
			continue
		}
		for name, w := range ext {
			dst[name] += w
		}
	}
	return nil
}
