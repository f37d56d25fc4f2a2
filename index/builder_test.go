package index

import (
	"context"
	"testing"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/store"
)

type sliceSource struct {
	name string
	rows []core.Row
}

func (s *sliceSource) Name() string { return s.name }

func (s *sliceSource) Rows(_ context.Context) ([]core.Row, error) { return s.rows, nil }

func loadStore(t *testing.T, interactions []core.Row) *store.RecordStore {
	t.Helper()
	users := &sliceSource{name: "users", rows: []core.Row{
		{"userId": "u1"}, {"userId": "u2"},
	}}
	items := &sliceSource{name: "items", rows: []core.Row{
		{"itemId": "i1", "title": "Go Concurrency Patterns", "text": "the channels and goroutines", "lang": "en"},
		{"itemId": "i2", "title": "Cooking", "lang": "pt"},
	}}
	s := store.New()
	if err := s.Load(context.Background(), users, items, &sliceSource{name: "inter", rows: interactions}); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return s
}

// 聚合规则决定协同过滤的结果，必须显式固定：
// 同一 (user, item) 多条交互按权重求和；显式 eventStrength 优先于事件隐式权重。
func TestBuilder_StrengthAggregation(t *testing.T) {
	s := loadStore(t, []core.Row{
		{"userId": "u1", "itemId": "i1", "eventType": "VIEW"},
		{"userId": "u1", "itemId": "i1", "eventType": "VIEW"},
		{"userId": "u1", "itemId": "i2", "eventType": "LIKE"},
		{"userId": "u2", "itemId": "i1", "eventStrength": "3.5"},
	})

	b := NewBuilder()
	b.EventWeights = map[string]float64{"LIKE": 2.0}

	ix, err := b.Build(context.Background(), s.Snapshot())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// 两次 VIEW，隐式权重 1.0/事件，求和 = 2.0
	if got := ix.UserItems["u1"]["i1"]; got != 2.0 {
		t.Errorf("UserItems[u1][i1] = %v, want 2.0 (sum of implicit weights)", got)
	}
	// LIKE 配置为 2.0
	if got := ix.UserItems["u1"]["i2"]; got != 2.0 {
		t.Errorf("UserItems[u1][i2] = %v, want 2.0 (event weight)", got)
	}
	// 显式 eventStrength 覆盖隐式权重
	if got := ix.UserItems["u2"]["i1"]; got != 3.5 {
		t.Errorf("UserItems[u2][i1] = %v, want 3.5 (explicit rating)", got)
	}
	// 倒排表与正排表对称
	if got := ix.ItemUsers["i1"]["u1"]; got != 2.0 {
		t.Errorf("ItemUsers[i1][u1] = %v, want 2.0", got)
	}

	// 热度按事件计数，不按强度
	if got := ix.ItemPopularity["i1"]; got != 3 {
		t.Errorf("ItemPopularity[i1] = %d, want 3", got)
	}
}

func TestBuilder_ItemFeatures(t *testing.T) {
	s := loadStore(t, []core.Row{
		{"userId": "u1", "itemId": "i1", "eventType": "VIEW"},
	})

	ix, err := NewBuilder().Build(context.Background(), s.Snapshot())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	feats := ix.ItemFeatures["i1"]
	for _, tok := range []string{"go", "concurrency", "patterns", "channels", "goroutines", "lang:en"} {
		if feats[tok] == 0 {
			t.Errorf("ItemFeatures[i1] missing token %q (got %v)", tok, feats)
		}
	}
	// 停用词与单字符词被丢弃
	if _, ok := feats["the"]; ok {
		t.Error("stop word 'the' should be removed")
	}
	if _, ok := feats["and"]; ok {
		t.Error("stop word 'and' should be removed")
	}
}

func TestBuilder_CacheByGeneration(t *testing.T) {
	inter := []core.Row{{"userId": "u1", "itemId": "i1", "eventType": "VIEW"}}
	s := loadStore(t, inter)
	b := NewBuilder()

	first, err := b.Build(context.Background(), s.Snapshot())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	again, err := b.Build(context.Background(), s.Snapshot())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if first != again {
		t.Error("same generation must be served from cache")
	}

	// reload 换代后重建
	users := &sliceSource{name: "users", rows: []core.Row{{"userId": "u1"}}}
	items := &sliceSource{name: "items", rows: []core.Row{{"itemId": "i1", "title": "x y"}}}
	if err := s.Load(context.Background(), users, items, &sliceSource{name: "inter", rows: inter}); err != nil {
		t.Fatalf("reload error = %v", err)
	}
	rebuilt, err := b.Build(context.Background(), s.Snapshot())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if rebuilt == first {
		t.Error("new generation must rebuild indices")
	}
	if rebuilt.Generation != 2 {
		t.Errorf("Generation = %d, want 2", rebuilt.Generation)
	}
}

func TestBuilder_NoSnapshot(t *testing.T) {
	_, err := NewBuilder().Build(context.Background(), nil)
	if !core.IsEmptyRelation(err) {
		t.Fatalf("Build(nil) error = %v, want EMPTY_RELATION", err)
	}
}

type fixedFeatures struct {
	feats map[string]map[string]float64
}

func (f *fixedFeatures) Name() string { return "fixed" }
func (f *fixedFeatures) ItemFeatures(_ context.Context, _ []string) (map[string]map[string]float64, error) {
	return f.feats, nil
}

func TestBuilder_ExternalFeatureMerge(t *testing.T) {
	s := loadStore(t, []core.Row{
		{"userId": "u1", "itemId": "i1", "eventType": "VIEW"},
	})

	b := NewBuilder()
	b.Features = &fixedFeatures{feats: map[string]map[string]float64{
		"i1": {"topic:tech": 0.9, "go": 1.0},
	}}

	ix, err := b.Build(context.Background(), s.Snapshot())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := ix.ItemFeatures["i1"]["topic:tech"]; got != 0.9 {
		t.Errorf("external feature topic:tech = %v, want 0.9", got)
	}
	// 外部权重叠加到分词词频上
	if got := ix.ItemFeatures["i1"]["go"]; got != 2.0 {
		t.Errorf("merged weight for 'go' = %v, want 2.0", got)
	}
}
