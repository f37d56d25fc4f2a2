package strategy

import (
	"context"
	"testing"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/index"
)

func contentIndices() *index.Indices {
	return &index.Indices{
		Generation: 1,
		UserItems: map[string]map[string]float64{
			"u1": {"i1": 2.0},
		},
		ItemUsers: map[string]map[string]float64{
			"i1": {"u1": 2.0},
		},
		ItemFeatures: map[string]map[string]float64{
			"i1": {"go": 1, "concurrency": 1},
			"i2": {"go": 1, "channels": 1},
			"i3": {"cooking": 1, "pasta": 1},
		},
		ItemPopularity: map[string]int{"i1": 1},
		UserIDs:        []string{"u1"},
		ItemIDs:        []string{"i1", "i2", "i3"},
	}
}

func TestContentBased_ByItem(t *testing.T) {
	s := &ContentBased{}
	recs, err := s.Score(context.Background(), contentIndices(), core.Query{ItemID: "i1"}, 5)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	// i1 与 i2 共享 "go"：Jaccard = 1/3；i3 无重叠
	if len(recs) != 1 {
		t.Fatalf("len(recs) = %d, want 1 (%v)", len(recs), recs)
	}
	if recs[0].ItemID != "i2" {
		t.Errorf("recs[0] = %s, want i2", recs[0].ItemID)
	}
	if got, want := recs[0].Score, 1.0/3.0; got != want {
		t.Errorf("score = %v, want %v", got, want)
	}
	if lbl, ok := recs[0].GetLabel("strategy"); !ok || lbl.Value != "content-based" {
		t.Errorf("strategy label = %+v, want content-based", lbl)
	}
}

// 查询物品自身永不出现在结果里。
func TestContentBased_ExcludesQueryItem(t *testing.T) {
	s := &ContentBased{}
	recs, err := s.Score(context.Background(), contentIndices(), core.Query{ItemID: "i1"}, 5)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	for _, rec := range recs {
		if rec.ItemID == "i1" {
			t.Fatal("query item must not be recommended to itself")
		}
	}
}

func TestContentBased_ByUserProfile(t *testing.T) {
	s := &ContentBased{}
	recs, err := s.Score(context.Background(), contentIndices(), core.Query{UserID: "u1"}, 5)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	// u1 的偏好向量来自 i1（强度 2.0）：{go:2, concurrency:2}
	// i2 命中 "go"，i3 无重叠；i1 已交互被排除
	if len(recs) != 1 || recs[0].ItemID != "i2" {
		t.Fatalf("recs = %v, want only i2", recs)
	}
}

func TestContentBased_ColdStart(t *testing.T) {
	tests := []struct {
		name  string
		query core.Query
	}{
		{"user without history", core.Query{UserID: "stranger"}},
		{"item without features", core.Query{ItemID: "missing"}},
	}
	s := &ContentBased{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := s.Score(context.Background(), contentIndices(), tt.query, 5)
			if err != nil {
				t.Fatalf("cold start must not be an error, got %v", err)
			}
			if len(recs) != 0 {
				t.Errorf("cold start must yield empty result, got %v", recs)
			}
		})
	}
}

// 同分平局按 itemId 升序，保证可复现。
func TestContentBased_TieBreak(t *testing.T) {
	ix := &index.Indices{
		Generation: 1,
		ItemFeatures: map[string]map[string]float64{
			"iq": {"alpha": 1},
			"ib": {"alpha": 1, "zeta": 1},
			"ia": {"alpha": 1, "beta": 1},
		},
		ItemIDs: []string{"iq", "ib", "ia"},
	}
	s := &ContentBased{}
	recs, err := s.Score(context.Background(), ix, core.Query{ItemID: "iq"}, 5)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2", len(recs))
	}
	if recs[0].Score != recs[1].Score {
		t.Fatalf("expected a tie, got %v vs %v", recs[0].Score, recs[1].Score)
	}
	if recs[0].ItemID != "ia" || recs[1].ItemID != "ib" {
		t.Errorf("tie must break by ascending itemId, got [%s %s]", recs[0].ItemID, recs[1].ItemID)
	}
}

func TestContentBased_RespectsK(t *testing.T) {
	ix := contentIndices()
	// 让所有物品与 i1 都有重叠
	ix.ItemFeatures["i3"]["go"] = 1
	s := &ContentBased{}
	recs, err := s.Score(context.Background(), ix, core.Query{ItemID: "i1"}, 1)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("len(recs) = %d, want 1", len(recs))
	}
}
