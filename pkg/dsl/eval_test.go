package dsl

import (
	"testing"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pkg/utils"
)

func TestNewFilter_CompileError(t *testing.T) {
	tests := []string{
		`item.lang ==`,
		`&&`,
	}
	for _, expr := range tests {
		if _, err := NewFilter(expr); err == nil {
			t.Errorf("NewFilter(%q) should fail at compile time", expr)
		}
	}
}

func TestFilter_Matches(t *testing.T) {
	rec := core.NewRecommendation("i1", 0.8)
	rec.Title = "Go Concurrency Patterns"
	rec.PutLabel("strategy", utils.Label{Value: "collaborative", Source: "strategy.collaborative"})
	art := &core.Article{ItemID: "i1", Lang: "en", ContentType: "HTML"}
	q := core.Query{UserID: "u1", Strategy: core.StrategyCollaborative}

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{"lang match", `item.lang == "en"`, true},
		{"lang mismatch", `item.lang == "pt"`, false},
		{"score threshold", `item.score > 0.5`, true},
		{"label access", `label.strategy.contains("collaborative")`, true},
		{"query field", `query.user_id == "u1"`, true},
		{"combined", `item.lang == "en" && item.content_type == "HTML"`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFilter(tt.expr)
			if err != nil {
				t.Fatalf("NewFilter(%q) error = %v", tt.expr, err)
			}
			got, err := f.Matches(rec, art, q)
			if err != nil {
				t.Fatalf("Matches() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

// 元信息缺失时 item.lang / item.content_type 为 "",表达式仍可求值。
func TestFilter_NilArticle(t *testing.T) {
	f, err := NewFilter(`item.lang == ""`)
	if err != nil {
		t.Fatalf("NewFilter() error = %v", err)
	}
	got, err := f.Matches(core.NewRecommendation("i9", 0.1), nil, core.Query{})
	if err != nil {
		t.Fatalf("Matches() error = %v", err)
	}
	if !got {
		t.Error("missing metadata should read as empty lang")
	}
}

// 非布尔表达式在求值时报错，而不是静默通过。
func TestFilter_NonBoolean(t *testing.T) {
	f, err := NewFilter(`item.score`)
	if err != nil {
		t.Fatalf("NewFilter() error = %v", err)
	}
	if _, err := f.Matches(core.NewRecommendation("i1", 0.5), nil, core.Query{}); err == nil {
		t.Fatal("non-boolean expression must error at eval time")
	}
}
