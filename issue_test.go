package firstbase_test

import (
	"strings"
	"testing"

	firstbase "github.com/zdavatz/firstbase-validator"
)

func TestNormalizedPath_ReplacesIndices(t *testing.T) {
	it := firstbase.Issue{Category: firstbase.CategoryInvalidEnum, Path: "Items[3].Code"}
	if got := it.NormalizedPath(); got != "Items[*].Code" {
		t.Fatalf("normalized path = %q", got)
	}
}

func TestNormalizedPath_Idempotent(t *testing.T) {
	a := firstbase.Issue{Path: "Items[0].X"}
	b := firstbase.Issue{Path: "Items[17].X"}
	na, nb := a.NormalizedPath(), b.NormalizedPath()
	if na != nb {
		t.Fatalf("expected identical normalized paths, got %q vs %q", na, nb)
	}
	again := firstbase.Issue{Path: na}
	if again.NormalizedPath() != na {
		t.Fatalf("normalization not idempotent: %q -> %q", na, again.NormalizedPath())
	}
}

func TestNormalizedPath_NestedIndices(t *testing.T) {
	it := firstbase.Issue{Path: "CatalogueItemChildItemLink[2].Children[13]"}
	want := "CatalogueItemChildItemLink[*].Children[*]"
	if got := it.NormalizedPath(); got != want {
		t.Fatalf("normalized path = %q, want %q", got, want)
	}
}

func TestIssueString_UppercasesCategory(t *testing.T) {
	it := firstbase.Issue{Category: firstbase.CategoryUnknownField, Path: "TradeItem.Foo", Message: "not in \"TradeItem\" (has 2 properties)"}
	s := it.String()
	if !strings.HasPrefix(s, "UNKNOWN_FIELD TradeItem.Foo: ") {
		t.Fatalf("unexpected rendering: %q", s)
	}
}

func TestPatternKey_UsesNormalizedPath(t *testing.T) {
	a := firstbase.Issue{Category: firstbase.CategoryTypeMismatch, Path: "Children[0].Qty", Message: "expected integer, got string"}
	b := firstbase.Issue{Category: firstbase.CategoryTypeMismatch, Path: "Children[9].Qty", Message: "expected integer, got string"}
	if a.PatternKey() != b.PatternKey() {
		t.Fatalf("pattern keys differ: %q vs %q", a.PatternKey(), b.PatternKey())
	}
	if !strings.HasPrefix(a.PatternKey(), "TYPE_MISMATCH Children[*].Qty: ") {
		t.Fatalf("unexpected pattern key: %q", a.PatternKey())
	}
}

func TestIssuesError_TruncatesSummary(t *testing.T) {
	iss := firstbase.Issues{
		{Category: firstbase.CategoryUnknownField, Path: "A"},
		{Category: firstbase.CategoryUnknownField, Path: "B"},
		{Category: firstbase.CategoryUnknownField, Path: "C"},
		{Category: firstbase.CategoryUnknownField, Path: "D"},
	}
	msg := iss.Error()
	if !strings.Contains(msg, "(total 4)") {
		t.Fatalf("expected truncated summary, got %q", msg)
	}
	if strings.Contains(msg, " at D") {
		t.Fatalf("expected fourth issue to be elided, got %q", msg)
	}
}

func TestIssuesError_Empty(t *testing.T) {
	if msg := (firstbase.Issues{}).Error(); msg != "" {
		t.Fatalf("expected empty message, got %q", msg)
	}
}
