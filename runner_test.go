package firstbase_test

import (
	"testing"

	firstbase "github.com/zdavatz/firstbase-validator"
)

func runnerSchema() firstbase.Schema {
	s := testSchema()
	s["Gs1.Standard.CatalogueItemChildItemLink"] = firstbase.Definition{
		Properties: map[string]firstbase.PropertySpec{
			"Quantity":      typed("integer"),
			"CatalogueItem": {Ref: "#/definitions/Gs1.Standard.CatalogueItem"},
		},
	}
	s["Gs1.Standard.CatalogueItem"] = firstbase.Definition{
		Properties: map[string]firstbase.PropertySpec{
			"TradeItem": {Ref: "#/definitions/Gs1.Standard.TradeItem"},
		},
	}
	return s
}

func testRunner(t *testing.T) *firstbase.Runner {
	t.Helper()
	r, ok := firstbase.NewRunner(firstbase.NewValidator(runnerSchema(), "test schema"))
	if !ok {
		t.Fatal("runner schema must contain a Standard TradeItem")
	}
	return r
}

func TestNewRunner_FindsStandardTradeItem(t *testing.T) {
	r := testRunner(t)
	if r.RootDef != "Gs1.Standard.TradeItem" {
		t.Fatalf("root def = %q", r.RootDef)
	}
}

func TestNewRunner_FailsWithoutTradeItem(t *testing.T) {
	v := firstbase.NewValidator(firstbase.Schema{"Ns.Other.Brand": {}}, "empty")
	if _, ok := firstbase.NewRunner(v); ok {
		t.Fatal("expected NewRunner to fail")
	}
}

func TestRunner_RootKeyWrapper(t *testing.T) {
	r := testRunner(t)
	doc := map[string]any{"TradeItem": map[string]any{"Bogus": 1.0}}
	iss := r.ValidateDocument(doc)
	if len(iss) != 1 || iss[0].Path != "TradeItem.Bogus" {
		t.Fatalf("expected one issue at TradeItem.Bogus, got %v", iss)
	}
}

func TestRunner_BareDocumentIsTheTradeItem(t *testing.T) {
	r := testRunner(t)
	iss := r.ValidateDocument(map[string]any{"GTIN": "ok"})
	if len(iss) != 0 {
		t.Fatalf("expected no issues, got %v", iss)
	}
}

func TestRunner_ChildLinkTraversal(t *testing.T) {
	r := testRunner(t)
	doc := map[string]any{
		"TradeItem": map[string]any{"GTIN": "ok"},
		"CatalogueItemChildItemLink": []any{
			map[string]any{
				"Quantity": "two", // type_mismatch in the link itself
				"CatalogueItem": map[string]any{
					"TradeItem": map[string]any{"Bogus": 1.0}, // unknown_field in the embedded item
				},
			},
		},
	}
	iss := r.ValidateDocument(doc)

	var mismatchPath, unknownPath string
	for _, it := range iss {
		switch it.Category {
		case firstbase.CategoryTypeMismatch:
			mismatchPath = it.Path
		case firstbase.CategoryUnknownField:
			unknownPath = it.Path
		}
	}
	if mismatchPath != "CatalogueItemChildItemLink[0].Quantity" {
		t.Fatalf("link issue path = %q (issues: %v)", mismatchPath, iss)
	}
	if unknownPath != "CatalogueItemChildItemLink[0].CatalogueItem.TradeItem.Bogus" {
		t.Fatalf("embedded item issue path = %q (issues: %v)", unknownPath, iss)
	}
}

func TestRunner_ValidateRaw_ParseError(t *testing.T) {
	r := testRunner(t)
	iss := r.ValidateRaw([]byte(`{"TradeItem": `))
	if len(iss) != 1 || iss[0].Category != firstbase.CategoryParseError {
		t.Fatalf("expected exactly one parse_error, got %v", iss)
	}
}

func TestRunner_ValidateAll(t *testing.T) {
	r := testRunner(t)
	res := r.ValidateAll(map[string][]byte{
		"good.json":   []byte(`{"TradeItem": {"GTIN": "ok"}}`),
		"bad.json":    []byte(`{"TradeItem": {"Bogus": 1}}`),
		"broken.json": []byte(`not json`),
	})
	if res.Valid() {
		t.Fatal("expected failures")
	}
	if len(res["good.json"]) != 0 {
		t.Fatalf("good.json: %v", res["good.json"])
	}
	if len(res["bad.json"]) != 1 || res["bad.json"][0].Category != firstbase.CategoryUnknownField {
		t.Fatalf("bad.json: %v", res["bad.json"])
	}
	if len(res["broken.json"]) != 1 || res["broken.json"][0].Category != firstbase.CategoryParseError {
		t.Fatalf("broken.json: %v", res["broken.json"])
	}
	if got := res.Names(); len(got) != 3 || got[0] != "bad.json" {
		t.Fatalf("names = %v", got)
	}
}
