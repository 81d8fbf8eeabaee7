package firstbase_test

import (
	"testing"

	firstbase "github.com/zdavatz/firstbase-validator"
)

func TestDecodeSpec(t *testing.T) {
	spec := []byte(`{
		"swagger": "2.0",
		"info": {"title": "productApi"},
		"definitions": {
			"Gs1.Standard.TradeItem": {
				"properties": {
					"GTIN":     {"type": "string"},
					"Status":   {"type": "string", "enum": ["ACTIVE", "DISCONTINUED"]},
					"Brand":    {"$ref": "#/definitions/Gs1.Standard.Brand"},
					"Children": {"type": "array", "items": {"$ref": "#/definitions/Gs1.Standard.ChildCode"}}
				}
			},
			"Gs1.Standard.ChildCode": {"enum": ["X", "Z"]}
		}
	}`)
	schema, err := firstbase.DecodeSpec(spec)
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if len(schema) != 2 {
		t.Fatalf("definitions = %d", len(schema))
	}

	ti := schema["Gs1.Standard.TradeItem"]
	if ti.IsEnum() {
		t.Fatal("TradeItem must not be an enum")
	}
	if got := ti.Properties["GTIN"].Kind(); got != firstbase.KindPrimitive {
		t.Fatalf("GTIN kind = %v", got)
	}
	if got := ti.Properties["Brand"].Kind(); got != firstbase.KindRef {
		t.Fatalf("Brand kind = %v", got)
	}
	children := ti.Properties["Children"]
	if children.Kind() != firstbase.KindArray || children.Items == nil || children.Items.Ref != "#/definitions/Gs1.Standard.ChildCode" {
		t.Fatalf("Children spec = %+v", children)
	}
	if len(ti.Properties["Status"].Enum) != 2 {
		t.Fatalf("Status enum = %v", ti.Properties["Status"].Enum)
	}

	if !schema["Gs1.Standard.ChildCode"].IsEnum() {
		t.Fatal("ChildCode must be an enum")
	}
}

func TestDecodeSpec_Errors(t *testing.T) {
	if _, err := firstbase.DecodeSpec([]byte(`not json`)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if _, err := firstbase.DecodeSpec([]byte(`{"swagger": "2.0"}`)); err == nil {
		t.Fatal("expected error for spec without definitions")
	}
}

func TestShortName(t *testing.T) {
	if got := firstbase.ShortName("Ns.Standard.TradeItem"); got != "TradeItem" {
		t.Fatalf("short name = %q", got)
	}
	if got := firstbase.ShortName("TradeItem"); got != "TradeItem" {
		t.Fatalf("short name = %q", got)
	}
}

func TestFindStandard(t *testing.T) {
	schema := firstbase.Schema{
		"Ns.Internal.TradeItem": {},
		"Ns.Standard.TradeItem": {},
		"Ns.Standard.Brand":     {},
	}
	full, ok := schema.FindStandard("TradeItem")
	if !ok || full != "Ns.Standard.TradeItem" {
		t.Fatalf("FindStandard = %q, %v", full, ok)
	}
	if _, ok := schema.FindStandard("Nothing"); ok {
		t.Fatal("expected miss")
	}
}
