package firstbase

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

// Schema is an immutable mapping from fully-qualified definition name to
// Definition, decoded once per run from a Swagger spec's "definitions" block.
// It is never mutated after loading and is safe to share across concurrent
// validations.
type Schema map[string]Definition

// Definition is one named schema entry: an object shape (Properties), an
// enumeration (Enum), or both when the source spec carries both.
type Definition struct {
	Properties map[string]PropertySpec `json:"properties"`
	Enum       []any                   `json:"enum"`
}

// IsEnum reports whether the definition restricts values to an enumeration.
func (d Definition) IsEnum() bool { return len(d.Enum) > 0 }

// PropertySpec declares the expectations for a single object property.
type PropertySpec struct {
	Type  string     `json:"type"` // string/boolean/integer/number/array/object, empty when untyped.
	Ref   string     `json:"$ref"` // Reference to another definition, empty when absent.
	Enum  []any      `json:"enum"` // Inline enumeration, nil when absent.
	Items *ItemsSpec `json:"items"`
}

// ItemsSpec declares the element expectation of an array property.
type ItemsSpec struct {
	Type string `json:"type"`
	Ref  string `json:"$ref"`
}

// PropKind is the structural variant of a PropertySpec. An inline Enum rides
// on top of any variant and is checked separately.
type PropKind int

const (
	KindUntyped   PropKind = iota // Neither a type nor a $ref: nothing to check.
	KindPrimitive                 // Scalar or object primitive type.
	KindArray                     // type=array; element handling driven by Items.
	KindRef                       // $ref to another definition.
)

// Kind classifies the spec so the validator can match variants exhaustively
// instead of probing shapes at every recursion step.
func (p PropertySpec) Kind() PropKind {
	switch {
	case p.Ref != "":
		return KindRef
	case p.Type == "array":
		return KindArray
	case p.Type != "":
		return KindPrimitive
	default:
		return KindUntyped
	}
}

// ShortName returns the final dot-separated segment of a fully-qualified
// definition name (Namespace.Standard.TradeItem -> TradeItem).
func ShortName(full string) string {
	if i := strings.LastIndexByte(full, '.'); i >= 0 {
		return full[i+1:]
	}
	return full
}

// DecodeSpec decodes a Swagger/OpenAPI spec document into a Schema. Only the
// "definitions" block is consumed; paths, info and the rest of the spec are
// ignored.
func DecodeSpec(data []byte) (Schema, error) {
	var doc struct {
		Definitions Schema `json:"definitions"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("firstbase: invalid spec JSON: %w", err)
	}
	if doc.Definitions == nil {
		return nil, errors.New("firstbase: spec has no definitions")
	}
	return doc.Definitions, nil
}

// FindStandard locates the Standard-namespaced definition with the given
// short name, e.g. the `*.Standard.*.TradeItem` entry used as the validation
// root. Deterministic across runs: candidates are scanned in sorted order.
func (s Schema) FindStandard(short string) (string, bool) {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if strings.HasSuffix(name, "."+short) && strings.Contains(name, standardMarker) {
			return name, true
		}
	}
	return "", false
}
