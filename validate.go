package firstbase

import (
	"fmt"
	"math"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

// Validator checks JSON document values against one loaded Schema. It holds
// only read-only state and may be shared across goroutines.
type Validator struct {
	schema Schema
	index  Index
	label  string
}

// NewValidator builds a Validator (and its short-name index) for a schema.
// The label names the schema in reports, e.g. "Product API (recipient)".
func NewValidator(schema Schema, label string) *Validator {
	return &Validator{schema: schema, index: BuildIndex(schema), label: label}
}

// Schema returns the schema the validator was built for.
func (v *Validator) Schema() Schema { return v.schema }

// Index returns the short-name index built over the schema.
func (v *Validator) Index() Index { return v.index }

// Label returns the report label.
func (v *Validator) Label() string { return v.label }

// Resolve resolves a $ref string or bare name against the validator's schema.
func (v *Validator) Resolve(refOrName string) (string, bool) {
	return Resolve(refOrName, v.schema, v.index)
}

// Validate recursively checks value against the named definition and returns
// every discrepancy found. It never fails fast: one bad field does not stop
// the walk, and only an unresolvable definition aborts (just that subtree).
// Recursion follows the document tree, so cycles in the schema graph cannot
// cause non-termination.
func (v *Validator) Validate(value any, defName, path string) Issues {
	var issues Issues

	resolved := defName
	if _, ok := v.schema[defName]; !ok {
		r, ok := v.Resolve(defName)
		if !ok {
			return AppendIssues(issues, Issue{
				Category: CategorySchemaNotFound,
				Path:     path,
				Message:  fmt.Sprintf("%q not in spec", defName),
			})
		}
		resolved = r
	}

	// Values that are not object-shaped are not checked further at a
	// definition boundary. Matches historical report output; see DESIGN.md.
	obj, ok := value.(map[string]any)
	if !ok {
		return issues
	}

	props := v.schema[resolved].Properties

	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fieldPath := childPath(path, key)
		spec, declared := props[key]
		if !declared {
			issues = append(issues, Issue{
				Category: CategoryUnknownField,
				Path:     fieldPath,
				Message:  fmt.Sprintf("not in %q (has %d properties)", ShortName(resolved), len(props)),
			})
			continue
		}
		val := obj[key]

		issues = append(issues, v.checkType(val, spec, fieldPath)...)

		if len(spec.Enum) > 0 && val != nil && !enumMember(spec.Enum, val) {
			issues = append(issues, Issue{
				Category: CategoryInvalidEnum,
				Path:     fieldPath,
				Message:  fmt.Sprintf("%s not in %s", formatValue(val), formatEnum(spec.Enum)),
			})
		}

		switch spec.Kind() {
		case KindRef:
			issues = append(issues, v.validateRef(val, spec.Ref, fieldPath)...)
		case KindArray:
			issues = append(issues, v.validateArray(val, spec.Items, fieldPath)...)
		case KindPrimitive, KindUntyped:
			// Fully handled by the type and enum checks above.
		}
	}
	return issues
}

// validateRef handles a $ref property whose value is an object. Enum targets
// follow the wrapper pattern: the coded scalar sits under a "Value" key.
func (v *Validator) validateRef(val any, ref, path string) Issues {
	obj, ok := val.(map[string]any)
	if !ok {
		return nil
	}
	child, ok := v.Resolve(ref)
	if !ok {
		// Recursing with the unresolved name reports schema_not_found at
		// this path and stops the subtree there.
		return v.Validate(obj, strings.TrimPrefix(ref, refPrefix), path)
	}
	def := v.schema[child]
	if def.IsEnum() {
		inner := obj["Value"]
		if inner != nil && !enumMember(def.Enum, inner) {
			return Issues{{
				Category: CategoryInvalidEnum,
				Path:     path + ".Value",
				Message:  fmt.Sprintf("%s not in %s", formatValue(inner), formatEnum(def.Enum)),
			}}
		}
		return nil
	}
	return v.Validate(obj, child, path)
}

// validateArray handles an array property whose items reference a definition.
// Inline-typed items carry no per-element checks beyond the array type check.
func (v *Validator) validateArray(val any, items *ItemsSpec, path string) Issues {
	seq, ok := val.([]any)
	if !ok || items == nil || items.Ref == "" {
		return nil
	}
	child, ok := v.Resolve(items.Ref)
	if !ok {
		return Issues{{
			Category: CategorySchemaNotFound,
			Path:     path,
			Message:  fmt.Sprintf("%q not in spec", strings.TrimPrefix(items.Ref, refPrefix)),
		}}
	}
	def := v.schema[child]

	var issues Issues
	for i, item := range seq {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		if def.IsEnum() {
			inner := item
			if m, ok := item.(map[string]any); ok {
				inner = m["Value"]
			}
			if inner != nil && !enumMember(def.Enum, inner) {
				issues = append(issues, Issue{
					Category: CategoryInvalidEnum,
					Path:     itemPath,
					Message:  fmt.Sprintf("%s not in %s", formatValue(inner), formatEnum(def.Enum)),
				})
			}
			continue
		}
		if m, ok := item.(map[string]any); ok {
			issues = append(issues, v.Validate(m, child, itemPath)...)
		}
	}
	return issues
}

// checkType verifies the value's runtime shape against the declared primitive
// type. Null values and untyped properties are exempt; at most one issue is
// produced.
func (v *Validator) checkType(val any, spec PropertySpec, path string) Issues {
	if val == nil || spec.Type == "" {
		return nil
	}
	if typeMatches(spec.Type, val) {
		return nil
	}
	return Issues{{
		Category: CategoryTypeMismatch,
		Path:     path,
		Message:  fmt.Sprintf("expected %s, got %s", spec.Type, typeName(val)),
	}}
}

func typeMatches(expected string, val any) bool {
	switch expected {
	case "string":
		_, ok := val.(string)
		return ok
	case "boolean":
		_, ok := val.(bool)
		return ok
	case "integer":
		return isWholeNumber(val)
	case "number":
		return isNumber(val)
	case "array":
		_, ok := val.([]any)
		return ok
	case "object":
		_, ok := val.(map[string]any)
		return ok
	default:
		// Unknown declared types are not checked.
		return true
	}
}

func isNumber(val any) bool {
	switch val.(type) {
	case float64, json.Number:
		return true
	default:
		return false
	}
}

func isWholeNumber(val any) bool {
	switch n := val.(type) {
	case float64:
		return math.Trunc(n) == n
	case json.Number:
		_, err := n.Int64()
		return err == nil
	default:
		return false
	}
}

// typeName maps a decoded JSON value to its JSON type name. Booleans never
// pass as numbers here, so a boolean against a declared integer/number is
// reported as "expected integer, got boolean" rather than slipping through.
func typeName(val any) string {
	switch val.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", val)
	}
}

// enumMember reports whether val equals one of the enumeration entries.
// Only scalar entries can match; object/array values never do.
func enumMember(enum []any, val any) bool {
	for _, e := range enum {
		if scalarEqual(e, val) {
			return true
		}
	}
	return false
}

func scalarEqual(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case float64:
		bf, ok := asFloat(b)
		return ok && av == bf
	case json.Number:
		af, ok := asFloat(a)
		if !ok {
			return false
		}
		bf, ok := asFloat(b)
		return ok && af == bf
	case nil:
		return b == nil
	default:
		return false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// enumPreviewLimit caps how many allowed values an invalid_enum message shows.
const enumPreviewLimit = 6

func formatEnum(enum []any) string {
	b := &strings.Builder{}
	b.WriteByte('[')
	lim := len(enum)
	if lim > enumPreviewLimit {
		lim = enumPreviewLimit
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(formatValue(enum[i]))
	}
	if len(enum) > lim {
		b.WriteString(", ...")
	}
	b.WriteByte(']')
	return b.String()
}

func formatValue(val any) string {
	if s, ok := val.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", val)
}

func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
