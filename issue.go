package firstbase

import (
	"fmt"
	"regexp"
	"strings"
)

// Issue categories (exported consts for IDE completion and type safety by convention)
const (
	CategorySchemaNotFound = "schema_not_found"
	CategoryUnknownField   = "unknown_field"
	CategoryTypeMismatch   = "type_mismatch"
	CategoryInvalidEnum    = "invalid_enum"
	CategoryParseError     = "parse_error"
)

// Issue represents a single validation discrepancy.
type Issue struct {
	Category string // One of the categories listed above.
	Path     string // Dotted/bracketed path from the validation root (for example: TradeItem.Children[2].Code).
	Message  string
}

// String renders the issue the way validation reports print it.
func (it Issue) String() string {
	return fmt.Sprintf("%s %s: %s", strings.ToUpper(it.Category), it.Path, it.Message)
}

var arrayIndexRe = regexp.MustCompile(`\[\d+\]`)

// NormalizedPath returns the path with every array index replaced by a
// wildcard (Items[3].Code -> Items[*].Code), so the same problem recurring
// across array entries or files aggregates under one key. Idempotent.
func (it Issue) NormalizedPath() string {
	return arrayIndexRe.ReplaceAllString(it.Path, "[*]")
}

// PatternKey is the aggregation key used to count recurring issues across
// documents: category plus normalized path plus message.
func (it Issue) PatternKey() string {
	return fmt.Sprintf("%s %s: %s", strings.ToUpper(it.Category), it.NormalizedPath(), it.Message)
}

// Issues is a collection of validation discrepancies that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. unknown_field at TradeItem.Foo
		fmt.Fprintf(b, "%s at %s", it.Category, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}
