package firstbase

import (
	"fmt"
	"sort"

	json "github.com/goccy/go-json"
)

// Document root keys the runner traverses. Firstbase exports either wrap the
// trade item under "TradeItem" or are the trade item themselves, and may
// carry catalogue child links alongside it.
const (
	rootKey          = "TradeItem"
	childLinkKey     = "CatalogueItemChildItemLink"
	catalogueItemKey = "CatalogueItem"
)

// EntryPoint binds one value inside a document to the definition it must
// satisfy and the report path it is addressed under.
type EntryPoint struct {
	Value      any
	Definition string
	Path       string
}

// Runner feeds documents into a Validator at their entry points and collects
// the per-document issue inventory.
type Runner struct {
	Validator *Validator
	RootDef   string // Fully-qualified TradeItem definition.
}

// NewRunner locates the Standard TradeItem root definition in the schema and
// builds a Runner over it. ok is false when the schema has no such entity.
func NewRunner(v *Validator) (*Runner, bool) {
	root, ok := v.Schema().FindStandard(rootKey)
	if !ok {
		return nil, false
	}
	return &Runner{Validator: v, RootDef: root}, true
}

// EntryPoints derives the validation entry points of one parsed document:
// the trade item under the root key (or the whole document when the key is
// absent), every catalogue child link element, and any trade item embedded in
// a child link's catalogue item.
func (r *Runner) EntryPoints(doc any) []EntryPoint {
	m, ok := doc.(map[string]any)
	if !ok {
		return []EntryPoint{{Value: doc, Definition: r.RootDef, Path: rootKey}}
	}

	root := any(m)
	if v, ok := m[rootKey]; ok {
		root = v
	}
	eps := []EntryPoint{{Value: root, Definition: r.RootDef, Path: rootKey}}

	links, _ := m[childLinkKey].([]any)
	if len(links) == 0 {
		return eps
	}
	linkDef, ok := r.Validator.Resolve(childLinkKey)
	if !ok {
		return eps
	}
	for i, link := range links {
		p := fmt.Sprintf("%s[%d]", childLinkKey, i)
		eps = append(eps, EntryPoint{Value: link, Definition: linkDef, Path: p})
		lm, ok := link.(map[string]any)
		if !ok {
			continue
		}
		ci, ok := lm[catalogueItemKey].(map[string]any)
		if !ok {
			continue
		}
		if ti := ci[rootKey]; ti != nil {
			eps = append(eps, EntryPoint{
				Value:      ti,
				Definition: r.RootDef,
				Path:       p + "." + catalogueItemKey + "." + rootKey,
			})
		}
	}
	return eps
}

// ValidateDocument validates one parsed document at all of its entry points,
// preserving traversal emission order.
func (r *Runner) ValidateDocument(doc any) Issues {
	var issues Issues
	for _, ep := range r.EntryPoints(doc) {
		issues = append(issues, r.Validator.Validate(ep.Value, ep.Definition, ep.Path)...)
	}
	return issues
}

// ValidateRaw parses raw JSON and validates it. A document that does not
// parse yields exactly one parse_error issue and no structural checks.
func (r *Runner) ValidateRaw(data []byte) Issues {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Issues{{Category: CategoryParseError, Path: "", Message: err.Error()}}
	}
	return r.ValidateDocument(doc)
}

// Result maps a document identifier (usually the file name) to its issue
// inventory. An empty inventory means the document is valid.
type Result map[string]Issues

// Valid reports whether every document produced zero issues.
func (r Result) Valid() bool {
	for _, iss := range r {
		if len(iss) > 0 {
			return false
		}
	}
	return true
}

// Names returns the document identifiers in sorted order.
func (r Result) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateAll validates a batch of raw documents keyed by identifier.
func (r *Runner) ValidateAll(docs map[string][]byte) Result {
	res := make(Result, len(docs))
	for name, data := range docs {
		res[name] = r.ValidateRaw(data)
	}
	return res
}
