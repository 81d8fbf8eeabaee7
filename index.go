package firstbase

import (
	"sort"
	"strings"
)

// standardMarker tags the preferred namespace: when several definitions share
// a short name, the GS1 specs intend the Standard entity to win.
const standardMarker = "Standard"

// Index maps a definition's short name to its fully-qualified name.
type Index map[string]string

// BuildIndex derives the short-name lookup for a schema. A Standard-marked
// name always displaces a holder without the marker; otherwise the first
// claimant keeps the slot. Definitions are visited in sorted order so ties
// resolve the same way every run.
func BuildIndex(s Schema) Index {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)

	idx := make(Index, len(names))
	for _, name := range names {
		short := ShortName(name)
		if cur, ok := idx[short]; ok {
			if strings.Contains(cur, standardMarker) || !strings.Contains(name, standardMarker) {
				continue
			}
		}
		idx[short] = name
	}
	return idx
}
