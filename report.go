package firstbase

import "sort"

// Pattern is one recurring issue shape: the aggregation key and the number of
// documents it occurred in.
type Pattern struct {
	Key   string
	Count int
}

// Report is the aggregate view of one validation run against one schema,
// sufficient for a reporting collaborator to print pass/fail counts and the
// most frequent problems without re-deriving validation logic.
type Report struct {
	Label    string
	Total    int
	Valid    int
	Invalid  int
	Patterns []Pattern // Sorted by count descending, then key.
}

// Passed reports whether every document came through clean.
func (r Report) Passed() bool { return r.Invalid == 0 }

// Summarize aggregates a Result. Each pattern is counted at most once per
// document, so the count reads as "files affected".
func Summarize(label string, res Result) Report {
	rep := Report{Label: label, Total: len(res)}

	counts := make(map[string]int)
	for _, issues := range res {
		if len(issues) == 0 {
			rep.Valid++
			continue
		}
		rep.Invalid++
		seen := make(map[string]struct{}, len(issues))
		for _, it := range issues {
			key := it.PatternKey()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			counts[key]++
		}
	}

	rep.Patterns = make([]Pattern, 0, len(counts))
	for key, n := range counts {
		rep.Patterns = append(rep.Patterns, Pattern{Key: key, Count: n})
	}
	sort.Slice(rep.Patterns, func(i, j int) bool {
		if rep.Patterns[i].Count != rep.Patterns[j].Count {
			return rep.Patterns[i].Count > rep.Patterns[j].Count
		}
		return rep.Patterns[i].Key < rep.Patterns[j].Key
	})
	return rep
}
