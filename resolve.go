package firstbase

import "strings"

// refPrefix is the JSON-pointer prefix Swagger uses for definition references.
const refPrefix = "#/definitions/"

// Resolve turns a $ref string or bare name into a fully-qualified definition
// name. An exact full-name match wins; otherwise the short name is looked up
// in the index. ok is false when neither matches — callers treat that as a
// missing-schema condition, never a crash.
func Resolve(refOrName string, s Schema, idx Index) (full string, ok bool) {
	name := strings.TrimPrefix(refOrName, refPrefix)
	if _, ok := s[name]; ok {
		return name, true
	}
	full, ok = idx[ShortName(name)]
	return full, ok
}
