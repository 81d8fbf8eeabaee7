package swagger

import (
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	firstbase "github.com/zdavatz/firstbase-validator"
)

// Decode decodes a Swagger spec from raw bytes. JSON is tried first (the
// firstbase endpoints serve JSON); on failure the bytes are decoded as YAML
// and normalized into JSON-shaped maps before hitting the schema decoder.
func Decode(data []byte) (firstbase.Schema, error) {
	schema, jerr := firstbase.DecodeSpec(data)
	if jerr == nil {
		return schema, nil
	}

	var node any
	if yerr := yaml.Unmarshal(data, &node); yerr != nil {
		return nil, jerr
	}
	m := yamlToStringMap(node)
	if m == nil {
		return nil, jerr
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, jerr
	}
	return firstbase.DecodeSpec(b)
}

// yamlToStringMap converts YAML-decoded values (which may contain
// map[any]any) into JSON-like map[string]any recursively. Non-map roots
// return nil.
func yamlToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = yamlNormalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
