package normalizer

import "net/url"

// FromValues flattens form values into a raw mapping, keeping the first
// value submitted for each key.
func FromValues(values url.Values) map[string]interface{} {
	raw := make(map[string]interface{}, len(values))
	for key, vs := range values {
		if len(vs) == 0 {
			continue
		}
		raw[key] = vs[0]
	}
	return raw
}
