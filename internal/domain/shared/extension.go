package shared

// ExtensionData is the open, schemaless bag carried by the server's entities
// under the "jsonData" key. Step-local working fields and the order's audit
// journal live here. Values survive a JSON round-trip, so readers must accept
// the generic forms the decoder produces (map[string]any, []any, float64).
type ExtensionData map[string]any

// Clone returns a shallow copy of the bag. Top-level keys can be added or
// replaced on the copy without affecting the original; nested values are
// shared and must not be mutated in place.
func (d ExtensionData) Clone() ExtensionData {
	out := make(ExtensionData, len(d)+1)
	for k, v := range d {
		out[k] = v
	}
	return out
}

// GetString returns the string value for key, or "" if absent or not a string.
func (d ExtensionData) GetString(key string) string {
	s, _ := d[key].(string)
	return s
}

// GetBool returns the bool value for key, or false if absent or not a bool.
func (d ExtensionData) GetBool(key string) bool {
	b, _ := d[key].(bool)
	return b
}

// GetStringSlice returns the value for key as a string slice. It accepts both
// a native []string and the []any form produced by JSON decoding. A missing
// key or any other type yields nil.
func (d ExtensionData) GetStringSlice(key string) []string {
	switch v := d[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// GetSlice returns the value for key as a generic slice, or nil.
func (d ExtensionData) GetSlice(key string) []any {
	v, _ := d[key].([]any)
	return v
}
