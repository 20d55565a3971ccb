package coerce

// Path walks nested mappings along keys and returns the value found.
// Any missing key or non-mapping intermediate yields nil.
func Path(v any, keys ...string) any {
	current := v
	for _, key := range keys {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = m[key]
	}
	return current
}

// Lookup returns the value stored under key and whether the key is present.
// A key holding an empty string is present.
func Lookup(v any, key string) (any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	val, ok := m[key]
	if !ok || val == nil {
		return nil, false
	}
	return val, true
}

// FirstPresent returns the value of the first key present in v.
// Aliases are tried left to right and the first present one wins even when
// its value is empty.
func FirstPresent(v any, keys ...string) (any, bool) {
	for _, key := range keys {
		if val, ok := Lookup(v, key); ok {
			return val, true
		}
	}
	return nil, false
}

// Sequence normalises a value that may be a single element or repeated
// siblings. Absent or empty values yield an empty sequence, a sequence is
// returned as is, and anything else becomes a one-element sequence.
func Sequence(v any) []any {
	switch val := v.(type) {
	case nil:
		return []any{}
	case []any:
		return val
	case string:
		if val == "" {
			return []any{}
		}
		return []any{val}
	default:
		return []any{val}
	}
}

// First returns v itself, or its first element when v is a sequence.
func First(v any) any {
	if seq, ok := v.([]any); ok {
		if len(seq) == 0 {
			return nil
		}
		return seq[0]
	}
	return v
}
