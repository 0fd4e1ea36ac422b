package delta

// Attributes is an unordered map from attribute name to an arbitrary JSON
// value. A nil or empty map is equivalent to "no attributes" and is never
// retained on an Op (see normalizeAttributes).
type Attributes map[string]interface{}

// Clone returns a shallow copy of a, or nil if a is empty.
func (a Attributes) Clone() Attributes {
	if len(a) == 0 {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// normalizeAttributes drops a map that became empty, so that "with
// attributes" always means "non-empty map" per the canonical-form rules.
func normalizeAttributes(a Attributes) Attributes {
	if len(a) == 0 {
		return nil
	}
	return a
}

// attributesEqual reports whether a and b contain the same keys mapped to
// structurally equal values. Order is never significant.
func attributesEqual(a, b Attributes) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		bv, ok := b[k]
		if !ok || !valuesEqual(v, bv) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case map[string]interface{}:
		bv, ok := b.(map[string]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bvv, ok := bv[k]
			if !ok || !valuesEqual(v, bvv) {
				return false
			}
		}
		return true
	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// composeAttributes composes two attribute maps: start from a copy of b,
// fill in keys from a that b doesn't have, then optionally strip
// null-valued keys.
func composeAttributes(a, b Attributes, keepNull bool) Attributes {
	out := make(Attributes, len(a)+len(b))
	for k, v := range b {
		out[k] = v
	}
	for k, v := range a {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	if !keepNull {
		for k, v := range out {
			if v == nil {
				delete(out, k)
			}
		}
	}
	return normalizeAttributes(out)
}

// diffAttributes computes the attribute map that turns a into b: every key
// present in either map whose values differ is included, carrying b's
// value or null when b lacks the key (signalling removal).
func diffAttributes(a, b Attributes) Attributes {
	out := make(Attributes)
	for k, v := range a {
		if bv, ok := b[k]; !ok || !valuesEqual(v, bv) {
			if ok {
				out[k] = bv
			} else {
				out[k] = nil
			}
		}
	}
	for k, v := range b {
		if _, ok := a[k]; !ok {
			out[k] = v
		}
	}
	return normalizeAttributes(out)
}

// transformAttributes rebases b's attribute map against a: when priority
// is true a wins, so only the keys of b absent from a survive; otherwise b
// passes through unchanged.
func transformAttributes(a, b Attributes, priority bool) Attributes {
	if !priority || len(a) == 0 {
		return normalizeAttributes(b.Clone())
	}
	out := make(Attributes, len(b))
	for k, v := range b {
		if _, ok := a[k]; !ok {
			out[k] = v
		}
	}
	return normalizeAttributes(out)
}

// invertAttributes computes the attribute map that undoes attr against
// base: restores base's value (or null if base lacks the key) for every
// key attr changed.
func invertAttributes(attr, base Attributes) Attributes {
	out := make(Attributes)
	for k, v := range attr {
		bv, ok := base[k]
		if !ok {
			out[k] = nil
			continue
		}
		if !valuesEqual(bv, v) {
			out[k] = bv
		}
	}
	return normalizeAttributes(out)
}

// stripNullAttributes removes null-valued keys, used when normalizing the
// attributes attached to a document-building insert: null in that context
// is equivalent to the attribute being absent.
func stripNullAttributes(a Attributes) Attributes {
	if len(a) == 0 {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		if v != nil {
			out[k] = v
		}
	}
	return normalizeAttributes(out)
}
