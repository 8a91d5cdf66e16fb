package serial

// Equal reports whether two values are structurally equal: same variant,
// same definition tag, and recursively equal payload. Containers compare by
// content, never by allocation identity, so two independently built lists
// with equal items are equal.
func Equal(a, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind || a.hasDef != b.hasDef || a.defID != b.defID {
		return false
	}

	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.boolVal == b.boolVal
	case KindReal:
		return a.realVal == b.realVal
	case KindString:
		return a.strVal == b.strVal
	case KindRef:
		return a.ref == b.ref
	case KindList:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindDict:
		if len(a.keys) != len(b.keys) {
			return false
		}
		for key, av := range a.entries {
			bv, ok := b.entries[key]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}
