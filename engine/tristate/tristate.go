// Package tristate implements three-valued logic used when the acting side
// may not know every attribute of a target.
package tristate

// Value is Yes, No or Maybe. The zero value is No.
type Value int

const (
	No Value = iota
	Yes
	Maybe
)

// FromBool converts a plain boolean.
func FromBool(b bool) Value {
	if b {
		return Yes
	}
	return No
}

// And is conservative: No dominates, then Maybe.
func And(a, b Value) Value {
	if a == No || b == No {
		return No
	}
	if a == Maybe || b == Maybe {
		return Maybe
	}
	return Yes
}

// Or is optimistic: Yes dominates, then Maybe.
func Or(a, b Value) Value {
	if a == Yes || b == Yes {
		return Yes
	}
	if a == Maybe || b == Maybe {
		return Maybe
	}
	return No
}

// AndAll folds And over vs. An empty list is Yes.
func AndAll(vs ...Value) Value {
	out := Yes
	for _, v := range vs {
		out = And(out, v)
		if out == No {
			return No
		}
	}
	return out
}

// OrAll folds Or over vs. An empty list is No.
func OrAll(vs ...Value) Value {
	out := No
	for _, v := range vs {
		out = Or(out, v)
		if out == Yes {
			return Yes
		}
	}
	return out
}

// Not swaps Yes and No and keeps Maybe.
func Not(v Value) Value {
	switch v {
	case Yes:
		return No
	case No:
		return Yes
	default:
		return Maybe
	}
}

func (v Value) String() string {
	switch v {
	case No:
		return "no"
	case Yes:
		return "yes"
	case Maybe:
		return "maybe"
	default:
		return "invalid"
	}
}
