package sign

import "sort"

// MapLattice maps variable names to a Sign: the abstract store at one
// program point. A nil MapLattice represents ⊥ at the product-lattice
// level — the fixed-point solver uses the nil MapLattice as the initial
// value for every node before the first transfer application ever
// populates it.
type MapLattice map[string]Sign

// Get returns the sign bound to name, defaulting to Bottom if name is
// unbound (including on a nil map).
func (m MapLattice) Get(name string) Sign {
	if m == nil {
		return Bottom
	}
	return m[name]
}

// JoinStores computes the pointwise join of two stores over the union of
// their keys, used to combine the stores flowing in from several
// predecessor CFG nodes.
func JoinStores(a, b MapLattice) MapLattice {
	out := make(MapLattice, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = Join(out[k], v)
	}
	return out
}

// JoinAll folds JoinStores across every store in stores, returning an
// empty (all-⊥) MapLattice if stores is empty.
func JoinAll(stores []MapLattice) MapLattice {
	out := MapLattice{}
	for _, s := range stores {
		out = JoinStores(out, s)
	}
	return out
}

// With returns a copy of m with name bound to s; stores are treated as
// immutable so a solved node's store is never retroactively mutated by a
// later round.
func (m MapLattice) With(name string, s Sign) MapLattice {
	out := make(MapLattice, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[name] = s
	return out
}

// Equal reports whether two stores agree on every variable key.
func (m MapLattice) Equal(other MapLattice) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		if other[k] != v {
			return false
		}
	}
	return true
}

// Keys returns m's variable names, sorted, for deterministic printing.
func (m MapLattice) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
