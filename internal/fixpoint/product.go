// Package fixpoint implements the naive fixed-point algorithm over the
// product lattice: one sign.MapLattice per CFG node, the whole vector
// reassigned each round until x == f(x). The repeated-pass convergence
// shape mirrors the kind of worklist-free solver loop used to drive
// unification variables to a fixed point, adapted here from
// unification-variable convergence to lattice-value convergence.
package fixpoint

import "github.com/chopinballadeno4/static-program-analysis/internal/sign"

// ProductLattice is a vector of MapLattice indexed by CFG node ID. A nil
// entry represents ⊥ for that node.
type ProductLattice []sign.MapLattice

// Equal reports whether two vectors are pointwise equal.
func Equal(a, b ProductLattice) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Clone returns a copy so callers can compare before/after without
// aliasing.
func (p ProductLattice) Clone() ProductLattice {
	out := make(ProductLattice, len(p))
	copy(out, p)
	return out
}
