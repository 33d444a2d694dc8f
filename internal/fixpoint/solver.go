package fixpoint

import (
	"github.com/chopinballadeno4/static-program-analysis/internal/ast"
	"github.com/chopinballadeno4/static-program-analysis/internal/cfg"
	"github.com/chopinballadeno4/static-program-analysis/internal/sign"
)

// Result is the solved analysis: the store at every CFG node, indexed by
// node ID, plus the function's declared-variable initial store (handy
// for printing what Entry starts from).
type Result struct {
	Graph   *cfg.Graph
	Stores  ProductLattice
	Initial sign.MapLattice
}

// At returns the solved store for the given node ID.
func (r *Result) At(nodeID int) sign.MapLattice { return r.Stores[nodeID] }

// Solve runs the round-robin fixed-point iteration to convergence: start
// every node at ⊥ and repeatedly reapply the transfer function until the
// whole vector stops changing. Termination is guaranteed because every
// node's store only ever grows in the lattice order and the lattice has
// finite height, so the chain of vectors is strictly increasing and
// bounded.
func Solve(g *cfg.Graph, fn *ast.Function) *Result {
	initial := InitialStore(DeclaredVars(fn))

	x := make(ProductLattice, len(g.Nodes))
	for {
		next := make(ProductLattice, len(g.Nodes))
		for _, n := range g.Nodes {
			var in sign.MapLattice
			if n.Kind == cfg.Entry {
				in = initial
			} else {
				preds := make([]sign.MapLattice, len(n.Pred))
				for i, p := range n.Pred {
					preds[i] = x[p]
				}
				in = sign.JoinAll(preds)
			}
			next[n.ID] = sign.Transfer(n.Stmt, in)
		}
		if Equal(next, x) {
			return &Result{Graph: g, Stores: next, Initial: initial}
		}
		x = next
	}
}
