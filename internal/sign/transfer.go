package sign

import "github.com/chopinballadeno4/static-program-analysis/internal/ast"

// Eval is the abstract evaluator ⟦e⟧σ. Expression kinds the sign lattice
// has no opinion about (pointers, records, calls — TIP values that are
// not integers) evaluate to ⊤: a safe over-approximation, since
// MapLattice binds every declared variable regardless of the runtime
// kind of value it happens to hold (sign analysis is untyped).
func Eval(e ast.Expression, sigma MapLattice) Sign {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return OfInt(n.Value)
	case *ast.Identifier:
		return sigma.Get(n.Value)
	case *ast.InputExpr:
		return Top
	case *ast.ArithmeticExpr:
		l, r := Eval(n.Left, sigma), Eval(n.Right, sigma)
		switch n.Op {
		case ast.Add:
			return Add(l, r)
		case ast.Sub:
			return Sub(l, r)
		case ast.Mul:
			return Mul(l, r)
		case ast.Div:
			return Div(l, r)
		}
		return Top
	case *ast.ComparisonExpr:
		l, r := Eval(n.Left, sigma), Eval(n.Right, sigma)
		if n.Op == ast.CmpEq {
			return Eq(l, r)
		}
		return Gt(l, r)
	default:
		return Top
	}
}

// Transfer implements f_n(σ) for one CFG node's statement. stmt is nil
// for Entry/Exit nodes; Branch nodes carry their if/while statement, which
// falls to the identity case: branch conditions do not refine σ in this
// design, so Branch nodes pass their store through unchanged.
func Transfer(stmt ast.Statement, sigma MapLattice) MapLattice {
	switch s := stmt.(type) {
	case *ast.AssignmentStmt:
		return sigma.With(s.Name.Value, Eval(s.Value, sigma))
	case *ast.DeclarationStmt:
		out := sigma
		for _, id := range s.Names {
			out = out.With(id.Value, Top)
		}
		return out
	default:
		return sigma
	}
}
