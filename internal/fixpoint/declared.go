package fixpoint

import (
	"github.com/chopinballadeno4/static-program-analysis/internal/ast"
	"github.com/chopinballadeno4/static-program-analysis/internal/sign"
)

// DeclaredVars returns every variable name fn ever binds — its
// parameters plus every name introduced by a declaration statement,
// recursively through if/while bodies. The Entry node's incoming store
// maps each of these to Top before any statement has run.
func DeclaredVars(fn *ast.Function) []string {
	var names []string
	seen := map[string]bool{}
	add := func(n string) {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	for _, p := range fn.Parameters {
		add(p.Value)
	}
	var walk func(stmts []ast.Statement)
	walk = func(stmts []ast.Statement) {
		for _, stmt := range stmts {
			switch s := stmt.(type) {
			case *ast.DeclarationStmt:
				for _, id := range s.Names {
					add(id.Value)
				}
			case *ast.IfStmt:
				walk(s.Then)
				walk(s.Else)
			case *ast.WhileStmt:
				walk(s.Body)
			}
		}
	}
	walk(fn.Body)
	return names
}

// InitialStore builds the λx.⊤ environment over a set of declared names.
func InitialStore(names []string) sign.MapLattice {
	out := make(sign.MapLattice, len(names))
	for _, n := range names {
		out[n] = sign.Top
	}
	return out
}
