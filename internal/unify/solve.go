package unify

import (
	"fmt"

	"github.com/chopinballadeno4/static-program-analysis/internal/diagnostics"
	"github.com/chopinballadeno4/static-program-analysis/internal/token"
	"github.com/chopinballadeno4/static-program-analysis/internal/types"
)

// Constraint is an unordered pair (T1, T2) meaning T1 = T2.
type Constraint struct {
	T1, T2 types.Type
	// Pos is used only for diagnostics; it has no bearing on solving.
	Pos token.Token
}

// Solve deduplicates constraints, registers every term (and sub-term)
// with makeSet, then unifies each constraint in traversal order. It
// returns the populated UnionFind on success, or the first unification
// failure encountered.
func Solve(constraints []Constraint) (*UnionFind, *diagnostics.DiagnosticError) {
	uf := New()

	seen := make(map[string]bool)
	var deduped []Constraint
	for _, c := range constraints {
		key := c.T1.Key() + "=" + c.T2.Key()
		altKey := c.T2.Key() + "=" + c.T1.Key()
		if seen[key] || seen[altKey] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, c)
	}

	for _, c := range deduped {
		uf.MakeSet(c.T1)
		uf.MakeSet(c.T2)
	}

	for _, c := range deduped {
		if err := unify(uf, c.T1, c.T2, c.Pos); err != nil {
			return uf, err
		}
	}
	return uf, nil
}

// unify implements the classic union-find unify(x, y): dereference both
// sides to their representatives, then bind a variable to a proper type
// (or merge two variables) or recurse structurally into two proper types
// of the same constructor.
func unify(uf *UnionFind, x, y types.Type, pos token.Token) *diagnostics.DiagnosticError {
	xr, yr := uf.Find(x), uf.Find(y)
	if xr.Key() == yr.Key() {
		return nil
	}

	xVar, yVar := types.IsVariable(xr), types.IsVariable(yr)

	switch {
	case xVar && yVar:
		uf.union(xr, yr)
		return nil
	case xVar && !yVar:
		uf.union(xr, yr)
		return nil
	case !xVar && yVar:
		uf.union(yr, xr)
		return nil
	}

	// Both proper types: same constructor required.
	switch a := xr.(type) {
	case types.IntType:
		if _, ok := yr.(types.IntType); ok {
			uf.union(xr, yr)
			return nil
		}
		return mismatch(pos, xr, yr)

	case types.PointerType:
		b, ok := yr.(types.PointerType)
		if !ok {
			return mismatch(pos, xr, yr)
		}
		uf.union(xr, yr)
		return unify(uf, a.Base, b.Base, pos)

	case types.FunctionType:
		b, ok := yr.(types.FunctionType)
		if !ok {
			return mismatch(pos, xr, yr)
		}
		if len(a.Params) != len(b.Params) {
			return diagnostics.NewTypeError(pos, fmt.Sprintf("function arity mismatch: %d vs %d", len(a.Params), len(b.Params)), xr, yr)
		}
		uf.union(xr, yr)
		for i := range a.Params {
			if err := unify(uf, a.Params[i], b.Params[i], pos); err != nil {
				return err
			}
		}
		return unify(uf, a.Result, b.Result, pos)

	case types.RecordType:
		b, ok := yr.(types.RecordType)
		if !ok {
			return mismatch(pos, xr, yr)
		}
		if len(a.Fields) != len(b.Fields) {
			return diagnostics.NewTypeError(pos, "record field set mismatch", xr, yr)
		}
		for name := range a.Fields {
			if _, ok := b.Fields[name]; !ok {
				return diagnostics.NewTypeError(pos, "record field set mismatch: missing "+name, xr, yr)
			}
		}
		uf.union(xr, yr)
		for name, v1 := range a.Fields {
			v2 := b.Fields[name]
			if _, ok := v1.(types.FreshVar); ok {
				continue
			}
			if _, ok := v2.(types.FreshVar); ok {
				continue
			}
			_, v1Absent := v1.(types.AbsenceType)
			_, v2Absent := v2.(types.AbsenceType)
			if v1Absent != v2Absent {
				return diagnostics.NewTypeError(pos, "absence/present mismatch in field "+name, v1, v2)
			}
			if v1Absent && v2Absent {
				continue
			}
			if err := unify(uf, v1, v2, pos); err != nil {
				return err
			}
		}
		return nil

	default:
		return mismatch(pos, xr, yr)
	}
}

func mismatch(pos token.Token, t1, t2 types.Type) *diagnostics.DiagnosticError {
	return diagnostics.NewTypeError(pos, "cannot unify distinct type constructors", t1, t2)
}
