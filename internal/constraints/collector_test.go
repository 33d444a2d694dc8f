package constraints

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chopinballadeno4/static-program-analysis/internal/ast"
	"github.com/chopinballadeno4/static-program-analysis/internal/parser"
	"github.com/chopinballadeno4/static-program-analysis/internal/types"
	"github.com/chopinballadeno4/static-program-analysis/internal/unify"
)

func solve(t *testing.T, src string) (*unify.UnionFind, *ast.Program, map[string]bool) {
	t.Helper()
	prog, errs := parser.ParseProgram(src)
	require.Empty(t, errs)

	c := NewCollector()
	cs, fields := c.Collect(prog)
	uf, err := unify.Solve(cs)
	require.Nil(t, err)
	return uf, prog, fields
}

func idVar(name string) types.ExprTypeVar {
	return types.ExprTypeVar{ExprKey: (&ast.Identifier{Value: name}).Key(), Label: name}
}

func TestOutputRequiresInt(t *testing.T) {
	uf, _, _ := solve(t, `main() { var x; x = 1; output x; return x; }`)
	require.Equal(t, types.IntType{}.Key(), uf.Find(idVar("x")).Key())
}

func TestIfConditionMustBeInt(t *testing.T) {
	prog, errs := parser.ParseProgram(`main() {
		var x, c;
		if (c) { x = 1; } else { x = 2; }
		return x;
	}`)
	require.Empty(t, errs)

	c := NewCollector()
	cs, _ := c.Collect(prog)
	uf, err := unify.Solve(cs)
	require.Nil(t, err)
	require.Equal(t, types.IntType{}.Key(), uf.Find(idVar("c")).Key())
	require.Equal(t, types.IntType{}.Key(), uf.Find(idVar("x")).Key())
}

func TestRecordFieldAccessIsPaddedAgainstGlobalFieldSet(t *testing.T) {
	_, _, fields := solve(t, `main() {
		var p, q, x;
		p = {a: 1, b: 2};
		q = {a: 3};
		x = p.b;
		return x;
	}`)
	require.True(t, fields["a"])
	require.True(t, fields["b"])
}

func TestRecordLiteralRowCompletesWithAbsence(t *testing.T) {
	prog, errs := parser.ParseProgram(`main() {
		var p, q;
		p = {a: 1};
		q = {b: 2};
		return 0;
	}`)
	require.Empty(t, errs)

	c := NewCollector()
	cs, fields := c.Collect(prog)
	require.Len(t, fields, 2)

	uf, err := unify.Solve(cs)
	require.Nil(t, err)
	require.NotNil(t, uf)
}

func TestMainParametersAndReturnAreConstrainedToInt(t *testing.T) {
	uf, _, _ := solve(t, `main(n) { return n; }`)
	require.Equal(t, types.IntType{}.Key(), uf.Find(idVar("n")).Key())
}

func TestFieldSetMismatchIsARealUnificationError(t *testing.T) {
	r1 := types.NewRecordType([]string{"x"}, map[string]types.Type{"x": types.IntType{}})
	r2 := types.NewRecordType([]string{"y"}, map[string]types.Type{"y": types.IntType{}})
	_, err := unify.Solve([]unify.Constraint{{T1: r1, T2: r2}})
	require.NotNil(t, err)
}
