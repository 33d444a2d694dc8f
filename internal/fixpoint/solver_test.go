package fixpoint

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chopinballadeno4/static-program-analysis/internal/cfg"
	"github.com/chopinballadeno4/static-program-analysis/internal/parser"
	"github.com/chopinballadeno4/static-program-analysis/internal/sign"
)

func TestSolveStraightLineAssignment(t *testing.T) {
	src := `main() { var x, y; x = 3; y = 0 - x; return y; }`
	prog, errs := parser.ParseProgram(src)
	require.Empty(t, errs)
	main := prog.FindFunction("main")
	require.NotNil(t, main)
	g := cfg.Build(main)

	result := Solve(g, main)
	exit := result.At(g.Exit)
	require.NotNil(t, exit)

	require.Equal(t, sign.Pos, exit.Get("x"))
	require.Equal(t, sign.Neg, exit.Get("y"), "0 - (+) must be (-)")
}

func TestSolveJoinsAcrossIfBranches(t *testing.T) {
	src := `main() {
		var x;
		if (input) { x = 1; } else { x = 0 - 1; }
		return x;
	}`
	prog, _ := parser.ParseProgram(src)
	main := prog.FindFunction("main")
	g := cfg.Build(main)

	result := Solve(g, main)
	exit := result.At(g.Exit)
	require.Equal(t, sign.Top, exit.Get("x"), "joining + and - must widen to top")
}

func TestSolveConvergesOnLoop(t *testing.T) {
	src := `main() {
		var x;
		x = 1;
		while (input) { x = x + 1; }
		return x;
	}`
	prog, _ := parser.ParseProgram(src)
	main := prog.FindFunction("main")
	g := cfg.Build(main)

	result := Solve(g, main)
	exit := result.At(g.Exit)
	// x starts at +, and the loop body keeps it + (+ + + = +), so the
	// join at the loop guard of the entry value and the back-edge value
	// stays +; the solver converges with x = + at exit, never ⊥.
	require.NotEqual(t, sign.Bottom, exit.Get("x"))
}

func TestDeclaredVarsIncludesParamsAndNestedDeclarations(t *testing.T) {
	src := `main(n) {
		var x;
		if (n) { var y; y = 1; } else { }
		return n;
	}`
	prog, _ := parser.ParseProgram(src)
	main := prog.FindFunction("main")

	got := DeclaredVars(main)
	require.ElementsMatch(t, []string{"n", "x", "y"}, got)
}

func TestEqualProductLattice(t *testing.T) {
	a := ProductLattice{sign.MapLattice{"x": sign.Pos}, nil}
	b := ProductLattice{sign.MapLattice{"x": sign.Pos}, nil}
	c := ProductLattice{sign.MapLattice{"x": sign.Neg}, nil}

	require.True(t, Equal(a, b))
	require.False(t, Equal(a, c))
}
