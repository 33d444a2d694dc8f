package cfg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chopinballadeno4/static-program-analysis/internal/parser"
)

func mainOf(t *testing.T, src string) *Graph {
	t.Helper()
	prog, errs := parser.ParseProgram(src)
	require.Empty(t, errs)
	fn := prog.FindFunction("main")
	require.NotNil(t, fn)
	return Build(fn)
}

func TestBuildStraightLineChainsEveryStatementToExit(t *testing.T) {
	g := mainOf(t, `main() { var x; x = 1; x = 2; return x; }`)

	var kinds []Kind
	g.Walk(func(n *Node) { kinds = append(kinds, n.Kind) })

	require.Contains(t, kinds, Entry)
	require.Contains(t, kinds, Exit)
	// var decl + two assignments + synthesized return = 4 Normal nodes.
	count := 0
	for _, k := range kinds {
		if k == Normal {
			count++
		}
	}
	require.Equal(t, 4, count)
}

func TestBuildIfProducesTwoBranchSuccessors(t *testing.T) {
	g := mainOf(t, `main() {
		var x;
		if (input) { x = 1; } else { x = 2; }
		return x;
	}`)

	var branch *Node
	g.Walk(func(n *Node) {
		if n.Kind == Branch {
			branch = n
		}
	})
	require.NotNil(t, branch)
	require.Equal(t, IfBranch, branch.Category)
	require.Len(t, branch.Succ, 2)
}

func TestBuildWhileCreatesBackEdge(t *testing.T) {
	g := mainOf(t, `main() {
		var x;
		x = 0;
		while (input) { x = x + 1; }
		return x;
	}`)

	var branch *Node
	g.Walk(func(n *Node) {
		if n.Kind == Branch {
			branch = n
		}
	})
	require.NotNil(t, branch)
	require.Equal(t, WhileBranch, branch.Category)

	// The branch node must appear among the successors of its own body
	// head (the single body statement) — i.e. a back-edge exists.
	bodyHead := branch.Succ[0]
	require.Contains(t, g.Node(bodyHead).Succ, branch.ID)
}

func TestWalkVisitsEachNodeExactlyOnceDespiteBackEdge(t *testing.T) {
	g := mainOf(t, `main() {
		var x;
		x = 0;
		while (input) { x = x + 1; }
		return x;
	}`)

	seen := map[int]int{}
	g.Walk(func(n *Node) { seen[n.ID]++ })
	for id, count := range seen {
		require.Equalf(t, 1, count, "node %d visited %d times", id, count)
	}
}

func TestEntryAndExitAreDistinctNodes(t *testing.T) {
	g := mainOf(t, `main() { return 0; }`)
	require.NotEqual(t, g.Entry, g.Exit)
	require.Equal(t, Entry, g.Node(g.Entry).Kind)
	require.Equal(t, Exit, g.Node(g.Exit).Kind)
}
