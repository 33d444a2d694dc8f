package unify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chopinballadeno4/static-program-analysis/internal/types"
)

func TestSolveUnifiesVariableWithInt(t *testing.T) {
	a := types.ExprTypeVar{ExprKey: "a"}
	uf, err := Solve([]Constraint{{T1: a, T2: types.IntType{}}})
	require.Nil(t, err)
	require.Equal(t, types.IntType{}.Key(), uf.Find(a).Key())
}

func TestSolveRecursesIntoPointerBase(t *testing.T) {
	a := types.ExprTypeVar{ExprKey: "a"}
	p1 := types.PointerType{Base: a}
	p2 := types.PointerType{Base: types.IntType{}}

	uf, err := Solve([]Constraint{{T1: p1, T2: p2}})
	require.Nil(t, err)
	require.Equal(t, types.IntType{}.Key(), uf.Find(a).Key())
}

func TestSolveFailsOnConstructorMismatch(t *testing.T) {
	_, err := Solve([]Constraint{{T1: types.IntType{}, T2: types.PointerType{Base: types.IntType{}}}})
	require.NotNil(t, err)
}

func TestSolveFailsOnFunctionArityMismatch(t *testing.T) {
	f1 := types.FunctionType{Params: []types.Type{types.IntType{}}, Result: types.IntType{}}
	f2 := types.FunctionType{Params: []types.Type{types.IntType{}, types.IntType{}}, Result: types.IntType{}}

	_, err := Solve([]Constraint{{T1: f1, T2: f2}})
	require.NotNil(t, err)
}

func TestSolveRecordsUnifyMatchingFieldSets(t *testing.T) {
	a := types.ExprTypeVar{ExprKey: "a"}
	r1 := types.NewRecordType([]string{"x"}, map[string]types.Type{"x": a})
	r2 := types.NewRecordType([]string{"x"}, map[string]types.Type{"x": types.IntType{}})

	uf, err := Solve([]Constraint{{T1: r1, T2: r2}})
	require.Nil(t, err)
	require.Equal(t, types.IntType{}.Key(), uf.Find(a).Key())
}

func TestSolveRecordsRejectDifferentFieldSets(t *testing.T) {
	r1 := types.NewRecordType([]string{"x"}, map[string]types.Type{"x": types.IntType{}})
	r2 := types.NewRecordType([]string{"y"}, map[string]types.Type{"y": types.IntType{}})

	_, err := Solve([]Constraint{{T1: r1, T2: r2}})
	require.NotNil(t, err)
}

func TestSolveDeduplicatesSymmetricConstraints(t *testing.T) {
	a := types.ExprTypeVar{ExprKey: "a"}
	b := types.ExprTypeVar{ExprKey: "b"}

	uf, err := Solve([]Constraint{
		{T1: a, T2: b},
		{T1: b, T2: a},
	})
	require.Nil(t, err)
	require.Equal(t, uf.Find(a).Key(), uf.Find(b).Key())
}

func TestSolveRejectsAbsencePresentMismatch(t *testing.T) {
	r1 := types.NewRecordType([]string{"x"}, map[string]types.Type{"x": types.AbsenceType{}})
	r2 := types.NewRecordType([]string{"x"}, map[string]types.Type{"x": types.IntType{}})

	_, err := Solve([]Constraint{{T1: r1, T2: r2}})
	require.NotNil(t, err)
}
