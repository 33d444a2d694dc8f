// Package constraints implements an AST walk that emits type-equality
// constraints (plus the global record_fields set) for one TIP program: a
// walker that accumulates a flat constraint list and a separate
// deferred-constraint slice for two-phase record-row completion.
package constraints

import (
	"sort"

	"github.com/chopinballadeno4/static-program-analysis/internal/ast"
	"github.com/chopinballadeno4/static-program-analysis/internal/token"
	"github.com/chopinballadeno4/static-program-analysis/internal/types"
	"github.com/chopinballadeno4/static-program-analysis/internal/unify"
)

// deferredRecord holds a record literal's explicit fields until the whole
// program has been walked and the global field set is known.
type deferredRecord struct {
	Target types.Type
	Order  []string
	Fields map[string]types.Type
	Pos    token.Token
}

// deferredAccess holds a field access's single known field until the
// global field set is known.
type deferredAccess struct {
	Target    types.Type
	Field     string
	FieldType types.Type
	Pos       token.Token
}

// Collector walks a Program and produces a flat type-equality constraint
// list. A construct's own constraints are appended after those of its
// sub-expressions (an if or while emits its condition constraint before
// walking its body, and a function's signature constraint follows its
// body's), so the list is not in pre-order; the padded record and
// field-access rows come last, after the whole walk. Duplicate
// constraints are harmless and do not affect the solution.
type Collector struct {
	ast.BaseVisitor

	Gen *types.Generator

	constraints  []unify.Constraint
	recordFields map[string]bool

	deferredRecords  []deferredRecord
	deferredAccesses []deferredAccess
}

// NewCollector returns a Collector with its own fresh-variable generator.
func NewCollector() *Collector {
	return &Collector{
		Gen:          &types.Generator{},
		recordFields: make(map[string]bool),
	}
}

// Collect walks every function in prog and returns the completed
// constraint list (deferred record/field-access rows padded against the
// global field set) along with the global record_fields set itself.
func (c *Collector) Collect(prog *ast.Program) ([]unify.Constraint, map[string]bool) {
	for _, fn := range prog.Functions {
		c.visitFunction(fn)
	}
	c.completeDeferredRows()
	return c.constraints, c.recordFields
}

func (c *Collector) eq(pos token.Token, t1, t2 types.Type) {
	c.constraints = append(c.constraints, unify.Constraint{T1: t1, T2: t2, Pos: pos})
}

func tvOf(e ast.Expression) types.ExprTypeVar {
	return types.ExprTypeVar{ExprKey: e.Key(), Label: e.TokenLiteral()}
}

func (c *Collector) visitFunction(fn *ast.Function) {
	paramTypes := make([]types.Type, len(fn.Parameters))
	for i, p := range fn.Parameters {
		paramTypes[i] = tvOf(p)
	}

	for _, d := range fn.Body {
		c.visitStmt(d)
	}
	c.visitExpr(fn.Return)

	fnTV := types.ExprTypeVar{ExprKey: fn.Name.Key(), Label: fn.Name.Value}
	c.eq(fn.Token, fnTV, types.FunctionType{Params: paramTypes, Result: tvOf(fn.Return)})

	if fn.Name.Value == "main" {
		for _, p := range fn.Parameters {
			c.eq(p.Token, tvOf(p), types.IntType{})
		}
		c.eq(fn.Token, tvOf(fn.Return), types.IntType{})
	}
}

func (c *Collector) visitStmt(s ast.Statement) {
	switch n := s.(type) {
	case *ast.DeclarationStmt:
		// No constraint: declaring a variable leaves its type unconstrained
		// until first used.
	case *ast.AssignmentStmt:
		c.visitExpr(n.Value)
		c.eq(n.Token, tvOf(n.Name), tvOf(n.Value))
	case *ast.DereferenceAssignmentStmt:
		c.visitExpr(n.Target.Operand)
		c.visitExpr(n.Value)
		c.eq(n.Token, tvOf(n.Target.Operand), types.PointerType{Base: tvOf(n.Value)})
	case *ast.FieldAssignmentStmt:
		c.visitExpr(n.Value)
		c.recordFields[n.Field] = true
		c.deferredAccesses = append(c.deferredAccesses, deferredAccess{
			Target: tvOf(n.Record), Field: n.Field, FieldType: tvOf(n.Value), Pos: n.Token,
		})
	case *ast.DereferenceFieldAssignmentStmt:
		c.visitExpr(n.Target.Operand)
		c.visitExpr(n.Value)
		c.recordFields[n.Field] = true
		c.deferredAccesses = append(c.deferredAccesses, deferredAccess{
			Target: tvOf(n.Target.Operand), Field: n.Field, FieldType: tvOf(n.Value), Pos: n.Token,
		})
	case *ast.OutputStmt:
		c.visitExpr(n.Value)
		// output e requires e : int.
		c.eq(n.Token, tvOf(n.Value), types.IntType{})
	case *ast.IfStmt:
		c.visitExpr(n.Condition)
		c.eq(n.Token, tvOf(n.Condition), types.IntType{})
		for _, st := range n.Then {
			c.visitStmt(st)
		}
		for _, st := range n.Else {
			c.visitStmt(st)
		}
	case *ast.WhileStmt:
		c.visitExpr(n.Condition)
		c.eq(n.Token, tvOf(n.Condition), types.IntType{})
		for _, st := range n.Body {
			c.visitStmt(st)
		}
	case *ast.ReturnStmt:
		c.visitExpr(n.Value)
	}
}

func (c *Collector) visitExpr(e ast.Expression) {
	switch n := e.(type) {
	case *ast.Identifier:
		// No constraint.
	case *ast.IntLiteral:
		c.eq(n.Token, tvOf(n), types.IntType{})
	case *ast.InputExpr:
		c.eq(n.Token, tvOf(n), types.IntType{})
	case *ast.NullExpr:
		// null unifies with any pointer type; leave [null] unconstrained
		// (a free type variable) so it can be bound to whichever pointer
		// type it is compared/assigned against.
	case *ast.ReferenceExpr:
		c.eq(n.Token, tvOf(n), types.PointerType{Base: tvOf(n.Target)})
	case *ast.DereferenceExpr:
		c.visitExpr(n.Operand)
		c.eq(n.Token, tvOf(n.Operand), types.PointerType{Base: tvOf(n)})
	case *ast.AllocExpr:
		c.visitExpr(n.Operand)
		c.eq(n.Token, tvOf(n), types.PointerType{Base: tvOf(n.Operand)})
	case *ast.ArithmeticExpr:
		c.visitExpr(n.Left)
		c.visitExpr(n.Right)
		c.eq(n.Token, tvOf(n), types.IntType{})
		c.eq(n.Token, tvOf(n.Left), types.IntType{})
		c.eq(n.Token, tvOf(n.Right), types.IntType{})
	case *ast.ComparisonExpr:
		c.visitExpr(n.Left)
		c.visitExpr(n.Right)
		c.eq(n.Token, tvOf(n.Left), tvOf(n.Right))
		c.eq(n.Token, tvOf(n), types.IntType{})
	case *ast.FunctionCallExpr:
		c.visitExpr(n.Callee)
		argTypes := make([]types.Type, len(n.Args))
		for i, a := range n.Args {
			c.visitExpr(a)
			argTypes[i] = tvOf(a)
		}
		c.eq(n.Token, tvOf(n.Callee), types.FunctionType{Params: argTypes, Result: tvOf(n)})
	case *ast.RecordExpr:
		fields := make(map[string]types.Type, len(n.Fields))
		order := make([]string, 0, len(n.Fields))
		for _, f := range n.Fields {
			c.visitExpr(f.Value)
			fields[f.Label] = tvOf(f.Value)
			order = append(order, f.Label)
			c.recordFields[f.Label] = true
		}
		c.deferredRecords = append(c.deferredRecords, deferredRecord{
			Target: tvOf(n), Order: order, Fields: fields, Pos: n.Token,
		})
	case *ast.FieldAccessExpr:
		c.visitExpr(n.Record)
		c.recordFields[n.Field] = true
		c.deferredAccesses = append(c.deferredAccesses, deferredAccess{
			Target: tvOf(n.Record), Field: n.Field, FieldType: tvOf(n), Pos: n.Token,
		})
	}
}

// completeDeferredRows pads every deferred record literal and field
// access to the full global record_fields width: absence for fields a
// record literal never mentions, a fresh type variable for fields a
// field access never mentions.
func (c *Collector) completeDeferredRows() {
	allFields := make([]string, 0, len(c.recordFields))
	for f := range c.recordFields {
		allFields = append(allFields, f)
	}
	sort.Strings(allFields)

	for _, d := range c.deferredRecords {
		order := append([]string{}, d.Order...)
		fields := make(map[string]types.Type, len(allFields))
		for k, v := range d.Fields {
			fields[k] = v
		}
		for _, f := range allFields {
			if _, ok := fields[f]; !ok {
				fields[f] = types.AbsenceType{}
				order = append(order, f)
			}
		}
		c.eq(d.Pos, d.Target, types.NewRecordType(order, fields))
	}

	for _, d := range c.deferredAccesses {
		order := make([]string, 0, len(allFields))
		fields := make(map[string]types.Type, len(allFields))
		for _, f := range allFields {
			order = append(order, f)
			if f == d.Field {
				fields[f] = d.FieldType
			} else {
				fields[f] = c.Gen.Fresh()
			}
		}
		c.eq(d.Pos, d.Target, types.NewRecordType(order, fields))
	}
}
