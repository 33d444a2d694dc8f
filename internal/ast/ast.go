// Package ast defines the TIP abstract syntax tree: a Program is a list of
// Functions, each owning a parameter list, a statement list, and a return
// expression. Every node implements Accept(Visitor) for dispatch;
// expressions and statements also implement GetToken() for diagnostics.
//
// Two expressions are semantically equal iff their Key() strings match,
// which in turn requires every semantic field to match. Key() is the
// canonical structural identity used to key type variables in the
// unifier; it deliberately ignores source position so that re-parsing
// identical source always produces identical keys.
package ast

import "github.com/chopinballadeno4/static-program-analysis/internal/token"

// Node is the base interface implemented by every AST node.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
}

// Expression is a Node that yields a value.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
	// Key returns the canonical structural identity of this expression,
	// used as the identity of its associated type variable.
	Key() string
}

// Statement is a Node that has an effect but no value.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Program is the root node: an ordered list of function definitions.
type Program struct {
	Functions []*Function
}

func (p *Program) TokenLiteral() string {
	if len(p.Functions) > 0 {
		return p.Functions[0].TokenLiteral()
	}
	return ""
}
func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }

// FindFunction returns the function named name, or nil.
func (p *Program) FindFunction(name string) *Function {
	for _, f := range p.Functions {
		if f.Name.Value == name {
			return f
		}
	}
	return nil
}

// Function is a top-level definition: name(params){ stmts; return expr; }
type Function struct {
	Token      token.Token
	Name       *Identifier
	Parameters []*Identifier
	Body       []Statement
	Return     Expression
}

func (f *Function) TokenLiteral() string { return f.Token.Lexeme }
func (f *Function) Accept(v Visitor)     { v.VisitFunction(f) }

// ---- Expressions ----

// Identifier names a variable or function.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}
func (i *Identifier) Accept(v Visitor) { v.VisitIdentifier(i) }
func (i *Identifier) Key() string      { return "Id(" + i.Value + ")" }

// IntLiteral is a constant integer.
type IntLiteral struct {
	Token token.Token
	Value int64
}

func (n *IntLiteral) expressionNode()       {}
func (n *IntLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *IntLiteral) GetToken() token.Token { return n.Token }
func (n *IntLiteral) Accept(v Visitor)      { v.VisitIntLiteral(n) }
func (n *IntLiteral) Key() string           { return "Int(" + n.Token.Lexeme + ")" }

// InputExpr is the `input` expression: reads an integer from stdin.
type InputExpr struct {
	Token token.Token
}

func (n *InputExpr) expressionNode()       {}
func (n *InputExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *InputExpr) GetToken() token.Token { return n.Token }
func (n *InputExpr) Accept(v Visitor)      { v.VisitInputExpr(n) }
func (n *InputExpr) Key() string           { return "Input" }

// NullExpr is the `null` pointer literal.
type NullExpr struct {
	Token token.Token
}

func (n *NullExpr) expressionNode()       {}
func (n *NullExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NullExpr) GetToken() token.Token { return n.Token }
func (n *NullExpr) Accept(v Visitor)      { v.VisitNullExpr(n) }
func (n *NullExpr) Key() string           { return "Null" }

// ReferenceExpr is `&x`: the address of a variable.
type ReferenceExpr struct {
	Token  token.Token
	Target *Identifier
}

func (n *ReferenceExpr) expressionNode()       {}
func (n *ReferenceExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *ReferenceExpr) GetToken() token.Token { return n.Token }
func (n *ReferenceExpr) Accept(v Visitor)      { v.VisitReferenceExpr(n) }
func (n *ReferenceExpr) Key() string           { return "Ref(" + n.Target.Key() + ")" }

// DereferenceExpr is `*e`.
type DereferenceExpr struct {
	Token   token.Token
	Operand Expression
}

func (n *DereferenceExpr) expressionNode()       {}
func (n *DereferenceExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *DereferenceExpr) GetToken() token.Token { return n.Token }
func (n *DereferenceExpr) Accept(v Visitor)      { v.VisitDereferenceExpr(n) }
func (n *DereferenceExpr) Key() string           { return "Deref(" + n.Operand.Key() + ")" }

// AllocExpr is `alloc e`: heap-allocates a cell initialized to e.
type AllocExpr struct {
	Token   token.Token
	Operand Expression
}

func (n *AllocExpr) expressionNode()       {}
func (n *AllocExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *AllocExpr) GetToken() token.Token { return n.Token }
func (n *AllocExpr) Accept(v Visitor)      { v.VisitAllocExpr(n) }
func (n *AllocExpr) Key() string           { return "Alloc(" + n.Operand.Key() + ")" }

// ArithOp is one of + - * /.
type ArithOp int

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
)

func (op ArithOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	}
	return "?"
}

// ArithmeticExpr is `l op r` for an arithmetic operator.
type ArithmeticExpr struct {
	Token token.Token
	Left  Expression
	Op    ArithOp
	Right Expression
}

func (n *ArithmeticExpr) expressionNode()       {}
func (n *ArithmeticExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *ArithmeticExpr) GetToken() token.Token { return n.Token }
func (n *ArithmeticExpr) Accept(v Visitor)      { v.VisitArithmeticExpr(n) }
func (n *ArithmeticExpr) Key() string {
	return "Arith(" + n.Left.Key() + n.Op.String() + n.Right.Key() + ")"
}

// CompOp is == or >.
type CompOp int

const (
	CmpEq CompOp = iota
	CmpGt
)

func (op CompOp) String() string {
	if op == CmpEq {
		return "=="
	}
	return ">"
}

// ComparisonExpr is `l == r` or `l > r`.
type ComparisonExpr struct {
	Token token.Token
	Left  Expression
	Op    CompOp
	Right Expression
}

func (n *ComparisonExpr) expressionNode()       {}
func (n *ComparisonExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *ComparisonExpr) GetToken() token.Token { return n.Token }
func (n *ComparisonExpr) Accept(v Visitor)      { v.VisitComparisonExpr(n) }
func (n *ComparisonExpr) Key() string {
	return "Cmp(" + n.Left.Key() + n.Op.String() + n.Right.Key() + ")"
}

// FunctionCallExpr is `f(a1, ..., an)`; f is itself an expression (usually
// an Identifier naming a first-class function).
type FunctionCallExpr struct {
	Token    token.Token
	Callee   Expression
	Args     []Expression
}

func (n *FunctionCallExpr) expressionNode()       {}
func (n *FunctionCallExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *FunctionCallExpr) GetToken() token.Token { return n.Token }
func (n *FunctionCallExpr) Accept(v Visitor)      { v.VisitFunctionCallExpr(n) }
func (n *FunctionCallExpr) Key() string {
	k := "Call(" + n.Callee.Key() + ";"
	for i, a := range n.Args {
		if i > 0 {
			k += ","
		}
		k += a.Key()
	}
	return k + ")"
}

// RecordField is one `label: expr` entry of a record literal.
type RecordField struct {
	Label string
	Value Expression
}

// RecordExpr is `{l1: e1, ..., ln: en}`.
type RecordExpr struct {
	Token  token.Token
	Fields []RecordField
}

func (n *RecordExpr) expressionNode()       {}
func (n *RecordExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *RecordExpr) GetToken() token.Token { return n.Token }
func (n *RecordExpr) Accept(v Visitor)      { v.VisitRecordExpr(n) }
func (n *RecordExpr) Key() string {
	// Record literal identity is order-sensitive in source but the set of
	// labels must still be syntactically fixed per node, so sorting is
	// unnecessary here: two textually identical literals always list
	// fields in the same order.
	k := "Record("
	for i, f := range n.Fields {
		if i > 0 {
			k += ","
		}
		k += f.Label + ":" + f.Value.Key()
	}
	return k + ")"
}

// FieldAccessExpr is `e.l`.
type FieldAccessExpr struct {
	Token  token.Token
	Record Expression
	Field  string
}

func (n *FieldAccessExpr) expressionNode()       {}
func (n *FieldAccessExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *FieldAccessExpr) GetToken() token.Token { return n.Token }
func (n *FieldAccessExpr) Accept(v Visitor)      { v.VisitFieldAccessExpr(n) }
func (n *FieldAccessExpr) Key() string {
	return "Field(" + n.Record.Key() + "." + n.Field + ")"
}

// ---- Statements ----

// DeclarationStmt is `var x1, ..., xn;`.
type DeclarationStmt struct {
	Token token.Token
	Names []*Identifier
}

func (s *DeclarationStmt) statementNode()       {}
func (s *DeclarationStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *DeclarationStmt) GetToken() token.Token { return s.Token }
func (s *DeclarationStmt) Accept(v Visitor)      { v.VisitDeclarationStmt(s) }

// AssignmentStmt is `x = e;`.
type AssignmentStmt struct {
	Token token.Token
	Name  *Identifier
	Value Expression
}

func (s *AssignmentStmt) statementNode()        {}
func (s *AssignmentStmt) TokenLiteral() string   { return s.Token.Lexeme }
func (s *AssignmentStmt) GetToken() token.Token  { return s.Token }
func (s *AssignmentStmt) Accept(v Visitor)       { v.VisitAssignmentStmt(s) }

// DereferenceAssignmentStmt is `*e1 = e2;`.
type DereferenceAssignmentStmt struct {
	Token  token.Token
	Target *DereferenceExpr
	Value  Expression
}

func (s *DereferenceAssignmentStmt) statementNode()       {}
func (s *DereferenceAssignmentStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *DereferenceAssignmentStmt) GetToken() token.Token { return s.Token }
func (s *DereferenceAssignmentStmt) Accept(v Visitor)      { v.VisitDereferenceAssignmentStmt(s) }

// FieldAssignmentStmt is `x.f = e;`.
type FieldAssignmentStmt struct {
	Token  token.Token
	Record *Identifier
	Field  string
	Value  Expression
}

func (s *FieldAssignmentStmt) statementNode()       {}
func (s *FieldAssignmentStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *FieldAssignmentStmt) GetToken() token.Token { return s.Token }
func (s *FieldAssignmentStmt) Accept(v Visitor)      { v.VisitFieldAssignmentStmt(s) }

// DereferenceFieldAssignmentStmt is `(*e).f = e2;`.
type DereferenceFieldAssignmentStmt struct {
	Token  token.Token
	Target *DereferenceExpr
	Field  string
	Value  Expression
}

func (s *DereferenceFieldAssignmentStmt) statementNode()       {}
func (s *DereferenceFieldAssignmentStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *DereferenceFieldAssignmentStmt) GetToken() token.Token { return s.Token }
func (s *DereferenceFieldAssignmentStmt) Accept(v Visitor)      { v.VisitDereferenceFieldAssignmentStmt(s) }

// OutputStmt is `output e;`.
type OutputStmt struct {
	Token token.Token
	Value Expression
}

func (s *OutputStmt) statementNode()       {}
func (s *OutputStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *OutputStmt) GetToken() token.Token { return s.Token }
func (s *OutputStmt) Accept(v Visitor)      { v.VisitOutputStmt(s) }

// IfStmt is `if(cond){then}else{else}`; Else is nil when absent.
type IfStmt struct {
	Token     token.Token
	Condition Expression
	Then      []Statement
	Else      []Statement // nil if no else branch
}

func (s *IfStmt) statementNode()       {}
func (s *IfStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *IfStmt) GetToken() token.Token { return s.Token }
func (s *IfStmt) Accept(v Visitor)      { v.VisitIfStmt(s) }

// WhileStmt is `while(cond){body}`.
type WhileStmt struct {
	Token     token.Token
	Condition Expression
	Body      []Statement
}

func (s *WhileStmt) statementNode()       {}
func (s *WhileStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *WhileStmt) GetToken() token.Token { return s.Token }
func (s *WhileStmt) Accept(v Visitor)      { v.VisitWhileStmt(s) }

// ReturnStmt is `return e;`.
type ReturnStmt struct {
	Token token.Token
	Value Expression
}

func (s *ReturnStmt) statementNode()       {}
func (s *ReturnStmt) TokenLiteral() string { return s.Token.Lexeme }
func (s *ReturnStmt) GetToken() token.Token { return s.Token }
func (s *ReturnStmt) Accept(v Visitor)      { v.VisitReturnStmt(s) }
