// Package parser implements a recursive-descent / precedence-climbing
// parser for TIP: a token-stream-with-lookahead style with one parseXxx
// method per grammar construct. TIP's concrete syntax maps 1:1 onto the
// abstract syntax in internal/ast except for parenthesization, so this
// parser lowers directly into *ast.Program instead of staging a separate
// CST: grouping parentheses are consumed but never produce a node, so
// parenthesization is erased at parse time without a second pass.
package parser

import (
	"fmt"

	"github.com/chopinballadeno4/static-program-analysis/internal/ast"
	"github.com/chopinballadeno4/static-program-analysis/internal/diagnostics"
	"github.com/chopinballadeno4/static-program-analysis/internal/lexer"
	"github.com/chopinballadeno4/static-program-analysis/internal/token"
)

type Parser struct {
	l *lexer.Lexer

	cur  token.Token
	peek token.Token

	errors []*diagnostics.DiagnosticError
}

func New(input string) *Parser {
	p := &Parser{l: lexer.New(input)}
	p.next()
	p.next()
	return p
}

func (p *Parser) Errors() []*diagnostics.DiagnosticError { return p.errors }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(pos token.Token, format string, args ...interface{}) {
	p.errors = append(p.errors, diagnostics.NewError(diagnostics.ErrParse001, pos, fmt.Sprintf(format, args...)))
}

func (p *Parser) expect(k token.Kind) token.Token {
	t := p.cur
	if p.cur.Kind != k {
		p.errorf(p.cur, "expected %s, got %s %q", k, p.cur.Kind, p.cur.Lexeme)
	}
	p.next()
	return t
}

// ParseProgram parses a whole TIP source file into a Program of Functions.
func ParseProgram(input string) (*ast.Program, []*diagnostics.DiagnosticError) {
	p := New(input)
	prog := &ast.Program{}
	for p.cur.Kind != token.EOF {
		fn := p.parseFunction()
		if fn != nil {
			prog.Functions = append(prog.Functions, fn)
		}
		if len(p.errors) > 0 && fn == nil {
			// Avoid infinite loop on unrecoverable error.
			break
		}
	}
	return prog, p.errors
}

func (p *Parser) parseFunction() *ast.Function {
	if p.cur.Kind != token.IDENT {
		p.errorf(p.cur, "expected function name, got %q", p.cur.Lexeme)
		p.next()
		return nil
	}
	fn := &ast.Function{Token: p.cur, Name: &ast.Identifier{Token: p.cur, Value: p.cur.Lexeme}}
	p.next()

	p.expect(token.LPAREN)
	for p.cur.Kind != token.RPAREN {
		if p.cur.Kind != token.IDENT {
			p.errorf(p.cur, "expected parameter name, got %q", p.cur.Lexeme)
			break
		}
		fn.Parameters = append(fn.Parameters, &ast.Identifier{Token: p.cur, Value: p.cur.Lexeme})
		p.next()
		if p.cur.Kind == token.COMMA {
			p.next()
		}
	}
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)

	for p.cur.Kind == token.VAR {
		fn.Body = append(fn.Body, p.parseDeclaration())
	}
	for p.cur.Kind != token.RETURN && p.cur.Kind != token.RBRACE && p.cur.Kind != token.EOF {
		fn.Body = append(fn.Body, p.parseStatement())
	}
	p.expect(token.RETURN)
	fn.Return = p.parseExpression(precLowest)
	p.expect(token.SEMI)
	p.expect(token.RBRACE)

	return fn
}

func (p *Parser) parseBlock() []ast.Statement {
	p.expect(token.LBRACE)
	var stmts []ast.Statement
	for p.cur.Kind != token.RBRACE && p.cur.Kind != token.EOF {
		stmts = append(stmts, p.parseStatement())
	}
	p.expect(token.RBRACE)
	return stmts
}

func (p *Parser) parseDeclaration() ast.Statement {
	tok := p.cur
	p.expect(token.VAR)
	decl := &ast.DeclarationStmt{Token: tok}
	for {
		name := p.expect(token.IDENT)
		decl.Names = append(decl.Names, &ast.Identifier{Token: name, Value: name.Lexeme})
		if p.cur.Kind == token.COMMA {
			p.next()
			continue
		}
		break
	}
	p.expect(token.SEMI)
	return decl
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case token.VAR:
		return p.parseDeclaration()
	case token.OUTPUT:
		return p.parseOutput()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.STAR:
		return p.parseDerefAssignment()
	case token.LPAREN:
		return p.parseDerefFieldAssignment()
	case token.IDENT:
		return p.parseIdentStatement()
	default:
		p.errorf(p.cur, "unexpected token %q starting statement", p.cur.Lexeme)
		p.next()
		return nil
	}
}

func (p *Parser) parseOutput() ast.Statement {
	tok := p.expect(token.OUTPUT)
	val := p.parseExpression(precLowest)
	p.expect(token.SEMI)
	return &ast.OutputStmt{Token: tok, Value: val}
}

func (p *Parser) parseIf() ast.Statement {
	tok := p.expect(token.IF)
	p.expect(token.LPAREN)
	cond := p.parseExpression(precLowest)
	p.expect(token.RPAREN)
	then := p.parseBlock()
	stmt := &ast.IfStmt{Token: tok, Condition: cond, Then: then}
	if p.cur.Kind == token.ELSE {
		p.next()
		stmt.Else = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseWhile() ast.Statement {
	tok := p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpression(precLowest)
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return &ast.WhileStmt{Token: tok, Condition: cond, Body: body}
}

// parseDerefAssignment parses `*e1 = e2;`.
func (p *Parser) parseDerefAssignment() ast.Statement {
	tok := p.cur
	p.next()
	operand := p.parseExpression(precUnary)
	deref := &ast.DereferenceExpr{Token: tok, Operand: operand}
	p.expect(token.ASSIGN)
	val := p.parseExpression(precLowest)
	p.expect(token.SEMI)
	return &ast.DereferenceAssignmentStmt{Token: tok, Target: deref, Value: val}
}

// parseDerefFieldAssignment parses `(*e).f = e2;`.
func (p *Parser) parseDerefFieldAssignment() ast.Statement {
	tok := p.cur
	p.expect(token.LPAREN)
	starTok := p.expect(token.STAR)
	operand := p.parseExpression(precLowest)
	p.expect(token.RPAREN)
	deref := &ast.DereferenceExpr{Token: starTok, Operand: operand}
	p.expect(token.DOT)
	field := p.expect(token.IDENT)
	p.expect(token.ASSIGN)
	val := p.parseExpression(precLowest)
	p.expect(token.SEMI)
	return &ast.DereferenceFieldAssignmentStmt{Token: tok, Target: deref, Field: field.Lexeme, Value: val}
}

// parseIdentStatement disambiguates `x = e;` from `x.f = e;`.
func (p *Parser) parseIdentStatement() ast.Statement {
	tok := p.cur
	id := &ast.Identifier{Token: tok, Value: tok.Lexeme}
	p.next()

	if p.cur.Kind == token.DOT {
		p.next()
		field := p.expect(token.IDENT)
		p.expect(token.ASSIGN)
		val := p.parseExpression(precLowest)
		p.expect(token.SEMI)
		return &ast.FieldAssignmentStmt{Token: tok, Record: id, Field: field.Lexeme, Value: val}
	}

	p.expect(token.ASSIGN)
	val := p.parseExpression(precLowest)
	p.expect(token.SEMI)
	return &ast.AssignmentStmt{Token: tok, Name: id, Value: val}
}

// ---- Expressions: precedence-climbing, grounded on expressions_core.go ----

type precedence int

const (
	precLowest precedence = iota
	precComparison
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
)

var binPrec = map[token.Kind]precedence{
	token.EQ:    precComparison,
	token.GT:    precComparison,
	token.PLUS:  precAdditive,
	token.MINUS: precAdditive,
	token.STAR:  precMultiplicative,
	token.SLASH: precMultiplicative,
}

func (p *Parser) parseExpression(prec precedence) ast.Expression {
	left := p.parseUnary()

	for {
		opPrec, ok := binPrec[p.cur.Kind]
		if !ok || opPrec <= prec {
			break
		}
		tok := p.cur
		p.next()
		right := p.parseExpression(opPrec)
		left = p.combine(tok, left, right)
	}
	return left
}

func (p *Parser) combine(tok token.Token, left, right ast.Expression) ast.Expression {
	switch tok.Kind {
	case token.PLUS:
		return &ast.ArithmeticExpr{Token: tok, Left: left, Op: ast.Add, Right: right}
	case token.MINUS:
		return &ast.ArithmeticExpr{Token: tok, Left: left, Op: ast.Sub, Right: right}
	case token.STAR:
		return &ast.ArithmeticExpr{Token: tok, Left: left, Op: ast.Mul, Right: right}
	case token.SLASH:
		return &ast.ArithmeticExpr{Token: tok, Left: left, Op: ast.Div, Right: right}
	case token.EQ:
		return &ast.ComparisonExpr{Token: tok, Left: left, Op: ast.CmpEq, Right: right}
	case token.GT:
		return &ast.ComparisonExpr{Token: tok, Left: left, Op: ast.CmpGt, Right: right}
	}
	p.errorf(tok, "unknown binary operator %q", tok.Lexeme)
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	switch p.cur.Kind {
	case token.AMP:
		tok := p.cur
		p.next()
		id := p.expect(token.IDENT)
		return p.parsePostfix(&ast.ReferenceExpr{Token: tok, Target: &ast.Identifier{Token: id, Value: id.Lexeme}})
	case token.STAR:
		tok := p.cur
		p.next()
		operand := p.parseUnary()
		return p.parsePostfix(&ast.DereferenceExpr{Token: tok, Operand: operand})
	case token.ALLOC:
		tok := p.cur
		p.next()
		operand := p.parseUnary()
		return p.parsePostfix(&ast.AllocExpr{Token: tok, Operand: operand})
	default:
		return p.parsePostfix(p.parsePrimary())
	}
}

func (p *Parser) parsePostfix(expr ast.Expression) ast.Expression {
	for {
		switch p.cur.Kind {
		case token.LPAREN:
			tok := p.cur
			p.next()
			var args []ast.Expression
			for p.cur.Kind != token.RPAREN {
				args = append(args, p.parseExpression(precLowest))
				if p.cur.Kind == token.COMMA {
					p.next()
					continue
				}
				break
			}
			p.expect(token.RPAREN)
			expr = &ast.FunctionCallExpr{Token: tok, Callee: expr, Args: args}
		case token.DOT:
			p.next()
			field := p.expect(token.IDENT)
			expr = &ast.FieldAccessExpr{Token: field, Record: expr, Field: field.Lexeme}
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.cur.Kind {
	case token.INT:
		tok := p.cur
		p.next()
		return parseIntLiteral(tok)
	case token.IDENT:
		tok := p.cur
		p.next()
		return &ast.Identifier{Token: tok, Value: tok.Lexeme}
	case token.INPUT:
		tok := p.cur
		p.next()
		return &ast.InputExpr{Token: tok}
	case token.NULL:
		tok := p.cur
		p.next()
		return &ast.NullExpr{Token: tok}
	case token.LPAREN:
		p.next()
		inner := p.parseExpression(precLowest)
		p.expect(token.RPAREN)
		return inner
	case token.LBRACE:
		return p.parseRecord()
	default:
		p.errorf(p.cur, "unexpected token %q in expression", p.cur.Lexeme)
		tok := p.cur
		p.next()
		return &ast.Identifier{Token: tok, Value: tok.Lexeme}
	}
}

func (p *Parser) parseRecord() ast.Expression {
	tok := p.expect(token.LBRACE)
	rec := &ast.RecordExpr{Token: tok}
	for p.cur.Kind != token.RBRACE {
		label := p.expect(token.IDENT)
		p.expect(token.COLON)
		val := p.parseExpression(precLowest)
		rec.Fields = append(rec.Fields, ast.RecordField{Label: label.Lexeme, Value: val})
		if p.cur.Kind == token.COMMA {
			p.next()
			continue
		}
		break
	}
	p.expect(token.RBRACE)
	return rec
}

func parseIntLiteral(tok token.Token) *ast.IntLiteral {
	var v int64
	for _, r := range tok.Lexeme {
		v = v*10 + int64(r-'0')
	}
	return &ast.IntLiteral{Token: tok, Value: v}
}
