// Package parser builds the syntax tree with a hand-written recursive
// descent over the token stream. The accepted language follows the mini-C
// grammar: declarations and statements at the top level, single-assignment
// expressions, and a relational layer that permits at most one comparison
// per simple expression.
//
// Parsing halts on the first syntax error: the triggering failure is
// recorded as a diagnostic and no further tokens are consumed. Declarations
// insert into the symbol table as they are recognized.
package parser

import (
	"github.com/ztrue/tracerr"

	"minicc/internal/ast"
	"minicc/internal/diag"
	"minicc/internal/symtab"
	"minicc/internal/token"
)

type Parser struct {
	tokens []token.Token
	pos    int
	bag    *diag.Bag
	syms   *symtab.Table
}

// New builds a parser over an already-lexed token sequence. The bag receives
// syntax diagnostics; the table receives declaration entries.
func New(tokens []token.Token, bag *diag.Bag, syms *symtab.Table) *Parser {
	return &Parser{tokens: tokens, bag: bag, syms: syms}
}

// Parse consumes the whole token sequence and returns the program, or nil
// with a wrapped error after recording the syntax diagnostic.
func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = tracerr.Wrap(rerr)
			p.bag.Add(diag.Diagnostic{
				Stage:   diag.Syntax,
				Line:    errLine(rerr),
				Message: rerr.Error(),
			})
		}
	}()
	return p.parseProgram(), nil
}

func errLine(err error) int {
	switch e := err.(type) {
	case UnexpectedToken:
		return e.Tok.Line
	case InvalidArraySize:
		return e.Size.Line
	}
	return 0
}

func errAt(tok token.Token) error {
	if tok.Kind == token.EOF {
		return UnexpectedEOF{}
	}
	return UnexpectedToken{Tok: tok}
}

func (p *Parser) peek() token.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return token.Token{Kind: token.EOF}
}

func (p *Parser) lex() token.Token {
	tok := p.peek()
	p.pos++
	return tok
}

func (p *Parser) peekIs(kinds ...token.Kind) bool {
	tok := p.peek()
	for _, k := range kinds {
		if tok.Is(k) {
			return true
		}
	}
	return false
}

func (p *Parser) expect(k token.Kind) token.Token {
	tok := p.lex()
	if !tok.Is(k) {
		panic(errAt(tok))
	}
	return tok
}

func (p *Parser) lexType() token.Token {
	tok := p.lex()
	if !tok.IsType() {
		panic(errAt(tok))
	}
	return tok
}

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.peekIs(token.EOF) {
		if p.peek().IsType() {
			prog.Items = append(prog.Items, p.parseDeclaration())
		} else {
			prog.Items = append(prog.Items, p.parseStatement())
		}
	}
	return prog
}

func (p *Parser) parseDeclaration() ast.Decl {
	typ := p.lexType()
	name := p.expect(token.ID)
	if p.peekIs(token.LPAREN) {
		return p.parseFunDecl(typ.Text, name.Text)
	}
	return p.finishVarDecl(typ.Text, name)
}

// finishVarDecl is entered after the type and name; it handles the scalar
// and array forms and records the symbol.
func (p *Parser) finishVarDecl(typ string, name token.Token) ast.Decl {
	if p.peekIs(token.LBRACKET) {
		p.lex()
		size := p.expect(token.NUMBER)
		p.expect(token.RBRACKET)
		p.expect(token.SEMI)
		if size.IsFloat || size.Int < 1 {
			panic(InvalidArraySize{Name: name.Text, Size: size})
		}
		p.syms.Define(name.Text, symtab.Entry{Type: typ, Kind: symtab.Array, Size: size.Int})
		return &ast.ArrayDecl{Type: typ, Name: name.Text, Size: size.Int}
	}
	p.expect(token.SEMI)
	p.syms.Define(name.Text, symtab.Entry{Type: typ, Kind: symtab.Variable})
	return &ast.VarDecl{Type: typ, Name: name.Text}
}

func (p *Parser) parseFunDecl(returnType, name string) ast.Decl {
	p.expect(token.LPAREN)
	params := p.parseParams()
	p.expect(token.RPAREN)
	body := p.parseCompound()

	infos := make([]symtab.ParamInfo, 0, len(params))
	for _, param := range params {
		switch v := param.(type) {
		case *ast.ScalarParam:
			infos = append(infos, symtab.ParamInfo{Type: v.Type, Name: v.Name})
		case *ast.ArrayParam:
			infos = append(infos, symtab.ParamInfo{Type: v.Type, Name: v.Name, Array: true})
		}
	}
	p.syms.Define(name, symtab.Entry{Type: returnType, Kind: symtab.Function, Params: infos})

	return &ast.FunDecl{ReturnType: returnType, Name: name, Params: params, Body: body}
}

// parseParams recognizes an empty list, the lone 'void' form, and comma
// separated parameters, inserting each parameter into the symbol table.
func (p *Parser) parseParams() []ast.Param {
	if p.peekIs(token.RPAREN) {
		return nil
	}

	var params []ast.Param
	for {
		typ := p.lexType()
		if typ.Kind == token.VOID && len(params) == 0 && p.peekIs(token.RPAREN) {
			return nil
		}
		name := p.expect(token.ID)

		if p.peekIs(token.LBRACKET) {
			p.lex()
			p.expect(token.RBRACKET)
			params = append(params, &ast.ArrayParam{Type: typ.Text, Name: name.Text})
		} else {
			params = append(params, &ast.ScalarParam{Type: typ.Text, Name: name.Text})
		}
		p.syms.Define(name.Text, symtab.Entry{Type: typ.Text, Kind: symtab.Param})

		if p.peekIs(token.COMMA) {
			p.lex()
			continue
		}
		return params
	}
}

// parseCompound parses '{' local declarations, then statements, '}'. Local
// declarations only admit the variable and array forms; a nested function
// surfaces as a syntax error at its '('.
func (p *Parser) parseCompound() *ast.Compound {
	p.expect(token.LBRACE)
	c := &ast.Compound{}
	for p.peek().IsType() {
		typ := p.lexType()
		name := p.expect(token.ID)
		c.Decls = append(c.Decls, p.finishVarDecl(typ.Text, name))
	}
	for !p.peekIs(token.RBRACE) {
		c.Stmts = append(c.Stmts, p.parseStatement())
	}
	p.expect(token.RBRACE)
	return c
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.peek().Kind {
	case token.LBRACE:
		return p.parseCompound()
	case token.IF:
		return p.parseSelection()
	case token.WHILE:
		return p.parseIteration()
	case token.RETURN:
		return p.parseReturn()
	case token.SEMI:
		p.lex()
		return &ast.ExprStmt{}
	default:
		expr := p.parseExpression()
		p.expect(token.SEMI)
		return &ast.ExprStmt{Expr: expr}
	}
}

func (p *Parser) parseSelection() ast.Stmt {
	p.expect(token.IF)
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	then := p.parseStatement()

	// else binds to the nearest if
	if p.peekIs(token.ELSE) {
		p.lex()
		return &ast.IfElse{Cond: cond, Then: then, Else: p.parseStatement()}
	}
	return &ast.If{Cond: cond, Then: then}
}

func (p *Parser) parseIteration() ast.Stmt {
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	return &ast.While{Cond: cond, Body: p.parseStatement()}
}

func (p *Parser) parseReturn() ast.Stmt {
	p.expect(token.RETURN)
	if p.peekIs(token.SEMI) {
		p.lex()
		return &ast.Return{}
	}
	value := p.parseExpression()
	p.expect(token.SEMI)
	return &ast.Return{Value: value}
}

// parseExpression handles assignment. The target must be a syntactically
// bare variable or array reference: the lvalue flag threaded through the
// expression productions goes false as soon as an operator or parenthesis
// intervenes, so '(x) = y' leaves the '=' unconsumed and the caller reports
// it, exactly as the grammar demands.
func (p *Parser) parseExpression() ast.Expr {
	expr, lvalue := p.parseSimpleExpression()
	if lvalue && p.peekIs(token.ASSIGN) {
		p.lex()
		return &ast.Assign{Target: expr, Value: p.parseExpression()}
	}
	return expr
}

// parseSimpleExpression admits at most one relational operator, so chains
// like 'a < b < c' are rejected at the second operator.
func (p *Parser) parseSimpleExpression() (ast.Expr, bool) {
	left, lvalue := p.parseAdditive()
	if p.peekIs(token.LE, token.LT, token.GT, token.GE, token.EQ, token.NE) {
		op := p.lex()
		right, _ := p.parseAdditive()
		return &ast.BinOp{Op: op.Text, Left: left, Right: right}, false
	}
	return left, lvalue
}

func (p *Parser) parseAdditive() (ast.Expr, bool) {
	left, lvalue := p.parseTerm()
	for p.peekIs(token.PLUS, token.MINUS) {
		op := p.lex()
		right, _ := p.parseTerm()
		left = &ast.BinOp{Op: op.Text, Left: left, Right: right}
		lvalue = false
	}
	return left, lvalue
}

func (p *Parser) parseTerm() (ast.Expr, bool) {
	left, lvalue := p.parseFactor()
	for p.peekIs(token.TIMES, token.DIVIDE, token.MODULO) {
		op := p.lex()
		right, _ := p.parseFactor()
		left = &ast.BinOp{Op: op.Text, Left: left, Right: right}
		lvalue = false
	}
	return left, lvalue
}

func (p *Parser) parseFactor() (ast.Expr, bool) {
	tok := p.lex()
	switch tok.Kind {
	case token.LPAREN:
		expr := p.parseExpression()
		p.expect(token.RPAREN)
		return expr, false
	case token.NUMBER:
		return &ast.NumberLit{Text: tok.Text, IsFloat: tok.IsFloat, Int: tok.Int, Float: tok.Float}, false
	case token.ID:
		switch p.peek().Kind {
		case token.LPAREN:
			p.lex()
			args := p.parseArgs()
			p.expect(token.RPAREN)
			return &ast.Call{Name: tok.Text, Args: args}, false
		case token.LBRACKET:
			p.lex()
			index := p.parseExpression()
			p.expect(token.RBRACKET)
			return &ast.ArrayRef{Name: tok.Text, Index: index}, true
		}
		return &ast.Var{Name: tok.Text}, true
	}
	panic(errAt(tok))
}

func (p *Parser) parseArgs() []ast.Expr {
	if p.peekIs(token.RPAREN) {
		return nil
	}
	args := []ast.Expr{p.parseExpression()}
	for p.peekIs(token.COMMA) {
		p.lex()
		args = append(args, p.parseExpression())
	}
	return args
}
