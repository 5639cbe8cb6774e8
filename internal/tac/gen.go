package tac

import (
	"fmt"

	"minicc/internal/ast"
)

// Generator lowers one program. It owns the temporary and label counters, so
// a fresh Generator per compilation keeps concurrent compilations from
// interleaving each other's numbering. Counters are never reused within a
// run.
type Generator struct {
	out        []Instruction
	tempCount  int
	labelCount int
}

func NewGenerator() *Generator {
	return &Generator{}
}

// Lower walks the program and returns the instruction sequence. It is total
// over any tree the parser produces; callers must not pass the result of a
// failed parse.
func (g *Generator) Lower(prog *ast.Program) []Instruction {
	for _, item := range prog.Items {
		switch v := item.(type) {
		case ast.Decl:
			g.decl(v)
		case ast.Stmt:
			g.stmt(v)
		}
	}
	return g.out
}

func (g *Generator) emit(in Instruction) {
	g.out = append(g.out, in)
}

func (g *Generator) newTemp() string {
	t := fmt.Sprintf("t%d", g.tempCount)
	g.tempCount++
	return t
}

func (g *Generator) newLabel() string {
	l := fmt.Sprintf("L%d", g.labelCount)
	g.labelCount++
	return l
}

func (g *Generator) decl(d ast.Decl) {
	switch v := d.(type) {
	case *ast.VarDecl:
		g.emit(Declare{Name: v.Name, Type: v.Type})
	case *ast.ArrayDecl:
		g.emit(DeclareArray{Name: v.Name, Type: v.Type, Size: v.Size})
	case *ast.FunDecl:
		g.emit(FuncLabel{Name: v.Name})
		for _, param := range v.Params {
			switch p := param.(type) {
			case *ast.ScalarParam:
				g.emit(ParamDecl{Name: p.Name})
			case *ast.ArrayParam:
				g.emit(ParamDecl{Name: p.Name})
			}
		}
		g.stmt(v.Body)
	}
}

func (g *Generator) stmt(s ast.Stmt) {
	switch v := s.(type) {
	case *ast.Compound:
		for _, d := range v.Decls {
			g.decl(d)
		}
		for _, st := range v.Stmts {
			g.stmt(st)
		}

	case *ast.ExprStmt:
		if v.Expr != nil {
			// evaluated for effect; the reference is discarded
			g.expr(v.Expr)
		}

	case *ast.If:
		cond := g.expr(v.Cond)
		labelFalse := g.newLabel()
		g.emit(IfFalse{Cond: cond, Target: labelFalse})
		g.stmt(v.Then)
		g.emit(Label{Name: labelFalse})

	case *ast.IfElse:
		cond := g.expr(v.Cond)
		labelFalse := g.newLabel()
		labelEnd := g.newLabel()
		g.emit(IfFalse{Cond: cond, Target: labelFalse})
		g.stmt(v.Then)
		g.emit(Goto{Target: labelEnd})
		g.emit(Label{Name: labelFalse})
		g.stmt(v.Else)
		g.emit(Label{Name: labelEnd})

	case *ast.While:
		labelStart := g.newLabel()
		labelEnd := g.newLabel()
		g.emit(Label{Name: labelStart})
		cond := g.expr(v.Cond)
		g.emit(IfFalse{Cond: cond, Target: labelEnd})
		g.stmt(v.Body)
		g.emit(Goto{Target: labelStart})
		g.emit(Label{Name: labelEnd})

	case *ast.Return:
		if v.Value != nil {
			g.emit(Return{Value: g.expr(v.Value)})
			return
		}
		g.emit(Return{})
	}
}

// expr lowers an expression and returns the reference naming its value: a
// source name, a temporary, a literal spelling, or an indexed form like
// "a[t0]". Operands are evaluated left to right.
func (g *Generator) expr(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.NumberLit:
		return v.Text

	case *ast.Var:
		return v.Name

	case *ast.ArrayRef:
		// the bracketed form is an addressable reference; no load is emitted
		index := g.expr(v.Index)
		return fmt.Sprintf("%s[%s]", v.Name, index)

	case *ast.Assign:
		value := g.expr(v.Value)
		target := g.expr(v.Target)
		g.emit(Copy{Dst: target, Src: value})
		return target

	case *ast.BinOp:
		left := g.expr(v.Left)
		right := g.expr(v.Right)
		temp := g.newTemp()
		g.emit(BinOp{Dst: temp, Left: left, Op: v.Op, Right: right})
		return temp

	case *ast.Call:
		refs := make([]string, 0, len(v.Args))
		for _, arg := range v.Args {
			refs = append(refs, g.expr(arg))
		}
		for _, ref := range refs {
			g.emit(ParamPush{Value: ref})
		}
		temp := g.newTemp()
		g.emit(Call{Dst: temp, Func: v.Name, Argc: len(refs)})
		return temp
	}
	return ""
}
