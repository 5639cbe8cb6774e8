package ast

import (
	"strconv"
	"strings"
)

// Dump renders the tree as indented text, one construct tag per line with its
// children two spaces deeper. Scalar fields (type names, identifiers,
// operators, literals) appear as their own lines.
func Dump(p *Program) string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	writeLine(&b, 0, "program")
	for _, item := range p.Items {
		dump(&b, item, 1)
	}
	return b.String()
}

func writeLine(b *strings.Builder, indent int, text string) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(text)
	b.WriteByte('\n')
}

func dump(b *strings.Builder, n Node, indent int) {
	switch v := n.(type) {
	case *VarDecl:
		writeLine(b, indent, "var_decl")
		writeLine(b, indent+1, v.Type)
		writeLine(b, indent+1, v.Name)
	case *ArrayDecl:
		writeLine(b, indent, "array_decl")
		writeLine(b, indent+1, v.Type)
		writeLine(b, indent+1, v.Name)
		writeLine(b, indent+1, strconv.FormatInt(v.Size, 10))
	case *FunDecl:
		writeLine(b, indent, "fun_decl")
		writeLine(b, indent+1, v.ReturnType)
		writeLine(b, indent+1, v.Name)
		for _, param := range v.Params {
			dump(b, param, indent+1)
		}
		dump(b, v.Body, indent+1)
	case *ScalarParam:
		writeLine(b, indent, "param")
		writeLine(b, indent+1, v.Type)
		writeLine(b, indent+1, v.Name)
	case *ArrayParam:
		writeLine(b, indent, "array_param")
		writeLine(b, indent+1, v.Type)
		writeLine(b, indent+1, v.Name)
	case *Compound:
		writeLine(b, indent, "compound")
		for _, d := range v.Decls {
			dump(b, d, indent+1)
		}
		for _, s := range v.Stmts {
			dump(b, s, indent+1)
		}
	case *ExprStmt:
		if v.Expr == nil {
			writeLine(b, indent, "empty_stmt")
			return
		}
		writeLine(b, indent, "expr_stmt")
		dump(b, v.Expr, indent+1)
	case *If:
		writeLine(b, indent, "if")
		dump(b, v.Cond, indent+1)
		dump(b, v.Then, indent+1)
	case *IfElse:
		writeLine(b, indent, "if_else")
		dump(b, v.Cond, indent+1)
		dump(b, v.Then, indent+1)
		dump(b, v.Else, indent+1)
	case *While:
		writeLine(b, indent, "while")
		dump(b, v.Cond, indent+1)
		dump(b, v.Body, indent+1)
	case *Return:
		writeLine(b, indent, "return")
		if v.Value != nil {
			dump(b, v.Value, indent+1)
		}
	case *Assign:
		writeLine(b, indent, "assign")
		dump(b, v.Target, indent+1)
		dump(b, v.Value, indent+1)
	case *BinOp:
		writeLine(b, indent, "binop")
		writeLine(b, indent+1, v.Op)
		dump(b, v.Left, indent+1)
		dump(b, v.Right, indent+1)
	case *Var:
		writeLine(b, indent, "var")
		writeLine(b, indent+1, v.Name)
	case *ArrayRef:
		writeLine(b, indent, "array_ref")
		writeLine(b, indent+1, v.Name)
		dump(b, v.Index, indent+1)
	case *Call:
		writeLine(b, indent, "call")
		writeLine(b, indent+1, v.Name)
		for _, arg := range v.Args {
			dump(b, arg, indent+1)
		}
	case *NumberLit:
		writeLine(b, indent, v.Text)
	}
}
