// Package ast defines the syntax tree for the mini-C language. The node set
// is closed: one struct per grammar production, grouped into declarations,
// statements, and expressions by marker methods so the lowering pass can
// switch exhaustively.
package ast

// Node is any syntax tree node.
type Node interface {
	isNode()
}

// Decl is a top-level or local declaration.
type Decl interface {
	Node
	isDecl()
}

// Stmt is a statement.
type Stmt interface {
	Node
	isStmt()
}

// Expr is an expression producing a value or an addressable reference.
type Expr interface {
	Node
	isExpr()
}

// Param is a function parameter declaration.
type Param interface {
	Node
	isParam()
}

// Program is the root of one compilation unit. Items holds declarations and
// top-level statements in source order.
type Program struct {
	Items []Node
}

func (*Program) isNode() {}

type VarDecl struct {
	Type string
	Name string
}

func (*VarDecl) isNode() {}
func (*VarDecl) isDecl() {}

// ArrayDecl declares a fixed-size array. Size is always positive; the parser
// rejects zero, negative, and fractional sizes.
type ArrayDecl struct {
	Type string
	Name string
	Size int64
}

func (*ArrayDecl) isNode() {}
func (*ArrayDecl) isDecl() {}

type FunDecl struct {
	ReturnType string
	Name       string
	Params     []Param
	Body       *Compound
}

func (*FunDecl) isNode() {}
func (*FunDecl) isDecl() {}

type ScalarParam struct {
	Type string
	Name string
}

func (*ScalarParam) isNode()  {}
func (*ScalarParam) isParam() {}

type ArrayParam struct {
	Type string
	Name string
}

func (*ArrayParam) isNode()  {}
func (*ArrayParam) isParam() {}

// Compound is a braced block: local declarations first, then statements.
type Compound struct {
	Decls []Decl
	Stmts []Stmt
}

func (*Compound) isNode() {}
func (*Compound) isStmt() {}

// ExprStmt is an expression evaluated for effect. Expr is nil for the bare
// semicolon statement.
type ExprStmt struct {
	Expr Expr
}

func (*ExprStmt) isNode() {}
func (*ExprStmt) isStmt() {}

type If struct {
	Cond Expr
	Then Stmt
}

func (*If) isNode() {}
func (*If) isStmt() {}

type IfElse struct {
	Cond Expr
	Then Stmt
	Else Stmt
}

func (*IfElse) isNode() {}
func (*IfElse) isStmt() {}

type While struct {
	Cond Expr
	Body Stmt
}

func (*While) isNode() {}
func (*While) isStmt() {}

// Return with a nil Value is a bare return.
type Return struct {
	Value Expr
}

func (*Return) isNode() {}
func (*Return) isStmt() {}

// Assign is an expression; its target is always a *Var or *ArrayRef.
type Assign struct {
	Target Expr
	Value  Expr
}

func (*Assign) isNode() {}
func (*Assign) isExpr() {}

type BinOp struct {
	Op    string
	Left  Expr
	Right Expr
}

func (*BinOp) isNode() {}
func (*BinOp) isExpr() {}

type Var struct {
	Name string
}

func (*Var) isNode() {}
func (*Var) isExpr() {}

type ArrayRef struct {
	Name  string
	Index Expr
}

func (*ArrayRef) isNode() {}
func (*ArrayRef) isExpr() {}

type Call struct {
	Name string
	Args []Expr
}

func (*Call) isNode() {}
func (*Call) isExpr() {}

// NumberLit keeps the source spelling in Text so later passes reproduce the
// literal exactly; Int or Float carries the converted value per IsFloat.
type NumberLit struct {
	Text    string
	IsFloat bool
	Int     int64
	Float   float64
}

func (*NumberLit) isNode() {}
func (*NumberLit) isExpr() {}
