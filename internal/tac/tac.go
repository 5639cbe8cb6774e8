// Package tac lowers the syntax tree into three-address code: a linear
// sequence of instructions over names, generator temporaries (t0, t1, ...)
// and jump labels (L0, L1, ...).
package tac

import "fmt"

// Instruction is one line of three-address code. The set is closed; every
// kind renders to its line-oriented text form via String.
type Instruction interface {
	fmt.Stringer
	isInstruction()
}

// Declare marks a scalar variable declaration: "declare x as int".
type Declare struct {
	Name string
	Type string
}

func (Declare) isInstruction() {}

func (i Declare) String() string {
	return fmt.Sprintf("declare %s as %s", i.Name, i.Type)
}

// DeclareArray marks an array declaration: "declare a[10] as int".
type DeclareArray struct {
	Name string
	Type string
	Size int64
}

func (DeclareArray) isInstruction() {}

func (i DeclareArray) String() string {
	return fmt.Sprintf("declare %s[%d] as %s", i.Name, i.Size, i.Type)
}

// FuncLabel opens a function body: "function main:".
type FuncLabel struct {
	Name string
}

func (FuncLabel) isInstruction() {}

func (i FuncLabel) String() string {
	return fmt.Sprintf("function %s:", i.Name)
}

// ParamDecl marks a declared function parameter. It shares the "param"
// mnemonic with ParamPush but is a distinct kind: one declares, the other
// passes.
type ParamDecl struct {
	Name string
}

func (ParamDecl) isInstruction() {}

func (i ParamDecl) String() string {
	return fmt.Sprintf("param %s", i.Name)
}

// ParamPush passes one argument before a call: "param t0".
type ParamPush struct {
	Value string
}

func (ParamPush) isInstruction() {}

func (i ParamPush) String() string {
	return fmt.Sprintf("param %s", i.Value)
}

// Copy is a plain move: "x = t0".
type Copy struct {
	Dst string
	Src string
}

func (Copy) isInstruction() {}

func (i Copy) String() string {
	return fmt.Sprintf("%s = %s", i.Dst, i.Src)
}

// BinOp computes one operation into a destination: "t0 = 5 + 3".
type BinOp struct {
	Dst   string
	Left  string
	Op    string
	Right string
}

func (BinOp) isInstruction() {}

func (i BinOp) String() string {
	return fmt.Sprintf("%s = %s %s %s", i.Dst, i.Left, i.Op, i.Right)
}

// IfFalse jumps when the condition is false: "ifnot x goto L0".
type IfFalse struct {
	Cond   string
	Target string
}

func (IfFalse) isInstruction() {}

func (i IfFalse) String() string {
	return fmt.Sprintf("ifnot %s goto %s", i.Cond, i.Target)
}

// Goto is an unconditional jump.
type Goto struct {
	Target string
}

func (Goto) isInstruction() {}

func (i Goto) String() string {
	return fmt.Sprintf("goto %s", i.Target)
}

// Label names a position in the sequence: "L0:".
type Label struct {
	Name string
}

func (Label) isInstruction() {}

func (i Label) String() string {
	return fmt.Sprintf("%s:", i.Name)
}

// Call invokes a function after its ParamPush instructions. The instruction
// embeds the argument count, not the argument values: "t0 = call f 2".
type Call struct {
	Dst  string
	Func string
	Argc int
}

func (Call) isInstruction() {}

func (i Call) String() string {
	return fmt.Sprintf("%s = call %s %d", i.Dst, i.Func, i.Argc)
}

// Return leaves the current function; Value is empty for a bare return.
type Return struct {
	Value string
}

func (Return) isInstruction() {}

func (i Return) String() string {
	if i.Value == "" {
		return "return"
	}
	return fmt.Sprintf("return %s", i.Value)
}

// Render flattens an instruction sequence into its textual lines.
func Render(instrs []Instruction) []string {
	lines := make([]string, 0, len(instrs))
	for _, in := range instrs {
		lines = append(lines, in.String())
	}
	return lines
}
