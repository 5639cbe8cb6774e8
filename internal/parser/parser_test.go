package parser

import (
	"strings"
	"testing"

	"minicc/internal/ast"
	"minicc/internal/diag"
	"minicc/internal/lexer"
	"minicc/internal/symtab"
)

func parseSource(t *testing.T, src string) (*ast.Program, *symtab.Table, []diag.Diagnostic) {
	t.Helper()
	tokens, lexDiags := lexer.Tokenize(src)
	bag := diag.NewBag()
	for _, d := range lexDiags {
		bag.Add(d)
	}
	syms := symtab.New()
	prog, _ := New(tokens, bag, syms).Parse()
	return prog, syms, bag.Diagnostics()
}

func mustParse(t *testing.T, src string) (*ast.Program, *symtab.Table) {
	t.Helper()
	prog, syms, diags := parseSource(t, src)
	if len(diags) != 0 {
		t.Fatalf("parse(%q) diagnostics: %v", src, diags)
	}
	if prog == nil {
		t.Fatalf("parse(%q) returned nil program", src)
	}
	return prog, syms
}

func mustFail(t *testing.T, src, wantMessage string) {
	t.Helper()
	prog, _, diags := parseSource(t, src)
	if prog != nil {
		t.Fatalf("parse(%q) succeeded, want failure", src)
	}
	if len(diags) == 0 {
		t.Fatalf("parse(%q) produced no diagnostics", src)
	}
	last := diags[len(diags)-1]
	if last.Stage != diag.Syntax {
		t.Fatalf("parse(%q) last diagnostic is %v, want syntax", src, last)
	}
	if !strings.Contains(last.Message, wantMessage) {
		t.Errorf("parse(%q) diagnostic = %q, want containing %q", src, last.Message, wantMessage)
	}
}

func TestEmptyInput(t *testing.T) {
	prog, syms := mustParse(t, "  // nothing here\n")
	if len(prog.Items) != 0 {
		t.Errorf("items = %v, want none", prog.Items)
	}
	if syms.Len() != 0 {
		t.Errorf("symbols = %v, want none", syms.Names())
	}
}

func TestFunctionDeclaration(t *testing.T) {
	prog, syms := mustParse(t, `
		int add(int a, int b) {
			int sum;
			sum = a + b;
			return sum;
		}
	`)
	if len(prog.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(prog.Items))
	}
	fn, ok := prog.Items[0].(*ast.FunDecl)
	if !ok {
		t.Fatalf("item = %T, want *ast.FunDecl", prog.Items[0])
	}
	if fn.Name != "add" || fn.ReturnType != "int" || len(fn.Params) != 2 {
		t.Errorf("fn = %+v", fn)
	}
	if len(fn.Body.Decls) != 1 || len(fn.Body.Stmts) != 2 {
		t.Errorf("body = %d decls, %d stmts", len(fn.Body.Decls), len(fn.Body.Stmts))
	}

	entry, ok := syms.Lookup("add")
	if !ok || entry.Kind != symtab.Function || len(entry.Params) != 2 {
		t.Errorf("symbol add = %+v, ok=%v", entry, ok)
	}
	if entry, ok := syms.Lookup("a"); !ok || entry.Kind != symtab.Param {
		t.Errorf("symbol a = %+v, ok=%v", entry, ok)
	}
	if entry, ok := syms.Lookup("sum"); !ok || entry.Kind != symtab.Variable {
		t.Errorf("symbol sum = %+v, ok=%v", entry, ok)
	}
}

func TestVoidParameterList(t *testing.T) {
	prog, _ := mustParse(t, "int main(void) { return 0; }")
	fn := prog.Items[0].(*ast.FunDecl)
	if len(fn.Params) != 0 {
		t.Errorf("params = %v, want none", fn.Params)
	}
}

func TestArrayParam(t *testing.T) {
	prog, _ := mustParse(t, "int sum(int values[], int n) { return 0; }")
	fn := prog.Items[0].(*ast.FunDecl)
	if _, ok := fn.Params[0].(*ast.ArrayParam); !ok {
		t.Errorf("first param = %T, want *ast.ArrayParam", fn.Params[0])
	}
	if _, ok := fn.Params[1].(*ast.ScalarParam); !ok {
		t.Errorf("second param = %T, want *ast.ScalarParam", fn.Params[1])
	}
}

func TestTopLevelStatements(t *testing.T) {
	prog, _ := mustParse(t, "int x; x = 5 + 3; if (x) { x = x - 1; }")
	if len(prog.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(prog.Items))
	}
	if _, ok := prog.Items[0].(*ast.VarDecl); !ok {
		t.Errorf("item 0 = %T", prog.Items[0])
	}
	if _, ok := prog.Items[1].(*ast.ExprStmt); !ok {
		t.Errorf("item 1 = %T", prog.Items[1])
	}
	if _, ok := prog.Items[2].(*ast.If); !ok {
		t.Errorf("item 2 = %T", prog.Items[2])
	}
}

func TestDanglingElseBindsToNearestIf(t *testing.T) {
	prog, _ := mustParse(t, "if (a) if (b) x = 1; else x = 2;")
	outer, ok := prog.Items[0].(*ast.If)
	if !ok {
		t.Fatalf("outer = %T, want *ast.If", prog.Items[0])
	}
	if _, ok := outer.Then.(*ast.IfElse); !ok {
		t.Fatalf("inner = %T, want *ast.IfElse", outer.Then)
	}
}

func TestAssignmentTargets(t *testing.T) {
	prog, _ := mustParse(t, "x = 1; a[i + 1] = 2; x = y = 3;")
	first := prog.Items[0].(*ast.ExprStmt).Expr.(*ast.Assign)
	if _, ok := first.Target.(*ast.Var); !ok {
		t.Errorf("target = %T", first.Target)
	}
	second := prog.Items[1].(*ast.ExprStmt).Expr.(*ast.Assign)
	if _, ok := second.Target.(*ast.ArrayRef); !ok {
		t.Errorf("target = %T", second.Target)
	}
	chained := prog.Items[2].(*ast.ExprStmt).Expr.(*ast.Assign)
	if _, ok := chained.Value.(*ast.Assign); !ok {
		t.Errorf("chained value = %T", chained.Value)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"missing semicolon", "int x", "syntax error at end of input"},
		{"number as name", "int 5;", "syntax error at token NUMBER ('5') at line 1"},
		{"parenthesized assign target", "(x) = 5;", "syntax error at token ASSIGN ('=') at line 1"},
		{"chained relational", "a < b < c;", "syntax error at token LT ('<') at line 1"},
		{"logical and unused by grammar", "x = a && b;", "syntax error at token AND ('&&') at line 1"},
		{"increment unused by grammar", "x++;", "syntax error at token PLUSPLUS ('++') at line 1"},
		{"for unused by grammar", "for (;;) x = 1;", "syntax error at token FOR ('for') at line 1"},
		{"string not an expression", `x = "hi";`, "syntax error at token STRING ('hi') at line 1"},
		{"nested function", "int f() { int g() { } }", "syntax error at token LPAREN ('(') at line 1"},
		{"dangling else", "else x = 1;", "syntax error at token ELSE ('else') at line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mustFail(t, tt.src, tt.want)
		})
	}
}

func TestArraySizeMustBePositiveInteger(t *testing.T) {
	for _, src := range []string{"int a[0];", "int a[2.5];"} {
		prog, syms, diags := parseSource(t, src)
		if prog != nil {
			t.Errorf("parse(%q) succeeded, want rejection", src)
		}
		if len(diags) == 0 || !strings.Contains(diags[0].Message, "positive integer") {
			t.Errorf("parse(%q) diagnostics = %v", src, diags)
		}
		if _, ok := syms.Lookup("a"); ok {
			t.Errorf("parse(%q) inserted a symbol entry for the bad array", src)
		}
	}

	_, syms := mustParse(t, "int a[10];")
	entry, ok := syms.Lookup("a")
	if !ok || entry.Kind != symtab.Array || entry.Size != 10 {
		t.Errorf("symbol a = %+v, ok=%v", entry, ok)
	}
}

func TestNegativeArraySizeIsASyntaxError(t *testing.T) {
	// '-1' is not a NUMBER token, so the grammar rejects it before the size
	// check ever runs
	mustFail(t, "int a[-1];", "syntax error at token MINUS ('-') at line 1")
}

func TestRedeclarationOverwrites(t *testing.T) {
	_, syms := mustParse(t, "int x; float x;")
	entry, ok := syms.Lookup("x")
	if !ok || entry.Type != "float" {
		t.Errorf("symbol x = %+v, ok=%v, want overwritten to float", entry, ok)
	}
	if syms.Len() != 1 {
		t.Errorf("table has %d entries, want 1", syms.Len())
	}
}

func TestHaltsOnFirstError(t *testing.T) {
	_, _, diags := parseSource(t, "int 1; int 2; int 3;")
	syntaxCount := 0
	for _, d := range diags {
		if d.Stage == diag.Syntax {
			syntaxCount++
		}
	}
	if syntaxCount != 1 {
		t.Errorf("syntax diagnostics = %d, want exactly 1 (halt and report)", syntaxCount)
	}
}
