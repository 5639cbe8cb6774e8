// Package compile runs the full pipeline for one source text: lexing,
// parsing with symbol collection, and lowering to three-address code. Every
// call builds fresh lexer, parser, table, and generator state, so concurrent
// compilations are fully independent.
package compile

import (
	"minicc/internal/ast"
	"minicc/internal/diag"
	"minicc/internal/lexer"
	"minicc/internal/parser"
	"minicc/internal/symtab"
	"minicc/internal/tac"
	"minicc/internal/token"
)

// Result carries every artifact one compilation produced. Later-stage fields
// are zero when an earlier stage failed: the token list survives a syntax
// error, but no symbol table or TAC exists without a complete tree.
type Result struct {
	Tokens      []token.Token
	Program     *ast.Program
	ASTDump     string
	TAC         []tac.Instruction
	TACLines    []string
	Symbols     *symtab.Table
	Diagnostics []diag.Diagnostic
}

// Errors renders the diagnostics in the order they were recorded.
func (r Result) Errors() []string {
	out := make([]string, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		out = append(out, d.String())
	}
	return out
}

// Compile runs the pipeline over source. It never fails outright: the result
// always holds whatever partial artifacts exist plus all diagnostics.
func Compile(source string) Result {
	bag := diag.NewBag()

	tokens, lexDiags := lexer.Tokenize(source)
	for _, d := range lexDiags {
		bag.Add(d)
	}

	syms := symtab.New()
	p := parser.New(tokens, bag, syms)
	prog, err := p.Parse()

	result := Result{
		Tokens:      tokens,
		Diagnostics: bag.Diagnostics(),
	}
	if err != nil || prog == nil {
		// lowering is skipped entirely without a valid tree
		return result
	}

	result.Program = prog
	result.ASTDump = ast.Dump(prog)
	result.Symbols = syms

	gen := tac.NewGenerator()
	result.TAC = gen.Lower(prog)
	result.TACLines = tac.Render(result.TAC)
	return result
}
