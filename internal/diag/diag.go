package diag

import "fmt"

// Stage identifies which phase of the pipeline produced a diagnostic.
type Stage int

const (
	Lex Stage = iota
	Syntax
)

func (s Stage) String() string {
	switch s {
	case Lex:
		return "lex"
	case Syntax:
		return "syntax"
	default:
		return "unknown"
	}
}

// Diagnostic is one recoverable compilation error. Message is the complete
// human-readable text; Line duplicates the source line for structured access
// and is zero when the diagnostic is not tied to a line (end of input).
type Diagnostic struct {
	Stage   Stage
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	return d.Message
}

// Bag accumulates diagnostics during one compilation. A bag belongs to a
// single compilation session and is never shared across sessions.
type Bag struct {
	diags []Diagnostic
}

func NewBag() *Bag {
	return &Bag{}
}

func (b *Bag) Add(d Diagnostic) {
	b.diags = append(b.diags, d)
}

// Lexf records a lexical diagnostic bound to a source line.
func (b *Bag) Lexf(line int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	b.Add(Diagnostic{Stage: Lex, Line: line, Message: fmt.Sprintf("%s at line %d", msg, line)})
}

// Diagnostics returns the accumulated diagnostics in the order they were
// recorded.
func (b *Bag) Diagnostics() []Diagnostic {
	return b.diags
}
