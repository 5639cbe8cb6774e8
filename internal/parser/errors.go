package parser

import (
	"fmt"

	"minicc/internal/token"
)

// UnexpectedToken is raised when the parser sees a token no production can
// consume at the current position.
type UnexpectedToken struct {
	Tok token.Token
}

func (e UnexpectedToken) Error() string {
	return fmt.Sprintf("syntax error at token %s ('%s') at line %d", e.Tok.Kind, e.Tok.Text, e.Tok.Line)
}

// UnexpectedEOF is raised when the token stream ends before a complete
// program was recognized.
type UnexpectedEOF struct{}

func (e UnexpectedEOF) Error() string {
	return "syntax error at end of input"
}

// InvalidArraySize is raised for array declarations whose size literal is
// zero, negative, or fractional.
type InvalidArraySize struct {
	Name string
	Size token.Token
}

func (e InvalidArraySize) Error() string {
	return fmt.Sprintf("invalid size %s for array '%s' at line %d: size must be a positive integer", e.Size.Text, e.Name, e.Size.Line)
}
