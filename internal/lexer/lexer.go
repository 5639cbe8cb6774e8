package lexer

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"minicc/internal/diag"
	"minicc/internal/token"
)

// Lexer converts source text into tokens one at a time. Unrecognized
// characters are reported to the bag and skipped; lexing never aborts.
type Lexer struct {
	reader *bufio.Reader
	bag    *diag.Bag
	line   int
	peeked *token.Token
}

func New(reader io.Reader, bag *diag.Bag) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
		bag:    bag,
		line:   1,
	}
}

func NewString(src string, bag *diag.Bag) *Lexer {
	return New(strings.NewReader(src), bag)
}

// Tokenize lexes an entire source text eagerly and returns the full token
// list (without the trailing EOF token) alongside any lexical diagnostics.
func Tokenize(src string) ([]token.Token, []diag.Diagnostic) {
	bag := diag.NewBag()
	l := NewString(src, bag)

	var tokens []token.Token
	for {
		tok := l.Lex()
		if tok.Kind == token.EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens, bag.Diagnostics()
}

func (l *Lexer) backup() {
	if err := l.reader.UnreadRune(); err != nil {
		panic(err)
	}
}

func (l *Lexer) kinded(k token.Kind, text string) token.Token {
	return token.Token{Kind: k, Text: text, Line: l.line}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() token.Token {
	if l.peeked != nil {
		return *l.peeked
	}
	tok := l.Lex()
	l.peeked = &tok
	return tok
}

func firstChar(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func otherChar(r rune) bool {
	return firstChar(r) || isDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (l *Lexer) lexIdent(first rune) token.Token {
	var lit strings.Builder
	lit.WriteRune(first)

	for {
		r, _, err := l.reader.ReadRune()
		if err != nil {
			if err == io.EOF {
				break
			}
			panic(err)
		}
		if !otherChar(r) {
			l.backup()
			break
		}
		lit.WriteRune(r)
	}

	text := lit.String()
	if kind, ok := token.Reserved[text]; ok {
		return l.kinded(kind, text)
	}
	return l.kinded(token.ID, text)
}

// lexNumber matches a decimal integer with an optional fractional part. The
// dot is only consumed when a digit follows it, so "5." lexes as the number 5
// and a stray dot.
func (l *Lexer) lexNumber(first rune) token.Token {
	var lit strings.Builder
	lit.WriteRune(first)

	readDigits := func() {
		for {
			r, _, err := l.reader.ReadRune()
			if err != nil {
				if err == io.EOF {
					return
				}
				panic(err)
			}
			if !isDigit(r) {
				l.backup()
				return
			}
			lit.WriteRune(r)
		}
	}
	readDigits()

	isFloat := false
	if byt, _ := l.reader.Peek(2); len(byt) == 2 && byt[0] == '.' && byt[1] >= '0' && byt[1] <= '9' {
		if _, _, err := l.reader.ReadRune(); err != nil {
			panic(err)
		}
		lit.WriteRune('.')
		isFloat = true
		readDigits()
	}

	tok := l.kinded(token.NUMBER, lit.String())
	tok.IsFloat = isFloat
	if isFloat {
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			panic(err)
		}
		tok.Float = f
	} else {
		n, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			panic(err)
		}
		tok.Int = n
	}
	return tok
}

// lexString is entered after the opening quote. The stored value has the
// quotes stripped; escape sequences are kept verbatim, backslash included.
func (l *Lexer) lexString() (token.Token, bool) {
	var lit strings.Builder
	startLine := l.line

	for {
		r, _, err := l.reader.ReadRune()
		if err != nil {
			if err == io.EOF {
				l.bag.Lexf(startLine, "illegal character '\"'")
				return token.Token{}, false
			}
			panic(err)
		}

		switch r {
		case '"':
			tok := l.kinded(token.STRING, lit.String())
			tok.Line = startLine
			return tok, true
		case '\n':
			// An unescaped newline cannot appear inside a string literal.
			l.bag.Lexf(startLine, "illegal character '\"'")
			l.line++
			return token.Token{}, false
		case '\\':
			lit.WriteRune(r)
			r, _, err = l.reader.ReadRune()
			if err != nil {
				if err == io.EOF {
					l.bag.Lexf(startLine, "illegal character '\"'")
					return token.Token{}, false
				}
				panic(err)
			}
			lit.WriteRune(r)
		default:
			lit.WriteRune(r)
		}
	}
}

// skipComment discards the rest of a // line comment, leaving the newline for
// the main loop so line counting stays in one place.
func (l *Lexer) skipComment() {
	for {
		r, _, err := l.reader.ReadRune()
		if err != nil {
			if err == io.EOF {
				return
			}
			panic(err)
		}
		if r == '\n' {
			l.backup()
			return
		}
	}
}

// twoChar consumes the second character and returns pair when it matches
// next, otherwise returns single.
func (l *Lexer) twoChar(next byte, pair token.Kind, pairText string, single token.Kind, singleText string) token.Token {
	if byt, _ := l.reader.Peek(1); len(byt) == 1 && byt[0] == next {
		if _, _, err := l.reader.ReadRune(); err != nil {
			panic(err)
		}
		return l.kinded(pair, pairText)
	}
	return l.kinded(single, singleText)
}

// Lex returns the next token, or an EOF-kinded token at end of input.
func (l *Lexer) Lex() token.Token {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil
		return tok
	}

	for {
		r, _, err := l.reader.ReadRune()
		if err != nil {
			if err == io.EOF {
				return l.kinded(token.EOF, "")
			}
			panic(err)
		}

		switch r {
		case ' ', '\t', '\r':
			continue
		case '\n':
			l.line++
			continue
		case '(':
			return l.kinded(token.LPAREN, "(")
		case ')':
			return l.kinded(token.RPAREN, ")")
		case '{':
			return l.kinded(token.LBRACE, "{")
		case '}':
			return l.kinded(token.RBRACE, "}")
		case '[':
			return l.kinded(token.LBRACKET, "[")
		case ']':
			return l.kinded(token.RBRACKET, "]")
		case ';':
			return l.kinded(token.SEMI, ";")
		case ',':
			return l.kinded(token.COMMA, ",")
		case '+':
			return l.twoChar('+', token.PLUSPLUS, "++", token.PLUS, "+")
		case '-':
			return l.twoChar('-', token.MINUSMINUS, "--", token.MINUS, "-")
		case '*':
			return l.kinded(token.TIMES, "*")
		case '%':
			return l.kinded(token.MODULO, "%")
		case '=':
			return l.twoChar('=', token.EQ, "==", token.ASSIGN, "=")
		case '!':
			return l.twoChar('=', token.NE, "!=", token.NOT, "!")
		case '<':
			return l.twoChar('=', token.LE, "<=", token.LT, "<")
		case '>':
			return l.twoChar('=', token.GE, ">=", token.GT, ">")
		case '/':
			if byt, _ := l.reader.Peek(1); len(byt) == 1 && byt[0] == '/' {
				l.skipComment()
				continue
			}
			return l.kinded(token.DIVIDE, "/")
		case '&':
			if byt, _ := l.reader.Peek(1); len(byt) == 1 && byt[0] == '&' {
				if _, _, err := l.reader.ReadRune(); err != nil {
					panic(err)
				}
				return l.kinded(token.AND, "&&")
			}
			l.bag.Lexf(l.line, "illegal character '&'")
			continue
		case '|':
			if byt, _ := l.reader.Peek(1); len(byt) == 1 && byt[0] == '|' {
				if _, _, err := l.reader.ReadRune(); err != nil {
					panic(err)
				}
				return l.kinded(token.OR, "||")
			}
			l.bag.Lexf(l.line, "illegal character '|'")
			continue
		case '"':
			tok, ok := l.lexString()
			if !ok {
				continue
			}
			return tok
		}

		switch {
		case isDigit(r):
			return l.lexNumber(r)
		case firstChar(r):
			return l.lexIdent(r)
		}

		l.bag.Lexf(l.line, "illegal character %q", r)
	}
}
