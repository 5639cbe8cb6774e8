package token

type Kind int

const (
	EOF Kind = iota
	ILLEGAL

	// type keywords
	INT
	FLOAT
	CHAR
	VOID

	// statement keywords
	IF
	ELSE
	WHILE
	FOR
	RETURN

	ID
	NUMBER
	STRING

	PLUS
	MINUS
	TIMES
	DIVIDE
	MODULO

	ASSIGN
	EQ
	NE
	LT
	LE
	GT
	GE

	AND
	OR
	NOT

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	SEMI
	COMMA

	PLUSPLUS
	MINUSMINUS
)

func (k Kind) String() string {
	data := map[Kind]string{
		EOF:        "EOF",
		ILLEGAL:    "ILLEGAL",
		INT:        "INT",
		FLOAT:      "FLOAT",
		CHAR:       "CHAR",
		VOID:       "VOID",
		IF:         "IF",
		ELSE:       "ELSE",
		WHILE:      "WHILE",
		FOR:        "FOR",
		RETURN:     "RETURN",
		ID:         "ID",
		NUMBER:     "NUMBER",
		STRING:     "STRING",
		PLUS:       "PLUS",
		MINUS:      "MINUS",
		TIMES:      "TIMES",
		DIVIDE:     "DIVIDE",
		MODULO:     "MODULO",
		ASSIGN:     "ASSIGN",
		EQ:         "EQ",
		NE:         "NE",
		LT:         "LT",
		LE:         "LE",
		GT:         "GT",
		GE:         "GE",
		AND:        "AND",
		OR:         "OR",
		NOT:        "NOT",
		LPAREN:     "LPAREN",
		RPAREN:     "RPAREN",
		LBRACE:     "LBRACE",
		RBRACE:     "RBRACE",
		LBRACKET:   "LBRACKET",
		RBRACKET:   "RBRACKET",
		SEMI:       "SEMI",
		COMMA:      "COMMA",
		PLUSPLUS:   "PLUSPLUS",
		MINUSMINUS: "MINUSMINUS",
	}
	return data[k]
}

// Reserved maps identifier spellings to their keyword kinds. Identifiers
// not present here stay ID.
var Reserved = map[string]Kind{
	"int":    INT,
	"float":  FLOAT,
	"char":   CHAR,
	"void":   VOID,
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"for":    FOR,
	"return": RETURN,
}

// Token is one classified lexeme. Text holds the literal value: the spelling
// for identifiers and operators, the raw digits for numbers, and the unquoted
// contents for strings. For NUMBER tokens the converted value lives in Int or
// Float depending on IsFloat.
type Token struct {
	Kind    Kind
	Text    string
	Line    int
	Int     int64
	Float   float64
	IsFloat bool
}

func (t Token) Is(k Kind) bool { return t.Kind == k }

// IsType reports whether the token is a type-specifier keyword.
func (t Token) IsType() bool {
	switch t.Kind {
	case INT, FLOAT, CHAR, VOID:
		return true
	}
	return false
}
