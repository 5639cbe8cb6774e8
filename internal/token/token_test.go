package token

import "testing"

func TestIs(t *testing.T) {
	tok := Token{Kind: SEMI, Text: ";", Line: 3}
	if !tok.Is(SEMI) {
		t.Error("Is(SEMI) = false")
	}
	if tok.Is(COMMA) {
		t.Error("Is(COMMA) = true")
	}
}

func TestIsType(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{INT, true},
		{FLOAT, true},
		{CHAR, true},
		{VOID, true},
		{ID, false},
		{RETURN, false},
	}
	for _, tt := range tests {
		tok := Token{Kind: tt.kind}
		if got := tok.IsType(); got != tt.want {
			t.Errorf("%v.IsType() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestReservedCoversKeywordsOnly(t *testing.T) {
	for spelling, kind := range Reserved {
		if kind == ID {
			t.Errorf("Reserved[%q] = ID", spelling)
		}
	}
	if _, ok := Reserved["main"]; ok {
		t.Error("Reserved contains a plain identifier")
	}
}
