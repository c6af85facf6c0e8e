package token

import "testing"

func TestIsRune(t *testing.T) {
	tests := []struct {
		k    Kind
		want bool
	}{
		{Kind('('), true},
		{Kind(';'), true},
		{EOF, false},
		{Identifier, false},
		{LBrace, false},
	}
	for _, tt := range tests {
		if got := tt.k.IsRune(); got != tt.want {
			t.Errorf("Kind(%d).IsRune() = %v, want %v", tt.k, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{EOF, "EOF"},
		{Identifier, "identifier"},
		{LBrace, "'{'"},
		{LBrace0, "'{'"},
		{Kind('('), "'('"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestIsBrace(t *testing.T) {
	open := []Kind{LBrace, LBrace0}
	for _, k := range open {
		if !k.IsBraceOpen() {
			t.Errorf("%v.IsBraceOpen() = false, want true", k)
		}
		if k.IsBraceClose() {
			t.Errorf("%v.IsBraceClose() = true, want false", k)
		}
	}
	close_ := []Kind{RBrace, RBrace0}
	for _, k := range close_ {
		if !k.IsBraceClose() {
			t.Errorf("%v.IsBraceClose() = false, want true", k)
		}
	}
}
