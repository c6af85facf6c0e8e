package lexer

import (
	"testing"

	"github.com/cflow-go/cflow/internal/config"
	"github.com/cflow-go/cflow/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `int add(int a, int b) {
		return a + b;
	}`

	tests := []struct {
		kind token.Kind
		text string
	}{
		{token.TypeName, "int"},
		{token.Identifier, "add"},
		{token.Kind('('), "("},
		{token.TypeName, "int"},
		{token.Identifier, "a"},
		{token.Kind(','), ","},
		{token.TypeName, "int"},
		{token.Identifier, "b"},
		{token.Kind(')'), ")"},
		{token.LBrace, "{"},
		{token.Word, "return"},
		{token.Identifier, "a"},
		{token.Kind('+'), "+"},
		{token.Identifier, "b"},
		{token.Kind(';'), ";"},
		{token.RBrace, "}"},
		{token.EOF, ""},
	}

	l := New(input, nil, nil)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.kind {
			t.Fatalf("tests[%d]: kind = %v, want %v (text=%q)", i, tok.Kind, tt.kind, tok.Text)
		}
		if tok.Text != tt.text {
			t.Fatalf("tests[%d]: text = %q, want %q", i, tok.Text, tt.text)
		}
	}
}

func TestStorageAndStructKeywords(t *testing.T) {
	l := New("extern static typedef struct union enum", nil, nil)
	want := []token.Kind{
		token.Extern, token.Static, token.Typedef,
		token.StructKeyword, token.StructKeyword, token.StructKeyword,
		token.EOF,
	}
	for i, k := range want {
		if got := l.NextToken().Kind; got != k {
			t.Fatalf("token %d: got %v, want %v", i, got, k)
		}
	}
}

func TestEOFIsSticky(t *testing.T) {
	l := New("x", nil, nil)
	l.NextToken()
	for i := 0; i < 3; i++ {
		if got := l.NextToken().Kind; got != token.EOF {
			t.Fatalf("call %d after exhaustion: got %v, want EOF", i, got)
		}
	}
}

func TestUnterminatedStringDoesNotHang(t *testing.T) {
	l := New(`"unterminated`, nil, nil)
	tok := l.NextToken()
	if tok.Kind != token.Word {
		t.Fatalf("kind = %v, want Word", tok.Kind)
	}
	if got := l.NextToken().Kind; got != token.EOF {
		t.Fatalf("next kind = %v, want EOF", got)
	}
}

type stubOracle map[string]bool

func (s stubOracle) IsTypeName(name string) bool { return s[name] }

func TestOracleReclassifiesTypedefName(t *testing.T) {
	l := New("Widget w", stubOracle{"Widget": true}, nil)
	if got := l.NextToken().Kind; got != token.TypeName {
		t.Fatalf("first token kind = %v, want TypeName", got)
	}
	if got := l.NextToken().Kind; got != token.Identifier {
		t.Fatalf("second token kind = %v, want Identifier", got)
	}
}

func TestConfiguredModifierWord(t *testing.T) {
	kw := config.Default()
	kw.ModifierWords = append(kw.ModifierWords, "MYCONST")
	l := New("MYCONST x", nil, kw)
	if got := l.NextToken().Kind; got != token.Modifier {
		t.Fatalf("kind = %v, want Modifier", got)
	}
}

func TestLineTracking(t *testing.T) {
	l := New("a\nb\n\nc", nil, nil)
	lines := []int{1, 2, 4}
	for i, want := range lines {
		tok := l.NextToken()
		if tok.Line != want {
			t.Fatalf("token %d (%q): line = %d, want %d", i, tok.Text, tok.Line, want)
		}
	}
}

func TestReservedWordsAreNotIdentifiers(t *testing.T) {
	l := New("if while return sizeof goto", nil, nil)
	for i := 0; i < 5; i++ {
		tok := l.NextToken()
		if tok.Kind != token.Word {
			t.Fatalf("token %d (%q): kind = %v, want Word", i, tok.Text, tok.Kind)
		}
	}
}

func TestColumnZeroBracesAreIndentationGuessed(t *testing.T) {
	l := New("int main()\n{\nx;\n}\n", nil, nil)
	var kinds []token.Kind
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			break
		}
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{
		token.TypeName, token.Identifier, token.Kind('('), token.Kind(')'),
		token.LBrace0, token.Identifier, token.Kind(';'), token.RBrace0,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(kinds), kinds, len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestIndentedBracesStayLiteral(t *testing.T) {
	l := New("f() {\n    {\n    }\n  }\n", nil, nil)
	var kinds []token.Kind
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			break
		}
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{
		token.Identifier, token.Kind('('), token.Kind(')'),
		token.LBrace, token.LBrace, token.RBrace, token.RBrace,
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestMultiCharOperators(t *testing.T) {
	l := New("a->b == c != d", nil, nil)
	want := []struct {
		kind token.Kind
		text string
	}{
		{token.Identifier, "a"},
		{token.MemberOf, "->"},
		{token.Identifier, "b"},
		{token.Op, "=="},
		{token.Identifier, "c"},
		{token.Op, "!="},
		{token.Identifier, "d"},
	}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Kind != w.kind || tok.Text != w.text {
			t.Fatalf("token %d: got (%v, %q), want (%v, %q)", i, tok.Kind, tok.Text, w.kind, w.text)
		}
	}
}
