package parser

import (
	"strings"

	"github.com/cflow-go/cflow/internal/token"
)

// declText accumulates the canonical declaration-string rendering for a
// declarator, following the spacing rules of spec.md §4.2: a token only
// gets a leading space if the previous emission asked for one, and `*`
// is the one case that suppresses the space that would otherwise follow
// it.
type declText struct {
	b         strings.Builder
	needSpace bool
}

func (d *declText) save(t token.Token) {
	switch t.Kind {
	case token.Identifier, token.TypeName, token.StructKeyword, token.ParmWrapper, token.Word:
		if d.needSpace {
			d.b.WriteByte(' ')
		}
		d.b.WriteString(t.Text)
		d.needSpace = true
	case token.Modifier:
		if d.needSpace {
			d.b.WriteByte(' ')
		}
		d.b.WriteString(t.Text)
		d.needSpace = t.Text == "" || t.Text[0] != '*'
	case token.Extern, token.Static:
		// storage class already captured in the symbol's Storage field
	default:
		if t.Kind == token.Kind('(') && d.needSpace {
			d.b.WriteByte(' ')
		}
		if t.Kind.IsRune() {
			d.b.WriteByte(byte(t.Kind))
		} else {
			d.b.WriteString(t.Text)
		}
		d.needSpace = false
	}
}

// String returns the accumulated declaration text.
func (d *declText) String() string {
	return d.b.String()
}

// saveRange renders tokens[0:n] (the consumed prefix up to but
// excluding the current lookahead token) into a fresh declText.
func saveRange(tokens []token.Token) string {
	var d declText
	for _, t := range tokens {
		d.save(t)
	}
	return d.String()
}
