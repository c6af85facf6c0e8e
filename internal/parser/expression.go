package parser

import "github.com/cflow-go/cflow/internal/token"

// expression walks a tolerant, non-precedence-aware scan of one
// expression, starting from the buffer's current token. It consumes a
// terminating `;` (and a `,` outside parentheses) but puts a brace of
// either flavor back, so the body walker's own nesting bookkeeping
// stays in control. It exists purely to find identifier uses: every
// identifier immediately followed by `(` is a call, every other
// identifier is a reference - except the field name after a member
// access (`.` or `->`), which is never a symbol.
func (r *Recognizer) expression() {
	parens := 0
	for {
		t := r.buf.Current()
		switch {
		case t.Kind == token.Kind(';'):
			return
		case t.Kind.IsBraceOpen() || t.Kind.IsBraceClose():
			r.buf.PutBack()
			return
		case t.Kind == token.Kind(','):
			if parens == 0 {
				return
			}
		case t.Kind == token.EOF:
			if r.Opts.Verbose {
				r.warnEOF("expression")
			}
			return
		case t.Kind == token.Identifier:
			name, line := t.Text, t.Line
			if r.buf.Next() == token.Kind('(') {
				r.Graph.Call(name, line)
				parens++
			} else {
				r.Graph.Reference(name, line)
				// Skip the whole member-access chain (`.f`, `->g.h`, ...),
				// then put back the token that follows it.
				for r.buf.Current().Kind == token.MemberOf {
					r.buf.Next() // the field name
					r.buf.Next() // the next `.`/`->`, or whatever follows the chain
				}
				r.buf.PutBack()
			}
		case t.Kind == token.Kind('('):
			// maybe a typecast
			if r.buf.Next() == token.TypeName {
				r.skipTo(token.Kind(')'))
			} else {
				r.buf.PutBack()
				parens++
			}
		case t.Kind == token.Kind(')'):
			parens--
		}
		r.buf.Next()
	}
}

// initializerList consumes a brace-delimited initializer, walking each
// scalar element through expression so identifier uses inside an
// initializer are still recorded. Entered with the current token at the
// opening brace; on return the token after the matching close brace is
// current.
func (r *Recognizer) initializerList() {
	lev := 0
	for {
		t := r.buf.Current()
		switch {
		case t.Kind.IsBraceOpen():
			lev++
		case t.Kind.IsBraceClose():
			lev--
			if lev <= 0 {
				r.buf.Next()
				return
			}
		case t.Kind == token.EOF:
			r.warnEOF("initializer list")
			return
		case t.Kind == token.Kind(','):
		default:
			r.expression()
		}
		r.buf.Next()
	}
}
