package parser

import "github.com/cflow-go/cflow/internal/token"

// parseKnrDcl recognizes the declaration-plus-optional-K&R-block shape
// every function declaration goes through: the declarator itself (via
// parseDcl, which also installs the symbol), then - unless strict ANSI
// mode is on - the pre-ANSI parameter-type block between an
// identifier-list header and its body:
//
//	int f(a, b)
//	int a;
//	int b;
//	{ ... }
//
// Each line of the block declares up to id.Parmcnt parameters,
// comma-separated within a line and semicolon-terminated per line,
// stopping at the opening brace. Any token that doesn't fit this shape
// rolls the whole attempt back, so the caller falls through to its own
// `;`/`{` handling instead.
func (r *Recognizer) parseKnrDcl(id *ident) {
	id.TypeEnd = -1
	r.parseDcl(id)
	if r.Opts.StrictANSI {
		return
	}

	switch r.buf.Current().Kind {
	case token.Identifier, token.TypeName, token.StructKeyword:
	default:
		return
	}
	if id.Parmcnt < 0 {
		return
	}

	sp := r.buf.Mark()
	parmcnt := 0
	var pid ident
	for stop := false; !stop && parmcnt < id.Parmcnt; r.buf.Next() {
		pid.TypeEnd = -1
		switch k := r.buf.Current().Kind; {
		case k.IsBraceOpen():
			r.buf.PutBack()
			stop = true
		case k == token.TypeName || k == token.Identifier || k == token.StructKeyword:
			r.buf.PutBack()
			newSp := r.buf.Mark()
			if !r.dcl(&pid) {
				r.buf.Restore(sp)
				return
			}
			parmcnt++
			if r.buf.Current().Kind == token.Kind(',') {
				for {
					r.buf.ReparseFrom(pid.TypeEnd, newSp)
					r.dcl(&pid)
					if r.buf.Current().Kind != token.Kind(',') {
						break
					}
				}
			} else if r.buf.Current().Kind != token.Kind(';') {
				r.buf.PutBack()
			}
		default:
			r.buf.Restore(sp)
			return
		}
	}
}
