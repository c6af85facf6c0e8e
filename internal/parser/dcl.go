package parser

import (
	"github.com/cflow-go/cflow/internal/diagnostics"
	"github.com/cflow-go/cflow/internal/symtab"
	"github.com/cflow-go/cflow/internal/token"
)

// dcl recognizes one declarator: a run of type-specifier/modifier
// tokens (spec.md calls this the "type-specifier prefix") followed by
// the declarator proper, handled by dirdcl. id.TypeEnd is set exactly
// once, the first time a modifier is seen or the prefix ends - whichever
// comes first - marking where a sibling declarator after a comma should
// resume re-parsing from.
//
// The scanner may return a macro name as an identifier even though it
// acts as a type in context; the inner loop over consecutive
// identifiers plus a one-token lookahead is how the prefix scan decides
// whether such a run is part of the type (followed by a real type-name
// token) or the start of the declarator itself.
//
// The return value reports recognition success; the failure paths are
// dirdcl's verbose-gated paren mismatches and an end of input inside a
// late-placed parameter-wrapper's parentheses.
func (r *Recognizer) dcl(id *ident) bool {
loop:
	for {
		if r.buf.Next() == token.EOF || r.buf.Current().Kind == token.Kind('(') {
			break
		}
		switch r.buf.Current().Kind {
		case token.Modifier:
			if id != nil && id.TypeEnd == -1 {
				id.TypeEnd = r.buf.Mark() - 1
			}
		case token.Identifier:
			for r.buf.Current().Kind == token.Identifier {
				r.buf.Next()
			}
			follow := r.buf.Current().Kind
			r.buf.PutBack()
			switch {
			case follow == token.TypeName:
				continue loop
			case follow != token.Modifier:
				break loop
			}
		case token.Kind(')'):
			r.buf.PutBack()
			break loop
		}
	}
	if id != nil && id.TypeEnd == -1 {
		id.TypeEnd = r.buf.Mark() - 1
	}
	return r.dirdcl(id)
}

// parmdcl is dcl's stripped-down sibling for a single entry in a
// parameter list: it stops at a top-level `,` or `)` without a
// declarator at all (an unnamed, type-only parameter), and never treats
// an identifier run followed by a type-name specially - K&R parameter
// lists don't have the macro-expansion ambiguity dcl's prefix scan
// exists for.
func (r *Recognizer) parmdcl(id *ident) bool {
loop:
	for {
		if r.buf.Next() == token.EOF || r.buf.Current().Kind == token.Kind('(') {
			break
		}
		switch r.buf.Current().Kind {
		case token.Modifier:
			if id != nil && id.TypeEnd == -1 {
				id.TypeEnd = r.buf.Mark() - 1
			}
		case token.Identifier:
			for r.buf.Current().Kind == token.Identifier {
				r.buf.Next()
			}
			follow := r.buf.Current().Kind
			r.buf.PutBack()
			if follow != token.Modifier {
				break loop
			}
		case token.Kind(')'), token.Kind(','):
			return true
		}
	}
	if id != nil && id.TypeEnd == -1 {
		id.TypeEnd = r.buf.Mark() - 1
	}
	return r.dirdcl(id)
}

// dirdcl recognizes the declarator proper: a parenthesized
// sub-declarator, or a bare name, followed by any run of array and
// parameter-list suffixes and the pre-ANSI parameter-wrapper macro
// convention. On return the terminator token (whatever follows the
// declarator) is the buffer's current token.
func (r *Recognizer) dirdcl(id *ident) bool {
	var parmPtr *int

	switch r.buf.Current().Kind {
	case token.Kind('('):
		r.dcl(id)
		if r.buf.Current().Kind != token.Kind(')') && r.Opts.Verbose {
			r.warnNear(diagnostics.MsgExpectedCloseParen)
			return false
		}
	case token.Identifier:
		if id != nil {
			id.Name = r.buf.Current().Text
			id.Line = r.buf.Current().Line
			parmPtr = &id.Parmcnt
		}
	}

	wrapper := false
	if r.buf.Next() == token.ParmWrapper {
		wrapper = true
		r.buf.Next() // the wrapper's '('
	} else {
		r.buf.PutBack()
	}

	for r.buf.Next() == token.Kind('[') || r.buf.Current().Kind == token.Kind('(') {
		if r.buf.Current().Kind == token.Kind('[') {
			r.skipTo(token.Kind(']'))
			continue
		}
		r.maybeParmList(parmPtr)
		if r.buf.Current().Kind != token.Kind(')') && r.Opts.Verbose {
			r.warnNear(diagnostics.MsgExpectedCloseParen)
			return false
		}
	}
	if wrapper {
		r.buf.Next() // the wrapper's trailing ')'
	}

	// A second, late-placed parameter-wrapper macro after the parameter
	// list itself (an attribute-style annotation); consumed by counting
	// balanced parens rather than a single skip_to, since its contents
	// may themselves contain nested parens.
	if r.buf.Current().Kind != token.ParmWrapper {
		return true
	}
	if r.buf.Next() != token.Kind('(') {
		r.buf.PutBack()
		return true
	}
	level := 0
	for {
		k := r.buf.Next()
		if k == token.EOF {
			r.warnEOF("function declaration")
			return false
		}
		if k == token.Kind('(') {
			level++
		} else if k == token.Kind(')') {
			if level == 0 {
				r.buf.Next()
				return true
			}
			level--
		}
	}
}

// maybeParmList counts the parameter-declarators in a `(...)` suffix,
// consuming each with parmdcl and writing the count through
// parmCntReturn (which may be nil, for an anonymous nested declarator
// that has no arity slot of its own). Arity is the number of
// parameter-declarators actually seen, not commas plus one, so an empty
// list is 0 and `(void)` is 1.
//
// When the list belongs to a named declarator (parmCntReturn non-nil),
// each named parameter is installed as an auto symbol one level below
// the current scope - the body scope about to open - so that uses of a
// parameter inside the body resolve to a scope-local symbol and stay
// out of the persistent graph. A prototype with no body reclaims them
// at its terminating semicolon (see parseFunctionDeclaration).
func (r *Recognizer) maybeParmList(parmCntReturn *int) {
	parmcnt := 0
	for r.buf.Next() != token.EOF {
		switch r.buf.Current().Kind {
		case token.Kind(')'):
			if parmCntReturn != nil {
				*parmCntReturn = parmcnt
			}
			return
		case token.Kind(','):
			// just consumed; loop for the next entry
		default:
			parmcnt++
			r.buf.PutBack()
			if parmCntReturn != nil {
				pid := newIdent(symtab.AutoStorage)
				r.parmdcl(pid)
				if pid.Name != "" {
					r.Table.DeclareAuto(pid.Name, pid.Line, r.level+1)
				}
			} else {
				r.parmdcl(nil)
			}
			r.buf.PutBack()
		}
	}
	// Like the struct, initializer-list and late parameter-wrapper EOF
	// diagnostics, this one is emitted unconditionally rather than gated
	// on verbose.
	r.warnEOF("parameter list")
}
