package parser

import (
	"github.com/cflow-go/cflow/internal/diagnostics"
	"github.com/cflow-go/cflow/internal/token"
)

// structHead handles a struct/union/enum head at the recognizer's
// current position (which must already be token.StructKeyword). A
// struct/union/enum body is never parsed for its members - the whole
// head is skipped as an opaque unit (spec.md §4.3) and, if a declarator
// follows, rewritten in the token stream into a single synthetic tag so
// the rest of dcl/dirdcl and the declaration-text accumulator can treat
// it like any other type-specifier.
//
// allowModifierDeclarator is true for a typedef's struct head (where
// `typedef struct {...} *T;` is legal, so a following `*` also counts
// as "a declarator follows") and false for a plain variable
// declaration's struct head, matching the two call sites' divergent
// checks in the original parser.
//
// bareDecl reports whether the head stood alone as `struct Tag;` with
// nothing left to declare - the caller should stop immediately rather
// than fall through to dcl.
func (r *Recognizer) structHead(allowModifierDeclarator bool) (bareDecl bool) {
	mark := r.buf.Mark()
	hadTag := r.buf.Next() == token.Identifier
	r.buf.PutBack()
	r.skipStruct()

	follow := r.buf.Current()
	isDeclarator := follow.Kind == token.Identifier ||
		(allowModifierDeclarator && follow.Kind == token.Modifier)

	if isDeclarator {
		r.buf.rewriteStructHead(mark, hadTag, follow)
		return false
	}

	if follow.Kind == token.Kind(';') {
		return true
	}

	// Neither a declarator nor a bare `;`: the struct head was part of a
	// more complex type than this helper understands (e.g. wrapped in
	// parens). Report it, restore to just after the keyword, and let the
	// caller fall through to ordinary declarator parsing, which silently passes over the
	// struct keyword the same way it passes over any other type
	// specifier it doesn't specially recognize.
	if r.Diag != nil {
		r.Diag.Emit(follow.Line, diagnostics.MsgMissingSemicolonAfterStruct)
	}
	r.buf.Restore(mark)
	return false
}

// skipStruct consumes an optional tag and, if present, a brace-delimited
// body, tracking nested braces so an inner struct/union definition
// doesn't terminate the skip early.
func (r *Recognizer) skipStruct() {
	if r.buf.Next() == token.Identifier {
		r.buf.Next()
	} else if r.buf.Current().Kind == token.Kind(';') {
		return
	}
	if !r.buf.Current().Kind.IsBraceOpen() {
		return
	}
	level := 0
	for {
		switch {
		case r.buf.Current().Kind == token.EOF:
			r.warnEOF("struct")
			return
		case r.buf.Current().Kind.IsBraceOpen():
			level++
		case r.buf.Current().Kind.IsBraceClose():
			level--
		}
		r.buf.Next()
		if level == 0 {
			break
		}
	}
}
