package parser

import (
	"github.com/cflow-go/cflow/internal/diagnostics"
	"github.com/cflow-go/cflow/internal/symtab"
	"github.com/cflow-go/cflow/internal/token"
)

// parseTypedef recognizes `typedef <type> <name>;` and everything the
// type may legally be, including an anonymous struct/union/enum body.
// The current token must be token.Typedef on entry.
func (r *Recognizer) parseTypedef() {
	id := newIdent(symtab.TypedefStorage)
	if r.buf.Next() == token.StructKeyword {
		r.structHead(true)
	} else {
		r.buf.PutBack()
	}
	r.dcl(id)
	if id.Name != "" {
		r.Table.DeclareType(id.Name, r.File, id.Line)
	}
}

// parseDcl recognizes one declarator of a (possibly comma-separated)
// declaration list and, if it named something, declares it. The
// declaration text is rendered from everything consumed so far minus
// the terminator token - the buffer was compacted before this
// declaration began, so the consumed range is the declaration's own.
func (r *Recognizer) parseDcl(id *ident) {
	id.Parmcnt = -1
	id.Name = ""
	r.buf.PutBack()
	r.dcl(id)
	if id.Name == "" {
		return
	}
	r.declare(id, saveRange(r.buf.Consumed()))
}

// declare installs id as either an auto-storage local (when id.Storage
// is AutoStorage) or a persistent symbol. Two shapes are special:
//   - an externed declaration with no parameter list and no body is a
//     pure forward reference to a definition living elsewhere and
//     installs nothing;
//   - a function prototype (parameter list present, terminated by `;`)
//     installs its arity and declaration text but does not count as a
//     definition, so the real definition later neither trips the
//     redefinition diagnostic nor loses to the prototype's record.
func (r *Recognizer) declare(id *ident, text string) {
	if id.Storage == symtab.AutoStorage {
		r.Table.DeclareAuto(id.Name, id.Line, r.level)
		return
	}
	if id.Parmcnt < 0 && id.Storage == symtab.ExplicitExternStorage {
		return
	}
	if id.Parmcnt >= 0 && r.buf.Current().Kind == token.Kind(';') {
		r.Table.DeclareForward(id.Name, id.Line, r.level, id.Parmcnt, id.Storage, text, r.File)
		return
	}

	r.Table.Declare(id.Name, id.Line, r.level, id.Parmcnt, id.Storage, text, r.File)
	if r.Opts.Debug && r.Diag != nil {
		r.Diag.DebugTrace(r.Opts.DebugWriter, r.buf.Current().Line, id.Name, id.Parmcnt, text)
	}
}

// parseVariableDeclaration recognizes a non-function declaration: one
// or more comma-separated declarators sharing a type, each optionally
// followed by an `=` initializer, terminated by `;`. A declarator whose
// suffix turns out to be a brace is tolerantly treated as a function
// body anyway - is_function's lookahead is a heuristic, not a guarantee.
func (r *Recognizer) parseVariableDeclaration(id *ident) {
	sp := r.buf.Mark()
	id.TypeEnd = -1

	if r.buf.Current().Kind == token.StructKeyword {
		if r.structHead(false) {
			return
		}
	}

again:
	r.parseDcl(id)

sel:
	switch r.buf.Current().Kind {
	case token.Kind(';'):
	case token.Kind(','):
		r.buf.ReparseFrom(id.TypeEnd, sp)
		goto again
	case token.Kind('='):
		r.buf.Next()
		if r.buf.Current().Kind.IsBraceOpen() {
			r.initializerList()
		} else {
			r.expression()
		}
		goto sel
	case token.LBrace, token.LBrace0:
		r.funcBody()
		return
	case token.EOF:
		if r.Opts.Verbose {
			r.warnEOF("declaration")
		}
	default:
		if r.Opts.Verbose {
			r.warnNear(diagnostics.MsgExpectedSemicolon)
		}
	}

	// A declarator here may still have carried a parameter list (a
	// body-local prototype, or a misjudged isFunction); reclaim any
	// parameter names installed into a body scope that never opened.
	r.Table.DeleteAutos(r.level + 1)
}

// parseFunctionDeclaration recognizes a function prototype or
// definition: a declarator whose parameter-list suffix was found by
// isFunction, optionally followed by a K&R parameter-declaration block,
// then either `;` (a prototype) or a brace-delimited body. The declared
// symbol becomes the active caller when its body starts and stays the
// active caller after the body ends, until another function body starts.
func (r *Recognizer) parseFunctionDeclaration(id *ident) {
	r.parseKnrDcl(id)

	switch r.buf.Current().Kind {
	case token.LBrace, token.LBrace0:
		if id.Name != "" {
			r.Graph.Caller = r.Table.GetSymbol(id.Name)
		}
		r.funcBody()
		return
	case token.Kind(';'):
	case token.EOF:
		if r.Opts.Verbose {
			r.warnEOF("declaration")
		}
	default:
		if r.Opts.Verbose {
			r.warnNear(diagnostics.MsgExpectedSemicolon)
		}
		r.buf.PutBack()
	}

	// No body followed: the parameter names maybeParmList installed into
	// the never-opened body scope are reclaimed here.
	r.Table.DeleteAutos(r.level + 1)
}
