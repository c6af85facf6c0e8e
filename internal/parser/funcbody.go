package parser

import (
	"github.com/cflow-go/cflow/internal/diagnostics"
	"github.com/cflow-go/cflow/internal/symtab"
	"github.com/cflow-go/cflow/internal/token"
)

// funcBody walks a function's compound-statement body, entered with the
// opening brace already consumed. Brace nesting is tracked as scope
// level; declarations opened by a storage-class or type keyword are
// recognized as body-locals (auto storage, dropped at the matching
// close via Table.DeleteAutos), and everything else is a sequence of
// expression-statements recorded against the active caller.
//
// An indentation-guessed close brace under Options.UseIndentation is
// authoritative: it collapses every open level at once, on the theory
// that a brace in column zero ends the function no matter what the
// nesting count claims.
func (r *Recognizer) funcBody() {
	r.level++
	entry := r.level

	for r.level >= entry {
		r.buf.Cleanup()
		k := r.buf.Next()
		switch {
		case k == token.Static || k == token.TypeName:
			// A static local is still scope-local for graph purposes, so
			// it gets auto storage like any other body declaration.
			lid := newIdent(symtab.AutoStorage)
			r.parseVariableDeclaration(lid)
		case k == token.Extern:
			lid := newIdent(symtab.ExplicitExternStorage)
			r.parseDeclaration(lid)
		case k == token.Typedef:
			r.parseTypedef()
		case k == token.LBrace || k == token.LBrace0:
			r.level++
		case k == token.RBrace0 && r.Opts.UseIndentation:
			if r.Opts.Verbose && r.level != entry && r.Diag != nil {
				r.Diag.Emit(r.buf.Current().Line, diagnostics.MsgForcedFunctionBodyClose)
			}
			for ; r.level > 0; r.level-- {
				r.Table.DeleteAutos(r.level)
			}
		case k == token.RBrace || k == token.RBrace0:
			r.Table.DeleteAutos(r.level)
			r.level--
		case k == token.EOF:
			if r.Opts.Verbose {
				r.warnEOF("function body")
			}
			return
		default:
			r.expression()
		}
	}
}
