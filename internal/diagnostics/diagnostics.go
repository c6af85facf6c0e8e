// Package diagnostics formats and emits the recognizer's warning
// catalog (spec.md §6) in the `file:line: message [ near `token` ]`
// shape the original cflow parser uses.
package diagnostics

import (
	"fmt"
	"io"

	"github.com/cflow-go/cflow/internal/token"
)

// Catalog messages, named after the condition that triggers them.
const (
	MsgUnexpectedEOF             = "unexpected eof in %s"
	MsgExpectedSemicolon         = "expected `;'"
	MsgExpectedCloseParen        = "expected `)'"
	MsgMissingSemicolonAfterStruct = "missing `;' after struct declaration"
	MsgForcedFunctionBodyClose   = "forced function body close"
	MsgRedefined                 = "%s/%d redefined"
	MsgPreviousDefinition        = "this is the place of previous definition"
	MsgInternalCannotPutback     = "INTERNAL ERROR: cannot return token to stream"
)

// Sink writes diagnostics for one translation unit to W, tagging each
// line with File.
type Sink struct {
	W    io.Writer
	File string
}

// NewSink returns a Sink writing to w for the named file.
func NewSink(w io.Writer, file string) *Sink {
	return &Sink{W: w, File: file}
}

// Emit writes one diagnostic line at line, without a near-token suffix;
// see EmitNear for the variant that appends ` near `TOKEN``.
func (s *Sink) Emit(line int, format string, args ...any) {
	s.emit(line, nil, format, args...)
}

// EmitNear is like Emit but also reports the token the error occurred
// near, rendered the way print_token() in the original renders it.
func (s *Sink) EmitNear(line int, near token.Token, format string, args ...any) {
	s.emit(line, &near, format, args...)
}

func (s *Sink) emit(line int, near *token.Token, format string, args ...any) {
	fmt.Fprintf(s.W, "%s:%d: %s", s.File, line, fmt.Sprintf(format, args...))
	if near != nil {
		fmt.Fprintf(s.W, " near %s", describeToken(*near))
	}
	fmt.Fprintln(s.W)
}

// describeToken renders a token the way the original parser's
// print_token() does: most kinds print their literal text in quotes,
// keywords print their own spelling, and OP prints a fixed placeholder
// since the original never recovered the operator's spelling either.
func describeToken(t token.Token) string {
	switch t.Kind {
	case token.Extern:
		return "`extern'"
	case token.Static:
		return "`static'"
	case token.Typedef:
		return "`typedef'"
	case token.Op:
		return "OP"
	case token.LBrace, token.LBrace0:
		return "`{'"
	case token.RBrace, token.RBrace0:
		return "`}'"
	default:
		if t.Kind.IsRune() {
			return fmt.Sprintf("`%c'", rune(t.Kind))
		}
		return fmt.Sprintf("`%s'", t.Text)
	}
}

// DebugTrace writes a --debug trace line for a newly defined symbol, in
// the `file:line: name/arity defined to decl-string` format of spec.md §6.
func (s *Sink) DebugTrace(w io.Writer, line int, name string, arity int, decl string) {
	fmt.Fprintf(w, "%s:%d: %s/%d defined to %s\n", s.File, line, name, arity, decl)
}
