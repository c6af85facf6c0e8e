package parser

import "github.com/cflow-go/cflow/internal/symtab"

// ident is the transient per-declarator record spec.md §3 describes.
// TypeEnd marks the cursor position where the type-specifier prefix
// ends and the declarator itself begins; it is what lets the parser
// rewind and re-run a sibling declarator after a comma (`int a, b;`).
type ident struct {
	Name    string
	TypeEnd Mark
	Parmcnt int
	Line    int
	Storage symtab.Storage
}

func newIdent(storage symtab.Storage) *ident {
	return &ident{TypeEnd: -1, Parmcnt: -1, Storage: storage}
}
