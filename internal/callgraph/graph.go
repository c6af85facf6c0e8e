// Package callgraph builds the de-duplicated caller/callee adjacency on
// top of a symtab.Table, mirroring the original parser's call() and
// reference() routines (see original_source/src/parser.c).
package callgraph

import "github.com/cflow-go/cflow/internal/symtab"

// Graph records call and reference events against a symbol table and
// maintains the Callers/Callees adjacency lists: a call links both
// directions, a reference only the active caller's Callees, and every
// edge appears at most once per list.
type Graph struct {
	Table  *symtab.Table
	Caller *symtab.Symbol // nil outside any function body
	File   string
}

// New wraps table for edge recording against source file.
func New(table *symtab.Table, file string) *Graph {
	return &Graph{Table: table, File: file}
}

// Call records that g.Caller (if any) invokes name at line: an
// identifier immediately followed by '('. The callee's arity is
// bumped to 0 if it was still unknown - merely being called is enough
// to know it takes at least zero arguments.
func (g *Graph) Call(name string, line int) {
	s := g.Table.AddReference(name, g.File, line)
	if s == nil {
		return
	}
	if s.Arity < 0 {
		s.Arity = 0
	}
	g.link(s)
}

// Reference records a non-call use of name at line: an identifier not
// immediately followed by '('.
func (g *Graph) Reference(name string, line int) {
	s := g.Table.AddReference(name, g.File, line)
	if s == nil {
		return
	}
	g.linkCalleeOnly(s)
}

// link appends the symmetric caller→callee edge, skipping if either
// side already has it (duplicates are suppressed, not merely harmless).
func (g *Graph) link(callee *symtab.Symbol) {
	if g.Caller == nil {
		return
	}
	if !hasSymbol(callee.Callers, g.Caller) {
		callee.Callers = append(callee.Callers, g.Caller)
	}
	if !hasSymbol(g.Caller.Callees, callee) {
		g.Caller.Callees = append(g.Caller.Callees, callee)
	}
}

// linkCalleeOnly appends only the caller's outgoing edge: a mere
// reference does not make the referenced symbol record the referencer
// as a "caller" in the call sense, but the original does add it to the
// referencing function's callee list (see reference() in
// original_source/src/parser.c).
func (g *Graph) linkCalleeOnly(callee *symtab.Symbol) {
	if g.Caller == nil {
		return
	}
	if !hasSymbol(g.Caller.Callees, callee) {
		g.Caller.Callees = append(g.Caller.Callees, callee)
	}
}

func hasSymbol(list []*symtab.Symbol, s *symtab.Symbol) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
