// Package format renders a finished call graph in the output shapes
// spec.md §5 calls for: an indented caller-rooted tree (GNU cflow's
// default), a flat GNU-style listing, and JSON for downstream tooling.
package format

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/cflow-go/cflow/internal/symtab"
)

// Options controls rendering independent of which Writer function is
// used.
type Options struct {
	// Reverse roots the tree/flat output at callees instead of callers
	// (cflow's `-r`/`--reverse`).
	Reverse bool
	// MaxDepth bounds how deep Tree expands: a node at depth MaxDepth is
	// printed but its children are not; 0 means unbounded.
	MaxDepth int
}

// roots returns every symbol that is never called (in forward mode) or
// never calls anything (in reverse mode) - cflow's definition of a
// graph root, sorted in natural order for deterministic output despite
// symtab.Table.Symbols' unspecified order.
func roots(table *symtab.Table, opts Options) []*symtab.Symbol {
	var out []*symtab.Symbol
	for _, s := range table.Symbols() {
		if s.Kind != symtab.Function {
			continue
		}
		if opts.Reverse {
			if len(s.Callees) == 0 {
				out = append(out, s)
			}
		} else if len(s.Callers) == 0 {
			out = append(out, s)
		}
	}
	sortSymbols(out)
	return out
}

func sortSymbols(syms []*symtab.Symbol) {
	sort.Slice(syms, func(i, j int) bool {
		return natural.Less(syms[i].Name, syms[j].Name)
	})
}

func children(s *symtab.Symbol, opts Options) []*symtab.Symbol {
	if opts.Reverse {
		return s.Callers
	}
	return s.Callees
}

// Tree writes the indented caller-rooted call tree cflow defaults to:
// each root starts a line at depth 0, and every symbol it calls (or, in
// reverse mode, every caller) is printed indented beneath it. A symbol
// already printed as an ancestor on the current path is marked
// "(recursive)" instead of being expanded again, since the graph
// can have cycles.
func Tree(w io.Writer, table *symtab.Table, opts Options) {
	for _, root := range roots(table, opts) {
		writeTreeNode(w, root, 0, opts, map[*symtab.Symbol]bool{})
	}
}

func writeTreeNode(w io.Writer, s *symtab.Symbol, depth int, opts Options, onPath map[*symtab.Symbol]bool) {
	fmt.Fprintf(w, "%s%s\n", strings.Repeat("    ", depth), label(s))
	if onPath[s] {
		return
	}
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return
	}
	onPath[s] = true
	defer delete(onPath, s)

	kids := append([]*symtab.Symbol(nil), children(s, opts)...)
	sortSymbols(kids)
	for _, c := range kids {
		if onPath[c] {
			fmt.Fprintf(w, "%s%s (recursive)\n", strings.Repeat("    ", depth+1), label(c))
			continue
		}
		writeTreeNode(w, c, depth+1, opts, onPath)
	}
}

func label(s *symtab.Symbol) string {
	if s.Arity < 0 {
		return s.Name
	}
	return fmt.Sprintf("%s()", s.Name)
}

// Flat writes the GNU-style listing: one line per symbol giving its
// defining source location, followed by one indented "calls NAME()"
// line per callee (or "called by NAME()" per caller in reverse mode),
// matching the degenerate non-tree output cflow's
// `-ix` style formatting produces.
func Flat(w io.Writer, table *symtab.Table, opts Options) {
	syms := append([]*symtab.Symbol(nil), table.Symbols()...)
	var filtered []*symtab.Symbol
	for _, s := range syms {
		if s.Kind == symtab.Function {
			filtered = append(filtered, s)
		}
	}
	sortSymbols(filtered)

	for _, s := range filtered {
		fmt.Fprintf(w, "%s() <%s at %s:%d>:\n", s.Name, storageLabel(s), s.Source, s.DefLine)
		neighbors := children(s, opts)
		sorted := append([]*symtab.Symbol(nil), neighbors...)
		sortSymbols(sorted)
		for _, n := range sorted {
			verb := "calls"
			if opts.Reverse {
				verb = "called by"
			}
			fmt.Fprintf(w, "    %s %s()\n", verb, n.Name)
		}
	}
}

func storageLabel(s *symtab.Symbol) string {
	switch s.Storage {
	case symtab.StaticStorage:
		return "static"
	case symtab.AutoStorage:
		return "auto"
	default:
		return "extern"
	}
}

// JSON renders the table as a JSON array of symbol records, built
// incrementally with sjson (rather than encoding/json's struct
// marshaling) and pretty-printed with tidwall/pretty so the output
// matches the repo's JSON-formatting stack elsewhere.
func JSON(table *symtab.Table, opts Options) (string, error) {
	syms := append([]*symtab.Symbol(nil), table.Symbols()...)
	var filtered []*symtab.Symbol
	for _, s := range syms {
		if s.Kind == symtab.Function {
			filtered = append(filtered, s)
		}
	}
	sortSymbols(filtered)

	doc := "[]"
	var err error
	for i, s := range filtered {
		path := fmt.Sprintf("%d", i)
		doc, err = sjson.Set(doc, path+".name", s.Name)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, path+".arity", s.Arity)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, path+".storage", storageLabel(s))
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, path+".source", s.Source)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, path+".line", s.DefLine)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, path+".decl", s.Decl)
		if err != nil {
			return "", err
		}

		neighbors := children(s, opts)
		names := make([]string, len(neighbors))
		for j, n := range neighbors {
			names[j] = n.Name
		}
		sort.Sort(sort.StringSlice(names))
		key := "callees"
		if opts.Reverse {
			key = "callers"
		}
		doc, err = sjson.Set(doc, path+"."+key, names)
		if err != nil {
			return "", err
		}
	}

	return string(pretty.Pretty([]byte(doc))), nil
}
