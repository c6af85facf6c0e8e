package symtab

// Table is the name → symbol-bucket store for one analysis run. It is
// not safe for concurrent use; spec.md §5 describes the core as
// single-threaded with exactly one active table.
type Table struct {
	buckets map[string]*Symbol

	// OnRedefine, if set, is called when a non-auto symbol already has a
	// definition (HasDef) and a second definition overwrites it. It
	// fires before the overwrite, so sym still carries the previous
	// definition's source, line, and arity; file/line locate the new
	// one. This is the hook internal/diagnostics wires the
	// "%s/%d redefined" / "this is the place of previous definition"
	// pair through.
	OnRedefine func(sym *Symbol, file string, line int)
}

// NewTable returns an empty symbol table.
func NewTable() *Table {
	return &Table{buckets: make(map[string]*Symbol)}
}

// Lookup returns the first symbol in name's bucket, or nil. Callers that
// need a specific Kind walk Symbol.Next themselves (see GetSymbol and
// IsTypeName for the two flavors the core actually needs).
func (t *Table) Lookup(name string) *Symbol {
	return t.buckets[name]
}

// Install creates a new symbol chained at the head of name's bucket.
// There is no ordering guarantee among symbols sharing a name.
func (t *Table) Install(name string) *Symbol {
	s := &Symbol{Name: name, Level: -1, Arity: -1}
	s.Next = t.buckets[name]
	t.buckets[name] = s
	return s
}

// GetSymbol returns the first function-kind symbol in name's chain,
// installing a fresh unresolved stub if none exists yet.
func (t *Table) GetSymbol(name string) *Symbol {
	for s := t.buckets[name]; s != nil; s = s.Next {
		if s.Kind == Function {
			return s
		}
	}
	s := newStubFunction(name)
	s.Next = t.buckets[name]
	t.buckets[name] = s
	return s
}

// IsTypeName reports whether name currently resolves to an installed
// type-token symbol. The lexer consults this through the TypeOracle
// interface so that a word seen after `typedef` is tokenized as a type
// name from then on, as spec.md §6 describes.
func (t *Table) IsTypeName(name string) bool {
	for s := t.buckets[name]; s != nil; s = s.Next {
		if s.Kind == TypeToken {
			return true
		}
	}
	return false
}

// DeclareAuto installs a fresh auto-storage stub for a local variable,
// discarding any accumulated declaration text the caller built for it
// (auto symbols never need a decl-string; spec.md §4.4 "auto
// definition").
func (t *Table) DeclareAuto(name string, line, level int) *Symbol {
	s := t.Install(name)
	s.Kind = Function
	s.Storage = AutoStorage
	s.Level = level
	s.Arity = -1
	s.DefLine = line
	return s
}

// Declare installs or updates a non-auto function/variable definition.
// If a prior definition already exists (HasDef), OnRedefine fires before
// the symbol is overwritten - redefinition is a diagnostic, never fatal.
func (t *Table) Declare(name string, line, level, parmcnt int, storage Storage, decl, source string) *Symbol {
	s := t.GetSymbol(name)
	if s.HasDef && t.OnRedefine != nil {
		t.OnRedefine(s, source, line)
	}

	s.Kind = Function
	s.Arity = parmcnt
	if storage == ExplicitExternStorage {
		storage = ExternStorage
	}
	s.Storage = storage
	s.Decl = decl
	s.Source = source
	s.DefLine = line
	s.Level = level
	s.HasDef = true
	return s
}

// DeclareForward records a function prototype: arity, declaration text,
// and source location are filled in for a symbol that has none yet, but
// the symbol is not marked defined - a later real definition overwrites
// silently, and a prototype seen after a definition changes nothing.
func (t *Table) DeclareForward(name string, line, level, parmcnt int, storage Storage, decl, source string) *Symbol {
	s := t.GetSymbol(name)
	if s.HasDef {
		return s
	}
	s.Kind = Function
	s.Arity = parmcnt
	if storage == ExplicitExternStorage {
		storage = ExternStorage
	}
	s.Storage = storage
	s.Decl = decl
	s.Source = source
	s.DefLine = line
	s.Level = level
	return s
}

// DeclareType installs or reuses the type-kind symbol for name - a
// typedef installs at most one TypeToken symbol per name, reusing it on
// repeated typedefs of the same tag rather than chaining duplicates.
func (t *Table) DeclareType(name, source string, srcLine int) *Symbol {
	var s *Symbol
	for cur := t.buckets[name]; cur != nil; cur = cur.Next {
		if cur.Kind == TypeToken {
			s = cur
			break
		}
	}
	if s == nil {
		s = t.Install(name)
	}
	s.Kind = TypeToken
	s.TokenTyp = true
	s.Source = source
	s.DefLine = srcLine
	s.Refs = nil
	return s
}

// AddReference records a use of name at (file, line) and returns the
// resolved symbol, or nil if the symbol is auto-storage - auto symbols
// are scope-local and excluded from the persistent call graph per
// spec.md §4.4 step 1 and the invariant in §8.
func (t *Table) AddReference(name, file string, line int) *Symbol {
	s := t.GetSymbol(name)
	if s.Storage == AutoStorage {
		return nil
	}
	s.Refs = append(s.Refs, Ref{File: file, Line: line})
	return s
}

// DeleteAutos removes every auto-storage symbol at exactly the given
// scope level. Buckets are small (bounded by local scope), so a linear
// scan per bucket is sufficient.
func (t *Table) DeleteAutos(level int) {
	for name, head := range t.buckets {
		var kept *Symbol
		var tail *Symbol
		for s := head; s != nil; {
			next := s.Next
			if s.Storage == AutoStorage && s.Level == level {
				s = next
				continue
			}
			s.Next = nil
			if kept == nil {
				kept = s
				tail = s
			} else {
				tail.Next = s
				tail = s
			}
			s = next
		}
		if kept == nil {
			delete(t.buckets, name)
		} else {
			t.buckets[name] = kept
		}
	}
}

// Symbols returns every symbol in the table, in unspecified order -
// used by internal/format to render the whole graph after parsing
// completes.
func (t *Table) Symbols() []*Symbol {
	var out []*Symbol
	for _, head := range t.buckets {
		for s := head; s != nil; s = s.Next {
			out = append(out, s)
		}
	}
	return out
}
