// Package symtab is the name-indexed symbol store the recognizer feeds
// and the call-graph edges live in.
//
// Symbols sharing a name form a singly linked bucket (Symbol.Next) so a
// type and a function can coexist under the same identifier, exactly as
// spec.md §3 requires. Lookup order within a bucket is unspecified; only
// symtab.Table filters by the kind a caller actually needs.
package symtab

// Kind distinguishes a function/variable symbol from a type-token
// symbol installed by a typedef.
type Kind int

const (
	// Function is the kind used for both function and plain-variable
	// top-level declarations - spec.md §8 scenario 3 calls this out
	// explicitly: non-function declarations are still "function-kind"
	// symbols, just with Arity == -1.
	Function Kind = iota
	TypeToken
)

// Storage is the declared storage class of a symbol.
type Storage int

const (
	AutoStorage Storage = iota
	StaticStorage
	ExternStorage
	// ExplicitExternStorage marks a declaration introduced by the
	// `extern` keyword; Table.Declare downgrades it to ExternStorage at
	// install time, which exists purely to suppress a spurious
	// "redefined" diagnostic for a forward declaration later given a
	// body.
	ExplicitExternStorage
	// TypedefStorage is used only transiently while parsing a typedef;
	// it never ends up on an installed symbol.
	TypedefStorage
)

// Ref is one reference site: a use of a symbol's name, recorded in
// source order.
type Ref struct {
	File string
	Line int
}

// Symbol is one declared or referenced name. Arity is -1 until the
// symbol is seen called or defined with a parameter list.
type Symbol struct {
	Name    string
	Kind    Kind
	Storage Storage
	Arity   int

	Decl     string
	Source   string
	DefLine  int
	Level    int
	HasDef   bool // true once a non-auto definition has installed Decl/Source
	TokenTyp bool // true for a TypeToken symbol that came from `typedef`

	Refs    []Ref
	Callers []*Symbol
	Callees []*Symbol

	// Next chains this symbol to the next symbol sharing its name, so a
	// type-kind symbol and a function-kind symbol with the same
	// spelling can coexist.
	Next *Symbol
}

// newStubFunction builds an unresolved function-kind symbol: the shape
// Table.GetSymbol installs the first time a name is merely used.
func newStubFunction(name string) *Symbol {
	return &Symbol{
		Name:    name,
		Kind:    Function,
		Arity:   -1,
		Storage: ExternStorage,
		Level:   -1,
	}
}
