package parser_test

import (
	"strings"
	"testing"

	"github.com/cflow-go/cflow/internal/callgraph"
	"github.com/cflow-go/cflow/internal/diagnostics"
	"github.com/cflow-go/cflow/internal/lexer"
	"github.com/cflow-go/cflow/internal/parser"
	"github.com/cflow-go/cflow/internal/symtab"
)

// parse runs one translation unit through a fresh table/graph pair and
// returns the table for assertions, mirroring spec.md §8's end-to-end
// scenarios.
func parse(t *testing.T, src string, opts parser.Options) (*symtab.Table, *strings.Builder) {
	t.Helper()
	table := symtab.NewTable()
	graph := callgraph.New(table, "a.c")
	var diagOut strings.Builder
	diag := diagnostics.NewSink(&diagOut, "a.c")

	lx := lexer.New(src, table, nil)
	rec := parser.New(lx, table, graph, diag, "a.c", opts)
	rec.ParseUnit()
	return table, &diagOut
}

func hasSymbol(list []*symtab.Symbol, name string) bool {
	for _, s := range list {
		if s.Name == name {
			return true
		}
	}
	return false
}

// Scenario 1.
func TestScenarioSimpleCall(t *testing.T) {
	table, _ := parse(t, "int f(int x) { return g(x); }", parser.Options{})

	f := table.Lookup("f")
	if f == nil || f.Arity != 1 || f.Storage != symtab.ExternStorage || f.DefLine != 1 {
		t.Fatalf("f = %+v, want arity 1, extern storage, def_line 1", f)
	}
	g := table.Lookup("g")
	if g == nil || g.Arity != 0 {
		t.Fatalf("g = %+v, want arity 0", g)
	}
	if g.HasDef {
		t.Fatalf("g.HasDef = true, want false (only referenced, never defined)")
	}
	if len(g.Refs) != 1 || g.Refs[0].Line != 1 {
		t.Fatalf("g.Refs = %+v, want one ref at line 1", g.Refs)
	}
	if !hasSymbol(f.Callees, "g") {
		t.Fatalf("f.Callees = %v, want [g]", f.Callees)
	}
	if !hasSymbol(g.Callers, "f") {
		t.Fatalf("g.Callers = %v, want [f]", g.Callers)
	}
	if table.Lookup("x") != nil {
		t.Fatal("parameter x should not survive as a persistent symbol")
	}
	if table.Lookup("return") != nil {
		t.Fatal("the return keyword should never become a symbol")
	}
}

// Scenario 2.
func TestScenarioTypedefStruct(t *testing.T) {
	table, _ := parse(t, "typedef struct S { int n; } T; T make(void);", parser.Options{})

	if !table.IsTypeName("T") {
		t.Fatal("T should be installed as a type name")
	}
	// `(void)` counts as one parameter-declarator, the same policy
	// TestVoidParenArityOne pins down.
	make_ := table.Lookup("make")
	if make_ == nil || make_.Arity != 1 {
		t.Fatalf("make = %+v, want arity 1", make_)
	}
	if !strings.Contains(make_.Decl, "make") || !strings.Contains(make_.Decl, "void") {
		t.Fatalf("decl-string %q should mention make and void", make_.Decl)
	}
}

// Scenario 3.
func TestScenarioMultiDeclarator(t *testing.T) {
	table, _ := parse(t, "int a, b = 3, c;", parser.Options{})

	for _, name := range []string{"a", "b", "c"} {
		s := table.Lookup(name)
		if s == nil {
			t.Fatalf("%s not declared", name)
		}
		if s.Arity != -1 {
			t.Fatalf("%s.Arity = %d, want -1 (non-function)", name, s.Arity)
		}
		if !strings.HasPrefix(s.Decl, "int") {
			t.Fatalf("%s.Decl = %q, want prefix \"int\"", name, s.Decl)
		}
	}
}

// Scenario 4.
func TestScenarioStaticHelper(t *testing.T) {
	src := "static int helper(int x) { return x+1; } int main(void) { return helper(0); }"
	table, _ := parse(t, src, parser.Options{})

	helper := table.Lookup("helper")
	main := table.Lookup("main")
	if helper == nil || helper.Storage != symtab.StaticStorage {
		t.Fatalf("helper = %+v, want static storage", helper)
	}
	if !hasSymbol(main.Callees, "helper") {
		t.Fatalf("main.Callees = %v, want [helper]", main.Callees)
	}
	if !hasSymbol(helper.Callers, "main") {
		t.Fatalf("helper.Callers = %v, want [main]", helper.Callers)
	}
}

// Scenario 5.
func TestScenarioAutoLocalsNotInGraph(t *testing.T) {
	table, _ := parse(t, "void f(void) { int a; a = 1; g(a); }", parser.Options{})

	if table.Lookup("a") != nil {
		t.Fatal("local auto symbol a should be removed once its scope closes")
	}
	g := table.Lookup("g")
	if g == nil {
		t.Fatal("g should be referenced")
	}
	f := table.Lookup("f")
	if !hasSymbol(f.Callees, "g") {
		t.Fatalf("f.Callees = %v, want [g]", f.Callees)
	}
	if !hasSymbol(g.Callers, "f") {
		t.Fatalf("g.Callers = %v, want [f]", g.Callers)
	}
}

// Scenario 6.
func TestScenarioKnrDefinition(t *testing.T) {
	table, _ := parse(t, "int f(a, b) int a; int b; { return a+b; }", parser.Options{})

	f := table.Lookup("f")
	if f == nil || f.Arity != 2 {
		t.Fatalf("f = %+v, want arity 2", f)
	}
	if table.Lookup("a") != nil || table.Lookup("b") != nil {
		t.Fatal("K&R parameters a and b should not survive as persistent symbols after the body closes")
	}
}

func TestRedefinitionInvokesOnRedefine(t *testing.T) {
	table := symtab.NewTable()
	graph := callgraph.New(table, "a.c")
	var diagOut strings.Builder
	diag := diagnostics.NewSink(&diagOut, "a.c")

	var redefinedName string
	table.OnRedefine = func(sym *symtab.Symbol, file string, line int) {
		redefinedName = sym.Name
	}

	src := "int f(void) { return 0; }\nint f(void) { return 1; }\n"
	lx := lexer.New(src, table, nil)
	rec := parser.New(lx, table, graph, diag, "a.c", parser.Options{})
	rec.ParseUnit()

	if redefinedName != "f" {
		t.Fatalf("OnRedefine fired for %q, want \"f\"", redefinedName)
	}
}

func TestMultipleFilesShareOneTable(t *testing.T) {
	table := symtab.NewTable()

	graphA := callgraph.New(table, "a.c")
	var diagOut strings.Builder
	diagA := diagnostics.NewSink(&diagOut, "a.c")
	lxA := lexer.New("int shared(void) { return 0; }", table, nil)
	parser.New(lxA, table, graphA, diagA, "a.c", parser.Options{}).ParseUnit()

	graphB := callgraph.New(table, "b.c")
	diagB := diagnostics.NewSink(&diagOut, "b.c")
	lxB := lexer.New("int user(void) { return shared(); }", table, nil)
	parser.New(lxB, table, graphB, diagB, "b.c", parser.Options{}).ParseUnit()

	shared := table.Lookup("shared")
	user := table.Lookup("user")
	if !hasSymbol(shared.Callers, "user") {
		t.Fatalf("shared.Callers = %v, want [user]: cross-file call not linked", shared.Callers)
	}
	if !hasSymbol(user.Callees, "shared") {
		t.Fatalf("user.Callees = %v, want [shared]", user.Callees)
	}
}

func TestEmptyParenArityZero(t *testing.T) {
	table, _ := parse(t, "int f() { return 0; }", parser.Options{})
	f := table.Lookup("f")
	if f.Arity != 0 {
		t.Fatalf("f.Arity = %d, want 0 for an empty parameter list", f.Arity)
	}
}

func TestVoidParenArityOne(t *testing.T) {
	table, _ := parse(t, "int f(void) { return 0; }", parser.Options{})
	f := table.Lookup("f")
	if f.Arity != 1 {
		t.Fatalf("f.Arity = %d, want 1: void counts as one parameter-declarator (spec.md's stated policy)", f.Arity)
	}
}

func TestPrototypeThenDefinitionDoesNotDoubleCount(t *testing.T) {
	src := "int f(int x);\nint f(int x) { return x; }\n"
	table, _ := parse(t, src, parser.Options{})
	f := table.Lookup("f")
	if f.Arity != 1 || !f.HasDef {
		t.Fatalf("f = %+v, want arity 1 and HasDef true after the defining declaration", f)
	}
}

func TestMalformedInputDoesNotPanic(t *testing.T) {
	inputs := []string{
		"int f(",
		"struct {",
		"typedef",
		"int a = ",
		"void f(void) { if (",
		"int )))",
	}
	for _, src := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("input %q panicked: %v", src, r)
				}
			}()
			parse(t, src, parser.Options{Verbose: true})
		}()
	}
}

func TestVerboseWarnsOnEOFInsideBody(t *testing.T) {
	_, diagOut := parse(t, "void f(void) {", parser.Options{Verbose: true})
	if !strings.Contains(diagOut.String(), "unexpected eof in function body") {
		t.Fatalf("diagnostics = %q, want an eof-in-body warning", diagOut.String())
	}
}

func TestIndentationForcedCloseCollapsesAllLevels(t *testing.T) {
	src := "void f(void) {\n    int a;\n    if (x) {\n        int b;\n}\n"
	table, diagOut := parse(t, src, parser.Options{Verbose: true, UseIndentation: true})

	if !strings.Contains(diagOut.String(), "forced function body close") {
		t.Fatalf("diagnostics = %q, want a forced-close warning", diagOut.String())
	}
	if table.Lookup("a") != nil || table.Lookup("b") != nil {
		t.Fatal("auto symbols at every open level should be removed by the forced close")
	}
}

func TestPrototypeParametersDoNotLeak(t *testing.T) {
	table, _ := parse(t, "int f(int x);", parser.Options{})
	if table.Lookup("x") != nil {
		t.Fatal("prototype parameter x should be reclaimed at the terminating semicolon")
	}
	f := table.Lookup("f")
	if f == nil || f.Arity != 1 {
		t.Fatalf("f = %+v, want arity 1 from the prototype", f)
	}
}

func TestKnrCommaGroupedParameterTypes(t *testing.T) {
	table, _ := parse(t, "int f(a, b) int a, b; { return a+b; }", parser.Options{})
	f := table.Lookup("f")
	if f == nil || f.Arity != 2 {
		t.Fatalf("f = %+v, want arity 2", f)
	}
	if table.Lookup("a") != nil || table.Lookup("b") != nil {
		t.Fatal("K&R parameters should not outlive the body")
	}
}

func TestStrictANSISkipsKnrRecovery(t *testing.T) {
	table, _ := parse(t, "int f(a, b) int a; int b; { return a+b; }", parser.Options{StrictANSI: true})
	f := table.Lookup("f")
	if f == nil || f.Arity != 2 {
		t.Fatalf("f = %+v, want arity 2 from the identifier list itself", f)
	}
}

func TestDebugTraceWritesDefinitions(t *testing.T) {
	var debugOut strings.Builder
	table, _ := parse(t, "int f(void) { return 0; }", parser.Options{
		Debug:       true,
		DebugWriter: &debugOut,
	})
	_ = table
	if !strings.Contains(debugOut.String(), "f/1 defined") {
		t.Fatalf("debug trace = %q, want mention of f/1 defined", debugOut.String())
	}
}
