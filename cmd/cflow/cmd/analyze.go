package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cflow-go/cflow/internal/callgraph"
	"github.com/cflow-go/cflow/internal/config"
	"github.com/cflow-go/cflow/internal/diagnostics"
	"github.com/cflow-go/cflow/internal/format"
	"github.com/cflow-go/cflow/internal/lexer"
	"github.com/cflow-go/cflow/internal/parser"
	"github.com/cflow-go/cflow/internal/srcfile"
	"github.com/cflow-go/cflow/internal/symtab"
)

var (
	outputFormat   string
	reverseGraph   bool
	strictANSI     bool
	useIndentation bool
	verbose        bool
	debugTrace     bool
	configPath     string
	rootDir        string
)

func init() {
	rootCmd.RunE = runAnalyze
	rootCmd.Args = cobra.MinimumNArgs(1)

	flags := rootCmd.Flags()
	flags.StringVarP(&outputFormat, "format", "f", "tree", "output format: tree, gnu (flat), or json")
	flags.BoolVarP(&reverseGraph, "reverse", "r", false, "root the graph at callees instead of callers")
	flags.BoolVar(&strictANSI, "strict-ansi", false, "disable K&R parameter-list recovery")
	flags.BoolVarP(&useIndentation, "use-indentation", "i", false, "guess block boundaries from indentation when braces are inconsistent")
	flags.BoolVarP(&verbose, "verbose", "v", false, "report recoverable parse diagnostics")
	flags.BoolVar(&debugTrace, "debug", false, "trace every symbol definition as it's recognized")
	flags.StringVarP(&configPath, "config", "c", "", "YAML file overriding the default keyword tables")
	flags.StringVar(&rootDir, "root", ".", "directory glob patterns are resolved against")
}

// runAnalyze is cflow's single entry point: each positional argument is
// a doublestar glob pattern (plain filenames match trivially), every
// matched file is parsed into one shared symbol table and call graph,
// and the result is rendered in the requested format.
func runAnalyze(cmd *cobra.Command, args []string) error {
	files, err := srcfile.Discover(rootDir, args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no input files matched")
	}

	kw := config.Default()
	if configPath != "" {
		kw, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	table := symtab.NewTable()
	table.OnRedefine = func(sym *symtab.Symbol, file string, line int) {
		diagnostics.NewSink(os.Stderr, file).
			Emit(line, diagnostics.MsgRedefined, sym.Name, sym.Arity)
		diagnostics.NewSink(os.Stderr, sym.Source).
			Emit(sym.DefLine, diagnostics.MsgPreviousDefinition)
	}

	opts := parser.Options{
		Verbose:        verbose,
		StrictANSI:     strictANSI,
		UseIndentation: useIndentation,
		Debug:          debugTrace,
		DebugWriter:    os.Stdout,
	}

	for _, path := range files {
		src, err := srcfile.ReadSource(filepath.Join(rootDir, path))
		if err != nil {
			return err
		}
		lx := lexer.New(src, table, kw)
		graph := callgraph.New(table, path)
		diag := diagnostics.NewSink(os.Stderr, path)
		rec := parser.New(lx, table, graph, diag, path, opts)
		rec.ParseUnit()
	}

	fmtOpts := format.Options{Reverse: reverseGraph}
	switch outputFormat {
	case "tree":
		format.Tree(os.Stdout, table, fmtOpts)
	case "flat", "gnu":
		format.Flat(os.Stdout, table, fmtOpts)
	case "json":
		out, err := format.JSON(table, fmtOpts)
		if err != nil {
			return err
		}
		fmt.Println(out)
	default:
		return fmt.Errorf("unknown --format %q: want tree, gnu, or json", outputFormat)
	}
	return nil
}
