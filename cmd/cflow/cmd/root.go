package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "cflow",
	Short: "Generate a C function call graph",
	Long: `cflow reads C source files and analyzes the call relationships
among the functions they define, in the spirit of GNU cflow.

It never preprocesses or compiles the input: declarations and
expressions are recognized by a tolerant, speculative scanner that
degrades gracefully on anything it doesn't understand, rather than
rejecting the file outright.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}
