// Command cflow analyzes C source files and prints the functions they
// define along with who calls whom.
package main

import (
	"fmt"
	"os"

	"github.com/cflow-go/cflow/cmd/cflow/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cflow: %v\n", err)
		os.Exit(1)
	}
}
