// kore - KORE definition preprocessing CLI
//
// Usage:
//
//	kore convert <file> [--from F] [--to F] [-o file] [-F]  Convert a pattern between YAML and binary
//	kore arity <n>                                          Emit a headerless length fragment
//	kore tags <definition.yaml> [--runtime f] [--db f]      Print the symbol tag table
//	kore relations <definition.yaml> [--relation r]         Print the derived relations
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/kore/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}

	// Commands report their own failures; anything else is a usage error
	// from flag or argument parsing.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCommandError)
	}
	os.Exit(exitErr.Code)
}
