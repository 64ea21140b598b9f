// Command nyxc is a thin CLI wrapper around internal/compiler: it
// reads a source file, compiles it, and prints either the lowered
// IR program's debug dump or a formatted diagnostic.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/nyxlang/nyxc/internal/compiler"
	"github.com/nyxlang/nyxc/internal/config"
	"github.com/nyxlang/nyxc/internal/diagnostics"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "this is a bug in nyxc; please report it")
			os.Exit(2)
		}
	}()

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <source file> [settings.yaml]\n", os.Args[0])
		os.Exit(1)
	}
	sourcePath := os.Args[1]
	settingsPath := ""
	if len(os.Args) >= 3 {
		settingsPath = os.Args[2]
	}

	colorize := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	src, err := os.ReadFile(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %s\n", sourcePath, err)
		os.Exit(1)
	}

	result, err := compiler.Compile(string(src), 0, settings)
	if err != nil {
		printDiagnostic(os.Stderr, sourcePath, err, colorize)
		os.Exit(1)
	}

	fmt.Printf("; build %s\n", result.BuildID)
	fmt.Print(result.Program.String())
}

// printDiagnostic renders a compilation error, colorizing the leading
// error kind when stderr is an interactive terminal.
func printDiagnostic(w *os.File, sourcePath string, err error, colorize bool) {
	derr, ok := err.(*diagnostics.Error)
	if !ok {
		fmt.Fprintf(w, "%s: %s\n", sourcePath, err)
		return
	}
	kind := string(derr.Kind)
	if colorize {
		kind = "\x1b[31m" + kind + "\x1b[0m"
	}
	fmt.Fprintf(w, "%s:%s: %s: %s\n", sourcePath, derr.Span, kind, derr.Message)
}
