// Package compiler wires the front-end passes into a single entry
// point, mirroring the teacher's pipeline/processor idiom of threading
// one shared context through an ordered sequence of stages.
package compiler

import (
	"github.com/google/uuid"

	"github.com/nyxlang/nyxc/internal/config"
	"github.com/nyxlang/nyxc/internal/ir"
	"github.com/nyxlang/nyxc/internal/items"
	"github.com/nyxlang/nyxc/internal/lower"
	"github.com/nyxlang/nyxc/internal/parser"
	"github.com/nyxlang/nyxc/internal/types"
)

// Result is everything a successful compilation produces: the lowered
// program plus the build id that correlates it across logs when many
// compilations run concurrently (a test harness, a build farm).
type Result struct {
	BuildID uuid.UUID
	Program *ir.Program
}

// Compile runs the full pipeline over a single source file's contents:
// lex+parse, resolve items/scopes, type-check and solve each function
// body, and lower to IR. It stops at the first error, per the
// pipeline's first-error-wins policy.
func Compile(source string, fileID int, settings config.Settings) (*Result, error) {
	buildID := uuid.New()

	mod, err := parser.ParseModuleWithDepth(fileID, source, settings.MaxRecursionDepth)
	if err != nil {
		return nil, err
	}

	store, err := items.NewStore(mod)
	if err != nil {
		return nil, err
	}

	srcTypes := types.NewStore()

	prog, err := lower.Lower(mod, store, srcTypes, settings)
	if err != nil {
		return nil, err
	}

	for _, fn := range prog.Functions() {
		if err := prog.Verify(fn); err != nil {
			return nil, err
		}
	}

	return &Result{BuildID: buildID, Program: prog}, nil
}

// CompileDefault runs Compile with the package's default Settings, the
// common case for one-off invocations like the CLI.
func CompileDefault(source string, fileID int) (*Result, error) {
	return Compile(source, fileID, config.DefaultSettings())
}
