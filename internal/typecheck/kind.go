package typecheck

import (
	"fmt"

	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/errors"
	"github.com/FuelLabs/sway-core-go/internal/typedast"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// checkProgramKind implements spec §4.1 step 6, run once per compile unit
// after every file's top-level declarations have been checked (root's
// funcs hold every unit-level function regardless of which submodule it
// was declared in, since main is only meaningful at the unit root).
func (c *Checker) checkProgramKind(kind ast.Kind, funcs []*typedast.FuncDecl, span ast.Span) {
	var mains []*typedast.FuncDecl
	for _, fn := range funcs {
		if fn.Name == "main" {
			mains = append(mains, fn)
		}
	}

	switch kind {
	case ast.KindScript:
		if len(mains) != 1 {
			c.errf(errors.TYP007, errors.PhaseTypecheck, "a script must have exactly one main function", span, map[string]any{"found": len(mains)})
		}
		if len(mains) > 1 {
			c.errf(errors.TYP005, errors.PhaseTypecheck, "a script must not declare more than one main function", span, nil)
		}
	case ast.KindPredicate:
		if len(mains) != 1 {
			c.errf(errors.TYP007, errors.PhaseTypecheck, "a predicate must have exactly one main function", span, nil)
			return
		}
		if mains[0].ReturnType != types.Bool {
			c.errf(errors.TYP006, errors.PhaseTypecheck,
				fmt.Sprintf("predicate main must return bool, found %s", c.Types.String(mains[0].ReturnType)), span, nil)
		}
	case ast.KindContract:
		// Public functions are the ABI surface; this pass only needs to
		// confirm there is no spurious main (contracts dispatch by
		// selector, not an entry point).
		if len(mains) > 0 {
			c.errf(errors.TYP005, errors.PhaseTypecheck, "a contract must not declare a main function", span, nil)
		}
	case ast.KindLibrary:
		if len(mains) > 0 {
			c.errf(errors.TYP005, errors.PhaseTypecheck, "a library must not declare a main function", span, nil)
		}
	}
}

// ABIEntries returns the public functions of a contract unit, each assigned
// the 4-byte selector internal/irbuild derives from its signature (spec
// §4.3: "each public function gets an ABI selector").
func ABIEntries(funcs []*typedast.FuncDecl) []*typedast.FuncDecl {
	var entries []*typedast.FuncDecl
	for _, fn := range funcs {
		if fn.Visibility == ast.Public {
			entries = append(entries, fn)
		}
	}
	return entries
}
