package typecheck

import (
	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/errors"
	"github.com/FuelLabs/sway-core-go/internal/namespace"
	"github.com/FuelLabs/sway-core-go/internal/typedast"
)

// CheckProgram runs S1 end to end over one compile unit (spec §5): every
// file is walked into its module-path submodule of root (creating
// submodules write-once as needed), then the whole-program passes —
// program-kind validation (step 6) and the storage-only check (step 7) —
// run once over the combined result.
func CheckProgram(c *Checker, root *namespace.Module, files []*ast.File) errors.Result[[]*CheckedFile] {
	var checked []*CheckedFile
	var kind ast.Kind
	var unitSpan ast.Span

	if len(files) > 0 {
		root.IsContract = files[0].Kind == ast.KindContract
	}

	for i, f := range files {
		mod := moduleForPath(root, f.ModulePath)
		if i == 0 {
			kind = f.Kind
			unitSpan = f.Span()
		}
		checked = append(checked, c.CheckFile(f, mod))
	}

	var fns []*typedast.FuncDecl
	for _, f := range checked {
		fns = append(fns, f.Funcs...)
	}
	c.checkProgramKind(kind, fns, unitSpan)
	c.CheckStorageOnly(checked)

	return c.Result()
}

// moduleForPath walks (creating as needed) the submodule chain named by
// path under root, implementing the write-once submodule insertion spec
// §3.2 calls for, tolerating a path already inserted by an earlier file in
// the same unit.
func moduleForPath(root *namespace.Module, path []string) *namespace.Module {
	cur := root
	for _, seg := range path {
		if next, ok := cur.Submodules[seg]; ok {
			cur = next
			continue
		}
		next, err := cur.InsertSubmodule(seg, ast.Public)
		if err != nil {
			// Write-once races only happen with malformed input; fall back
			// to the existing submodule rather than losing the file.
			next = cur.Submodules[seg]
		}
		cur = next
	}
	return cur
}
