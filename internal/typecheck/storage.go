package typecheck

import (
	"fmt"

	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/errors"
	"github.com/FuelLabs/sway-core-go/internal/typedast"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// CheckStorageOnly implements spec §4.1 step 7 as a standalone post-pass
// over every typed declaration in a compile unit: any type id that
// IsStorageOnly flags is rejected wherever it appears outside a storage
// field's own declared type (the self-ignore flag the spec calls for —
// storageFieldTypes below is exactly that ignore-set, checked by identity
// before the recursive predicate is consulted).
func (c *Checker) CheckStorageOnly(files []*CheckedFile) {
	ignore := map[types.TypeId]bool{}
	for _, f := range files {
		if f.Storage != nil {
			for _, sf := range f.Storage.Fields {
				ignore[sf.Type] = true
			}
		}
	}

	report := func(t types.TypeId, span ast.Span) {
		if ignore[t] {
			return
		}
		if c.Types.IsStorageOnly(t) {
			c.errf(errors.STO001, errors.PhaseStorage,
				fmt.Sprintf("%s is storage-only and cannot be used outside a storage field", c.Types.String(t)), span,
				map[string]any{"type": c.Types.String(t)})
		}
	}

	for _, f := range files {
		for _, fn := range f.Funcs {
			for _, p := range fn.Params {
				report(p.Type, fn.Span())
			}
			report(fn.ReturnType, fn.Span())
			if fn.Body != nil {
				walkBlockTypes(fn.Body, report)
			}
		}
		for _, cd := range f.Consts {
			report(cd.Type, cd.Span())
			walkExprTypes(cd.Value, report)
		}
	}
}

func walkBlockTypes(b *typedast.Block, report func(types.TypeId, ast.Span)) {
	for _, s := range b.Stmts {
		walkStmtTypes(s, report)
	}
	if b.Implicit != nil {
		walkExprTypes(b.Implicit, report)
	}
}

func walkStmtTypes(s typedast.Stmt, report func(types.TypeId, ast.Span)) {
	switch v := s.(type) {
	case *typedast.LetStmt:
		report(v.Type, v.Span())
		walkExprTypes(v.Value, report)
	case *typedast.ExprStmt:
		walkExprTypes(v.Value, report)
	case *typedast.AssignStmt:
		walkExprTypes(v.Value, report)
	}
}

func walkExprTypes(e typedast.Expr, report func(types.TypeId, ast.Span)) {
	if e == nil {
		return
	}
	report(e.ReturnType(), e.Span())
	switch v := e.(type) {
	case *typedast.Call:
		for _, a := range v.Args {
			walkExprTypes(a, report)
		}
	case *typedast.FieldAccess:
		walkExprTypes(v.Struct, report)
	case *typedast.TupleIndex:
		walkExprTypes(v.Tuple, report)
	case *typedast.StructLit:
		for _, f := range v.Fields {
			walkExprTypes(f.Value, report)
		}
	case *typedast.TupleLit:
		for _, el := range v.Elems {
			walkExprTypes(el, report)
		}
	case *typedast.EnumInstantiation:
		walkExprTypes(v.Payload, report)
	case *typedast.BinOp:
		walkExprTypes(v.Left, report)
		walkExprTypes(v.Right, report)
	case *typedast.UnOp:
		walkExprTypes(v.Operand, report)
	case *typedast.If:
		walkExprTypes(v.Cond, report)
		walkBlockTypes(v.Then, report)
		if v.Else != nil {
			walkBlockTypes(v.Else, report)
		}
	case *typedast.While:
		walkExprTypes(v.Cond, report)
		walkBlockTypes(v.Body, report)
	case *typedast.Match:
		walkExprTypes(v.Scrutinee, report)
		for _, arm := range v.Arms {
			if arm.Guard != nil {
				walkExprTypes(arm.Guard, report)
			}
			walkExprTypes(arm.Body, report)
		}
	case *typedast.Return:
		if v.Value != nil {
			walkExprTypes(v.Value, report)
		}
	}
}
