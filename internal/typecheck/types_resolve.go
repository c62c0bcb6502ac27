package typecheck

import (
	"fmt"

	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/errors"
	"github.com/FuelLabs/sway-core-go/internal/namespace"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

var primitiveNames = map[string]types.TypeId{
	"unit": types.Unit,
	"bool": types.Bool,
	"byte": types.Byte,
	"b256": types.B256,
	"u8":   types.U8,
	"u16":  types.U16,
	"u32":  types.U32,
	"u64":  types.U64,
}

// resolveType resolves a parse-tree type expression to an interned TypeId,
// consulting c's own declared generics (for bare type-parameter names) and
// then mod's symbol table (for named structs/enums; any other declaration
// kind is reported as TYP004),
// per spec §4.1 step 2's call-path resolution. A lookup failure records
// RES001 and returns the error-recovery sentinel so the caller can keep
// checking (spec §4.1 failure semantics).
func (c *Checker) resolveType(t ast.TypeExpr, mod *namespace.Module, generics map[string][]string) types.TypeId {
	switch v := t.(type) {
	case nil:
		return types.Unit
	case *ast.NamedTypeExpr:
		return c.resolveNamedType(v, mod, generics)
	case *ast.TupleTypeExpr:
		elems := make([]types.TypeId, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = c.resolveType(e, mod, generics)
		}
		return c.Types.Tuple(elems...)
	case *ast.ArrayTypeExpr:
		elem := c.resolveType(v.Elem, mod, generics)
		return c.Types.Array(elem, v.Len)
	case *ast.PtrTypeExpr:
		elem := c.resolveType(v.Elem, mod, generics)
		return c.Types.Pointer(elem)
	default:
		c.errf(errors.INT001, errors.PhaseInternal, fmt.Sprintf("unexpected type expression %T", t), t.Span(), nil)
		return types.ErrorRecovery
	}
}

func (c *Checker) resolveNamedType(v *ast.NamedTypeExpr, mod *namespace.Module, generics map[string][]string) types.TypeId {
	if len(v.Path) == 1 {
		name := v.Path[0]
		if name == "str" {
			n := 0
			if len(v.TypeArgs) == 0 {
				n = 0 // unsized str annotation resolves to a zero-length str
			}
			return c.Types.Str(n)
		}
		if id, ok := primitiveNames[name]; ok {
			return id
		}
		if constraints, ok := generics[name]; ok {
			return c.Types.GenericParam(name, constraints...)
		}
	}

	target, name, err := resolveCallPath(mod, v.Path)
	if err != nil {
		c.errf(errors.RES001, errors.PhaseResolve, err.Error(), v.Span(), map[string]any{"path": v.Path})
		return types.ErrorRecovery
	}
	ref, ok := target.Lookup(name)
	if !ok {
		c.errf(errors.RES001, errors.PhaseResolve, fmt.Sprintf("unknown type %q", name), v.Span(), map[string]any{"name": name})
		return types.ErrorRecovery
	}

	typeArgs := make([]types.TypeId, len(v.TypeArgs))
	for i, a := range v.TypeArgs {
		typeArgs[i] = c.resolveType(a, mod, generics)
	}

	switch ref.Kind {
	case namespace.DeclStruct:
		sd := c.Decls.GetStruct(ref.Struct)
		return c.Types.Struct(ref.Struct, sd.Name, typeArgs...)
	case namespace.DeclEnum:
		ed := c.Decls.GetEnum(ref.Enum)
		return c.Types.Enum(ref.Enum, ed.Name, typeArgs...)
	default:
		c.errf(errors.TYP004, errors.PhaseTypecheck, fmt.Sprintf("%q is not a type", name), v.Span(), nil)
		return types.ErrorRecovery
	}
}

// resolveCallPath walks path's leading segments as submodule names from mod
// (spec §4.1 step 2: "a::b::c is resolved by locating submodule a::b ...
// then looking up c in that module"). mod's use-table is not consulted for
// resolution: every leading segment must name a direct submodule of the
// module before it, or resolution fails.
func resolveCallPath(mod *namespace.Module, path []string) (*namespace.Module, string, error) {
	if len(path) == 0 {
		return nil, "", fmt.Errorf("empty call path")
	}
	if len(path) == 1 {
		return mod, path[0], nil
	}
	cur := mod
	if use, ok := mod.UseTable[path[0]]; ok {
		_ = use // alias bookkeeping only; absolute path resolution is a driver concern
	}
	for _, seg := range path[:len(path)-1] {
		next, ok := cur.Submodules[seg]
		if !ok {
			return nil, "", fmt.Errorf("unknown module %q in path %v", seg, path)
		}
		cur = next
	}
	return cur, path[len(path)-1], nil
}

// checkImportVisibility records RES002 when mod imports a private symbol
// from another module (spec §3.2's use-table is only meaningful across a
// visibility boundary for Public declarations).
func (c *Checker) checkImportVisibility(ref *namespace.DeclRef, path []string, span ast.Span) {
	if ref.Visibility == ast.Private {
		c.errf(errors.RES002, errors.PhaseResolve, fmt.Sprintf("%v is private and cannot be imported", path), span, map[string]any{"path": path})
	}
}
