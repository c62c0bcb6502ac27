package irbuild

import (
	"strings"

	"github.com/FuelLabs/sway-core-go/internal/ir"
	"github.com/FuelLabs/sway-core-go/internal/typedast"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// substType rewrites every KindGenericParam reachable from t through subst,
// recursing into tuple/array/pointer/struct/enum type arguments. A nil or
// empty subst is a no-op. Only direct generic-parameter parameter types are
// ever bound into subst (see monomorphize below) — a generic parameter
// nested inside another generic's type arguments (Vec<T> rather than T
// itself) is not inferred from an argument's type. This is a deliberate
// scope simplification for a first cut at monomorphization; see DESIGN.md.
func substType(te *types.Engine, t types.TypeId, subst map[string]types.TypeId) types.TypeId {
	if len(subst) == 0 {
		return t
	}
	info := te.Get(t)
	switch info.Kind {
	case types.KindGenericParam:
		if repl, ok := subst[info.Param.Name]; ok {
			return repl
		}
		return t
	case types.KindTuple:
		elems := make([]types.TypeId, len(info.Elems))
		for i, e := range info.Elems {
			elems[i] = substType(te, e, subst)
		}
		return te.Tuple(elems...)
	case types.KindArray:
		return te.Array(substType(te, info.Elem, subst), info.Len)
	case types.KindPointer:
		return te.Pointer(substType(te, info.Elem, subst))
	case types.KindStruct:
		if len(info.TypeArgs) == 0 {
			return t
		}
		args := make([]types.TypeId, len(info.TypeArgs))
		for i, a := range info.TypeArgs {
			args[i] = substType(te, a, subst)
		}
		return te.Struct(info.Decl, info.DeclName, args...)
	case types.KindEnum:
		if len(info.TypeArgs) == 0 {
			return t
		}
		args := make([]types.TypeId, len(info.TypeArgs))
		for i, a := range info.TypeArgs {
			args[i] = substType(te, a, subst)
		}
		return te.Enum(info.Decl, info.DeclName, args...)
	default:
		return t
	}
}

// monomorphize returns the IR function specialized for fd at a call site
// whose already-lowered arguments have the concrete types args carries,
// lowering the body on first use and memoizing by mangled name so repeated
// instantiations with the same concrete types share one IR function (spec
// §4.1's note that generic bodies are checked once against their own
// GenericParam placeholders defers per-call-site specialization to here —
// see the Open Question decision in DESIGN.md).
func (ub *unitBuilder) monomorphize(fd *typedast.FuncDecl, args []*ir.Value) *ir.Function {
	subst := make(map[string]types.TypeId)
	for i, p := range fd.Params {
		if i >= len(args) {
			break
		}
		if info := ub.te.Get(p.Type); info.Kind == types.KindGenericParam {
			subst[info.Param.Name] = args[i].Type
		}
	}

	name := mangleName(ub.te, fd, subst)
	if existing, ok := ub.monomorphized[name]; ok {
		return existing
	}

	irfn := ub.declareFunction(fd, subst, name)
	// Registered before the body is lowered so a (direct or mutual)
	// recursive call within fd's own body resolves to this instantiation
	// instead of re-triggering monomorphize.
	ub.monomorphized[name] = irfn
	ub.lowerFuncBody(fd, irfn, subst)
	return irfn
}

func mangleName(te *types.Engine, fd *typedast.FuncDecl, subst map[string]types.TypeId) string {
	var b strings.Builder
	b.WriteString(fd.Name)
	for _, tp := range fd.TypeParams {
		b.WriteByte('$')
		if t, ok := subst[tp]; ok {
			b.WriteString(te.String(t))
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}
