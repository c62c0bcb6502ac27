package typecheck

import (
	"fmt"

	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/errors"
	"github.com/FuelLabs/sway-core-go/internal/namespace"
	"github.com/FuelLabs/sway-core-go/internal/typedast"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// checkPattern checks a match-arm pattern against scrutinee, binding any
// variables it introduces into cc.env (spec §4.3, consumed by internal/irbuild's
// linear per-arm match lowering).
func (c *Checker) checkPattern(p ast.Pattern, cc *ctx, scrutinee types.TypeId) typedast.Pattern {
	switch v := p.(type) {
	case *ast.WildcardPattern:
		return &typedast.WildcardPattern{PatternBase: typedast.PatternBase{PSpan: v.Span(), Type: scrutinee}}

	case *ast.VarPattern:
		cc.env.bind(v.Name, scrutinee)
		return &typedast.VarPattern{PatternBase: typedast.PatternBase{PSpan: v.Span(), Type: scrutinee}, Name: v.Name}

	case *ast.LitPattern:
		val := c.checkExpr(v.Value, cc, scrutinee)
		c.expectType(val.ReturnType(), scrutinee, v.Span(), "pattern literal")
		return &typedast.LitPattern{PatternBase: typedast.PatternBase{PSpan: v.Span(), Type: scrutinee}, Value: val}

	case *ast.CtorPattern:
		return c.checkCtorPattern(v, cc, scrutinee)

	case *ast.StructPattern:
		return c.checkStructPattern(v, cc, scrutinee)

	case *ast.TuplePattern:
		info := cc.chk.Types.Get(scrutinee)
		elems := make([]typedast.Pattern, len(v.Elems))
		for i, el := range v.Elems {
			et := types.ErrorRecovery
			if info.Kind == types.KindTuple && i < len(info.Elems) {
				et = info.Elems[i]
			}
			elems[i] = c.checkPattern(el, cc, et)
		}
		return &typedast.TuplePattern{PatternBase: typedast.PatternBase{PSpan: v.Span(), Type: scrutinee}, Elems: elems}

	default:
		c.errf(errors.INT001, errors.PhaseInternal, fmt.Sprintf("unexpected pattern %T", p), p.Span(), nil)
		return &typedast.WildcardPattern{PatternBase: typedast.PatternBase{PSpan: p.Span(), Type: types.ErrorRecovery}}
	}
}

func (c *Checker) checkCtorPattern(v *ast.CtorPattern, cc *ctx, scrutinee types.TypeId) typedast.Pattern {
	target, name, err := resolveCallPath(cc.module, []string{v.EnumName})
	if err != nil {
		c.errf(errors.RES001, errors.PhaseResolve, err.Error(), v.Span(), nil)
		return &typedast.CtorPattern{PatternBase: typedast.PatternBase{PSpan: v.Span(), Type: types.ErrorRecovery}, EnumName: v.EnumName, Variant: v.Variant}
	}
	ref, ok := target.Lookup(name)
	if !ok || ref.Kind != namespace.DeclEnum {
		c.errf(errors.RES001, errors.PhaseResolve, fmt.Sprintf("unknown enum %q", v.EnumName), v.Span(), nil)
		return &typedast.CtorPattern{PatternBase: typedast.PatternBase{PSpan: v.Span(), Type: types.ErrorRecovery}, EnumName: v.EnumName, Variant: v.Variant}
	}
	ed := cc.chk.Decls.GetEnum(ref.Enum)
	var payload types.TypeId = types.ErrorRecovery
	found := false
	for _, variant := range ed.Variants {
		if variant.Name == v.Variant {
			payload = variant.Type
			found = true
		}
	}
	if !found {
		c.errf(errors.TYP003, errors.PhaseTypecheck, fmt.Sprintf("%s has no variant %q", ed.Name, v.Variant), v.Span(), nil)
	}
	args := make([]typedast.Pattern, len(v.Args))
	for i, a := range v.Args {
		args[i] = c.checkPattern(a, cc, payload)
	}
	return &typedast.CtorPattern{PatternBase: typedast.PatternBase{PSpan: v.Span(), Type: scrutinee}, EnumName: ed.Name, Variant: v.Variant, Args: args}
}

func (c *Checker) checkStructPattern(v *ast.StructPattern, cc *ctx, scrutinee types.TypeId) typedast.Pattern {
	target, name, err := resolveCallPath(cc.module, []string{v.TypeName})
	if err != nil {
		c.errf(errors.RES001, errors.PhaseResolve, err.Error(), v.Span(), nil)
		return &typedast.StructPattern{PatternBase: typedast.PatternBase{PSpan: v.Span(), Type: types.ErrorRecovery}, TypeName: v.TypeName}
	}
	ref, ok := target.Lookup(name)
	if !ok || ref.Kind != namespace.DeclStruct {
		c.errf(errors.RES001, errors.PhaseResolve, fmt.Sprintf("unknown struct %q", v.TypeName), v.Span(), nil)
		return &typedast.StructPattern{PatternBase: typedast.PatternBase{PSpan: v.Span(), Type: types.ErrorRecovery}, TypeName: v.TypeName}
	}
	sd := cc.chk.Decls.GetStruct(ref.Struct)
	byName := make(map[string]types.TypeId, len(sd.Fields))
	for _, f := range sd.Fields {
		byName[f.Name] = f.Type
	}
	fields := make([]typedast.StructPatternField, len(v.Fields))
	for i, f := range v.Fields {
		ft, ok := byName[f.Name]
		if !ok {
			c.errf(errors.TYP003, errors.PhaseTypecheck, fmt.Sprintf("%s has no field %q", sd.Name, f.Name), v.Span(), nil)
			ft = types.ErrorRecovery
		}
		fields[i] = typedast.StructPatternField{Name: f.Name, Pattern: c.checkPattern(f.Pattern, cc, ft)}
	}
	return &typedast.StructPattern{PatternBase: typedast.PatternBase{PSpan: v.Span(), Type: scrutinee}, TypeName: sd.Name, Fields: fields}
}
