package typecheck

import (
	"fmt"

	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/decl"
	"github.com/FuelLabs/sway-core-go/internal/errors"
	"github.com/FuelLabs/sway-core-go/internal/namespace"
	"github.com/FuelLabs/sway-core-go/internal/style"
	"github.com/FuelLabs/sway-core-go/internal/typedast"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

func genericsMap(params []ast.TypeParam) map[string][]string {
	m := make(map[string][]string, len(params))
	for _, p := range params {
		m[p.Name] = p.Constraints
	}
	return m
}

func genericsNames(params []ast.TypeParam) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

func (c *Checker) checkStructDecl(d *ast.StructDecl, mod *namespace.Module) {
	if !style.IsUpperCamelCase(d.Name) {
		c.warnf(errors.STY003, errors.PhaseStyle, fmt.Sprintf("struct %q should be UpperCamelCase", d.Name), d.Span(),
			map[string]any{"suggestion": style.ToUpperCamelCase(d.Name)})
	}
	gm := genericsMap(d.Generics)
	fields := make([]decl.Field, len(d.Fields))
	for i, f := range d.Fields {
		fields[i] = decl.Field{Name: f.Name, Type: c.resolveType(f.Type, mod, gm), Visibility: f.Visibility, Span: d.Span()}
	}
	id := c.Decls.InsertStruct(&decl.StructDecl{
		Name: d.Name, TypeParams: genericsNames(d.Generics), Fields: fields, Visibility: d.Visibility, Span: d.Span(),
	})
	c.insertSymbol(mod, d.Name, &namespace.DeclRef{Kind: namespace.DeclStruct, Struct: id, Visibility: d.Visibility}, d.Span())
}

func (c *Checker) checkEnumDecl(d *ast.EnumDecl, mod *namespace.Module) {
	if !style.IsUpperCamelCase(d.Name) {
		c.warnf(errors.STY003, errors.PhaseStyle, fmt.Sprintf("enum %q should be UpperCamelCase", d.Name), d.Span(),
			map[string]any{"suggestion": style.ToUpperCamelCase(d.Name)})
	}
	gm := genericsMap(d.Generics)
	variants := make([]decl.Variant, len(d.Variants))
	for i, v := range d.Variants {
		t := types.Unit
		if v.Type != nil {
			t = c.resolveType(v.Type, mod, gm)
		}
		variants[i] = decl.Variant{Name: v.Name, Type: t, Span: d.Span()}
	}
	id := c.Decls.InsertEnum(&decl.EnumDecl{
		Name: d.Name, TypeParams: genericsNames(d.Generics), Variants: variants, Visibility: d.Visibility, Span: d.Span(),
	})
	c.insertSymbol(mod, d.Name, &namespace.DeclRef{Kind: namespace.DeclEnum, Enum: id, Visibility: d.Visibility}, d.Span())
}

func (c *Checker) checkTraitDecl(d *ast.TraitDecl, mod *namespace.Module) {
	if !style.IsUpperCamelCase(d.Name) {
		c.warnf(errors.STY003, errors.PhaseStyle, fmt.Sprintf("trait %q should be UpperCamelCase", d.Name), d.Span(),
			map[string]any{"suggestion": style.ToUpperCamelCase(d.Name)})
	}
	methods := make([]decl.TraitMethodSig, len(d.Methods))
	for i, m := range d.Methods {
		gm := genericsMap(m.Generics)
		params := make([]typedast.Param, len(m.Params))
		for j, p := range m.Params {
			params[j] = typedast.Param{Name: p.Name, Type: c.resolveType(p.Type, mod, gm)}
		}
		methods[i] = decl.TraitMethodSig{Name: m.Name, Params: params, ReturnType: c.resolveType(m.ReturnType, mod, gm)}
	}
	id := c.Decls.InsertTrait(&decl.TraitDecl{Name: d.Name, Methods: methods, Span: d.Span()})
	c.insertSymbol(mod, d.Name, &namespace.DeclRef{Kind: namespace.DeclTrait, Trait: id, Visibility: ast.Public}, d.Span())
}

func (c *Checker) checkImplDecl(d *ast.ImplDecl, mod *namespace.Module) {
	gm := genericsMap(d.Generics)
	forType := c.resolveType(d.ForType, mod, gm)

	if d.Trait != "" {
		if _, ok := mod.Lookup(d.Trait); !ok {
			c.errf(errors.RES001, errors.PhaseResolve, fmt.Sprintf("unknown trait %q", d.Trait), d.Span(), nil)
		}
	}

	methods := make([]*typedast.FuncDecl, 0, len(d.Methods))
	for _, m := range d.Methods {
		if fn := c.checkFuncDecl(m, mod, forType); fn != nil {
			methods = append(methods, fn)
		}
	}
	id := c.Decls.InsertImpl(&decl.ImplDecl{Trait: d.Trait, ForType: forType, Methods: methods, Span: d.Span()})
	if d.Trait != "" {
		mod.AddTraitImpl(d.Trait, forType, id)
	}
}

func (c *Checker) checkConstDecl(d *ast.ConstDecl, mod *namespace.Module) *typedast.ConstDecl {
	if !style.IsScreamingSnakeCase(d.Name) {
		c.warnf(errors.STY002, errors.PhaseStyle, fmt.Sprintf("constant %q should be SCREAMING_SNAKE_CASE", d.Name), d.Span(),
			map[string]any{"suggestion": style.ToScreamingSnakeCase(d.Name)})
	}
	declared := c.resolveType(d.Type, mod, nil)
	cc := &ctx{chk: c, module: mod, env: newEnv(nil), selfType: types.ErrorRecovery, purity: ast.Pure}
	val := c.checkExpr(d.Value, cc, declared)
	return &typedast.ConstDecl{
		DeclBase: typedast.DeclBase{DSpan: d.Span(), Visibility: d.Visibility},
		Name:     d.Name, Type: declared, Value: val,
	}
}

func (c *Checker) checkStorageDecl(d *ast.StorageDecl, mod *namespace.Module) *typedast.StorageDecl {
	if !mod.IsContract {
		c.errf(errors.INT001, errors.PhaseInternal, "storage declaration outside a contract module", d.Span(), nil)
		return nil
	}
	fields := make([]typedast.StorageField, len(d.Fields))
	for i, f := range d.Fields {
		fields[i] = typedast.StorageField{Name: f.Name, Type: c.resolveType(f.Type, mod, nil)}
	}
	return &typedast.StorageDecl{DeclBase: typedast.DeclBase{DSpan: d.Span(), Visibility: ast.Private}, Fields: fields}
}

// checkFuncDecl checks one function declaration. selfType is types.ErrorRecovery
// outside an impl block, or the impl's ForType inside one (spec §4.1 step 1's
// "self type" hint); Self-typed parameters/returns are not modeled
// separately since this language has no receiver sugar — methods take an
// explicit first parameter the way free functions do.
func (c *Checker) checkFuncDecl(d *ast.FuncDecl, mod *namespace.Module, selfType types.TypeId) *typedast.FuncDecl {
	if !style.IsSnakeCase(d.Name) {
		c.warnf(errors.STY001, errors.PhaseStyle, fmt.Sprintf("function %q should be snake_case", d.Name), d.Span(),
			map[string]any{"suggestion": style.ToSnakeCase(d.Name)})
	}

	gm := genericsMap(d.Generics)
	params := make([]typedast.Param, len(d.Params))
	fnEnv := newEnv(nil)
	for i, p := range d.Params {
		pt := c.resolveType(p.Type, mod, gm)
		params[i] = typedast.Param{Name: p.Name, Type: pt}
		fnEnv.bind(p.Name, pt)
	}
	retType := c.resolveType(d.ReturnType, mod, gm)

	cc := &ctx{chk: c, module: mod, env: fnEnv, selfType: selfType, purity: d.Purity, generics: gm, fnName: d.Name, returnType: retType}

	var body *typedast.Block
	if d.Body != nil {
		body = c.checkBlock(d.Body, cc, retType)
		if body.Type() != retType && retType != types.ErrorRecovery && body.Type() != types.ErrorRecovery {
			c.errf(errors.TYP001, errors.PhaseTypecheck,
				fmt.Sprintf("function %q: body type %s does not match declared return type %s", d.Name, c.Types.String(body.Type()), c.Types.String(retType)),
				d.Span(), map[string]any{"function": d.Name, "got": c.Types.String(body.Type()), "want": c.Types.String(retType)})
		}
	}

	return &typedast.FuncDecl{
		DeclBase:   typedast.DeclBase{DSpan: d.Span(), Visibility: d.Visibility},
		Name:       d.Name,
		TypeParams: genericsNames(d.Generics),
		Params:     params,
		ReturnType: retType,
		Purity:     d.Purity,
		Body:       body,
	}
}
