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

// Checker carries the engines shared across one compilation unit: the
// interned type table, the declaration table, and the namespace tree being
// populated as top-level nodes are walked (spec §4.1 contract: "output ...
// a typed parse tree ... plus an augmented namespace").
type Checker struct {
	Types *types.Engine
	Decls *decl.Engine

	result errors.Result[[]*CheckedFile]
}

// CheckedFile is S1's per-unit output: the typed top-level declarations in
// source order plus the module they were checked into.
type CheckedFile struct {
	Kind    ast.Kind
	Module  *namespace.Module
	Funcs   []*typedast.FuncDecl
	Consts  []*typedast.ConstDecl
	Storage *typedast.StorageDecl
}

// New constructs a Checker sharing te/de across however many files make up
// one compile unit (spec §5: "one module tree per compile unit").
func New(te *types.Engine, de *decl.Engine) *Checker {
	return &Checker{Types: te, Decls: de}
}

// ctx is the per-declaration checking context threaded through expression
// and statement checking: a mutable namespace reference plus the "self
// type" hint the spec calls for (spec §4.1 step 1), generalized here to
// also carry the enclosing function's purity (for PUR001/PUR002) and its
// declared generic parameter constraints (for TRA001's caller-subsumption
// check).
type ctx struct {
	chk      *Checker
	module   *namespace.Module
	env      *env
	selfType   types.TypeId // types.ErrorRecovery sentinel when not inside an impl
	purity     ast.Purity
	generics   map[string][]string // this function's own declared type-param constraints
	fnName     string
	returnType types.TypeId
}

func (c *Checker) errf(code, phase, msg string, span ast.Span, data map[string]any) {
	c.result.AddError(errors.New(code, phase, msg, &span, data))
}

func (c *Checker) warnf(code, phase, msg string, span ast.Span, data map[string]any) *errors.Report {
	r := errors.New(code, phase, msg, &span, data)
	c.result.AddWarning(r)
	return r
}

// CheckFile walks f's top-level declarations in source order into mod,
// implementing spec §4.1 steps 1-8 except program-kind validation and the
// storage-only pass, which CheckProgram runs once after every file in the
// unit has been walked (they are whole-program checks, not per-node ones).
func (c *Checker) CheckFile(f *ast.File, mod *namespace.Module) *CheckedFile {
	out := &CheckedFile{Kind: f.Kind, Module: mod}

	if !style.IsSnakeCase(mod.Name) && mod.Name != "" {
		c.warnf(errors.STY001, errors.PhaseStyle,
			fmt.Sprintf("module name %q should be snake_case", mod.Name), f.Span(),
			map[string]any{"suggestion": style.ToSnakeCase(mod.Name)})
	}

	for _, imp := range f.Imports {
		c.checkImport(imp, mod)
	}

	for _, d := range f.Decls {
		c.checkDecl(d, mod, out)
	}

	c.result.Value = append(c.result.Value, out)
	return out
}

func (c *Checker) checkImport(imp *ast.Import, mod *namespace.Module) {
	local := imp.Alias
	if local == "" && len(imp.Path) > 0 {
		local = imp.Path[len(imp.Path)-1]
	}
	mod.AddUse(local, imp.Path, imp.Alias)
	if len(imp.Path) == 0 {
		return
	}
	target, ok := c.checkImportModulePath(imp, mod)
	if !ok {
		return
	}
	name := imp.Path[len(imp.Path)-1]
	if ref, ok := target.Lookup(name); ok {
		c.checkImportVisibility(ref, imp.Path, imp.Span())
		return
	}
	// name didn't resolve as a symbol in target; it may instead name a
	// submodule directly (`use a::b;` importing the module b itself).
	if sub, ok := target.Submodules[name]; ok && sub.Visibility == ast.Private {
		c.errf(errors.RES003, errors.PhaseResolve, fmt.Sprintf("module %q in path %v is private", name, imp.Path), imp.Span(), map[string]any{"path": imp.Path})
	}
}

// checkImportModulePath walks imp.Path's leading segments as submodule
// names from mod, recording RES003 and returning ok=false the first time it
// crosses a private submodule boundary (spec §7: "import of private
// module"). On success it returns the module the final path segment should
// be looked up in.
func (c *Checker) checkImportModulePath(imp *ast.Import, mod *namespace.Module) (*namespace.Module, bool) {
	cur := mod
	for _, seg := range imp.Path[:len(imp.Path)-1] {
		next, ok := cur.Submodules[seg]
		if !ok {
			return nil, false
		}
		if next.Visibility == ast.Private {
			c.errf(errors.RES003, errors.PhaseResolve, fmt.Sprintf("module %q in path %v is private", seg, imp.Path), imp.Span(), map[string]any{"path": imp.Path})
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func (c *Checker) checkDecl(d ast.Decl, mod *namespace.Module, out *CheckedFile) {
	switch v := d.(type) {
	case *ast.ModDecl:
		child, err := mod.InsertSubmodule(v.Name, v.Visibility)
		if err != nil {
			c.errf(errors.RES004, errors.PhaseResolve, err.Error(), v.Span(), nil)
			return
		}
		child.IsContract = mod.IsContract
	case *ast.FuncDecl:
		if fn := c.checkFuncDecl(v, mod, types.ErrorRecovery); fn != nil {
			out.Funcs = append(out.Funcs, fn)
			c.insertSymbol(mod, v.Name, &namespace.DeclRef{Kind: namespace.DeclFunc, Func: fn, Visibility: v.Visibility}, v.Span())
		}
	case *ast.StructDecl:
		c.checkStructDecl(v, mod)
	case *ast.EnumDecl:
		c.checkEnumDecl(v, mod)
	case *ast.TraitDecl:
		c.checkTraitDecl(v, mod)
	case *ast.ImplDecl:
		c.checkImplDecl(v, mod)
	case *ast.ConstDecl:
		if cd := c.checkConstDecl(v, mod); cd != nil {
			out.Consts = append(out.Consts, cd)
			c.insertSymbol(mod, v.Name, &namespace.DeclRef{Kind: namespace.DeclConst, Const: cd, Visibility: v.Visibility}, v.Span())
		}
	case *ast.StorageDecl:
		if sd := c.checkStorageDecl(v, mod); sd != nil {
			out.Storage = sd
			if err := mod.SetStorage(sd); err != nil {
				c.errf(errors.INT001, errors.PhaseInternal, err.Error(), v.Span(), nil)
			}
		}
	default:
		c.errf(errors.INT001, errors.PhaseInternal, fmt.Sprintf("unexpected top-level declaration %T", d), d.Span(), nil)
	}
}

// insertSymbol wraps namespace.Module.InsertSymbol, turning its sentinel
// errors into RES005/STY-phase diagnostics.
func (c *Checker) insertSymbol(mod *namespace.Module, name string, ref *namespace.DeclRef, span ast.Span) {
	if err := mod.InsertSymbol(name, ref); err != nil {
		switch err.(type) {
		case *namespace.ShadowError:
			c.errf(errors.RES005, errors.PhaseResolve, err.Error(), span, nil)
		default:
			c.warnf(errors.RES005, errors.PhaseResolve, err.Error(), span, nil)
		}
	}
}

// Result returns the accumulated diagnostics for every file checked so far
// through this Checker.
func (c *Checker) Result() errors.Result[[]*CheckedFile] { return c.result }
