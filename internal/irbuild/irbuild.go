// Package irbuild implements S3 (spec §4.3): lowering the typed AST produced
// by internal/typecheck into internal/ir's Module/Function/Block form. The
// teacher has no equivalent stage (internal/elaborate walks straight from
// its untyped surface AST to internal/core, a tree the evaluator walks
// directly — there is no separate register/block-based IR at all), so the
// block-building shape here is grounded on the target IR's own vocabulary
// (original_source/sway-ir) and on the general builder-with-a-cursor
// technique used by every block-based IR generator (an insertion point that
// advances as blocks are created and linked), not on a specific pack file.
// What *is* carried from the teacher is the lexical-environment-as-a-cons-
// chain shape (internal/typecheck/env.go's env, itself grounded on the
// teacher's TypeEnv.Extend) for the local-variable scope stack in func.go.
package irbuild

import (
	"crypto/sha256"
	"encoding/binary"
	"strings"

	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/decl"
	"github.com/FuelLabs/sway-core-go/internal/errors"
	"github.com/FuelLabs/sway-core-go/internal/ir"
	"github.com/FuelLabs/sway-core-go/internal/typecheck"
	"github.com/FuelLabs/sway-core-go/internal/typedast"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// unitBuilder carries everything shared across every function of one
// compile unit: the engines, the output module, the named-constant pool
// (keyed by bare name — a typedast.Var referencing a constant only ever
// carries the resolved, unqualified name; spec §3.2's shadowing rules keep
// that name unique within one unit), every declared function (generic or
// not, for call-site monomorphization) and the monomorphization cache.
type unitBuilder struct {
	te  *types.Engine
	de  *decl.Engine
	mod *ir.Module

	constants     map[string]*ir.NamedConstant
	funcDecls     map[string]*typedast.FuncDecl
	monomorphized map[string]*ir.Function
}

// Build lowers every checked file of one compile unit into a single IR
// module, then verifies the result (spec §8 testable property 8: "IR
// verifier totality"). Non-generic functions are emitted unconditionally —
// script/predicate helper functions included, not just main — mirroring how
// sway-ir's own ir_generation compiles one IR function per source item and
// leaves entry-collapsing to its separate inlining pass (spec §4.4.4); this
// keeps irbuild a straight structural translation and defers "only the
// entry point(s) survive to codegen" to internal/irpass.
func Build(kind ast.Kind, unitName string, files []*typecheck.CheckedFile, te *types.Engine, de *decl.Engine) errors.Result[*ir.Module] {
	var res errors.Result[*ir.Module]

	m := ir.NewModule(kind, unitName)
	ub := &unitBuilder{
		te:            te,
		de:            de,
		mod:           m,
		constants:     make(map[string]*ir.NamedConstant),
		funcDecls:     make(map[string]*typedast.FuncDecl),
		monomorphized: make(map[string]*ir.Function),
	}

	for _, f := range files {
		for _, cd := range f.Consts {
			ub.lowerConst(cd)
		}
	}
	for _, f := range files {
		if f.Storage != nil {
			ub.lowerStorageInitializers(f.Storage)
		}
	}

	var nonGeneric []*typedast.FuncDecl
	for _, f := range files {
		for _, fd := range f.Funcs {
			ub.funcDecls[fd.Name] = fd
			if len(fd.TypeParams) > 0 {
				continue // specialized lazily at call sites, see generics.go
			}
			nonGeneric = append(nonGeneric, fd)
			ub.declareFunction(fd, nil, fd.Name)
		}
	}

	for _, fd := range nonGeneric {
		irfn, _ := m.GetFunction(fd.Name)
		ub.lowerFuncBody(fd, irfn, nil)
	}

	res.Value = m
	for _, r := range ir.Verify(m, te) {
		res.AddError(r)
	}
	return res
}

// declareFunction creates the IR function skeleton (params/return type,
// public-ness, ABI selector) for fd under the given name, substituting
// generic parameter types through subst where present, and registers it in
// the module.
func (ub *unitBuilder) declareFunction(fd *typedast.FuncDecl, subst map[string]types.TypeId, name string) *ir.Function {
	params := make([]ir.ParamSpec, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = ir.ParamSpec{Name: p.Name, Type: substType(ub.te, p.Type, subst)}
	}
	retType := substType(ub.te, fd.ReturnType, subst)

	var selector *[4]byte
	isEntry := ub.mod.Kind == ast.KindContract && fd.Visibility == ast.Public && len(fd.TypeParams) == 0
	if isEntry {
		sel := computeSelector(fd, ub.te)
		selector = &sel
		fd.ABISelector = selectorUint64(sel)
	}

	irfn := ir.NewFunction(name, params, retType, fd.Visibility == ast.Public, selector)
	ub.mod.AddFunction(irfn)
	return irfn
}

// lowerConst folds a module-level constant's initializer to an ir.Constant
// and interns it into the module's constant pool (spec §4.3 "Constants":
// "lowered into the IR constant pool once per name").
func (ub *unitBuilder) lowerConst(cd *typedast.ConstDecl) *ir.NamedConstant {
	if existing, ok := ub.constants[cd.Name]; ok {
		return existing
	}
	nc := ub.mod.AddConstant(cd.Name, ub.constEval(cd.Value))
	ub.constants[cd.Name] = nc
	return nc
}

// lowerStorageInitializers pools each storage field's initial value under
// "storage.<field>" so later stages (deployment tooling, internal/abi) can
// recover the declared initial state without re-walking the typed AST.
func (ub *unitBuilder) lowerStorageInitializers(sd *typedast.StorageDecl) {
	for _, f := range sd.Fields {
		name := "storage." + f.Name
		if _, ok := ub.constants[name]; ok {
			continue
		}
		nc := ub.mod.AddConstant(name, ub.constEval(f.Initial))
		ub.constants[name] = nc
	}
}

// computeSelector derives a contract entry's 4-byte ABI selector as the
// first four bytes of sha256("name(type1,type2,...)"), the scheme Sway
// itself uses. No pack example implements this hashing step (the teacher
// has no ABI concept at all); crypto/sha256 is used directly since nothing
// in the example corpus offers a narrower selector-hashing library and this
// is exactly the kind of fixed, well-known digest stdlib already covers.
func computeSelector(fd *typedast.FuncDecl, te *types.Engine) [4]byte {
	var sig strings.Builder
	sig.WriteString(fd.Name)
	sig.WriteByte('(')
	for i, p := range fd.Params {
		if i > 0 {
			sig.WriteByte(',')
		}
		sig.WriteString(te.String(p.Type))
	}
	sig.WriteByte(')')
	h := sha256.Sum256([]byte(sig.String()))
	var sel [4]byte
	copy(sel[:], h[:4])
	return sel
}

func selectorUint64(sel [4]byte) *uint64 {
	v := uint64(binary.BigEndian.Uint32(sel[:]))
	return &v
}
