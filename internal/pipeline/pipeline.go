// Package pipeline orchestrates one compile unit end to end: S1 type
// checking, control-flow analysis, IR construction, IR-to-IR passes, code
// generation, register allocation, and ABI extraction (spec §1-§9's five
// named stages, plus the ABI step spec §6.4 adds for contracts). It
// replaces the teacher's Run(cfg, src) tree-walking-evaluator dispatcher —
// lexer/elaborate/core/eval/link/linked, all out of scope here (spec §1
// places parsing and dynamic evaluation outside the core) — with a
// dependency-ordered driver over internal/planning's Plan, reusing the
// teacher's own idea of a single Run entry point; phase timings are logged
// through internal/diagnostics' Tracer rather than returned in a
// hand-rolled timing map.
package pipeline

import (
	"fmt"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/FuelLabs/sway-core-go/internal/abi"
	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/cfa"
	"github.com/FuelLabs/sway-core-go/internal/codegen"
	"github.com/FuelLabs/sway-core-go/internal/decl"
	"github.com/FuelLabs/sway-core-go/internal/diagnostics"
	"github.com/FuelLabs/sway-core-go/internal/errors"
	"github.com/FuelLabs/sway-core-go/internal/ir"
	"github.com/FuelLabs/sway-core-go/internal/iranalysis"
	"github.com/FuelLabs/sway-core-go/internal/irbuild"
	"github.com/FuelLabs/sway-core-go/internal/irpass"
	"github.com/FuelLabs/sway-core-go/internal/namespace"
	"github.com/FuelLabs/sway-core-go/internal/planning"
	"github.com/FuelLabs/sway-core-go/internal/regalloc"
	"github.com/FuelLabs/sway-core-go/internal/sid"
	"github.com/FuelLabs/sway-core-go/internal/typecheck"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// CompiledFunction is one function's final, register-allocated code.
type CompiledFunction struct {
	Name string
	Ops  []regalloc.AllocatedOp
}

// Artifacts is everything one unit's run produced, stage by stage, so a
// driver (or a test) can inspect intermediate state instead of only the
// final assembly.
type Artifacts struct {
	Checked   []*typecheck.CheckedFile
	Module    *ir.Module
	Functions []CompiledFunction
	ABI       abi.Program
}

// UnitResult is what Run returns for a single compile unit: its produced
// artifacts (nil once Diagnostics.OK() is false) plus the two-vector
// diagnostics every stage contributed to, in stage order (spec §7
// propagation policy).
type UnitResult struct {
	Unit        planning.Unit
	Artifacts   *Artifacts
	Diagnostics errors.Result[any]
}

// Engines bundles the shared type/declaration engines a whole Plan
// compiles against. These must be shared (not re-created per unit) because
// a dependent unit's namespace.Module is grafted onto its dependencies' —
// types.TypeId and decl.ID values only mean the same thing across units if
// they were interned into the same engine.
type Engines struct {
	Types *types.Engine
	Decls *decl.Engine
}

// NewEngines builds a fresh pair of engines and wires internal/types'
// aggregate-field walk to internal/decl, the cross-package callback spec
// §3.4/§6.3's storage-only check depends on (types deliberately never
// imports decl directly).
func NewEngines() *Engines {
	te := types.New()
	de := decl.New()
	te.SetAggregateFieldsFn(de.FieldTypes)
	return &Engines{Types: te, Decls: de}
}

// Pipeline runs a Plan's units in dependency order, threading each unit's
// compiled namespace.Module into the ones that depend on it so `use`
// imports can resolve across package boundaries.
type Pipeline struct {
	Engines *Engines
	Logger  *logrus.Logger

	compiled map[string]*namespace.Module
}

// New constructs a Pipeline over a fresh engine pair. A nil logger makes
// every stage trace a no-op (spec §10.3 "opt-in (nil logger = silent)").
func New(logger *logrus.Logger) *Pipeline {
	return &Pipeline{
		Engines:  NewEngines(),
		Logger:   logger,
		compiled: make(map[string]*namespace.Module),
	}
}

// Files resolves one compile unit's already-parsed source files. Parsing
// itself is out of scope for the core (spec §1: "only its output contract
// matters here") — a driver is responsible for handing Run a *ast.File per
// source the unit's manifest names.
type Files func(unit planning.Unit) ([]*ast.File, error)

// RunPlan runs every unit of plan in order, stopping at the first unit
// whose diagnostics are not OK (a dependency's errors make every dependent
// unit's own compilation meaningless).
func (p *Pipeline) RunPlan(plan *planning.Plan, files Files) []UnitResult {
	return p.runPlan(plan, files, true)
}

// CheckPlan is RunPlan's S1+S2-only counterpart, backing `swaycorec check`
// over a whole dependency plan rather than a single unit.
func (p *Pipeline) CheckPlan(plan *planning.Plan, files Files) []UnitResult {
	return p.runPlan(plan, files, false)
}

func (p *Pipeline) runPlan(plan *planning.Plan, files Files, full bool) []UnitResult {
	var results []UnitResult
	for _, unit := range plan.Units {
		srcs, err := files(unit)
		if err != nil {
			var res UnitResult
			res.Unit = unit
			res.Diagnostics.AddError(errors.NewInternal(errors.PhaseInternal, nil, err))
			results = append(results, res)
			return results
		}
		res := p.run(unit, srcs, full)
		results = append(results, res)
		if !res.Diagnostics.OK() {
			return results
		}
	}
	return results
}

// Run compiles one unit through every stage, given its already-parsed
// source files. The unit's dependencies must already have been Run (their
// compiled namespace.Module is looked up by name and grafted in as a
// submodule so the unit's own `use` statements can see them).
func (p *Pipeline) Run(unit planning.Unit, files []*ast.File) UnitResult {
	return p.run(unit, files, true)
}

// Check runs only S1 (type checking) and S2 (control-flow analysis) over
// unit, skipping IR construction, passes, and codegen entirely. This backs
// the `swaycorec check` subcommand (spec §10.4): diagnostics without
// producing anything to link or run. Artifacts is always nil, even on
// success, since no codegen ever ran.
func (p *Pipeline) Check(unit planning.Unit, files []*ast.File) UnitResult {
	return p.run(unit, files, false)
}

func (p *Pipeline) run(unit planning.Unit, files []*ast.File, full bool) UnitResult {
	start := time.Now()
	tracer := diagnostics.NewTracer(p.Logger, sid.NewUnitID())
	var result UnitResult
	result.Unit = unit

	root := namespace.Root(unit.Name)
	for _, depName := range unit.Dependencies {
		depMod, ok := p.compiled[depName]
		if !ok {
			result.Diagnostics.AddError(errors.New(errors.PLN002, errors.PhasePlanning,
				fmt.Sprintf("dependency %q was not compiled before %q", depName, unit.Name), nil,
				map[string]any{"unit": unit.Name, "dependency": depName}))
			continue
		}
		graftSubmodule(root, depName, depMod)
	}
	if !result.Diagnostics.OK() {
		tracer.Done(time.Since(start), false)
		return result
	}

	te, de := p.Engines.Types, p.Engines.Decls

	// S1: type checking.
	doneS1 := tracer.StageTimer("S1")
	checker := typecheck.New(te, de)
	checkRes := typecheck.CheckProgram(checker, root, files)
	doneS1()
	appendAny(&result.Diagnostics, checkRes.Warnings, checkRes.Errors)
	if !checkRes.OK() {
		tracer.Done(time.Since(start), false)
		return result
	}
	p.compiled[unit.Name] = root

	var kind ast.Kind
	if len(files) > 0 {
		kind = files[0].Kind
	}

	// S2: control-flow analysis.
	doneS2 := tracer.StageTimer("S2")
	for _, f := range checkRes.Value {
		for _, fn := range f.Funcs {
			if fn.Body == nil {
				continue
			}
			for _, rep := range cfa.AnalyzeFunction(fn, te) {
				result.Diagnostics.AddError(rep)
			}
			for _, rep := range cfa.DeadCode(fn) {
				result.Diagnostics.AddWarning(rep)
			}
		}
	}
	doneS2()
	if !result.Diagnostics.OK() {
		tracer.Done(time.Since(start), false)
		return result
	}
	if !full {
		tracer.Done(time.Since(start), true)
		return result
	}

	// S3: IR construction.
	doneS3 := tracer.StageTimer("S3")
	irRes := irbuild.Build(kind, unit.Name, checkRes.Value, te, de)
	doneS3()
	appendAny(&result.Diagnostics, irRes.Warnings, irRes.Errors)
	if !irRes.OK() {
		tracer.Done(time.Since(start), false)
		return result
	}
	mod := irRes.Value

	// S4: IR-to-IR passes.
	doneS4 := tracer.StageTimer("S4")
	cache := iranalysis.NewCache()
	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Diagnostics.AddError(errors.NewInternal(errors.PhaseIRPass, nil,
					pkgerrors.Errorf("irpass: %v", r)))
			}
		}()
		irpass.Default().Run(te, mod, cache)
	}()
	doneS4()
	if !result.Diagnostics.OK() {
		tracer.Done(time.Since(start), false)
		return result
	}

	// S5: code generation, register allocation, ABI.
	doneS5 := tracer.StageTimer("S5")
	artifacts, genErr := p.codegenUnit(te, de, mod)
	doneS5()
	if genErr != nil {
		result.Diagnostics.AddError(errors.NewInternal(errors.PhaseCodegen, nil, genErr))
		tracer.Done(time.Since(start), false)
		return result
	}
	artifacts.Checked = checkRes.Value
	result.Artifacts = artifacts

	tracer.Done(time.Since(start), true)
	return result
}

// codegenUnit runs instruction selection, register allocation, and ABI
// extraction over mod. It is split out of Run so regalloc's
// unsatisfiable-after-spill failure (spec §4.5) comes back as one wrapped
// error, which Run reports as an INT001 internal diagnostic.
func (p *Pipeline) codegenUnit(te *types.Engine, de *decl.Engine, mod *ir.Module) (*Artifacts, error) {
	layout := codegen.NewLayout(te, structFieldNames(de))
	layout.SetFieldTypesFn(de.FieldTypes)
	selector := codegen.NewSelector(te, layout, enumVariantIndex(te, de))

	// Each function gets its own AbstractInstructionSet and is realized and
	// allocated independently: SelectFunction restarts virtual-register
	// numbering at every call, so concatenating functions before register
	// allocation (the way SelectModule does for assembly emission) would
	// make two different functions' registers collide. The DataSection is
	// shared, since constants are pooled module-wide.
	var fns []CompiledFunction
	for _, fn := range mod.Functions {
		aset := &codegen.AbstractInstructionSet{Ops: selector.SelectFunction(fn)}
		aset.RemoveSequentialJumps()
		realized := aset.RealizeLabels(selector.DataSection())

		allocated, err := regalloc.AllocateFunction(fn.Name, realized)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "register allocation failed for %q", fn.Name)
		}
		fns = append(fns, CompiledFunction{Name: fn.Name, Ops: allocated})
	}

	prog := abi.NewBuilder(te, de).Build(mod)
	return &Artifacts{Module: mod, Functions: fns, ABI: prog}, nil
}

// structFieldNames adapts decl.Engine.GetStruct into the fieldsOf callback
// codegen.NewLayout needs, mirroring internal/irbuild/zero.go's
// unitBuilder.structFieldIndex lookup but keyed by declaration id rather
// than type id, and returning names rather than searching for one.
func structFieldNames(de *decl.Engine) func(types.DeclID) []string {
	return func(id types.DeclID) []string {
		sd := de.GetStruct(id)
		if sd == nil {
			return nil
		}
		names := make([]string, len(sd.Fields))
		for i, f := range sd.Fields {
			names[i] = f.Name
		}
		return names
	}
}

// enumVariantIndex adapts decl.Engine.GetEnum into the enumVariantIndex
// callback codegen.NewSelector needs: the declaration-order index of
// variant within the enum named by t, the same lookup
// internal/irbuild/zero.go's unitBuilder.enumVariantIndex performs against
// the same two engines, rewritten as a free function since the pipeline
// has no unitBuilder of its own.
func enumVariantIndex(te *types.Engine, de *decl.Engine) func(types.TypeId, string) int {
	return func(t types.TypeId, variant string) int {
		info := te.Get(t)
		ed := de.GetEnum(info.Decl)
		if ed == nil {
			return 0
		}
		for i, v := range ed.Variants {
			if v.Name == variant {
				return i
			}
		}
		return 0
	}
}

// graftSubmodule attaches dep as a named submodule of root, so root's `use`
// table can resolve paths rooted at depName into dep's exported symbols.
// Write-once insertion is skipped in favor of a direct assignment here
// since dep was compiled once by an earlier Run and is never itself
// mutated afterward — InsertSubmodule's ResubmoduleError guard exists to
// catch a *source file* re-declaring a submodule, not a driver wiring in a
// dependency it already knows is fresh. dep.Visibility is forced Public:
// a dependency unit's root carries no `mod` declaration of its own (it was
// never inserted as a source-level submodule), so it defaults to Private's
// zero value, which would otherwise make every cross-unit `use` trip RES003.
func graftSubmodule(root *namespace.Module, depName string, dep *namespace.Module) {
	dep.Visibility = ast.Public
	root.Submodules[depName] = dep
}

// appendAny copies typed Warnings/Errors slices into a Result[any]'s
// vectors. The two-vector model (spec §6.5/§7) tracks severity by which
// slice a *errors.Report lives in, never by a type parameter, so this loses
// nothing by erasing T.
func appendAny(dst *errors.Result[any], warnings, errs []*errors.Report) {
	dst.Warnings = append(dst.Warnings, warnings...)
	dst.Errors = append(dst.Errors, errs...)
}
