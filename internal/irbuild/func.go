package irbuild

import (
	"strings"

	"github.com/FuelLabs/sway-core-go/internal/ir"
	"github.com/FuelLabs/sway-core-go/internal/typedast"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// varScope is a chain of lexical scopes binding local names to the stack
// slot backing them, directly mirroring internal/typecheck/env.go's env
// (itself grounded on the teacher's TypeEnv.Extend): pushed on block entry,
// discarded on block exit, so a nested let correctly shadows an outer one
// only for the remainder of its own block.
type varScope struct {
	locals map[string]*ir.Local
	parent *varScope
}

func newScope(parent *varScope) *varScope {
	return &varScope{locals: make(map[string]*ir.Local), parent: parent}
}

func (s *varScope) bind(name string, l *ir.Local) { s.locals[name] = l }

func (s *varScope) lookup(name string) (*ir.Local, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if l, ok := cur.locals[name]; ok {
			return l, true
		}
	}
	return nil, false
}

// funcBuilder lowers one function's body. Every let-bound and pattern-bound
// variable becomes a stack-allocated ir.Local, read and written through
// get_local/load/store uniformly; function parameters stay direct SSA
// values (fn.GetParam) until internal/irpass's argument-demotion pass
// (spec §4.4.2) promotes the ones that need it. This sidesteps building a
// dominance-frontier phi-placement pass inside the builder itself: only
// if/while/match introduce control-flow joins, and those carry their result
// through an explicit ir.Block argument rather than a renamed variable.
type funcBuilder struct {
	*unitBuilder
	fn    *ir.Function
	cur   *ir.Block
	scope *varScope
	subst map[string]types.TypeId // nil outside a monomorphized generic body
}

// ty applies the active generic substitution (a no-op outside a
// monomorphized function) to a type carried on a typed AST node.
func (fb *funcBuilder) ty(t types.TypeId) types.TypeId {
	return substType(fb.te, t, fb.subst)
}

// lowerFuncBody lowers fd's body into irfn, starting at its entry block, and
// synthesizes the function's final ret (spec §4.3 "Implicit return"): the
// trailing value if the body falls through live, or — uniformly, whether the
// fallthrough is live or the block just became unreachable after an
// interior `return` — whatever ret the current block still lacks.
func (ub *unitBuilder) lowerFuncBody(fd *typedast.FuncDecl, irfn *ir.Function, subst map[string]types.TypeId) {
	fb := &funcBuilder{unitBuilder: ub, fn: irfn, cur: irfn.Entry(), scope: newScope(nil), subst: subst}
	val := fb.lowerBlock(fd.Body)
	if !ir.IsTerminator(fb.cur.Terminator()) {
		fb.cur.Append(&ir.Ret{Value: fb.coerceReturn(val, irfn.ReturnType)})
	}
}

// coerceReturn discards a non-unit trailing value when the function is
// declared unit-returning (spec §4.3: "synthesize a unit constant return if
// declared-unit but body trailing value is non-unit").
func (fb *funcBuilder) coerceReturn(val *ir.Value, retType types.TypeId) *ir.Value {
	if retType == types.Unit && val.Type != types.Unit {
		return fb.unitValue()
	}
	return val
}

// lowerBlock lowers one typed block in a fresh child scope, returning the
// value of its trailing implicit expression (or unit if it has none).
func (fb *funcBuilder) lowerBlock(blk *typedast.Block) *ir.Value {
	fb.scope = newScope(fb.scope)
	defer func() { fb.scope = fb.scope.parent }()

	for _, s := range blk.Stmts {
		fb.lowerStmt(s)
		if t := fb.cur.Terminator(); t != nil && ir.IsTerminator(t) {
			// An interior `return` (or other terminating statement) makes
			// the rest of this block dead; give the remaining statements
			// somewhere structurally valid to land rather than appending
			// past the terminator.
			fb.cur = fb.fn.NewBlock("deadcode")
		}
	}
	if blk.Implicit != nil {
		return fb.lowerExpr(blk.Implicit)
	}
	return fb.unitValue()
}

func (fb *funcBuilder) lowerStmt(s typedast.Stmt) {
	switch st := s.(type) {
	case *typedast.LetStmt:
		val := fb.lowerExpr(st.Value)
		lt := fb.ty(st.Type)
		local := fb.fn.NewUniqueLocal(st.Name, lt, nil)
		ptr := fb.fn.NewValue(fb.te.Pointer(lt))
		fb.cur.Append(&ir.GetLocal{Res: ptr, Local: local})
		fb.cur.Append(&ir.Store{Ptr: ptr, Value: val})
		fb.scope.bind(st.Name, local)

	case *typedast.ExprStmt:
		fb.lowerExpr(st.Value)

	case *typedast.AssignStmt:
		fb.lowerAssign(st)
	}
}

// lowerAssign reassigns an existing local or a storage field. AssignStmt's
// Target is a bare name for a local, or "storage.<field>" for a storage
// write — exactly the encoding internal/typecheck's checkStmt produces.
func (fb *funcBuilder) lowerAssign(st *typedast.AssignStmt) {
	val := fb.lowerExpr(st.Value)
	if field, ok := strings.CutPrefix(st.Target, "storage."); ok {
		fb.cur.Append(&ir.StorageStore{Field: field, Value: val})
		return
	}
	local, ok := fb.scope.lookup(st.Target)
	if !ok {
		return // unresolved target: typecheck already rejected this program
	}
	ptr := fb.fn.NewValue(fb.te.Pointer(local.Type))
	fb.cur.Append(&ir.GetLocal{Res: ptr, Local: local})
	fb.cur.Append(&ir.Store{Ptr: ptr, Value: val})
}

func (fb *funcBuilder) unitValue() *ir.Value {
	return &ir.Value{Kind: ir.ValConst, Type: types.Unit, Const: &ir.Constant{Type: types.Unit, Kind: ir.ConstUnit}}
}
