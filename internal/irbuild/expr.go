package irbuild

import (
	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/ir"
	"github.com/FuelLabs/sway-core-go/internal/typedast"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// lowerExpr lowers one typed expression into fb's current block, returning
// the ir.Value holding its result. Control-flow expressions (If/While/
// Match) may leave fb.cur pointing at a different block than the one it
// started in — every caller reads fb.cur again afterward rather than
// caching it.
func (fb *funcBuilder) lowerExpr(e typedast.Expr) *ir.Value {
	switch ex := e.(type) {
	case *typedast.Var:
		return fb.lowerVar(ex)
	case *typedast.IntLit:
		return fb.constValue(&ir.Constant{Type: ex.Type, Kind: ir.ConstInt, Int: ex.Value})
	case *typedast.BoolLit:
		return fb.constValue(&ir.Constant{Type: ex.Type, Kind: ir.ConstBool, Bool: ex.Value})
	case *typedast.StringLit:
		return fb.constValue(&ir.Constant{Type: ex.Type, Kind: ir.ConstString, String: ex.Value})
	case *typedast.Call:
		return fb.lowerCall(ex)
	case *typedast.FieldAccess:
		agg := fb.lowerExpr(ex.Struct)
		idx, _ := fb.structFieldIndex(ex.Struct.ReturnType(), ex.Field)
		res := fb.fn.NewValue(ex.Type)
		fb.cur.Append(&ir.ExtractValue{Res: res, Aggregate: agg, Indices: []uint64{uint64(idx)}})
		return res
	case *typedast.TupleIndex:
		tup := fb.lowerExpr(ex.Tuple)
		res := fb.fn.NewValue(ex.Type)
		fb.cur.Append(&ir.ExtractValue{Res: res, Aggregate: tup, Indices: []uint64{uint64(ex.Index)}})
		return res
	case *typedast.StructLit:
		return fb.lowerStructLit(ex)
	case *typedast.TupleLit:
		return fb.lowerTupleLit(ex)
	case *typedast.EnumInstantiation:
		return fb.lowerEnumInstantiation(ex)
	case *typedast.BinOp:
		return fb.lowerBinOp(ex)
	case *typedast.UnOp:
		return fb.lowerUnOp(ex)
	case *typedast.If:
		return fb.lowerIf(ex)
	case *typedast.While:
		return fb.lowerWhile(ex)
	case *typedast.Match:
		return fb.lowerMatch(ex)
	case *typedast.Return:
		var val *ir.Value
		if ex.Value != nil {
			val = fb.lowerExpr(ex.Value)
		} else {
			val = fb.unitValue()
		}
		fb.cur.Append(&ir.Ret{Value: fb.coerceReturn(val, fb.fn.ReturnType)})
		return fb.unitValue()
	case *typedast.StorageRead:
		res := fb.fn.NewValue(ex.Type)
		fb.cur.Append(&ir.StorageLoad{Res: res, Field: ex.Field})
		return res
	case *typedast.AsmBlock:
		res := fb.fn.NewValue(ex.Type)
		fb.cur.Append(&ir.AsmBlock{Res: res, RetType: ex.Type, Text: ex.Text})
		return res
	default:
		return fb.unitValue()
	}
}

// constValue wraps a folded constant as an operand value. It does not mint
// an id from fn's counter: a ValConst value is never the target of a
// ReplaceValue rewrite keyed by id, only ever compared by pointer identity,
// so sharing id 0 across many constants is harmless.
func (fb *funcBuilder) constValue(c *ir.Constant) *ir.Value {
	return &ir.Value{Kind: ir.ValConst, Type: c.Type, Const: c}
}

func (fb *funcBuilder) lowerVar(ex *typedast.Var) *ir.Value {
	if local, ok := fb.scope.lookup(ex.Name); ok {
		ptr := fb.fn.NewValue(fb.te.Pointer(local.Type))
		fb.cur.Append(&ir.GetLocal{Res: ptr, Local: local})
		res := fb.fn.NewValue(local.Type)
		fb.cur.Append(&ir.Load{Res: res, Ptr: ptr})
		return res
	}
	if p, ok := fb.fn.GetParam(ex.Name); ok {
		return p
	}
	if nc, ok := fb.constants[ex.Name]; ok {
		return fb.constValue(nc.Value)
	}
	return fb.constValue(fb.zeroConstant(ex.Type))
}

// lowerCall resolves ex.Callee against the module's already-declared
// non-generic functions, or lazily monomorphizes a generic one keyed on the
// concrete types the (already-lowered) arguments carry.
func (fb *funcBuilder) lowerCall(ex *typedast.Call) *ir.Value {
	args := make([]*ir.Value, len(ex.Args))
	for i, a := range ex.Args {
		args[i] = fb.lowerExpr(a)
	}

	var callee *ir.Function
	if fd, ok := fb.funcDecls[ex.Callee]; ok && len(fd.TypeParams) > 0 {
		callee = fb.monomorphize(fd, args)
	} else {
		callee, _ = fb.mod.GetFunction(ex.Callee)
	}

	res := fb.fn.NewValue(ex.Type)
	fb.cur.Append(&ir.Call{Res: res, Callee: callee, Args: args})
	return res
}

// lowerStructLit builds the literal by starting from the struct's zero
// value and chaining one InsertValue per initializer, in declaration order
// (not literal-syntax order, so downstream passes see a canonical field
// sequence regardless of how the source wrote the literal).
func (fb *funcBuilder) lowerStructLit(ex *typedast.StructLit) *ir.Value {
	info := fb.te.Get(ex.Type)
	sd := fb.de.GetStruct(info.Decl)
	cur := fb.constValue(fb.zeroConstant(ex.Type))
	for i, f := range sd.Fields {
		lit, ok := findStructLitField(ex.Fields, f.Name)
		if !ok {
			continue
		}
		val := fb.lowerExpr(lit.Value)
		next := fb.fn.NewValue(ex.Type)
		fb.cur.Append(&ir.InsertValue{Res: next, Aggregate: cur, Elem: val, Indices: []uint64{uint64(i)}})
		cur = next
	}
	return cur
}

func findStructLitField(fields []typedast.StructLitField, name string) (typedast.StructLitField, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return typedast.StructLitField{}, false
}

func (fb *funcBuilder) lowerTupleLit(ex *typedast.TupleLit) *ir.Value {
	cur := fb.constValue(fb.zeroConstant(ex.Type))
	for i, el := range ex.Elems {
		val := fb.lowerExpr(el)
		next := fb.fn.NewValue(ex.Type)
		fb.cur.Append(&ir.InsertValue{Res: next, Aggregate: cur, Elem: val, Indices: []uint64{uint64(i)}})
		cur = next
	}
	return cur
}

// lowerEnumInstantiation builds field 0 (tag) unconditionally and field 1
// (payload) only for a non-unit variant, per the canonical enum layout.
func (fb *funcBuilder) lowerEnumInstantiation(ex *typedast.EnumInstantiation) *ir.Value {
	variantIdx := fb.enumVariantIndex(ex.Type, ex.Variant)
	base := fb.constValue(fb.zeroConstant(ex.Type))
	tagVal := fb.constValue(&ir.Constant{Type: types.U64, Kind: ir.ConstInt, Int: uint64(variantIdx)})

	withTag := fb.fn.NewValue(ex.Type)
	fb.cur.Append(&ir.InsertValue{Res: withTag, Aggregate: base, Elem: tagVal, Indices: []uint64{0}})
	if ex.Payload == nil {
		return withTag
	}
	payloadVal := fb.lowerExpr(ex.Payload)
	withPayload := fb.fn.NewValue(ex.Type)
	fb.cur.Append(&ir.InsertValue{Res: withPayload, Aggregate: withTag, Elem: payloadVal, Indices: []uint64{1}})
	return withPayload
}

// lowerBinOp lowers logical And/Or through short-circuit control flow
// (spec's typed AST folds both the logical and bitwise operators into one
// BinOp node, but only the bitwise/arithmetic/compare ones are genuine IR
// BinOp instructions — evaluating a logical operator's right operand
// unconditionally would run its side effects even when short-circuiting
// should have skipped them).
func (fb *funcBuilder) lowerBinOp(ex *typedast.BinOp) *ir.Value {
	switch ex.Op {
	case ast.OpAnd:
		return fb.lowerShortCircuit(ex, false)
	case ast.OpOr:
		return fb.lowerShortCircuit(ex, true)
	default:
		left := fb.lowerExpr(ex.Left)
		right := fb.lowerExpr(ex.Right)
		res := fb.fn.NewValue(ex.Type)
		fb.cur.Append(&ir.BinOp{Res: res, Op: binOpKind(ex.Op), Left: left, Right: right})
		return res
	}
}

// lowerShortCircuit lowers `&&` (shortOn=false) and `||` (shortOn=true):
// the right operand is only evaluated when the left operand didn't already
// decide the result.
func (fb *funcBuilder) lowerShortCircuit(ex *typedast.BinOp, shortOn bool) *ir.Value {
	left := fb.lowerExpr(ex.Left)
	rhsBlock := fb.fn.NewBlock("scrhs")
	joinBlock := fb.fn.NewBlock("scjoin")
	joinArg := joinBlock.AddArg(types.Bool)
	short := fb.constValue(&ir.Constant{Type: types.Bool, Kind: ir.ConstBool, Bool: shortOn})

	if shortOn {
		fb.cur.Append(&ir.CondBranch{Cond: left, TrueTarget: joinBlock, TrueArgs: []*ir.Value{short}, FalseTarget: rhsBlock})
	} else {
		fb.cur.Append(&ir.CondBranch{Cond: left, TrueTarget: rhsBlock, FalseTarget: joinBlock, FalseArgs: []*ir.Value{short}})
	}

	fb.cur = rhsBlock
	right := fb.lowerExpr(ex.Right)
	fb.cur.Append(&ir.Branch{Target: joinBlock, Args: []*ir.Value{right}})
	fb.cur = joinBlock
	return joinArg
}

func (fb *funcBuilder) lowerUnOp(ex *typedast.UnOp) *ir.Value {
	x := fb.lowerExpr(ex.Operand)
	k := ir.INeg
	if ex.Op == ast.OpNot {
		k = ir.INot
	}
	res := fb.fn.NewValue(ex.Type)
	fb.cur.Append(&ir.UnOp{Res: res, Op: k, X: x})
	return res
}

// lowerIf always produces a join block with exactly one argument (of the
// if's own, possibly unit, type), even for a missing else branch, so code
// consuming an If's value never has to special-case the two-armed form.
func (fb *funcBuilder) lowerIf(ex *typedast.If) *ir.Value {
	cond := fb.lowerExpr(ex.Cond)
	thenBlock := fb.fn.NewBlock("then")
	joinBlock := fb.fn.NewBlock("ifjoin")
	joinArg := joinBlock.AddArg(ex.Type)

	if ex.Else == nil {
		unit := fb.unitValue()
		fb.cur.Append(&ir.CondBranch{Cond: cond, TrueTarget: thenBlock, FalseTarget: joinBlock, FalseArgs: []*ir.Value{unit}})
		fb.cur = thenBlock
		thenVal := fb.lowerBlock(ex.Then)
		if !ir.IsTerminator(fb.cur.Terminator()) {
			fb.cur.Append(&ir.Branch{Target: joinBlock, Args: []*ir.Value{thenVal}})
		}
		fb.cur = joinBlock
		return joinArg
	}

	elseBlock := fb.fn.NewBlock("else")
	fb.cur.Append(&ir.CondBranch{Cond: cond, TrueTarget: thenBlock, FalseTarget: elseBlock})

	fb.cur = thenBlock
	thenVal := fb.lowerBlock(ex.Then)
	if !ir.IsTerminator(fb.cur.Terminator()) {
		fb.cur.Append(&ir.Branch{Target: joinBlock, Args: []*ir.Value{thenVal}})
	}

	fb.cur = elseBlock
	elseVal := fb.lowerBlock(ex.Else)
	if !ir.IsTerminator(fb.cur.Terminator()) {
		fb.cur.Append(&ir.Branch{Target: joinBlock, Args: []*ir.Value{elseVal}})
	}

	fb.cur = joinBlock
	return joinArg
}

// lowerWhile's header takes no block arguments: a while loop is always
// unit-typed, so there is no per-iteration payload to thread across the
// back edge the way an if/match join threads its result.
func (fb *funcBuilder) lowerWhile(ex *typedast.While) *ir.Value {
	header := fb.fn.NewBlock("whilehead")
	body := fb.fn.NewBlock("whilebody")
	exit := fb.fn.NewBlock("whileexit")

	fb.cur.Append(&ir.Branch{Target: header})

	fb.cur = header
	cond := fb.lowerExpr(ex.Cond)
	fb.cur.Append(&ir.CondBranch{Cond: cond, TrueTarget: body, FalseTarget: exit})

	fb.cur = body
	fb.lowerBlock(ex.Body)
	if !ir.IsTerminator(fb.cur.Terminator()) {
		fb.cur.Append(&ir.Branch{Target: header})
	}

	fb.cur = exit
	return fb.unitValue()
}

func binOpKind(op ast.BinOp) ir.BinOpKind {
	switch op {
	case ast.OpAdd:
		return ir.IAdd
	case ast.OpSub:
		return ir.ISub
	case ast.OpMul:
		return ir.IMul
	case ast.OpDiv:
		return ir.IDiv
	case ast.OpMod:
		return ir.IMod
	case ast.OpBitAnd:
		return ir.IAnd
	case ast.OpBitOr:
		return ir.IOr
	case ast.OpBitXor:
		return ir.IXor
	case ast.OpShl:
		return ir.IShl
	case ast.OpShr:
		return ir.IShr
	case ast.OpEq:
		return ir.IEq
	case ast.OpNeq:
		return ir.INe
	case ast.OpLt:
		return ir.ILt
	case ast.OpLte:
		return ir.ILe
	case ast.OpGt:
		return ir.IGt
	case ast.OpGte:
		return ir.IGe
	default:
		return ir.IEq
	}
}
