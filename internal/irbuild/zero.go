package irbuild

import (
	"strings"

	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/ir"
	"github.com/FuelLabs/sway-core-go/internal/typedast"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// zeroConstant recursively builds the zero value of t, used both as the
// base aggregate for InsertValue chains (StructLit/TupleLit/
// EnumInstantiation lowering) and as the defensive-trap return in an
// exhaustive match's unreachable default arm.
func (ub *unitBuilder) zeroConstant(t types.TypeId) *ir.Constant {
	info := ub.te.Get(t)
	switch info.Kind {
	case types.KindUnit:
		return &ir.Constant{Type: t, Kind: ir.ConstUnit}
	case types.KindBool:
		return &ir.Constant{Type: t, Kind: ir.ConstBool}
	case types.KindByte:
		return &ir.Constant{Type: t, Kind: ir.ConstByte}
	case types.KindB256:
		return &ir.Constant{Type: t, Kind: ir.ConstB256}
	case types.KindU8, types.KindU16, types.KindU32, types.KindU64:
		return &ir.Constant{Type: t, Kind: ir.ConstInt}
	case types.KindStr:
		return &ir.Constant{Type: t, Kind: ir.ConstString, String: strings.Repeat("\x00", info.StrLen)}
	case types.KindTuple:
		elems := make([]*ir.Constant, len(info.Elems))
		for i, e := range info.Elems {
			elems[i] = ub.zeroConstant(e)
		}
		return &ir.Constant{Type: t, Kind: ir.ConstTuple, Elems: elems}
	case types.KindArray:
		elems := make([]*ir.Constant, info.Len)
		for i := range elems {
			elems[i] = ub.zeroConstant(info.Elem)
		}
		return &ir.Constant{Type: t, Kind: ir.ConstArray, Elems: elems}
	case types.KindStruct:
		sd := ub.de.GetStruct(info.Decl)
		elems := make([]*ir.Constant, len(sd.Fields))
		for i, f := range sd.Fields {
			elems[i] = ub.zeroConstant(substType(ub.te, f.Type, typeArgsSubst(sd.TypeParams, info.TypeArgs)))
		}
		return &ir.Constant{Type: t, Kind: ir.ConstStruct, Elems: elems}
	case types.KindEnum:
		ed := ub.de.GetEnum(info.Decl)
		v := ed.Variants[0]
		var payload *ir.Constant
		if v.Type != types.Unit {
			payload = ub.zeroConstant(substType(ub.te, v.Type, typeArgsSubst(ed.TypeParams, info.TypeArgs)))
		}
		return &ir.Constant{Type: t, Kind: ir.ConstEnum, Variant: v.Name, Payload: payload}
	case types.KindPointer:
		// A null pointer constant has no meaningful runtime use but keeps
		// zeroConstant total over every TypeId the checker can produce.
		return &ir.Constant{Type: t, Kind: ir.ConstInt}
	default:
		return &ir.Constant{Type: t, Kind: ir.ConstUnit}
	}
}

// typeArgsSubst zips a declaration's type parameter names against the type
// arguments one particular instantiation binds them to, for resolving a
// generic struct/enum's field types under zeroConstant/constEval.
func typeArgsSubst(params []string, args []types.TypeId) map[string]types.TypeId {
	if len(params) == 0 || len(args) == 0 {
		return nil
	}
	m := make(map[string]types.TypeId, len(params))
	for i, p := range params {
		if i < len(args) {
			m[p] = args[i]
		}
	}
	return m
}

// constEval folds a module-level constant or storage-field initializer
// expression to an ir.Constant. Only the expression shapes that can
// legally appear in a const/storage initializer are handled; anything else
// falls back to zeroConstant(e.ReturnType()) rather than failing the build
// outright — internal/typecheck is responsible for rejecting initializers
// that aren't actually constant, so this fallback should only ever be
// exercised on checker gaps, not well-formed programs.
func (ub *unitBuilder) constEval(e typedast.Expr) *ir.Constant {
	switch ex := e.(type) {
	case *typedast.IntLit:
		return &ir.Constant{Type: ex.Type, Kind: ir.ConstInt, Int: ex.Value}
	case *typedast.BoolLit:
		return &ir.Constant{Type: ex.Type, Kind: ir.ConstBool, Bool: ex.Value}
	case *typedast.StringLit:
		return &ir.Constant{Type: ex.Type, Kind: ir.ConstString, String: ex.Value}
	case *typedast.Var:
		if nc, ok := ub.constants[ex.Name]; ok {
			return nc.Value
		}
	case *typedast.UnOp:
		x := ub.constEval(ex.Operand)
		switch ex.Op {
		case ast.OpNeg:
			return &ir.Constant{Type: ex.Type, Kind: ir.ConstInt, Int: -x.Int}
		case ast.OpNot:
			return &ir.Constant{Type: ex.Type, Kind: ir.ConstBool, Bool: !x.Bool}
		}
	case *typedast.BinOp:
		l, r := ub.constEval(ex.Left), ub.constEval(ex.Right)
		if v, ok := foldConstBinOp(ex.Op, ex.Type, l, r); ok {
			return v
		}
	case *typedast.TupleLit:
		elems := make([]*ir.Constant, len(ex.Elems))
		for i, el := range ex.Elems {
			elems[i] = ub.constEval(el)
		}
		return &ir.Constant{Type: ex.Type, Kind: ir.ConstTuple, Elems: elems}
	case *typedast.StructLit:
		return ub.constEvalStructLit(ex)
	case *typedast.EnumInstantiation:
		var payload *ir.Constant
		if ex.Payload != nil {
			payload = ub.constEval(ex.Payload)
		}
		return &ir.Constant{Type: ex.Type, Kind: ir.ConstEnum, Variant: ex.Variant, Payload: payload}
	case *typedast.FieldAccess:
		agg := ub.constEval(ex.Struct)
		if idx, ok := ub.structFieldIndex(ex.Struct.ReturnType(), ex.Field); ok && idx < len(agg.Elems) {
			return agg.Elems[idx]
		}
	case *typedast.TupleIndex:
		agg := ub.constEval(ex.Tuple)
		if ex.Index < len(agg.Elems) {
			return agg.Elems[ex.Index]
		}
	}
	return ub.zeroConstant(e.ReturnType())
}

func (ub *unitBuilder) constEvalStructLit(ex *typedast.StructLit) *ir.Constant {
	info := ub.te.Get(ex.Type)
	sd := ub.de.GetStruct(info.Decl)
	elems := make([]*ir.Constant, len(sd.Fields))
	for i, f := range sd.Fields {
		elems[i] = ub.zeroConstant(f.Type)
		for _, lf := range ex.Fields {
			if lf.Name == f.Name {
				elems[i] = ub.constEval(lf.Value)
			}
		}
	}
	return &ir.Constant{Type: ex.Type, Kind: ir.ConstStruct, Elems: elems}
}

func foldConstBinOp(op ast.BinOp, t types.TypeId, l, r *ir.Constant) (*ir.Constant, bool) {
	switch op {
	case ast.OpAdd:
		return &ir.Constant{Type: t, Kind: ir.ConstInt, Int: l.Int + r.Int}, true
	case ast.OpSub:
		return &ir.Constant{Type: t, Kind: ir.ConstInt, Int: l.Int - r.Int}, true
	case ast.OpMul:
		return &ir.Constant{Type: t, Kind: ir.ConstInt, Int: l.Int * r.Int}, true
	case ast.OpDiv:
		if r.Int == 0 {
			return nil, false
		}
		return &ir.Constant{Type: t, Kind: ir.ConstInt, Int: l.Int / r.Int}, true
	case ast.OpMod:
		if r.Int == 0 {
			return nil, false
		}
		return &ir.Constant{Type: t, Kind: ir.ConstInt, Int: l.Int % r.Int}, true
	case ast.OpBitAnd:
		return &ir.Constant{Type: t, Kind: ir.ConstInt, Int: l.Int & r.Int}, true
	case ast.OpBitOr:
		return &ir.Constant{Type: t, Kind: ir.ConstInt, Int: l.Int | r.Int}, true
	case ast.OpBitXor:
		return &ir.Constant{Type: t, Kind: ir.ConstInt, Int: l.Int ^ r.Int}, true
	case ast.OpShl:
		return &ir.Constant{Type: t, Kind: ir.ConstInt, Int: l.Int << r.Int}, true
	case ast.OpShr:
		return &ir.Constant{Type: t, Kind: ir.ConstInt, Int: l.Int >> r.Int}, true
	case ast.OpAnd:
		return &ir.Constant{Type: t, Kind: ir.ConstBool, Bool: l.Bool && r.Bool}, true
	case ast.OpOr:
		return &ir.Constant{Type: t, Kind: ir.ConstBool, Bool: l.Bool || r.Bool}, true
	case ast.OpEq:
		return &ir.Constant{Type: t, Kind: ir.ConstBool, Bool: l.Int == r.Int}, true
	case ast.OpNeq:
		return &ir.Constant{Type: t, Kind: ir.ConstBool, Bool: l.Int != r.Int}, true
	case ast.OpLt:
		return &ir.Constant{Type: t, Kind: ir.ConstBool, Bool: l.Int < r.Int}, true
	case ast.OpLte:
		return &ir.Constant{Type: t, Kind: ir.ConstBool, Bool: l.Int <= r.Int}, true
	case ast.OpGt:
		return &ir.Constant{Type: t, Kind: ir.ConstBool, Bool: l.Int > r.Int}, true
	case ast.OpGte:
		return &ir.Constant{Type: t, Kind: ir.ConstBool, Bool: l.Int >= r.Int}, true
	default:
		return nil, false
	}
}

// structFieldIndex returns the declaration-order index of field within the
// struct named by t, grounded on the same lookup internal/typecheck's
// checkFieldAccess performs against the decl engine.
func (ub *unitBuilder) structFieldIndex(t types.TypeId, field string) (int, bool) {
	info := ub.te.Get(t)
	if info.Kind != types.KindStruct {
		return 0, false
	}
	sd := ub.de.GetStruct(info.Decl)
	for i, f := range sd.Fields {
		if f.Name == field {
			return i, true
		}
	}
	return 0, false
}

// enumVariantIndex returns variant's declaration-order index within the
// enum named by t. This index is the canonical tag value stored in field 0
// of the enum's runtime representation (see lowerEnumInstantiation in
// expr.go for the layout).
func (ub *unitBuilder) enumVariantIndex(t types.TypeId, variant string) int {
	info := ub.te.Get(t)
	ed := ub.de.GetEnum(info.Decl)
	for i, v := range ed.Variants {
		if v.Name == variant {
			return i
		}
	}
	return 0
}
