package ir

import (
	"fmt"
	"strings"
)

// Dump renders mod as indented pseudo-assembly text, grounded on
// original_source/sway-ir's own `Context::to_string` (sway-ir/src/pretty.rs),
// adapted to this package's plain pointer graph rather than its arena
// handles. It is a debugging aid for the `ir` CLI subcommand (spec §10.4),
// not a serialization format — nothing in the core ever parses it back.
func Dump(mod *Module) string {
	var b strings.Builder
	fmt.Fprintf(&b, "module %s (%s)\n", mod.Name, mod.Kind)
	for _, c := range mod.Constants {
		fmt.Fprintf(&b, "const %s = %s\n", c.Name, dumpConstant(c.Value))
	}
	for _, fn := range mod.Functions {
		dumpFunction(&b, fn)
	}
	return b.String()
}

func dumpFunction(b *strings.Builder, fn *Function) {
	vis := ""
	if fn.IsPublic {
		vis = "pub "
	}
	sel := ""
	if fn.Selector != nil {
		sel = fmt.Sprintf(" selector=%x", *fn.Selector)
	}
	fmt.Fprintf(b, "\n%sfn %s%s {\n", vis, fn.Name, sel)
	for _, l := range fn.Locals {
		fmt.Fprintf(b, "  local %s\n", l.Name)
	}
	for _, blk := range fn.Blocks {
		dumpBlock(b, blk)
	}
	b.WriteString("}\n")
}

func dumpBlock(b *strings.Builder, blk *Block) {
	args := make([]string, len(blk.Args))
	for i, a := range blk.Args {
		args[i] = dumpValue(a)
	}
	fmt.Fprintf(b, " %s(%s):\n", blk.Label, strings.Join(args, ", "))
	for _, instr := range blk.Instrs {
		fmt.Fprintf(b, "    %s\n", dumpInstr(instr))
	}
}

func dumpValue(v *Value) string {
	if v == nil {
		return "<nil>"
	}
	switch v.Kind {
	case ValConst:
		return dumpConstant(v.Const)
	case ValBlockArg:
		return fmt.Sprintf("%s.arg%d", v.Block.Label, v.ArgIndex)
	default:
		return fmt.Sprintf("%%%d", v.ID)
	}
}

func dumpConstant(c *Constant) string {
	if c == nil {
		return "<nil>"
	}
	switch c.Kind {
	case ConstUnit:
		return "()"
	case ConstBool:
		return fmt.Sprintf("%t", c.Bool)
	case ConstInt:
		return fmt.Sprintf("%d", c.Int)
	case ConstByte:
		return fmt.Sprintf("%#x", c.Byte)
	case ConstB256:
		return fmt.Sprintf("%#x", c.B256)
	case ConstString:
		return fmt.Sprintf("%q", c.String)
	case ConstStruct, ConstArray, ConstTuple:
		parts := make([]string, len(c.Elems))
		for i, e := range c.Elems {
			parts[i] = dumpConstant(e)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case ConstEnum:
		if c.Payload != nil {
			return fmt.Sprintf("%s(%s)", c.Variant, dumpConstant(c.Payload))
		}
		return c.Variant
	default:
		return "?"
	}
}

func dumpValues(vs []*Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = dumpValue(v)
	}
	return strings.Join(parts, ", ")
}

func dumpInstr(instr Instruction) string {
	res := ""
	if r := instr.Result(); r != nil {
		res = fmt.Sprintf("%s = ", dumpValue(r))
	}
	switch i := instr.(type) {
	case *BinOp:
		return fmt.Sprintf("%sbinop.%d %s, %s", res, i.Op, dumpValue(i.Left), dumpValue(i.Right))
	case *UnOp:
		return fmt.Sprintf("%sunop.%d %s", res, i.Op, dumpValue(i.X))
	case *GetLocal:
		return fmt.Sprintf("%sget_local %s", res, i.Local.Name)
	case *GetPtr:
		return fmt.Sprintf("%sget_ptr %s, %d", res, dumpValue(i.Base), i.Offset)
	case *Load:
		return fmt.Sprintf("%sload %s", res, dumpValue(i.Ptr))
	case *Store:
		return fmt.Sprintf("store %s, %s", dumpValue(i.Ptr), dumpValue(i.Value))
	case *ExtractValue:
		return fmt.Sprintf("%sextract_value %s, %v", res, dumpValue(i.Aggregate), i.Indices)
	case *InsertValue:
		return fmt.Sprintf("%sinsert_value %s, %s, %v", res, dumpValue(i.Aggregate), dumpValue(i.Elem), i.Indices)
	case *Call:
		return fmt.Sprintf("%scall %s(%s)", res, i.Callee.Name, dumpValues(i.Args))
	case *Branch:
		return fmt.Sprintf("branch %s(%s)", i.Target.Label, dumpValues(i.Args))
	case *CondBranch:
		return fmt.Sprintf("cond_branch %s, %s(%s), %s(%s)", dumpValue(i.Cond),
			i.TrueTarget.Label, dumpValues(i.TrueArgs), i.FalseTarget.Label, dumpValues(i.FalseArgs))
	case *Ret:
		return fmt.Sprintf("ret %s", dumpValue(i.Value))
	case *AsmBlock:
		return fmt.Sprintf("%sasm(%s) %q", res, dumpValues(i.Args), i.Text)
	case *StorageLoad:
		return fmt.Sprintf("%sstorage_load %q", res, i.Field)
	case *StorageStore:
		return fmt.Sprintf("storage_store %q, %s", i.Field, dumpValue(i.Value))
	default:
		return fmt.Sprintf("%s?%T", res, instr)
	}
}
