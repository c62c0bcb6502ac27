package main

import (
	"fmt"
	"strings"

	"github.com/FuelLabs/sway-core-go/internal/codegen"
	"github.com/FuelLabs/sway-core-go/internal/pipeline"
	"github.com/FuelLabs/sway-core-go/internal/regalloc"
)

// dumpAssembly renders one unit's register-allocated functions as
// mnemonic text, grounded on original_source/sway-core/src/asm_generation's
// own Display impl for AllocatedAbstractOp (operand order: dest, src1,
// src2, matching codegen.Op's field order).
func dumpAssembly(fns []pipeline.CompiledFunction) string {
	var b strings.Builder
	for _, fn := range fns {
		fmt.Fprintf(&b, "fn %s:\n", fn.Name)
		for _, op := range fn.Ops {
			fmt.Fprintf(&b, "  %s\n", dumpOp(op))
		}
	}
	return b.String()
}

func dumpOp(op regalloc.AllocatedOp) string {
	if op.Label != "" {
		return fmt.Sprintf("%s:", op.Label)
	}
	switch op.Opcode {
	case codegen.OpMovi:
		return fmt.Sprintf("%-6s %s, %d", op.Opcode, op.Dest, op.Imm)
	case codegen.OpLwDataID:
		return fmt.Sprintf("%-6s %s, data[%d]", op.Opcode, op.Dest, op.DataID)
	case codegen.OpCall:
		return fmt.Sprintf("%-6s fn#%d, args=%v", op.Opcode, op.Imm, op.Args)
	case codegen.OpRet:
		return fmt.Sprintf("%-6s %s", op.Opcode, op.Src1)
	case codegen.OpRetd:
		return fmt.Sprintf("%-6s %s, %s", op.Opcode, op.Src1, op.Src2)
	case codegen.OpNot, codegen.OpMove:
		return fmt.Sprintf("%-6s %s, %s", op.Opcode, op.Dest, op.Src1)
	case codegen.OpSrw, codegen.OpSrwq:
		return fmt.Sprintf("%-6s %s, field#%d", op.Opcode, op.Dest, op.Imm)
	case codegen.OpSww, codegen.OpSwwq:
		return fmt.Sprintf("%-6s field#%d, %s", op.Opcode, op.Imm, op.Src1)
	case codegen.OpCfei, codegen.OpCfsi:
		return fmt.Sprintf("%-6s %d", op.Opcode, op.Imm)
	case codegen.OpLw, codegen.OpSw, codegen.OpMcpi:
		return fmt.Sprintf("%-6s %s, %s, %d", op.Opcode, op.Dest, op.Src1, op.Imm)
	case codegen.OpNoop:
		return op.Opcode.String()
	default:
		comment := ""
		if op.Comment != "" {
			comment = " ; " + op.Comment
		}
		return fmt.Sprintf("%-6s %s, %s, %s%s", op.Opcode, op.Dest, op.Src1, op.Src2, comment)
	}
}
