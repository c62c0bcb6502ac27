package ir

import (
	"fmt"

	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/errors"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// Verify checks every function of m against the IR invariants of spec
// §3.4, reporting the IRV### taxonomy of spec §7. A module that passes
// Verify satisfies "IR verifier totality" (spec §8 testable property 8):
// every successfully generated module must pass it.
func Verify(m *Module, te *types.Engine) []*errors.Report {
	var reports []*errors.Report
	for _, fn := range m.Functions {
		reports = append(reports, verifyFunction(fn, te)...)
	}
	return reports
}

func verifyFunction(fn *Function, te *types.Engine) []*errors.Report {
	var reports []*errors.Report
	blockSet := make(map[*Block]bool, len(fn.Blocks))
	for _, b := range fn.Blocks {
		blockSet[b] = true
	}

	for _, b := range fn.Blocks {
		term := b.Terminator()
		if term == nil || !IsTerminator(term) {
			reports = append(reports, errors.New(errors.IRV001, errors.PhaseIRVerify,
				fmt.Sprintf("function %q: block %q has no terminator", fn.Name, b.Label),
				spanPtr(spanOf(term)), map[string]any{"function": fn.Name, "block": b.Label}))
			continue
		}
		switch t := term.(type) {
		case *Branch:
			reports = append(reports, verifyBranchTarget(fn, blockSet, t.Span(), t.Target, t.Args, te)...)
		case *CondBranch:
			reports = append(reports, verifyBranchTarget(fn, blockSet, t.Span(), t.TrueTarget, t.TrueArgs, te)...)
			reports = append(reports, verifyBranchTarget(fn, blockSet, t.Span(), t.FalseTarget, t.FalseArgs, te)...)
		case *Ret:
			if !types.Equal(t.Value.Type, fn.ReturnType) && t.Value.Type != types.ErrorRecovery && fn.ReturnType != types.ErrorRecovery {
				reports = append(reports, errors.New(errors.IRV005, errors.PhaseIRVerify,
					fmt.Sprintf("function %q: ret type %s does not match declared return type %s",
						fn.Name, te.String(t.Value.Type), te.String(fn.ReturnType)),
					spanPtr(t.Span()), map[string]any{"function": fn.Name}))
			}
		}

		for _, instr := range b.Instrs {
			if call, ok := instr.(*Call); ok {
				reports = append(reports, verifyCall(fn, call, te)...)
			}
			if load, ok := instr.(*Load); ok {
				if te.Get(load.Ptr.Type).Kind != types.KindPointer {
					reports = append(reports, errors.New(errors.IRV004, errors.PhaseIRVerify,
						fmt.Sprintf("function %q: load from non-pointer value", fn.Name),
						spanPtr(load.Span()), map[string]any{"function": fn.Name}))
				}
			}
		}
	}
	return reports
}

func verifyBranchTarget(fn *Function, blockSet map[*Block]bool, span ast.Span, target *Block, args []*Value, te *types.Engine) []*errors.Report {
	var reports []*errors.Report
	if target == nil || !blockSet[target] {
		reports = append(reports, errors.New(errors.IRV002, errors.PhaseIRVerify,
			fmt.Sprintf("function %q: branch target is not a block of this function", fn.Name),
			spanPtr(span), map[string]any{"function": fn.Name}))
		return reports
	}
	if len(args) != len(target.Args) {
		reports = append(reports, errors.New(errors.IRV006, errors.PhaseIRVerify,
			fmt.Sprintf("function %q: branch to %q supplies %d arguments, block expects %d",
				fn.Name, target.Label, len(args), len(target.Args)),
			spanPtr(span), map[string]any{"function": fn.Name, "block": target.Label}))
	}
	return reports
}

func verifyCall(fn *Function, call *Call, te *types.Engine) []*errors.Report {
	var reports []*errors.Report
	if call.Callee == nil {
		return reports
	}
	if len(call.Args) != len(call.Callee.Params) {
		reports = append(reports, errors.New(errors.IRV003, errors.PhaseIRVerify,
			fmt.Sprintf("function %q: call to %q passes %d arguments, expects %d",
				fn.Name, call.Callee.Name, len(call.Args), len(call.Callee.Params)),
			spanPtr(call.Span()), map[string]any{"function": fn.Name, "callee": call.Callee.Name}))
		return reports
	}
	for i, a := range call.Args {
		want := call.Callee.Params[i].Value.Type
		if !types.Equal(a.Type, want) && a.Type != types.ErrorRecovery && want != types.ErrorRecovery {
			reports = append(reports, errors.New(errors.IRV003, errors.PhaseIRVerify,
				fmt.Sprintf("function %q: call to %q argument %d has type %s, expected %s",
					fn.Name, call.Callee.Name, i, te.String(a.Type), te.String(want)),
				spanPtr(call.Span()), map[string]any{"function": fn.Name, "callee": call.Callee.Name, "arg": i}))
		}
	}
	return reports
}

func spanOf(instr Instruction) ast.Span {
	if instr == nil {
		return ast.Span{}
	}
	return instr.Span()
}

func spanPtr(s ast.Span) *ast.Span { return &s }
