package typecheck

import (
	"fmt"

	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/errors"
	"github.com/FuelLabs/sway-core-go/internal/typedast"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// withEnv returns a shallow copy of cc scoped to e, leaving cc itself
// unmodified so sibling branches (e.g. if/else) don't see each other's
// locals.
func (cc *ctx) withEnv(e *env) *ctx {
	next := *cc
	next.env = e
	return &next
}

// checkBlock type-checks b's statements in order, threading a fresh child
// scope through sequential let-bindings (spec §3.3, §4.3 "implicit
// return"): the block's own type is its trailing implicit expression's
// type, or unit.
func (c *Checker) checkBlock(b *ast.Block, cc *ctx, expected types.TypeId) *typedast.Block {
	scope := cc.withEnv(newEnv(cc.env))
	out := &typedast.Block{BSpan: b.Span()}
	for _, s := range b.Stmts {
		out.Stmts = append(out.Stmts, c.checkStmt(s, scope))
	}
	if b.Implicit != nil {
		out.Implicit = c.checkExpr(b.Implicit, scope, expected)
	}
	return out
}

func (c *Checker) checkStmt(s ast.Stmt, cc *ctx) typedast.Stmt {
	switch v := s.(type) {
	case *ast.LetStmt:
		var declared types.TypeId
		if v.Type != nil {
			declared = c.resolveType(v.Type, cc.module, cc.generics)
		} else {
			declared = types.ErrorRecovery
		}
		val := c.checkExpr(v.Value, cc, declared)
		t := val.ReturnType()
		if declared != types.ErrorRecovery {
			t = declared
		}
		cc.env.bind(v.Name, t)
		return &typedast.LetStmt{StmtBase: typedast.StmtBase{SSpan: v.Span()}, Name: v.Name, Type: t, Value: val}

	case *ast.ExprStmt:
		return &typedast.ExprStmt{StmtBase: typedast.StmtBase{SSpan: v.Span()}, Value: c.checkExpr(v.X, cc, types.ErrorRecovery)}

	case *ast.AssignStmt:
		switch target := v.Target.(type) {
		case *ast.StorageReadExpr:
			if !cc.purity.MayWrite() {
				c.errf(errors.PUR002, errors.PhasePurity, fmt.Sprintf("function %q is not declared to write storage", cc.fnName), v.Span(), nil)
			}
			expected := types.ErrorRecovery
			for m := cc.module; m != nil; m = m.Parent {
				if m.Storage == nil {
					continue
				}
				for _, f := range m.Storage.Fields {
					if f.Name == target.Field {
						expected = f.Type
					}
				}
			}
			val := c.checkExpr(v.Value, cc, expected)
			c.expectType(val.ReturnType(), expected, v.Span(), fmt.Sprintf("storage field %q", target.Field))
			return &typedast.AssignStmt{StmtBase: typedast.StmtBase{SSpan: v.Span()}, Target: "storage." + target.Field, Value: val}
		case *ast.VarExpr:
			if len(target.Path) != 1 {
				c.errf(errors.INT001, errors.PhaseInternal, "assignment target must be a local name", v.Span(), nil)
				return &typedast.ExprStmt{StmtBase: typedast.StmtBase{SSpan: v.Span()}, Value: c.checkExpr(v.Value, cc, types.ErrorRecovery)}
			}
			expected, ok := cc.env.lookup(target.Path[0])
			if !ok {
				c.errf(errors.RES001, errors.PhaseResolve, fmt.Sprintf("unknown local %q", target.Path[0]), v.Span(), nil)
				expected = types.ErrorRecovery
			}
			val := c.checkExpr(v.Value, cc, expected)
			c.expectType(val.ReturnType(), expected, v.Span(), fmt.Sprintf("assignment to %q", target.Path[0]))
			return &typedast.AssignStmt{StmtBase: typedast.StmtBase{SSpan: v.Span()}, Target: target.Path[0], Value: val}
		default:
			c.errf(errors.INT001, errors.PhaseInternal, "unsupported assignment target", v.Span(), nil)
			return &typedast.ExprStmt{StmtBase: typedast.StmtBase{SSpan: v.Span()}, Value: c.checkExpr(v.Value, cc, types.ErrorRecovery)}
		}

	default:
		c.errf(errors.INT001, errors.PhaseInternal, fmt.Sprintf("unexpected statement %T", s), s.Span(), nil)
		return &typedast.ExprStmt{StmtBase: typedast.StmtBase{SSpan: s.Span()}}
	}
}
