package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FuelLabs/sway-core-go/internal/ir"
	"github.com/FuelLabs/sway-core-go/internal/iranalysis"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

func TestDominatorDotRendersEdges(t *testing.T) {
	fn := ir.NewFunction("f", nil, types.Unit, false, nil)
	entry := fn.Entry()
	child := fn.NewBlock("next")
	entry.Append(&ir.Branch{Target: child})
	child.Append(&ir.Ret{Value: &ir.Value{Type: types.Unit, Kind: ir.ValConst, Const: &ir.Constant{Type: types.Unit, Kind: ir.ConstUnit}}})

	cache := iranalysis.NewCache()
	out := dominatorDot(fn, cache.DomTree(fn))

	assert.Contains(t, out, "digraph f_dom {")
	assert.Contains(t, out, `"entry" -> "next"`)
}
