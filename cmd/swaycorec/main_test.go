package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FuelLabs/sway-core-go/internal/codegen"
	"github.com/FuelLabs/sway-core-go/internal/pipeline"
	"github.com/FuelLabs/sway-core-go/internal/regalloc"
	"github.com/FuelLabs/sway-core-go/testutil"
)

func writeManifest(t *testing.T, dir, name, kind string, deps map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	content := "project:\n  name: " + name + "\n  kind: " + kind + "\ndependencies:\n"
	for depName, depPath := range deps {
		content += "  " + depName + ":\n    path: " + depPath + "\n"
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, manifestFile), []byte(content), 0o644))
}

func TestLoadPlanOrdersTransitiveDependencies(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, filepath.Join(root, "app"), "app", "script", map[string]string{"lib": "../lib"})
	writeManifest(t, filepath.Join(root, "lib"), "lib", "library", nil)

	plan, err := loadPlan(filepath.Join(root, "app"))

	require.NoError(t, err)
	require.Len(t, plan.Units, 2)
	assert.Equal(t, "lib", plan.Units[0].Name)
	assert.Equal(t, "app", plan.Units[1].Name)
}

func TestLoadPlanReportsMissingManifest(t *testing.T) {
	root := t.TempDir()

	_, err := loadPlan(root)

	require.Error(t, err)
}

func TestDumpAssemblyRendersMnemonics(t *testing.T) {
	fns := []pipeline.CompiledFunction{
		{
			Name: "add_one",
			Ops: []regalloc.AllocatedOp{
				{Opcode: codegen.OpMovi, Dest: 0, Imm: 1},
				{Opcode: codegen.OpAdd, Dest: 1, Src1: 0, Src2: 2},
				{Opcode: codegen.OpRet, Src1: 1},
			},
		},
	}

	out := dumpAssembly(fns)

	assert.Contains(t, out, "fn add_one:")
	assert.Contains(t, out, "MOVI")
	assert.Contains(t, out, "ADD")
	assert.Contains(t, out, "RET")
}

func TestDumpAssemblyMatchesGolden(t *testing.T) {
	fns := []pipeline.CompiledFunction{
		{
			Name: "add_one",
			Ops: []regalloc.AllocatedOp{
				{Opcode: codegen.OpMovi, Dest: 0, Imm: 1},
				{Opcode: codegen.OpAdd, Dest: 1, Src1: 0, Src2: 2},
				{Opcode: codegen.OpRet, Src1: 1},
			},
		},
	}

	testutil.CompareTextGolden(t, "asm", "add_one", dumpAssembly(fns))
}

func TestDumpOpRendersLabelLine(t *testing.T) {
	out := dumpOp(regalloc.AllocatedOp{Label: "loop_start"})
	assert.Equal(t, "loop_start:", out)
}

func TestParseSourceDefaultReportsUnwiredParser(t *testing.T) {
	_, err := parseSource("foo.sw", []byte("contract;"))
	require.Error(t, err)
}
