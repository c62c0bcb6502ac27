package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FuelLabs/sway-core-go/internal/errors"
	"github.com/FuelLabs/sway-core-go/internal/manifest"
)

func mustManifest(t *testing.T, name, kind string, deps ...string) *manifest.Manifest {
	t.Helper()
	depYAML := ""
	for _, d := range deps {
		depYAML += d + ":\n    path: ../" + d + "\n  "
	}
	data := []byte(`
project:
  name: ` + name + `
  kind: ` + kind + `
dependencies:
  ` + depYAML + `
`)
	m, err := manifest.Parse(data, "/tmp/"+name)
	require.NoError(t, err)
	return m
}

func TestBuildOrdersDependenciesBeforeDependents(t *testing.T) {
	manifests := map[string]*manifest.Manifest{
		"app": mustManifest(t, "app", "script", "lib"),
		"lib": mustManifest(t, "lib", "library"),
	}
	plan, result := Build(manifests, "app")
	require.True(t, result.OK())
	require.Len(t, plan.Units, 2)
	assert.Equal(t, "lib", plan.Units[0].Name)
	assert.Equal(t, "app", plan.Units[1].Name)
}

func TestBuildReportsMissingDependency(t *testing.T) {
	manifests := map[string]*manifest.Manifest{
		"app": mustManifest(t, "app", "script", "ghost"),
	}
	plan, result := Build(manifests, "app")
	assert.Nil(t, plan)
	require.False(t, result.OK())
	assert.Equal(t, errors.PLN002, result.Errors[0].Code)
}

func TestBuildReportsUnknownRoot(t *testing.T) {
	plan, result := Build(map[string]*manifest.Manifest{}, "app")
	assert.Nil(t, plan)
	require.False(t, result.OK())
	assert.Equal(t, errors.PLN002, result.Errors[0].Code)
}

func TestBuildDetectsDependencyCycle(t *testing.T) {
	manifests := map[string]*manifest.Manifest{
		"a": mustManifest(t, "a", "library", "b"),
		"b": mustManifest(t, "b", "library", "a"),
	}
	plan, result := Build(manifests, "a")
	assert.Nil(t, plan)
	require.False(t, result.OK())
	assert.Equal(t, errors.PLN001, result.Errors[0].Code)
}

func TestBuildSortsDependenciesDeterministically(t *testing.T) {
	manifests := map[string]*manifest.Manifest{
		"app": mustManifest(t, "app", "script", "zlib", "alib"),
		"zlib": mustManifest(t, "zlib", "library"),
		"alib": mustManifest(t, "alib", "library"),
	}
	plan, result := Build(manifests, "app")
	require.True(t, result.OK())
	last := plan.Units[len(plan.Units)-1]
	assert.Equal(t, "app", last.Name)
	assert.Equal(t, []string{"alib", "zlib"}, last.Dependencies)
}
