package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinimal(t *testing.T) {
	data := []byte(`
project:
  name: my_script
  kind: script
`)
	m, err := Parse(data, "/tmp/my_script")
	require.NoError(t, err)
	assert.Equal(t, "my_script", m.Project.Name)
	assert.Equal(t, KindScript, m.Project.Kind)
	assert.Equal(t, "main.sw", m.Project.Entry)
	assert.True(t, m.ImplicitStd())
}

func TestParseRejectsBadKind(t *testing.T) {
	data := []byte(`
project:
  name: x
  kind: bogus
`)
	_, err := Parse(data, "/tmp/x")
	require.Error(t, err)
}

func TestParseRejectsMissingName(t *testing.T) {
	data := []byte(`
project:
  kind: library
`)
	_, err := Parse(data, "/tmp/x")
	require.Error(t, err)
}

func TestDependenciesSortedByName(t *testing.T) {
	data := []byte(`
project:
  name: p
  kind: library
dependencies:
  zeta:
    path: ../zeta
  alpha:
    path: ../alpha
`)
	m, err := Parse(data, "/tmp/p")
	require.NoError(t, err)
	require.Len(t, m.Dependencies, 2)
	assert.Equal(t, "alpha", m.Dependencies[0].Name)
	assert.Equal(t, "zeta", m.Dependencies[1].Name)
}

func TestImplicitStdFalse(t *testing.T) {
	f := false
	m := &Manifest{Project: Project{Name: "p", Kind: KindLibrary, ImplicitStd: &f}}
	assert.False(t, m.ImplicitStd())
}
