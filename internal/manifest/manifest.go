// Package manifest provides types and loading for the package manifest the
// driver hands to the core: program kind, name, dependency list, and the
// source directory the declared sources live under. The core never
// resolves dependencies itself (that is a driver concern per spec §1); it
// only needs a read-only view of the manifest to seed a compile unit's
// namespace and to validate the program-kind / source-set invariants.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// SchemaVersion identifies the manifest format this package understands.
const SchemaVersion = "sway-core-go.manifest/v1"

// Kind is the program flavor declared by a manifest's [project] section.
type Kind string

const (
	KindScript    Kind = "script"
	KindPredicate Kind = "predicate"
	KindContract  Kind = "contract"
	KindLibrary   Kind = "library"
)

// Valid reports whether k is one of the four flavors the core understands.
func (k Kind) Valid() bool {
	switch k {
	case KindScript, KindPredicate, KindContract, KindLibrary:
		return true
	default:
		return false
	}
}

// Dependency is one entry of a manifest's [dependencies] table. Only the
// fields the core cares about (the local name a dependency is imported
// under, and where its own manifest lives) are kept — version/git/registry
// resolution is entirely a driver-level concern.
type Dependency struct {
	Name string `yaml:"-"`
	Path string `yaml:"path"`
}

// Project is the `[project]` section of a manifest.
type Project struct {
	Name         string `yaml:"name"`
	Kind         Kind   `yaml:"kind"`
	Entry        string `yaml:"entry"`
	ImplicitStd  *bool  `yaml:"implicit-std"`
	SourceGlobs  []string `yaml:"src"`
}

// rawManifest mirrors the on-disk YAML shape; Dependencies is a map so that
// `name: {path: ...}` reads naturally, and is flattened into a slice with
// names attached after decoding.
type rawManifest struct {
	Project      Project               `yaml:"project"`
	Dependencies map[string]Dependency `yaml:"dependencies"`
}

// Manifest is the parsed, validated form of a package manifest.
type Manifest struct {
	Project      Project
	Dependencies []Dependency

	// dir is the directory the manifest file was read from; dependency
	// paths and source globs are resolved relative to it.
	dir string
}

// Load reads and validates a manifest file at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse decodes manifest YAML bytes; dir anchors relative paths (dependency
// paths, source globs) found within it.
func Parse(data []byte, dir string) (*Manifest, error) {
	var raw rawManifest
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("manifest: parse: %w", err)
	}

	m := &Manifest{Project: raw.Project, dir: dir}
	for name, dep := range raw.Dependencies {
		dep.Name = name
		m.Dependencies = append(m.Dependencies, dep)
	}
	// Deterministic order: dependency iteration must never depend on Go's
	// randomized map order, per spec §5 ("hash-map iteration is not used
	// for any ordering-sensitive output").
	sortDependencies(m.Dependencies)

	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func sortDependencies(deps []Dependency) {
	for i := 1; i < len(deps); i++ {
		for j := i; j > 0 && deps[j].Name < deps[j-1].Name; j-- {
			deps[j], deps[j-1] = deps[j-1], deps[j]
		}
	}
}

func (m *Manifest) validate() error {
	if m.Project.Name == "" {
		return fmt.Errorf("manifest: project.name is required")
	}
	if !m.Project.Kind.Valid() {
		return fmt.Errorf("manifest: project.kind %q is not one of script/predicate/contract/library", m.Project.Kind)
	}
	if m.Project.Entry == "" {
		m.Project.Entry = "main.sw"
	}
	for _, dep := range m.Dependencies {
		if dep.Path == "" {
			return fmt.Errorf("manifest: dependency %q has no path", dep.Name)
		}
	}
	return nil
}

// ImplicitStd reports whether the std library should be implicitly seeded
// into this unit's namespace. Defaults to true; the driver, not the core,
// decides whether to honor it (spec §6.2).
func (m *Manifest) ImplicitStd() bool {
	if m.Project.ImplicitStd == nil {
		return true
	}
	return *m.Project.ImplicitStd
}

// SourceFiles expands the manifest's declared source globs (default
// "**/*.sw") against the manifest's directory, returning paths in
// deterministic sorted order.
func (m *Manifest) SourceFiles() ([]string, error) {
	globs := m.Project.SourceGlobs
	if len(globs) == 0 {
		globs = []string{"**/*.sw"}
	}
	seen := map[string]bool{}
	var out []string
	for _, g := range globs {
		matches, err := doublestar.Glob(os.DirFS(m.dir), g)
		if err != nil {
			return nil, fmt.Errorf("manifest: bad source glob %q: %w", g, err)
		}
		for _, rel := range matches {
			full := filepath.Join(m.dir, rel)
			if !seen[full] {
				seen[full] = true
				out = append(out, full)
			}
		}
	}
	sortStrings(out)
	return out, nil
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// Dir returns the directory the manifest was loaded from.
func (m *Manifest) Dir() string { return m.dir }
