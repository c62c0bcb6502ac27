package main

import (
	"fmt"
	"path/filepath"

	"github.com/FuelLabs/sway-core-go/internal/manifest"
	"github.com/FuelLabs/sway-core-go/internal/planning"
)

// manifestFile is the name of the package manifest a directory argument is
// expected to contain, mirroring forc's Forc.toml convention.
const manifestFile = "sway.yaml"

// loadPlan reads the manifest at dir's root, follows every dependency's
// declared path transitively, and hands the resulting manifest set to
// internal/planning.Build. This is the dependency *resolution* spec §1
// explicitly keeps out of the core (manifest path-following is a driver
// concern); the core only ever sees the Plan this produces.
func loadPlan(dir string) (*planning.Plan, error) {
	manifests := map[string]*manifest.Manifest{}
	var rootName string

	var load func(path string) error
	load = func(path string) error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		m, err := manifest.Load(filepath.Join(abs, manifestFile))
		if err != nil {
			return err
		}
		if rootName == "" {
			rootName = m.Project.Name
		}
		if _, seen := manifests[m.Project.Name]; seen {
			return nil
		}
		manifests[m.Project.Name] = m
		for _, dep := range m.Dependencies {
			if err := load(filepath.Join(abs, dep.Path)); err != nil {
				return fmt.Errorf("loading dependency %q: %w", dep.Name, err)
			}
		}
		return nil
	}
	if err := load(dir); err != nil {
		return nil, err
	}

	plan, result := planning.Build(manifests, rootName)
	if !result.OK() {
		return nil, fmt.Errorf("%d planning error(s); first: %s", len(result.Errors), result.Errors[0].Message)
	}
	return plan, nil
}
