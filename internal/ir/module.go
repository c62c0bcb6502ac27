package ir

import "github.com/FuelLabs/sway-core-go/internal/ast"

// Module is the top-level IR unit: a kind inherited 1:1 from the typed
// tree's kind (spec §4.3 "Module kind"), an ordered function list, and a
// shared constant pool keyed by declaration name.
type Module struct {
	Kind      ast.Kind
	Name      string
	Functions []*Function
	Constants []*NamedConstant
}

// NewModule creates an empty module of the given kind.
func NewModule(kind ast.Kind, name string) *Module {
	return &Module{Kind: kind, Name: name}
}

// AddFunction appends fn to the module's function list, in emission order
// (spec §5 "Ordering": "basic-block emission" and by extension function
// emission preserve source order).
func (m *Module) AddFunction(fn *Function) {
	m.Functions = append(m.Functions, fn)
}

// AddConstant interns a named constant once per name, returning the
// existing entry if name was already lowered (spec §4.3 "Constants":
// "lowered into the IR constant pool once per name").
func (m *Module) AddConstant(name string, value *Constant) *NamedConstant {
	for _, c := range m.Constants {
		if c.Name == name {
			return c
		}
	}
	nc := &NamedConstant{Name: name, Value: value}
	m.Constants = append(m.Constants, nc)
	return nc
}

// GetFunction looks up a function by name.
func (m *Module) GetFunction(name string) (*Function, bool) {
	for _, f := range m.Functions {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}
