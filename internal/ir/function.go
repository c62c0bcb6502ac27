package ir

import (
	"fmt"

	"github.com/FuelLabs/sway-core-go/internal/types"
)

// Local is a named local variable, with an optional constant initializer
// (spec §3.4 "Function": "named local variables each with a type and
// optional constant initializer").
type Local struct {
	Name        string
	Type        types.TypeId
	Initializer *Constant
}

// FuncParam pairs a function parameter's declared name with its value —
// the entry block's implicit block arguments (spec §3.4: "The entry block
// has no predecessors and no block arguments other than the function
// parameters").
type FuncParam struct {
	Name  string
	Value *Value
}

// Function is one IR function: a name, parameter values, a return type,
// and an ordered list of basic blocks whose first is the entry block.
// Grounded on sway-ir's FunctionContent shape (original_source/sway-ir/src/
// function.rs), minus the arena-index indirection: Blocks/Locals/Params
// are owned directly rather than reached through a Context.
type Function struct {
	Name       string
	Params     []FuncParam
	ReturnType types.TypeId
	Blocks     []*Block
	Locals     []*Local
	IsPublic   bool
	Selector   *[4]byte

	nextVal   int
	nextLabel int
}

// ParamSpec names a to-be-created function parameter's declared name and
// type, the input to NewFunction.
type ParamSpec struct {
	Name string
	Type types.TypeId
}

// NewFunction creates a function with a single empty entry block, mirroring
// sway-ir's Function::new always pre-creating an "entry" block. params
// gives each parameter's declared name and type, in declaration order.
func NewFunction(name string, params []ParamSpec, returnType types.TypeId, isPublic bool, selector *[4]byte) *Function {
	f := &Function{Name: name, ReturnType: returnType, IsPublic: isPublic, Selector: selector}
	for _, p := range params {
		v := newValue(f.nextValueID(), ValBlockArg, p.Type)
		f.Params = append(f.Params, FuncParam{Name: p.Name, Value: v})
	}
	entry := &Block{Label: "entry", Func: f}
	f.Blocks = append(f.Blocks, entry)
	return f
}

// GetParam looks up a parameter value by name, grounded on sway-ir's
// Function::get_arg.
func (f *Function) GetParam(name string) (*Value, bool) {
	for _, p := range f.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

func (f *Function) nextValueID() int {
	id := f.nextVal
	f.nextVal++
	return id
}

// Entry returns the function's entry block (spec §3.4: "first is entry").
func (f *Function) Entry() *Block { return f.Blocks[0] }

// NewBlock appends a new block to the function with a unique label derived
// from hint, grounded on sway-ir's Function::get_unique_label.
func (f *Function) NewBlock(hint string) *Block {
	b := &Block{Label: f.UniqueLabel(hint), Func: f}
	f.Blocks = append(f.Blocks, b)
	return b
}

// UniqueLabel returns a label not already used by any block in f, appending
// a numeric suffix (derived from a monotonic counter, not retried against
// the existing set the way sway-ir recurses) when hint collides.
func (f *Function) UniqueLabel(hint string) string {
	if hint == "" {
		hint = "block"
	}
	used := false
	for _, b := range f.Blocks {
		if b.Label == hint {
			used = true
			break
		}
	}
	if !used {
		return hint
	}
	for {
		candidate := fmt.Sprintf("%s%d", hint, f.nextLabel)
		f.nextLabel++
		collide := false
		for _, b := range f.Blocks {
			if b.Label == candidate {
				collide = true
				break
			}
		}
		if !collide {
			return candidate
		}
	}
}

// NewValue mints a fresh instruction-result value of type t for the
// caller to attach to an instruction before appending it to a block.
func (f *Function) NewValue(t types.TypeId) *Value {
	return newValue(f.nextValueID(), ValInstr, t)
}

// NewLocal declares a named local, erroring if the name is already taken
// (sway-ir's Function::new_local_ptr has the identical one-shot contract;
// NewUniqueLocal below is the renaming variant for builder-synthesized
// temporaries).
func (f *Function) NewLocal(name string, t types.TypeId, init *Constant) (*Local, error) {
	for _, l := range f.Locals {
		if l.Name == name {
			return nil, fmt.Errorf("local %q already declared in function %q", name, f.Name)
		}
	}
	l := &Local{Name: name, Type: t, Initializer: init}
	f.Locals = append(f.Locals, l)
	return l, nil
}

// NewUniqueLocal declares a local using name as a hint, appending a
// numeric suffix until it no longer collides — grounded on sway-ir's
// Function::new_unique_local_ptr, used by argument demotion (spec §4.4.2)
// to synthesize per-call-site spill temporaries.
func (f *Function) NewUniqueLocal(hint string, t types.TypeId, init *Constant) *Local {
	name := hint
	for n := 0; f.hasLocal(name); n++ {
		name = fmt.Sprintf("%s%d", hint, n)
	}
	l := &Local{Name: name, Type: t, Initializer: init}
	f.Locals = append(f.Locals, l)
	return l
}

func (f *Function) hasLocal(name string) bool {
	for _, l := range f.Locals {
		if l.Name == name {
			return true
		}
	}
	return false
}

// GetLocal looks up a declared local by name.
func (f *Function) GetLocal(name string) (*Local, bool) {
	for _, l := range f.Locals {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

// ReplaceValue rewrites old to new across every block of the function,
// grounded on sway-ir's Function::replace_value.
func (f *Function) ReplaceValue(old, new *Value) {
	for _, b := range f.Blocks {
		b.ReplaceValue(old, new)
	}
}
