package codegen

import "fmt"

// VReg is a virtual register: instruction selection mints an unbounded
// supply of these, and internal/regalloc is responsible for mapping them
// down onto the fixed physical set. Grounded on asm_lang's VirtualRegister
// (original_source/sway-core/src/asm_generation/abstract_instruction_set.rs
// operates entirely in terms of it) — simplified from Rust's
// Virtual(u32)/Constant(ConstantRegister) two-variant enum to a single int
// id space: RegSequencer mints non-negative ids, and negative values are
// reserved for NoReg and the frame/stack-pointer pseudo-registers declared
// in select.go. This package has no need for named constant registers
// (zero/one/program-counter are addressed directly as PhysReg values,
// never contended for during allocation).
type VReg int

func (v VReg) String() string { return fmt.Sprintf("v%d", int(v)) }

// RegSequencer hands out fresh virtual registers in increasing order,
// mirroring sway-core's RegisterSequencer.
type RegSequencer struct{ next int }

func (s *RegSequencer) Next() VReg {
	v := VReg(s.next)
	s.next++
	return v
}

// PhysReg is a physical register assigned by internal/regalloc.
type PhysReg int

// NumAllocatable is the number of general-purpose registers available to
// the allocator (k in spec §4.5 step 4's "k = number of allocatable
// physical registers"). The target register-based VM reserves a handful of
// fixed-purpose registers (zero, one, overflow, program counter, stack
// pointer, frame pointer, heap pointer, error, return value, return
// length, flags and a few more); 48 of its 64 general registers remain
// free for the allocator. This is a fixed architectural constant of the
// target VM, not derived from the IR or from spec.md, so it is recorded
// here rather than made configurable.
const NumAllocatable = 48

func (p PhysReg) String() string { return fmt.Sprintf("$r%d", int(p)) }
