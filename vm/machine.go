// Package vm holds the MIPS32-subset machine state: the register file,
// byte-addressable memory, and the program counter plus hi/lo multiply and
// divide registers. It has no notion of instruction semantics; that lives
// in the interp package, which mutates a *Machine one step at a time.
package vm

// Status is empty while the machine is running normally and holds a
// descriptive failure string once a runtime fault has halted it.
type Status string

// Ready is the empty status reported while the machine has not faulted.
const Ready Status = ""

// Machine is the complete state of a loaded program: registers, memory,
// and the instruction vector's program counter. It is created once at
// load time and mutated only by single steps thereafter.
type Machine struct {
	regs [32]uint32
	PC   uint32
	HI   uint32
	LO   uint32

	Memory *Memory

	// NumInstructions is the length of the (post pseudo-expansion)
	// instruction vector that Interp dispatches against. PC running off
	// the end (PC == NumInstructions) is the benign halt state.
	NumInstructions uint32

	status Status
	Halted bool
}

// NewMachine creates a machine with all registers and memory zeroed.
func NewMachine(numInstructions int) *Machine {
	return &Machine{
		Memory:          NewMemory(),
		NumInstructions: uint32(numInstructions),
	}
}

// GetRegister reads general-purpose register r (0..31). Register 0 always
// reads as 0.
func (m *Machine) GetRegister(r int) uint32 {
	if r < 0 || r > 31 {
		return 0
	}
	return m.regs[r]
}

// SetRegister writes general-purpose register r. Writes to register 0 are
// silently discarded, modeling $zero as a write-gate rather than special
// casing every instruction that targets it.
func (m *Machine) SetRegister(r int, v uint32) {
	if r <= 0 || r > 31 {
		return
	}
	m.regs[r] = v
}

// Status reports the current failure string, or Ready if the machine has
// not faulted.
func (m *Machine) Status() Status {
	return m.status
}

// Fail transitions the machine to the failed state with the given message.
// Once failed the machine is halted: further calls are no-ops, reporting
// the first fault's message.
func (m *Machine) Fail(message string) {
	if m.Halted {
		return
	}
	m.status = Status(message)
	m.Halted = true
}

// AtEnd reports whether PC has run off the end of the instruction vector,
// the benign terminal state in which status remains Ready.
func (m *Machine) AtEnd() bool {
	return m.PC >= m.NumInstructions
}
