// Package controller exposes the narrow facade the REPL and TUI front
// ends drive: load a program, step it, and read back registers, memory,
// and status. It owns the one machine instance for the session and is the
// sole path through which anything mutates it.
package controller

import (
	"fmt"
	"os"

	"github.com/milesvale/simmips/assemble"
	"github.com/milesvale/simmips/interp"
	"github.com/milesvale/simmips/parser"
	"github.com/milesvale/simmips/vm"
)

// Controller mediates all access to one loaded program's machine state.
type Controller struct {
	machine *vm.Machine
	program *interp.Program
	Trace   *vm.ExecutionTrace
	Stats   *vm.PerformanceStatistics

	// MaxSteps, when non-zero, bounds the total number of steps this
	// session may execute before the machine is failed with a step-limit
	// status. Zero means unlimited.
	MaxSteps uint64
	steps    uint64
}

// New creates a controller with no program loaded yet.
func New() *Controller {
	return &Controller{}
}

// Load reads path, runs it through the lexer/parser/assembler, and
// installs the resulting machine image. On any failure the controller's
// existing state (if any) is left untouched and a human-readable error is
// returned; a failed load never half-constructs a machine.
func (c *Controller) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}

	prog, err := parser.NewParser(string(data), path).Parse()
	if err != nil {
		return err
	}

	result, err := assemble.Assemble(prog)
	if err != nil {
		return err
	}

	machine := vm.NewMachine(len(result.Program.Instructions))
	machine.Memory = result.Memory

	c.machine = machine
	c.program = result.Program
	c.steps = 0
	return nil
}

// Loaded reports whether a program has been successfully loaded.
func (c *Controller) Loaded() bool {
	return c.machine != nil
}

// Step advances the machine by exactly one instruction (a no-op if halted
// or already run off the end) and returns the resulting pc.
func (c *Controller) Step() uint32 {
	if c.MaxSteps > 0 && c.steps >= c.MaxSteps {
		c.machine.Fail(fmt.Sprintf("step limit of %d exceeded", c.MaxSteps))
		return c.machine.PC
	}
	before := c.machine.PC
	interp.Step(c.machine, c.program)
	c.steps++
	if c.Trace != nil || c.Stats != nil {
		c.recordStep(before)
	}
	return c.machine.PC
}

func (c *Controller) recordStep(pc uint32) {
	mnemonic := "-"
	if int(pc) < len(c.program.Instructions) {
		mnemonic = c.program.Instructions[pc].Mnemonic
	}
	if c.Stats != nil {
		c.Stats.RecordStep(mnemonic)
	}
	if c.Trace != nil {
		c.Trace.Record(pc, mnemonic, nil)
	}
}

// ReadRegister resolves name (an alias, decimal index, or "pc"/"hi"/"lo")
// and returns its current value.
func (c *Controller) ReadRegister(name string) (uint32, error) {
	switch name {
	case "pc":
		return c.machine.PC, nil
	case "hi":
		return c.machine.HI, nil
	case "lo":
		return c.machine.LO, nil
	}
	idx, ok := parser.ResolveGPR(name)
	if !ok {
		return 0, fmt.Errorf("unknown register %q", name)
	}
	return c.machine.GetRegister(idx), nil
}

// ReadMemoryByte returns the byte at addr.
func (c *Controller) ReadMemoryByte(addr uint32) uint8 {
	return c.machine.Memory.ReadByte(addr)
}

// Status returns the empty string while the machine is ready, or the
// failure description once it has halted on a fault.
func (c *Controller) Status() string {
	return string(c.machine.Status())
}

// NumInstructions returns the length of the loaded (post pseudo-expansion)
// instruction vector.
func (c *Controller) NumInstructions() int {
	return len(c.program.Instructions)
}

// InstructionMnemonic returns the mnemonic of the real instruction at
// index i, for listings. Out-of-range indices return the empty string.
func (c *Controller) InstructionMnemonic(i int) string {
	if i < 0 || i >= len(c.program.Instructions) {
		return ""
	}
	return c.program.Instructions[i].Mnemonic
}

// DataSize returns the extent of the populated data section in bytes.
func (c *Controller) DataSize() int {
	return c.machine.Memory.Size()
}
