package controller_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milesvale/simmips/controller"
)

func load(t *testing.T, src string) *controller.Controller {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.asm")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	ctrl := controller.New()
	require.NoError(t, ctrl.Load(path))
	return ctrl
}

func TestLoadMissingFile(t *testing.T) {
	ctrl := controller.New()
	err := ctrl.Load("/there/is/no/such/file")
	require.Error(t, err)
	assert.False(t, ctrl.Loaded(), "failed load must not construct a machine")
}

func TestLoadBadSourceLeavesControllerEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.asm")
	require.NoError(t, os.WriteFile(path, []byte(".text\nfrobnicate $t0\n"), 0o644))
	ctrl := controller.New()
	require.Error(t, ctrl.Load(path))
	assert.False(t, ctrl.Loaded())
}

// Empty program: every register reads zero, a step is a benign no-op.
func TestEmptyProgram(t *testing.T) {
	ctrl := load(t, "\n")

	assert.Empty(t, ctrl.Status())
	for _, name := range []string{"zero", "t0", "sp", "ra", "pc", "hi", "lo", "0", "31"} {
		val, err := ctrl.ReadRegister(name)
		require.NoError(t, err, "register %s", name)
		assert.Equal(t, uint32(0), val, "register %s after load", name)
	}

	assert.Equal(t, uint32(0), ctrl.Step(), "step past the end keeps pc at 0")
	assert.Empty(t, ctrl.Status(), "benign halt is not a fault")
}

// Data layout plus single-step li/la/lw effects, mirroring the word-at-8 /
// word-at-12 image: each instruction takes exactly one step for small
// immediates.
func TestDataAndImmediateLoads(t *testing.T) {
	ctrl := load(t, `.data
	.space 8
w1:	.word 1
w2:	.word -2
.text
	la $t0, w1
	lw $t2, 0($t0)
	la $t1, w2
	lw $t3, 0($t1)
	li $t4, -2
`)

	// Pre-run: little-endian byte decomposition of both words.
	wantBytes := map[uint32]uint8{
		8: 0x01, 9: 0x00, 10: 0x00, 11: 0x00,
		12: 0xfe, 13: 0xff, 14: 0xff, 15: 0xff,
	}
	for addr, want := range wantBytes {
		assert.Equal(t, want, ctrl.ReadMemoryByte(addr), "byte at %d", addr)
	}

	steps := []struct {
		reg  string
		want uint32
	}{
		{"t0", 8},
		{"t2", 1},
		{"t1", 12},
		{"t3", 0xfffffffe},
		{"t4", 0xfffffffe},
	}
	for i, s := range steps {
		pc := ctrl.Step()
		require.Equal(t, uint32(i+1), pc, "pc after step %d", i+1)
		val, err := ctrl.ReadRegister(s.reg)
		require.NoError(t, err)
		assert.Equal(t, s.want, val, "$%s after step %d", s.reg, i+1)
	}
}

// Unconditional jump scenario: pc trace 1, 3, 4, 0 with no delay slot.
func TestJumpTrace(t *testing.T) {
	ctrl := load(t, `.text
start:	nop
	j mid
	nop
mid:	nop
	j start
`)

	for _, want := range []uint32{1, 3, 4, 0} {
		assert.Equal(t, want, ctrl.Step())
	}
	assert.Empty(t, ctrl.Status())
}

// Taken and untaken conditional branches interleave through a ladder the
// way the branch-taxonomy trace does: a taken branch skips one slot, an
// untaken one falls through.
func TestBranchLadder(t *testing.T) {
	ctrl := load(t, `.text
	li $t0, 1
	bgtz $t0, a
	nop
a:	blez $t0, b
	nop
b:	nop
`)

	assert.Equal(t, uint32(1), ctrl.Step(), "li falls through")
	assert.Equal(t, uint32(3), ctrl.Step(), "bgtz on positive is taken")
	assert.Equal(t, uint32(4), ctrl.Step(), "blez on positive falls through")
	assert.Equal(t, uint32(5), ctrl.Step(), "nop falls through")
	assert.Equal(t, uint32(6), ctrl.Step(), "final nop reaches the end")

	// Terminal: further steps leave pc parked at the end.
	assert.Equal(t, uint32(6), ctrl.Step())
	assert.Equal(t, uint32(6), ctrl.Step())
	assert.Empty(t, ctrl.Status())
}

func TestRuntimeFaultIsSticky(t *testing.T) {
	ctrl := load(t, `.text
	li $t0, 1
	li $t1, 0
	div $t0, $t1
	nop
`)

	ctrl.Step()
	ctrl.Step()
	require.Empty(t, ctrl.Status())

	pcBefore, err := ctrl.ReadRegister("pc")
	require.NoError(t, err)
	ctrl.Step()
	assert.NotEmpty(t, ctrl.Status(), "divide by zero must set a failure status")

	pcAfter, err := ctrl.ReadRegister("pc")
	require.NoError(t, err)
	assert.Equal(t, pcBefore, pcAfter, "a faulting step leaves pc unchanged")

	ctrl.Step()
	pcStuck, err := ctrl.ReadRegister("pc")
	require.NoError(t, err)
	assert.Equal(t, pcAfter, pcStuck, "steps after a fault are no-ops")
}

func TestReadRegisterUnknownName(t *testing.T) {
	ctrl := load(t, ".text\nnop\n")
	_, err := ctrl.ReadRegister("bogus")
	assert.Error(t, err)
	_, err = ctrl.ReadRegister("32")
	assert.Error(t, err)
}

func TestStepLimit(t *testing.T) {
	ctrl := load(t, `.text
loop:	j loop
`)
	ctrl.MaxSteps = 3

	ctrl.Step()
	ctrl.Step()
	ctrl.Step()
	require.Empty(t, ctrl.Status(), "limit not yet reached")

	ctrl.Step()
	assert.Contains(t, ctrl.Status(), "step limit", "exceeding the limit fails the machine")
}

func TestProgramIntrospection(t *testing.T) {
	ctrl := load(t, ".data\n.word 1\n.text\nmove $t0, $t1\nnop\n")

	assert.Equal(t, 2, ctrl.NumInstructions())
	assert.Equal(t, "addu", ctrl.InstructionMnemonic(0), "move lowers to addu")
	assert.Equal(t, "sll", ctrl.InstructionMnemonic(1), "nop lowers to sll")
	assert.Equal(t, "", ctrl.InstructionMnemonic(5))
	assert.Equal(t, 4, ctrl.DataSize())
}
