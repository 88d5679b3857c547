// Package interp fetches and executes the resolved instruction vector that
// the assemble package produces, mutating a *vm.Machine one step at a time.
package interp

// Op identifies one real (post pseudo-expansion) opcode. Every variant
// carries its own decoded operands in the surrounding Instruction struct;
// dispatch is a single switch over Op, per the tagged-variant design used
// throughout this VM's data model.
type Op int

const (
	OpAdd Op = iota
	OpAddu
	OpAddi
	OpAddiu
	OpSub
	OpSubu
	OpAnd
	OpAndi
	OpOr
	OpOri
	OpXor
	OpXori
	OpNor
	OpSll
	OpSrl
	OpSra
	OpSllv
	OpSrlv
	OpSrav
	OpSlt
	OpSltu
	OpSlti
	OpSltiu
	OpMult
	OpMultu
	OpDiv
	OpDivu
	OpMfhi
	OpMflo
	OpMthi
	OpMtlo
	OpLw
	OpLh
	OpLhu
	OpLb
	OpLbu
	OpSw
	OpSh
	OpSb
	OpLui
	OpJ
	OpJal
	OpJr
	OpJalr
	OpBeq
	OpBne
	OpBgez
	OpBgtz
	OpBlez
	OpBltz
	OpBgezal
	OpBltzal
)

// Instruction is the resolved, decoded form the assembler emits into the
// instruction vector. Register fields that a given Op does not use are
// simply left zero; Mnemonic is kept only for tracing/error messages, never
// for dispatch.
type Instruction struct {
	Op       Op
	Mnemonic string

	Rs, Rt, Rd int
	Shamt      uint8
	Imm        int32  // sign-extended immediate, already range-checked by the parser
	Target     uint32 // resolved instruction index (branch/jump) or byte address (la-derived loads, unused here)
}
