package assemble

import (
	"testing"

	"github.com/milesvale/simmips/interp"
	"github.com/milesvale/simmips/parser"
)

func assembleSource(t *testing.T, src string) *Result {
	t.Helper()
	prog, err := parser.NewParser(src, "test.asm").Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	result, err := Assemble(prog)
	if err != nil {
		t.Fatalf("assemble error: %v", err)
	}
	return result
}

func TestDataLayoutWordAlignment(t *testing.T) {
	r := assembleSource(t, ".data\n.byte 1\nvalue: .word 1\n.text\nnop\n")
	// .byte 1 occupies offset 0; .word must pad to the next 4-byte
	// boundary, landing `value` at offset 4.
	if got := r.Memory.ReadWord(4); got != 1 {
		t.Errorf("word at offset 4 = %d, want 1", got)
	}
}

func TestLiSmallImmediateIsOneInstruction(t *testing.T) {
	r := assembleSource(t, ".text\nli $t0, 8\nli $t1, 1\nli $t2, -2\n")
	if len(r.Program.Instructions) != 3 {
		t.Fatalf("instruction count = %d, want 3 (one per li)", len(r.Program.Instructions))
	}
	if op := r.Program.Instructions[0].Op; op != interp.OpAddiu {
		t.Errorf("li 8 lowered to op %v, want addiu", op)
	}
	if imm := r.Program.Instructions[2].Imm; imm != -2 {
		t.Errorf("li -2 lowered with imm %d, want -2", imm)
	}
}

func TestLiLargeImmediateIsTwoInstructions(t *testing.T) {
	r := assembleSource(t, ".text\nli $t0, 0x12345678\nnop\n")
	if len(r.Program.Instructions) != 3 {
		t.Fatalf("instruction count = %d, want 3 (lui+ori, then nop)", len(r.Program.Instructions))
	}
	if op := r.Program.Instructions[0].Op; op != interp.OpLui {
		t.Errorf("first instruction op = %v, want lui", op)
	}
	if op := r.Program.Instructions[1].Op; op != interp.OpOri {
		t.Errorf("second instruction op = %v, want ori", op)
	}
}

func TestLaResolvesDataLabelAsSmallImmediate(t *testing.T) {
	r := assembleSource(t, ".data\nvalue: .word 1\n.text\nla $t0, value\n")
	if len(r.Program.Instructions) != 1 {
		t.Fatalf("la to a zero-offset data label should be one instruction, got %d", len(r.Program.Instructions))
	}
	if got := r.Program.Instructions[0].Imm; got != 0 {
		t.Errorf("la value imm = %d, want 0", got)
	}
}

func TestLaTextLabelEmitsBothCountedSlots(t *testing.T) {
	r := assembleSource(t, `.text
	la $t0, handler
	beq $zero, $zero, done
	nop
handler:
	nop
done:
	nop
`)
	// Pass 1 reserves two slots for la on a text label, so the layout is
	// lui, ori, beq, nop, handler's nop at 4, done's nop at 5. Pass 2
	// must emit both slots or everything after would shift.
	if len(r.Program.Instructions) != 6 {
		t.Fatalf("instruction count = %d, want 6", len(r.Program.Instructions))
	}
	if op := r.Program.Instructions[0].Op; op != interp.OpLui {
		t.Errorf("first instruction op = %v, want lui", op)
	}
	if op := r.Program.Instructions[1].Op; op != interp.OpOri {
		t.Errorf("second instruction op = %v, want ori", op)
	}
	if imm := r.Program.Instructions[1].Imm; imm != 4 {
		t.Errorf("ori imm = %d, want 4 (handler's instruction index)", imm)
	}
	if tgt := r.Program.Instructions[2].Target; tgt != 5 {
		t.Errorf("beq target = %d, want 5 (done's instruction index)", tgt)
	}
}

func TestBranchResolvesForwardLabel(t *testing.T) {
	r := assembleSource(t, ".text\nbeq $zero, $zero, done\nnop\ndone:\nnop\n")
	branch := r.Program.Instructions[0]
	if branch.Target != 2 {
		t.Errorf("branch target = %d, want 2", branch.Target)
	}
}

func TestUndefinedLabelIsLinkError(t *testing.T) {
	prog, err := parser.NewParser(".text\nj nowhere\n", "test.asm").Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	_, err = Assemble(prog)
	if err == nil {
		t.Fatal("expected a link error for an undefined label")
	}
}

func TestMoveAndNopLowerToCanonicalForms(t *testing.T) {
	r := assembleSource(t, ".text\nmove $t0, $t1\nnop\n")
	if op := r.Program.Instructions[0].Op; op != interp.OpAddu {
		t.Errorf("move lowered to op %v, want addu", op)
	}
	if op := r.Program.Instructions[1].Op; op != interp.OpSll {
		t.Errorf("nop lowered to op %v, want sll", op)
	}
}
