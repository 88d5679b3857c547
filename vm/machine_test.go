package vm

import "testing"

func TestRegisterZeroIsWired(t *testing.T) {
	m := NewMachine(0)
	m.SetRegister(0, 0xdeadbeef)
	if got := m.GetRegister(0); got != 0 {
		t.Errorf("GetRegister(0) = 0x%x, want 0", got)
	}
}

func TestRegisterRoundTrip(t *testing.T) {
	m := NewMachine(0)
	m.SetRegister(8, 0x12345678)
	if got := m.GetRegister(8); got != 0x12345678 {
		t.Errorf("GetRegister(8) = 0x%x, want 0x12345678", got)
	}
}

func TestStatusLifecycle(t *testing.T) {
	m := NewMachine(0)
	if m.Status() != Ready {
		t.Errorf("initial status = %q, want empty", m.Status())
	}
	m.Fail("divide by zero")
	if m.Status() != "divide by zero" {
		t.Errorf("status after Fail = %q", m.Status())
	}
	if !m.Halted {
		t.Error("Halted should be true after Fail")
	}
	m.Fail("second fault ignored")
	if m.Status() != "divide by zero" {
		t.Errorf("status changed after second Fail: %q", m.Status())
	}
}

func TestMemoryLittleEndianWord(t *testing.T) {
	m := NewMemory()
	m.WriteWord(8, 1)
	want := []uint8{0x01, 0x00, 0x00, 0x00}
	for i, w := range want {
		if got := m.ReadByte(uint32(8 + i)); got != w {
			t.Errorf("byte %d = 0x%02x, want 0x%02x", i, got, w)
		}
	}

	neg2 := int32(-2)
	m.WriteWord(12, uint32(neg2))
	want2 := []uint8{0xfe, 0xff, 0xff, 0xff}
	for i, w := range want2 {
		if got := m.ReadByte(uint32(12 + i)); got != w {
			t.Errorf("byte %d = 0x%02x, want 0x%02x", i, got, w)
		}
	}
}

func TestMemoryUnwrittenReadsZero(t *testing.T) {
	m := NewMemory()
	if got := m.ReadByte(1000); got != 0 {
		t.Errorf("unwritten byte = 0x%02x, want 0", got)
	}
}

func TestMachineAtEnd(t *testing.T) {
	m := NewMachine(3)
	m.PC = 3
	if !m.AtEnd() {
		t.Error("AtEnd() should be true when PC == NumInstructions")
	}
	m.PC = 2
	if m.AtEnd() {
		t.Error("AtEnd() should be false when PC < NumInstructions")
	}
}
