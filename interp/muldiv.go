package interp

import "github.com/milesvale/simmips/vm"

// execMulDiv covers mult, multu, div, divu and the hi/lo register movers.
func execMulDiv(m *vm.Machine, inst *Instruction) {
	switch inst.Op {
	case OpMult:
		product := int64(int32(m.GetRegister(inst.Rs))) * int64(int32(m.GetRegister(inst.Rt)))
		m.HI = uint32(uint64(product) >> 32)
		m.LO = uint32(uint64(product))
	case OpMultu:
		product := uint64(m.GetRegister(inst.Rs)) * uint64(m.GetRegister(inst.Rt))
		m.HI = uint32(product >> 32)
		m.LO = uint32(product)
	case OpDiv:
		divisor := int32(m.GetRegister(inst.Rt))
		if divisor == 0 {
			m.Fail((&vm.Fault{Kind: vm.FaultDivideByZero, At: m.PC, Message: "division by zero"}).String())
			return
		}
		dividend := int32(m.GetRegister(inst.Rs))
		// Go's / and % both truncate toward zero, matching MIPS div's
		// quotient-toward-zero and sign-of-dividend remainder.
		m.LO = uint32(dividend / divisor)
		m.HI = uint32(dividend % divisor)
	case OpDivu:
		divisor := m.GetRegister(inst.Rt)
		if divisor == 0 {
			m.Fail((&vm.Fault{Kind: vm.FaultDivideByZero, At: m.PC, Message: "division by zero"}).String())
			return
		}
		dividend := m.GetRegister(inst.Rs)
		m.LO = dividend / divisor
		m.HI = dividend % divisor
	case OpMfhi:
		m.SetRegister(inst.Rd, m.HI)
	case OpMflo:
		m.SetRegister(inst.Rd, m.LO)
	case OpMthi:
		m.HI = m.GetRegister(inst.Rs)
	case OpMtlo:
		m.LO = m.GetRegister(inst.Rs)
	}
}
