// Package assemble performs the two-pass layout and resolution that turns
// a parsed parser.Program into a loaded machine image: a populated
// vm.Memory for the data section and a resolved interp.Program for the
// text section, with every label operand replaced by a concrete address.
package assemble

import (
	"github.com/milesvale/simmips/interp"
	"github.com/milesvale/simmips/parser"
	"github.com/milesvale/simmips/vm"
)

// Result is the loaded machine image an assembled program produces.
type Result struct {
	Memory   *vm.Memory
	Program  *interp.Program
	DataSize int
}

// Assemble runs pass 1 (layout) and pass 2 (resolve) over prog. It never
// partially constructs a machine image on error, returning either a
// complete Result or the accumulated errors.
func Assemble(prog *parser.Program) (*Result, error) {
	a := &assembler{program: prog}

	memory, dataAddrAtIndex := layoutData(prog.Data)

	dataAddr := make(map[string]uint32)
	for name, def := range prog.Labels {
		if def.Section == parser.SectionData {
			dataAddr[name] = dataAddrAtIndex[def.Index]
		}
	}

	textIndexAtIndex := a.layoutText(dataAddr)

	a.labelAddress = make(map[string]uint32, len(prog.Labels))
	for name, def := range prog.Labels {
		if def.Section == parser.SectionData {
			a.labelAddress[name] = dataAddrAtIndex[def.Index]
		} else {
			a.labelAddress[name] = textIndexAtIndex[def.Index]
		}
	}

	instructions := a.resolveText()
	if a.errors.HasErrors() {
		return nil, &a.errors
	}

	return &Result{
		Memory:   memory,
		Program:  &interp.Program{Instructions: instructions},
		DataSize: memory.Size(),
	}, nil
}

// assembler carries the state shared across pass 1 and pass 2.
type assembler struct {
	program      *parser.Program
	labelAddress map[string]uint32 // every label, filled in once both passes of layout complete
	errors       LinkErrorList
}

// layoutData lays out the data section starting at byte address 0,
// returning the populated memory and the cursor value just before each
// entry (one extra slot for the cursor at end-of-section, for trailing
// labels).
func layoutData(entries []*parser.DataEntry) (*vm.Memory, []uint32) {
	memory := vm.NewMemory()
	cursorAtIndex := make([]uint32, len(entries)+1)
	var cursor uint32

	for i, entry := range entries {
		switch entry.Kind {
		case parser.DataWord:
			cursor = alignUp(cursor, 4)
		case parser.DataHalf:
			cursor = alignUp(cursor, 2)
		}
		cursorAtIndex[i] = cursor

		switch entry.Kind {
		case parser.DataWord:
			for _, w := range entry.Words {
				memory.WriteWord(cursor, w)
				cursor += 4
			}
		case parser.DataHalf:
			for _, h := range entry.Halves {
				memory.WriteHalf(cursor, h)
				cursor += 2
			}
		case parser.DataByte:
			for _, b := range entry.Bytes {
				memory.WriteByte(cursor, b)
				cursor++
			}
		case parser.DataAscii:
			memory.WriteBytes(cursor, []byte(entry.Text))
			cursor += uint32(len(entry.Text))
		case parser.DataAsciiz:
			memory.WriteBytes(cursor, []byte(entry.Text))
			cursor += uint32(len(entry.Text))
			memory.WriteByte(cursor, 0)
			cursor++
		case parser.DataSpace:
			cursor += uint32(entry.Count)
		case parser.DataAlign:
			cursor = alignUp(cursor, 1<<uint(entry.Count))
		}
	}
	cursorAtIndex[len(entries)] = cursor

	return memory, cursorAtIndex
}

func alignUp(cursor, boundary uint32) uint32 {
	if boundary <= 1 {
		return cursor
	}
	rem := cursor % boundary
	if rem == 0 {
		return cursor
	}
	return cursor + (boundary - rem)
}

// layoutText counts, for every text entry, how many real instructions it
// expands to, returning the cumulative instruction index just before each
// entry (plus the final count, for trailing labels). dataAddr holds the
// data-section labels, already complete at this point, so expansionCount
// can decide `la` sizing.
func (a *assembler) layoutText(dataAddr map[string]uint32) []uint32 {
	indexAtIndex := make([]uint32, len(a.program.Text)+1)
	var count uint32
	for i, inst := range a.program.Text {
		indexAtIndex[i] = count
		count += uint32(expansionCount(inst, dataAddr))
	}
	indexAtIndex[len(a.program.Text)] = count
	return indexAtIndex
}

// resolveText is pass 2: walk the text entries again, this time expanding
// every pseudo-instruction and resolving every label operand against the
// now-complete a.labelAddress map.
func (a *assembler) resolveText() []*interp.Instruction {
	var out []*interp.Instruction
	for _, inst := range a.program.Text {
		switch inst.Mnemonic {
		case "li", "la", "move", "nop":
			out = append(out, a.expandPseudo(inst)...)
		default:
			if real := a.lowerReal(inst); real != nil {
				out = append(out, real)
			}
		}
	}
	return out
}

// reg resolves a register operand to its numeric index, recording a link
// error on failure (defensive: the parser's shape check already requires
// op.Kind == OperandRegister, but an unrecognized register literal like
// `$bogus` reaches this far unvalidated).
func (a *assembler) reg(op parser.Operand) int {
	idx, ok := parser.ResolveGPR(op.Reg)
	if !ok {
		a.errors.add(op.Pos, "unknown register %q", op.Reg)
		return 0
	}
	return idx
}

// labelAddr resolves a label reference, recording an undefined-label
// link error on failure.
func (a *assembler) labelAddr(name string, pos parser.Position) (uint32, bool) {
	addr, ok := a.labelAddress[name]
	if !ok {
		a.errors.add(pos, "undefined label %q", name)
		return 0, false
	}
	return addr, true
}
