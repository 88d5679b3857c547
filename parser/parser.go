package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser consumes a simmips source file's token stream and emits a Program:
// an ordered data-section entry list, an ordered text-section instruction
// list, and a label table. It does not resolve label references to
// addresses; that happens in the two passes of the assembler.
type Parser struct {
	lexer        *Lexer
	tokens       []Token
	pos          int
	currentToken Token
	peekToken    Token
	errors       *ErrorList
	lines        []string
}

// NewParser creates a parser over input, attributing errors to filename.
func NewParser(input, filename string) *Parser {
	lexer := NewLexer(input, filename)
	p := &Parser{
		lexer:  lexer,
		tokens: lexer.Tokenize(),
		errors: &ErrorList{},
		lines:  strings.Split(input, "\n"),
	}
	for _, err := range lexer.Errors().Errors {
		p.errors.AddError(err)
	}
	for _, warn := range lexer.Errors().Warnings {
		p.errors.AddWarning(warn)
	}
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns the accumulated error list, including warnings, which
// may be non-empty even when Parse succeeds.
func (p *Parser) Errors() *ErrorList {
	return p.errors
}

func (p *Parser) nextToken() {
	p.currentToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else {
		p.peekToken = Token{Type: TokenEOF, Pos: p.currentToken.Pos}
	}
}

func (p *Parser) rawLine(pos Position) string {
	if pos.Line-1 >= 0 && pos.Line-1 < len(p.lines) {
		return strings.TrimRight(p.lines[pos.Line-1], "\r")
	}
	return ""
}

func (p *Parser) errorf(pos Position, kind ErrorKind, format string, args ...interface{}) {
	p.errors.AddError(NewErrorWithContext(pos, kind, fmt.Sprintf(format, args...), p.rawLine(pos)))
}

// Parse runs the parser to completion, returning the Program or the
// accumulated ErrorList (as an error) if anything failed.
func (p *Parser) Parse() (*Program, error) {
	program := &Program{Labels: make(map[string]LabelDef)}
	section := SectionText

	var pendingLabels []string

	attach := func(label string, pos Position) {
		var def LabelDef
		if section == SectionData {
			def = LabelDef{Section: SectionData, Index: len(program.Data), Pos: pos}
		} else {
			def = LabelDef{Section: SectionText, Index: len(program.Text), Pos: pos}
		}
		if _, dup := program.Labels[label]; dup {
			p.errorf(pos, ErrorDuplicateLabel, "duplicate label %q", label)
			return
		}
		program.Labels[label] = def
	}

	for p.currentToken.Type != TokenEOF {
		if p.currentToken.Type == TokenNewline {
			p.nextToken()
			continue
		}

		// Zero or more label definitions before the line's real content.
		for p.currentToken.Type == TokenLabelDef {
			pendingLabels = append(pendingLabels, p.currentToken.Literal)
			p.nextToken()
		}

		switch {
		case p.currentToken.Type == TokenNewline || p.currentToken.Type == TokenEOF:
			// A label with nothing else on the line: stays pending for
			// whatever the next emitted entry turns out to be.
		case p.currentToken.Type == TokenDirective:
			switch p.currentToken.Literal {
			case "data":
				section = SectionData
				p.nextToken()
			case "text":
				section = SectionText
				p.nextToken()
			default:
				entry := p.parseDataDirective(section)
				if entry != nil {
					for _, lbl := range pendingLabels {
						attach(lbl, entry.Pos)
					}
					pendingLabels = nil
					program.Data = append(program.Data, entry)
				}
			}
		case p.currentToken.Type == TokenIdentifier:
			inst := p.parseInstruction()
			if inst != nil {
				for _, lbl := range pendingLabels {
					attach(lbl, inst.Pos)
				}
				pendingLabels = nil
				program.Text = append(program.Text, inst)
			}
		default:
			p.errorf(p.currentToken.Pos, ErrorSyntax, "unexpected token %s", p.currentToken.Type)
			p.nextToken()
		}

		p.skipToNewline()
	}

	for _, lbl := range pendingLabels {
		attach(lbl, p.currentToken.Pos)
	}

	if p.errors.HasErrors() {
		return nil, p.errors
	}
	return program, nil
}

func (p *Parser) skipToNewline() {
	for p.currentToken.Type != TokenNewline && p.currentToken.Type != TokenEOF {
		p.nextToken()
	}
	if p.currentToken.Type == TokenNewline {
		p.nextToken()
	}
}

// parseDataDirective parses one `.word`/`.half`/`.byte`/`.ascii`/`.asciiz`/
// `.space`/`.align` line. The current token is the TokenDirective.
func (p *Parser) parseDataDirective(section Section) *DataEntry {
	name := p.currentToken.Literal
	pos := p.currentToken.Pos
	p.nextToken()

	switch name {
	case "word":
		vals := p.parseIntList()
		words := make([]uint32, len(vals))
		for i, v := range vals {
			if v < -2147483648 || v > 4294967295 {
				p.errorf(pos, ErrorInvalidOperand, ".word value %d out of range", v)
			}
			words[i] = uint32(v)
		}
		return &DataEntry{Kind: DataWord, Words: words, Pos: pos}
	case "half":
		vals := p.parseIntList()
		halves := make([]uint16, len(vals))
		for i, v := range vals {
			if v < -32768 || v > 65535 {
				p.errorf(pos, ErrorInvalidOperand, ".half value %d out of range", v)
			}
			halves[i] = uint16(v)
		}
		return &DataEntry{Kind: DataHalf, Halves: halves, Pos: pos}
	case "byte":
		vals := p.parseIntList()
		bytes := make([]uint8, len(vals))
		for i, v := range vals {
			if v < -128 || v > 255 {
				p.errorf(pos, ErrorInvalidOperand, ".byte value %d out of range", v)
			}
			bytes[i] = uint8(v)
		}
		return &DataEntry{Kind: DataByte, Bytes: bytes, Pos: pos}
	case "ascii":
		s, ok := p.parseStringArg()
		if !ok {
			return nil
		}
		return &DataEntry{Kind: DataAscii, Text: s, Pos: pos}
	case "asciiz":
		s, ok := p.parseStringArg()
		if !ok {
			return nil
		}
		return &DataEntry{Kind: DataAsciiz, Text: s, Pos: pos}
	case "space":
		n, ok := p.parseIntArg()
		if !ok {
			return nil
		}
		if n < 0 {
			p.errorf(pos, ErrorInvalidOperand, ".space count must be non-negative")
		}
		return &DataEntry{Kind: DataSpace, Count: int(n), Pos: pos}
	case "align":
		n, ok := p.parseIntArg()
		if !ok {
			return nil
		}
		if n < 0 || n > 31 {
			p.errorf(pos, ErrorInvalidOperand, ".align boundary must be 0..31")
		}
		return &DataEntry{Kind: DataAlign, Count: int(n), Pos: pos}
	default:
		p.errorf(pos, ErrorInvalidDirective, "unknown directive %q", "."+name)
		return nil
	}
}

func (p *Parser) parseIntList() []int64 {
	var vals []int64
	for {
		v, ok := p.parseIntArg()
		if !ok {
			return vals
		}
		vals = append(vals, v)
		if p.currentToken.Type == TokenComma {
			p.nextToken()
			continue
		}
		return vals
	}
}

func (p *Parser) parseIntArg() (int64, bool) {
	if p.currentToken.Type != TokenInteger {
		p.errorf(p.currentToken.Pos, ErrorInvalidOperand, "expected integer, got %s", p.currentToken.Type)
		return 0, false
	}
	v, err := parseIntLiteral(p.currentToken.Literal)
	if err != nil {
		p.errorf(p.currentToken.Pos, ErrorInvalidOperand, "%v", err)
		p.nextToken()
		return 0, false
	}
	p.nextToken()
	return v, true
}

func (p *Parser) parseStringArg() (string, bool) {
	if p.currentToken.Type != TokenString {
		p.errorf(p.currentToken.Pos, ErrorInvalidOperand, "expected string literal, got %s", p.currentToken.Type)
		return "", false
	}
	s := p.currentToken.Literal
	p.nextToken()
	return s, true
}

// parseIntLiteral parses a decimal or 0x-prefixed hex integer, with
// optional leading '-'.
func parseIntLiteral(lit string) (int64, error) {
	neg := false
	s := lit
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var v uint64
	var err error
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = strconv.ParseUint(s[2:], 16, 64)
	} else {
		v, err = strconv.ParseUint(s, 10, 64)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid integer literal %q", lit)
	}
	if neg {
		return -int64(v), nil
	}
	return int64(v), nil
}

// parseInstruction parses a MNEMONIC operand-list line. The current token
// is the mnemonic identifier.
func (p *Parser) parseInstruction() *Instruction {
	pos := p.currentToken.Pos
	rawLine := p.rawLine(pos)
	mnemonic := strings.ToLower(p.currentToken.Literal)
	p.nextToken()

	shapes, known := mnemonicShapes[mnemonic]
	if !known {
		p.errorf(pos, ErrorInvalidInstruction, "unknown mnemonic %q", mnemonic)
	}

	var operands []Operand
	for p.currentToken.Type != TokenNewline && p.currentToken.Type != TokenEOF {
		op, ok := p.parseOperand()
		if !ok {
			break
		}
		operands = append(operands, op)
		if p.currentToken.Type == TokenComma {
			p.nextToken()
			continue
		}
		break
	}

	if known && !matchesShape(operands, shapes) {
		p.errorf(pos, ErrorInvalidOperand, "%s: wrong operand count or kind", mnemonic)
	} else if known {
		p.checkImmediateWidths(mnemonic, operands)
	}

	return &Instruction{Mnemonic: mnemonic, Operands: operands, Pos: pos, RawLine: rawLine}
}

// checkImmediateWidths range-checks every immediate operand (including a
// memory reference's offset) against the width the instruction declares.
func (p *Parser) checkImmediateWidths(mnemonic string, operands []Operand) {
	lo, hi, checked := immediateBounds(mnemonic)
	if !checked {
		return
	}
	for _, op := range operands {
		var v int64
		switch {
		case op.Kind == OperandImmediate:
			v = op.Imm
		case op.Kind == OperandMemory && op.HasImm:
			v = op.Imm
		default:
			continue
		}
		if v < lo || v > hi {
			p.errorf(op.Pos, ErrorInvalidOperand,
				"%s: immediate %d out of range [%d, %d]", mnemonic, v, lo, hi)
		}
	}
}

// immediateBounds returns the inclusive range an instruction's immediate
// operand accepts: signed 16-bit for arithmetic immediates and memory
// offsets, unsigned 16-bit for the logical immediates and lui, a 5-bit
// shift amount, and the full 32-bit span (either signedness) for li.
func immediateBounds(mnemonic string) (lo, hi int64, checked bool) {
	switch mnemonic {
	case "addi", "addiu", "slti",
		"lw", "lh", "lhu", "lb", "lbu", "sw", "sh", "sb":
		return -32768, 32767, true
	case "sltiu":
		return -32768, 65535, true
	case "andi", "ori", "xori", "lui":
		return 0, 65535, true
	case "sll", "srl", "sra":
		return 0, 31, true
	case "li":
		return -2147483648, 4294967295, true
	default:
		return 0, 0, false
	}
}

// parseOperand parses one register, immediate, label, or imm(base) memory
// reference operand.
func (p *Parser) parseOperand() (Operand, bool) {
	pos := p.currentToken.Pos
	switch p.currentToken.Type {
	case TokenRegister:
		reg := p.currentToken.Literal
		p.nextToken()
		if p.currentToken.Type == TokenLParen {
			// Malformed: register cannot itself be followed by '(' in this grammar.
			return Operand{}, false
		}
		return Operand{Kind: OperandRegister, Reg: reg, Pos: pos}, true
	case TokenInteger:
		v, err := parseIntLiteral(p.currentToken.Literal)
		if err != nil {
			p.errorf(pos, ErrorInvalidOperand, "%v", err)
			p.nextToken()
			return Operand{}, false
		}
		p.nextToken()
		if p.currentToken.Type == TokenLParen {
			return p.parseMemoryOperand(pos, v, true)
		}
		return Operand{Kind: OperandImmediate, Imm: v, Pos: pos}, true
	case TokenLParen:
		return p.parseMemoryOperand(pos, 0, false)
	case TokenIdentifier:
		lbl := p.currentToken.Literal
		p.nextToken()
		return Operand{Kind: OperandLabel, Label: lbl, Pos: pos}, true
	default:
		p.errorf(pos, ErrorInvalidOperand, "unexpected token %s in operand", p.currentToken.Type)
		p.nextToken()
		return Operand{}, false
	}
}

func (p *Parser) parseMemoryOperand(pos Position, imm int64, hasImm bool) (Operand, bool) {
	if p.currentToken.Type != TokenLParen {
		p.errorf(pos, ErrorInvalidOperand, "malformed memory reference: expected '('")
		return Operand{}, false
	}
	p.nextToken()
	if p.currentToken.Type != TokenRegister {
		p.errorf(pos, ErrorInvalidOperand, "malformed memory reference: expected register")
		return Operand{}, false
	}
	reg := p.currentToken.Literal
	p.nextToken()
	if p.currentToken.Type != TokenRParen {
		p.errorf(pos, ErrorInvalidOperand, "malformed memory reference: expected ')'")
		return Operand{}, false
	}
	p.nextToken()
	return Operand{Kind: OperandMemory, Reg: reg, Imm: imm, HasImm: hasImm, Pos: pos}, true
}
