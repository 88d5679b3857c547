// Package lint runs static checks over a simmips source file before it is
// loaded: undefined label references, labels that are never used, code that
// can never execute, and writes that discard their result. It reports
// findings without constructing a machine, so the REPL front ends can run
// it as a pre-load gate.
package lint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/milesvale/simmips/parser"
)

// LintLevel represents the severity of a lint issue.
type LintLevel int

const (
	LintError   LintLevel = iota // parse failures, undefined references
	LintWarning                  // suspicious but loadable constructs
	LintInfo                     // style suggestions
)

func (l LintLevel) String() string {
	switch l {
	case LintError:
		return "error"
	case LintWarning:
		return "warning"
	case LintInfo:
		return "info"
	default:
		return "unknown"
	}
}

// LintIssue represents a single lint finding.
type LintIssue struct {
	Level   LintLevel
	Line    int
	Column  int
	Message string
	Code    string // issue code like "UNDEF_LABEL", "UNREACHABLE_CODE"
}

func (i *LintIssue) String() string {
	return fmt.Sprintf("line %d:%d: %s: %s [%s]", i.Line, i.Column, i.Level, i.Message, i.Code)
}

// LintOptions controls linter behavior.
type LintOptions struct {
	Strict       bool // treat warnings as errors
	CheckUnused  bool // check for unused labels
	CheckReach   bool // check for unreachable code
	CheckZero    bool // check for writes whose destination is $zero
	SuggestFixes bool // suggest fixes for likely typos
}

// DefaultLintOptions returns default linter options.
func DefaultLintOptions() *LintOptions {
	return &LintOptions{
		Strict:       false,
		CheckUnused:  true,
		CheckReach:   true,
		CheckZero:    true,
		SuggestFixes: true,
	}
}

// Linter analyzes assembly source for issues.
type Linter struct {
	options *LintOptions
	issues  []*LintIssue
	program *parser.Program

	referencedLabels map[string][]int // label -> line numbers where used
	textLabelIndex   map[int]bool     // text-section instruction indices carrying a label
}

// NewLinter creates a new linter.
func NewLinter(options *LintOptions) *Linter {
	if options == nil {
		options = DefaultLintOptions()
	}
	return &Linter{
		options:          options,
		referencedLabels: make(map[string][]int),
		textLabelIndex:   make(map[int]bool),
	}
}

// Lint parses input and runs every enabled analysis pass, returning the
// findings sorted by source position.
func (l *Linter) Lint(input, filename string) []*LintIssue {
	p := parser.NewParser(input, filename)
	prog, err := p.Parse()
	for _, warn := range p.Errors().Warnings {
		l.issues = append(l.issues, &LintIssue{
			Level:   LintWarning,
			Line:    warn.Pos.Line,
			Column:  warn.Pos.Column,
			Message: warn.Message,
			Code:    "PARSE_WARNING",
		})
	}
	if err != nil {
		if elist, ok := err.(*parser.ErrorList); ok {
			for _, perr := range elist.Errors {
				l.issues = append(l.issues, &LintIssue{
					Level:   LintError,
					Line:    perr.Pos.Line,
					Column:  perr.Pos.Column,
					Message: perr.Message,
					Code:    "PARSE_ERROR",
				})
			}
		} else {
			l.issues = append(l.issues, &LintIssue{
				Level:   LintError,
				Line:    1,
				Column:  1,
				Message: fmt.Sprintf("parse error: %v", err),
				Code:    "PARSE_ERROR",
			})
		}
		return l.issues
	}

	l.program = prog
	for _, def := range prog.Labels {
		if def.Section == parser.SectionText {
			l.textLabelIndex[def.Index] = true
		}
	}

	l.checkLabelReferences()

	if l.options.CheckUnused {
		l.checkUnusedLabels()
	}
	if l.options.CheckReach {
		l.checkUnreachableCode()
	}
	if l.options.CheckZero {
		l.checkZeroDestinations()
	}

	sort.Slice(l.issues, func(i, j int) bool {
		if l.issues[i].Line == l.issues[j].Line {
			return l.issues[i].Column < l.issues[j].Column
		}
		return l.issues[i].Line < l.issues[j].Line
	})

	return l.issues
}

// HasErrors reports whether any finding is at error level, or, in strict
// mode, at warning level.
func (l *Linter) HasErrors() bool {
	for _, issue := range l.issues {
		if issue.Level == LintError {
			return true
		}
		if l.options.Strict && issue.Level == LintWarning {
			return true
		}
	}
	return false
}

// checkLabelReferences records every label operand and flags references to
// labels the program never defines. The assembler's pass 2 would reject
// these too; lint surfaces them with a position and a typo suggestion
// before any load is attempted.
func (l *Linter) checkLabelReferences() {
	for _, inst := range l.program.Text {
		for _, op := range inst.Operands {
			if op.Kind != parser.OperandLabel {
				continue
			}
			l.referencedLabels[op.Label] = append(l.referencedLabels[op.Label], op.Pos.Line)
			if _, defined := l.program.Labels[op.Label]; defined {
				continue
			}
			msg := fmt.Sprintf("undefined label '%s'", op.Label)
			if l.options.SuggestFixes {
				if suggestion := l.findSimilarLabel(op.Label); suggestion != "" {
					msg += fmt.Sprintf(" (did you mean '%s'?)", suggestion)
				}
			}
			l.issues = append(l.issues, &LintIssue{
				Level:   LintError,
				Line:    op.Pos.Line,
				Column:  op.Pos.Column,
				Message: msg,
				Code:    "UNDEF_LABEL",
			})
		}
	}
}

// checkUnusedLabels warns about defined but never-referenced labels.
func (l *Linter) checkUnusedLabels() {
	for name, def := range l.program.Labels {
		if isEntryLabel(name) {
			continue
		}
		if _, used := l.referencedLabels[name]; !used {
			l.issues = append(l.issues, &LintIssue{
				Level:   LintWarning,
				Line:    def.Pos.Line,
				Column:  def.Pos.Column,
				Message: fmt.Sprintf("label '%s' defined but never referenced", name),
				Code:    "UNUSED_LABEL",
			})
		}
	}
}

// checkUnreachableCode flags an instruction that follows an unconditional
// jump without carrying a label: nothing can branch to it, and straight-line
// execution never reaches it.
func (l *Linter) checkUnreachableCode() {
	for i, inst := range l.program.Text {
		if inst.Mnemonic != "j" && inst.Mnemonic != "jr" {
			continue
		}
		if i+1 >= len(l.program.Text) {
			continue
		}
		if l.textLabelIndex[i+1] {
			continue
		}
		next := l.program.Text[i+1]
		l.issues = append(l.issues, &LintIssue{
			Level:   LintWarning,
			Line:    next.Pos.Line,
			Column:  next.Pos.Column,
			Message: "unreachable code detected",
			Code:    "UNREACHABLE_CODE",
		})
		continue // one report per unreachable block is enough
	}
}

// checkZeroDestinations warns when an instruction's destination is $zero:
// the write is silently discarded, so the instruction is a no-op unless it
// can fault. An intentional no-op is spelled `nop`, which takes no operands
// and is not flagged here.
func (l *Linter) checkZeroDestinations() {
	for _, inst := range l.program.Text {
		if !writesFirstOperand(inst.Mnemonic) || len(inst.Operands) == 0 {
			continue
		}
		dest := inst.Operands[0]
		if dest.Kind != parser.OperandRegister {
			continue
		}
		idx, ok := parser.ResolveGPR(dest.Reg)
		if !ok || idx != 0 {
			continue
		}
		l.issues = append(l.issues, &LintIssue{
			Level:   LintWarning,
			Line:    inst.Pos.Line,
			Column:  inst.Pos.Column,
			Message: fmt.Sprintf("%s writes to $zero; the result is discarded", inst.Mnemonic),
			Code:    "ZERO_DEST",
		})
	}
}

// writesFirstOperand reports whether mnemonic's first operand is a written
// destination register (as opposed to a source, a store value, or a branch
// comparand).
func writesFirstOperand(mnemonic string) bool {
	switch mnemonic {
	case "add", "addu", "sub", "subu", "and", "or", "xor", "nor",
		"addi", "addiu", "andi", "ori", "xori", "lui",
		"sll", "srl", "sra", "sllv", "srlv", "srav",
		"slt", "sltu", "slti", "sltiu",
		"mfhi", "mflo",
		"lw", "lh", "lhu", "lb", "lbu",
		"li", "la", "move":
		return true
	default:
		return false
	}
}

// findSimilarLabel finds a defined label with a similar name, for typo
// suggestions.
func (l *Linter) findSimilarLabel(target string) string {
	target = strings.ToLower(target)
	bestMatch := ""
	bestDistance := 999

	for label := range l.program.Labels {
		dist := levenshteinDistance(strings.ToLower(label), target)
		if dist < bestDistance && dist <= 3 {
			bestMatch = label
			bestDistance = dist
		}
	}

	return bestMatch
}

// levenshteinDistance calculates the edit distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			matrix[i][j] = min3(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}

// isEntryLabel checks whether a label is a conventional entry point that is
// expected to have no in-program reference.
func isEntryLabel(label string) bool {
	switch label {
	case "main", "start", "_start", "entry":
		return true
	default:
		return false
	}
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
