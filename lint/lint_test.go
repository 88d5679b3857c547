package lint

import (
	"strings"
	"testing"
)

func TestLint_UndefinedLabel(t *testing.T) {
	source := `.text
	li $t0, 10
	j undefined_label
`

	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source, "test.asm")

	foundError := false
	for _, issue := range issues {
		if issue.Code == "UNDEF_LABEL" && strings.Contains(issue.Message, "undefined_label") {
			foundError = true
			if issue.Level != LintError {
				t.Errorf("Expected error level, got %v", issue.Level)
			}
		}
	}

	if !foundError {
		t.Error("Expected undefined label error")
	}
	if !linter.HasErrors() {
		t.Error("HasErrors should report true for an undefined label")
	}
}

func TestLint_UndefinedLabelSuggestsSimilar(t *testing.T) {
	source := `.text
loop:	addi $t0, $t0, 1
	bne $t0, $t1, lopo
`

	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source, "test.asm")

	found := false
	for _, issue := range issues {
		if issue.Code == "UNDEF_LABEL" && strings.Contains(issue.Message, "did you mean 'loop'") {
			found = true
		}
	}

	if !found {
		t.Error("Expected a typo suggestion pointing at 'loop'")
	}
}

func TestLint_DuplicateLabelIsParseError(t *testing.T) {
	source := `.text
loop:	li $t0, 10
loop:	addi $t0, $t0, 1
`

	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source, "test.asm")

	foundIssue := false
	for _, issue := range issues {
		if issue.Code == "PARSE_ERROR" && strings.Contains(issue.Message, "duplicate") {
			foundIssue = true
		}
	}

	if !foundIssue {
		t.Error("Expected the parser's duplicate-label error to surface as a lint issue")
	}
}

func TestLint_UnusedLabel(t *testing.T) {
	source := `.text
main:	li $t0, 10
helper:	addi $t0, $t0, 1
`

	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source, "test.asm")

	foundHelper := false
	foundMain := false
	for _, issue := range issues {
		if issue.Code != "UNUSED_LABEL" {
			continue
		}
		if strings.Contains(issue.Message, "'helper'") {
			foundHelper = true
		}
		if strings.Contains(issue.Message, "'main'") {
			foundMain = true
		}
	}

	if !foundHelper {
		t.Error("Expected unused label warning for 'helper'")
	}
	if foundMain {
		t.Error("'main' is a conventional entry label and should not be flagged")
	}
}

func TestLint_UnreachableCode(t *testing.T) {
	source := `.text
loop:	j loop
	addi $t0, $t0, 1
`

	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source, "test.asm")

	found := false
	for _, issue := range issues {
		if issue.Code == "UNREACHABLE_CODE" {
			found = true
			if issue.Level != LintWarning {
				t.Errorf("Expected warning level, got %v", issue.Level)
			}
		}
	}

	if !found {
		t.Error("Expected unreachable code warning after an unconditional jump")
	}
}

func TestLint_LabeledCodeAfterJumpIsReachable(t *testing.T) {
	source := `.text
	j done
done:	addi $t0, $t0, 1
`

	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source, "test.asm")

	for _, issue := range issues {
		if issue.Code == "UNREACHABLE_CODE" {
			t.Error("Labeled instruction after a jump is a branch target, not unreachable")
		}
	}
}

func TestLint_WriteToZero(t *testing.T) {
	source := `.text
	addi $zero, $t0, 1
`

	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source, "test.asm")

	found := false
	for _, issue := range issues {
		if issue.Code == "ZERO_DEST" {
			found = true
		}
	}

	if !found {
		t.Error("Expected a warning for a write whose destination is $zero")
	}
}

func TestLint_NopIsNotFlagged(t *testing.T) {
	source := `.text
main:	nop
	j main
`

	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source, "test.asm")

	for _, issue := range issues {
		if issue.Code == "ZERO_DEST" {
			t.Error("nop should not be flagged as a discarded write")
		}
	}
}

func TestLint_CleanProgram(t *testing.T) {
	source := `.data
value:	.word 42
.text
main:	la $t0, value
	lw $t1, 0($t0)
loop:	addi $t1, $t1, -1
	bgtz $t1, loop
	j main
`

	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source, "test.asm")

	for _, issue := range issues {
		if issue.Level == LintError {
			t.Errorf("Clean program produced error: %v", issue)
		}
	}
	if linter.HasErrors() {
		t.Error("HasErrors should be false for a clean program")
	}
}

func TestLint_StrictPromotesWarnings(t *testing.T) {
	source := `.text
main:	j main
orphan:	nop
`

	opts := DefaultLintOptions()
	opts.Strict = true
	linter := NewLinter(opts)
	linter.Lint(source, "test.asm")

	if !linter.HasErrors() {
		t.Error("Strict mode should treat the unused-label warning as an error")
	}
}

func TestLint_UnknownEscapeSurfacesAsWarning(t *testing.T) {
	source := `.data
msg:	.asciiz "a\qb"
.text
main:	la $t0, msg
`

	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source, "test.asm")

	found := false
	for _, issue := range issues {
		if issue.Code == "PARSE_WARNING" && strings.Contains(issue.Message, `\q`) {
			found = true
			if issue.Level != LintWarning {
				t.Errorf("Expected warning level, got %v", issue.Level)
			}
		}
	}

	if !found {
		t.Error("Expected the lexer's unknown-escape warning to surface as a lint issue")
	}
	if linter.HasErrors() {
		t.Error("An escape warning alone should not be an error")
	}
}

func TestLint_ParseErrorSurfaces(t *testing.T) {
	source := `.text
	frobnicate $t0, $t1
`

	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source, "test.asm")

	found := false
	for _, issue := range issues {
		if issue.Code == "PARSE_ERROR" {
			found = true
		}
	}

	if !found {
		t.Error("Expected unknown mnemonic to surface as a parse error issue")
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"loop", "lopo", 2},
		{"done", "dane", 1},
	}

	for _, tt := range tests {
		if got := levenshteinDistance(tt.s1, tt.s2); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.want)
		}
	}
}
