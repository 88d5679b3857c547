package assemble

import (
	"fmt"

	"github.com/milesvale/simmips/parser"
)

// LinkError reports a failure discovered only after the full program is
// laid out: an undefined label reference or an operand that resolves to no
// valid register, neither of which the parser can catch on its own.
type LinkError struct {
	Pos     parser.Position
	Message string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// LinkErrorList collects every LinkError found during assembly, in the
// manner of parser.ErrorList, so a single assemble pass reports everything
// wrong with a program rather than stopping at the first undefined label.
type LinkErrorList struct {
	Errors []*LinkError
}

func (l *LinkErrorList) add(pos parser.Position, format string, args ...interface{}) {
	l.Errors = append(l.Errors, &LinkError{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (l *LinkErrorList) HasErrors() bool {
	return len(l.Errors) > 0
}

func (l *LinkErrorList) Error() string {
	if len(l.Errors) == 0 {
		return ""
	}
	s := l.Errors[0].Error()
	if len(l.Errors) > 1 {
		s += fmt.Sprintf(" (and %d more)", len(l.Errors)-1)
	}
	return s
}
