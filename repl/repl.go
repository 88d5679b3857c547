// Package repl implements the line-oriented interactive front end: a
// fixed prompt, four commands, and an "Error"-prefixed line for anything
// else.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/milesvale/simmips/controller"
)

// Prompt is printed before every input line, including the first.
const Prompt = "simmips> "

// REPL drives one controller from an input stream, writing one result
// line per command to an output stream.
type REPL struct {
	ctrl *controller.Controller
	in   *bufio.Scanner
	out  io.Writer
}

// New creates a REPL over ctrl, reading commands from in and writing
// results to out.
func New(ctrl *controller.Controller, in io.Reader, out io.Writer) *REPL {
	return &REPL{ctrl: ctrl, in: bufio.NewScanner(in), out: out}
}

// Run prints the prompt and processes one command per input line until
// the input stream is exhausted.
func (r *REPL) Run() {
	for {
		fmt.Fprint(r.out, Prompt)
		if !r.in.Scan() {
			return
		}
		fmt.Fprintln(r.out, r.Execute(r.in.Text()))
	}
}

// Execute runs one command line and returns the line of output it
// produces, without any trailing newline.
func (r *REPL) Execute(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "Error: empty command"
	}

	switch fields[0] {
	case "step":
		return fmt.Sprintf("0x%08x", r.ctrl.Step())
	case "status":
		return r.ctrl.Status()
	case "print":
		if len(fields) != 2 {
			return "Error: usage: print $<reg> | print &<addr>"
		}
		return r.execPrint(fields[1])
	default:
		return "Error: unknown command " + fields[0]
	}
}

func (r *REPL) execPrint(arg string) string {
	switch {
	case strings.HasPrefix(arg, "$"):
		val, err := r.ctrl.ReadRegister(arg[1:])
		if err != nil {
			return "Error: " + err.Error()
		}
		return fmt.Sprintf("0x%08x", val)
	case strings.HasPrefix(arg, "&"):
		addr, err := parseAddr(arg[1:])
		if err != nil {
			return "Error: " + err.Error()
		}
		return fmt.Sprintf("0x%02x", r.ctrl.ReadMemoryByte(addr))
	default:
		return "Error: print needs a $register or &address argument"
	}
}

func parseAddr(s string) (uint32, error) {
	var v uint64
	var err error
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = strconv.ParseUint(s[2:], 16, 32)
	} else {
		v, err = strconv.ParseUint(s, 10, 32)
	}
	if err != nil {
		return 0, fmt.Errorf("malformed address %q", s)
	}
	return uint32(v), nil
}
