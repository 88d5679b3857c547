// Package tui is the full-screen front end over the controller facade: live
// register, memory, and program panels plus a command line accepting the
// same commands as the line REPL. It is an alternative presentation of the
// identical load/step/read-back surface, selected with the -tui flag.
package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/milesvale/simmips/controller"
	"github.com/milesvale/simmips/repl"
)

// registerOrder lists the general-purpose register aliases in index order
// for the register panel.
var registerOrder = []string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

// TUI represents the text user interface over one loaded program.
type TUI struct {
	Ctrl *controller.Controller
	App  *tview.Application

	MainLayout *tview.Flex

	ProgramView  *tview.TextView
	RegisterView *tview.TextView
	MemoryView   *tview.TextView
	OutputView   *tview.TextView
	CommandInput *tview.InputField

	// MemoryAddress is the first byte shown in the memory panel.
	MemoryAddress uint32

	commands *repl.REPL
}

// New creates a TUI over ctrl.
func New(ctrl *controller.Controller) *TUI {
	t := &TUI{
		Ctrl: ctrl,
		App:  tview.NewApplication(),
	}
	t.commands = repl.New(ctrl, strings.NewReader(""), &strings.Builder{})

	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()

	return t
}

// NewWithScreen creates a TUI rendering to an explicit tcell screen, for
// tests that drive a simulation screen.
func NewWithScreen(ctrl *controller.Controller, screen tcell.Screen) *TUI {
	t := New(ctrl)
	t.App.SetScreen(screen)
	return t
}

func (t *TUI) initializeViews() {
	t.ProgramView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	t.ProgramView.SetBorder(true).SetTitle(" Program ")

	t.RegisterView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	t.RegisterView.SetBorder(true).SetTitle(" Registers ")

	t.MemoryView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	t.MemoryView.SetBorder(true).SetTitle(" Memory ")

	t.OutputView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output ")

	t.CommandInput = tview.NewInputField().
		SetLabel(repl.Prompt).
		SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
}

func (t *TUI) buildLayout() {
	left := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.ProgramView, 0, 2, false).
		AddItem(t.MemoryView, 0, 1, false)

	mainContent := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(left, 0, 2, false).
		AddItem(t.RegisterView, 0, 1, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(mainContent, 0, 4, false).
		AddItem(t.OutputView, 6, 0, false).
		AddItem(t.CommandInput, 3, 0, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF11:
			t.executeCommand("step")
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		case tcell.KeyCtrlL:
			t.RefreshAll()
			return nil
		}
		return event
	})
}

// handleCommand processes one line from the command input.
func (t *TUI) handleCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	cmd := strings.TrimSpace(t.CommandInput.GetText())
	if cmd == "" {
		return
	}
	t.CommandInput.SetText("")
	if cmd == "quit" || cmd == "exit" {
		t.App.Stop()
		return
	}
	t.executeCommand(cmd)
}

// executeCommand runs one REPL command, echoes it with its result in the
// output panel, and refreshes every view.
func (t *TUI) executeCommand(cmd string) {
	result := t.commands.Execute(cmd)
	t.WriteOutput(fmt.Sprintf("[green]%s[white]%s\n", repl.Prompt, cmd))
	if strings.HasPrefix(result, "Error") {
		t.WriteOutput(fmt.Sprintf("[red]%s[white]\n", result))
	} else if result != "" {
		t.WriteOutput(result + "\n")
	}
	t.RefreshAll()
}

// WriteOutput appends text to the output panel.
func (t *TUI) WriteOutput(text string) {
	_, _ = t.OutputView.Write([]byte(text))
	t.OutputView.ScrollToEnd()
}

// RefreshAll redraws every panel from the controller's current state. The
// screen itself is repainted by the application's event loop after each
// handled key event.
func (t *TUI) RefreshAll() {
	t.UpdateProgramView()
	t.UpdateRegisterView()
	t.UpdateMemoryView()
}

// UpdateProgramView lists the instruction vector around pc, marking the
// next instruction to execute.
func (t *TUI) UpdateProgramView() {
	t.ProgramView.Clear()

	pc, _ := t.Ctrl.ReadRegister("pc")
	n := t.Ctrl.NumInstructions()
	if n == 0 {
		t.ProgramView.SetText("[yellow]empty program[white]")
		return
	}

	start := 0
	if int(pc) > 8 {
		start = int(pc) - 8
	}
	end := start + 24
	if end > n {
		end = n
	}

	var lines []string
	for i := start; i < end; i++ {
		marker := "  "
		color := "white"
		if uint32(i) == pc {
			marker = "->"
			color = "yellow"
		}
		lines = append(lines, fmt.Sprintf("[%s]%s 0x%08x: %s[white]", color, marker, i, t.Ctrl.InstructionMnemonic(i)))
	}
	if pc >= uint32(n) {
		lines = append(lines, "[yellow]-- end of program --[white]")
	}

	t.ProgramView.SetText(strings.Join(lines, "\n"))
}

// UpdateRegisterView renders every general-purpose register plus pc, hi,
// lo, and the machine status.
func (t *TUI) UpdateRegisterView() {
	t.RegisterView.Clear()

	var lines []string
	for row := 0; row < 16; row++ {
		var cols []string
		for col := 0; col < 2; col++ {
			idx := row + col*16
			name := registerOrder[idx]
			val, _ := t.Ctrl.ReadRegister(name)
			cols = append(cols, fmt.Sprintf("$%-4s 0x%08x", name, val))
		}
		lines = append(lines, strings.Join(cols, "  "))
	}

	pc, _ := t.Ctrl.ReadRegister("pc")
	hi, _ := t.Ctrl.ReadRegister("hi")
	lo, _ := t.Ctrl.ReadRegister("lo")
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("$pc   0x%08x", pc))
	lines = append(lines, fmt.Sprintf("$hi   0x%08x  $lo   0x%08x", hi, lo))

	lines = append(lines, "")
	if status := t.Ctrl.Status(); status != "" {
		lines = append(lines, fmt.Sprintf("[red]status: %s[white]", status))
	} else {
		lines = append(lines, "[green]status: ok[white]")
	}

	t.RegisterView.SetText(strings.Join(lines, "\n"))
}

// UpdateMemoryView renders a hex dump of the data section starting at
// MemoryAddress: 16 rows of 16 bytes with an ASCII gutter.
func (t *TUI) UpdateMemoryView() {
	t.MemoryView.Clear()

	addr := t.MemoryAddress

	var lines []string
	lines = append(lines, fmt.Sprintf("[yellow]data section: %d bytes[white]", t.Ctrl.DataSize()))

	for row := 0; row < 16; row++ {
		rowAddr := addr + uint32(row*16)
		line := fmt.Sprintf("0x%08x: ", rowAddr)

		var hexBytes []string
		var asciiBytes []byte
		for col := 0; col < 16; col++ {
			b := t.Ctrl.ReadMemoryByte(rowAddr + uint32(col))
			hexBytes = append(hexBytes, fmt.Sprintf("%02x", b))
			if b >= 32 && b < 127 {
				asciiBytes = append(asciiBytes, b)
			} else {
				asciiBytes = append(asciiBytes, '.')
			}
		}

		line += strings.Join(hexBytes, " ") + "  " + string(asciiBytes)
		lines = append(lines, line)
	}

	t.MemoryView.SetText(strings.Join(lines, "\n"))
}

// Run starts the TUI application and blocks until it stops.
func (t *TUI) Run() error {
	t.RefreshAll()

	t.WriteOutput("[green]simmips debugger[white]\n")
	t.WriteOutput("F11 steps, Ctrl+L redraws, Ctrl+C or 'quit' exits\n")
	t.WriteOutput("Commands: step, status, print $<reg>, print &<addr>\n\n")

	return t.App.SetRoot(t.MainLayout, true).SetFocus(t.CommandInput).Run()
}

// Stop stops the TUI application.
func (t *TUI) Stop() {
	t.App.Stop()
}
