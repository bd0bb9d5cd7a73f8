// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/ezrec/word32/cpu"
	"github.com/ezrec/word32/emulator"
)

const (
	MEMORY_WIDTH = cpu.MEMORY_ROW // Words per memory table row.
	RUN_LIMIT    = 1 << 20        // Maximum ticks per run request.
)

// Viewer is a single stepping debugger for an assembled program.
type Viewer struct {
	app  *tview.Application
	root *tview.Flex

	sourceView   *tview.Table
	registerView *tview.TextView
	stackView    *tview.TextView
	memoryView   *tview.Table
	logsView     *tview.TextView

	emu *emulator.Emulator
}

// NewViewer creates the panes for the emulator.
func NewViewer(emu *emulator.Emulator) (v *Viewer) {
	newTextView := func(title string) *tview.TextView {
		view := tview.NewTextView().SetDynamicColors(true)
		view.SetTitle(title).SetBorder(true)
		return view
	}

	sourceView := tview.NewTable().SetBorders(false)
	sourceView.SetTitle("Source").SetBorder(true)

	memoryView := tview.NewTable().SetBorders(false)
	memoryView.SetTitle("Memory").SetBorder(true)

	registerView := newTextView("Registers")
	stackView := newTextView("Stack")
	logsView := newTextView("Logs")
	logsView.ScrollToEnd()

	rightPane := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(registerView, len(emu.Cpu.Register)+2, 0, false).
		AddItem(stackView, 0, 1, false).
		AddItem(logsView, 0, 1, false)

	leftPane := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(sourceView, 0, 1, true).
		AddItem(memoryView, 0, 1, false)

	root := tview.NewFlex().
		AddItem(leftPane, 0, 2, true).
		AddItem(rightPane, 0, 1, false)

	v = &Viewer{
		app:          tview.NewApplication(),
		root:         root,
		sourceView:   sourceView,
		registerView: registerView,
		stackView:    stackView,
		memoryView:   memoryView,
		logsView:     logsView,
		emu:          emu,
	}

	return
}

// logf appends a message to the logs pane.
func (v *Viewer) logf(format string, args ...any) {
	fmt.Fprintf(v.logsView, format+"\n", args...)
}

// step ticks the emulator once.
func (v *Viewer) step() (done bool) {
	done, err := v.emu.Tick()
	if err != nil {
		v.logf("[red]%v[-]", tview.Escape(err.Error()))
		done = true
		return
	}
	if done {
		v.logf("halted after %d ticks", v.emu.Ticks())
	}

	return
}

// run ticks the emulator until halt, a fault, or RUN_LIMIT ticks.
func (v *Viewer) run() {
	for range RUN_LIMIT {
		if v.step() {
			return
		}
	}

	v.logf("[yellow]paused after %d ticks[-]", RUN_LIMIT)
}

// reset reloads the program.
func (v *Viewer) reset() {
	err := v.emu.Reset()
	if err != nil {
		v.logf("[red]%v[-]", tview.Escape(err.Error()))
		return
	}
	v.logf("reset")
}

func (v *Viewer) Init() {
	v.root.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlC, tcell.KeyEscape:
			v.app.Stop()
			return nil
		}
		switch event.Rune() {
		case 'n', ' ':
			v.step()
		case 'r':
			v.run()
		case 'R':
			v.reset()
		case 'q':
			v.app.Stop()
			return nil
		default:
			return event
		}
		v.Draw()
		return nil
	})
}

func (v *Viewer) drawSource() {
	lineno := v.emu.LineNo()
	v.sourceView.Clear()
	for row, inst := range v.emu.Program.Instructions {
		mark := tview.NewTableCell(" ")
		cell := tview.NewTableCell(tview.Escape(inst.String()))
		number := tview.NewTableCell(fmt.Sprintf("%4d", inst.LineNo)).SetTextColor(tcell.ColorDimGray)
		if inst.LineNo == lineno {
			mark.SetText(">")
			cell.SetAttributes(tcell.AttrReverse)
			v.sourceView.Select(row, 2)
		}
		v.sourceView.SetCell(row, 0, mark)
		v.sourceView.SetCell(row, 1, number)
		v.sourceView.SetCell(row, 2, cell)
	}
}

func (v *Viewer) drawRegisters() {
	v.registerView.Clear()

	ep := "halted"
	if !v.emu.Cpu.Halted() {
		ep = fmt.Sprintf("%#04x", v.emu.Cpu.Ep)
	}
	v.registerView.SetTitle(fmt.Sprintf("Registers (EP %v, ticks %d)", ep, v.emu.Ticks()))

	for n, reg := range v.emu.Cpu.Register {
		fmt.Fprintf(v.registerView, "R%-3d %v %11d %g\n", n, reg.Hex(), reg.Int(), reg.Float())
	}
}

func (v *Viewer) drawStack() {
	v.stackView.Clear()

	data := v.emu.Cpu.Stack.Data
	v.stackView.SetTitle(fmt.Sprintf("Stack (%d)", len(data)))
	for n := len(data) - 1; n >= 0; n-- {
		fmt.Fprintf(v.stackView, "0x%04X: %v\n", n, data[n])
	}
}

func (v *Viewer) drawMemory() {
	ep := v.emu.Cpu.Ep
	width := 1
	if dbg, ok := v.emu.Program.Debug(ep); ok {
		ep -= dbg.Index
		width = dbg.Width()
	}

	v.memoryView.Clear()
	for n, w := range v.emu.Cpu.Memory {
		if n%MEMORY_WIDTH == 0 {
			addr := tview.NewTableCell(fmt.Sprintf("0x%04X:", n)).SetTextColor(tcell.ColorYellow)
			v.memoryView.SetCell(n/MEMORY_WIDTH, 0, addr)
		}
		cell := tview.NewTableCell(fmt.Sprintf("%08x", w.Uint()))
		switch {
		case n >= ep && n < ep+width:
			cell.SetAttributes(tcell.AttrReverse)
		case w == 0:
			cell.SetTextColor(tcell.ColorDimGray).SetAttributes(tcell.AttrDim)
		}
		v.memoryView.SetCell(n/MEMORY_WIDTH, 1+n%MEMORY_WIDTH, cell)
	}
}

func (v *Viewer) Draw() {
	v.drawSource()
	v.drawRegisters()
	v.drawStack()
	v.drawMemory()
}

func main() {
	var compile string
	var memSize int
	var regSize int

	flag.StringVar(&compile, "c", "", "assembly source file to debug")
	flag.IntVar(&memSize, "m", cpu.DEFAULT_MEMSIZE, "Memory size, in words")
	flag.IntVar(&regSize, "r", cpu.DEFAULT_REGSIZE, "Number of registers")

	flag.Parse()

	if flag.NArg() != 0 || len(compile) == 0 {
		log.Fatalf("%v: usage: %v -c file.s", os.Args[0], os.Args[0])
	}

	err := cpu.CheckSize(memSize, regSize)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	emu := emulator.NewEmulator(memSize, regSize)

	inf, err := os.Open(compile)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	err = emu.Assemble(inf)
	inf.Close()
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	err = emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	v := NewViewer(emu)
	v.Init()
	v.logf("%v: n/space step, r run, R reset, q quit", compile)
	v.Draw()

	err = v.app.SetRoot(v.root, true).SetFocus(v.sourceView).Run()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}
