// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/word32/cpu"
	"github.com/ezrec/word32/internal"
)

// Emulator state. CPU + assembled program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Define map[string]string // User supplied assembler equates.
}

// NewEmulator creates a new emulator with memSize words of memory and
// regSize registers.
func NewEmulator(memSize, regSize int) (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(memSize, regSize),
		Program: &cpu.Program{},
		Define:  map[string]string{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(emu.Cpu.Defines(), maps.All(emu.Define))
}

// Assemble parses source into the emulator's program, with all defines
// predefined.
func (emu *Emulator) Assemble(source io.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(source)
	if err != nil {
		return
	}

	if emu.Verbose {
		asm.Assemble(prog.Instructions)
	}

	emu.Program = prog
	return
}

// Reset loads the program binary into the CPU.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	err = emu.Cpu.Load(emu.Program.Binary())
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: reset, %d instructions", len(emu.Program.Instructions))
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Ep returns current execution pointer.
func (emu *Emulator) Ep() int {
	return emu.Cpu.Ep
}

// Instruction returns the instruction at the execution pointer, if any.
func (emu *Emulator) Instruction() (inst *cpu.Instruction) {
	dbg, ok := emu.Program.Debug(emu.Cpu.Ep)
	if ok {
		inst = dbg.Instruction
	}

	return
}

// LineNo returns the current line number for the executing instruction, or
// 0 if the execution pointer is not in the program listing.
func (emu *Emulator) LineNo() int {
	inst := emu.Instruction()
	if inst == nil {
		return 0
	}

	return inst.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if emu.Cpu.Halted() {
		done = true
		return
	}

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = emu.Cpu.Halted()
	return
}

// Run ticks the emulator until the program halts, or faults.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
