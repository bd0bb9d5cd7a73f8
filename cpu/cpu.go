// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/word32/word"
)

const (
	DEFAULT_MEMSIZE = 2 << 8 // Default memory size, in words.
	DEFAULT_REGSIZE = 10     // Default register count.
	MEMORY_ROW      = 16     // Words per row in the memory dump.
	EP_HALT         = -1     // Execution pointer of a halted machine.
)

// Cpu is the simulation context for the word32 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Ep       int         // Current execution pointer, or EP_HALT.
	Register []word.Word // Register bank.
	Memory   []word.Word // Unified code and data memory.
	Stack    Stack       // Operand stack.

	Ticks int // CPU ticks counter.
}

// NewCpu creates a new CPU with memSize words of memory and regSize
// registers.
func NewCpu(memSize, regSize int) (cpu *Cpu) {
	cpu = &Cpu{
		Register: make([]word.Word, regSize),
		Memory:   make([]word.Word, memSize),
	}

	return
}

// CheckSize validates a memory size and register count for NewCpu. Every
// instruction resolves R0 in its padded slots, so at least one register
// is required.
func CheckSize(memSize, regSize int) (err error) {
	switch {
	case memSize < 1:
		err = ErrMemorySize
	case regSize < 1:
		err = ErrRegisterSize
	}

	return
}

// Defines returns an iter of the assembler equates describing this CPU.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"MEMSIZE": fmt.Sprintf("%v", len(cpu.Memory)),
		"REGSIZE": fmt.Sprintf("%v", len(cpu.Register)),
	})
}

// Load zero fills memory, copies the program to address 0, and resets
// the CPU state.
func (cpu *Cpu) Load(program []word.Word) (err error) {
	if len(program) > len(cpu.Memory) {
		err = ErrProgramSize
		return
	}

	clear(cpu.Memory)
	copy(cpu.Memory, program)
	clear(cpu.Register)
	cpu.Stack.Reset()
	cpu.Ep = 0
	cpu.Ticks = 0

	if cpu.Verbose {
		log.Printf("cpu: loaded %d words", len(program))
	}

	return
}

// Halted is true once the halt opcode has executed.
func (cpu *Cpu) Halted() bool {
	return cpu.Ep == EP_HALT
}

// Run ticks the CPU until halted, or until a fault.
func (cpu *Cpu) Run() (err error) {
	for !cpu.Halted() {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Tick executes a single instruction and advances the execution pointer.
func (cpu *Cpu) Tick() (err error) {
	next, err := cpu.Step()
	if err != nil {
		err = &ErrFault{Ep: cpu.Ep, Err: err}
		return
	}

	cpu.Ep = next
	cpu.Ticks += 1

	return
}

// fetch reads a memory word.
func (cpu *Cpu) fetch(address int) (value word.Word, err error) {
	if address < 0 || address >= len(cpu.Memory) {
		err = ErrAddressInvalid
		return
	}

	value = cpu.Memory[address]
	return
}

// store writes a memory word.
func (cpu *Cpu) store(address int, value word.Word) (err error) {
	if address < 0 || address >= len(cpu.Memory) {
		err = ErrAddressInvalid
		return
	}

	cpu.Memory[address] = value
	return
}

// register returns a pointer to a register.
func (cpu *Cpu) register(index byte) (reg *word.Word, err error) {
	if int(index) >= len(cpu.Register) {
		err = ErrRegisterInvalid
		return
	}

	reg = &cpu.Register[index]
	return
}

// setRegister writes a register.
func (cpu *Cpu) setRegister(index byte, value word.Word) (err error) {
	reg, err := cpu.register(index)
	if err != nil {
		return
	}

	*reg = value
	return
}

// Step executes the instruction at the execution pointer, and returns the
// next execution pointer. The execution pointer itself is not changed.
func (cpu *Cpu) Step() (next int, err error) {
	if cpu.Halted() {
		err = ErrHalted
		return
	}

	ep := cpu.Ep

	first, err := cpu.fetch(ep)
	if err != nil {
		return
	}
	header := first.Bytes()

	op, ok := Decode(header[0])
	if !ok {
		err = fmt.Errorf("%w 0x%02x", ErrOpcodeUnknown, header[0])
		return
	}

	args := [ARG_SLOTS]byte(header[1:])

	// Consume the literals and resolve the operand values.
	var vals [ARG_SLOTS]word.Word
	literals := 0
	for n, arg := range args {
		if arg == ARG_IMMEDIATE {
			literals++
			vals[n], err = cpu.fetch(ep + literals)
			if err != nil {
				return
			}
			continue
		}

		var reg *word.Word
		reg, err = cpu.register(arg)
		if err != nil {
			return
		}
		vals[n] = *reg
	}

	next = ep + 1 + literals

	if cpu.Verbose {
		log.Printf("%03x: %v %v %v", ep, op, args, vals)
	}

	// Result written to the register in the final argument slot.
	binary := func(op func(a, b word.Word) word.Word) error {
		return cpu.setRegister(args[2], op(vals[0], vals[1]))
	}
	binaryErr := func(op func(a, b word.Word) (word.Word, error)) (err error) {
		out, err := op(vals[0], vals[1])
		if err != nil {
			return
		}
		return cpu.setRegister(args[2], out)
	}
	// Result written to the register in the second argument slot.
	unary := func(op func(a word.Word) word.Word) error {
		return cpu.setRegister(args[1], op(vals[0]))
	}
	offset := func(cond bool, disp word.Word) {
		if cond {
			next = ep + int(disp.Int())
		}
	}
	absolute := func(cond bool, address word.Word) {
		if cond {
			next = int(address.Int())
		}
	}

	switch op {
	case OP_HALT:
		next = EP_HALT
	case OP_WAIT, OP_NOOP, OP_SYSCALL:
		// Reserved, no-op.
	case OP_MOV:
		err = cpu.setRegister(args[1], vals[0])
	case OP_SWP:
		err = cpu.setRegister(args[0], vals[1])
		if err == nil {
			err = cpu.setRegister(args[1], vals[0])
		}
	case OP_LOAD:
		var value word.Word
		value, err = cpu.fetch(int(vals[0].Int()))
		if err == nil {
			err = cpu.setRegister(args[1], value)
		}
	case OP_SAVE:
		err = cpu.store(int(vals[0].Int()), vals[1])
	case OP_ADD:
		err = binary(word.Word.Add)
	case OP_SUB:
		err = binary(word.Word.Sub)
	case OP_MUL:
		err = binary(word.Word.Mul)
	case OP_DIV:
		err = binaryErr(word.Word.Div)
	case OP_U_ADD:
		err = binary(word.Word.UAdd)
	case OP_U_SUB:
		err = binary(word.Word.USub)
	case OP_U_MUL:
		err = binary(word.Word.UMul)
	case OP_U_DIV:
		err = binaryErr(word.Word.UDiv)
	case OP_F_ADD:
		err = binary(word.Word.FAdd)
	case OP_F_SUB:
		err = binary(word.Word.FSub)
	case OP_F_MUL:
		err = binary(word.Word.FMul)
	case OP_F_DIV:
		err = binary(word.Word.FDiv)
	case OP_AND:
		err = binary(word.Word.And)
	case OP_OR:
		err = binary(word.Word.Or)
	case OP_XOR:
		err = binary(word.Word.Xor)
	case OP_NOT:
		err = unary(word.Word.Not)
	case OP_LSHIFT:
		err = unary(word.Word.LShift)
	case OP_RSHIFT:
		err = unary(word.Word.RShift)
	case OP_FTOI:
		err = unary(word.Word.FtoI)
	case OP_ITOF:
		err = unary(word.Word.ItoF)
	case OP_UTOI:
		err = unary(word.Word.UtoI)
	case OP_ITOU:
		err = unary(word.Word.ItoU)
	case OP_PUSH:
		cpu.Stack.Push(vals[0])
	case OP_POP, OP_PEEK:
		var value word.Word
		if op == OP_POP {
			value, ok = cpu.Stack.Pop()
		} else {
			value, ok = cpu.Stack.Peek()
		}
		if !ok {
			err = ErrStackEmpty
			return
		}
		err = cpu.setRegister(args[0], value)
	case OP_JOF:
		offset(true, vals[0])
	case OP_JOIZ:
		offset(vals[0].Int() == 0, vals[1])
	case OP_JONZ:
		offset(vals[0].Int() != 0, vals[1])
	case OP_JOLZ:
		offset(vals[0].Int() > 0, vals[1])
	case OP_JOSZ:
		offset(vals[0].Int() < 0, vals[1])
	case OP_JOEQ:
		offset(vals[0] == vals[1], vals[2])
	case OP_JAD:
		absolute(true, vals[0])
	case OP_JAIZ:
		absolute(vals[0].Int() == 0, vals[1])
	case OP_JANZ:
		absolute(vals[0].Int() != 0, vals[1])
	case OP_JALZ:
		absolute(vals[0].Int() > 0, vals[1])
	case OP_JASZ:
		absolute(vals[0].Int() < 0, vals[1])
	case OP_JAEQ:
		absolute(vals[0] == vals[1], vals[2])
	default:
		err = fmt.Errorf("%w %v", ErrOpcodeUnknown, op)
	}

	return
}

// String returns the current CPU state: registers, stack (top first), and
// memory.
func (cpu *Cpu) String() (text string) {
	var sb strings.Builder

	if cpu.Halted() {
		sb.WriteString("EP: halted\n")
	} else {
		fmt.Fprintf(&sb, "EP: %#04x\n", cpu.Ep)
	}

	sb.WriteString("Registers:\n")
	for n, reg := range cpu.Register {
		fmt.Fprintf(&sb, " R%-3d %v\n", n, reg.Report())
	}

	sb.WriteString("Stack:\n")
	for n := len(cpu.Stack.Data) - 1; n >= 0; n-- {
		fmt.Fprintf(&sb, " 0x%04X: %v\n", n, cpu.Stack.Data[n])
	}

	sb.WriteString("Memory:\n")
	for base := 0; base < len(cpu.Memory); base += MEMORY_ROW {
		row := cpu.Memory[base:min(base+MEMORY_ROW, len(cpu.Memory))]
		fmt.Fprintf(&sb, " 0x%04X:", base)
		for _, w := range row {
			sb.WriteString(" " + w.Hex())
		}
		sb.WriteString("\n")
	}

	text = sb.String()
	return
}
