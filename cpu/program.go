package cpu

import (
	"fmt"
	"slices"

	"github.com/ezrec/word32/word"
)

// Program is an assembled instruction listing.
type Program struct {
	Instructions []Instruction

	offsets []int // Cached Offsets of Instructions.
}

type Debug struct {
	*Instruction
	Index int // Word index within the instruction.
}

// Offsets returns the word position of each instruction, with one trailing
// entry for the end of the program.
func Offsets(instructions []Instruction) (offsets []int) {
	offsets = make([]int, len(instructions)+1)
	for n, inst := range instructions {
		offsets[n+1] = offsets[n] + inst.Width()
	}

	return
}

// Offsets returns the cached word position of each instruction. The cache
// is rebuilt if the number of instructions changes.
func (prog *Program) Offsets() []int {
	if len(prog.offsets) != len(prog.Instructions)+1 {
		prog.offsets = Offsets(prog.Instructions)
	}

	return prog.offsets
}

// Debug finds the instruction emitted at an execution pointer.
func (prog *Program) Debug(ep int) (dbg Debug, ok bool) {
	offsets := prog.Offsets()
	n, found := slices.BinarySearch(offsets, ep)
	if !found {
		n--
	}
	if n < 0 || n >= len(prog.Instructions) {
		return
	}

	dbg = Debug{
		Instruction: &prog.Instructions[n],
		Index:       ep - offsets[n],
	}
	ok = true

	return
}

// Binary returns the emitted word stream of the program.
func (prog *Program) Binary() (words []word.Word) {
	return Assemble(prog.Instructions, nil)
}

// offsetJump maps conditional label jumps to their offset jumps.
var offsetJump = map[Opcode]Opcode{
	OP_JIZ: OP_JOIZ,
	OP_JNZ: OP_JONZ,
	OP_JLZ: OP_JOLZ,
	OP_JSZ: OP_JOSZ,
}

// lowerJump replaces a label jump with its offset jump equivalent.
func lowerJump(inst Instruction, displacement int) (lowered Instruction) {
	disp := word.FromInt(int32(displacement))
	literals := append(append([]word.Word{}, inst.Literals...), disp)

	switch inst.Opcode {
	case OP_JMP:
		lowered = makeInstruction(OP_JOF, [ARG_SLOTS]byte{ARG_IMMEDIATE, ARG_PAD, ARG_PAD}, disp)
	case OP_JIZ, OP_JNZ, OP_JLZ, OP_JSZ:
		lowered = makeInstruction(offsetJump[inst.Opcode], [ARG_SLOTS]byte{inst.Args[0], ARG_IMMEDIATE, ARG_PAD}, literals...)
	case OP_JEQ:
		lowered = makeInstruction(OP_JOEQ, [ARG_SLOTS]byte{inst.Args[0], inst.Args[1], ARG_IMMEDIATE}, literals...)
	default:
		panic(fmt.Sprintf("line %d: no lowering for jump %v", inst.LineNo, inst.Opcode))
	}

	lowered.LineNo = inst.LineNo
	lowered.Line = inst.Line

	return
}

// Assemble lowers label jumps to offset jumps, and serializes the
// instructions into a word stream. If listing is non-nil, it is called with
// each instruction and its emitted words.
func Assemble(instructions []Instruction, listing func(inst Instruction, words []word.Word)) (words []word.Word) {
	offsets := Offsets(instructions)

	var data []byte
	for n, inst := range instructions {
		if inst.Kind == KIND_JUMP {
			if inst.Target < 0 || inst.Target >= len(offsets) {
				panic(fmt.Sprintf("line %d: jump target %d outside of program", inst.LineNo, inst.Target))
			}
			inst = lowerJump(inst, offsets[inst.Target]-offsets[n])
		}

		bytes := inst.Bytes()
		if listing != nil {
			emitted, _ := word.Decode(bytes)
			listing(inst, emitted)
		}
		data = append(data, bytes...)
	}

	words, err := word.Decode(data)
	if err != nil {
		panic(err)
	}

	return
}
