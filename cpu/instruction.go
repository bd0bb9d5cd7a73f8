package cpu

import (
	"fmt"

	"github.com/ezrec/word32/word"
)

const (
	ARG_IMMEDIATE = byte(0xff) // Argument value follows as a literal word.
	ARG_PAD       = byte(0x00) // Unused argument slot.
	ARG_SLOTS     = 3          // Argument descriptors per instruction.
)

// InstructionKind tags the variant of an Instruction: the number of literal
// words, or a label jump pending lowering.
//
//go:generate go tool stringer -linecomment -type=InstructionKind
type InstructionKind int

const (
	KIND_LITERAL_0 = InstructionKind(0) // literal0
	KIND_LITERAL_1 = InstructionKind(1) // literal1
	KIND_LITERAL_2 = InstructionKind(2) // literal2
	KIND_LITERAL_3 = InstructionKind(3) // literal3
	KIND_JUMP      = InstructionKind(4) // jump
)

// Instruction is one parsed source line.
type Instruction struct {
	Kind     InstructionKind
	Opcode   Opcode
	Args     [ARG_SLOTS]byte // Register index or ARG_IMMEDIATE.
	Literals []word.Word     // Literals, in slot order.

	Label  string // Jump label.
	Target int    // Jump target instruction index.

	LineNo int    // Source line number.
	Line   string // Source text.
}

// makeInstruction creates an instruction carrying literals.
func makeInstruction(op Opcode, args [ARG_SLOTS]byte, literals ...word.Word) Instruction {
	if len(literals) > ARG_SLOTS {
		panic("too many literals")
	}

	return Instruction{
		Kind:     InstructionKind(len(literals)),
		Opcode:   op,
		Args:     args,
		Literals: literals,
	}
}

// makeJump creates a label jump, pending lowering. The comparison operand
// literals, if any, are carried in the literals.
func makeJump(op Opcode, args [ARG_SLOTS]byte, label string, target int, literals ...word.Word) Instruction {
	return Instruction{
		Kind:     KIND_JUMP,
		Opcode:   op,
		Args:     args,
		Literals: literals,
		Label:    label,
		Target:   target,
	}
}

// Width returns the number of words the instruction emits.
func (inst Instruction) Width() int {
	width := 1 + len(inst.Literals)
	if inst.Kind == KIND_JUMP {
		// Displacement literal.
		width++
	}
	return width
}

// Bytes returns the serialized instruction: opcode, argument descriptors,
// and the literal words.
func (inst Instruction) Bytes() (data []byte) {
	if inst.Kind == KIND_JUMP || inst.Opcode.IsPseudo() {
		panic(fmt.Sprintf("pseudo opcode %v not lowered", inst.Opcode))
	}

	data = make([]byte, 0, inst.Width()*word.SIZE)
	data = append(data, inst.Opcode.Code())
	data = append(data, inst.Args[:]...)
	for _, literal := range inst.Literals {
		b := literal.Bytes()
		data = append(data, b[:]...)
	}

	return
}

// String returns the source text of the instruction.
func (inst Instruction) String() string {
	if len(inst.Line) != 0 {
		return inst.Line
	}

	text := inst.Opcode.String()
	immediates := inst.Literals
	for n := range inst.Opcode.Arity().Args() {
		switch {
		case inst.Kind == KIND_JUMP && n == inst.Opcode.Arity().Args()-1:
			text += " " + inst.Label
		case inst.Args[n] == ARG_IMMEDIATE && len(immediates) > 0:
			text += " " + immediates[0].Hex()
			immediates = immediates[1:]
		default:
			text += fmt.Sprintf(" R%d", inst.Args[n])
		}
	}

	return text
}
