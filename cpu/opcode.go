package cpu

import (
	"strings"
)

// Arity is the argument shape of an opcode.
//
//go:generate go tool stringer -linecomment -type=Arity
type Arity int

const (
	ARITY_NONE              = Arity(0)  // -
	ARITY_VALUE_REG         = Arity(1)  // value reg
	ARITY_REG_REG           = Arity(2)  // reg reg
	ARITY_VALUE             = Arity(3)  // value
	ARITY_REG               = Arity(4)  // reg
	ARITY_VALUE_VALUE_REG   = Arity(5)  // value value reg
	ARITY_VALUE_VALUE       = Arity(6)  // value value
	ARITY_VALUE_VALUE_VALUE = Arity(7)  // value value value
	ARITY_LITERAL_REG       = Arity(8)  // literal reg
	ARITY_LABEL             = Arity(9)  // label
	ARITY_VALUE_LABEL       = Arity(10) // value label
	ARITY_VALUE_VALUE_LABEL = Arity(11) // value value label
)

var arityArgs = [...]int{
	ARITY_NONE:              0,
	ARITY_VALUE_REG:         2,
	ARITY_REG_REG:           2,
	ARITY_VALUE:             1,
	ARITY_REG:               1,
	ARITY_VALUE_VALUE_REG:   3,
	ARITY_VALUE_VALUE:       2,
	ARITY_VALUE_VALUE_VALUE: 3,
	ARITY_LITERAL_REG:       2,
	ARITY_LABEL:             1,
	ARITY_VALUE_LABEL:       2,
	ARITY_VALUE_VALUE_LABEL: 3,
}

// Args returns the number of argument tokens of the arity.
func (arity Arity) Args() int {
	return arityArgs[arity]
}

// Opcode is a mnemonic of the instruction set.
type Opcode int

const (
	OP_HALT = Opcode(iota)
	OP_WAIT
	OP_NOOP
	OP_MOV
	OP_SWP
	OP_LOAD
	OP_SAVE
	OP_ADD
	OP_SUB
	OP_MUL
	OP_DIV
	OP_U_ADD
	OP_U_SUB
	OP_U_MUL
	OP_U_DIV
	OP_F_ADD
	OP_F_SUB
	OP_F_MUL
	OP_F_DIV
	OP_NOT
	OP_AND
	OP_OR
	OP_XOR
	OP_LSHIFT
	OP_RSHIFT
	OP_FTOI
	OP_ITOF
	OP_UTOI
	OP_ITOU
	OP_PEEK
	OP_PUSH
	OP_POP
	OP_JOF
	OP_JOIZ
	OP_JONZ
	OP_JOLZ
	OP_JOSZ
	OP_JOEQ
	OP_JAD
	OP_JAIZ
	OP_JANZ
	OP_JALZ
	OP_JASZ
	OP_JAEQ
	OP_SYSCALL

	// Assembler-only pseudo opcodes.
	OP_PUT
	OP_U_PUT
	OP_F_PUT
	OP_JMP
	OP_JIZ
	OP_JNZ
	OP_JLZ
	OP_JSZ
	OP_JEQ

	OP_COUNT
)

type opcodeInfo struct {
	name    string
	code    byte
	arity   Arity
	jump    bool
	literal bool
}

var opcodeTable = [OP_COUNT]opcodeInfo{
	OP_HALT:    {name: "halt", code: 0x00, arity: ARITY_NONE},
	OP_WAIT:    {name: "wait", code: 0x01, arity: ARITY_NONE},
	OP_NOOP:    {name: "noop", code: 0x0F, arity: ARITY_NONE},
	OP_MOV:     {name: "mov", code: 0x10, arity: ARITY_VALUE_REG},
	OP_SWP:     {name: "swp", code: 0x11, arity: ARITY_REG_REG},
	OP_LOAD:    {name: "load", code: 0x12, arity: ARITY_VALUE_REG},
	OP_SAVE:    {name: "save", code: 0x13, arity: ARITY_VALUE_REG},
	OP_ADD:     {name: "add", code: 0x20, arity: ARITY_VALUE_VALUE_REG},
	OP_SUB:     {name: "sub", code: 0x21, arity: ARITY_VALUE_VALUE_REG},
	OP_MUL:     {name: "mul", code: 0x22, arity: ARITY_VALUE_VALUE_REG},
	OP_DIV:     {name: "div", code: 0x23, arity: ARITY_VALUE_VALUE_REG},
	OP_U_ADD:   {name: "u_add", code: 0x30, arity: ARITY_VALUE_VALUE_REG},
	OP_U_SUB:   {name: "u_sub", code: 0x31, arity: ARITY_VALUE_VALUE_REG},
	OP_U_MUL:   {name: "u_mul", code: 0x32, arity: ARITY_VALUE_VALUE_REG},
	OP_U_DIV:   {name: "u_div", code: 0x33, arity: ARITY_VALUE_VALUE_REG},
	OP_F_ADD:   {name: "f_add", code: 0x40, arity: ARITY_VALUE_VALUE_REG},
	OP_F_SUB:   {name: "f_sub", code: 0x41, arity: ARITY_VALUE_VALUE_REG},
	OP_F_MUL:   {name: "f_mul", code: 0x42, arity: ARITY_VALUE_VALUE_REG},
	OP_F_DIV:   {name: "f_div", code: 0x43, arity: ARITY_VALUE_VALUE_REG},
	OP_NOT:     {name: "not", code: 0x50, arity: ARITY_VALUE_REG},
	OP_AND:     {name: "and", code: 0x51, arity: ARITY_VALUE_VALUE_REG},
	OP_OR:      {name: "or", code: 0x52, arity: ARITY_VALUE_VALUE_REG},
	OP_XOR:     {name: "xor", code: 0x53, arity: ARITY_VALUE_VALUE_REG},
	OP_LSHIFT:  {name: "lshift", code: 0x5E, arity: ARITY_VALUE_REG},
	OP_RSHIFT:  {name: "rshift", code: 0x5F, arity: ARITY_VALUE_REG},
	OP_FTOI:    {name: "ftoi", code: 0x60, arity: ARITY_VALUE_REG},
	OP_ITOF:    {name: "itof", code: 0x61, arity: ARITY_VALUE_REG},
	OP_UTOI:    {name: "utoi", code: 0x62, arity: ARITY_VALUE_REG},
	OP_ITOU:    {name: "itou", code: 0x63, arity: ARITY_VALUE_REG},
	OP_PEEK:    {name: "peek", code: 0x70, arity: ARITY_REG},
	OP_PUSH:    {name: "push", code: 0x71, arity: ARITY_VALUE},
	OP_POP:     {name: "pop", code: 0x72, arity: ARITY_REG},
	OP_JOF:     {name: "jof", code: 0xE0, arity: ARITY_VALUE},
	OP_JOIZ:    {name: "joiz", code: 0xE1, arity: ARITY_VALUE_VALUE},
	OP_JONZ:    {name: "jonz", code: 0xE2, arity: ARITY_VALUE_VALUE},
	OP_JOLZ:    {name: "jolz", code: 0xE3, arity: ARITY_VALUE_VALUE},
	OP_JOSZ:    {name: "josz", code: 0xE4, arity: ARITY_VALUE_VALUE},
	OP_JOEQ:    {name: "joeq", code: 0xE5, arity: ARITY_VALUE_VALUE_VALUE},
	OP_JAD:     {name: "jad", code: 0xF0, arity: ARITY_VALUE},
	OP_JAIZ:    {name: "jaiz", code: 0xF1, arity: ARITY_VALUE_VALUE},
	OP_JANZ:    {name: "janz", code: 0xF2, arity: ARITY_VALUE_VALUE},
	OP_JALZ:    {name: "jalz", code: 0xF3, arity: ARITY_VALUE_VALUE},
	OP_JASZ:    {name: "jasz", code: 0xF4, arity: ARITY_VALUE_VALUE},
	OP_JAEQ:    {name: "jaeq", code: 0xF5, arity: ARITY_VALUE_VALUE_VALUE},
	OP_SYSCALL: {name: "syscall", code: 0xFE, arity: ARITY_VALUE_VALUE_REG},

	OP_PUT:   {name: "put", code: 0x10, arity: ARITY_LITERAL_REG, literal: true},
	OP_U_PUT: {name: "u_put", code: 0x10, arity: ARITY_LITERAL_REG, literal: true},
	OP_F_PUT: {name: "f_put", code: 0x10, arity: ARITY_LITERAL_REG, literal: true},
	OP_JMP:   {name: "jmp", code: 0xF0, arity: ARITY_LABEL, jump: true},
	OP_JIZ:   {name: "jiz", code: 0xF1, arity: ARITY_VALUE_LABEL, jump: true},
	OP_JNZ:   {name: "jnz", code: 0xF2, arity: ARITY_VALUE_LABEL, jump: true},
	OP_JLZ:   {name: "jlz", code: 0xF3, arity: ARITY_VALUE_LABEL, jump: true},
	OP_JSZ:   {name: "jsz", code: 0xF4, arity: ARITY_VALUE_LABEL, jump: true},
	OP_JEQ:   {name: "jeq", code: 0xF5, arity: ARITY_VALUE_VALUE_LABEL, jump: true},
}

// decodeMap maps opcode bytes to real opcodes. Pseudo opcodes share byte
// values with real ones, and are never decoded.
var decodeMap = func() (decode map[byte]Opcode) {
	decode = make(map[byte]Opcode, OP_PUT)
	for op := range OP_PUT {
		decode[opcodeTable[op].code] = op
	}
	return
}()

// Lookup finds an opcode by mnemonic, ignoring case.
func Lookup(name string) (op Opcode, ok bool) {
	for n := range OP_COUNT {
		if strings.EqualFold(opcodeTable[n].name, name) {
			return n, true
		}
	}

	return
}

// Decode finds the real opcode for an opcode byte.
func Decode(code byte) (op Opcode, ok bool) {
	op, ok = decodeMap[code]
	return
}

func (op Opcode) valid() bool {
	return op >= 0 && op < OP_COUNT
}

// Code returns the opcode byte.
func (op Opcode) Code() byte {
	return opcodeTable[op].code
}

// Arity returns the argument shape.
func (op Opcode) Arity() Arity {
	return opcodeTable[op].arity
}

// IsJump is true for label jumps that are lowered to offset jumps.
func (op Opcode) IsJump() bool {
	return opcodeTable[op].jump
}

// IsLiteral is true for literal loads that are lowered to mov.
func (op Opcode) IsLiteral() bool {
	return opcodeTable[op].literal
}

// IsPseudo is true for opcodes that never appear in an emitted stream.
func (op Opcode) IsPseudo() bool {
	return op.IsJump() || op.IsLiteral()
}

// String returns the mnemonic.
func (op Opcode) String() string {
	if !op.valid() {
		return "?"
	}
	return opcodeTable[op].name
}
