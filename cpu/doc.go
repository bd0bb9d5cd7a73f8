// Package cpu implements the processor and assembler for the word32 machine.
//
// The processor has a unified memory of 32-bit words holding both code and
// data, a bank of 32-bit registers, an unbounded operand stack and an
// execution pointer (EP). Each instruction is one header word (opcode byte
// and three argument descriptor bytes) followed by zero to three literal
// words, one for each argument slot marked ARG_IMMEDIATE.
//
// The assembler is two pass: labels are bound to instruction indexes, then
// instructions are parsed. Emission computes word offsets and lowers the
// label jump pseudo opcodes to relative offset jumps. Equates (.equ) and
// compile-time $(...) expressions are supported.
package cpu
