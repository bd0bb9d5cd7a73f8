package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/word32/word"
)

func TestProgram_Offsets(t *testing.T) {
	assert := assert.New(t)

	instructions := []Instruction{
		makeInstruction(OP_HALT, [ARG_SLOTS]byte{}),
		makeInstruction(OP_MOV, [ARG_SLOTS]byte{ARG_IMMEDIATE, 1, ARG_PAD}, 5),
		makeJump(OP_JEQ, [ARG_SLOTS]byte{ARG_IMMEDIATE, ARG_IMMEDIATE, ARG_PAD}, "top", 0, 1, 2),
		makeInstruction(OP_JOEQ, [ARG_SLOTS]byte{ARG_IMMEDIATE, ARG_IMMEDIATE, ARG_IMMEDIATE}, 1, 2, 3),
	}

	assert.Equal(KIND_LITERAL_0, instructions[0].Kind)
	assert.Equal(KIND_LITERAL_1, instructions[1].Kind)
	assert.Equal(KIND_JUMP, instructions[2].Kind)
	assert.Equal(KIND_LITERAL_3, instructions[3].Kind)

	assert.Equal([]int{0, 1, 3, 7, 11}, Offsets(instructions))
	assert.Equal([]int{0}, Offsets(nil))
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join([]string{
		"put 0x10 R0",
		"noop",
		"jeq R0 0x10 end",
		"_end: halt",
	}, "\n")))
	if !assert.NoError(err) {
		return
	}

	expected := []struct {
		lineNo int
		index  int
	}{
		{1, 0}, {1, 1},
		{2, 0},
		{3, 0}, {3, 1}, {3, 2},
		{4, 0},
	}

	for ep, exp := range expected {
		dbg, ok := prog.Debug(ep)
		if assert.True(ok, ep) {
			assert.Equal(exp.lineNo, dbg.LineNo, ep)
			assert.Equal(exp.index, dbg.Index, ep)
		}
	}

	_, ok := prog.Debug(len(expected))
	assert.False(ok)
	_, ok = prog.Debug(-1)
	assert.False(ok)
}

func TestProgram_DebugOffsetsCached(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Instructions: []Instruction{
			makeInstruction(OP_MOV, [ARG_SLOTS]byte{ARG_IMMEDIATE, 1, ARG_PAD}, 5),
			makeInstruction(OP_HALT, [ARG_SLOTS]byte{}),
		},
	}

	dbg, ok := prog.Debug(1)
	if assert.True(ok) {
		assert.Equal(OP_MOV, dbg.Opcode)
		assert.Equal(1, dbg.Index)
	}

	cached := prog.Offsets()
	assert.Equal([]int{0, 2, 3}, cached)
	for ep := range 3 {
		prog.Debug(ep)
	}
	assert.Same(&cached[0], &prog.Offsets()[0])

	// Appending an instruction rebuilds the cache.
	prog.Instructions = append(prog.Instructions, makeInstruction(OP_NOOP, [ARG_SLOTS]byte{}))
	assert.Equal([]int{0, 2, 3, 4}, prog.Offsets())
	dbg, ok = prog.Debug(3)
	if assert.True(ok) {
		assert.Equal(OP_NOOP, dbg.Opcode)
	}
	_, ok = prog.Debug(4)
	assert.False(ok)
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Instructions: []Instruction{
			makeInstruction(OP_ADD, [ARG_SLOTS]byte{ARG_IMMEDIATE, 1, 2}, 0x11223344),
			makeJump(OP_JMP, [ARG_SLOTS]byte{}, "start", 0),
		},
	}

	expected := []word.Word{
		0x20FF0102, 0x11223344,
		0xE0FF0000, word.FromInt(-2),
	}
	assert.Equal(expected, prog.Binary())
}

func TestProgram_AssemblePanics(t *testing.T) {
	assert := assert.New(t)

	assert.Panics(func() {
		Assemble([]Instruction{makeJump(OP_JMP, [ARG_SLOTS]byte{}, "far", 10)}, nil)
	})

	assert.Panics(func() {
		Assemble([]Instruction{makeJump(OP_ADD, [ARG_SLOTS]byte{}, "odd", 0)}, nil)
	})

	assert.Panics(func() {
		makeInstruction(OP_PUT, [ARG_SLOTS]byte{ARG_IMMEDIATE, 0, 0}, 1).Bytes()
	})
}

func TestInstruction_String(t *testing.T) {
	assert := assert.New(t)

	inst := makeInstruction(OP_ADD, [ARG_SLOTS]byte{ARG_IMMEDIATE, 1, 2}, 5)
	assert.Equal("add 0x00000005 R1 R2", inst.String())

	inst = makeJump(OP_JNZ, [ARG_SLOTS]byte{3}, "loop", 0)
	assert.Equal("jnz R3 loop", inst.String())

	inst.Line = "jnz R3 _loop"
	assert.Equal("jnz R3 _loop", inst.String())
}
