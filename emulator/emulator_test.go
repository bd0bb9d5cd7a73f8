package emulator

import (
	"errors"
	"maps"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/word32/cpu"
	"github.com/ezrec/word32/word"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(cpu.DEFAULT_MEMSIZE, cpu.DEFAULT_REGSIZE)

	assert.False(emu.Verbose)
	assert.Equal(cpu.DEFAULT_MEMSIZE, len(emu.Cpu.Memory))
	assert.Equal(0, len(emu.Program.Instructions))

	emu.Define["ANSWER"] = "42"
	defines := maps.Collect(emu.Defines())
	assert.Equal("512", defines["MEMSIZE"])
	assert.Equal("10", defines["REGSIZE"])
	assert.Equal("42", defines["ANSWER"])
}

func doAssemble(emu *Emulator, program []string, t *testing.T) {
	err := emu.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(t, err)
	if err != nil {
		t.Fatal(err)
	}

	err = emu.Reset()
	assert.NoError(t, err)
}

func TestEmulatorSingleStep(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(64, 4)
	program := []string{
		"put 3 R0",
		"put 4 R1",
		"",
		"add R0 R1 R2",
		"halt",
	}
	doAssemble(emu, program, t)

	for _, inst := range emu.Program.Instructions {
		here := program[emu.LineNo()-1]
		assert.Equal(inst.LineNo, emu.LineNo(), here)
		assert.Equal(inst.Line, here)
		done, err := emu.Tick()
		assert.NoError(err, here)
		assert.Equal(inst.Opcode == cpu.OP_HALT, done, here)
	}

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)

	assert.Equal(word.Word(7), emu.Cpu.Register[2])
	assert.Equal(4, emu.Ticks())
	assert.Equal(cpu.EP_HALT, emu.Ep())
	assert.Equal(0, emu.LineNo())
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(128, 4)
	emu.Define["BIAS"] = "0x10"
	doAssemble(emu, []string{
		"put MEMSIZE R0",
		"put $(BIAS + REGSIZE) R1",
		"halt",
	}, t)

	assert.NoError(emu.Run())
	assert.Equal(word.Word(128), emu.Cpu.Register[0])
	assert.Equal(word.Word(0x14), emu.Cpu.Register[1])
}

func TestEmulatorFault(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(64, 4)
	doAssemble(emu, []string{
		"// divide by zero",
		"put 1 R0",
		"div R0 R1 R2",
		"halt",
	}, t)

	err := emu.Run()
	assert.ErrorIs(err, word.ErrDivideByZero)

	var err_runtime *ErrRuntime
	if assert.True(errors.As(err, &err_runtime)) {
		assert.Equal(3, err_runtime.LineNo)
	}

	var err_fault *cpu.ErrFault
	if assert.True(errors.As(err, &err_fault)) {
		assert.Equal(2, err_fault.Ep)
	}

	assert.Equal(3, emu.LineNo())
	assert.Equal("div R0 R1 R2", emu.Instruction().Line)
}

func TestEmulatorAssembleError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(64, 4)
	prior := emu.Program

	err := emu.Assemble(strings.NewReader("jmp nowhere"))
	var err_syntax *cpu.ErrSyntax
	assert.True(errors.As(err, &err_syntax))
	assert.Equal(prior, emu.Program)
}

func TestEmulatorProgramSize(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(2, 4)
	err := emu.Assemble(strings.NewReader("put 1 R0\nhalt"))
	assert.NoError(err)

	err = emu.Reset()
	assert.ErrorIs(err, cpu.ErrProgramSize)
}
