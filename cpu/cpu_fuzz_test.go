package cpu

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/word32/word"
)

// destImmediate is true if a register written by op is marked immediate.
func destImmediate(op Opcode, args []byte) bool {
	var dest []int
	switch op.Arity() {
	case ARITY_VALUE_REG:
		if op != OP_SAVE {
			dest = []int{1}
		}
	case ARITY_REG_REG:
		dest = []int{0, 1}
	case ARITY_VALUE_VALUE_REG:
		if op != OP_SYSCALL {
			dest = []int{2}
		}
	case ARITY_REG:
		dest = []int{0}
	}

	for _, slot := range dest {
		if args[slot] == ARG_IMMEDIATE {
			return true
		}
	}

	return false
}

func FuzzCpu(f *testing.F) {
	for op := range OP_PUT {
		code := uint32(op.Code()) << 24
		f.Add(code|0x000102, false)
		f.Add(code|0xFFFFFF, true)
		f.Add(code|0x01FF09, true)
	}

	f.Fuzz(func(t *testing.T, header uint32, stack bool) {
		assert := assert.New(t)

		cpu := NewCpu(64, 4)
		program := []word.Word{word.Word(header), 0x12, 0x0, 0x20}
		if !assert.NoError(cpu.Load(program)) {
			return
		}
		cpu.Ep = 0
		for n := range cpu.Register {
			cpu.Register[n] = word.Word(n + 1)
		}
		if stack {
			cpu.Stack.Push(0xabcd1234)
		}

		code := word.Word(header).Bytes()
		args := code[1:]

		next, err := cpu.Step()
		code_str := fmt.Sprintf("%#08x stack:%v\ncpu:%v", header, stack, cpu.String())

		op, known := Decode(code[0])
		if !known {
			assert.ErrorIs(err, ErrOpcodeUnknown, code_str)
			return
		}

		// Count the literal words, and find invalid register references.
		literals := 0
		bad_register := false
		for _, arg := range args {
			switch {
			case arg == ARG_IMMEDIATE:
				literals++
			case int(arg) >= len(cpu.Register):
				bad_register = true
			}
		}

		if err != nil {
			switch {
			case errors.Is(err, ErrRegisterInvalid):
				if !bad_register && !destImmediate(op, args) {
					assert.NoError(err, code_str)
				}
			case errors.Is(err, ErrStackEmpty):
				if stack || (op != OP_POP && op != OP_PEEK) {
					assert.NoError(err, code_str)
				}
			case errors.Is(err, word.ErrDivideByZero):
				if op != OP_DIV && op != OP_U_DIV {
					assert.NoError(err, code_str)
				}
			case errors.Is(err, ErrAddressInvalid):
				if op != OP_LOAD && op != OP_SAVE {
					assert.NoError(err, code_str)
				}
			default:
				assert.NoError(err, code_str)
			}
			return
		}

		assert.False(bad_register, code_str)

		switch {
		case op == OP_HALT:
			assert.Equal(EP_HALT, next, code_str)
		case op >= OP_JOF && op <= OP_JAEQ:
			// Conditional jumps either fall through or land on a
			// literal value, offset by the jump's own address (0).
			fallthrough_ep := 1 + literals
			landing := map[int]bool{fallthrough_ep: true, 0x12: true, 0x0: true, 0x20: true}
			for _, reg := range cpu.Register {
				landing[int(reg.Int())] = true
			}
			assert.True(landing[next], code_str)
		default:
			assert.Equal(1+literals, next, code_str)
		}

		// Step never moves the execution pointer.
		assert.Equal(0, cpu.Ep, code_str)
	})
}
