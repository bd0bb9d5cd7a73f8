package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/word32/word"
)

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	assert.True(s.Empty())

	s.Push(0x12345678)
	assert.False(s.Empty())
	assert.Equal(1, s.Depth())
	assert.Equal(word.Word(0x12345678), s.Data[0])
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	s.Push(0x12345678)
	s.Push(0xABCDEF01)

	val, ok := s.Pop()
	assert.True(ok)
	assert.Equal(word.Word(0xABCDEF01), val)
	assert.Equal(1, s.Depth())

	val, ok = s.Pop()
	assert.True(ok)
	assert.Equal(word.Word(0x12345678), val)
	assert.True(s.Empty())

	_, ok = s.Pop()
	assert.False(ok)
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	_, ok := s.Peek()
	assert.False(ok)

	s.Push(7)
	val, ok := s.Peek()
	assert.True(ok)
	assert.Equal(word.Word(7), val)
	assert.Equal(1, s.Depth())
}

func TestStack_Discipline(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	s.Push(1)
	s.Push(2)
	depth := s.Depth()

	s.Push(0xdeadbeef)
	val, ok := s.Pop()
	assert.True(ok)
	assert.Equal(word.Word(0xdeadbeef), val)
	assert.Equal(depth, s.Depth())
}

func TestStack_Reset(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	for n := range 1000 {
		s.Push(word.Word(n))
	}
	assert.Equal(1000, s.Depth())

	s.Reset()
	assert.True(s.Empty())
}
