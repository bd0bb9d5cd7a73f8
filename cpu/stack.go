package cpu

import (
	"github.com/ezrec/word32/word"
)

// Stack is the unbounded operand stack.
type Stack struct {
	Data []word.Word
}

func (s *Stack) Push(value word.Word) {
	s.Data = append(s.Data, value)
}

func (s *Stack) Pop() (value word.Word, ok bool) {
	value, ok = s.Peek()
	if ok {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Depth() int {
	return len(s.Data)
}

func (s *Stack) Peek() (value word.Word, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1], true
}

func (s *Stack) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}
