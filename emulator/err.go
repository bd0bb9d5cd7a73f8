package emulator

import (
	"github.com/ezrec/word32/translate"
)

var f = translate.From

// ErrRuntime indicates the source line of a runtime fault.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
