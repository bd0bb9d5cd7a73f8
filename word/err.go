package word

import (
	"errors"

	"github.com/ezrec/word32/translate"
)

var f = translate.From

var (
	ErrDivideByZero = errors.New(f("integer divide by zero"))
	ErrStreamLength = errors.New(f("word stream length not a multiple of 4"))
)
