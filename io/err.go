package io

import (
	"errors"

	"github.com/ezrec/word32/translate"
)

var f = translate.From

var (
	// Image errors
	ErrImageSize = errors.New(f("image exceeds limit"))
)
