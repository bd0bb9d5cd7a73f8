// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package io reads and writes word32 binary images.
//
// An image is the flat word stream emitted by the assembler: each word is
// four bytes, most significant byte first, with no header.
package io

import (
	"io"

	"github.com/ezrec/word32/word"
)

// Image is a binary program image.
type Image struct {
	Words []word.Word // Image contents.
	Limit int         // If non-zero, maximum image size in words.
}

var _ io.ReaderFrom = (*Image)(nil)
var _ io.WriterTo = (*Image)(nil)

// ReadFrom replaces the image with the word stream read from r, until EOF.
func (img *Image) ReadFrom(r io.Reader) (n int64, err error) {
	var data []byte
	if img.Limit > 0 {
		// One extra word detects an oversized image.
		r = io.LimitReader(r, int64(img.Limit+1)*word.SIZE)
	}

	data, err = io.ReadAll(r)
	n = int64(len(data))
	if err != nil {
		return
	}

	if img.Limit > 0 && len(data) > img.Limit*word.SIZE {
		err = ErrImageSize
		return
	}

	words, err := word.Decode(data)
	if err != nil {
		return
	}

	img.Words = words
	return
}

// WriteTo writes the image as a word stream to w.
func (img *Image) WriteTo(w io.Writer) (n int64, err error) {
	written, err := w.Write(word.Encode(img.Words))
	n = int64(written)
	return
}
