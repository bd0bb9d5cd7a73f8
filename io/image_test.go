package io

import (
	"bytes"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/word32/word"
)

func TestImageWriteTo(t *testing.T) {
	assert := assert.New(t)

	img := &Image{Words: []word.Word{0x1000FF00, 0x00000005, 0x00000000}}

	buff := &bytes.Buffer{}
	n, err := img.WriteTo(buff)
	assert.NoError(err)
	assert.Equal(int64(12), n)
	assert.Equal([]byte{
		0x10, 0x00, 0xFF, 0x00,
		0x00, 0x00, 0x00, 0x05,
		0x00, 0x00, 0x00, 0x00,
	}, buff.Bytes())
}

func TestImageReadFrom(t *testing.T) {
	assert := assert.New(t)

	img := &Image{}
	n, err := img.ReadFrom(bytes.NewReader([]byte{0xE2, 0x00, 0xFF, 0x00, 0xFF, 0xFF, 0xFF, 0xFE}))
	assert.NoError(err)
	assert.Equal(int64(8), n)
	assert.Equal([]word.Word{0xE200FF00, word.FromInt(-2)}, img.Words)

	// Empty streams are valid.
	_, err = img.ReadFrom(bytes.NewReader(nil))
	assert.NoError(err)
	assert.Equal(0, len(img.Words))
}

func TestImageReadFromErrors(t *testing.T) {
	assert := assert.New(t)

	img := &Image{Words: []word.Word{7}}
	_, err := img.ReadFrom(bytes.NewReader([]byte{1, 2, 3, 4, 5}))
	assert.ErrorIs(err, word.ErrStreamLength)
	assert.Equal([]word.Word{7}, img.Words)

	img = &Image{Limit: 1}
	_, err = img.ReadFrom(bytes.NewReader(make([]byte, 8)))
	assert.ErrorIs(err, ErrImageSize)

	_, err = img.ReadFrom(bytes.NewReader(make([]byte, 4)))
	assert.NoError(err)
	assert.Equal(1, len(img.Words))

	failure := errors.New("media failure")
	_, err = img.ReadFrom(iotest.ErrReader(failure))
	assert.ErrorIs(err, failure)
}

func TestImageRoundTrip(t *testing.T) {
	assert := assert.New(t)

	src := &Image{Words: []word.Word{word.ONES, word.ZEROES, word.FromFloat(1.5), 0x12345678}}

	buff := &bytes.Buffer{}
	_, err := src.WriteTo(buff)
	assert.NoError(err)

	dst := &Image{}
	_, err = dst.ReadFrom(buff)
	assert.NoError(err)
	assert.Equal(src.Words, dst.Words)
}
