// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package word implements the 32-bit machine word and its ALU.
//
// A Word is a single 32-bit pattern with three views: signed (two's
// complement), unsigned, and IEEE-754 single precision float. Operations
// either reinterpret the bits (Int, Uint, Float, FromFloat) or convert the
// numeric value (FtoI).
package word

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Endian is the byte order of the word stream.
var Endian = binary.BigEndian

// SIZE is the number of bytes in a serialized Word.
const SIZE = 4

const (
	ZEROES = Word(0)
	ONES   = Word(0xffffffff)
)

// Word is a 32-bit machine word.
type Word uint32

// FromInt returns the Word with the two's complement bits of value.
func FromInt(value int32) Word {
	return Word(uint32(value))
}

// FromFloat returns the Word with the IEEE-754 bits of value.
func FromFloat(value float32) Word {
	return Word(math.Float32bits(value))
}

// FromBytes returns the Word from 4 bytes, most significant byte first.
func FromBytes(b []byte) Word {
	return Word(Endian.Uint32(b))
}

// Int is the signed view.
func (w Word) Int() int32 {
	return int32(w)
}

// Uint is the unsigned view.
func (w Word) Uint() uint32 {
	return uint32(w)
}

// Float is the IEEE-754 view.
func (w Word) Float() float32 {
	return math.Float32frombits(uint32(w))
}

// Bytes serializes the word, most significant byte first.
func (w Word) Bytes() (b [SIZE]byte) {
	Endian.PutUint32(b[:], uint32(w))
	return
}

// Equal is true if both words have the same bit pattern.
func (w Word) Equal(that Word) bool {
	return w == that
}

func (w Word) Add(that Word) Word {
	return FromInt(w.Int() + that.Int())
}

func (w Word) Sub(that Word) Word {
	return FromInt(w.Int() - that.Int())
}

func (w Word) Mul(that Word) Word {
	return FromInt(w.Int() * that.Int())
}

// Div is signed division, truncated toward zero.
func (w Word) Div(that Word) (out Word, err error) {
	if that == 0 {
		err = ErrDivideByZero
		return
	}

	// math.MinInt32 / -1 wraps to math.MinInt32.
	out = FromInt(w.Int() / that.Int())
	return
}

func (w Word) UAdd(that Word) Word {
	return w.Add(that)
}

func (w Word) USub(that Word) Word {
	return w.Sub(that)
}

func (w Word) UMul(that Word) Word {
	return w.Mul(that)
}

// UDiv is unsigned division of the 32-bit magnitudes.
func (w Word) UDiv(that Word) (out Word, err error) {
	if that == 0 {
		err = ErrDivideByZero
		return
	}

	out = Word(w.Uint() / that.Uint())
	return
}

// fop applies op to the float views of both words.
func (w Word) fop(that Word, op func(a, b float32) float32) Word {
	return FromFloat(op(w.Float(), that.Float()))
}

func (w Word) FAdd(that Word) Word {
	return w.fop(that, func(a, b float32) float32 { return a + b })
}

func (w Word) FSub(that Word) Word {
	return w.fop(that, func(a, b float32) float32 { return a - b })
}

func (w Word) FMul(that Word) Word {
	return w.fop(that, func(a, b float32) float32 { return a * b })
}

// FDiv never faults; division by zero gives an infinity or NaN.
func (w Word) FDiv(that Word) Word {
	return w.fop(that, func(a, b float32) float32 { return a / b })
}

func (w Word) And(that Word) Word {
	return w & that
}

func (w Word) Or(that Word) Word {
	return w | that
}

func (w Word) Xor(that Word) Word {
	return w ^ that
}

func (w Word) Not() Word {
	return ^w
}

// LShift shifts left by one bit.
func (w Word) LShift() Word {
	return w << 1
}

// RShift shifts right by one bit, filling with zero.
func (w Word) RShift() Word {
	return w >> 1
}

// FtoI truncates the float view toward zero. NaN converts to zero, and
// values out of range saturate to the nearest int32.
func (w Word) FtoI() Word {
	value := float64(w.Float())
	switch {
	case math.IsNaN(value):
		return ZEROES
	case value >= math.MaxInt32:
		return FromInt(math.MaxInt32)
	case value <= math.MinInt32:
		return FromInt(math.MinInt32)
	}

	return FromInt(int32(value))
}

// ItoF returns the same bit pattern. It does not convert the integer value.
func (w Word) ItoF() Word {
	return w
}

// ItoU is the absolute value of the signed view, with math.MinInt32
// unchanged.
func (w Word) ItoU() Word {
	value := w.Int()
	if value < 0 {
		value = -value
	}
	return FromInt(value)
}

// UtoI adds math.MaxInt32 to negative signed views, with wraparound.
func (w Word) UtoI() Word {
	value := w.Int()
	if value < 0 {
		value += math.MaxInt32
	}
	return FromInt(value)
}

// Hex returns the word as 0xXXXXXXXX.
func (w Word) Hex() string {
	return fmt.Sprintf("0x%08X", uint32(w))
}

// String returns the hex and signed views.
func (w Word) String() string {
	return fmt.Sprintf("%v (%d)", w.Hex(), w.Int())
}

// Report returns all views of the word on a single line.
func (w Word) Report() string {
	return fmt.Sprintf("%v %11d %20f %10d %032b", w.Hex(), w.Int(), w.Float(), w.Uint(), w.Uint())
}
