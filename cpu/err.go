package cpu

import (
	"errors"

	"github.com/ezrec/word32/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted          = errors.New(f("halted"))
	ErrStackEmpty      = errors.New(f("stack empty"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrAddressInvalid  = errors.New(f("address invalid"))
	ErrProgramSize     = errors.New(f("program exceeds memory"))
	ErrMemorySize      = errors.New(f("memory size must be at least one word"))
	ErrRegisterSize    = errors.New(f("register count must be at least one"))

	// Instruction decode errors
	ErrOpcodeUnknown = errors.New(f("opcode unknown"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrTargetMissing      = errors.New(f("target missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrMnemonic is an unknown mnemonic in the source.
type ErrMnemonic string

func (em ErrMnemonic) Error() string {
	return f("unknown opcode '%v'", string(em))
}

func (em ErrMnemonic) Unwrap() error {
	return ErrOpcodeUnknown
}

// ErrRegister is a malformed register reference in the source.
type ErrRegister string

func (er ErrRegister) Error() string {
	return f("'%v' is not a register", string(er))
}

func (er ErrRegister) Unwrap() error {
	return ErrRegisterInvalid
}

// ErrSyntax is an assembly error, located at a source line.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %v '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrFault is a runtime fault, located at the execution pointer of the
// faulting instruction.
type ErrFault struct {
	Ep  int
	Err error
}

func (err *ErrFault) Error() string {
	return f("ep %#04x %v", err.Ep, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}
