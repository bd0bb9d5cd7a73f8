// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/word32/word"
)

const (
	LABEL_PREFIX    = "_" // Label definitions start with this.
	LABEL_SUFFIX    = ":" // Optional label definition suffix.
	REGISTER_PREFIX = "R" // Register references, case insensitive.
	COMMENT_INLINE  = ";" // Remainder of the line is a comment.
)

// Full line comment markers.
var commentPrefix = []string{"//", "#"}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":          "0",
	"ARG_IMMEDIATE":   fmt.Sprintf("%#x", ARG_IMMEDIATE),
	"DEFAULT_MEMSIZE": fmt.Sprintf("%v", DEFAULT_MEMSIZE),
	"DEFAULT_REGSIZE": fmt.Sprintf("%v", DEFAULT_REGSIZE),
}

// Assembler is a two pass assembler for the word32 machine.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to instruction indexes.
	Equate    map[string]string // Map of equates.
}

// sourceLine is a preprocessed line of source.
type sourceLine struct {
	LineNo int
	Line   string
	Words  []string
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of an integer literal, in hex (0x prefix) or
// decimal.
func (asm *Assembler) valueOf(text string) (value word.Word, err error) {
	invert := false
	str := text
	if len(str) > 0 && str[0] == '~' {
		invert = true
		str = str[1:]
	}

	sign := ""
	if len(str) > 0 && (str[0] == '-' || str[0] == '+') {
		sign = str[:1]
		str = str[1:]
	}

	base := 10
	if len(str) > 1 && str[0] == '0' && (str[1] == 'x' || str[1] == 'X') {
		base = 16
		str = str[2:]
	}

	if len(str) == 0 || str[0] == '-' || str[0] == '+' {
		err = ErrParseNumber(text)
		return
	}

	v64, err := strconv.ParseInt(sign+str, base, 64)
	if err != nil || v64 > 0xffffffff || v64 < -int64(0x80000000) {
		err = ErrParseNumber(text)
		return
	}

	value = word.Word(uint32(v64))
	if invert {
		value = value.Not()
	}

	return
}

// floatOf returns the value of a decimal floating point literal.
func (asm *Assembler) floatOf(text string) (value word.Word, err error) {
	f64, err := strconv.ParseFloat(text, 32)
	if err != nil {
		err = ErrParseNumber(text)
		return
	}

	value = word.FromFloat(float32(f64))
	return
}

// registerOf decodes a register reference. Words that do not look like a
// register reference are not an error.
func (asm *Assembler) registerOf(text string) (reg byte, ok bool, err error) {
	if len(text) < 2 || !strings.EqualFold(text[:1], REGISTER_PREFIX) {
		return
	}
	digits := text[1:]
	if strings.TrimLeft(digits, "0123456789") != "" {
		return
	}

	ok = true
	index, err := strconv.ParseUint(digits, 10, 8)
	if err != nil || byte(index) == ARG_IMMEDIATE {
		err = ErrRegister(text)
		return
	}

	reg = byte(index)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value string, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v word.Word
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(int64(v.Int()))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}

	switch rc := dict["rc"].(type) {
	case starlark.Int:
		st_int64, ok := rc.Int64()
		if !ok {
			err = ErrParseExpression(expr)
			return
		}
		value = fmt.Sprintf("%#x", uint32(st_int64))
	case starlark.Float:
		value = strconv.FormatFloat(float64(rc), 'g', -1, 32)
	default:
		err = ErrParseExpression(expr)
	}

	return
}

// parseLine preprocesses a single line into words. Directives and blank
// lines return no words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return value
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, w := range words {
		equate, ok := asm.Equate[w]
		if ok {
			words[n] = equate
		}
	}

	return
}

// isComment checks for a full line comment.
func isComment(line string) bool {
	for _, prefix := range commentPrefix {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// isLabel checks for a label definition.
func isLabel(text string) bool {
	return strings.HasPrefix(text, LABEL_PREFIX)
}

// labelName returns the name of a label definition or reference.
func labelName(text string) string {
	return strings.TrimPrefix(strings.TrimSuffix(text, LABEL_SUFFIX), LABEL_PREFIX)
}

// Parse parses an input stream into a Program containing instructions.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]int, 16)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	var lines []sourceLine
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment, _, _ := strings.Cut(text, COMMENT_INLINE)
		line = strings.TrimSpace(text_comment)
		if isComment(line) {
			continue
		}

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
		if len(words) == 0 {
			continue
		}

		lines = append(lines, sourceLine{LineNo: lineno, Line: line, Words: words})
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Pass 1: bind labels to instruction indexes.
	index := 0
	for _, src := range lines {
		lineno, line = src.LineNo, src.Line
		if isLabel(src.Words[0]) {
			label := labelName(src.Words[0])
			if len(label) == 0 {
				err = ErrInstructionInvalid
				return
			}
			_, ok := asm.Label[label]
			if ok {
				err = ErrLabelDuplicate
				return
			}
			asm.Label[label] = index
			if len(src.Words) == 1 {
				continue
			}
		}
		index++
	}

	// Pass 2: parse instructions.
	instructions := make([]Instruction, 0, index)
	for _, src := range lines {
		lineno, line = src.LineNo, src.Line
		words := src.Words
		if isLabel(words[0]) {
			words = words[1:]
		}
		if len(words) == 0 {
			continue
		}

		var inst Instruction
		inst, err = asm.parseWords(words)
		if err != nil {
			return
		}
		inst.LineNo = src.LineNo
		inst.Line = src.Line
		instructions = append(instructions, inst)
	}

	prog = &Program{
		Instructions: instructions,
		offsets:      Offsets(instructions),
	}

	return
}

// parseArgs builds the argument descriptors and literals for value and
// register arguments. Literals are kept in argument order.
func (asm *Assembler) parseArgs(args []string) (descs [ARG_SLOTS]byte, literals []word.Word, err error) {
	for n, arg := range args {
		var reg byte
		var ok bool
		reg, ok, err = asm.registerOf(arg)
		if err != nil {
			return
		}
		if ok {
			descs[n] = reg
			continue
		}

		var value word.Word
		value, err = asm.valueOf(arg)
		if err != nil {
			return
		}
		descs[n] = ARG_IMMEDIATE
		literals = append(literals, value)
	}

	return
}

// parseWords evaluates the words of a line, without its label.
func (asm *Assembler) parseWords(words []string) (inst Instruction, err error) {
	op, ok := Lookup(words[0])
	if !ok {
		err = ErrMnemonic(words[0])
		return
	}

	args := words[1:]
	count := op.Arity().Args()
	if len(args) > count {
		err = fmt.Errorf("%w: %v %v", ErrOpcodeExtraArgs, op, op.Arity())
		return
	}

	var descs [ARG_SLOTS]byte
	var literals []word.Word

	switch {
	case op.IsJump():
		if len(args) < count {
			err = ErrTargetMissing
			return
		}
		label := labelName(args[count-1])
		target, ok := asm.Label[label]
		if !ok {
			err = ErrLabelMissing(label)
			return
		}
		descs, literals, err = asm.parseArgs(args[:count-1])
		if err != nil {
			return
		}
		inst = makeJump(op, descs, label, target, literals...)
	case op.IsLiteral():
		if len(args) < count {
			err = ErrOpcodeValueMissing
			return
		}
		reg, ok, _err := asm.registerOf(args[1])
		if _err != nil {
			err = _err
			return
		}
		if !ok {
			err = ErrRegister(args[1])
			return
		}
		var value word.Word
		switch op {
		case OP_F_PUT:
			value, err = asm.floatOf(args[0])
		default:
			value, err = asm.valueOf(args[0])
		}
		if err != nil {
			return
		}
		inst = makeInstruction(OP_MOV, [ARG_SLOTS]byte{ARG_IMMEDIATE, reg, ARG_PAD}, value)
	default:
		// Missing trailing arguments are left as R0.
		descs, literals, err = asm.parseArgs(args)
		if err != nil {
			return
		}
		inst = makeInstruction(op, descs, literals...)
	}

	return
}

// Assemble emits the word stream for the instructions, logging the
// listing if verbose.
func (asm *Assembler) Assemble(instructions []Instruction) (words []word.Word) {
	var listing func(inst Instruction, words []word.Word)
	if asm.Verbose {
		listing = func(inst Instruction, words []word.Word) {
			hex := make([]string, len(words))
			for n, w := range words {
				hex[n] = w.Hex()
			}
			log.Printf("%20s  :  %-30s", inst.String(), strings.Join(hex, " "))
		}
	}

	return Assemble(instructions, listing)
}
