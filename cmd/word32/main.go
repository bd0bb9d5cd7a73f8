// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ezrec/word32/cpu"
	"github.com/ezrec/word32/emulator"
	"github.com/ezrec/word32/io"
	"github.com/ezrec/word32/translate"
	"github.com/ezrec/word32/word"
)

// IMAGE_SUFFIX is the file suffix of assembled binary images.
const IMAGE_SUFFIX = ".pro"

// imageName returns the image file name for a source file, in the current
// directory.
func imageName(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base)) + IMAGE_SUFFIX
}

func main() {
	var compile string
	var binary string
	var save bool
	var memSize int
	var regSize int
	var verbose bool

	defines := map[string]string{}

	flag.StringVar(&compile, "c", "", "assembly source file to compile and run")
	flag.StringVar(&binary, "b", "", IMAGE_SUFFIX+" binary image to run")
	flag.BoolVar(&save, "s", false, "Save the compiled image to "+IMAGE_SUFFIX+", do not execute")
	flag.IntVar(&memSize, "m", cpu.DEFAULT_MEMSIZE, "Memory size, in words")
	flag.IntVar(&regSize, "r", cpu.DEFAULT_REGSIZE, "Number of registers")
	flag.Func("D", "Predefine an equate, as NAME=VALUE", func(arg string) error {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || len(name) == 0 {
			return cpu.ErrEquateSyntax
		}
		defines[name] = value
		return nil
	})
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if (len(compile) == 0) == (len(binary) == 0) {
		log.Fatalf("%v: exactly one of -c or -b is required", os.Args[0])
	}

	if save && len(compile) == 0 {
		log.Fatalf("%v: -s requires -c", os.Args[0])
	}

	err := cpu.CheckSize(memSize, regSize)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	emu := emulator.NewEmulator(memSize, regSize)
	emu.Verbose = verbose
	for name, value := range defines {
		emu.Define[name] = value
	}

	var words []word.Word
	if len(compile) != 0 {
		// Compile a new instruction stream.
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		err = emu.Assemble(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		words = emu.Program.Binary()
	} else {
		img := &io.Image{Limit: memSize}
		inf, err := os.Open(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		defer inf.Close()

		_, err = img.ReadFrom(inf)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		words = img.Words
	}

	if save {
		output := imageName(compile)
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()

		img := &io.Image{Words: words}
		_, err = img.WriteTo(ouf)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		if verbose {
			log.Printf("%v: %d words", output, len(words))
		}
		return
	}

	err = emu.Cpu.Load(words)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	err = emu.Run()

	os.Stdout.WriteString(emu.Cpu.String())
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	translate.Fprintf(os.Stderr, "%v: halted after %d ticks\n", os.Args[0], emu.Ticks())
}
