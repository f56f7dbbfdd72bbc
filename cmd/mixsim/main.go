// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"fmt"
	stdio "io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	getopt "github.com/pborman/getopt/v2"

	"github.com/ezrec/mix/cpu"
	"github.com/ezrec/mix/emulator"
	mixio "github.com/ezrec/mix/io"
)

// outputFile creates its file on the first write.
type outputFile struct {
	path string
	file *os.File
}

func (of *outputFile) Write(data []byte) (n int, err error) {
	if of.file == nil {
		of.file, err = os.Create(of.path)
		if err != nil {
			return
		}
	}
	return of.file.Write(data)
}

func (of *outputFile) Seek(offset int64, whence int) (pos int64, err error) {
	if of.file == nil {
		return
	}
	return of.file.Seek(offset, whence)
}

func (of *outputFile) Close() (err error) {
	if of.file != nil {
		err = of.file.Close()
	}
	return
}

func openInput(path string) *os.File {
	if path == "-" {
		return os.Stdin
	}
	inf, err := os.Open(path)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return inf
}

func createOutput(path string) *os.File {
	if path == "-" {
		return os.Stdout
	}
	ouf, err := os.Create(path)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return ouf
}

func main() {
	optSource := getopt.StringLong("source", 'c', "", "MIXAL source file to assemble and run")
	optCards := getopt.StringLong("cards", 'r', "", "Card deck for the card reader, '-' for stdin")
	optPunch := getopt.StringLong("punch", 'u', "", "Card punch output file")
	optPrinter := getopt.StringLong("printer", 'p', "-", "Line printer output file, '-' for stdout")
	optTapes := getopt.StringLong("tapes", 't', "", "Directory of N.tape inputs and N.out outputs, in-memory tapes if unset")
	optDrums := getopt.StringLong("drums", 'd', "", "Directory of NN.drum images")
	optLimit := getopt.IntLong("limit", 'n', 0, "Maximum number of steps, 0 for no limit")
	optUndefined := getopt.BoolLong("undefined", 'U', "Allocate a cell for each undefined symbol at END")
	optProfile := getopt.BoolLong("profile", 'P', "Print the execution profile")
	optVerbose := getopt.BoolLong("verbose", 'v', "Verbose mode")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	source := *optSource
	args := getopt.Args()
	if len(source) == 0 && len(args) == 1 {
		source = args[0]
		args = args[1:]
	}
	if len(args) != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], args)
	}
	if len(source) == 0 {
		getopt.Usage()
		os.Exit(1)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = *optVerbose
	emu.Assembler.AllocateUndefined = *optUndefined

	if len(*optCards) != 0 {
		inf := openInput(*optCards)
		defer inf.Close()
		emu.SetDevice(cpu.UNIT_CARD_READER, mixio.NewCardReader(inf))
	}

	if len(*optPunch) != 0 {
		ouf := createOutput(*optPunch)
		defer ouf.Close()
		emu.SetDevice(cpu.UNIT_CARD_PUNCH, mixio.NewCardPunch(ouf))
	}

	if len(*optPrinter) != 0 {
		ouf := createOutput(*optPrinter)
		defer ouf.Close()
		emu.SetDevice(cpu.UNIT_PRINTER, mixio.NewLinePrinter(ouf))
	}

	if len(*optTapes) != 0 {
		for n := range emulator.TAPE_COUNT {
			var input stdio.Reader
			inf, err := os.Open(filepath.Join(*optTapes, fmt.Sprintf("%d.tape", n)))
			switch {
			case err == nil:
				defer inf.Close()
				input = inf
			case !errors.Is(err, fs.ErrNotExist):
				log.Fatalf("%v", err)
			}

			ouf := &outputFile{path: filepath.Join(*optTapes, fmt.Sprintf("%d.out", n))}
			defer ouf.Close()
			err = emu.AttachTape(n, input, ouf)
			if err != nil {
				log.Fatalf("tape %v: %v", n, err)
			}
		}
	}

	if len(*optDrums) != 0 {
		err := emu.Depot.Unmarshal(os.DirFS(*optDrums))
		if err != nil {
			log.Fatalf("%v: %v", *optDrums, err)
		}
	}

	inf, err := os.Open(source)
	if err != nil {
		log.Fatalf("%v", err)
	}
	prog, err := emu.LoadProgram(inf)
	inf.Close()
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	steps, err := emu.RunUntil(nil, *optLimit)
	if err != nil {
		log.Printf("%v: %v", source, err)
		log.Printf("after %v steps:\n%v", steps, emu.Mix.String())
	}

	if len(*optDrums) != 0 {
		derr := emu.Depot.Marshal(mixio.DirFS(*optDrums))
		if derr != nil {
			log.Printf("%v: %v", *optDrums, derr)
			err = errors.Join(err, derr)
		}
	}

	if *optProfile {
		for addr, usage := range emu.Profile() {
			line, _ := prog.Debug(addr)
			fmt.Fprintf(os.Stderr, "%04d %8d %10d  %5d: %v\n", addr, usage.Count, usage.Time, line.LineNo, line.Text)
		}
		fmt.Fprintf(os.Stderr, "total time %v\n", emu.Time)
	}

	if err != nil {
		os.Exit(1)
	}
}
