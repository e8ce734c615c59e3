// Package main provides the entry point for mipsrun, the MIPS I core's
// command-line driver.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/NM711/MIPS-Emulator/emu"
	"github.com/NM711/MIPS-Emulator/loader"
)

var (
	startPC    = flag.Uint64("pc", 0, "Initial program counter")
	maxSteps   = flag.Uint64("max-steps", 0, "Maximum steps to run (0 = unbounded)")
	verbose    = flag.Bool("v", false, "Verbose output")
	traceSteps = flag.Bool("trace", false, "Print a line per executed instruction")
	syscalls   = flag.Bool("syscalls", false, "Handle syscalls with the classic SPIM/MARS print/read/exit console convention (default: no-op)")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: mipsrun [options] <program.bin>\n\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	programPath := flag.Arg(0)

	prog, err := loader.LoadWithEntry(programPath, uint32(*startPC))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Loaded: %s\n", programPath)
		fmt.Printf("Entry point: 0x%X\n", prog.EntryPoint)
		fmt.Printf("Size: %d bytes\n", len(prog.Data))
	}

	exitCode := run(prog, programPath)
	os.Exit(int(exitCode))
}

func run(prog *loader.Program, programPath string) int64 {
	opts := []emu.EmulatorOption{
		emu.WithStartPC(prog.EntryPoint),
		emu.WithMaxSteps(*maxSteps),
	}
	if *traceSteps {
		opts = append(opts, emu.WithTrace(os.Stdout))
	}
	if *syscalls {
		opts = append(opts, emu.WithSimpleSyscallHandler(os.Stdin, os.Stdout, os.Stderr))
	}

	e := emu.NewEmulator(opts...)

	if err := prog.LoadInto(e); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program into memory: %v\n", err)
		return -1
	}

	exitCode := e.Run()

	if *verbose {
		fmt.Printf("\nProgram: %s\n", programPath)
		fmt.Printf("Exit code: %d\n", exitCode)
		fmt.Printf("Instructions executed: %d\n", e.StepCount())
	}

	return exitCode
}
