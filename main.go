// Package main provides a banner entry point for the MIPS I core.
//
// For the full CLI, use: go run ./cmd/mipsrun
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("MIPS-Emulator - bit-accurate MIPS I interpreter")
	fmt.Println("")
	fmt.Println("Usage: mipsrun [options] <program.bin>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -pc         Initial program counter")
	fmt.Println("  -max-steps  Maximum steps to run (0 = unbounded)")
	fmt.Println("  -trace      Print a line per executed instruction")
	fmt.Println("  -syscalls   Handle syscalls with the SPIM/MARS console convention")
	fmt.Println("  -v          Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/mipsrun' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/mipsrun' instead.")
	}
}
