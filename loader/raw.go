// Package loader provides raw-binary loading for the MIPS I core.
//
// The core expects a headerless stream of big-endian 32-bit instructions,
// produced by an external toolchain (assemble, link against a flat
// layout, extract the .text section as raw bytes). There is no ELF, no
// segment table, and no symbol information: the file's bytes are copied
// verbatim into memory starting at the program's entry point (address 0
// unless LoadWithEntry sets another).
package loader

import (
	"fmt"
	"os"

	"github.com/NM711/MIPS-Emulator/emu"
)

// MaxProgramSize is the largest raw binary this loader will accept:
// 2^32 - 1 bytes, matching the core's addressable memory ceiling.
const MaxProgramSize = emu.MaxMemorySize

// Program is a loaded raw binary ready for execution.
type Program struct {
	// EntryPoint is the byte address execution should begin at. The raw
	// format has no header, so this is always 0 unless the caller
	// overrides it (see LoadWithEntry).
	EntryPoint uint32

	// Data is the verbatim file contents.
	Data []byte
}

// Load reads a raw binary file from path and returns a Program with entry
// point 0. Files larger than MaxProgramSize are rejected.
func Load(path string) (*Program, error) {
	return LoadWithEntry(path, 0)
}

// LoadWithEntry reads a raw binary file from path and returns a Program
// whose EntryPoint is set to entry, for callers whose machine is
// configured to start execution somewhere other than address 0.
func LoadWithEntry(path string, entry uint32) (*Program, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("loader: cannot stat %q: %w", path, err)
	}
	if info.Size() > MaxProgramSize {
		return nil, fmt.Errorf("loader: %q is %d bytes, exceeds the %d byte addressable limit", path, info.Size(), MaxProgramSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: cannot read %q: %w", path, err)
	}

	return &Program{EntryPoint: entry, Data: data}, nil
}

// LoadInto loads the program into the emulator's memory and sets PC to
// the program's entry point.
func (p *Program) LoadInto(e *emu.Emulator) error {
	return e.LoadProgram(p.EntryPoint, p.Data)
}
