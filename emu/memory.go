// Package emu provides a MIPS I emulation core.
package emu

import (
	"encoding/binary"
	"fmt"
)

// MaxMemorySize is the largest memory image this core will address:
// 2^32 - 1 bytes, matching the loader's size ceiling.
const MaxMemorySize = 1<<32 - 1

// Memory is a flat, byte-addressable, dynamically sized vector of octets.
// It is the sole mutable resource of significant size in the machine and
// is owned exclusively by the Emulator instance holding it.
type Memory struct {
	data []byte
}

// NewMemory creates an empty memory image. Use Grow or LoadAt to size it.
func NewMemory() *Memory {
	return &Memory{}
}

// NewMemorySized creates a zero-filled memory image of the given size.
func NewMemorySized(size uint32) *Memory {
	return &Memory{data: make([]byte, size)}
}

// Len reports the current size of the memory image in bytes.
func (m *Memory) Len() int {
	return len(m.data)
}

// Grow extends the memory image to at least size bytes, zero-filling the
// new region. It is a no-op if the memory is already at least that large.
func (m *Memory) Grow(size uint32) {
	if uint32(len(m.data)) >= size {
		return
	}
	grown := make([]byte, size)
	copy(grown, m.data)
	m.data = grown
}

// LoadAt copies data into the memory image starting at addr, growing the
// image if necessary. It is the loader's entry point into Memory and is
// only ever called before execution begins.
func (m *Memory) LoadAt(addr uint32, data []byte) error {
	end := uint64(addr) + uint64(len(data))
	if end > MaxMemorySize {
		return fmt.Errorf("load at 0x%X: %d bytes exceeds the %d byte addressable limit", addr, len(data), MaxMemorySize)
	}
	m.Grow(uint32(end))
	copy(m.data[addr:], data)
	return nil
}

func (m *Memory) boundsError(addr uint32, width int) error {
	return fmt.Errorf("memory access out of bounds: address 0x%X, width %d, memory size %d", addr, width, len(m.data))
}

// Read8 reads a single byte at addr.
func (m *Memory) Read8(addr uint32) (byte, error) {
	if uint64(addr) >= uint64(len(m.data)) {
		return 0, m.boundsError(addr, 1)
	}
	return m.data[addr], nil
}

// Write8 writes a single byte at addr.
func (m *Memory) Write8(addr uint32, value byte) error {
	if uint64(addr) >= uint64(len(m.data)) {
		return m.boundsError(addr, 1)
	}
	m.data[addr] = value
	return nil
}

// Read16 reads a big-endian halfword at addr, addr+1.
func (m *Memory) Read16(addr uint32) (uint16, error) {
	if uint64(addr)+2 > uint64(len(m.data)) {
		return 0, m.boundsError(addr, 2)
	}
	return binary.BigEndian.Uint16(m.data[addr : addr+2]), nil
}

// Write16 writes a big-endian halfword at addr, addr+1.
func (m *Memory) Write16(addr uint32, value uint16) error {
	if uint64(addr)+2 > uint64(len(m.data)) {
		return m.boundsError(addr, 2)
	}
	binary.BigEndian.PutUint16(m.data[addr:addr+2], value)
	return nil
}

// Read32 reads a big-endian word at addr..addr+3, with addr as the most
// significant byte.
func (m *Memory) Read32(addr uint32) (uint32, error) {
	if uint64(addr)+4 > uint64(len(m.data)) {
		return 0, m.boundsError(addr, 4)
	}
	return binary.BigEndian.Uint32(m.data[addr : addr+4]), nil
}

// Write32 writes a big-endian word at addr..addr+3.
func (m *Memory) Write32(addr uint32, value uint32) error {
	if uint64(addr)+4 > uint64(len(m.data)) {
		return m.boundsError(addr, 4)
	}
	binary.BigEndian.PutUint32(m.data[addr:addr+4], value)
	return nil
}
