// Package emu provides a MIPS I emulation core.
package emu

// LoadStoreUnit implements the MIPS I load and store operations. Every
// method computes its own effective address from R[rs] + sign_extend(imm)
// and returns the MemoryBoundsError from the underlying Memory access
// unmodified, so the caller can surface it as a StepResult.Err.
type LoadStoreUnit struct {
	regFile *RegFile
	memory  *Memory
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// register file and memory.
func NewLoadStoreUnit(regFile *RegFile, memory *Memory) *LoadStoreUnit {
	return &LoadStoreUnit{
		regFile: regFile,
		memory:  memory,
	}
}

func (lsu *LoadStoreUnit) effectiveAddr(rs uint8, imm uint16) uint32 {
	return lsu.regFile.ReadReg(rs) + uint32(int32(int16(imm)))
}

// Lb loads a sign-extended byte: R[rt] = sign_extend8(mem[R[rs]+imm]).
func (lsu *LoadStoreUnit) Lb(rt, rs uint8, imm uint16) error {
	addr := lsu.effectiveAddr(rs, imm)
	value, err := lsu.memory.Read8(addr)
	if err != nil {
		return err
	}
	lsu.regFile.WriteReg(rt, uint32(int32(int8(value))))
	return nil
}

// Lbu loads a zero-extended byte: R[rt] = zero_extend8(mem[R[rs]+imm]).
func (lsu *LoadStoreUnit) Lbu(rt, rs uint8, imm uint16) error {
	addr := lsu.effectiveAddr(rs, imm)
	value, err := lsu.memory.Read8(addr)
	if err != nil {
		return err
	}
	lsu.regFile.WriteReg(rt, uint32(value))
	return nil
}

// Lh loads a sign-extended big-endian halfword.
func (lsu *LoadStoreUnit) Lh(rt, rs uint8, imm uint16) error {
	addr := lsu.effectiveAddr(rs, imm)
	value, err := lsu.memory.Read16(addr)
	if err != nil {
		return err
	}
	lsu.regFile.WriteReg(rt, uint32(int32(int16(value))))
	return nil
}

// Lhu loads a zero-extended big-endian halfword. The halfword is composed
// to its full 16-bit width before zero-extension (see design notes on the
// lhu deviation in the reference prototype).
func (lsu *LoadStoreUnit) Lhu(rt, rs uint8, imm uint16) error {
	addr := lsu.effectiveAddr(rs, imm)
	value, err := lsu.memory.Read16(addr)
	if err != nil {
		return err
	}
	lsu.regFile.WriteReg(rt, uint32(value))
	return nil
}

// Lw loads a big-endian word.
func (lsu *LoadStoreUnit) Lw(rt, rs uint8, imm uint16) error {
	addr := lsu.effectiveAddr(rs, imm)
	value, err := lsu.memory.Read32(addr)
	if err != nil {
		return err
	}
	lsu.regFile.WriteReg(rt, value)
	return nil
}

// Sb stores the low byte of R[rt].
func (lsu *LoadStoreUnit) Sb(rt, rs uint8, imm uint16) error {
	addr := lsu.effectiveAddr(rs, imm)
	return lsu.memory.Write8(addr, byte(lsu.regFile.ReadReg(rt)))
}

// Sh stores the low halfword of R[rt], big-endian.
func (lsu *LoadStoreUnit) Sh(rt, rs uint8, imm uint16) error {
	addr := lsu.effectiveAddr(rs, imm)
	return lsu.memory.Write16(addr, uint16(lsu.regFile.ReadReg(rt)))
}

// Sw stores R[rt], big-endian.
func (lsu *LoadStoreUnit) Sw(rt, rs uint8, imm uint16) error {
	addr := lsu.effectiveAddr(rs, imm)
	return lsu.memory.Write32(addr, lsu.regFile.ReadReg(rt))
}
