// Package emu provides a MIPS I emulation core.
package emu

// ALU implements the MIPS I arithmetic, logic, shift, and multiply/divide
// operations. It mutates the register file (and HI/LO) directly; it does
// not itself advance PC.
type ALU struct {
	regFile *RegFile
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

// Add performs the signed add: R[rd] = R[rs] + R[rt]. Overflow is ignored
// in this core (see design notes on add/addi).
func (a *ALU) Add(rd, rs, rt uint8) {
	result := a.regFile.ReadReg(rs) + a.regFile.ReadReg(rt)
	a.regFile.WriteReg(rd, result)
}

// Addu performs the unsigned (wrapping) add: R[rd] = R[rs] + R[rt].
func (a *ALU) Addu(rd, rs, rt uint8) {
	result := a.regFile.ReadReg(rs) + a.regFile.ReadReg(rt)
	a.regFile.WriteReg(rd, result)
}

// Addiu performs R[rt] = R[rs] + sign_extend(imm), overflow ignored.
func (a *ALU) Addiu(rt, rs uint8, imm uint16) {
	result := a.regFile.ReadReg(rs) + uint32(int32(int16(imm)))
	a.regFile.WriteReg(rt, result)
}

// Sll performs R[rd] = R[rt] << shamt.
func (a *ALU) Sll(rd, rt, shamt uint8) {
	result := a.regFile.ReadReg(rt) << shamt
	a.regFile.WriteReg(rd, result)
}

// Srl performs a logical right shift: R[rd] = R[rt] >> shamt.
func (a *ALU) Srl(rd, rt, shamt uint8) {
	result := a.regFile.ReadReg(rt) >> shamt
	a.regFile.WriteReg(rd, result)
}

// And performs the bitwise AND: R[rd] = R[rs] & R[rt].
func (a *ALU) And(rd, rs, rt uint8) {
	result := a.regFile.ReadReg(rs) & a.regFile.ReadReg(rt)
	a.regFile.WriteReg(rd, result)
}

// Or performs the bitwise OR: R[rd] = R[rs] | R[rt].
func (a *ALU) Or(rd, rs, rt uint8) {
	result := a.regFile.ReadReg(rs) | a.regFile.ReadReg(rt)
	a.regFile.WriteReg(rd, result)
}

// Xor performs the bitwise XOR: R[rd] = R[rs] ^ R[rt].
func (a *ALU) Xor(rd, rs, rt uint8) {
	result := a.regFile.ReadReg(rs) ^ a.regFile.ReadReg(rt)
	a.regFile.WriteReg(rd, result)
}

// Nor performs R[rd] = NOT(R[rs] OR R[rt]).
func (a *ALU) Nor(rd, rs, rt uint8) {
	result := ^(a.regFile.ReadReg(rs) | a.regFile.ReadReg(rt))
	a.regFile.WriteReg(rd, result)
}

// Xori performs R[rt] = R[rs] XOR zero_extend(imm). MIPS I specifies
// zero-extension for logical-immediate instructions.
func (a *ALU) Xori(rt, rs uint8, imm uint16) {
	result := a.regFile.ReadReg(rs) ^ uint32(imm)
	a.regFile.WriteReg(rt, result)
}

// Lui performs R[rt] = imm << 16.
func (a *ALU) Lui(rt uint8, imm uint16) {
	a.regFile.WriteReg(rt, uint32(imm)<<16)
}

// Slt performs the signed set-less-than: R[rd] = 1 if R[rs] < R[rt] as
// signed 32-bit values, else 0.
func (a *ALU) Slt(rd, rs, rt uint8) {
	if int32(a.regFile.ReadReg(rs)) < int32(a.regFile.ReadReg(rt)) {
		a.regFile.WriteReg(rd, 1)
	} else {
		a.regFile.WriteReg(rd, 0)
	}
}

// Sltu performs the unsigned set-less-than: R[rd] = 1 if R[rs] < R[rt]
// as unsigned 32-bit values, else 0.
func (a *ALU) Sltu(rd, rs, rt uint8) {
	if a.regFile.ReadReg(rs) < a.regFile.ReadReg(rt) {
		a.regFile.WriteReg(rd, 1)
	} else {
		a.regFile.WriteReg(rd, 0)
	}
}

// Mult computes the signed 64-bit product of R[rs] and R[rt], splitting
// it across HI (upper 32 bits) and LO (lower 32 bits). The product is
// always formed with a 64-bit intermediate; it is never truncated before
// the split.
func (a *ALU) Mult(rs, rt uint8) {
	op1 := int64(int32(a.regFile.ReadReg(rs)))
	op2 := int64(int32(a.regFile.ReadReg(rt)))
	result := uint64(op1 * op2)
	a.regFile.HI = uint32(result >> 32)
	a.regFile.LO = uint32(result)
}

// Multu computes the unsigned 64-bit product of R[rs] and R[rt], splitting
// it across HI (upper 32 bits) and LO (lower 32 bits).
func (a *ALU) Multu(rs, rt uint8) {
	op1 := uint64(a.regFile.ReadReg(rs))
	op2 := uint64(a.regFile.ReadReg(rt))
	result := op1 * op2
	a.regFile.HI = uint32(result >> 32)
	a.regFile.LO = uint32(result)
}

// Div computes the signed quotient and remainder of R[rs] / R[rt], placing
// the quotient in LO and the remainder in HI. Div itself does not check for
// zero: a zero R[rt] panics with Go's integer divide-by-zero, so the caller
// checks the divisor first and surfaces a divide error instead.
func (a *ALU) Div(rs, rt uint8) {
	op1 := int32(a.regFile.ReadReg(rs))
	op2 := int32(a.regFile.ReadReg(rt))
	a.regFile.LO = uint32(op1 / op2)
	a.regFile.HI = uint32(op1 % op2)
}

// Divu computes the unsigned quotient and remainder of R[rs] / R[rt],
// placing the quotient in LO and the remainder in HI. Divu itself does not
// check for zero: a zero R[rt] panics with Go's integer divide-by-zero, so
// the caller checks the divisor first and surfaces a divide error instead.
func (a *ALU) Divu(rs, rt uint8) {
	op1 := a.regFile.ReadReg(rs)
	op2 := a.regFile.ReadReg(rt)
	a.regFile.LO = op1 / op2
	a.regFile.HI = op1 % op2
}

// Mfhi performs R[rd] = HI.
func (a *ALU) Mfhi(rd uint8) {
	a.regFile.WriteReg(rd, a.regFile.HI)
}

// Mflo performs R[rd] = LO.
func (a *ALU) Mflo(rd uint8) {
	a.regFile.WriteReg(rd, a.regFile.LO)
}

// Mthi performs HI = R[rs].
func (a *ALU) Mthi(rs uint8) {
	a.regFile.HI = a.regFile.ReadReg(rs)
}

// Mtlo performs LO = R[rs].
func (a *ALU) Mtlo(rs uint8) {
	a.regFile.LO = a.regFile.ReadReg(rs)
}
