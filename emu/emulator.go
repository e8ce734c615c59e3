// Package emu provides a MIPS I emulation core.
package emu

import (
	"fmt"
	"io"
	"os"

	"github.com/NM711/MIPS-Emulator/insts"
)

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Exited is true if the program terminated (via the syscall handler).
	Exited bool

	// ExitCode is the exit status if Exited is true.
	ExitCode int64

	// Err is set if an error occurred during fetch, decode, or execute.
	Err error
}

// Emulator executes MIPS I instructions against a register file and a flat
// memory image, one instruction per Step.
type Emulator struct {
	regFile        *RegFile
	memory         *Memory
	decoder        *insts.Decoder
	syscallHandler SyscallHandler

	alu        *ALU
	lsu        *LoadStoreUnit
	branchUnit *BranchUnit

	stdout io.Writer
	stderr io.Writer
	trace  io.Writer // nil disables tracing

	stepCount uint64
	maxSteps  uint64 // 0 means unbounded
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithStartPC sets the initial program counter. Defaults to 0.
func WithStartPC(pc uint32) EmulatorOption {
	return func(e *Emulator) {
		e.regFile.PC = pc
	}
}

// WithMaxSteps bounds the number of steps Run will execute. A value of 0
// (the default) means unbounded.
func WithMaxSteps(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxSteps = max
	}
}

// WithSyscallHandler installs a custom syscall handler. Without this
// option the machine uses NoopSyscallHandler.
func WithSyscallHandler(handler SyscallHandler) EmulatorOption {
	return func(e *Emulator) {
		e.syscallHandler = handler
	}
}

// WithStdout sets the emulator's stdout writer. The emulator itself does
// not write to it; WithSimpleSyscallHandler takes its own output streams.
func WithStdout(w io.Writer) EmulatorOption {
	return func(e *Emulator) {
		e.stdout = w
	}
}

// WithStderr sets a custom stderr writer.
func WithStderr(w io.Writer) EmulatorOption {
	return func(e *Emulator) {
		e.stderr = w
	}
}

// WithTrace enables advisory execution tracing: each executed instruction
// emits a line naming the raw word and decoded opcode to w. Tracing is off
// by default and is not part of any contract.
func WithTrace(w io.Writer) EmulatorOption {
	return func(e *Emulator) {
		e.trace = w
	}
}

// WithSimpleSyscallHandler installs a SimpleSyscallHandler bound to this
// machine's own register file and memory, wired up with the given I/O
// streams. A convenience over WithSyscallHandler for host programs that
// want the classic SPIM/MARS console syscalls without constructing the
// handler themselves.
func WithSimpleSyscallHandler(stdin io.Reader, stdout, stderr io.Writer) EmulatorOption {
	return func(e *Emulator) {
		h := NewSimpleSyscallHandler(e.regFile, e.memory, stdout, stderr)
		h.SetStdin(stdin)
		e.syscallHandler = h
	}
}

// NewEmulator creates a new MIPS I emulator with an empty memory image and
// a zero-initialized register file. Memory is populated afterward via
// LoadProgram or direct access to Memory().
func NewEmulator(opts ...EmulatorOption) *Emulator {
	regFile := &RegFile{}
	memory := NewMemory()

	e := &Emulator{
		regFile: regFile,
		memory:  memory,
		decoder: insts.NewDecoder(),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.alu = NewALU(regFile)
	e.lsu = NewLoadStoreUnit(regFile, memory)
	e.branchUnit = NewBranchUnit(regFile)

	if e.syscallHandler == nil {
		e.syscallHandler = NoopSyscallHandler{}
	}

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// StepCount returns the number of instructions executed so far.
func (e *Emulator) StepCount() uint64 {
	return e.stepCount
}

// LoadProgram copies program into memory starting at address entry and
// sets PC to entry.
func (e *Emulator) LoadProgram(entry uint32, program []byte) error {
	if err := e.memory.LoadAt(entry, program); err != nil {
		return err
	}
	e.regFile.PC = entry
	return nil
}

// Step performs exactly one fetch-decode-execute cycle.
func (e *Emulator) Step() StepResult {
	if e.maxSteps > 0 && e.stepCount >= e.maxSteps {
		return StepResult{Err: fmt.Errorf("max steps reached")}
	}

	word, err := e.memory.Read32(e.regFile.PC)
	if err != nil {
		return StepResult{Err: fmt.Errorf("fetch at PC=0x%X: %w", e.regFile.PC, err)}
	}

	inst, err := e.decoder.Decode(word)
	if err != nil {
		return StepResult{Err: fmt.Errorf("decode at PC=0x%X: %w", e.regFile.PC, err)}
	}

	if e.trace != nil {
		_, _ = fmt.Fprintf(e.trace, "PC=0x%08X word=0x%08X op=%s\n", e.regFile.PC, word, inst.Op)
	}

	result := e.execute(inst)
	e.stepCount++

	return result
}

// Run executes instructions until the program exits (via syscall) or an
// error occurs, returning the exit code (-1 on error).
func (e *Emulator) Run() int64 {
	for {
		result := e.Step()
		if result.Err != nil {
			_, _ = fmt.Fprintf(e.stderr, "mips: %v\n", result.Err)
			return -1
		}
		if result.Exited {
			return result.ExitCode
		}
	}
}

// execute dispatches a decoded instruction to its execution unit and
// advances PC, except for the jump opcodes, which set PC themselves, and
// the conditional branch opcodes, whose branch unit method only sets PC
// when taken — the untaken PC+=4 fallthrough is applied here.
func (e *Emulator) execute(inst *insts.Instruction) StepResult {
	switch inst.Op {
	case insts.OpJ:
		e.branchUnit.J(inst.Target)
		return StepResult{}
	case insts.OpJAL:
		e.branchUnit.Jal(inst.Target)
		return StepResult{}
	case insts.OpJR:
		e.branchUnit.Jr(inst.Rs)
		return StepResult{}
	case insts.OpJALR:
		e.branchUnit.Jalr(inst.Rd, inst.Rs)
		return StepResult{}
	case insts.OpBEQ:
		if !e.branchUnit.Beq(inst.Rs, inst.Rt, inst.Imm) {
			e.regFile.PC += 4
		}
		return StepResult{}
	case insts.OpBNE:
		if !e.branchUnit.Bne(inst.Rs, inst.Rt, inst.Imm) {
			e.regFile.PC += 4
		}
		return StepResult{}
	case insts.OpBLEZ:
		if !e.branchUnit.Blez(inst.Rs, inst.Imm) {
			e.regFile.PC += 4
		}
		return StepResult{}
	case insts.OpBGTZ:
		if !e.branchUnit.Bgtz(inst.Rs, inst.Imm) {
			e.regFile.PC += 4
		}
		return StepResult{}

	case insts.OpADDI:
		return StepResult{Err: fmt.Errorf("addi is reserved for trapping overflow and is not implemented in this core (word 0x%08X)", inst.Word)}
	case insts.OpADDIU:
		e.alu.Addiu(inst.Rt, inst.Rs, inst.Imm)
	case insts.OpXORI:
		e.alu.Xori(inst.Rt, inst.Rs, inst.Imm)
	case insts.OpLUI:
		e.alu.Lui(inst.Rt, inst.Imm)

	case insts.OpLB:
		if err := e.lsu.Lb(inst.Rt, inst.Rs, inst.Imm); err != nil {
			return StepResult{Err: err}
		}
	case insts.OpLH:
		if err := e.lsu.Lh(inst.Rt, inst.Rs, inst.Imm); err != nil {
			return StepResult{Err: err}
		}
	case insts.OpLW:
		if err := e.lsu.Lw(inst.Rt, inst.Rs, inst.Imm); err != nil {
			return StepResult{Err: err}
		}
	case insts.OpLBU:
		if err := e.lsu.Lbu(inst.Rt, inst.Rs, inst.Imm); err != nil {
			return StepResult{Err: err}
		}
	case insts.OpLHU:
		if err := e.lsu.Lhu(inst.Rt, inst.Rs, inst.Imm); err != nil {
			return StepResult{Err: err}
		}
	case insts.OpSB:
		if err := e.lsu.Sb(inst.Rt, inst.Rs, inst.Imm); err != nil {
			return StepResult{Err: err}
		}
	case insts.OpSH:
		if err := e.lsu.Sh(inst.Rt, inst.Rs, inst.Imm); err != nil {
			return StepResult{Err: err}
		}
	case insts.OpSW:
		if err := e.lsu.Sw(inst.Rt, inst.Rs, inst.Imm); err != nil {
			return StepResult{Err: err}
		}

	case insts.OpSLL:
		e.alu.Sll(inst.Rd, inst.Rt, inst.Shamt)
	case insts.OpSRL:
		e.alu.Srl(inst.Rd, inst.Rt, inst.Shamt)
	case insts.OpADD:
		e.alu.Add(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpADDU:
		e.alu.Addu(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpAND:
		e.alu.And(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpOR:
		e.alu.Or(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpXOR:
		e.alu.Xor(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpNOR:
		e.alu.Nor(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpSLT:
		e.alu.Slt(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpSLTU:
		e.alu.Sltu(inst.Rd, inst.Rs, inst.Rt)

	case insts.OpMULT:
		e.alu.Mult(inst.Rs, inst.Rt)
	case insts.OpMULTU:
		e.alu.Multu(inst.Rs, inst.Rt)
	case insts.OpDIV:
		if e.regFile.ReadReg(inst.Rt) == 0 {
			return StepResult{Err: fmt.Errorf("divide by zero at PC=0x%X", e.regFile.PC)}
		}
		e.alu.Div(inst.Rs, inst.Rt)
	case insts.OpDIVU:
		if e.regFile.ReadReg(inst.Rt) == 0 {
			return StepResult{Err: fmt.Errorf("divide by zero at PC=0x%X", e.regFile.PC)}
		}
		e.alu.Divu(inst.Rs, inst.Rt)
	case insts.OpMFHI:
		e.alu.Mfhi(inst.Rd)
	case insts.OpMTHI:
		e.alu.Mthi(inst.Rs)
	case insts.OpMFLO:
		e.alu.Mflo(inst.Rd)
	case insts.OpMTLO:
		e.alu.Mtlo(inst.Rs)

	case insts.OpSYSCALL:
		e.regFile.PC += 4
		result := e.syscallHandler.Handle()
		return StepResult{Exited: result.Exited, ExitCode: result.ExitCode}

	default:
		return StepResult{Err: fmt.Errorf("decode: unimplemented opcode in word 0x%08X", inst.Word)}
	}

	e.regFile.PC += 4
	return StepResult{}
}
