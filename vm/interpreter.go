/*
 * BatPU-2 - Interpreter core
 *
 * Copyright 2026
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package vm

import "batpu2/isa"

const (
	numRegisters = 16
	ramSize      = 240 // addresses 0..239; 240..255 are MMIO ports
	callStackLen = 16
	pcMask       = 0x3FF // 10-bit program counter space
)

// VM is the BatPU-2 interpreter. It exclusively owns its registers, call
// stack, memory, flags and IO; program storage is borrowed through Code.
type VM struct {
	pc     uint16
	reg    [numRegisters]uint8
	mem    [ramSize]uint8
	stack  [callStackLen]uint16
	zero   bool
	carry  bool
	halted bool
	io     IO
	rawIO  RawIO
}

// New constructs a VM with io as its device set. io may be nil; reads of
// ports 240..255 then return 0 and writes to them are dropped.
func New(io IO) *VM {
	v := &VM{io: io}
	if io != nil {
		v.rawIO = AsRawIO(io)
	}
	return v
}

// PC returns the current program counter.
func (v *VM) PC() uint16 { return v.pc }

// SetPC sets the program counter directly, masked to the 10-bit code
// space.
func (v *VM) SetPC(pc uint16) { v.pc = pc & pcMask }

// Halted reports whether HLT has executed.
func (v *VM) Halted() bool { return v.halted }

// Flags returns the current zero/carry flag pair.
func (v *VM) Flags() (zero, carry bool) { return v.zero, v.carry }

// IO returns the device set the VM was constructed with.
func (v *VM) IO() IO { return v.io }

// Register reads a general register; register 0 always reads 0.
func (v *VM) Register(r uint8) uint8 {
	if r == 0 {
		return 0
	}
	return v.reg[r&0xF]
}

// setRegister writes a general register; writes to register 0 are
// dropped.
func (v *VM) setRegister(r uint8, value uint8) {
	if r == 0 {
		return
	}
	v.reg[r&0xF] = value
}

// setRegisterFlags writes a register and sets the zero/carry pair, the
// shared tail of every flag-updating instruction.
func (v *VM) setRegisterFlags(r uint8, value uint8, carry bool) {
	v.carry = carry
	v.zero = value == 0
	v.setRegister(r, value)
}

// Memory reads a data byte; addresses 240..255 read through IO instead of
// RAM.
func (v *VM) Memory(addr uint8) (uint8, error) {
	if addr >= ramSize {
		if v.rawIO == nil {
			return 0, nil
		}
		return v.rawIO.ReadPort(addr)
	}
	return v.mem[addr], nil
}

// setMemory writes a data byte or routes to IO per the same 240-byte
// partition as Memory.
func (v *VM) setMemory(addr uint8, value uint8) error {
	if addr >= ramSize {
		if v.rawIO != nil {
			return v.rawIO.WritePort(addr, value)
		}
		return nil
	}
	v.mem[addr] = value
	return nil
}

// Reset returns the VM to its power-on state, preserving the IO it was
// constructed with.
func (v *VM) Reset() {
	v.pc = 0
	v.reg = [numRegisters]uint8{}
	v.mem = [ramSize]uint8{}
	v.stack = [callStackLen]uint16{}
	v.zero = false
	v.carry = false
	v.halted = false
}

// Step executes exactly one instruction: fetch, decode (already done by
// Code), execute, and the fixed-order state transition within it. It is a
// no-op returning (false, nil) if the VM is already halted.
func (v *VM) Step(code Code) (bool, error) {
	if v.halted {
		return false, nil
	}

	pc := v.pc & pcMask
	inst, ok, err := code.Instruction(pc)
	if err != nil {
		return false, &RunError{PC: pc, Err: &CodeError{Err: err}}
	}
	if !ok {
		inst = isa.Instruction{Mnemonic: isa.NOP}
	}
	v.pc = pc + 1

	if err := v.execute(inst); err != nil {
		return false, &RunError{PC: pc, Err: &IOError{Err: err}}
	}
	return true, nil
}

// StepMultiple executes up to n instructions, returning the count actually
// executed. It stops early, without error, the instant Halted() becomes
// true.
func (v *VM) StepMultiple(code Code, n int) (int, error) {
	executed := 0
	for i := 0; i < n; i++ {
		ran, err := v.Step(code)
		if err != nil {
			return executed, err
		}
		if !ran {
			break
		}
		executed++
		if v.halted {
			break
		}
	}
	return executed, nil
}

// execute performs one instruction's worth of state transition. The only
// fallible steps are the LOD/STR memory accesses, and only when they land
// on a device port.
func (v *VM) execute(inst isa.Instruction) error {
	switch inst.Mnemonic {
	case isa.NOP:
		// no-op

	case isa.HLT:
		v.halted = true

	case isa.ADD:
		a, b := v.Register(inst.A), v.Register(inst.B)
		sum := uint16(a) + uint16(b)
		v.setRegisterFlags(inst.C, uint8(sum), sum > 0xFF)

	case isa.SUB:
		a, b := v.Register(inst.A), v.Register(inst.B)
		// Carry is the no-borrow flag: set when a >= b.
		v.setRegisterFlags(inst.C, a-b, a >= b)

	case isa.NOR:
		v.setRegisterFlags(inst.C, ^(v.Register(inst.A) | v.Register(inst.B)), false)

	case isa.AND:
		v.setRegisterFlags(inst.C, v.Register(inst.A)&v.Register(inst.B), false)

	case isa.XOR:
		v.setRegisterFlags(inst.C, v.Register(inst.A)^v.Register(inst.B), false)

	case isa.RSH:
		// RSH leaves both flags unchanged.
		v.setRegister(inst.C, v.Register(inst.A)>>1)

	case isa.LDI:
		// LDI leaves both flags unchanged.
		v.setRegister(inst.A, inst.Imm)

	case isa.ADI:
		sum := uint16(v.Register(inst.A)) + uint16(inst.Imm)
		v.setRegisterFlags(inst.A, uint8(sum), sum > 0xFF)

	case isa.JMP:
		v.pc = inst.Addr & pcMask

	case isa.BRH:
		if inst.Cond.Match(v.zero, v.carry) {
			v.pc = inst.Addr & pcMask
		}

	case isa.CAL:
		v.pushCall(v.pc)
		v.pc = inst.Addr & pcMask

	case isa.RET:
		v.pc = v.popCall() & pcMask

	case isa.LOD:
		addr := v.Register(inst.A) + uint8(inst.Offset)
		data, err := v.Memory(addr)
		if err != nil {
			return err
		}
		v.setRegister(inst.B, data)

	case isa.STR:
		addr := v.Register(inst.A) + uint8(inst.Offset)
		return v.setMemory(addr, v.Register(inst.B))
	}
	return nil
}

// pushCall rotates the ring one slot toward the tail and writes pc at the
// new index 0, so index 0 is always the most recent return address. A push
// past 16 frames drops the oldest.
func (v *VM) pushCall(pc uint16) {
	for i := len(v.stack) - 1; i > 0; i-- {
		v.stack[i] = v.stack[i-1]
	}
	v.stack[0] = pc
}

// popCall reads index 0, clears it, and rotates the ring back so the
// previous frame resurfaces at index 0. An empty stack (all zero) yields
// return address 0.
func (v *VM) popCall() uint16 {
	ret := v.stack[0]
	for i := 0; i < len(v.stack)-1; i++ {
		v.stack[i] = v.stack[i+1]
	}
	v.stack[len(v.stack)-1] = 0
	return ret
}
