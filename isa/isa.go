/*
 * BatPU-2 - Instruction encode/decode
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

// Package isa declares the BatPU-2 instruction set: the 16 primary opcodes,
// their operand field layouts, and bit-exact encode/decode between an
// Instruction and its 16-bit machine word.
package isa

import "fmt"

// Instruction is a decoded BatPU-2 instruction word. Only the fields that
// matter to Mnemonic are meaningful; Decode leaves the rest zero, and
// Encode ignores them, so decode(encode(i)) == i and
// encode(decode(w)) == w for every well-formed w.
type Instruction struct {
	Mnemonic Mnemonic
	A        uint8
	B        uint8
	C        uint8
	Imm      uint8
	Addr     uint16
	Cond     Cond
	Offset   int8
}

// WrongOperandCountError reports a mnemonic invoked with the wrong number
// of operands.
type WrongOperandCountError struct {
	Mnemonic Mnemonic
	Want     int
	Got      int
}

func (e *WrongOperandCountError) Error() string {
	return fmt.Sprintf("%s takes %d operand(s), got %d", e.Mnemonic, e.Want, e.Got)
}

// OperandOutOfRangeError reports an operand value outside its field's
// representable range.
type OperandOutOfRangeError struct {
	Mnemonic Mnemonic
	Index    int
	Name     string // field name, e.g. "imm"
	Value    int
	Min, Max int
}

func (e *OperandOutOfRangeError) Error() string {
	return fmt.Sprintf("%s operand %d (%s): %d out of range [%d, %d]", e.Mnemonic, e.Index, e.Name, e.Value, e.Min, e.Max)
}

// UnknownMnemonicError reports a Mnemonic value with no table entry.
type UnknownMnemonicError struct {
	Mnemonic Mnemonic
}

func (e *UnknownMnemonicError) Error() string {
	return fmt.Sprintf("unknown mnemonic %d", int(e.Mnemonic))
}

// New builds an Instruction from a mnemonic (primary or alias) and its
// integer operands in surface order, validating arity and range and
// lowering aliases to their primary equivalent.
func New(m Mnemonic, operands []int) (Instruction, error) {
	if alias, ok := aliases[m]; ok {
		if len(operands) != alias.arity {
			return Instruction{}, &WrongOperandCountError{m, alias.arity, len(operands)}
		}
		lowered, loweredOperands := alias.lower(operands)
		inst, err := New(lowered, loweredOperands)
		if err != nil {
			return Instruction{}, err
		}
		return inst, nil
	}

	def, ok := mnemonicToPrimary[m]
	if !ok {
		return Instruction{}, &UnknownMnemonicError{m}
	}
	if len(operands) != len(def.operands) {
		return Instruction{}, &WrongOperandCountError{m, len(def.operands), len(operands)}
	}

	inst := Instruction{Mnemonic: m}
	for i, slot := range def.operands {
		v := operands[i]
		f := fields[slot]
		min, max := f.bounds()
		if v < min || v > max {
			return Instruction{}, &OperandOutOfRangeError{m, i, f.name, v, min, max}
		}
		switch slot {
		case opA:
			inst.A = uint8(v)
		case opB:
			inst.B = uint8(v)
		case opC:
			inst.C = uint8(v)
		case opImm:
			inst.Imm = uint8(v)
		case opAddr:
			inst.Addr = uint16(v)
		case opCond:
			inst.Cond = Cond(v)
		case opOffset:
			inst.Offset = int8(v)
		}
	}
	return inst, nil
}

// operandValue returns the Instruction's stored value for slot, as the
// signed/unsigned int that fieldSpec.encode expects.
func (i Instruction) operandValue(slot operand) int {
	switch slot {
	case opA:
		return int(i.A)
	case opB:
		return int(i.B)
	case opC:
		return int(i.C)
	case opImm:
		return int(int8(i.Imm)) // fold through int8 only matters for any-kind fields; encode masks regardless
	case opAddr:
		return int(i.Addr)
	case opCond:
		return int(i.Cond)
	case opOffset:
		return int(i.Offset)
	default:
		return 0
	}
}

// Encode packs i into its 16-bit machine word. Bits outside i.Mnemonic's
// defined operand fields are zero.
func Encode(i Instruction) uint16 {
	def, ok := mnemonicToPrimary[i.Mnemonic]
	if !ok {
		return 0
	}
	word := uint16(def.opcode) << opcodeShift
	for _, slot := range def.operands {
		f := fields[slot]
		word |= f.encode(i.operandValue(slot))
	}
	return word
}

// Decode unpacks a 16-bit machine word into an Instruction. Decode is
// total: every opcode 0-15 is defined, so Decode never fails. Fields not
// used by the decoded mnemonic are left zero.
func Decode(word uint16) Instruction {
	opcode := uint8(word >> opcodeShift)
	def := primaries[opcode]
	inst := Instruction{Mnemonic: Mnemonic(opcode)}
	for _, slot := range def.operands {
		f := fields[slot]
		v := f.decode(word)
		switch slot {
		case opA:
			inst.A = uint8(v)
		case opB:
			inst.B = uint8(v)
		case opC:
			inst.C = uint8(v)
		case opImm:
			inst.Imm = uint8(v)
		case opAddr:
			inst.Addr = uint16(v)
		case opCond:
			inst.Cond = Cond(v)
		case opOffset:
			inst.Offset = int8(v)
		}
	}
	return inst
}

// String renders i in assembler surface syntax, e.g. "ADD r3 r4 r5".
func (i Instruction) String() string {
	def, ok := mnemonicToPrimary[i.Mnemonic]
	if !ok {
		return i.Mnemonic.String()
	}
	s := def.name
	for _, slot := range def.operands {
		switch slot {
		case opA:
			s += fmt.Sprintf(" r%d", i.A)
		case opB:
			s += fmt.Sprintf(" r%d", i.B)
		case opC:
			s += fmt.Sprintf(" r%d", i.C)
		case opImm:
			s += fmt.Sprintf(" %d", i.Imm)
		case opAddr:
			s += fmt.Sprintf(" %d", i.Addr)
		case opCond:
			s += " " + i.Cond.String()
		case opOffset:
			s += fmt.Sprintf(" %d", i.Offset)
		}
	}
	return s
}
