/*
 * BatPU-2 - Mnemonic table
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

package isa

import "strings"

// Mnemonic is the closed set of BatPU-2 instruction names, primary opcodes
// plus surface-only aliases. Only the 16 primary values ever appear in a
// constructed Instruction; aliases are lowered at construction time.
type Mnemonic int

const (
	NOP Mnemonic = iota
	HLT
	ADD
	SUB
	NOR
	AND
	XOR
	RSH
	LDI
	ADI
	JMP
	BRH
	CAL
	RET
	LOD
	STR

	// Aliases. Never appear as Instruction.Mnemonic after construction.
	CMP
	MOV
	LSH
	NOT
	NEG
	INC
	DEC
)

// Cond is a BRH condition code, encoded in the 2-bit cond field.
type Cond uint8

const (
	CondZero Cond = iota
	CondNotZero
	CondCarry
	CondNotCarry
)

func (c Cond) String() string {
	switch c {
	case CondZero:
		return "Z"
	case CondNotZero:
		return "NZ"
	case CondCarry:
		return "C"
	case CondNotCarry:
		return "NC"
	default:
		return "?"
	}
}

// Match evaluates the condition against the current flag pair.
func (c Cond) Match(zero, carry bool) bool {
	switch c {
	case CondZero:
		return zero
	case CondNotZero:
		return !zero
	case CondCarry:
		return carry
	case CondNotCarry:
		return !carry
	default:
		return false
	}
}

type primaryDef struct {
	name     string
	opcode   uint8
	operands []operand
}

type aliasDef struct {
	name  string
	arity int
	lower func(args []int) (Mnemonic, []int)
}

// primaries is indexed by opcode (0..15); every opcode is defined, matching
// the invariant that decoding is total.
var primaries = [16]primaryDef{
	0x0: {"NOP", 0x0, nil},
	0x1: {"HLT", 0x1, nil},
	0x2: {"ADD", 0x2, []operand{opA, opB, opC}},
	0x3: {"SUB", 0x3, []operand{opA, opB, opC}},
	0x4: {"NOR", 0x4, []operand{opA, opB, opC}},
	0x5: {"AND", 0x5, []operand{opA, opB, opC}},
	0x6: {"XOR", 0x6, []operand{opA, opB, opC}},
	0x7: {"RSH", 0x7, []operand{opA, opC}},
	0x8: {"LDI", 0x8, []operand{opA, opImm}},
	0x9: {"ADI", 0x9, []operand{opA, opImm}},
	0xA: {"JMP", 0xA, []operand{opAddr}},
	0xB: {"BRH", 0xB, []operand{opCond, opAddr}},
	0xC: {"CAL", 0xC, []operand{opAddr}},
	0xD: {"RET", 0xD, nil},
	0xE: {"LOD", 0xE, []operand{opA, opB, opOffset}},
	0xF: {"STR", 0xF, []operand{opA, opB, opOffset}},
}

var mnemonicToPrimary = func() map[Mnemonic]primaryDef {
	m := make(map[Mnemonic]primaryDef, 16)
	for i, def := range primaries {
		m[Mnemonic(i)] = def
	}
	return m
}()

var aliases = map[Mnemonic]aliasDef{
	CMP: {"CMP", 2, func(a []int) (Mnemonic, []int) { return SUB, []int{a[0], a[1], 0} }},
	MOV: {"MOV", 2, func(a []int) (Mnemonic, []int) { return ADD, []int{a[0], 0, a[1]} }},
	LSH: {"LSH", 2, func(a []int) (Mnemonic, []int) { return ADD, []int{a[0], a[0], a[1]} }},
	NOT: {"NOT", 2, func(a []int) (Mnemonic, []int) { return NOR, []int{a[0], 0, a[1]} }},
	NEG: {"NEG", 2, func(a []int) (Mnemonic, []int) { return SUB, []int{0, a[0], a[1]} }},
	INC: {"INC", 1, func(a []int) (Mnemonic, []int) { return ADI, []int{a[0], 1} }},
	DEC: {"DEC", 1, func(a []int) (Mnemonic, []int) { return ADI, []int{a[0], -1} }},
}

var nameToMnemonic = func() map[string]Mnemonic {
	m := make(map[string]Mnemonic, 46)
	for i, def := range primaries {
		m[def.name] = Mnemonic(i)
		m[strings.ToLower(def.name)] = Mnemonic(i)
	}
	for mn, def := range aliases {
		m[def.name] = mn
		m[strings.ToLower(def.name)] = mn
	}
	return m
}()

// String returns the mnemonic's canonical name (case-sensitive against the
// assembler's lookup).
func (m Mnemonic) String() string {
	if def, ok := mnemonicToPrimary[m]; ok {
		return def.name
	}
	if def, ok := aliases[m]; ok {
		return def.name
	}
	return "UNKNOWN"
}

// IsAlias reports whether m is a surface-only alias rather than a primary
// opcode.
func (m Mnemonic) IsAlias() bool {
	_, ok := aliases[m]
	return ok
}

// LookupMnemonic resolves a mnemonic name (primary or alias) against the
// ISA table. Both the canonical upper-case and the all-lower-case source
// spelling are recognized; mixed case is not.
func LookupMnemonic(name string) (Mnemonic, bool) {
	m, ok := nameToMnemonic[name]
	return m, ok
}

// Arity returns the exact number of operands m's surface form takes.
func Arity(m Mnemonic) (int, bool) {
	if def, ok := mnemonicToPrimary[m]; ok {
		return len(def.operands), true
	}
	if def, ok := aliases[m]; ok {
		return def.arity, true
	}
	return 0, false
}
