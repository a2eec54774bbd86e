/*
 * BatPU-2 - Instruction set operand fields
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

// operand names a logical slot an instruction word can carry. Several
// mnemonics share the same slot (LOD/STR both use offset, for example) but
// each slot has exactly one mask, width and signedness across the whole
// table.
type operand int

const (
	opA operand = iota
	opB
	opC
	opImm
	opAddr
	opCond
	opOffset
)

// signedness controls how a field's integer range is computed and how its
// value is folded into bits.
type signedness int

const (
	unsignedKind signedness = iota
	signedKind
	anyKind // accepts either an unsigned or a signed two's-complement encoding of the same width
)

type fieldSpec struct {
	name  string
	shift uint
	width uint
	kind  signedness
}

const opcodeShift = 12

var fields = map[operand]fieldSpec{
	opA:      {name: "a", shift: 8, width: 4, kind: unsignedKind},
	opB:      {name: "b", shift: 4, width: 4, kind: unsignedKind},
	opC:      {name: "c", shift: 0, width: 4, kind: unsignedKind},
	opImm:    {name: "imm", shift: 0, width: 8, kind: anyKind},
	opAddr:   {name: "addr", shift: 0, width: 10, kind: unsignedKind},
	opCond:   {name: "cond", shift: 10, width: 2, kind: unsignedKind},
	opOffset: {name: "offset", shift: 0, width: 4, kind: signedKind},
}

// bounds returns the inclusive [min, max] operand range accepted at
// assembly/construction time.
func (f fieldSpec) bounds() (min, max int) {
	switch f.kind {
	case signedKind:
		return -(1 << (f.width - 1)), (1 << (f.width - 1)) - 1
	case anyKind:
		return -(1 << (f.width - 1)), (1 << f.width) - 1
	default:
		return 0, (1 << f.width) - 1
	}
}

// mask is the field's bits within the 16-bit word.
func (f fieldSpec) mask() uint16 {
	return uint16((1<<f.width)-1) << f.shift
}

// encode folds a validated operand value into its field's bit pattern.
func (f fieldSpec) encode(v int) uint16 {
	bits := uint16(v) & uint16((1<<f.width)-1)
	return bits << f.shift
}

// decode extracts a field's raw bits from a word and sign-extends when the
// field is signed.
func (f fieldSpec) decode(word uint16) int {
	raw := (word >> f.shift) & uint16((1<<f.width)-1)
	if f.kind != signedKind {
		return int(raw)
	}
	shift := 16 - f.width
	return int(int16(raw<<shift) >> shift)
}
