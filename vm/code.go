/*
 * BatPU-2 - Program storage abstraction
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

// Package vm implements the BatPU-2 interpreter: register file, flags,
// call-return ring stack, 240-byte RAM, and MMIO dispatch to an IO device.
package vm

import "batpu2/isa"

// Code is a read-only, polymorphic source of program instructions. It is
// the single abstraction the VM uses to fetch code: a literal word slice,
// a pre-decoded instruction slice, or a lazily-decoding wrapper all
// satisfy it the same way. Instruction must be pure and idempotent with
// respect to pc.
type Code interface {
	// Instruction returns the decoded instruction at pc, or (Instruction{},
	// false, nil) if pc is out of bounds. The VM treats an out-of-bounds
	// fetch as NOP.
	Instruction(pc uint16) (isa.Instruction, bool, error)
	// Len reports the program's logical instruction count.
	Len() int
}

// Words is a Code backed by raw 16-bit machine words, decoded on demand.
type Words []uint16

func (w Words) Instruction(pc uint16) (isa.Instruction, bool, error) {
	if int(pc) >= len(w) {
		return isa.Instruction{}, false, nil
	}
	return isa.Decode(w[pc]), true, nil
}

func (w Words) Len() int {
	return len(w)
}

// Instructions is a Code backed by already-decoded instructions.
type Instructions []isa.Instruction

func (ins Instructions) Instruction(pc uint16) (isa.Instruction, bool, error) {
	if int(pc) >= len(ins) {
		return isa.Instruction{}, false, nil
	}
	return ins[pc], true, nil
}

func (ins Instructions) Len() int {
	return len(ins)
}
