/*
 * BatPU-2 - Assembler symbol table
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

package asm

import (
	"strconv"
	"strings"

	"batpu2/isa"
)

// ports lists the 16 MMIO port names in address order, 240..255.
var ports = [16]string{
	"pixel_x", "pixel_y", "draw_pixel", "clear_pixel",
	"load_pixel", "buffer_screen", "clear_screen_buffer", "write_char",
	"buffer_chars", "clear_chars_buffer", "show_number", "clear_number",
	"signed_mode", "unsigned_mode", "rng", "controller_input",
}

// condNames gives the four BRH condition codes under several surface
// spellings: full word, letter abbreviation, and comparison-style, matching
// the conventions seen across BatPU-2 toolchains.
var condNames = map[string]int{
	"zero": int(isa.CondZero), "z": int(isa.CondZero), "eq": int(isa.CondZero), "=": int(isa.CondZero),
	"notzero": int(isa.CondNotZero), "nz": int(isa.CondNotZero), "ne": int(isa.CondNotZero), "!=": int(isa.CondNotZero),
	"carry": int(isa.CondCarry), "c": int(isa.CondCarry), "ge": int(isa.CondCarry), ">=": int(isa.CondCarry),
	"notcarry": int(isa.CondNotCarry), "nc": int(isa.CondNotCarry), "lt": int(isa.CondNotCarry), "<": int(isa.CondNotCarry),
}

// symtab maps a symbol name to its signed integer value. It is built from
// the default symbols (ports, mnemonics, registers, conditions) and grows
// with user labels and defines during pass 1. Character literals are not
// stored here; resolveOperand handles them before any symbol lookup.
type symtab struct {
	values map[string]int
}

func newSymtab() *symtab {
	s := &symtab{values: make(map[string]int)}

	for i, name := range ports {
		s.values[name] = 240 + i
	}
	for name, m := range nameToMnemonicLower() {
		s.values[name] = int(m)
	}
	for i := 0; i < 16; i++ {
		s.values["r"+strconv.Itoa(i)] = i
	}
	for name, v := range condNames {
		s.values[name] = v
	}

	return s
}

// nameToMnemonicLower exposes isa's primary mnemonic names lower-cased, the
// spelling used in source text.
func nameToMnemonicLower() map[string]isa.Mnemonic {
	names := []isa.Mnemonic{
		isa.NOP, isa.HLT, isa.ADD, isa.SUB, isa.NOR, isa.AND, isa.XOR, isa.RSH,
		isa.LDI, isa.ADI, isa.JMP, isa.BRH, isa.CAL, isa.RET, isa.LOD, isa.STR,
	}
	out := make(map[string]isa.Mnemonic, len(names))
	for _, m := range names {
		out[strings.ToLower(m.String())] = m
	}
	return out
}

func (s *symtab) define(name string, value int) {
	s.values[name] = value
}

func (s *symtab) lookup(name string) (int, bool) {
	v, ok := s.values[name]
	return v, ok
}
