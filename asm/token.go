/*
 * BatPU-2 - Assembler tokens and lines
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

// Package asm implements the two-pass BatPU-2 assembler: a lexer that turns
// source lines into labeled token streams, and a pass-1/pass-2 pipeline that
// resolves symbols and emits range-checked instructions.
package asm

// MaxArgs is the largest number of operand tokens a single line may carry.
const MaxArgs = 3

// Token is a non-empty slice of a source line together with its 1-based
// column. Two tokens compare equal iff their spans and columns match.
type Token struct {
	Line   int
	Column int
	Text   string
}

// Equal compares spans and columns.
func (t Token) Equal(other Token) bool {
	return t.Column == other.Column && t.Text == other.Text
}

// EqualString compares only the span, ignoring column.
func (t Token) EqualString(s string) bool {
	return t.Text == s
}

func (t Token) String() string {
	return t.Text
}

// Line is the lexer's per-source-line output. A line with neither a label
// nor a mnemonic is blank and is discarded before reaching this struct.
type Line struct {
	Number   int
	Label    *Token
	Mnemonic *Token
	Operands []Token
	Comment  *Token
}
