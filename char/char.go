/*
 * BatPU-2 - Character display alphabet
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

// Package char implements BatPU-2's 30-symbol character display alphabet.
package char

import "strconv"

// Char is a value in [0, 30) addressable by the character display device.
// Any byte value is constructible and storable; values outside the table
// simply have no printable glyph.
type Char uint8

// Space is index 0 of the alphabet, the display's cleared/blank glyph.
const Space Char = 0

// Table holds the 30 printable glyphs, SPACE at index 0, A-Z at 1..=26,
// '.', '!', '?' at 27..=29.
var Table = [30]rune{
	' ', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N',
	'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z', '.', '!', '?',
}

// New constructs a Char from a raw byte. No range check: out-of-table
// values are legal, just not printable.
func New(value uint8) Char {
	return Char(value)
}

// FromRune looks up the table index of r, case-insensitively for letters.
// The bool result is false when r is not part of the alphabet.
func FromRune(r rune) (Char, bool) {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	for i, c := range Table {
		if c == r {
			return Char(i), true
		}
	}
	return 0, false
}

// Index returns the raw byte value.
func (c Char) Index() uint8 {
	return uint8(c)
}

// IsValid reports whether c has a printable glyph in Table.
func (c Char) IsValid() bool {
	return int(c) < len(Table)
}

// Rune returns the glyph for c and true, or (0, false) if c has no glyph.
func (c Char) Rune() (rune, bool) {
	if !c.IsValid() {
		return 0, false
	}
	return Table[c], true
}

// String renders the glyph, or an explicit "<n>" placeholder when c is
// outside the printable table.
func (c Char) String() string {
	if r, ok := c.Rune(); ok {
		return string(r)
	}
	return "<" + strconv.Itoa(int(c)) + ">"
}
