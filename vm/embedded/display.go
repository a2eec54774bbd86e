/*
 * BatPU-2 - Character and number displays
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

package embedded

import (
	"strconv"
	"strings"

	"batpu2/char"
)

// CharDisplayLen is the number of character slots on the display strip.
const CharDisplayLen = 10

// CharDisplay is the 10-slot rolling character strip. Writes land in the
// working buffer at an advancing head; buffer_chars publishes the buffer
// to the output strip.
type CharDisplay struct {
	Buffer [CharDisplayLen]char.Char
	Output [CharDisplayLen]char.Char
	head   int
}

// Write places c at the current head position and advances the head,
// wrapping after the tenth slot.
func (d *CharDisplay) Write(c char.Char) {
	d.head %= CharDisplayLen
	d.Buffer[d.head] = c
	d.head++
}

// ShowBuffer publishes the working buffer to the output strip.
func (d *CharDisplay) ShowBuffer() {
	d.Output = d.Buffer
}

// ClearBuffer fills the working buffer with SPACE and resets the head.
func (d *CharDisplay) ClearBuffer() {
	d.Buffer = [CharDisplayLen]char.Char{}
	d.head = 0
}

// String renders the published output strip.
func (d *CharDisplay) String() string {
	var sb strings.Builder
	for _, c := range d.Output {
		sb.WriteString(c.String())
	}
	return sb.String()
}

// NumberDisplay shows one optional byte, formatted signed or unsigned
// decimal per the mode ports.
type NumberDisplay struct {
	Value  uint8
	Shown  bool
	Signed bool
}

// Set shows value; the current mode decides its rendering.
func (d *NumberDisplay) Set(value uint8) {
	d.Value = value
	d.Shown = true
}

// Clear blanks the display without touching the mode.
func (d *NumberDisplay) Clear() {
	d.Shown = false
}

// String renders the displayed number, or "" when the display is blank.
func (d *NumberDisplay) String() string {
	if !d.Shown {
		return ""
	}
	if d.Signed {
		return strconv.Itoa(int(int8(d.Value)))
	}
	return strconv.Itoa(int(d.Value))
}
