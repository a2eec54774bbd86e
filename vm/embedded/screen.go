/*
 * BatPU-2 - Bit screen device
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

import "strings"

// ScreenSize is the width and height of the bit plane in pixels.
const ScreenSize = 32

// coordMask truncates a coordinate write to the low 5 bits.
const coordMask = ScreenSize - 1

// Screen is the 32x32 bit plane. Pixel operations act on the working
// buffer; the program publishes it to the output plane atomically with
// buffer_screen. Each row is one 32-bit word, bit x of row y.
type Screen struct {
	X, Y   uint8
	Buffer [ScreenSize]uint32
	Output [ScreenSize]uint32
}

// BufferPixel reads a pixel from the working buffer.
func (s *Screen) BufferPixel(x, y uint8) bool {
	x &= coordMask
	y &= coordMask
	return s.Buffer[y]&(1<<x) != 0
}

// SetBufferPixel sets or clears one pixel of the working buffer.
func (s *Screen) SetBufferPixel(x, y uint8, on bool) {
	x &= coordMask
	y &= coordMask
	if on {
		s.Buffer[y] |= 1 << x
	} else {
		s.Buffer[y] &^= 1 << x
	}
}

// Pixel reads a pixel from the published output plane.
func (s *Screen) Pixel(x, y uint8) bool {
	x &= coordMask
	y &= coordMask
	return s.Output[y]&(1<<x) != 0
}

// ShowBuffer publishes the working buffer to the output plane.
func (s *Screen) ShowBuffer() {
	s.Output = s.Buffer
}

// ClearBuffer zeroes the working buffer; the output plane keeps whatever
// was last published.
func (s *Screen) ClearBuffer() {
	s.Buffer = [ScreenSize]uint32{}
}

// Render draws the output plane as 32 text rows, '#' for a lit pixel.
func (s *Screen) Render() string {
	var sb strings.Builder
	for y := 0; y < ScreenSize; y++ {
		for x := 0; x < ScreenSize; x++ {
			if s.Pixel(uint8(x), uint8(y)) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
