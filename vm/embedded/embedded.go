/*
 * BatPU-2 - Embedded IO devices
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

// Package embedded implements the five standard BatPU-2 MMIO devices:
// bit screen, character display, number display, RNG and controller,
// bundled as one vm.IO device set.
package embedded

import (
	"math/rand/v2"

	"batpu2/char"
)

// IO is the embedded device set. None of its operations can fail; every
// vm.IO method returns a nil error.
type IO struct {
	Screen        Screen
	CharDisplay   CharDisplay
	NumberDisplay NumberDisplay
	Rand          *rand.Rand
	Controller    Controller
}

// New builds the device set with an entropy-seeded RNG.
func New() *IO {
	return NewSeeded(rand.Uint64(), rand.Uint64())
}

// NewSeeded builds the device set with a deterministic RNG, for tests and
// reproducible runs.
func NewSeeded(seed1, seed2 uint64) *IO {
	return &IO{Rand: rand.New(rand.NewPCG(seed1, seed2))}
}

func (io *IO) SetPixelX(v uint8) error {
	io.Screen.X = v & coordMask
	return nil
}

func (io *IO) SetPixelY(v uint8) error {
	io.Screen.Y = v & coordMask
	return nil
}

func (io *IO) DrawPixel() error {
	io.Screen.SetBufferPixel(io.Screen.X, io.Screen.Y, true)
	return nil
}

func (io *IO) ClearPixel() error {
	io.Screen.SetBufferPixel(io.Screen.X, io.Screen.Y, false)
	return nil
}

func (io *IO) LoadPixel() (uint8, error) {
	if io.Screen.BufferPixel(io.Screen.X, io.Screen.Y) {
		return 1, nil
	}
	return 0, nil
}

func (io *IO) BufferScreen() error {
	io.Screen.ShowBuffer()
	return nil
}

func (io *IO) ClearScreenBuffer() error {
	io.Screen.ClearBuffer()
	return nil
}

func (io *IO) WriteChar(v uint8) error {
	io.CharDisplay.Write(char.New(v))
	return nil
}

func (io *IO) BufferChars() error {
	io.CharDisplay.ShowBuffer()
	return nil
}

func (io *IO) ClearCharsBuffer() error {
	io.CharDisplay.ClearBuffer()
	return nil
}

func (io *IO) ShowNumber(v uint8) error {
	io.NumberDisplay.Set(v)
	return nil
}

func (io *IO) ClearNumber() error {
	io.NumberDisplay.Clear()
	return nil
}

func (io *IO) SignedMode() error {
	io.NumberDisplay.Signed = true
	return nil
}

func (io *IO) UnsignedMode() error {
	io.NumberDisplay.Signed = false
	return nil
}

func (io *IO) RNG() (uint8, error) {
	return uint8(io.Rand.Uint32()), nil
}

func (io *IO) ControllerInput() (uint8, error) {
	return io.Controller.State, nil
}
