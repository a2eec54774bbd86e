/*
 * BatPU-2 - MMIO dispatch
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

package vm

// RawIO is the lower MMIO tier: plain byte read/write at an address in
// 240..255. Its only job is routing one byte to or from a device by port
// address; addresses 0..239 are RAM and never reach it.
type RawIO interface {
	ReadPort(addr uint8) (uint8, error)
	WritePort(addr uint8, value uint8) error
}

// IO is the higher MMIO tier: the 16 BatPU-2 ports as named operations.
// Reads of write-only ports return 0; writes to read-only ports are
// no-ops. Port addresses 240..255 map to these methods in table order.
type IO interface {
	SetPixelX(v uint8) error        // 240
	SetPixelY(v uint8) error        // 241
	DrawPixel() error               // 242
	ClearPixel() error              // 243
	LoadPixel() (uint8, error)      // 244
	BufferScreen() error            // 245
	ClearScreenBuffer() error       // 246
	WriteChar(v uint8) error        // 247
	BufferChars() error             // 248
	ClearCharsBuffer() error        // 249
	ShowNumber(v uint8) error       // 250
	ClearNumber() error             // 251
	SignedMode() error              // 252
	UnsignedMode() error            // 253
	RNG() (uint8, error)            // 254
	ControllerInput() (uint8, error) // 255
}

// portBase is the first MMIO address.
const portBase = 240

// ioAdapter maps RawIO's flat byte interface onto a concrete IO, so any IO
// implementation can also be driven through raw port addresses.
type ioAdapter struct {
	io IO
}

// AsRawIO wraps io so it can be addressed by raw port number.
func AsRawIO(io IO) RawIO {
	return ioAdapter{io: io}
}

func (a ioAdapter) ReadPort(addr uint8) (uint8, error) {
	switch addr {
	case portBase + 4: // load_pixel
		return a.io.LoadPixel()
	case portBase + 14: // rng
		return a.io.RNG()
	case portBase + 15: // controller_input
		return a.io.ControllerInput()
	default:
		return 0, nil
	}
}

func (a ioAdapter) WritePort(addr uint8, value uint8) error {
	switch addr {
	case portBase + 0:
		return a.io.SetPixelX(value)
	case portBase + 1:
		return a.io.SetPixelY(value)
	case portBase + 2:
		return a.io.DrawPixel()
	case portBase + 3:
		return a.io.ClearPixel()
	case portBase + 5:
		return a.io.BufferScreen()
	case portBase + 6:
		return a.io.ClearScreenBuffer()
	case portBase + 7:
		return a.io.WriteChar(value)
	case portBase + 8:
		return a.io.BufferChars()
	case portBase + 9:
		return a.io.ClearCharsBuffer()
	case portBase + 10:
		return a.io.ShowNumber(value)
	case portBase + 11:
		return a.io.ClearNumber()
	case portBase + 12:
		return a.io.SignedMode()
	case portBase + 13:
		return a.io.UnsignedMode()
	default:
		// Read-only or undefined port: no-op.
		return nil
	}
}
