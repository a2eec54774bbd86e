/*
 * BatPU-2 - VM error types
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

import "fmt"

// RunError wraps a failure surfaced from Code or IO during Step. The VM
// itself never fails: every internal state transition (register write,
// flag update, stack rotation, memory access) is total.
type RunError struct {
	PC  uint16
	Err error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("pc %d: %v", e.PC, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// IOError wraps an error returned by an IO device operation.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error: %v", e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// CodeError wraps an error returned by Code.Instruction.
type CodeError struct {
	Err error
}

func (e *CodeError) Error() string {
	return fmt.Sprintf("code error: %v", e.Err)
}

func (e *CodeError) Unwrap() error {
	return e.Err
}
