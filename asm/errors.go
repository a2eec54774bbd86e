/*
 * BatPU-2 - Assembler error taxonomy
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

import "fmt"

// ErrorKind discriminates the AsmError variants named in the machine-code
// toolchain's error taxonomy.
type ErrorKind int

const (
	TooManyTokens ErrorKind = iota
	WrongOperandCount
	OperandOutOfRange
	TooManyInstructions
	UnknownMnemonic
	UnknownSymbol
	IntParseError
)

func (k ErrorKind) String() string {
	switch k {
	case TooManyTokens:
		return "TooManyTokens"
	case WrongOperandCount:
		return "WrongOperandCount"
	case OperandOutOfRange:
		return "OperandOutOfRange"
	case TooManyInstructions:
		return "TooManyInstructions"
	case UnknownMnemonic:
		return "UnknownMnemonic"
	case UnknownSymbol:
		return "UnknownSymbol"
	case IntParseError:
		return "IntParseError"
	default:
		return "Unknown"
	}
}

// AsmError is a structured assembly diagnostic: the offending line, the
// token that triggered it (when there is one), and kind-specific detail.
type AsmError struct {
	Kind       ErrorKind
	LineNumber int
	Token      Token // zero value when the error has no specific token

	// WrongOperandCount
	Mnemonic string
	Expected int
	Got      int

	// OperandOutOfRange
	OperandIndex int
	FieldName    string
	Min, Max     int

	// UnknownSymbol
	Literal bool

	// IntParseError
	Source error
}

func (e *AsmError) Error() string {
	switch e.Kind {
	case TooManyTokens:
		return fmt.Sprintf("line %d: too many tokens", e.LineNumber)
	case WrongOperandCount:
		return fmt.Sprintf("line %d: %s expects %d operand(s), got %d", e.LineNumber, e.Mnemonic, e.Expected, e.Got)
	case OperandOutOfRange:
		return fmt.Sprintf("line %d: operand %d (%s) out of range [%d, %d]: %q", e.LineNumber, e.OperandIndex, e.FieldName, e.Min, e.Max, e.Token.Text)
	case TooManyInstructions:
		return fmt.Sprintf("line %d: program exceeds maximum code length", e.LineNumber)
	case UnknownMnemonic:
		return fmt.Sprintf("line %d: unknown mnemonic %q", e.LineNumber, e.Token.Text)
	case UnknownSymbol:
		return fmt.Sprintf("line %d: unknown symbol %q", e.LineNumber, e.Token.Text)
	case IntParseError:
		return fmt.Sprintf("line %d: cannot parse %q: %v", e.LineNumber, e.Token.Text, e.Source)
	default:
		return fmt.Sprintf("line %d: assembly error", e.LineNumber)
	}
}

func (e *AsmError) Unwrap() error {
	return e.Source
}

// summary renders the one-line form used for every diagnostic after the
// first in a pass.
func (e *AsmError) summary() string {
	return fmt.Sprintf("line %d: %s", e.LineNumber, e.Kind)
}

// maxRichErrors is how many diagnostics Report prints (the first in full,
// the rest as one-line summaries) before the remainder are suppressed.
const maxRichErrors = 5

// maxTotalErrors is the hard cap; assembly stops accumulating once this
// many errors have been recorded across both passes together.
const maxTotalErrors = 100

// Diagnostics collects every AsmError raised across both passes and
// formats them per policy: the first gets full detail, the next
// maxRichErrors-1 a one-line summary, and a final line reports how many
// were suppressed once the count passes maxRichErrors.
type Diagnostics struct {
	Errors []*AsmError
}

func (d *Diagnostics) add(err *AsmError) bool {
	d.Errors = append(d.Errors, err)
	return len(d.Errors) < maxTotalErrors
}

// Failed reports whether any error was recorded.
func (d *Diagnostics) Failed() bool {
	return len(d.Errors) > 0
}

// Report renders the full diagnostics text: the first error gets rich
// detail, the next maxRichErrors-1 get a one-line summary, and anything
// past maxRichErrors is suppressed with a trailing skipped-count line.
func (d *Diagnostics) Report() string {
	if len(d.Errors) == 0 {
		return ""
	}
	s := ""
	for i, e := range d.Errors {
		switch {
		case i == 0:
			s += e.Error() + "\n"
		case i < maxRichErrors:
			s += e.summary() + "\n"
		default:
			s += fmt.Sprintf("(%d errors skipped...)\n", len(d.Errors)-maxRichErrors)
			return s
		}
	}
	return s
}
