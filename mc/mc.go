/*
 * BatPU-2 - Machine code file format
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

// Package mc reads and writes the ".mc" machine-code text format: one
// 16-character big-endian binary line per instruction word.
package mc

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"batpu2/isa"
)

// FormatError reports a malformed line in a .mc input.
type FormatError struct {
	LineNumber int
	Line       string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: not a 16-bit binary word: %q", e.LineNumber, e.Line)
}

// Encode writes one 16-character binary line per instruction, bit 15
// first, with a trailing newline after the last line.
func Encode(w io.Writer, program []isa.Instruction) error {
	words := make([]uint16, len(program))
	for i, inst := range program {
		words[i] = isa.Encode(inst)
	}
	return EncodeWords(w, words)
}

// EncodeWords writes raw machine words in the same format as Encode.
func EncodeWords(w io.Writer, words []uint16) error {
	bw := bufio.NewWriter(w)
	for _, word := range words {
		for bit := 15; bit >= 0; bit-- {
			if word&(1<<bit) != 0 {
				bw.WriteByte('1')
			} else {
				bw.WriteByte('0')
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Decode reads machine words from a .mc input. Blank lines are skipped;
// any other line must be exactly 16 characters of '0' and '1'.
func Decode(r io.Reader) ([]uint16, error) {
	var words []uint16
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		word, ok := parseWord(line)
		if !ok {
			return nil, &FormatError{LineNumber: lineNumber, Line: line}
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

func parseWord(line string) (uint16, bool) {
	if len(line) != 16 {
		return 0, false
	}
	var word uint16
	for _, c := range []byte(line) {
		switch c {
		case '0':
			word <<= 1
		case '1':
			word = word<<1 | 1
		default:
			return 0, false
		}
	}
	return word, true
}
