/*
 * BatPU-2 - Assembler lexer
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
	"strings"
	"unicode"
)

// stripComment cuts str at the first occurrence of ';', '/' or '#' and
// returns the code portion and the comment portion (comment excluded from
// code, included verbatim with its starting column preserved by the
// caller).
func stripComment(str string) (code string, comment string, commentCol int) {
	for i, r := range str {
		if r == ';' || r == '/' || r == '#' {
			return str[:i], str[i:], i + 1
		}
	}
	return str, "", 0
}

// skipSpace returns str advanced past leading whitespace.
func skipSpace(str string) string {
	for i, r := range str {
		if !unicode.IsSpace(r) {
			return str[i:]
		}
	}
	return ""
}

// nextWord splits str at the next run of whitespace, honoring single- and
// double-quoted character literals as a single word: a quoted word runs to
// the matching closing quote, so a quoted space such as ' ' stays one
// token.
func nextWord(str string) (word string, rest string) {
	str = skipSpace(str)
	if str == "" {
		return "", ""
	}
	if str[0] == '\'' || str[0] == '"' {
		quote := str[0]
		for i := 1; i < len(str); i++ {
			if str[i] == quote {
				return str[:i+1], str[i+1:]
			}
		}
		// Unterminated quote: treat the rest of the line as one word.
		return str, ""
	}
	for i, r := range str {
		if unicode.IsSpace(r) {
			return str[:i], str[i:]
		}
	}
	return str, ""
}

// lexLine tokenizes one source line. Blank lines (no label, no mnemonic)
// return ok=false.
func lexLine(lineNumber int, raw string) (Line, bool) {
	code, comment, commentCol := stripComment(raw)

	line := Line{Number: lineNumber}
	rest := code
	col := 0

	// A label is the first token if it begins with '.'.
	trimmed := skipSpace(rest)
	col = len(code) - len(trimmed)
	if strings.HasPrefix(trimmed, ".") {
		word, next := nextWord(trimmed)
		line.Label = &Token{Line: lineNumber, Column: col + 1, Text: word}
		rest = next
	} else {
		rest = trimmed
	}

	trimmed = skipSpace(rest)
	col = len(code) - len(trimmed)
	if trimmed != "" {
		word, next := nextWord(trimmed)
		line.Mnemonic = &Token{Line: lineNumber, Column: col + 1, Text: word}
		rest = next
	}

	for {
		trimmed = skipSpace(rest)
		if trimmed == "" {
			break
		}
		col = len(code) - len(trimmed)
		word, next := nextWord(trimmed)
		line.Operands = append(line.Operands, Token{Line: lineNumber, Column: col + 1, Text: word})
		rest = next
	}

	if comment != "" {
		line.Comment = &Token{Line: lineNumber, Column: commentCol, Text: comment}
	}

	if line.Label == nil && line.Mnemonic == nil {
		return Line{}, false
	}
	return line, true
}

// Lex splits source into its non-blank Lines, 1-indexed.
func Lex(source string) []Line {
	var lines []Line
	for i, raw := range strings.Split(source, "\n") {
		if l, ok := lexLine(i+1, raw); ok {
			lines = append(lines, l)
		}
	}
	return lines
}
