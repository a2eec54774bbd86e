/*
 * BatPU-2 - Two-pass assembler
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
	"strconv"
	"strings"

	"batpu2/char"
	"batpu2/isa"
)

// MaxCodeLen is the largest number of instructions a program may hold; it
// mirrors the VM's 10-bit program counter space.
const MaxCodeLen = 1024

// Result is the outcome of assembling a source file: the emitted
// instructions (valid only when Diagnostics.Failed() is false) and every
// diagnostic raised across both passes.
type Result struct {
	Instructions []isa.Instruction
	Diagnostics  Diagnostics
}

// Assemble runs the two-pass pipeline over source: pass 1 resolves labels
// and defines, pass 2 emits range-checked instructions. It stops emitting
// new instructions once MaxCodeLen would be exceeded or once
// maxTotalErrors diagnostics have been recorded, but still returns every
// diagnostic accumulated up to that point.
func Assemble(source string) Result {
	lines := Lex(source)
	symbols := newSymtab()
	diags := Diagnostics{}

	pc := 0
	for _, line := range lines {
		if line.Label != nil {
			if pc >= MaxCodeLen {
				if !diags.add(&AsmError{Kind: TooManyInstructions, LineNumber: line.Number, Token: *line.Label}) {
					break
				}
				continue
			}
			symbols.define(strings.TrimPrefix(line.Label.Text, "."), pc)
		}
		if line.Mnemonic == nil {
			continue
		}
		if line.Mnemonic.Text == "define" {
			if !definePass1(symbols, line, &diags) && len(diags.Errors) >= maxTotalErrors {
				break
			}
			continue
		}
		if len(line.Operands) > MaxArgs {
			if !diags.add(&AsmError{Kind: TooManyTokens, LineNumber: line.Number}) {
				break
			}
		}
		if pc >= MaxCodeLen {
			if !diags.add(&AsmError{Kind: TooManyInstructions, LineNumber: line.Number, Token: *line.Mnemonic}) {
				break
			}
			continue
		}
		pc++
	}

	if len(diags.Errors) >= maxTotalErrors {
		return Result{Diagnostics: diags}
	}

	var instructions []isa.Instruction
	pc = 0
	for _, line := range lines {
		if line.Mnemonic == nil {
			continue
		}
		if line.Mnemonic.Text == "define" {
			continue
		}
		if pc >= MaxCodeLen {
			break
		}
		inst, err := emit(symbols, line)
		if err != nil {
			if !diags.add(err) {
				break
			}
			pc++
			continue
		}
		instructions = append(instructions, inst)
		pc++
		if len(instructions) >= MaxCodeLen {
			break
		}
	}

	return Result{Instructions: instructions, Diagnostics: diags}
}

func definePass1(s *symtab, line Line, diags *Diagnostics) bool {
	if len(line.Operands) != 2 {
		return diags.add(&AsmError{
			Kind: WrongOperandCount, LineNumber: line.Number, Mnemonic: "define",
			Expected: 2, Got: len(line.Operands),
		})
	}
	key := line.Operands[0].Text
	valueTok := line.Operands[1]
	v, err := parseInt(valueTok.Text)
	if err != nil {
		return diags.add(&AsmError{Kind: IntParseError, LineNumber: line.Number, Token: valueTok, Source: err})
	}
	s.define(key, v)
	return true
}

// emit resolves every operand of line against symbols and constructs the
// instruction it describes.
func emit(symbols *symtab, line Line) (isa.Instruction, *AsmError) {
	mnemonicName := line.Mnemonic.Text
	m, ok := resolveMnemonic(symbols, mnemonicName)
	if !ok {
		return isa.Instruction{}, &AsmError{Kind: UnknownMnemonic, LineNumber: line.Number, Token: *line.Mnemonic}
	}

	wantArgs, _ := isa.Arity(m)
	if len(line.Operands) != wantArgs {
		return isa.Instruction{}, &AsmError{
			Kind: WrongOperandCount, LineNumber: line.Number, Mnemonic: mnemonicName,
			Expected: wantArgs, Got: len(line.Operands),
		}
	}

	operands := make([]int, len(line.Operands))
	for i, tok := range line.Operands {
		v, err := resolveOperand(symbols, tok)
		if err != nil {
			return isa.Instruction{}, err
		}
		operands[i] = v
	}

	inst, err := isa.New(m, operands)
	if err != nil {
		switch e := err.(type) {
		case *isa.OperandOutOfRangeError:
			return isa.Instruction{}, &AsmError{
				Kind: OperandOutOfRange, LineNumber: line.Number, Token: line.Operands[e.Index],
				OperandIndex: e.Index, FieldName: e.Name, Min: e.Min, Max: e.Max,
			}
		case *isa.WrongOperandCountError:
			return isa.Instruction{}, &AsmError{
				Kind: WrongOperandCount, LineNumber: line.Number, Mnemonic: mnemonicName,
				Expected: e.Want, Got: e.Got,
			}
		default:
			return isa.Instruction{}, &AsmError{Kind: UnknownMnemonic, LineNumber: line.Number, Token: *line.Mnemonic}
		}
	}
	return inst, nil
}

// resolveMnemonic resolves a mnemonic token: first through the symbol
// table, where a value in 0..15 names an opcode directly (this is how a
// lower-case "ldi", a user "define jump 10", or a raw opcode number all
// work), then as a mnemonic or alias name against the ISA table.
func resolveMnemonic(symbols *symtab, name string) (isa.Mnemonic, bool) {
	if v, ok := symbols.lookup(name); ok && v >= 0 && v < 16 {
		return isa.Mnemonic(v), true
	}
	return isa.LookupMnemonic(name)
}

// resolveOperand implements the pass-2 resolution order: character
// literal, then signed integer, then symbol table lookup.
func resolveOperand(symbols *symtab, tok Token) (int, *AsmError) {
	if len(tok.Text) == 3 && (tok.Text[0] == '\'' || tok.Text[0] == '"') && tok.Text[2] == tok.Text[0] {
		if c, ok := char.FromRune(rune(tok.Text[1])); ok {
			return int(c.Index()), nil
		}
	}

	if v, err := parseInt(tok.Text); err == nil {
		return v, nil
	}

	if v, ok := symbols.lookup(tok.Text); ok {
		return v, nil
	}

	literal := isLiteralLooking(tok.Text)
	return 0, &AsmError{Kind: UnknownSymbol, LineNumber: tok.Line, Token: tok, Literal: literal}
}

// isLiteralLooking reports whether s looks like it was meant to be a
// number or char literal rather than a symbol name, to shape the
// UnknownSymbol diagnostic.
func isLiteralLooking(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '\'' || s[0] == '"' {
		return true
	}
	c := s[0]
	return c == '-' || (c >= '0' && c <= '9')
}

// parseInt parses decimal, 0x/0o/0b-prefixed, and leading-minus integer
// literals.
func parseInt(s string) (int, error) {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	base := 10
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		base = 16
		s = s[2:]
	case strings.HasPrefix(s, "0o") || strings.HasPrefix(s, "0O"):
		base = 8
		s = s[2:]
	case strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B"):
		base = 2
		s = s[2:]
	}
	v, err := strconv.ParseInt(s, base, 32)
	if err != nil {
		return 0, err
	}
	if neg {
		v = -v
	}
	return int(v), nil
}
