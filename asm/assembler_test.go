package asm

import (
	"strings"
	"testing"

	"batpu2/isa"
)

func mustInst(t *testing.T, m isa.Mnemonic, operands []int) isa.Instruction {
	t.Helper()
	inst, err := isa.New(m, operands)
	if err != nil {
		t.Fatalf("isa.New(%s, %v): %v", m, operands, err)
	}
	return inst
}

func TestAssembleDefineAndPortSymbol(t *testing.T) {
	src := "define write -1\n" +
		"LDI r15 buffer_chars\n" +
		"LDI r4 'D'\n" +
		"STR r15 r4 write\n"

	res := Assemble(src)
	if res.Diagnostics.Failed() {
		t.Fatalf("Assemble failed: %s", res.Diagnostics.Report())
	}
	want := []uint16{0x8FF8, 0x8404, 0xFF4F}
	if len(res.Instructions) != len(want) {
		t.Fatalf("got %d instructions, want %d", len(res.Instructions), len(want))
	}
	for i, inst := range res.Instructions {
		if got := isa.Encode(inst); got != want[i] {
			t.Errorf("instruction %d = %#04x, want %#04x", i, got, want[i])
		}
	}
}

func TestAssembleLabelsResolveToPC(t *testing.T) {
	src := ".loop\n" +
		"ADD r1 r2 r3\n" +
		"JMP loop\n"

	res := Assemble(src)
	if res.Diagnostics.Failed() {
		t.Fatalf("Assemble failed: %s", res.Diagnostics.Report())
	}
	if len(res.Instructions) != 2 {
		t.Fatalf("got %d instructions, want 2", len(res.Instructions))
	}
	jmp := res.Instructions[1]
	if jmp.Mnemonic != isa.JMP || jmp.Addr != 0 {
		t.Errorf("JMP = %+v, want addr 0", jmp)
	}
}

func TestAssembleDefineDoesNotAdvancePC(t *testing.T) {
	src := "define x 5\n" +
		".here\n" +
		"NOP\n" +
		"JMP here\n"
	res := Assemble(src)
	if res.Diagnostics.Failed() {
		t.Fatalf("Assemble failed: %s", res.Diagnostics.Report())
	}
	jmp := res.Instructions[1]
	if jmp.Addr != 0 {
		t.Errorf("JMP addr = %d, want 0 (define must not advance pc)", jmp.Addr)
	}
}

func TestAssembleCommentsStripped(t *testing.T) {
	src := "NOP ; a comment\n" +
		"HLT # another\n" +
		"ADD r1 r2 r3 / trailing\n"
	res := Assemble(src)
	if res.Diagnostics.Failed() {
		t.Fatalf("Assemble failed: %s", res.Diagnostics.Report())
	}
	if len(res.Instructions) != 3 {
		t.Fatalf("got %d instructions, want 3", len(res.Instructions))
	}
}

func TestAssembleUnknownMnemonic(t *testing.T) {
	res := Assemble("BOGUS r1 r2 r3\n")
	if !res.Diagnostics.Failed() {
		t.Fatal("expected failure for unknown mnemonic")
	}
	if res.Diagnostics.Errors[0].Kind != UnknownMnemonic {
		t.Errorf("kind = %v, want UnknownMnemonic", res.Diagnostics.Errors[0].Kind)
	}
}

func TestAssembleUnknownSymbol(t *testing.T) {
	res := Assemble("JMP nowhere\n")
	if !res.Diagnostics.Failed() {
		t.Fatal("expected failure for unknown symbol")
	}
	if res.Diagnostics.Errors[0].Kind != UnknownSymbol {
		t.Errorf("kind = %v, want UnknownSymbol", res.Diagnostics.Errors[0].Kind)
	}
}

func TestAssembleWrongOperandCount(t *testing.T) {
	res := Assemble("ADD r1 r2\n")
	if !res.Diagnostics.Failed() {
		t.Fatal("expected failure for wrong operand count")
	}
	if res.Diagnostics.Errors[0].Kind != WrongOperandCount {
		t.Errorf("kind = %v, want WrongOperandCount", res.Diagnostics.Errors[0].Kind)
	}
}

func TestAssembleOperandOutOfRange(t *testing.T) {
	res := Assemble("LDI r1 9999\n")
	if !res.Diagnostics.Failed() {
		t.Fatal("expected failure for out-of-range operand")
	}
	if res.Diagnostics.Errors[0].Kind != OperandOutOfRange {
		t.Errorf("kind = %v, want OperandOutOfRange", res.Diagnostics.Errors[0].Kind)
	}
}

func TestAssembleTooManyTokens(t *testing.T) {
	res := Assemble("ADD r1 r2 r3 r4\n")
	if !res.Diagnostics.Failed() {
		t.Fatal("expected failure for too many tokens")
	}
}

func TestAssembleAliasLowersCorrectly(t *testing.T) {
	res := Assemble("MOV r3 r4\n")
	if res.Diagnostics.Failed() {
		t.Fatalf("Assemble failed: %s", res.Diagnostics.Report())
	}
	want := mustInst(t, isa.ADD, []int{3, 0, 4})
	if res.Instructions[0] != want {
		t.Errorf("MOV r3 r4 = %+v, want %+v", res.Instructions[0], want)
	}
}

func TestAssembleConditionAlphabets(t *testing.T) {
	for _, spelling := range []string{"zero", "z", "eq"} {
		res := Assemble("BRH " + spelling + " 5\n")
		if res.Diagnostics.Failed() {
			t.Fatalf("Assemble(BRH %s 5) failed: %s", spelling, res.Diagnostics.Report())
		}
		if res.Instructions[0].Cond != isa.CondZero {
			t.Errorf("BRH %s cond = %v, want CondZero", spelling, res.Instructions[0].Cond)
		}
	}
}

func TestAssembleHexOctBinLiterals(t *testing.T) {
	res := Assemble("LDI r1 0x0F\nLDI r2 0b1010\nLDI r3 0o17\n")
	if res.Diagnostics.Failed() {
		t.Fatalf("Assemble failed: %s", res.Diagnostics.Report())
	}
	want := []uint8{0x0F, 0b1010, 0o17}
	for i, inst := range res.Instructions {
		if inst.Imm != want[i] {
			t.Errorf("instruction %d imm = %d, want %d", i, inst.Imm, want[i])
		}
	}
}

func TestAssembleLowercaseMnemonics(t *testing.T) {
	res := Assemble("ldi r1 5\nmov r1 r2\nhlt\n")
	if res.Diagnostics.Failed() {
		t.Fatalf("Assemble failed: %s", res.Diagnostics.Report())
	}
	want := []isa.Mnemonic{isa.LDI, isa.ADD, isa.HLT}
	for i, inst := range res.Instructions {
		if inst.Mnemonic != want[i] {
			t.Errorf("instruction %d mnemonic = %s, want %s", i, inst.Mnemonic, want[i])
		}
	}
}

func TestAssembleMnemonicFromSymbol(t *testing.T) {
	// A define naming an opcode number becomes usable as a mnemonic.
	res := Assemble("define stop 1\nstop\n")
	if res.Diagnostics.Failed() {
		t.Fatalf("Assemble failed: %s", res.Diagnostics.Report())
	}
	if res.Instructions[0].Mnemonic != isa.HLT {
		t.Errorf("mnemonic = %s, want HLT", res.Instructions[0].Mnemonic)
	}
}

func TestAssembleComparisonConditionSpellings(t *testing.T) {
	tests := []struct {
		spelling string
		want     isa.Cond
	}{
		{"=", isa.CondZero},
		{"!=", isa.CondNotZero},
		{">=", isa.CondCarry},
		{"<", isa.CondNotCarry},
	}
	for _, tt := range tests {
		res := Assemble("BRH " + tt.spelling + " 5\n")
		if res.Diagnostics.Failed() {
			t.Fatalf("Assemble(BRH %s 5) failed: %s", tt.spelling, res.Diagnostics.Report())
		}
		if res.Instructions[0].Cond != tt.want {
			t.Errorf("BRH %s cond = %v, want %v", tt.spelling, res.Instructions[0].Cond, tt.want)
		}
	}
}

func TestAssembleTooManyInstructions(t *testing.T) {
	src := strings.Repeat("NOP\n", MaxCodeLen) + ".overflow\nNOP\n"
	res := Assemble(src)
	if !res.Diagnostics.Failed() {
		t.Fatal("expected TooManyInstructions")
	}
	found := false
	for _, e := range res.Diagnostics.Errors {
		if e.Kind == TooManyInstructions {
			found = true
		}
	}
	if !found {
		t.Errorf("no TooManyInstructions among %d errors", len(res.Diagnostics.Errors))
	}
}

func TestAssemblePass2RunsAfterPass1Errors(t *testing.T) {
	// A bad define must not hide the pass-2 diagnostics further down.
	res := Assemble("define x\nJMP nowhere\n")
	kinds := map[ErrorKind]bool{}
	for _, e := range res.Diagnostics.Errors {
		kinds[e.Kind] = true
	}
	if !kinds[WrongOperandCount] || !kinds[UnknownSymbol] {
		t.Errorf("error kinds = %v, want both WrongOperandCount and UnknownSymbol", kinds)
	}
}

func TestDiagnosticsReportPolicy(t *testing.T) {
	var d Diagnostics
	for i := 0; i < 8; i++ {
		d.add(&AsmError{Kind: UnknownSymbol, LineNumber: i + 1, Token: Token{Text: "x"}})
	}
	report := d.Report()
	lines := strings.Split(strings.TrimRight(report, "\n"), "\n")
	// First rich, then 4 summaries, then the skipped-count line.
	if len(lines) != maxRichErrors+1 {
		t.Fatalf("report has %d lines, want %d:\n%s", len(lines), maxRichErrors+1, report)
	}
	if !strings.Contains(lines[len(lines)-1], "3 errors skipped") {
		t.Errorf("last line = %q, want skipped count of 3", lines[len(lines)-1])
	}
}

func TestAssembleStopsAtErrorCap(t *testing.T) {
	src := strings.Repeat("JMP nowhere\n", maxTotalErrors+50)
	res := Assemble(src)
	if len(res.Diagnostics.Errors) > maxTotalErrors {
		t.Errorf("accumulated %d errors, cap is %d", len(res.Diagnostics.Errors), maxTotalErrors)
	}
}

func TestAssembleBlankAndLabelOnlyLines(t *testing.T) {
	src := "\n  \n.top\nNOP\n"
	res := Assemble(src)
	if res.Diagnostics.Failed() {
		t.Fatalf("Assemble failed: %s", res.Diagnostics.Report())
	}
	if len(res.Instructions) != 1 {
		t.Fatalf("got %d instructions, want 1", len(res.Instructions))
	}
}
