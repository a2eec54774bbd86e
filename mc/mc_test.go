package mc

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"batpu2/isa"
)

func TestEncodeExactText(t *testing.T) {
	nop, err := isa.New(isa.NOP, nil)
	if err != nil {
		t.Fatal(err)
	}
	str, err := isa.New(isa.STR, []int{15, 15, -1})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, []isa.Instruction{nop, str}); err != nil {
		t.Fatal(err)
	}
	want := "0000000000000000\n1111111111111111\n"
	if got := buf.String(); got != want {
		t.Errorf("Encode = %q, want %q", got, want)
	}
}

func TestDecodeSkipsBlankLines(t *testing.T) {
	input := "0001000000000000\n\n   \n1101000000000000\n"
	words, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 2 || words[0] != 0x1000 || words[1] != 0xD000 {
		t.Errorf("words = %#v, want [0x1000 0xD000]", words)
	}
}

func TestDecodeRejectsMalformedLines(t *testing.T) {
	for _, input := range []string{
		"101\n",               // short
		"00010000000000001\n", // long
		"000100000000000x\n",  // bad digit
	} {
		_, err := Decode(strings.NewReader(input))
		if err == nil {
			t.Errorf("Decode(%q) succeeded, want FormatError", input)
			continue
		}
		var formatErr *FormatError
		if !errors.As(err, &formatErr) {
			t.Errorf("Decode(%q) error type = %T, want *FormatError", input, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	words := []uint16{0x0000, 0x1000, 0x8FF8, 0x8404, 0xFF4F, 0xFFFF}
	var buf bytes.Buffer
	if err := EncodeWords(&buf, words); err != nil {
		t.Fatal(err)
	}
	back, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != len(words) {
		t.Fatalf("got %d words, want %d", len(back), len(words))
	}
	for i, w := range words {
		if back[i] != w {
			t.Errorf("word %d = %#04x, want %#04x", i, back[i], w)
		}
	}
}
