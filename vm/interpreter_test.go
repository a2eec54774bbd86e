package vm

import (
	"errors"
	"testing"

	"batpu2/isa"
)

func inst(t *testing.T, m isa.Mnemonic, operands ...int) isa.Instruction {
	t.Helper()
	i, err := isa.New(m, operands)
	if err != nil {
		t.Fatalf("isa.New(%s, %v): %v", m, operands, err)
	}
	return i
}

func run(t *testing.T, v *VM, program ...isa.Instruction) {
	t.Helper()
	code := Instructions(program)
	for i := 0; i < len(program); i++ {
		if v.Halted() {
			break
		}
		if _, err := v.Step(code); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
}

func TestRegisterZeroHardwired(t *testing.T) {
	v := New(nil)
	run(t, v, inst(t, isa.LDI, 0, 42))
	if got := v.Register(0); got != 0 {
		t.Errorf("r0 = %d after LDI r0 42, want 0", got)
	}

	v.Reset()
	run(t, v,
		inst(t, isa.LDI, 1, 42),
		inst(t, isa.ADD, 1, 1, 0), // write to r0 via ALU
	)
	if got := v.Register(0); got != 0 {
		t.Errorf("r0 = %d after ADD into r0, want 0", got)
	}
	// The flag update still happens even though the write is dropped.
	if zero, carry := v.Flags(); zero || carry {
		t.Errorf("flags = (%v, %v) after 42+42, want (false, false)", zero, carry)
	}
}

func TestAddCarryAndZero(t *testing.T) {
	// LDI r1 255; ADI r1 1 leaves r1 = 0 with both flags set.
	v := New(nil)
	run(t, v,
		inst(t, isa.LDI, 1, 255),
		inst(t, isa.ADI, 1, 1),
	)
	if got := v.Register(1); got != 0 {
		t.Errorf("r1 = %d, want 0", got)
	}
	zero, carry := v.Flags()
	if !zero || !carry {
		t.Errorf("flags = (zero=%v, carry=%v), want (true, true)", zero, carry)
	}
}

func TestSubNoBorrowCarry(t *testing.T) {
	// SUB with a < b clears carry (borrow happened) and wraps the result.
	v := New(nil)
	run(t, v,
		inst(t, isa.LDI, 1, 3),
		inst(t, isa.LDI, 2, 5),
		inst(t, isa.SUB, 1, 2, 3),
	)
	if got := v.Register(3); got != 254 {
		t.Errorf("r3 = %d, want 254", got)
	}
	zero, carry := v.Flags()
	if zero || carry {
		t.Errorf("flags = (zero=%v, carry=%v), want (false, false)", zero, carry)
	}

	// a >= b sets carry.
	v.Reset()
	run(t, v,
		inst(t, isa.LDI, 1, 5),
		inst(t, isa.LDI, 2, 5),
		inst(t, isa.SUB, 1, 2, 3),
	)
	zero, carry = v.Flags()
	if !zero || !carry {
		t.Errorf("5-5 flags = (zero=%v, carry=%v), want (true, true)", zero, carry)
	}
}

func TestLogicOpsClearCarry(t *testing.T) {
	tests := []struct {
		name string
		m    isa.Mnemonic
		want uint8
	}{
		{"NOR", isa.NOR, ^uint8(0xF0 | 0x3C)},
		{"AND", isa.AND, 0xF0 & 0x3C},
		{"XOR", isa.XOR, 0xF0 ^ 0x3C},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(nil)
			run(t, v,
				inst(t, isa.LDI, 1, 255),
				inst(t, isa.ADI, 1, 1), // sets carry
				inst(t, isa.LDI, 1, 0xF0),
				inst(t, isa.LDI, 2, 0x3C),
				inst(t, tt.m, 1, 2, 3),
			)
			if got := v.Register(3); got != tt.want {
				t.Errorf("r3 = %#02x, want %#02x", got, tt.want)
			}
			if _, carry := v.Flags(); carry {
				t.Errorf("%s left carry set", tt.name)
			}
		})
	}
}

func TestRshAndLdiLeaveFlags(t *testing.T) {
	v := New(nil)
	run(t, v,
		inst(t, isa.LDI, 1, 255),
		inst(t, isa.ADI, 1, 1), // zero=true carry=true
		inst(t, isa.LDI, 2, 8),
		inst(t, isa.RSH, 2, 3),
	)
	if got := v.Register(3); got != 4 {
		t.Errorf("r3 = %d, want 4", got)
	}
	zero, carry := v.Flags()
	if !zero || !carry {
		t.Errorf("flags = (%v, %v) after RSH/LDI, want unchanged (true, true)", zero, carry)
	}
}

func TestBranchConditions(t *testing.T) {
	tests := []struct {
		name        string
		cond        isa.Cond
		zero, carry bool
		taken       bool
	}{
		{"Z taken", isa.CondZero, true, false, true},
		{"Z not taken", isa.CondZero, false, false, false},
		{"NZ taken", isa.CondNotZero, false, false, true},
		{"NZ not taken", isa.CondNotZero, true, false, false},
		{"C taken", isa.CondCarry, false, true, true},
		{"C not taken", isa.CondCarry, false, false, false},
		{"NC taken", isa.CondNotCarry, false, false, true},
		{"NC not taken", isa.CondNotCarry, false, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(nil)
			v.zero = tt.zero
			v.carry = tt.carry
			code := Instructions{inst(t, isa.BRH, int(tt.cond), 100)}
			if _, err := v.Step(code); err != nil {
				t.Fatal(err)
			}
			wantPC := uint16(1)
			if tt.taken {
				wantPC = 100
			}
			if v.PC() != wantPC {
				t.Errorf("pc = %d, want %d", v.PC(), wantPC)
			}
		})
	}
}

func TestCallReturn(t *testing.T) {
	// CAL pushes the address of the following instruction; RET restores
	// it.
	v := New(nil)
	code := Instructions{
		inst(t, isa.CAL, 2),
		inst(t, isa.HLT),
		inst(t, isa.RET),
	}
	if _, err := v.Step(code); err != nil {
		t.Fatal(err)
	}
	if v.PC() != 2 {
		t.Fatalf("pc after CAL = %d, want 2", v.PC())
	}
	if _, err := v.Step(code); err != nil {
		t.Fatal(err)
	}
	if v.PC() != 1 {
		t.Errorf("pc after RET = %d, want 1", v.PC())
	}
}

func TestCallStackRingDropsOldest(t *testing.T) {
	v := New(nil)
	for pc := uint16(1); pc <= 17; pc++ {
		v.pushCall(pc)
	}
	// 17 pushes on a 16-slot ring: 1 is gone, 17..2 pop in order.
	for want := uint16(17); want >= 2; want-- {
		if got := v.popCall(); got != want {
			t.Fatalf("pop = %d, want %d", got, want)
		}
	}
	if got := v.popCall(); got != 0 {
		t.Errorf("pop on drained stack = %d, want 0", got)
	}
}

func TestRetOnEmptyStackJumpsToZero(t *testing.T) {
	v := New(nil)
	v.SetPC(5)
	code := make(Instructions, 6)
	for i := range code {
		code[i] = inst(t, isa.NOP)
	}
	code[5] = inst(t, isa.RET)
	if _, err := v.Step(code); err != nil {
		t.Fatal(err)
	}
	if v.PC() != 0 {
		t.Errorf("pc = %d, want 0", v.PC())
	}
}

func TestStoreThenLoadRAM(t *testing.T) {
	for _, addr := range []int{0, 1, 7, 100, 238, 239} {
		v := New(nil)
		run(t, v,
			inst(t, isa.LDI, 1, 0xA5),
			inst(t, isa.LDI, 2, addr),
			inst(t, isa.STR, 2, 1, 0),
			inst(t, isa.LOD, 2, 3, 0),
		)
		if got := v.Register(3); got != 0xA5 {
			t.Errorf("addr %d: r3 = %#02x, want 0xA5", addr, got)
		}
	}
}

func TestLoadStoreOffsetWraps(t *testing.T) {
	// Effective address is (base + sign-extended offset) mod 256.
	v := New(nil)
	run(t, v,
		inst(t, isa.LDI, 1, 0x5A),
		inst(t, isa.LDI, 2, 0), // base 0, offset -1 wraps to 255 (MMIO, no device -> dropped)
		inst(t, isa.STR, 2, 1, -1),
		inst(t, isa.LDI, 2, 3), // base 3, offset -3 = addr 0
		inst(t, isa.STR, 2, 1, -3),
		inst(t, isa.LDI, 2, 0),
		inst(t, isa.LOD, 2, 3, 0),
	)
	if got := v.Register(3); got != 0x5A {
		t.Errorf("r3 = %#02x, want 0x5A", got)
	}
}

func TestFetchOutOfBoundsIsNOP(t *testing.T) {
	v := New(nil)
	code := Instructions{}
	ran, err := v.Step(code)
	if err != nil {
		t.Fatal(err)
	}
	if !ran {
		t.Fatal("step did not run")
	}
	if v.PC() != 1 {
		t.Errorf("pc = %d, want 1", v.PC())
	}
}

func TestPCWrapsModulo1024(t *testing.T) {
	v := New(nil)
	v.SetPC(1023)
	code := Instructions{inst(t, isa.LDI, 1, 7)}
	if _, err := v.Step(code); err != nil { // NOP at 1023
		t.Fatal(err)
	}
	if _, err := v.Step(code); err != nil { // wraps to 0, runs the LDI
		t.Fatal(err)
	}
	if got := v.Register(1); got != 7 {
		t.Errorf("r1 = %d, want 7 (fetch did not wrap to 0)", got)
	}
}

func TestHaltStopsStepping(t *testing.T) {
	v := New(nil)
	code := Instructions{
		inst(t, isa.HLT),
		inst(t, isa.LDI, 1, 9),
	}
	executed, err := v.StepMultiple(code, 10)
	if err != nil {
		t.Fatal(err)
	}
	if executed != 1 {
		t.Errorf("executed = %d, want 1", executed)
	}
	if !v.Halted() {
		t.Error("vm not halted")
	}
	if got := v.Register(1); got != 0 {
		t.Errorf("r1 = %d, instruction after HLT must not run", got)
	}

	ran, err := v.Step(code)
	if err != nil || ran {
		t.Errorf("Step on halted vm = (%v, %v), want (false, nil)", ran, err)
	}
}

// errCode is a Code whose fetch always fails.
type errCode struct{ err error }

func (c errCode) Instruction(uint16) (isa.Instruction, bool, error) {
	return isa.Instruction{}, false, c.err
}

func (c errCode) Len() int { return 1 }

func TestCodeErrorWrapped(t *testing.T) {
	base := errors.New("bad storage")
	v := New(nil)
	_, err := v.Step(errCode{err: base})
	if err == nil {
		t.Fatal("expected error")
	}
	var runErr *RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("error type = %T, want *RunError", err)
	}
	var codeErr *CodeError
	if !errors.As(err, &codeErr) {
		t.Fatal("RunError does not wrap CodeError")
	}
	if !errors.Is(err, base) {
		t.Error("error chain does not reach the storage error")
	}
}

func TestWordsCodeDecodesLazily(t *testing.T) {
	code := Words{0x1000} // HLT
	got, ok, err := code.Instruction(0)
	if err != nil || !ok {
		t.Fatalf("Instruction(0) = (%v, %v)", ok, err)
	}
	if got.Mnemonic != isa.HLT {
		t.Errorf("mnemonic = %s, want HLT", got.Mnemonic)
	}
	if _, ok, _ := code.Instruction(1); ok {
		t.Error("Instruction(1) in bounds, want out of bounds")
	}
}
