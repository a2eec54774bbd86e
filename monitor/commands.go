/*
 * BatPU-2 - Monitor command table
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

package monitor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type cmd struct {
	name    string // Command name.
	min     int    // Minimum match size.
	help    string
	process func(*Monitor, []string) (bool, error)
}

var cmdList []cmd

func init() {
	cmdList = []cmd{
		{name: "step", min: 2, help: "step [n]        execute n instructions (default 1)", process: cmdStep},
		{name: "run", min: 1, help: "run [n]         run until halt, breakpoint, or n instructions", process: cmdRun},
		{name: "regs", min: 2, help: "regs            show registers and flags", process: cmdRegs},
		{name: "mem", min: 1, help: "mem <addr> [n]  dump n data bytes from addr (default 16)", process: cmdMem},
		{name: "screen", min: 2, help: "screen          draw the screen output plane", process: cmdScreen},
		{name: "chars", min: 1, help: "chars           show the character and number displays", process: cmdChars},
		{name: "break", min: 1, help: "break [addr]    toggle a breakpoint, or list them", process: cmdBreak},
		{name: "reset", min: 3, help: "reset           return the VM to power-on state", process: cmdReset},
		{name: "help", min: 1, help: "help            this text", process: cmdHelp},
		{name: "quit", min: 1, help: "quit            leave the monitor", process: cmdQuit},
	}
}

// processCommand dispatches one command line. The bool result is true
// when the monitor should exit.
func (m *Monitor) processCommand(commandLine string) (bool, error) {
	args := strings.Fields(commandLine)
	if len(args) == 0 {
		return false, nil
	}

	match := matchList(args[0])
	if len(match) == 0 {
		return false, errors.New("command not found: " + args[0])
	}
	if len(match) > 1 {
		return false, errors.New("unique command not found: " + args[0])
	}
	return match[0].process(m, args[1:])
}

// completeCmd completes a partial command name, for line editing. Unlike
// dispatch it matches on bare prefix, so completion works below a
// command's minimum abbreviation.
func completeCmd(commandLine string) []string {
	name := strings.TrimLeft(commandLine, " ")
	if strings.ContainsRune(name, ' ') {
		return nil
	}
	matches := []string{}
	for _, m := range cmdList {
		if strings.HasPrefix(m.name, name) {
			matches = append(matches, m.name)
		}
	}
	return matches
}

// matchCommand checks command against match's name, requiring at least the
// minimum abbreviation length.
func matchCommand(match cmd, command string) bool {
	if len(command) > len(match.name) {
		return false
	}
	l := 0
	for l = range len(command) {
		if match.name[l] != command[l] {
			return false
		}
	}
	return (l + 1) >= match.min
}

func matchList(command string) []cmd {
	if command == "" {
		return []cmd{}
	}
	var match []cmd
	for _, m := range cmdList {
		if matchCommand(m, command) {
			match = append(match, m)
		}
	}
	return match
}

func parseCount(args []string, def int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 0, errors.New("count must be a positive number: " + args[0])
	}
	return n, nil
}

func cmdStep(m *Monitor, args []string) (bool, error) {
	n, err := parseCount(args, 1)
	if err != nil {
		return false, err
	}
	executed, err := m.stepWithBreaks(n)
	if err != nil {
		return false, err
	}
	fmt.Fprintf(m.out, "executed %d, pc=%d", executed, m.vm.PC())
	m.printCurrent()
	return false, nil
}

func cmdRun(m *Monitor, args []string) (bool, error) {
	n, err := parseCount(args, defaultRunBudget)
	if err != nil {
		return false, err
	}
	executed, err := m.stepWithBreaks(n)
	if err != nil {
		return false, err
	}
	switch {
	case m.vm.Halted():
		fmt.Fprintf(m.out, "halted after %d instruction(s)\n", executed)
	case m.breaks[m.vm.PC()]:
		fmt.Fprintf(m.out, "breakpoint at pc=%d after %d instruction(s)\n", m.vm.PC(), executed)
	default:
		fmt.Fprintf(m.out, "stopped after %d instruction(s), pc=%d\n", executed, m.vm.PC())
	}
	return false, nil
}

func cmdRegs(m *Monitor, args []string) (bool, error) {
	if len(args) != 0 {
		return false, errors.New("regs takes no arguments")
	}
	for r := uint8(0); r < 16; r++ {
		fmt.Fprintf(m.out, "r%-2d=%3d ", r, m.vm.Register(r))
		if r%4 == 3 {
			fmt.Fprintln(m.out)
		}
	}
	zero, carry := m.vm.Flags()
	fmt.Fprintf(m.out, "pc=%d zero=%v carry=%v halted=%v\n", m.vm.PC(), zero, carry, m.vm.Halted())
	return false, nil
}

func cmdMem(m *Monitor, args []string) (bool, error) {
	if len(args) == 0 {
		return false, errors.New("mem needs an address")
	}
	addr, err := strconv.ParseUint(args[0], 0, 8)
	if err != nil {
		return false, errors.New("address must be 0..255: " + args[0])
	}
	count, err := parseCount(args[1:], 16)
	if err != nil {
		return false, err
	}
	for i := 0; i < count; i++ {
		a := uint8(addr) + uint8(i)
		b, err := m.vm.Memory(a)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(m.out, "%3d: %3d (0x%02x)\n", a, b, b)
	}
	return false, nil
}

func cmdScreen(m *Monitor, args []string) (bool, error) {
	if m.io == nil {
		return false, errors.New("no embedded devices attached")
	}
	fmt.Fprint(m.out, m.io.Screen.Render())
	return false, nil
}

func cmdChars(m *Monitor, args []string) (bool, error) {
	if m.io == nil {
		return false, errors.New("no embedded devices attached")
	}
	fmt.Fprintf(m.out, "chars:  %q\n", m.io.CharDisplay.String())
	fmt.Fprintf(m.out, "number: %q\n", m.io.NumberDisplay.String())
	return false, nil
}

func cmdBreak(m *Monitor, args []string) (bool, error) {
	if len(args) == 0 {
		if len(m.breaks) == 0 {
			fmt.Fprintln(m.out, "no breakpoints")
		}
		for pc := range m.breaks {
			fmt.Fprintf(m.out, "break at pc=%d\n", pc)
		}
		return false, nil
	}
	addr, err := strconv.ParseUint(args[0], 0, 16)
	if err != nil || addr >= 1024 {
		return false, errors.New("breakpoint must be 0..1023: " + args[0])
	}
	pc := uint16(addr)
	if m.breaks[pc] {
		delete(m.breaks, pc)
		fmt.Fprintf(m.out, "cleared break at pc=%d\n", pc)
	} else {
		m.breaks[pc] = true
		fmt.Fprintf(m.out, "set break at pc=%d\n", pc)
	}
	return false, nil
}

func cmdReset(m *Monitor, args []string) (bool, error) {
	m.vm.Reset()
	fmt.Fprintln(m.out, "reset")
	return false, nil
}

func cmdHelp(m *Monitor, args []string) (bool, error) {
	for _, c := range cmdList {
		fmt.Fprintln(m.out, "  "+c.help)
	}
	return false, nil
}

func cmdQuit(m *Monitor, args []string) (bool, error) {
	return true, nil
}

// printCurrent shows the instruction the pc now points at.
func (m *Monitor) printCurrent() {
	inst, ok, err := m.code.Instruction(m.vm.PC() & 0x3FF)
	if err != nil || !ok {
		fmt.Fprintln(m.out)
		return
	}
	fmt.Fprintf(m.out, "  next: %s\n", inst)
}
