/*
 * BatPU-2 - Interactive monitor
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

// Package monitor implements the interactive line-edited console for
// stepping a BatPU-2 VM: an abbreviation-matched command table over the
// interpreter's public surface. Breakpoints live here, in the monitor, as
// a set of pc values checked between steps; the VM knows nothing of them.
package monitor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/peterh/liner"

	"batpu2/vm"
	"batpu2/vm/embedded"
)

// defaultRunBudget bounds a bare "run" so a non-halting program still
// returns to the prompt.
const defaultRunBudget = 10_000_000

// Monitor holds the console session state.
type Monitor struct {
	vm     *vm.VM
	code   vm.Code
	io     *embedded.IO // nil when the VM runs custom devices
	out    io.Writer
	breaks map[uint16]bool
}

// New builds a monitor over machine and code. devices may be nil when the
// VM was constructed with a non-embedded IO; the screen and chars commands
// then report that nothing is attached.
func New(machine *vm.VM, code vm.Code, devices *embedded.IO) *Monitor {
	return &Monitor{
		vm:     machine,
		code:   code,
		io:     devices,
		out:    os.Stdout,
		breaks: make(map[uint16]bool),
	}
}

// stepWithBreaks executes up to n instructions, stopping at a breakpoint
// or halt. The breakpoint check runs between instructions so "step" from a
// breakpoint leaves it.
func (m *Monitor) stepWithBreaks(n int) (int, error) {
	executed := 0
	for i := 0; i < n; i++ {
		ran, err := m.vm.Step(m.code)
		if err != nil {
			return executed, err
		}
		if !ran {
			break
		}
		executed++
		if m.vm.Halted() || m.breaks[m.vm.PC()] {
			break
		}
	}
	return executed, nil
}

// Run reads and dispatches commands until quit or EOF.
func (m *Monitor) Run() {
	console := liner.NewLiner()
	defer console.Close()

	console.SetCtrlCAborts(true)
	console.SetCompleter(completeCmd)

	fmt.Fprintf(m.out, "%d instruction(s) loaded; type help for commands\n", m.code.Len())
	for {
		command, err := console.Prompt("batpu2> ")
		if err == nil {
			console.AppendHistory(command)
			quit, err := m.processCommand(command)
			if err != nil {
				fmt.Fprintln(m.out, "Error: "+err.Error())
			}
			if quit {
				return
			}
			continue
		}

		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return
		}
		slog.Error("error reading line: " + err.Error())
	}
}
