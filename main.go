/*
 * BatPU-2 - Main process.
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

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	getopt "github.com/pborman/getopt/v2"

	"batpu2/asm"
	"batpu2/config/runconfig"
	"batpu2/internal/logging"
	"batpu2/isa"
	"batpu2/mc"
	"batpu2/monitor"
	"batpu2/vm"
	"batpu2/vm/embedded"
)

func main() {
	optAssemble := getopt.StringLong("assemble", 'a', "", "Assemble a .asm file")
	optRun := getopt.StringLong("run", 'r', "", "Run a .mc or .asm file")
	optDisasm := getopt.StringLong("disassemble", 'd', "", "Disassemble a .mc file")
	optOutput := getopt.StringLong("output", 'o', "", "Output file for --assemble")
	optMonitor := getopt.BoolLong("monitor", 'm', "Interactive monitor instead of batch run")
	optConfig := getopt.StringLong("config", 'c', "", "Run options file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optSeed := getopt.StringLong("seed", 's', "", "RNG seed (overrides config)")
	optSteps := getopt.StringLong("steps", 'n', "", "Instruction limit for batch runs (0 = unlimited)")
	optDebug := getopt.BoolLong("debug", 'D', "Mirror debug records to stderr")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	cfg := &runconfig.Config{LogLevel: slog.LevelInfo}
	if *optConfig != "" {
		loaded, err := runconfig.Load(*optConfig)
		if err != nil {
			fmt.Fprintln(os.Stderr, "config: "+err.Error())
			os.Exit(1)
		}
		cfg = loaded
	}
	if *optSeed != "" {
		seed, err := strconv.ParseUint(*optSeed, 0, 64)
		if err != nil {
			fmt.Fprintln(os.Stderr, "seed must be a number: "+*optSeed)
			os.Exit(1)
		}
		cfg.Seed = seed
		cfg.Seeded = true
	}
	if *optSteps != "" {
		steps, err := strconv.Atoi(*optSteps)
		if err != nil || steps < 0 {
			fmt.Fprintln(os.Stderr, "steps must be a non-negative number: "+*optSteps)
			os.Exit(1)
		}
		cfg.Steps = steps
	}
	logFile := cfg.LogFile
	if *optLogFile != "" {
		logFile = *optLogFile
	}

	var logWriter io.Writer
	if logFile != "" {
		file, err := os.Create(logFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "log: "+err.Error())
			os.Exit(1)
		}
		logWriter = file
	}
	level := new(slog.LevelVar)
	level.Set(cfg.LogLevel)
	logger := slog.New(logging.NewHandler(logWriter, &slog.HandlerOptions{Level: level}, *optDebug))
	slog.SetDefault(logger)

	switch {
	case *optAssemble != "":
		assembleFile(*optAssemble, *optOutput)
	case *optDisasm != "":
		disassembleFile(*optDisasm)
	case *optRun != "":
		runFile(*optRun, cfg, *optMonitor)
	default:
		getopt.Usage()
		os.Exit(1)
	}
}

// assembleFile assembles path and writes the .mc text to output ("" or
// "-" for stdout).
func assembleFile(path, output string) {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	result := asm.Assemble(string(source))
	if result.Diagnostics.Failed() {
		fmt.Fprint(os.Stderr, result.Diagnostics.Report())
		os.Exit(1)
	}
	slog.Info("assembled", "file", path, "instructions", len(result.Instructions))

	out := os.Stdout
	if output != "" && output != "-" {
		out, err = os.Create(output)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		defer out.Close()
	}
	if err := mc.Encode(out, result.Instructions); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// disassembleFile prints one assembler-syntax line per word of a .mc
// file.
func disassembleFile(path string) {
	words, err := loadWords(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	code := vm.Words(words)
	for pc := 0; pc < code.Len(); pc++ {
		inst, _, _ := code.Instruction(uint16(pc))
		fmt.Printf("%4d  %s\n", pc, inst)
	}
}

// runFile executes a program with the embedded devices, either under the
// monitor or as a batch run that prints the device state at halt.
func runFile(path string, cfg *runconfig.Config, interactive bool) {
	words, err := loadWords(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	devices := embedded.New()
	if cfg.Seeded {
		devices = embedded.NewSeeded(cfg.Seed, 0)
	}
	for _, name := range cfg.Buttons {
		if !devices.Controller.SetButton(name, true) {
			fmt.Fprintln(os.Stderr, "config: unknown button: "+name)
			os.Exit(1)
		}
	}

	machine := vm.New(devices)
	code := vm.Words(words)
	slog.Info("loaded", "file", path, "instructions", code.Len())

	if interactive {
		monitor.New(machine, code, devices).Run()
		return
	}

	limit := cfg.Steps
	if limit <= 0 {
		limit = int(^uint(0) >> 1)
	}
	executed := 0
	for executed < limit && !machine.Halted() {
		chunk := limit - executed
		if chunk > 1<<20 {
			chunk = 1 << 20
		}
		n, err := machine.StepMultiple(code, chunk)
		executed += n
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		if n == 0 {
			break
		}
	}
	slog.Info("stopped", "executed", executed, "halted", machine.Halted())

	if out := devices.CharDisplay.String(); strings.TrimSpace(out) != "" {
		fmt.Println(out)
	}
	if out := devices.NumberDisplay.String(); out != "" {
		fmt.Println(out)
	}
}

// loadWords reads a program: .asm sources are assembled in-process,
// anything else is parsed as .mc text.
func loadWords(path string) ([]uint16, error) {
	if strings.HasSuffix(path, ".asm") {
		source, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		result := asm.Assemble(string(source))
		if result.Diagnostics.Failed() {
			fmt.Fprint(os.Stderr, result.Diagnostics.Report())
			return nil, fmt.Errorf("%s: assembly failed", path)
		}
		words := make([]uint16, len(result.Instructions))
		for i, inst := range result.Instructions {
			words[i] = isa.Encode(inst)
		}
		return words, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return mc.Decode(file)
}
