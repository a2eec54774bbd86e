/*
 * BatPU-2 - Run options file parser
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

// Package runconfig reads the emulator's run options file.
//
// File format, one option per line, '#' starts a comment:
//
//	seed <number>            # RNG seed, decimal or 0x hex
//	steps <number>           # instruction limit for batch runs, 0 = unlimited
//	controller <name>...     # buttons held at power-on (LEFT DOWN ... START)
//	log <debug|info|warn|error>
//	logfile <path>
package runconfig

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// Config holds every run option with its default.
type Config struct {
	Seed     uint64
	Seeded   bool // Seed was given explicitly
	Steps    int
	Buttons  []string
	LogLevel slog.Level
	LogFile  string
}

// optionLine is the cursor over one option line.
type optionLine struct {
	line string
	pos  int
}

func (l *optionLine) skipSpace() {
	for l.pos < len(l.line) && unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
}

func (l *optionLine) isEOL() bool {
	return l.pos >= len(l.line) || l.line[l.pos] == '#'
}

// getWord returns the next whitespace-delimited word, or "" at end of
// line.
func (l *optionLine) getWord() string {
	l.skipSpace()
	if l.isEOL() {
		return ""
	}
	start := l.pos
	for l.pos < len(l.line) && !unicode.IsSpace(rune(l.line[l.pos])) && l.line[l.pos] != '#' {
		l.pos++
	}
	return l.line[start:l.pos]
}

func (l *optionLine) getNumber() (uint64, error) {
	word := l.getWord()
	if word == "" {
		return 0, errors.New("expected a number")
	}
	base := 10
	if strings.HasPrefix(word, "0x") || strings.HasPrefix(word, "0X") {
		base = 16
		word = word[2:]
	}
	return strconv.ParseUint(word, base, 64)
}

// Load reads the options file at path.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file)
}

// Parse reads options from r, applying defaults for anything not named.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{LogLevel: slog.LevelInfo}

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := optionLine{line: scanner.Text()}
		keyword := strings.ToLower(line.getWord())
		if keyword == "" {
			continue
		}
		if err := cfg.apply(keyword, &line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) apply(keyword string, line *optionLine) error {
	switch keyword {
	case "seed":
		seed, err := line.getNumber()
		if err != nil {
			return err
		}
		cfg.Seed = seed
		cfg.Seeded = true

	case "steps":
		steps, err := line.getNumber()
		if err != nil {
			return err
		}
		cfg.Steps = int(steps)

	case "controller":
		for {
			name := line.getWord()
			if name == "" {
				break
			}
			cfg.Buttons = append(cfg.Buttons, name)
		}
		if len(cfg.Buttons) == 0 {
			return errors.New("controller needs at least one button name")
		}

	case "log":
		switch strings.ToLower(line.getWord()) {
		case "debug":
			cfg.LogLevel = slog.LevelDebug
		case "info":
			cfg.LogLevel = slog.LevelInfo
		case "warn":
			cfg.LogLevel = slog.LevelWarn
		case "error":
			cfg.LogLevel = slog.LevelError
		default:
			return errors.New("log level must be debug, info, warn or error")
		}

	case "logfile":
		path := line.getWord()
		if path == "" {
			return errors.New("logfile needs a path")
		}
		cfg.LogFile = path

	default:
		return errors.New("unknown option: " + keyword)
	}

	if extra := line.getWord(); extra != "" {
		return errors.New("unexpected trailing text: " + extra)
	}
	return nil
}
