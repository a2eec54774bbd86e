package runconfig

import (
	"log/slog"
	"strings"
	"testing"
)

func TestParseFullConfig(t *testing.T) {
	input := `
# run options
seed 0x1234
steps 500000
controller LEFT START
log debug
logfile run.log
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Seeded || cfg.Seed != 0x1234 {
		t.Errorf("seed = (%v, %#x), want (true, 0x1234)", cfg.Seeded, cfg.Seed)
	}
	if cfg.Steps != 500000 {
		t.Errorf("steps = %d, want 500000", cfg.Steps)
	}
	if len(cfg.Buttons) != 2 || cfg.Buttons[0] != "LEFT" || cfg.Buttons[1] != "START" {
		t.Errorf("buttons = %v, want [LEFT START]", cfg.Buttons)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("log level = %v, want debug", cfg.LogLevel)
	}
	if cfg.LogFile != "run.log" {
		t.Errorf("logfile = %q, want run.log", cfg.LogFile)
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader("# nothing set\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seeded {
		t.Error("seed reported as explicit with none given")
	}
	if cfg.Steps != 0 || len(cfg.Buttons) != 0 || cfg.LogFile != "" {
		t.Errorf("defaults = %+v, want zero values", cfg)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("default log level = %v, want info", cfg.LogLevel)
	}
}

func TestParseCommentsAndCase(t *testing.T) {
	cfg, err := Parse(strings.NewReader("SEED 42 # trailing comment\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Seeded || cfg.Seed != 42 {
		t.Errorf("seed = (%v, %d), want (true, 42)", cfg.Seeded, cfg.Seed)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"bogus 1\n",
		"seed\n",
		"seed notanumber\n",
		"log loud\n",
		"controller\n",
		"seed 1 2\n",
		"logfile\n",
	} {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
		}
	}
}
