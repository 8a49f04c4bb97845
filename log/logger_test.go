package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/holiman/uint256"
)

func TestWriteTimeTermFormat(t *testing.T) {
	b := new(bytes.Buffer)
	ts := time.Date(2024, time.March, 7, 9, 5, 3, 42_000_000, time.UTC)
	writeTimeTermFormat(b, ts)
	if have, want := b.String(), "03-07|09:05:03.042"; have != want {
		t.Fatalf("have %q, want %q", have, want)
	}
}

func TestTerminalHandlerLevel(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandlerWithLevel(out, LevelInfo, false))
	l.Debug("hidden")
	l.Info("shown", "key", "value")
	if strings.Contains(out.String(), "hidden") {
		t.Fatalf("debug record leaked through info handler: %q", out.String())
	}
	if !strings.Contains(out.String(), "shown") || !strings.Contains(out.String(), "key=value") {
		t.Fatalf("info record missing: %q", out.String())
	}
}

func TestTerminalHandlerWords(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandler(out, false))
	l.Info("balance", "small", uint256.NewInt(300), "big", uint256.NewInt(12_345_678))
	have := out.String()
	if !strings.Contains(have, "small=300") {
		t.Errorf("small word not rendered plainly: %q", have)
	}
	if !strings.Contains(have, "big=12,345,678") {
		t.Errorf("big word not rendered with separators: %q", have)
	}
}

func TestOddAttributes(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandler(out, false))
	l.Info("odd", "key")
	if !strings.Contains(out.String(), errorKey) {
		t.Fatalf("odd attribute list not normalized: %q", out.String())
	}
}

func TestLvlFromString(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"trace": LevelTrace,
		"DEBUG": LevelDebug,
		"info":  LevelInfo,
		"crit":  LevelCrit,
	} {
		have, err := LvlFromString(in)
		if err != nil || have != want {
			t.Errorf("%s: have %v (%v), want %v", in, have, err, want)
		}
	}
	if _, err := LvlFromString("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
	if FromLegacyLevel(3) != LevelInfo || FromLegacyLevel(9) != LevelTrace {
		t.Error("legacy verbosity mapping broken")
	}
}

func TestJSONHandler(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(JSONHandler(out))
	l.Info("json", "word", uint256.NewInt(7))
	if !strings.Contains(out.String(), `"word":"7"`) {
		t.Fatalf("unexpected json output: %q", out.String())
	}
}

func TestRootSetDefault(t *testing.T) {
	prev := Root()
	defer SetDefault(prev)

	Info("before install") // discarded
	out := new(bytes.Buffer)
	SetDefault(NewLogger(NewTerminalHandlerWithLevel(out, LevelTrace, false)))
	Trace("traced", "n", 1)
	New("module", "chain").Warn("child")

	have := out.String()
	if strings.Contains(have, "before install") {
		t.Errorf("record logged before install: %q", have)
	}
	if !strings.Contains(have, "traced") || !strings.Contains(have, "n=1") {
		t.Errorf("root record missing: %q", have)
	}
	if !strings.Contains(have, "module=chain") {
		t.Errorf("child context missing: %q", have)
	}
}
