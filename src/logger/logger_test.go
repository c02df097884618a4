package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelsArePrefixed(t *testing.T) {
	var b bytes.Buffer
	l := New(&b)
	l.Info("board %dx%d", 3, 4)
	l.Warn("slow")
	l.Error("boom")
	l.Event("START", "epoch 1")

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	want := []string{"[LIFE-INFO] ", "[LIFE-WARN] ", "[LIFE-ERROR] ", "[LIFE-INFO] "}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines: %q", len(lines), lines)
	}
	for i, prefix := range want {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Errorf("line %d %q does not start with %q", i, lines[i], prefix)
		}
	}
	if !strings.HasSuffix(lines[0], "board 3x4") || !strings.HasSuffix(lines[3], "[EVENT:START] epoch 1") {
		t.Errorf("unexpected messages: %q", lines)
	}
}
