package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenLogDestinations(t *testing.T) {
	w, closeLog, err := openLog(&EnvOptions{})
	if err != nil || w != os.Stdout {
		t.Fatalf("headless log: %v, %v", w, err)
	}
	closeLog()

	w, closeLog, err = openLog(&EnvOptions{interactive: true})
	if err != nil || w != io.Discard {
		t.Fatalf("interactive log: %v, %v", w, err)
	}
	closeLog()

	path := filepath.Join(t.TempDir(), "life.log")
	w, closeLog, err = openLog(&EnvOptions{logFile: path})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(w, "line\n"); err != nil {
		t.Fatal(err)
	}
	closeLog()
	if b, err := os.ReadFile(path); err != nil || string(b) != "line\n" {
		t.Fatalf("log file holds %q, %v", b, err)
	}
}

func TestOpenLogReturnsTheError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "life.log")
	if _, _, err := openLog(&EnvOptions{logFile: path}); err == nil {
		t.Fatal("expected an error for a log file in a missing directory")
	}
}
