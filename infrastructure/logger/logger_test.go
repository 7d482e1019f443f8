package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

type bufferCloser struct {
	sync.Mutex
	bytes.Buffer
	closed bool
}

func (b *bufferCloser) Write(p []byte) (int, error) {
	b.Lock()
	defer b.Unlock()
	return b.Buffer.Write(p)
}

func (b *bufferCloser) Close() error {
	b.Lock()
	defer b.Unlock()
	b.closed = true
	return nil
}

func TestBackendLevelFiltering(t *testing.T) {
	backend := NewBackendWithFlags(0)
	infoWriter := &bufferCloser{}
	errorWriter := &bufferCloser{}
	if err := backend.AddLogWriter(infoWriter, LevelInfo); err != nil {
		t.Fatalf("TestBackendLevelFiltering: AddLogWriter: %s", err)
	}
	if err := backend.AddLogWriter(errorWriter, LevelError); err != nil {
		t.Fatalf("TestBackendLevelFiltering: AddLogWriter: %s", err)
	}
	if err := backend.Run(); err != nil {
		t.Fatalf("TestBackendLevelFiltering: Run: %s", err)
	}
	if err := backend.AddLogWriter(&bufferCloser{}, LevelInfo); err == nil {
		t.Fatalf("TestBackendLevelFiltering: expected an error adding a writer to a running backend")
	}

	log := backend.Logger("TEST")
	log.SetLevel(LevelDebug)
	log.Tracef("dropped by the logger")
	log.Debugf("dropped by the writers")
	log.Infof("info %d", 1)
	log.Errorf("error %d", 2)
	backend.Close()

	if !infoWriter.closed || !errorWriter.closed {
		t.Fatalf("TestBackendLevelFiltering: Close did not close the writers")
	}
	infoOutput := infoWriter.String()
	if strings.Contains(infoOutput, "dropped") {
		t.Errorf("TestBackendLevelFiltering: filtered messages were written: %q", infoOutput)
	}
	if !strings.Contains(infoOutput, "[INF] TEST: info 1\n") || !strings.Contains(infoOutput, "[ERR] TEST: error 2\n") {
		t.Errorf("TestBackendLevelFiltering: unexpected info writer output: %q", infoOutput)
	}
	if errorOutput := errorWriter.String(); strings.Contains(errorOutput, "info 1") ||
		!strings.Contains(errorOutput, "error 2") {
		t.Errorf("TestBackendLevelFiltering: unexpected error writer output: %q", errorOutput)
	}
}

func TestRotatedLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "rotated.log")
	backend := NewBackendWithFlags(0)
	if err := backend.AddLogFileWithCustomRotator(logFile, LevelInfo, 1, 3); err != nil {
		t.Fatalf("TestRotatedLogFile: AddLogFileWithCustomRotator: %s", err)
	}
	if err := backend.Run(); err != nil {
		t.Fatalf("TestRotatedLogFile: Run: %s", err)
	}
	if err := backend.AddLogFile(logFile+".other", LevelInfo); err == nil {
		t.Fatalf("TestRotatedLogFile: expected an error adding a log file to a running backend")
	}

	log := backend.Logger("ROTA")
	log.SetLevel(LevelInfo)
	line := strings.Repeat("x", 100)
	// Entries of about 150 bytes roll the 1 KB file over twice.
	for i := 0; i < 16; i++ {
		log.Infof("entry %d %s", i, line)
	}
	log.Debugf("filtered")
	backend.Close()

	if _, err := os.Stat(logFile + ".1.gz"); err != nil {
		t.Fatalf("TestRotatedLogFile: expected a compressed rolled file: %s", err)
	}
	current, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("TestRotatedLogFile: ReadFile: %s", err)
	}
	if !strings.Contains(string(current), "[INF] ROTA: entry 15 ") {
		t.Errorf("TestRotatedLogFile: the last entry is missing from the current file: %q", current)
	}
	if strings.Contains(string(current), "filtered") {
		t.Errorf("TestRotatedLogFile: a filtered entry was written")
	}
}

func TestLoggerWithoutRunningBackend(t *testing.T) {
	log := NewBackend().Logger("IDLE")
	log.SetLevel(LevelTrace)
	// Nothing drains the backend, so this must return instead of blocking.
	log.Criticalf("not written")
}

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		in       string
		expected Level
		ok       bool
	}{
		{"trace", LevelTrace, true},
		{"DBG", LevelDebug, true},
		{"Info", LevelInfo, true},
		{"wrn", LevelWarn, true},
		{"error", LevelError, true},
		{"critical", LevelCritical, true},
		{"off", LevelOff, true},
		{"verbose", LevelInfo, false},
	}
	for _, test := range tests {
		level, ok := LevelFromString(test.in)
		if level != test.expected || ok != test.ok {
			t.Errorf("TestLevelFromString: %s: expected (%s, %t), got (%s, %t)",
				test.in, test.expected, test.ok, level, ok)
		}
	}
}

func TestParseAndSetLogLevels(t *testing.T) {
	log := RegisterSubSystem("PRSE")
	if RegisterSubSystem("PRSE") != log {
		t.Fatalf("TestParseAndSetLogLevels: RegisterSubSystem returned a different logger for the same tag")
	}

	if err := ParseAndSetLogLevels("PRSE=debug"); err != nil {
		t.Fatalf("TestParseAndSetLogLevels: %s", err)
	}
	if log.Level() != LevelDebug {
		t.Fatalf("TestParseAndSetLogLevels: expected level %s, got %s", LevelDebug, log.Level())
	}

	if err := ParseAndSetLogLevels("warn"); err != nil {
		t.Fatalf("TestParseAndSetLogLevels: %s", err)
	}
	if log.Level() != LevelWarn {
		t.Fatalf("TestParseAndSetLogLevels: expected level %s, got %s", LevelWarn, log.Level())
	}

	for _, invalid := range []string{"NOPE=debug", "PRSE=loud", "PRSE", "loud"} {
		if err := ParseAndSetLogLevels(invalid); err == nil {
			t.Errorf("TestParseAndSetLogLevels: expected an error for %q", invalid)
		}
	}
}
