package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jrick/logrotate/rotator"
	"github.com/pkg/errors"
)

// Flags to modify Backend's behavior.
const (
	// LogFlagLongFile adds the full path and line number of the logging
	// callsite, e.g. /a/b/c/main.go:123.
	LogFlagLongFile uint32 = 1 << iota

	// LogFlagShortFile adds the file name and line number of the logging
	// callsite, e.g. main.go:123. Takes precedence over LogFlagLongFile.
	LogFlagShortFile
)

// defaultFlags are read from the comma separated LOGFLAGS environment
// variable. It is a variable rather than an init() result because other
// package level variables are built from it.
var defaultFlags = flagsFromEnv(os.Getenv("LOGFLAGS"))

func flagsFromEnv(value string) uint32 {
	var flags uint32
	for _, name := range strings.Split(value, ",") {
		switch strings.TrimSpace(name) {
		case "longfile":
			flags |= LogFlagLongFile
		case "shortfile":
			flags |= LogFlagShortFile
		}
	}
	return flags
}

// Rotation defaults for AddLogFile: files roll over at 100 MB and the last
// eight are kept.
const (
	defaultRotateThresholdKB = 100 * 1000
	defaultMaxRolls          = 8
)

type logWriter struct {
	io.WriteCloser
	minLevel Level
}

// Backend serializes the entries of all its subsystem loggers and fans each
// of them out to every writer whose minimum level it reaches. Writers can
// only be added before Run.
type Backend struct {
	flag      uint32
	isRunning uint32
	writers   []logWriter
	writeChan chan logEntry
	// closeMtx is held by the writing goroutine until writeChan is drained.
	closeMtx sync.Mutex
}

// NewBackendWithFlags returns a Backend that uses flags instead of the
// LOGFLAGS defaults.
func NewBackendWithFlags(flags uint32) *Backend {
	return &Backend{flag: flags, writeChan: make(chan logEntry)}
}

// NewBackend returns a Backend configured by the LOGFLAGS environment variable.
func NewBackend() *Backend {
	return NewBackendWithFlags(defaultFlags)
}

func (b *Backend) addWriter(writer io.WriteCloser, minLevel Level) error {
	if b.IsRunning() {
		return errors.New("can't add a log writer to a running logger")
	}
	b.writers = append(b.writers, logWriter{WriteCloser: writer, minLevel: minLevel})
	return nil
}

// AddLogWriter makes the backend write every entry of at least minLevel to writer.
func (b *Backend) AddLogWriter(writer io.WriteCloser, minLevel Level) error {
	return b.addWriter(writer, minLevel)
}

// AddLogFile is AddLogFileWithCustomRotator with the default rotation settings.
func (b *Backend) AddLogFile(logFile string, minLevel Level) error {
	return b.AddLogFileWithCustomRotator(logFile, minLevel, defaultRotateThresholdKB, defaultMaxRolls)
}

// AddLogFileWithCustomRotator makes the backend write every entry of at least
// minLevel to logFile, creating it and its directory if needed. The file is
// rolled over once it grows past thresholdKB and the last maxRolls rolled
// files are kept.
func (b *Backend) AddLogFileWithCustomRotator(logFile string, minLevel Level, thresholdKB int64, maxRolls int) error {
	if b.IsRunning() {
		return errors.New("can't add a log file to a running logger")
	}
	if logDir := filepath.Dir(logFile); logDir != "." {
		err := os.MkdirAll(logDir, 0700)
		if err != nil {
			return errors.Wrapf(err, "failed to create log directory %s", logDir)
		}
	}
	fileRotator, err := rotator.New(logFile, thresholdKB, false, maxRolls)
	if err != nil {
		return errors.Wrapf(err, "failed to create file rotator for %s", logFile)
	}
	return b.addWriter(fileRotator, minLevel)
}

// Run starts writing log entries in a separate goroutine. It fails if the
// backend is already running.
func (b *Backend) Run() error {
	if !atomic.CompareAndSwapUint32(&b.isRunning, 0, 1) {
		return errors.New("the logger is already running")
	}
	b.closeMtx.Lock()
	go func() {
		defer func() {
			if err := recover(); err != nil {
				fmt.Fprintf(os.Stderr, "Fatal error in the logger backend: %+v\n%s\n", err, debug.Stack())
			}
		}()
		defer b.closeMtx.Unlock()
		defer atomic.StoreUint32(&b.isRunning, 0)

		for entry := range b.writeChan {
			for _, writer := range b.writers {
				if entry.level >= writer.minLevel {
					_, _ = writer.Write(entry.log)
				}
			}
		}
	}()
	return nil
}

// IsRunning returns whether Run was called and Close was not.
func (b *Backend) IsRunning() bool {
	return atomic.LoadUint32(&b.isRunning) != 0
}

// Close stops accepting entries, waits for the pending ones to be written and
// closes all writers.
func (b *Backend) Close() {
	close(b.writeChan)
	b.closeMtx.Lock()
	defer b.closeMtx.Unlock()
	for _, writer := range b.writers {
		_ = writer.Close()
	}
}

// Logger returns a logger that tags its entries with subsystemTag. It logs
// nothing until its level is set.
func (b *Backend) Logger(subsystemTag string) *Logger {
	return &Logger{LevelOff, subsystemTag, b, b.writeChan}
}
