package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultFile is where the log is written when no file is configured.
const DefaultFile = "/tmp/xrizer.txt"

// Sink describes where Init sends log output.
type Sink struct {
	File       string
	Stdout     bool
	MaxSizeMB  int
	MaxBackups int
}

var initOnce sync.Once

// Init installs the process-wide default logger. Only the first call has an
// effect; later calls return without touching the default logger.
func Init(sink Sink, opts ...HandlerOption) {
	initOnce.Do(func() {
		var writers []io.Writer
		if sink.Stdout {
			writers = append(writers, os.Stdout)
		}
		file := sink.File
		if file == "" {
			file = DefaultFile
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    sink.MaxSizeMB,
			MaxBackups: sink.MaxBackups,
		})

		opts = append([]HandlerOption{WithWriter(io.MultiWriter(writers...))}, opts...)
		slog.SetDefault(slog.New(NewHandler(opts...)))
		slog.Info("Initializing XRizer", "file", file)
	})
}

var warned sync.Map // call site -> struct{}

// WarnOnce logs a warning the first time a given call site emits msg.
func WarnOnce(msg string, args ...any) {
	pc, _, _, _ := runtime.Caller(1)
	if _, seen := warned.LoadOrStore(onceKey{pc: pc, msg: msg}, struct{}{}); seen {
		return
	}
	slog.Warn("[ONCE] "+msg, args...)
}

// WarnUnimplemented logs, once per call site, that function is a stub.
func WarnUnimplemented(function string) {
	pc, file, line, _ := runtime.Caller(1)
	if _, seen := warned.LoadOrStore(onceKey{pc: pc, msg: function}, struct{}{}); seen {
		return
	}
	slog.Warn(fmt.Sprintf("%s unimplemented (%s:%d)", function, filepath.Base(file), line))
}

type onceKey struct {
	pc  uintptr
	msg string
}
