package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	logDir      = "logs"
	logFileName = "orrery.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging returns the root logger and its open file
// Without debug every log line is discarded, since the viewer owns the terminal
// The caller closes the returned file
func setupLogging(debug bool, level string) (hclog.Logger, *os.File) {
	if !debug {
		log.SetOutput(io.Discard)
		return hclog.NewNullLogger(), nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return hclog.NewNullLogger(), nil
	}

	logPath := filepath.Join(logDir, logFileName)
	rotateLog(logPath)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return hclog.NewNullLogger(), nil
	}

	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel || lvl > hclog.Debug {
		lvl = hclog.Debug
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "orrery",
		Level:  lvl,
		Output: file,
	})

	// Library output through the standard logger lands in the same file
	log.SetOutput(logger.StandardWriter(&hclog.StandardLoggerOptions{InferLevels: true}))
	log.SetFlags(0)

	logger.Info("logging started", "pid", os.Getpid())
	return logger, file
}

// rotateLog moves an oversized log aside with a timestamp suffix
func rotateLog(logPath string) {
	info, err := os.Stat(logPath)
	if err != nil || info.Size() <= maxLogSize {
		return
	}
	ext := filepath.Ext(logPath)
	base := logPath[:len(logPath)-len(ext)]
	rotated := base + "_" + time.Now().Format("20060102_150405") + ext
	_ = os.Rename(logPath, rotated)
}
