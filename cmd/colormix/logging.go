package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/colormix/config"
	"github.com/lixenwraith/colormix/logger"
)

const (
	logFileName = "colormix.log"
	maxLogSize  = 10 * 1024 * 1024 // rotate above 10MB
)

// setupLogging sends logs to stdout when headless; the TUI owns the screen,
// so it logs to a file under LogDir that is rotated when too large
func setupLogging(h config.HostConfig, tui bool) (*os.File, error) {
	if !tui {
		logger.Init(h.LogLevel, h.LogFormat, os.Stdout)
		return nil, nil
	}

	if err := os.MkdirAll(h.LogDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(h.LogDir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(h.LogDir, "colormix-"+time.Now().Format("20060102-150405")+".log")
		if err := os.Rename(path, rotated); err != nil {
			return nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	logger.Init(h.LogLevel, h.LogFormat, f)
	// Libraries that use the standard logger must not draw over the screen
	log.SetOutput(f)
	return f, nil
}
