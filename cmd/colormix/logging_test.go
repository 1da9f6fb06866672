package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/colormix/config"
	"github.com/lixenwraith/colormix/logger"
)

func hostConfig(dir string) config.HostConfig {
	return config.HostConfig{LogLevel: "debug", LogFormat: "text", LogDir: dir}
}

func TestSetupLoggingHeadless(t *testing.T) {
	defer logger.Discard()

	f, err := setupLogging(hostConfig(t.TempDir()), false)
	if err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	if f != nil {
		f.Close()
		t.Error("headless mode should not open a log file")
	}
}

func TestSetupLoggingWritesFile(t *testing.T) {
	defer logger.Discard()
	defer log.SetOutput(os.Stderr)

	dir := filepath.Join(t.TempDir(), "logs")
	f, err := setupLogging(hostConfig(dir), true)
	if err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	defer f.Close()

	logger.Info("hello from test", "round", 1)
	if log.Writer() == os.Stdout || log.Writer() == os.Stderr {
		t.Error("standard logger still writes to the terminal")
	}

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("log file missing message: %q", data)
	}
}

func TestSetupLoggingRotates(t *testing.T) {
	defer logger.Discard()
	defer log.SetOutput(os.Stderr)

	dir := t.TempDir()
	path := filepath.Join(dir, logFileName)
	if err := os.WriteFile(path, make([]byte, maxLogSize+1), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := setupLogging(hostConfig(dir), true)
	if err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	defer f.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	rotated := false
	for _, e := range entries {
		if e.Name() != logFileName && filepath.Ext(e.Name()) == ".log" {
			rotated = true
		}
	}
	if !rotated {
		t.Error("expected a rotated log file")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("new log is %d bytes, want fresh file", info.Size())
	}
}
