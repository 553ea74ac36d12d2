package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	logFile, logger := setupLogging(false, "debug")
	if logFile != nil {
		t.Error("Expected nil log file when debug=false")
		logFile.Close()
	}
	if logger.GetLevel() != zerolog.Disabled {
		t.Errorf("Expected disabled logger, got %v", logger.GetLevel())
	}
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	defer os.RemoveAll(logDir)

	logFile, logger := setupLogging(true, "debug")
	if logFile == nil {
		t.Fatal("Expected non-nil log file when debug=true")
	}
	defer logFile.Close()

	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Error("Expected logs directory to be created")
	}

	logger.Debug().Msg("sandbox test")

	content, err := os.ReadFile(filepath.Join(logDir, "vehicle-sandbox.log"))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if len(content) == 0 {
		t.Error("Expected log file to contain the debug line")
	}
}
