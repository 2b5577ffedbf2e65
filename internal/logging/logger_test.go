package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/gallerytree/internal/config"
)

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = ""
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	l.Info("test message")
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(dir, "logs", "gallerytree.log")
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("to file")
	l.Success("copied")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(cfg.LogFile)
	if !bytes.Contains(b, []byte("[INFO] to file")) || !bytes.Contains(b, []byte("[SUCCESS] copied")) {
		t.Errorf("log file content: %s", string(b))
	}
}

func TestLogger_Streams(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cfg := config.DefaultConfig()
	l, err := newLogger(&cfg, &stdout, &stderr, false)
	if err != nil {
		t.Fatal(err)
	}

	l.Info("info %d", 1)
	l.Warn("careful")
	l.Error("broken %s", "copy")
	l.Debug("hidden")

	out := stdout.String()
	if !strings.Contains(out, "[INFO] info 1") || !strings.Contains(out, "[WARN] careful") {
		t.Errorf("stdout = %q", out)
	}
	if strings.Contains(out, "broken") {
		t.Errorf("error line leaked to stdout: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line printed without verbose: %q", out)
	}
	if !strings.Contains(stderr.String(), "[ERROR] broken copy") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestLogger_VerboseEnablesDebug(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cfg := config.DefaultConfig()
	cfg.Verbose = true
	l, err := newLogger(&cfg, &stdout, &stderr, false)
	if err != nil {
		t.Fatal(err)
	}
	l.Debug("resolved %s", "Trips/2023")
	if !strings.Contains(stdout.String(), "[DEBUG] resolved Trips/2023") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestLogger_FormatIsLiteral(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cfg := config.DefaultConfig()
	l, err := newLogger(&cfg, &stdout, &stderr, false)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("%s", "100% done")
	if !strings.Contains(stdout.String(), "100% done") {
		t.Errorf("stdout = %q", stdout.String())
	}
}
