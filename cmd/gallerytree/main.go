// Command gallerytree rebuilds a Piwigo photo gallery as a plain directory
// tree from a phpMyAdmin JSON export.
//
// It parses flags, validates configuration and paths, and either runs
// export diagnostics (--check) or the migration pipeline.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/backmassage/gallerytree/internal/check"
	"github.com/backmassage/gallerytree/internal/config"
	"github.com/backmassage/gallerytree/internal/display"
	"github.com/backmassage/gallerytree/internal/logging"
	"github.com/backmassage/gallerytree/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "gallerytree: .env: %v\n", err)
		return 1
	}

	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, os.Args[1:], version); err != nil {
		fmt.Fprintf(os.Stderr, "gallerytree: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "gallerytree: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gallerytree: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available. All output goes through log from here on.
	display.PrintBanner()
	if cfg.ConfigFile != "" {
		log.Info("Config: %s", cfg.ConfigFile)
	}

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	// Inputs must exist before anything under the target is created.
	if err := check.CheckInputs(&cfg); err != nil {
		log.Error("%v", err)
		return 1
	}

	// Resolve and validate paths: the target is created if needed and must
	// not be inside the export root, so copies never land among their sources.
	exportAbs, err := absPath(cfg.ExportRoot)
	if err != nil {
		log.Error("Export root not found: %s", cfg.ExportRoot)
		return 1
	}
	if !cfg.DryRun {
		if err := os.MkdirAll(cfg.TargetRoot, 0o755); err != nil {
			log.Error("Cannot create target directory: %s", cfg.TargetRoot)
			return 1
		}
	}
	targetAbs, err := absPathMaybeMissing(cfg.TargetRoot)
	if err != nil {
		log.Error("Cannot resolve target path: %s", cfg.TargetRoot)
		return 1
	}
	if err := cfg.ValidatePaths(exportAbs, targetAbs); err != nil {
		log.Error("%v", err)
		log.Error("Choose a target path outside: %s", cfg.ExportRoot)
		return 1
	}

	log.Info("=== gallerytree v%s (%s) ===", version, commit)
	log.Info("Export: %s", cfg.ExportRoot)
	log.Info("Target: %s", cfg.TargetRoot)
	if cfg.DryRun {
		log.Warn("DRY RUN: no directories or files will be written")
	}
	log.Info("")

	// Phase 3: Signal handling. Cancel the context on SIGINT/SIGTERM so the
	// pipeline stops between images; a copy in flight finishes or leaves only
	// its temporary file behind.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current image...")
		cancel()
	}()

	// Phase 4: Run pipeline (categories, forest, directories, copies).
	stats, err := pipeline.Run(ctx, &cfg, log)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	if !stats.OK() {
		return 1
	}
	return 0
}

// absPath returns the absolute, symlink-resolved path for safe comparison
// of export vs target directory hierarchies.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// absPathMaybeMissing is absPath for a path that may not exist yet (the
// target in a dry run): the deepest existing ancestor is resolved and the
// rest appended.
func absPathMaybeMissing(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	var rest []string
	for dir := abs; ; dir = filepath.Dir(dir) {
		resolved, err := filepath.EvalSymlinks(dir)
		if err == nil {
			return filepath.Join(append([]string{resolved}, rest...)...), nil
		}
		if !errors.Is(err, fs.ErrNotExist) || filepath.Dir(dir) == dir {
			return "", err
		}
		rest = append([]string{filepath.Base(dir)}, rest...)
	}
}
