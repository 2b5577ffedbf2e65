package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/backmassage/gallerytree/internal/catalog"
	"github.com/backmassage/gallerytree/internal/config"
	"github.com/backmassage/gallerytree/internal/display"
	"github.com/backmassage/gallerytree/internal/gallery"
	"github.com/backmassage/gallerytree/internal/logging"
	"github.com/backmassage/gallerytree/internal/naming"
)

// Run is the top-level batch entry point. Load and forest errors are fatal
// and returned before anything is created. Per-image problems are counted
// in the returned stats; an error is returned only when the batch stopped
// early (abort policy or cancellation).
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	var stats RunStats

	log.Info("Loading categories from %s", cfg.CategoriesFile)
	cs, err := catalog.LoadCategories(cfg.CategoriesFile)
	if err != nil {
		return stats, fmt.Errorf("load categories: %w", err)
	}
	stats.Categories = len(cs)

	opts := gallery.Options{
		Sanitizer:       naming.Sanitizer{Mode: cfg.NameMode},
		DryRun:          cfg.DryRun,
		ContinueOnError: cfg.ContinueOnError(),
	}
	ix, err := gallery.Build(cs, opts, log)
	if err != nil {
		return stats, err
	}
	stats.Roots = len(ix.Forest().Roots())

	dirs, err := ix.CreateDirectoryTree(cfg.TargetRoot)
	stats.Directories = dirs
	if err != nil {
		return stats, err
	}
	log.Success("Directory tree ready: %s under %s",
		display.Count(dirs, "directory", "directories"), cfg.TargetRoot)

	log.Info("Loading images from %s", cfg.ImagesFile)
	images, err := catalog.LoadImages(cfg.ImagesFile, cfg.AssignmentsFile)
	if err != nil {
		return stats, fmt.Errorf("load images: %w", err)
	}

	logBatchHeader(cfg, log, len(images), &stats)

	copied, err := ix.MoveImages(ctx, images, cfg.ExportRoot, cfg.TargetRoot)
	stats.Stats = copied
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("Interrupted")
		}
		logSummary(cfg, log, &stats)
		return stats, err
	}

	if cfg.ReportOrphans {
		reportOrphans(cfg, log, images, &stats)
	}

	logSummary(cfg, log, &stats)
	return stats, nil
}

// reportOrphans lists export files that no image row references. A walk
// failure is logged and does not fail the run.
func reportOrphans(cfg *config.Config, log *logging.Logger, images []*catalog.Image, stats *RunStats) {
	orphans, err := FindOrphans(cfg.ExportRoot, images)
	if err != nil {
		log.Warn("Orphan scan failed: %v", err)
		return
	}
	stats.Orphans = len(orphans)
	for _, o := range orphans {
		log.Warn("Untracked: %s", o)
	}
}

func logBatchHeader(cfg *config.Config, log *logging.Logger, images int, stats *RunStats) {
	log.Info("Found %s in %s (%s)",
		display.Count(images, "image", "images"),
		display.Count(stats.Categories, "category", "categories"),
		display.Count(stats.Roots, "root", "roots"))
	log.Info("Naming: %s", cfg.NameMode)
	log.Info("Copy errors: %s", cfg.OnCopyError)
	if cfg.DryRun {
		log.Warn("DRY RUN: nothing will be created or copied")
	}
	fmt.Println()
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d copied, %d skipped, %d missing, %d failed",
		stats.Copied, stats.Skipped, stats.Missing, stats.Failed)
	log.Info("Summary report:")
	log.Info("  Images processed: %d of %d", stats.Processed(), stats.Total)
	log.Info("  Directories: %d", stats.Directories)
	if cfg.ReportOrphans {
		log.Info("  Untracked export files: %d", stats.Orphans)
	}

	if cfg.DryRun {
		log.Info("  Bytes to copy: %s (dry run)", display.FormatBytes(stats.BytesCopied))
		return
	}
	if stats.OK() {
		log.Success("  Bytes copied: %s", display.FormatBytes(stats.BytesCopied))
	} else {
		log.Warn("  Bytes copied: %s", display.FormatBytes(stats.BytesCopied))
	}
}
