// Package check provides export diagnostics (--check mode) and the
// pre-pipeline input validation (CheckInputs) for the export root and the
// three table dumps.
package check

import (
	"errors"
	"fmt"
	"os"

	"github.com/backmassage/gallerytree/internal/catalog"
	"github.com/backmassage/gallerytree/internal/config"
	"github.com/backmassage/gallerytree/internal/display"
	"github.com/backmassage/gallerytree/internal/gallery"
	"github.com/backmassage/gallerytree/internal/naming"
)

// Sentinel errors returned by CheckInputs when an input is missing.
var (
	ErrExportRootNotFound = errors.New("export root not found")
	ErrExportFileNotFound = errors.New("export file not found")
)

// maxListed caps how many individual problems RunCheck prints per kind.
const maxListed = 10

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// CheckInputs verifies that the export root is a directory and that the
// three table dumps exist. Returns a sentinel error on failure.
func CheckInputs(cfg *config.Config) error {
	fi, err := os.Stat(cfg.ExportRoot)
	if err != nil || !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrExportRootNotFound, cfg.ExportRoot)
	}
	for _, path := range []string{cfg.CategoriesFile, cfg.ImagesFile, cfg.AssignmentsFile} {
		fi, err := os.Stat(path)
		if err != nil || fi.IsDir() {
			return fmt.Errorf("%w: %s", ErrExportFileNotFound, path)
		}
	}
	return nil
}

// RunCheck runs the --check flow: it loads every dump, resolves the
// category forest, plans the directory tree without creating it, and
// reports unassigned images and missing source files. Returns false if
// anything would make a real run fail.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== Export Check ===")

	if err := CheckInputs(cfg); err != nil {
		log.Error("%v", err)
		return false
	}
	log.Success("Export root: %s", cfg.ExportRoot)

	cs, err := catalog.LoadCategories(cfg.CategoriesFile)
	if err != nil {
		log.Error("Categories: %v", err)
		return false
	}
	log.Success("Categories: %s", display.Count(len(cs), "category", "categories"))

	ok := true
	if !checkForest(cfg, cs, log) {
		ok = false
	}

	images, err := catalog.LoadImages(cfg.ImagesFile, cfg.AssignmentsFile)
	if err != nil {
		log.Error("Images: %v", err)
		return false
	}
	log.Success("Images: %s", display.Count(len(images), "image", "images"))

	if !checkImages(cfg, cs, images, log) {
		ok = false
	}
	return ok
}

// checkForest resolves the forest and counts the directories a run would
// ensure. Stuck categories are listed individually.
func checkForest(cfg *config.Config, cs catalog.Categories, log Logger) bool {
	opts := gallery.Options{Sanitizer: naming.Sanitizer{Mode: cfg.NameMode}, DryRun: true}
	ix, err := gallery.Build(cs, opts, log)
	if err != nil {
		var unresolved *gallery.UnresolvedError
		if errors.As(err, &unresolved) {
			log.Error("%s cannot be placed:", display.Count(len(unresolved.Categories), "category", "categories"))
			for _, u := range unresolved.Categories {
				log.Error("  %s", u)
			}
			return false
		}
		log.Error("Category forest: %v", err)
		return false
	}

	depth := 0
	_ = ix.Forest().Walk(func(_ *gallery.Node, d int) error {
		if d+1 > depth {
			depth = d + 1
		}
		return nil
	})
	log.Success("Forest: %s, depth %d",
		display.Count(len(ix.Forest().Roots()), "root", "roots"), depth)

	dirs, err := ix.CreateDirectoryTree(cfg.TargetRoot)
	if err != nil {
		log.Error("Directory plan: %v", err)
		return false
	}
	log.Info("Directories to ensure: %d", dirs)
	return true
}

// checkImages reports unassigned images, dangling category references and
// missing source files.
func checkImages(cfg *config.Config, cs catalog.Categories, images []*catalog.Image, log Logger) bool {
	var unassigned, unknown, missing, multi int
	for _, img := range images {
		switch {
		case !img.Assigned():
			unassigned++
			listed(log, unassigned, "Unassigned: %s", img)
			continue
		case cs[img.CategoryID] == nil:
			unknown++
			listed(log, unknown, "Unknown category %d: %s", img.CategoryID, img)
		}
		if len(img.CategoryIDs) > 1 {
			multi++
		}
		if _, err := os.Stat(img.SourcePath(cfg.ExportRoot)); err != nil {
			missing++
			listed(log, missing, "Missing source: %s | %s (image %d)", img.File, img.Path, img.ID)
		}
	}

	if multi > 0 {
		log.Info("%s in more than one category (placed under the last)", display.Count(multi, "image", "images"))
	}
	if missing > 0 {
		log.Warn("%s missing from the export (will be skipped)", display.Count(missing, "source file", "source files"))
	}
	if unassigned+unknown > 0 {
		log.Error("%s without a usable category", display.Count(unassigned+unknown, "image", "images"))
		return false
	}
	log.Success("Every image has a category")
	return true
}

// listed logs the first maxListed problems of a kind at warn level and the
// rest at debug level.
func listed(log Logger, n int, format string, args ...interface{}) {
	if n <= maxListed {
		log.Warn("  "+format, args...)
		return
	}
	log.Debug("  "+format, args...)
}
