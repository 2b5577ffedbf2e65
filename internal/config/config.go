// Package config holds runtime configuration: defaults, the YAML file and
// environment overlays, CLI flag parsing, and validation. Defaults match the
// layout the Piwigo export was produced in: phpMyAdmin dumps under
// mysql_export/ and the Piwigo "upload" tree under piwigo_download/.
package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/backmassage/gallerytree/internal/naming"
	"github.com/backmassage/gallerytree/internal/validate"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// ErrorPolicy decides what an unexpected copy failure does to the batch.
// Missing source files and unknown categories never stop the batch.
type ErrorPolicy string

const (
	ErrorPolicyAbort    ErrorPolicy = "abort"    // Stop at the first unexpected copy error (default).
	ErrorPolicyContinue ErrorPolicy = "continue" // Log, count as failed, keep going.
)

// Default export table prefix used by Piwigo installations.
const DefaultTablePrefix = "piwigo_"

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overlaid by [LoadFile] and [ApplyEnv], then by [ParseFlags], and passed by
// pointer to the packages that need it.
type Config struct {
	// Inputs.
	ExportRoot      string `yaml:"export_root" validate:"required"`      // Piwigo download root holding upload/.
	CategoriesFile  string `yaml:"categories_file" validate:"required"`  // piwigo_categories dump.
	ImagesFile      string `yaml:"images_file" validate:"required"`      // piwigo_images dump.
	AssignmentsFile string `yaml:"assignments_file" validate:"required"` // piwigo_image_category dump.

	// Output.
	TargetRoot string `yaml:"target_root" validate:"required"`

	// Behavior.
	NameMode      naming.Mode `yaml:"name_mode" validate:"oneof=ascii unicode slug"` // Default: "ascii".
	OnCopyError   ErrorPolicy `yaml:"on_copy_error" validate:"oneof=abort continue"` // Default: "abort".
	DryRun        bool        `yaml:"dry_run"`
	ReportOrphans bool        `yaml:"report_orphans"` // List export files no image row references.

	// Display and logging.
	Verbose       bool      `yaml:"verbose"`
	ColorMode     ColorMode `yaml:"color" validate:"oneof=auto always never"` // Default: "auto".
	LogFile       string    `yaml:"log_file"`                                 // Optional rotating log file.
	LogMaxSizeMB  int       `yaml:"log_max_size_mb" validate:"gte=0"`         // Default: 10.
	LogMaxBackups int       `yaml:"log_max_backups" validate:"gte=0"`         // Default: 3.

	// Set from flags only.
	CheckOnly  bool   `yaml:"-"`
	ConfigFile string `yaml:"-"`
}

// DefaultConfig returns a Config laid out like a stock Piwigo export.
func DefaultConfig() Config {
	cfg := Config{
		ExportRoot:    "piwigo_download",
		TargetRoot:    "target_path",
		NameMode:      naming.ModeASCII,
		OnCopyError:   ErrorPolicyAbort,
		ColorMode:     ColorAuto,
		LogMaxSizeMB:  10,
		LogMaxBackups: 3,
	}
	cfg.SetTables("mysql_export", DefaultTablePrefix)
	return cfg
}

// SetTables points the three export files at dir using Piwigo's table names
// with the given prefix.
func (c *Config) SetTables(dir, prefix string) {
	c.CategoriesFile = TablePath(dir, prefix, "categories")
	c.ImagesFile = TablePath(dir, prefix, "images")
	c.AssignmentsFile = TablePath(dir, prefix, "image_category")
}

// TablePath returns dir/<prefix><table>.json.
func TablePath(dir, prefix, table string) string {
	return filepath.Join(dir, prefix+table+".json")
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks required paths and enum fields, then normalizes the root
// directories.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	c.ExportRoot = NormalizeDirArg(c.ExportRoot)
	c.TargetRoot = NormalizeDirArg(c.TargetRoot)
	return nil
}

// ValidatePaths ensures the resolved target directory is neither the export
// root nor inside it, so copies never land among their own sources. Both
// arguments must be absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(exportAbs, targetAbs string) error {
	sep := string(filepath.Separator)
	if targetAbs == exportAbs || strings.HasPrefix(targetAbs+sep, exportAbs+sep) {
		return errors.New("target directory must not be inside the export root")
	}
	return nil
}

// ContinueOnError reports whether unexpected copy errors should be skipped.
func (c *Config) ContinueOnError() bool {
	return c.OnCopyError == ErrorPolicyContinue
}
