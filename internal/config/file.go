package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/backmassage/gallerytree/internal/naming"
)

// Environment variables recognized by [ApplyEnv].
const (
	EnvConfig          = "GALLERYTREE_CONFIG"
	EnvExportRoot      = "GALLERYTREE_EXPORT_ROOT"
	EnvTargetRoot      = "GALLERYTREE_TARGET_ROOT"
	EnvCategoriesFile  = "GALLERYTREE_CATEGORIES_FILE"
	EnvImagesFile      = "GALLERYTREE_IMAGES_FILE"
	EnvAssignmentsFile = "GALLERYTREE_ASSIGNMENTS_FILE"
	EnvNameMode        = "GALLERYTREE_NAME_MODE"
	EnvOnCopyError     = "GALLERYTREE_ON_COPY_ERROR"
	EnvLogFile         = "GALLERYTREE_LOG_FILE"
	EnvVerbose         = "GALLERYTREE_VERBOSE"
	EnvDryRun          = "GALLERYTREE_DRY_RUN"
)

// LoadFile overlays the YAML file at path onto cfg. Keys absent from the
// file keep their current values.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	cfg.ConfigFile = path
	return nil
}

// ApplyEnv overlays GALLERYTREE_* environment variables onto cfg. Booleans
// that do not parse are ignored; bad enum strings are kept so that
// [Config.Validate] rejects them.
func ApplyEnv(cfg *Config) {
	strs := []struct {
		key string
		dst *string
	}{
		{EnvExportRoot, &cfg.ExportRoot},
		{EnvTargetRoot, &cfg.TargetRoot},
		{EnvCategoriesFile, &cfg.CategoriesFile},
		{EnvImagesFile, &cfg.ImagesFile},
		{EnvAssignmentsFile, &cfg.AssignmentsFile},
		{EnvLogFile, &cfg.LogFile},
	}
	for _, s := range strs {
		if val := os.Getenv(s.key); val != "" {
			*s.dst = val
		}
	}

	if val := os.Getenv(EnvNameMode); val != "" {
		if m, ok := naming.ParseMode(val); ok {
			cfg.NameMode = m
		} else {
			cfg.NameMode = naming.Mode(val)
		}
	}
	if val := os.Getenv(EnvOnCopyError); val != "" {
		cfg.OnCopyError = ErrorPolicy(val)
	}
	if val := os.Getenv(EnvVerbose); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Verbose = b
		}
	}
	if val := os.Getenv(EnvDryRun); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.DryRun = b
		}
	}
}
