package pipeline

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/gallerytree/internal/catalog"
)

// Image and video extensions Piwigo accepts for upload (lowercase, with
// leading dot).
var mediaExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
	".heic": true,
	".svg":  true,
	".mp4":  true,
	".m4v":  true,
	".mov":  true,
	".webm": true,
	".ogv":  true,
}

// Directories holding Piwigo derivatives rather than originals.
var derivativeDirs = map[string]bool{
	"_data":              true,
	"pwg_representative": true,
	"pwg_high":           true,
	"thumbnail":          true,
}

// Discover walks exportRoot, collects files with media extensions, prunes
// Piwigo's derivative directories, and returns the paths sorted
// lexicographically for deterministic reporting.
func Discover(exportRoot string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(exportRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != exportRoot && derivativeDirs[strings.ToLower(d.Name())] {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(p))
		if mediaExtensions[ext] {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// FindOrphans returns the media files under exportRoot that no image row
// points at, as slash-separated paths relative to exportRoot.
func FindOrphans(exportRoot string, images []*catalog.Image) ([]string, error) {
	known := make(map[string]bool, len(images))
	for _, img := range images {
		known[path.Clean(filepath.ToSlash(img.Path))] = true
	}

	files, err := Discover(exportRoot)
	if err != nil {
		return nil, err
	}
	var orphans []string
	for _, f := range files {
		rel, err := filepath.Rel(exportRoot, f)
		if err != nil {
			return nil, err
		}
		rel = filepath.ToSlash(rel)
		if !known[rel] {
			orphans = append(orphans, rel)
		}
	}
	return orphans, nil
}
