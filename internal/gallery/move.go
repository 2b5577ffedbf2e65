package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/backmassage/gallerytree/internal/catalog"
	"github.com/backmassage/gallerytree/internal/validate"
)

// Outcome is the result of placing one image.
type Outcome int

const (
	OutcomeCopied  Outcome = iota // copied (or would be, in dry run)
	OutcomeSkipped                // destination already present
)

// Placement describes where an image went.
type Placement struct {
	Outcome     Outcome
	Destination string
	Bytes       int64
	// Holder names the image that claimed Destination earlier in this run,
	// when that is why the image was skipped.
	Holder string
}

// MoveImage copies img from exportRoot into its category directory under
// targetRoot, keeping the file name. An existing destination is skipped, so
// reruns neither recopy nor fail. A missing source returns
// *MissingSourceError. The copy goes through a temporary file renamed into
// place, so an interrupted run never leaves a truncated destination behind.
func (ix *Index) MoveImage(img *catalog.Image, exportRoot, targetRoot string) (Placement, error) {
	if !img.Assigned() {
		return Placement{}, ErrUnassigned
	}
	dir, err := ix.PathForCategory(targetRoot, img.CategoryID)
	if err != nil {
		return Placement{}, err
	}
	if !validate.IsRelativePath(img.Path) {
		return Placement{}, fmt.Errorf("%w: %s", ErrUnsafePath, img.Path)
	}

	src := img.SourcePath(exportRoot)
	dst := filepath.Join(dir, img.FileName())
	owner := img.String()
	p := Placement{Destination: dst}

	if holder, ok := ix.dests.Owner(dst); ok && holder != owner {
		p.Outcome = OutcomeSkipped
		p.Holder = holder
		return p, nil
	}

	if !ix.opts.DryRun {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return p, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if _, err := os.Stat(dst); err == nil {
		ix.dests.Claim(dst, owner)
		p.Outcome = OutcomeSkipped
		return p, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return p, err
	}

	in, err := os.Open(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return p, &MissingSourceError{ImageID: img.ID, File: img.File, Path: src, Err: err}
		}
		return p, err
	}
	defer in.Close()

	if ix.opts.DryRun {
		if fi, err := in.Stat(); err == nil {
			p.Bytes = fi.Size()
		}
	} else {
		n, err := copyInto(dst, in)
		if err != nil {
			return p, fmt.Errorf("copy %s to %s: %w", src, dst, err)
		}
		p.Bytes = n
	}
	ix.dests.Claim(dst, owner)
	p.Outcome = OutcomeCopied
	return p, nil
}

// copyInto writes r to a temporary sibling of dst and renames it over dst.
func copyInto(dst string, r io.Reader) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.part")
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), 0o644)
	}
	if err == nil {
		err = os.Rename(tmp.Name(), dst)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return 0, err
	}
	return n, nil
}

// MoveImages places each image in order. Missing sources, unknown or absent
// categories and unsafe paths are logged and counted, and the batch moves
// on. Any other failure aborts the batch unless ContinueOnError is set. The
// context is checked between images.
func (ix *Index) MoveImages(ctx context.Context, images []*catalog.Image, exportRoot, targetRoot string) (Stats, error) {
	stats := Stats{Total: len(images)}

	for i, img := range images {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Current = i + 1

		if len(img.CategoryIDs) > 1 {
			ix.log.Debug("%s is in %d categories, placing under %d", img, len(img.CategoryIDs), img.CategoryID)
		}

		p, err := ix.MoveImage(img, exportRoot, targetRoot)
		if err == nil {
			ix.record(&stats, img, p)
			continue
		}

		var missing *MissingSourceError
		switch {
		case errors.As(err, &missing):
			stats.Missing++
			ix.log.Warn("%v - skipping", missing)
		case errors.Is(err, ErrUnknownCategory), errors.Is(err, ErrUnassigned), errors.Is(err, ErrUnsafePath):
			stats.Failed++
			ix.log.Error("%s: %v", img, err)
		default:
			stats.Failed++
			ix.log.Error("%s: %v", img, err)
			if !ix.opts.ContinueOnError {
				return stats, fmt.Errorf("%s: %w", img, err)
			}
		}
	}
	return stats, nil
}

func (ix *Index) record(stats *Stats, img *catalog.Image, p Placement) {
	switch p.Outcome {
	case OutcomeCopied:
		stats.Copied++
		stats.BytesCopied += p.Bytes
		if ix.opts.DryRun {
			ix.log.Info("[DRY] Would copy %s -> %s", img.File, p.Destination)
		} else {
			ix.log.Debug("Copied %s -> %s", img.File, p.Destination)
		}
	case OutcomeSkipped:
		stats.Skipped++
		if p.Holder != "" {
			ix.log.Debug("Skip (claimed by %s): %s", p.Holder, p.Destination)
		} else {
			ix.log.Debug("Skip (exists): %s", p.Destination)
		}
	}
}
