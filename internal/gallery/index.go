package gallery

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/backmassage/gallerytree/internal/catalog"
	"github.com/backmassage/gallerytree/internal/naming"
)

// Logger is the logging surface Index reports through. Defined here so the
// package stays testable with a recording logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// Options control directory naming and the copy phase.
type Options struct {
	Sanitizer naming.Sanitizer
	// DryRun reports what would be created and copied without touching the
	// target tree.
	DryRun bool
	// ContinueOnError logs and counts unexpected copy errors instead of
	// aborting the batch. Missing sources and unknown categories never
	// abort.
	ContinueOnError bool
}

// Index is the category forest plus the flat registry, with the directory
// name of every category computed once.
type Index struct {
	forest     *Forest
	categories catalog.Categories
	segments   map[int]string
	dirs       *naming.Claims // directory → category id
	dests      *naming.Claims // destination file → image
	opts       Options
	log        Logger
}

// Build resolves the forest for cs and wraps it in an Index.
func Build(cs catalog.Categories, opts Options, log Logger) (*Index, error) {
	f, err := BuildForest(cs)
	if err != nil {
		return nil, err
	}
	return NewIndex(f, cs, opts, log), nil
}

// NewIndex wraps an already built forest. Names that sanitize to nothing
// fall back to "category-<id>" and are reported once here.
func NewIndex(f *Forest, cs catalog.Categories, opts Options, log Logger) *Index {
	if log == nil {
		log = nopLogger{}
	}
	ix := &Index{
		forest:     f,
		categories: cs,
		segments:   make(map[int]string, len(cs)),
		dirs:       naming.NewClaims(),
		dests:      naming.NewClaims(),
		opts:       opts,
		log:        log,
	}
	for _, id := range cs.IDs() {
		c := cs[id]
		seg := opts.Sanitizer.Sanitize(c.Name)
		if seg == "" {
			seg = fmt.Sprintf("category-%d", c.ID)
			log.Warn("Category %d name %q has no usable characters, using %q", c.ID, c.Name, seg)
		}
		ix.segments[id] = seg
	}
	return ix
}

// Forest returns the resolved hierarchy.
func (ix *Index) Forest() *Forest { return ix.forest }

// DirectoryName returns the path segment used for category id.
func (ix *Index) DirectoryName(id int) (string, bool) {
	s, ok := ix.segments[id]
	return s, ok
}

// CreateDirectoryTree creates one directory per category under root,
// nested like the hierarchy. Existing directories are left alone, so a
// second run is a no-op. Sibling categories whose names sanitize to the same
// segment share one directory; the later one is reported and not counted.
// It returns the number of category directories ensured.
func (ix *Index) CreateDirectoryTree(root string) (int, error) {
	count := 0
	var stack []string
	err := ix.forest.Walk(func(n *Node, depth int) error {
		id := n.Category.ID
		stack = append(stack[:depth], ix.segments[id])
		dir := filepath.Join(root, filepath.Join(stack...))

		if holder, ok := ix.dirs.Claim(dir, strconv.Itoa(id)); !ok {
			ix.log.Warn("%s shares directory %s with category %s, merging", n.Category, dir, holder)
			return nil
		}
		count++

		if ix.opts.DryRun {
			if _, err := os.Stat(dir); err != nil {
				ix.log.Debug("[DRY] Would create %s", dir)
			}
			return nil
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", n.Category, err)
		}
		return nil
	})
	return count, err
}

// PathForCategory returns root joined with the directory names of id's
// ancestors, root category first, ending with id's own.
func (ix *Index) PathForCategory(root string, id int) (string, error) {
	c, ok := ix.categories[id]
	if !ok {
		return "", fmt.Errorf("%w %d", ErrUnknownCategory, id)
	}

	var segs []string
	for {
		if len(segs) > len(ix.categories) {
			return "", fmt.Errorf("%w: ancestry of category %d loops", ErrUnresolved, id)
		}
		segs = append(segs, ix.segments[c.ID])
		if c.IsRoot() {
			break
		}
		parent, ok := ix.categories[c.ParentID]
		if !ok {
			return "", fmt.Errorf("%w %d (parent of category %d)", ErrUnknownCategory, c.ParentID, c.ID)
		}
		c = parent
	}

	parts := make([]string, 0, len(segs)+1)
	parts = append(parts, root)
	for i := len(segs) - 1; i >= 0; i-- {
		parts = append(parts, segs[i])
	}
	return filepath.Join(parts...), nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})    {}
func (nopLogger) Success(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})    {}
func (nopLogger) Error(string, ...interface{})   {}
func (nopLogger) Debug(string, ...interface{})   {}
