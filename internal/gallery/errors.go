package gallery

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for per-image placement failures.
var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnassigned      = errors.New("image has no category assignment")
	ErrUnsafePath      = errors.New("source path escapes the export root")
	ErrUnresolved      = errors.New("unresolvable category parent")
)

// Unresolved describes a category the forest could not attach.
type Unresolved struct {
	ID       int
	Name     string
	ParentID int
	// Dangling is true when ParentID is absent from the registry; false
	// when the parent exists but is itself stuck (a cycle).
	Dangling bool
}

func (u Unresolved) String() string {
	if u.Dangling {
		return fmt.Sprintf("category %d (%q) references missing parent %d", u.ID, u.Name, u.ParentID)
	}
	return fmt.Sprintf("category %d (%q) has parent %d on a cycle", u.ID, u.Name, u.ParentID)
}

// UnresolvedError is returned by BuildForest when categories remain after
// resolution stops making progress.
type UnresolvedError struct {
	Categories []Unresolved
}

func (e *UnresolvedError) Error() string {
	parts := make([]string, len(e.Categories))
	for i, u := range e.Categories {
		parts[i] = u.String()
	}
	return fmt.Sprintf("%d categories cannot be attached: %s", len(e.Categories), strings.Join(parts, "; "))
}

func (e *UnresolvedError) Unwrap() error { return ErrUnresolved }

// MissingSourceError reports an image whose source file is not in the
// export.
type MissingSourceError struct {
	ImageID int
	File    string
	Path    string
	Err     error
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("file not found: %s | %s (image %d)", e.Path, e.File, e.ImageID)
}

func (e *MissingSourceError) Unwrap() error { return e.Err }
