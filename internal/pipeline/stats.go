package pipeline

import "github.com/backmassage/gallerytree/internal/gallery"

// RunStats tracks the copy counters plus what the run built before copying.
type RunStats struct {
	gallery.Stats
	Categories  int
	Roots       int
	Directories int
	Orphans     int
}

// OK reports whether every image reached a non-failed outcome.
func (s *RunStats) OK() bool {
	return s.Failed == 0
}
