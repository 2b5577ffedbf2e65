package gallery

// Stats counts image placement outcomes across a MoveImages call.
type Stats struct {
	Total       int
	Current     int
	Copied      int
	Skipped     int // destination already present or claimed earlier in the run
	Missing     int // source file absent from the export
	Failed      int
	BytesCopied int64
}

// Processed returns how many images reached a final outcome.
func (s *Stats) Processed() int {
	return s.Copied + s.Skipped + s.Missing + s.Failed
}
