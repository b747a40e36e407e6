package importer

// Stats is the shared bookkeeping for one import run. Sheet processors
// mutate it through its methods only; the run is single-threaded, so no
// locking is needed.
type Stats struct {
	Imported         int
	Updated          int
	Skipped          int
	CasesCreated     int
	FollowupsCreated int

	// TotalErrors counts every row and month failure; Errors keeps only the
	// first maxErrors messages so the operator view stays bounded.
	TotalErrors int
	Errors      []string

	maxErrors int
}

const defaultMaxErrors = 50

func NewStats(maxErrors int) *Stats {
	if maxErrors <= 0 {
		maxErrors = defaultMaxErrors
	}
	return &Stats{maxErrors: maxErrors}
}

func (s *Stats) AddError(msg string) {
	s.TotalErrors++
	if len(s.Errors) < s.maxErrors {
		s.Errors = append(s.Errors, msg)
	}
}

// Truncated reports whether error messages were dropped from the list.
func (s *Stats) Truncated() bool {
	return s.TotalErrors > len(s.Errors)
}
