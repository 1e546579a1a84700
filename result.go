package pdfsnap

// StopReason explains why a capture loop terminated.
type StopReason int

const (
	// StopPageLimit means the hard MaxPages cap was reached.
	StopPageLimit StopReason = iota
	// StopCountReached means manual mode captured its requested count.
	StopCountReached
	// StopEndOfDocument means the similarity heuristic detected repeated
	// end-of-document content.
	StopEndOfDocument
)

// String returns a human-readable form of the reason.
func (r StopReason) String() string {
	switch r {
	case StopPageLimit:
		return "page limit reached"
	case StopCountReached:
		return "requested count reached"
	case StopEndOfDocument:
		return "end of document detected"
	default:
		return "unknown"
	}
}

// Result reports the outcome of a capture run.
//
// It is safe to call its methods multiple times; the underlying data is
// never modified.
type Result struct {
	files  []string
	reason StopReason
}

// Files returns the paths of the written page images, in capture order.
func (r *Result) Files() []string {
	return r.files
}

// Pages returns the number of pages captured and written.
func (r *Result) Pages() int {
	return len(r.files)
}

// Reason returns why the capture loop stopped.
func (r *Result) Reason() StopReason {
	return r.reason
}
