package derive

// Status is the outcome of a load's run interval
type Status int

const (
	// StatusNone means the interval could not be classified (no scheduled stop)
	StatusNone Status = iota
	// StatusNominal means nothing happened between the RLTT and the scheduled stop
	StatusNominal
	// StatusInterrupted means something happened inside the interval
	StatusInterrupted
)

// CaptionNominal is the status text shown for a nominal run
const CaptionNominal = "Ran nominally"

// ColorInterrupted is the display hint for the scheduled stop of an interrupted run
const ColorInterrupted = "grey"

// Caption returns the status text. Interrupted runs have no caption.
func (s Status) Caption() string {
	if s == StatusNominal {
		return CaptionNominal
	}
	return ""
}

// Color returns the scheduled stop display hint
func (s Status) Color() string {
	if s == StatusInterrupted {
		return ColorInterrupted
	}
	return ""
}

// Key returns the canonical snake_case key for the status
func (s Status) Key() string {
	switch s {
	case StatusNominal:
		return "nominal"
	case StatusInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// String returns the key
func (s Status) String() string {
	return s.Key()
}

// ClassifyInterval decides whether a run from rltt to schedStop was nominal.
// Any date strictly inside the open interval (rltt, schedStop) interrupts it.
func ClassifyInterval(rltt, schedStop string, dates ...[]string) Status {
	for _, set := range dates {
		for _, d := range set {
			if InOpenInterval(d, rltt, schedStop) {
				return StatusInterrupted
			}
		}
	}
	return StatusNominal
}
