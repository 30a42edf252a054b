package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a pipeline phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a phase boundary. OK is set on PhaseEnd only.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
	OK      bool
}

// PhaseObserver receives phase events emitted during Check and Compile.
type PhaseObserver func(PhaseEvent)
