package state

// Phase represents the progress of a loading scene
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseFailed
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "Loading"
	case PhaseReady:
		return "Ready"
	case PhaseFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Settled reports whether loading finished, successfully or not
func (p Phase) Settled() bool {
	return p == PhaseReady || p == PhaseFailed
}

// Next returns the phase after a load outcome. A failure is final; Ready is
// only reached from Loading.
func (p Phase) Next(complete bool, err error) Phase {
	switch {
	case p == PhaseFailed:
		return PhaseFailed
	case err != nil:
		return PhaseFailed
	case complete:
		return PhaseReady
	default:
		return p
	}
}
