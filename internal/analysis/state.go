package analysis

// RequestState tracks an analysis request through the pipeline. States
// only ever move forward; Ready and Failed are terminal.
type RequestState int

const (
	StatePending RequestState = iota
	StateResolvingPlays
	StateFiltering
	StateCalculating
	StateRanking
	StateReady
	StateFailed
)

func (s RequestState) String() string {
	switch s {
	case StatePending:
		return "PENDING"
	case StateResolvingPlays:
		return "RESOLVING_PLAYS"
	case StateFiltering:
		return "FILTERING"
	case StateCalculating:
		return "CALCULATING"
	case StateRanking:
		return "RANKING"
	case StateReady:
		return "READY"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the state ends the request's lifecycle.
func (s RequestState) Terminal() bool {
	return s == StateReady || s == StateFailed
}
