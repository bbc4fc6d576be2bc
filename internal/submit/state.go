package submit

// State is a step of a single submission.
type State int

const (
	Idle State = iota
	Collecting
	Submitting
	CollectError
	RequestFailure
	NetworkFailure
	Success
)

var stateNames = map[State]string{
	Idle:           "idle",
	Collecting:     "collecting",
	Submitting:     "submitting",
	CollectError:   "collect_error",
	RequestFailure: "request_failure",
	NetworkFailure: "network_failure",
	Success:        "success",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether the state ends a submission; the form is idle
// again once it is reached.
func (s State) Terminal() bool {
	switch s {
	case CollectError, RequestFailure, NetworkFailure, Success:
		return true
	default:
		return false
	}
}

// MarshalText renders the state name in JSON payloads.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

const (
	StatusCalculating   = "Calculating..."
	StatusFixInput      = "Fix input errors and submit again."
	StatusRequestFailed = "Request failed."
)
