package retryctl

// Status is the event vocabulary broadcast to observers of a retry cycle.
type Status int

const (
	// StatusAttempt is the only non-terminal status: an attempt failed and
	// the cycle continues.
	StatusAttempt Status = iota
	// StatusSuccess ends a cycle with the action's value.
	StatusSuccess
	// StatusFail ends a cycle after attempts were exhausted.
	StatusFail
	// StatusCanceled ends a cycle torn down by Cancel or a cancelled context.
	StatusCanceled
)

func (s Status) String() string {
	switch s {
	case StatusAttempt:
		return "attempt"
	case StatusSuccess:
		return "success"
	case StatusFail:
		return "fail"
	case StatusCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status ends a retry cycle.
func (s Status) Terminal() bool {
	return s != StatusAttempt
}

// Mode controls who initiates the attempt following a failed one.
type Mode int

const (
	// ModeAuto lets the controller perform the next attempt itself once the
	// delay elapses.
	ModeAuto Mode = iota
	// ModeManual pauses the cycle after each failed attempt until Resume is
	// called.
	ModeManual
)

func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeManual:
		return "manual"
	default:
		return "unknown"
	}
}
