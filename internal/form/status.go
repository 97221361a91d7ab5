package form

// Status is the submission state of a form.
type Status int

const (
	Idle Status = iota
	Validating
	Submitting
	Succeeded
	Failed // held only while the failure notice is emitted, then Idle
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Busy reports whether a new submit must be ignored.
func (s Status) Busy() bool {
	return s == Validating || s == Submitting || s == Succeeded
}

// Outcome is the result of one Submit call.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeInvalid
	OutcomeSucceeded
	OutcomeFailed
	OutcomeCanceled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	case OutcomeCanceled:
		return "canceled"
	}
	return "unknown"
}
