package engine

import (
	stderrors "errors"

	"guestexpect/internal/errors"
)

// Outcome classifies one test run.
type Outcome int

const (
	OutcomePass Outcome = iota
	OutcomeFail
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomePass:
		return "pass"
	case OutcomeFail:
		return "fail"
	case OutcomeNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// Result is the outcome of running one test specification. It is produced by
// the runner and consumed by the reporter; nothing persists it beyond the
// optional results file.
type Result struct {
	Name    string
	Outcome Outcome
	Err     error
}

// Reason returns the human-readable failure reason, without the error code
// prefix carried by harness errors.
func (r Result) Reason() string {
	if r.Err == nil {
		return ""
	}
	var herr *errors.HarnessError
	if stderrors.As(r.Err, &herr) && herr.Err == nil {
		return herr.Message
	}
	return r.Err.Error()
}
