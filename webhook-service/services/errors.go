package services

import (
	"errors"
	"fmt"
)

// Configuration errors - the operator must fix these before any event can be
// accepted.
var ErrSecretNotConfigured = errors.New("payment webhook secret is not configured")

// Authentication errors - the request is not provably from the payment
// processor and is rejected without retry.
var (
	ErrMissingSignature = errors.New("missing or malformed signature header")
	ErrInvalidSignature = errors.New("signature verification failed")
)

// ErrProcessNotFound means the event references an onboarding process that
// does not exist. This is a data-consistency bug, not a transient condition.
var ErrProcessNotFound = errors.New("onboarding process not found")

// FatalStepError aborts the provisioning pipeline. The process is left in a
// terminal state and no further steps run.
type FatalStepError struct {
	Step string
	Err  error
}

func (e *FatalStepError) Error() string {
	return fmt.Sprintf("fatal provisioning failure at step %q: %v", e.Step, e.Err)
}

func (e *FatalStepError) Unwrap() error {
	return e.Err
}

// StepResult captures the outcome of one non-fatal side effect so that
// failures stay isolated instead of bubbling through nested error handling.
type StepResult struct {
	Step    string `json:"step"`
	Success bool   `json:"success"`
	Detail  string `json:"detail,omitempty"`
}

// Summarize splits results into succeeded/failed step name lists
func Summarize(results []StepResult) (succeeded, failed []string) {
	for _, r := range results {
		if r.Success {
			succeeded = append(succeeded, r.Step)
		} else {
			failed = append(failed, r.Step)
		}
	}
	return succeeded, failed
}
