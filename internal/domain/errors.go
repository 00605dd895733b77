package domain

import "errors"

// ErrGenerationInFlight rejects a generate trigger while another one is
// still running. Callers may retry once the current attempt concludes.
var ErrGenerationInFlight = errors.New("generation already in progress")

// ListError marks a failed store listing. It is fatal to the ingestion
// attempt that observed it; previously held posts stay untouched.
type ListError struct {
	Err error
}

func (e *ListError) Error() string { return "store listing failed: " + e.Err.Error() }
func (e *ListError) Unwrap() error { return e.Err }

// FetchError marks a failed download of a single artifact. It never fails
// the whole aggregation; the artifact is dropped.
type FetchError struct {
	Name string
	Err  error
}

func (e *FetchError) Error() string { return "fetch " + e.Name + ": " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }

// JobError marks a failed generation job invocation.
type JobError struct {
	Err error
}

func (e *JobError) Error() string { return "generation job failed: " + e.Err.Error() }
func (e *JobError) Unwrap() error { return e.Err }
