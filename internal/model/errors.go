package model

import (
	"errors"
	"fmt"
)

var (
	// ErrCareerNotFound indicates the lookup key matched zero records.
	ErrCareerNotFound = errors.New("career path not found")

	// ErrAmbiguousMatch indicates a name lookup matched more than one record.
	ErrAmbiguousMatch = errors.New("career path name matches multiple records")

	// ErrMalformedOutput indicates the model response failed shape validation.
	// Worth another attempt.
	ErrMalformedOutput = errors.New("malformed model output")

	// ErrPermanentFailure marks model-call errors that retrying cannot fix
	// (authentication, quota, bad request). Text generators wrap these.
	ErrPermanentFailure = errors.New("permanent model failure")
)

// GenerationError reports that no valid content could be obtained within the
// attempt budget. The record it concerns is left untouched.
type GenerationError struct {
	Attempts int
	Err      error // last failure observed
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("content generation failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
