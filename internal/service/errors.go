package service

import "errors"

var (
	// ErrNotFound is returned when a referenced entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName is returned when a name that must be unique is
	// already taken, such as an interview name within a document
	ErrDuplicateName = errors.New("name already in use")

	// ErrGeneratorUnavailable is returned when the AI generator cannot
	// produce a result. Next-question callers see this directly; no
	// fallback question is fabricated.
	ErrGeneratorUnavailable = errors.New("question generator unavailable")

	// ErrInterviewNotActive is returned when questions are requested or
	// answered outside IN_PROGRESS
	ErrInterviewNotActive = errors.New("interview is not in progress")
)
