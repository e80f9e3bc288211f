package scheduler

import "errors"

var (
	// ErrAlreadyStarted is returned by Start when the scheduler is already running.
	ErrAlreadyStarted = errors.New("scheduler: already started")

	// ErrNotStarted is returned by Stop when the scheduler is not running.
	ErrNotStarted = errors.New("scheduler: not started")
)
