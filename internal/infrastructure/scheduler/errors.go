package scheduler

import "errors"

var (
	// ErrTriggerNotRunning is returned when stopping a trigger that never started
	ErrTriggerNotRunning = errors.New("tracking trigger is not running")

	// ErrRefreshInProgress is returned when a refresh cycle is already running
	ErrRefreshInProgress = errors.New("tracking refresh already in progress")

	// ErrInvalidConfig is returned when trigger configuration is invalid
	ErrInvalidConfig = errors.New("invalid tracking trigger configuration")
)
