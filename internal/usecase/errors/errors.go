package errors

import "errors"

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
)

// Summary errors
var (
	ErrSummaryNotFound = errors.New("summary not found")
)

// Worker errors
var (
	ErrSweeperRunning    = errors.New("sweeper already running")
	ErrSweeperNotRunning = errors.New("sweeper not running")
)
