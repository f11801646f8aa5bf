package model

import "errors"

var (
	// ErrNotFound signals that a requested record does not exist in a source.
	ErrNotFound = errors.New("record not found")
	// ErrNotConfigured is returned when the resolver is used before Configure.
	ErrNotConfigured = errors.New("identity sources not configured")
)
