package service

import "errors"

var (
	// ErrInvalidDataProvided is returned when required input (username,
	// password, title, content) is empty or malformed.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrAccessDenied is returned when an authenticated user targets a
	// task or note owned by someone else.
	ErrAccessDenied = errors.New("you do not have access to this task")
)
