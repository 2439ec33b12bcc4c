package services

import "errors"

var (
	// ErrNotFound is returned when a record does not exist or is not visible to the caller
	ErrNotFound = errors.New("record not found")
	// ErrInvalidTransition is returned when a status change is not allowed from the current status
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvalidInput is returned when caller-supplied data fails validation
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotAssigned is returned when an employee acts on work assigned to someone else
	ErrNotAssigned = errors.New("work item is not assigned to this employee")
	// ErrAccountLocked is returned when login is attempted on a locked account
	ErrAccountLocked = errors.New("account is locked")
	// ErrInvalidCredentials is returned for unknown emails and wrong passwords alike
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrChatUnavailable is returned when the chat assistant has no backend configured
	ErrChatUnavailable = errors.New("chat assistant is not configured")
)
