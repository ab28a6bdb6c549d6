package streak

import "errors"

var (
	// ErrNotAuthenticated is returned when an operation is invoked without a user id.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrPersistenceUnavailable wraps every failed read or write against a store.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	// ErrPreconditionFailed is returned by workout completion when no record exists yet.
	ErrPreconditionFailed = errors.New("precondition failed: streak record missing, evaluate login first")
	// ErrRecordNotFound is a store level signal, never surfaced by the tracker as is.
	ErrRecordNotFound = errors.New("streak record not found")
	// ErrInvalidRecord is reported by Record.Validate.
	ErrInvalidRecord = errors.New("invalid streak record")
	// ErrDateOutOfRange is returned for days before MinDate.
	ErrDateOutOfRange = errors.New("date out of range")
	// ErrUndecodableRecord marks stored data that cannot be read back into a Record.
	ErrUndecodableRecord = errors.New("undecodable streak record")
)
