package domain

import "errors"

var (
	// ErrNotAuthenticated is returned when a write requires a session and none is active.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotFound is returned when an operation targets an id that no longer exists.
	ErrNotFound = errors.New("record not found")
)

// Record is implemented by every content entity row. The id is assigned by the
// data store and never changes; the owner is stamped from the session at create
// time and is not user-editable afterwards.
type Record interface {
	RecordID() string
	SetOwner(userID string)
}
