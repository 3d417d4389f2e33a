package domain

import "time"

const (
	ActionInsert = "insert"
	ActionUpdate = "update"
	ActionDelete = "delete"

	// ActionResync is synthesized locally after a feed reconnect; notifications
	// may have been missed, so watchers must assume nothing about the id.
	ActionResync = "resync"
)

// Change is one push notification from a table's change feed.
type Change struct {
	Table  string    `json:"table"`
	Action string    `json:"action"`
	ID     string    `json:"id"`
	SentAt time.Time `json:"sent_at"`
}
