package api

import "github.com/google/uuid"

// NewID generates a document id. UUIDv4, so ids never collide with any
// existing or previously-deleted id in the same storage namespace.
func NewID() string {
	return uuid.NewString()
}
