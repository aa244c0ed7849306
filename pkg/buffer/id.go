package buffer

import "github.com/google/uuid"

// ID identifies a Buffer for the lifetime of the editor process.
type ID string

// NewID generates a fresh buffer identifier, following the teacher's
// session-id pattern (pkg/transport/session_manager.go: uuid.New().String()).
func NewID() ID {
	return ID(uuid.New().String())
}

// ViewID identifies a View. Buffers key their per-view selection map by it.
type ViewID string

// NewViewID generates a fresh view identifier.
func NewViewID() ViewID {
	return ViewID(uuid.New().String())
}
