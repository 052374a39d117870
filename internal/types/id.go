package types

import "github.com/google/uuid"

type ID string

// NewID returns a random identifier. IDs are plain UUID strings so they can
// travel through URLs and JSON without escaping.
func NewID() ID {
	return ID(uuid.NewString())
}
