package domain

import "github.com/google/uuid"

// NewID returns a fresh random identifier for any entity.
func NewID() string {
	return uuid.NewString()
}
