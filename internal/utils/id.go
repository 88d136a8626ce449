package utils

import "github.com/google/uuid"

// NewID returns an opaque identifier that sorts by creation time.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
