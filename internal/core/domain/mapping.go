package domain

import (
	"errors"
	"time"
)

var (
	ErrMappingNotFound = errors.New("mapping not found")
	ErrMappingExists   = errors.New("mapping id already taken")
)

// Mapping is a generated identifier bound to an opaque caller value.
// Mappings are insert-only; an ID is never rebound to another value.
type Mapping struct {
	ID        string
	Value     string
	CreatedBy string
	CreatedAt time.Time
}
