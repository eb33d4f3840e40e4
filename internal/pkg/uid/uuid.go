package uid

import "github.com/google/uuid"

// StringID generates string identifiers such as correlation ids.
type StringID interface {
	Generate() string
}

// UUID generates time-ordered version 7 UUID strings.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUID string, falling back to a random version 4
// UUID when the time source fails.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Static is a StringID that always yields itself.
type Static string

// Generate returns s.
func (s Static) Generate() string {
	return string(s)
}
