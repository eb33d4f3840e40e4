package clock

import "time"

// Clocker returns the current instant.
type Clocker interface {
	Now() time.Time
}

// TimeClocker reads the system clock.
type TimeClocker struct{}

// New returns a TimeClocker.
func New() *TimeClocker {
	return &TimeClocker{}
}

// Now returns the system time in UTC.
func (*TimeClocker) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always returns the same instant.
type Fixed struct {
	at time.Time
}

// NewFixed returns a clock frozen at at.
func NewFixed(at time.Time) Fixed {
	return Fixed{at: at}
}

// Now returns the frozen instant.
func (f Fixed) Now() time.Time {
	return f.at
}
