package config

import (
	"io"
	"time"
)

// Config is the read-only view of the service configuration.
//
// Missing keys resolve to the zero value of the requested type.
type Config interface {
	io.Closer

	// GetBool returns the value for key as a bool.
	GetBool(key string) bool

	// GetInt returns the value for key as an int.
	GetInt(key string) int

	// GetInt64 returns the value for key as an int64.
	GetInt64(key string) int64

	// GetFloat64 returns the value for key as a float64.
	GetFloat64(key string) float64

	// GetString returns the value for key as a string.
	GetString(key string) string

	// GetSecond returns the integer value for key as a number of seconds.
	GetSecond(key string) time.Duration

	// GetMillisecond returns the integer value for key as a number of milliseconds.
	GetMillisecond(key string) time.Duration

	// GetArray returns the value for key split on commas, with blanks dropped.
	// Configuration value is stored with format <element1>,<element2>,...
	GetArray(key string) []string
}
