// Package clock hands out the current time.
//
// Usecases stamp change events with Clocker.Now. Tests pass a Fixed clock so
// the stamped instants are deterministic.
package clock
