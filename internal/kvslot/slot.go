// Package kvslot provides string-keyed durable value slots.
//
// A Slot is the storage boundary the durable ticket stores write
// through: get a string by key, set a string by key. Backends range
// from an in-process map (volatile) through per-session files to
// SQLite and Badger databases (persistent). The confidentiality
// wrapper in package seal composes over any of them.
package kvslot

import "io"

// Slot is a scoped string-keyed value store. Implementations are safe
// for use from a single goroutine; Memory additionally tolerates
// concurrent use.
type Slot interface {
	// Get returns the value stored under key. The boolean reports
	// whether the key was present.
	Get(key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	io.Closer
}
