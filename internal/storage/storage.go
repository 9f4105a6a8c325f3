// Package storage provides the ticket CRUD strategies.
//
// One capability interface, three constructions: volatile (process
// lifetime), session-scoped (file slot under the session directory),
// and persistent (SQLite or Badger slot). Nothing depends on which
// construction is behind the interface - only on the CRUD contract.
//
// Durable stores serialize the whole collection as one JSON array under
// a fixed slot key on every mutation. Full read-modify-write caps the
// practical collection size but keeps the implementation trivially
// consistent. A payload that is absent, malformed, or undecryptable
// reads as an empty collection with a logged diagnostic, never an
// error - a broken payload must not lose the caller its whole view.
package storage

import (
	"errors"
	"fmt"

	"github.com/helpdesklite/ticketgrid/internal/record"
)

// ErrDuplicateKey is returned by Save when a record with the same key
// already exists. Identity is the record's key field; uniqueness is
// this layer's job.
var ErrDuplicateKey = errors.New("storage: duplicate record key")

// ErrMissingKey is returned by Save when the record has no key field.
var ErrMissingKey = errors.New("storage: record has no key field")

// Store is the uniform CRUD contract over a ticket collection.
// Implementations are single-caller: no internal locking beyond what
// the backing slot provides.
type Store interface {
	// List returns the stored collection, newest-first by the Save
	// convention. The returned records are copies; mutating them does
	// not touch the store.
	List() []record.Record

	// Get returns the record with the given id.
	Get(id string) (record.Record, bool)

	// Save prepends the record to the collection.
	Save(r record.Record) error

	// Update shallow-merges fields into the record with the given id.
	// An explicitly nil field value still overwrites. Updating an
	// absent id is a silent no-op.
	Update(id string, fields record.Record) error

	// Delete removes the record with the given id. Deleting an absent
	// id is a silent no-op.
	Delete(id string) error
}

// saveInto validates a record and prepends it to a collection.
// Shared by every strategy so uniqueness semantics cannot drift.
func saveInto(records []record.Record, r record.Record) ([]record.Record, error) {
	id := r.Key()
	if id == "" {
		return nil, ErrMissingKey
	}
	for _, existing := range records {
		if existing.Key() == id {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, id)
		}
	}
	return append([]record.Record{r.Clone()}, records...), nil
}

// mergeInto applies a shallow merge to the record with the given id.
// Returns false when no record matched.
func mergeInto(records []record.Record, id string, fields record.Record) bool {
	for i, r := range records {
		if r.Key() != id {
			continue
		}
		merged := r.Clone()
		for k, v := range fields {
			merged[k] = v
		}
		records[i] = merged
		return true
	}
	return false
}

// deleteFrom removes the record with the given id. Returns the
// (possibly unchanged) collection and whether a record was removed.
func deleteFrom(records []record.Record, id string) ([]record.Record, bool) {
	for i, r := range records {
		if r.Key() == id {
			return append(records[:i:i], records[i+1:]...), true
		}
	}
	return records, false
}
