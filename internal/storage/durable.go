package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/helpdesklite/ticketgrid/internal/kvslot"
	"github.com/helpdesklite/ticketgrid/internal/record"
	"github.com/helpdesklite/ticketgrid/internal/seal"
)

// CollectionKey is the fixed slot key the whole ticket collection is
// serialized under.
const CollectionKey = "tickets"

// Durable is a Store writing the whole collection through a
// kvslot.Slot as one JSON array. Which slot backs it decides the
// scope: a file slot under the session directory is session-scoped, a
// SQLite or Badger slot is indefinitely persistent.
type Durable struct {
	slot   kvslot.Slot
	logger *slog.Logger
}

// DurableOption configures a Durable store.
type DurableOption func(*Durable)

// WithCipher interposes payload encryption between the store and its
// slot.
func WithCipher(c *seal.Cipher) DurableOption {
	return func(d *Durable) {
		d.slot = seal.WrapSlot(d.slot, c)
	}
}

// WithLogger sets the logger for corruption diagnostics. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) DurableOption {
	return func(d *Durable) {
		d.logger = logger
	}
}

// NewDurable creates a Store over the given slot.
func NewDurable(slot kvslot.Slot, opts ...DurableOption) *Durable {
	d := &Durable{slot: slot, logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewSession creates the session-scoped store: an encrypted file slot
// under the per-process session directory.
func NewSession() (*Durable, error) {
	dir, err := kvslot.SessionDir()
	if err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}
	slot, err := kvslot.NewFile(filepath.Join(dir, "store"))
	if err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}
	return NewDurable(slot, WithCipher(seal.New(""))), nil
}

// NewPersistent creates the indefinitely-persistent store: an
// encrypted SQLite slot at the given path.
func NewPersistent(path string) (*Durable, error) {
	slot, err := kvslot.OpenSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("persistent store: %w", err)
	}
	return NewDurable(slot, WithCipher(seal.New(""))), nil
}

// Close closes the backing slot.
func (d *Durable) Close() error {
	return d.slot.Close()
}

// load reads and decodes the stored collection. Absent, malformed, or
// undecryptable payloads read as empty with a logged diagnostic.
func (d *Durable) load() []record.Record {
	payload, ok, err := d.slot.Get(CollectionKey)
	if err != nil {
		d.logger.Warn("storage: slot read failed, treating collection as empty", "error", err)
		return nil
	}
	if !ok || payload == "" {
		return nil
	}

	var records []record.Record
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		d.logger.Warn("storage: stored payload is not a valid collection, treating as empty", "error", err)
		return nil
	}
	return records
}

// persist re-serializes and stores the whole collection.
func (d *Durable) persist(records []record.Record) error {
	if records == nil {
		records = []record.Record{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("serialize collection: %w", err)
	}
	if err := d.slot.Set(CollectionKey, string(payload)); err != nil {
		return fmt.Errorf("persist collection: %w", err)
	}
	return nil
}

// List returns the stored collection.
func (d *Durable) List() []record.Record {
	return d.load()
}

// Get returns the record with the given id.
func (d *Durable) Get(id string) (record.Record, bool) {
	for _, r := range d.load() {
		if r.Key() == id {
			return r, true
		}
	}
	return nil, false
}

// Save prepends the record and persists the collection.
func (d *Durable) Save(r record.Record) error {
	records, err := saveInto(d.load(), r)
	if err != nil {
		return err
	}
	return d.persist(records)
}

// Update shallow-merges fields into the matching record and persists.
// An absent id is a silent no-op with no write.
func (d *Durable) Update(id string, fields record.Record) error {
	records := d.load()
	if !mergeInto(records, id, fields) {
		return nil
	}
	return d.persist(records)
}

// Delete removes the matching record and persists. An absent id is a
// silent no-op with no write.
func (d *Durable) Delete(id string) error {
	records, removed := deleteFrom(d.load(), id)
	if !removed {
		return nil
	}
	return d.persist(records)
}
