package storage

import "github.com/helpdesklite/ticketgrid/internal/record"

// Volatile is the in-process Store: a plain slice, gone when the
// process exits. Used for throwaway runs and as the baseline the
// durable strategies must behave identically to.
type Volatile struct {
	records []record.Record
}

// NewVolatile creates an empty in-process store.
func NewVolatile() *Volatile {
	return &Volatile{}
}

// List returns a copy of the stored collection.
func (v *Volatile) List() []record.Record {
	return record.CloneAll(v.records)
}

// Get returns the record with the given id.
func (v *Volatile) Get(id string) (record.Record, bool) {
	for _, r := range v.records {
		if r.Key() == id {
			return r.Clone(), true
		}
	}
	return nil, false
}

// Save prepends the record to the collection.
func (v *Volatile) Save(r record.Record) error {
	records, err := saveInto(v.records, r)
	if err != nil {
		return err
	}
	v.records = records
	return nil
}

// Update shallow-merges fields into the matching record; absent id is
// a no-op.
func (v *Volatile) Update(id string, fields record.Record) error {
	mergeInto(v.records, id, fields)
	return nil
}

// Delete removes the matching record; absent id is a no-op.
func (v *Volatile) Delete(id string) error {
	v.records, _ = deleteFrom(v.records, id)
	return nil
}
