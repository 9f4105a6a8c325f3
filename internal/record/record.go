// Package record defines the opaque record representation shared by the
// query evaluator, data providers, and storage strategies.
package record

// KeyField is the field every record carries as its unique identity.
const KeyField = "id"

// Record is one domain entity as a field-name-to-value mapping. Values
// are the usual JSON scalars plus nested maps and slices; identity is
// the value of the KeyField entry.
type Record map[string]any

// Key returns the record's identity, or "" when the key field is absent
// or not a string.
func (r Record) Key() string {
	id, _ := r[KeyField].(string)
	return id
}

// Clone returns a copy of the record whose top-level map is independent
// of the original. Nested values are shared; callers treat records as
// read-after-handoff so a shallow clone is sufficient for the top-level
// merges storage performs.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// CloneAll clones every record into a fresh slice.
func CloneAll(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
