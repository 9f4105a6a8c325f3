// Package ticket defines the support-ticket record schema at the
// storage boundary.
//
// Column identifiers used in sort and filter rules must match these
// field names exactly (case-sensitive); an unmatched identifier
// degrades in the query evaluator, it never errors.
package ticket

import (
	"time"

	"github.com/google/uuid"

	"github.com/helpdesklite/ticketgrid/internal/record"
)

// Field names as they appear in records and rule columns.
const (
	FieldID          = "id"
	FieldFullName    = "fullName"
	FieldEmail       = "email"
	FieldSubject     = "subject"
	FieldMessage     = "message"
	FieldDateCreated = "dateCreated"
)

// Ticket is one support ticket. DateCreated is an RFC 3339 UTC
// timestamp string - the wire and storage form, kept as a string so
// records round-trip byte-identically through JSON.
type Ticket struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	DateCreated string `json:"dateCreated"`
}

// IDGenerator mints ticket identifiers. Implemented by UUIDv7Generator
// (production) and testutil.SequenceIDs (tests).
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator mints time-sortable UUIDv7 identifiers, so ticket
// IDs sort by creation time as a side effect.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7 as a hyphenated string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Factory creates tickets with injectable identity and time sources.
type Factory struct {
	ids IDGenerator
	now func() time.Time
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithIDGenerator replaces the identifier source.
func WithIDGenerator(g IDGenerator) FactoryOption {
	return func(f *Factory) {
		f.ids = g
	}
}

// WithNow replaces the time source.
func WithNow(now func() time.Time) FactoryOption {
	return func(f *Factory) {
		f.now = now
	}
}

// NewFactory creates a Factory minting UUIDv7 IDs and stamping
// time.Now in UTC.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{ids: UUIDv7Generator{}, now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// New mints a ticket with a fresh ID and creation timestamp.
func (f *Factory) New(fullName, email, subject, message string) Ticket {
	return Ticket{
		ID:          f.ids.Generate(),
		FullName:    fullName,
		Email:       email,
		Subject:     subject,
		Message:     message,
		DateCreated: f.now().UTC().Format(time.RFC3339),
	}
}

// ToRecord converts the ticket to its record form.
func (t Ticket) ToRecord() record.Record {
	return record.Record{
		FieldID:          t.ID,
		FieldFullName:    t.FullName,
		FieldEmail:       t.Email,
		FieldSubject:     t.Subject,
		FieldMessage:     t.Message,
		FieldDateCreated: t.DateCreated,
	}
}

// FromRecord reads the ticket fields out of a record. Absent or
// non-string fields read as empty - records are caller-shaped and the
// grid treats fields as opaque, so this stays lenient.
func FromRecord(r record.Record) Ticket {
	str := func(field string) string {
		s, _ := r[field].(string)
		return s
	}
	return Ticket{
		ID:          str(FieldID),
		FullName:    str(FieldFullName),
		Email:       str(FieldEmail),
		Subject:     str(FieldSubject),
		Message:     str(FieldMessage),
		DateCreated: str(FieldDateCreated),
	}
}
