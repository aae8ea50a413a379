// Package quiz defines the quiz record model, the record store contract,
// and the answer matching rules shared by every session engine.
package quiz

import (
	"context"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Record is a single question/answer pair.
//
// IDs are assigned by the store at creation time and remain stable for the
// lifetime of the record. Question and answer are always stored trimmed of
// leading and trailing whitespace; empty strings are permitted.
type Record struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Store is the record store contract shared by all backends.
//
// Mutation is atomic per call: no other call observes a partially applied
// create, update, or delete. Implementations must be safe for concurrent
// use by multiple sessions.
type Store interface {
	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// GetAll returns every record in store order.
	GetAll(ctx context.Context) ([]Record, error)

	// GetByID returns the record with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id int) (Record, error)

	// Create stores a new record and returns it with its assigned id.
	// Question and answer are trimmed before storage.
	Create(ctx context.Context, question, answer string) (Record, error)

	// Update replaces both question and answer of an existing record.
	// Returns ErrNotFound if no record has the given id.
	Update(ctx context.Context, id int, question, answer string) (Record, error)

	// Delete removes the record with the given id.
	// Returns ErrNotFound if no record has the given id.
	Delete(ctx context.Context, id int) error

	// Close releases the backing resources.
	Close() error
}

// MatchAnswer reports whether a user reply matches the stored answer.
//
// Comparison is case-insensitive and ignores leading/trailing whitespace.
// Both sides are NFC-normalized first so accented answers ("París") match
// regardless of how the reply's runes were composed.
func MatchAnswer(stored, reply string) bool {
	s := norm.NFC.String(strings.TrimSpace(stored))
	r := norm.NFC.String(strings.TrimSpace(reply))
	return strings.EqualFold(s, r)
}

// Seed is the default record set used to initialize an empty store.
func Seed() []Record {
	return []Record{
		{Question: "Capital de Italia", Answer: "Roma"},
		{Question: "Capital de Francia", Answer: "París"},
		{Question: "Capital de España", Answer: "Madrid"},
		{Question: "Capital de Portugal", Answer: "Lisboa"},
	}
}
