// Package history records evaluations so they can be listed and inspected
// later.
package history

import (
	"encoding/json"
	"errors"
	"time"
)

// Store persists evaluation records.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a record. A record with the same ID is replaced.
	Save(rec Record) error

	// Get retrieves a record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	Get(id string) (Record, error)

	// List returns up to limit records, newest first.
	// A limit of zero or less returns every record.
	List(limit int) ([]Record, error)

	// Clear removes every record.
	Clear() error

	// Close releases any resources (connections, files).
	Close() error
}

// Record is one evaluation, successful or not.
type Record struct {
	ID         string        `json:"id"`
	Expression string        `json:"expression"`
	Value      string        `json:"value,omitempty"`
	ValueType  string        `json:"value_type,omitempty"`
	Error      string        `json:"error,omitempty"`
	ErrorKind  string        `json:"error_kind,omitempty"`
	Duration   time.Duration `json:"duration_ns"`
	CreatedAt  time.Time     `json:"created_at"`
}

// Failed reports whether the evaluation ended in an error.
func (r Record) Failed() bool {
	return r.Error != ""
}

// Marshal serializes a record to JSON.
func (r Record) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// Sentinel errors for history operations.
var (
	// ErrNotFound indicates a record doesn't exist.
	ErrNotFound = errors.New("history record not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("history store closed")

	// ErrMissingID indicates a record was saved without an ID.
	ErrMissingID = errors.New("history record has no id")
)
