// Package history keeps a bounded record of completed invocations, including
// the raw service response, for later inspection.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wolfeidau/gwctl/internal/pipeline"
)

// DefaultCapacity is how many entries a store keeps before dropping the oldest.
const DefaultCapacity = 200

// ErrEntryNotFound is returned when an entry doesn't exist.
var ErrEntryNotFound = errors.New("history entry not found")

// Entry is the recorded form of a pipeline outcome.
type Entry struct {
	ID        uuid.UUID       `json:"id"`
	Operation string          `json:"operation"`
	StartedAt time.Time       `json:"started_at"`
	Duration  time.Duration   `json:"duration"`
	Success   bool            `json:"success"`
	Error     string          `json:"error,omitempty"`
	Transport bool            `json:"transport,omitempty"`
	Notes     []string        `json:"notes,omitempty"`
	Output    json.RawMessage `json:"output,omitempty"`
	Response  json.RawMessage `json:"response,omitempty"`
}

// Store records outcomes and reads them back, newest first.
type Store interface {
	pipeline.Recorder
	List(ctx context.Context, limit int) ([]Entry, error)
	Get(ctx context.Context, id uuid.UUID) (*Entry, error)
	Clear(ctx context.Context) error
}

// NewEntry converts an outcome into an entry with a fresh time ordered ID.
func NewEntry(o *pipeline.Outcome) (Entry, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Entry{}, fmt.Errorf("failed to generate entry id: %w", err)
	}

	e := Entry{
		ID:        id,
		Operation: o.Operation,
		StartedAt: o.StartedAt,
		Duration:  o.Duration,
		Success:   o.Succeeded(),
		Notes:     o.Notes,
	}

	if o.Failed() {
		e.Error = o.Err.Error()
		var transportErr *pipeline.TransportError
		e.Transport = errors.As(o.Err, &transportErr)
		return e, nil
	}

	if e.Output, err = marshal(o.Output); err != nil {
		return Entry{}, err
	}
	if e.Response, err = marshal(o.Response); err != nil {
		return Entry{}, err
	}

	return e, nil
}

func marshal(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal history payload: %w", err)
	}
	return data, nil
}

// newestFirst returns up to limit entries from an oldest-first slice in
// reverse order. A limit of zero or less returns everything.
func newestFirst(entries []Entry, limit int) []Entry {
	n := len(entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Entry, 0, n)
	for i := len(entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, entries[i])
	}
	return out
}

// trim drops the oldest entries beyond capacity.
func trim(entries []Entry, capacity int) []Entry {
	if capacity <= 0 || len(entries) <= capacity {
		return entries
	}
	return entries[len(entries)-capacity:]
}
