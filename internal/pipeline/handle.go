package pipeline

import (
	"context"
	"errors"
	"sync"
)

// ClientFactory builds a remote client bound to the given settings.
type ClientFactory[C any] func(ctx context.Context, settings Settings) (C, error)

// Handle is a lazily initialized client owned by the caller. The first
// successful Get builds the client; later calls reuse it. A failed build is
// not cached so the next invocation tries again.
type Handle[C any] struct {
	mu      sync.Mutex
	factory ClientFactory[C]
	client  C
	built   bool
}

// NewHandle returns a handle that builds its client with factory.
func NewHandle[C any](factory ClientFactory[C]) *Handle[C] {
	return &Handle[C]{factory: factory}
}

// StaticHandle returns a handle that always yields client.
func StaticHandle[C any](client C) *Handle[C] {
	return &Handle[C]{client: client, built: true}
}

// Get returns the client, building it on first use.
func (h *Handle[C]) Get(ctx context.Context, settings Settings) (C, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.built {
		return h.client, nil
	}

	var zero C
	if h.factory == nil {
		return zero, errors.New("client handle has no factory")
	}

	client, err := h.factory(ctx, settings)
	if err != nil {
		return zero, err
	}

	h.client = client
	h.built = true

	return client, nil
}

// Built reports whether the client has been constructed.
func (h *Handle[C]) Built() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.built
}
