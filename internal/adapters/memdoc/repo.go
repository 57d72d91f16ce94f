// Package memdoc provides an in-memory, observable document source.
package memdoc

import (
	"context"
	"slices"
	"sync"

	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/elab/internal/core/ports"
	"go.trai.ch/zerr"
)

// Repo is an in-memory store of documents keyed by canonical key.
type Repo struct {
	mu      sync.RWMutex
	handles map[domain.ModelKey]*Handle
}

var _ ports.DocumentSource = (*Repo)(nil)

// NewRepo creates a new empty Repo.
func NewRepo() *Repo {
	return &Repo{handles: make(map[domain.ModelKey]*Handle)}
}

// Create adds a new document under key.
func (r *Repo) Create(key domain.ModelKey, doc domain.Document) (*Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handles[key]; exists {
		return nil, zerr.With(zerr.Wrap(domain.ErrDuplicateDocument, "document already exists"), "model", key.String())
	}
	h := newHandle(key, doc)
	r.handles[key] = h
	return h, nil
}

// Fetch implements ports.DocumentSource.
func (r *Repo) Fetch(ctx context.Context, key domain.ModelKey) (ports.DocumentHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h, ok := r.Handle(key)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrDocumentNotFound, "no such document"), "model", key.String())
	}
	return h, nil
}

// Handle returns the handle of the document stored under key.
func (r *Repo) Handle(key domain.ModelKey) (*Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handles[key]
	return h, ok
}

// Change applies fn to the document stored under key.
func (r *Repo) Change(key domain.ModelKey, fn func(doc *domain.Document)) error {
	h, ok := r.Handle(key)
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrDocumentNotFound, "no such document"), "model", key.String())
	}
	h.Change(fn)
	return nil
}

// Replace sets the content of the document stored under key, creating the
// document if it does not exist. It reports whether the document was created.
func (r *Repo) Replace(key domain.ModelKey, doc domain.Document) (created bool) {
	r.mu.Lock()
	h, ok := r.handles[key]
	if !ok {
		r.handles[key] = newHandle(key, doc)
		r.mu.Unlock()
		return true
	}
	r.mu.Unlock()

	h.Change(func(d *domain.Document) {
		*d = doc.Clone()
	})
	return false
}

// Delete removes the document stored under key. Handles already handed out
// keep working but are no longer returned by Fetch.
func (r *Repo) Delete(key domain.ModelKey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handles, key)
}

// Keys returns the keys of all documents in canonical order.
func (r *Repo) Keys() []domain.ModelKey {
	r.mu.RLock()
	keys := make([]domain.ModelKey, 0, len(r.handles))
	for key := range r.handles {
		keys = append(keys, key)
	}
	r.mu.RUnlock()

	slices.SortFunc(keys, domain.ModelKey.Compare)
	return keys
}

// ListenerCount returns the number of change listeners registered on the
// document stored under key.
func (r *Repo) ListenerCount(key domain.ModelKey) int {
	h, ok := r.Handle(key)
	if !ok {
		return 0
	}
	return h.ListenerCount()
}
