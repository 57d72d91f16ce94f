package modelcache

import (
	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/elab/internal/core/ports"
)

// LiveModel binds a document handle to the cache entry elaborated from it.
type LiveModel struct {
	handle   ports.DocumentHandle
	accessor *Accessor
}

// Key returns the canonical key of the model.
func (m *LiveModel) Key() domain.ModelKey {
	return m.accessor.Key()
}

// Handle returns the underlying document handle.
func (m *LiveModel) Handle() ports.DocumentHandle {
	return m.handle
}

// Document returns the current document content.
func (m *LiveModel) Document() domain.Document {
	return m.handle.Snapshot()
}

// Entry returns the current cache entry.
func (m *LiveModel) Entry() (domain.ModelEntry, bool) {
	return m.accessor.Get()
}

// Theory returns the theory of the current entry, or nil if there is none.
func (m *LiveModel) Theory() *domain.Theory {
	entry, ok := m.accessor.Get()
	if !ok {
		return nil
	}
	return entry.Theory
}

// ValidatedModel returns the outcome of the current entry.
func (m *LiveModel) ValidatedModel() (domain.ValidationOutcome, bool) {
	entry, ok := m.accessor.Get()
	if !ok {
		return domain.ValidationOutcome{}, false
	}
	return entry.ValidatedModel, true
}

// Subscribe calls fn with each new entry of the model.
func (m *LiveModel) Subscribe(fn func(domain.ModelEntry)) (unsubscribe func()) {
	return m.accessor.Subscribe(fn)
}
