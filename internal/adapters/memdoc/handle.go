package memdoc

import (
	"slices"
	"sync"

	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/elab/internal/core/ports"
)

type listener struct {
	id uint64
	fn ports.ChangeListener
}

// Handle is an observable document. Listeners are called synchronously, in
// registration order, after the change has been applied.
type Handle struct {
	key domain.ModelKey

	mu        sync.Mutex
	doc       domain.Document
	listeners []listener
	nextID    uint64
}

var _ ports.DocumentHandle = (*Handle)(nil)

func newHandle(key domain.ModelKey, doc domain.Document) *Handle {
	return &Handle{key: key, doc: doc.Clone()}
}

// Key implements ports.DocumentHandle.
func (h *Handle) Key() domain.ModelKey {
	return h.key
}

// Snapshot implements ports.DocumentHandle.
func (h *Handle) Snapshot() domain.Document {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.doc.Clone()
}

// OnChange implements ports.DocumentHandle.
func (h *Handle) OnChange(fn ports.ChangeListener) func() {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.listeners = append(h.listeners, listener{id: id, fn: fn})
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.listeners = slices.DeleteFunc(h.listeners, func(l listener) bool { return l.id == id })
		})
	}
}

// Change applies fn to a copy of the document and, if anything changed,
// stores it and notifies the listeners with the derived patches.
func (h *Handle) Change(fn func(doc *domain.Document)) {
	h.mu.Lock()
	next := h.doc.Clone()
	fn(&next)
	patches := domain.Diff(h.doc, next)
	if len(patches) == 0 {
		h.mu.Unlock()
		return
	}
	h.doc = next
	listeners := slices.Clone(h.listeners)
	h.mu.Unlock()

	for _, l := range listeners {
		l.fn(next.Clone(), patches)
	}
}

// ListenerCount returns the number of registered change listeners.
func (h *Handle) ListenerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}
