// Package theory provides the registry of double theories models are typed in.
package theory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/elab/internal/core/ports"
	"go.trai.ch/zerr"
)

// Registry is an in-memory theory registry.
type Registry struct {
	mu       sync.RWMutex
	theories map[string]*domain.Theory
}

var _ ports.TheoryRegistry = (*Registry)(nil)

// NewRegistry creates a registry holding the builtin theories.
func NewRegistry() *Registry {
	r := &Registry{theories: make(map[string]*domain.Theory)}
	for _, t := range Builtin() {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds t to the registry.
func (r *Registry) Register(t *domain.Theory) error {
	if err := Check(t); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.theories[t.ID]; exists {
		return zerr.With(zerr.Wrap(domain.ErrDuplicateTheory, "theory is already registered"), "theory", t.ID)
	}
	r.theories[t.ID] = t
	return nil
}

// Get implements ports.TheoryRegistry.
func (r *Registry) Get(ctx context.Context, id string) (*domain.Theory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.theories[id]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownTheory, "theory is not registered"), "theory", id)
	}
	return t, nil
}

func (r *Registry) has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.theories[id]
	return ok
}

// List implements ports.TheoryRegistry.
func (r *Registry) List() []*domain.Theory {
	r.mu.RLock()
	list := make([]*domain.Theory, 0, len(r.theories))
	for _, t := range r.theories {
		list = append(list, t)
	}
	r.mu.RUnlock()

	slices.SortFunc(list, func(a, b *domain.Theory) int { return cmp.Compare(a.ID, b.ID) })
	return list
}

// Check verifies that a theory definition is consistent: ids are present and
// unique, and morphism types connect declared object types.
func Check(t *domain.Theory) error {
	if t == nil || t.ID == "" {
		return zerr.Wrap(domain.ErrInvalidTheory, "theory id is empty")
	}

	obs := make(map[string]struct{}, len(t.ObTypes))
	for _, ob := range t.ObTypes {
		if ob.ID == "" {
			return invalid(t, "object type id is empty")
		}
		if _, dup := obs[ob.ID]; dup {
			return zerr.With(invalid(t, "duplicate object type"), "type", ob.ID)
		}
		obs[ob.ID] = struct{}{}
	}

	mors := make(map[string]struct{}, len(t.MorTypes))
	for _, mor := range t.MorTypes {
		if mor.ID == "" {
			return invalid(t, "morphism type id is empty")
		}
		if _, dup := mors[mor.ID]; dup {
			return zerr.With(invalid(t, "duplicate morphism type"), "type", mor.ID)
		}
		mors[mor.ID] = struct{}{}

		for _, end := range []string{mor.Dom, mor.Cod} {
			if _, ok := obs[end]; !ok {
				return zerr.With(zerr.With(invalid(t, "morphism type has an undeclared endpoint"), "type", mor.ID), "endpoint", end)
			}
		}
	}
	return nil
}

func invalid(t *domain.Theory, msg string) error {
	return zerr.With(zerr.Wrap(domain.ErrInvalidTheory, msg), "theory", t.ID)
}
