package ports

import "go.trai.ch/elab/internal/core/domain"

// Canonicalizer maps the external forms of a model reference to one key.
//
//go:generate mockgen -source=canonicalizer.go -destination=mocks/mock_canonicalizer.go -package=mocks
type Canonicalizer interface {
	// Canonicalize returns the canonical key for ref.
	// It fails with domain.ErrInvalidReference for malformed references.
	Canonicalize(ref string) (domain.ModelKey, error)
}
