// Package canonical implements the strategies that map model references to
// canonical cache keys.
package canonical

import (
	"strings"

	"github.com/google/uuid"
	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/elab/internal/core/ports"
	"go.trai.ch/zerr"
)

// LocalPrefix prefixes the keys of documents addressed by local sync ids.
const LocalPrefix = "local:"

// base58 is the alphabet of local sync-engine document ids.
const base58 = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// UUID canonicalizes references by stable external identifier.
// Plain, upper-case, braced and "urn:uuid:" forms all map to the lower-case
// hyphenated form.
type UUID struct{}

// NewUUID returns the UUID strategy.
func NewUUID() *UUID {
	return &UUID{}
}

// Canonicalize implements ports.Canonicalizer.
func (*UUID) Canonicalize(ref string) (domain.ModelKey, error) {
	id, err := uuid.Parse(strings.TrimSpace(ref))
	if err != nil {
		return domain.ModelKey{}, invalid(ref, "not a UUID")
	}
	return domain.NewModelKey(id.String()), nil
}

// Local canonicalizes references by local sync-engine identifier.
// Both "local:<id>" and the bare id are accepted.
type Local struct{}

// NewLocal returns the local strategy.
func NewLocal() *Local {
	return &Local{}
}

// Canonicalize implements ports.Canonicalizer.
func (*Local) Canonicalize(ref string) (domain.ModelKey, error) {
	id := strings.TrimPrefix(strings.TrimSpace(ref), LocalPrefix)
	if id == "" {
		return domain.ModelKey{}, invalid(ref, "empty document id")
	}
	if strings.IndexFunc(id, func(r rune) bool { return !strings.ContainsRune(base58, r) }) >= 0 {
		return domain.ModelKey{}, invalid(ref, "document id is not base58")
	}
	return domain.NewModelKey(LocalPrefix + id), nil
}

// ForStrategy returns the canonicalizer of the named strategy.
func ForStrategy(strategy domain.ReferenceStrategy) (ports.Canonicalizer, error) {
	switch strategy {
	case domain.ReferenceUUID, "":
		return NewUUID(), nil
	case domain.ReferenceLocal:
		return NewLocal(), nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidReferenceStrategy, "unknown reference strategy"), "strategy", string(strategy))
	}
}

func invalid(ref, reason string) error {
	return zerr.With(zerr.Wrap(domain.ErrInvalidReference, reason), "reference", ref)
}
