// Package domain contains the core domain models for notebook documents,
// their elaborated models and the cache entries derived from them.
package domain

import "unique"

// ModelKey is the canonical identity of a model document.
// It wraps an interned handle so keys are cheap to compare and hash.
// The zero value denotes no key.
type ModelKey struct {
	h unique.Handle[string]
}

// NewModelKey creates a ModelKey from an already canonical string.
// Callers outside the canonicalizers should not construct keys directly.
func NewModelKey(s string) ModelKey {
	return ModelKey{h: unique.Make(s)}
}

// String returns the canonical string form of the key.
func (k ModelKey) String() string {
	var zero unique.Handle[string]
	if k.h == zero {
		return ""
	}
	return k.h.Value()
}

// IsZero reports whether k is the zero key.
func (k ModelKey) IsZero() bool {
	var zero unique.Handle[string]
	return k.h == zero
}

// Compare orders keys by their canonical string form.
func (k ModelKey) Compare(other ModelKey) int {
	a, b := k.String(), other.String()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k ModelKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ModelKey) UnmarshalText(text []byte) error {
	k.h = unique.Make(string(text))
	return nil
}
