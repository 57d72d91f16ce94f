package ports

import (
	"context"

	"go.trai.ch/elab/internal/core/domain"
)

// ChangeListener receives the new snapshot of a document together with the
// structural patches that produced it.
type ChangeListener func(doc domain.Document, patches []domain.Patch)

// DocumentHandle is a mutable, observable document owned by a DocumentSource.
//
//go:generate mockgen -source=document_source.go -destination=mocks/mock_document_source.go -package=mocks
type DocumentHandle interface {
	// Key returns the canonical key of the document.
	Key() domain.ModelKey
	// Snapshot returns a copy of the current document content.
	Snapshot() domain.Document
	// OnChange registers a listener and returns the function removing it.
	// The returned function is safe to call more than once.
	OnChange(listener ChangeListener) (unsubscribe func())
}

// DocumentSource produces document handles for canonical keys.
type DocumentSource interface {
	// Fetch returns the handle of the document identified by key.
	// It fails with domain.ErrDocumentNotFound if there is none.
	Fetch(ctx context.Context, key domain.ModelKey) (DocumentHandle, error)
}
