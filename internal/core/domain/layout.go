package domain

import "time"

const (
	// WorkspaceFileName is the name of the workspace configuration file.
	WorkspaceFileName = "elab.yaml"

	// DefaultDocumentsDir is the directory holding model documents, relative to the workspace root.
	DefaultDocumentsDir = "models"

	// DocumentExt is the file extension of model documents.
	DocumentExt = ".yaml"

	// DefaultDebounce is the default window for coalescing document file events.
	DefaultDebounce = 50 * time.Millisecond

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// ReferenceStrategy selects how model references are canonicalized.
type ReferenceStrategy string

const (
	// ReferenceUUID addresses documents by stable external UUIDs.
	ReferenceUUID ReferenceStrategy = "uuid"
	// ReferenceLocal addresses documents by local sync-engine identifiers.
	ReferenceLocal ReferenceStrategy = "local"
)

// Workspace is the resolved workspace configuration.
type Workspace struct {
	// Root is the absolute directory containing the workspace file.
	Root string
	// DocumentsDir is the absolute directory holding model documents.
	DocumentsDir string
	References   ReferenceStrategy
	// TheoriesFile is the absolute path of extra theory definitions, if any.
	TheoriesFile string
	Debounce     time.Duration
}
