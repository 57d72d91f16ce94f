package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidReference is returned when a model reference cannot be canonicalized.
	ErrInvalidReference = zerr.New("invalid model reference")

	// ErrInvalidReferenceStrategy is returned when the configured reference strategy is unknown.
	ErrInvalidReferenceStrategy = zerr.New("invalid reference strategy, expected 'uuid' or 'local'")

	// ErrUnknownTheory is returned when a document declares a theory the registry does not know.
	ErrUnknownTheory = zerr.New("unknown theory")

	// ErrInvalidTheory is returned when a theory definition is inconsistent.
	ErrInvalidTheory = zerr.New("invalid theory definition")

	// ErrDuplicateTheory is returned when a theory identifier is registered twice.
	ErrDuplicateTheory = zerr.New("duplicate theory")

	// ErrDocumentNotFound is returned when the document source has no document for a key.
	ErrDocumentNotFound = zerr.New("document not found")

	// ErrDocumentReadFailed is returned when a document file cannot be read.
	ErrDocumentReadFailed = zerr.New("failed to read document")

	// ErrDocumentParseFailed is returned when a document file cannot be parsed.
	ErrDocumentParseFailed = zerr.New("failed to parse document")

	// ErrDuplicateDocument is returned when two documents canonicalize to the same key.
	ErrDuplicateDocument = zerr.New("duplicate document")

	// ErrNoDocuments is returned when a command has no documents to work on.
	ErrNoDocuments = zerr.New("no documents found")

	// ErrEntryMissing is returned when a cache entry that must exist is absent.
	ErrEntryMissing = zerr.New("cache entry missing")

	// ErrLibraryDestroyed is returned when the model library is used after Destroy.
	ErrLibraryDestroyed = zerr.New("model library destroyed")

	// ErrCycleDetected is returned when a cycle is detected in the instantiation graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrElaborationFailed is returned by the computation library when a notebook cannot be elaborated.
	ErrElaborationFailed = zerr.New("elaboration failed")

	// ErrModelsNotValid is returned when at least one checked model is ill-formed or invalid.
	ErrModelsNotValid = zerr.New("some models are not valid")

	// ErrConfigNotFound is returned when no workspace file can be found.
	ErrConfigNotFound = zerr.New("could not find elab.yaml")

	// ErrConfigReadFailed is returned when the workspace file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the workspace file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrTheoryFileReadFailed is returned when a theory definition file cannot be read.
	ErrTheoryFileReadFailed = zerr.New("failed to read theory file")

	// ErrTheoryFileParseFailed is returned when a theory definition file cannot be parsed.
	ErrTheoryFileParseFailed = zerr.New("failed to parse theory file")
)
