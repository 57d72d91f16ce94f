package domain

// ValidationError is a structured error reported by model validation.
type ValidationError struct {
	// CellID is the cell the error is attributed to, if any.
	CellID  CellID
	Code    string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.CellID == "" {
		return e.Message
	}
	return string(e.CellID) + ": " + e.Message
}

// Model is an elaborated model produced by the computation library.
type Model interface {
	// TheoryID returns the identifier of the theory the model is typed in.
	TheoryID() string
	// Validate checks the model and returns its errors, empty if valid.
	Validate() []ValidationError
}
