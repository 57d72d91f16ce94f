package domain

import (
	"fmt"
	"slices"
)

// OutcomeKind tags the variant of a ValidationOutcome.
type OutcomeKind uint8

const (
	// OutcomeIllformed means elaboration failed and there is no model.
	OutcomeIllformed OutcomeKind = iota
	// OutcomeValid means the model elaborated and validated.
	OutcomeValid
	// OutcomeInvalid means the model elaborated but has validation errors.
	OutcomeInvalid
)

// String returns the lower-case name of the kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeValid:
		return "valid"
	case OutcomeInvalid:
		return "invalid"
	default:
		return "illformed"
	}
}

// ValidationOutcome is the result of elaborating and validating a document.
// Exactly one of the Valid, Invalid or Illformed variants holds.
type ValidationOutcome struct {
	kind   OutcomeKind
	model  Model
	errors []ValidationError
	msg    string
}

// Valid returns the outcome of a model that elaborated and validated.
func Valid(model Model) ValidationOutcome {
	return ValidationOutcome{kind: OutcomeValid, model: model}
}

// Invalid returns the outcome of a model with validation errors.
// It panics if errs is empty.
func Invalid(model Model, errs []ValidationError) ValidationOutcome {
	if len(errs) == 0 {
		panic("domain: Invalid outcome requires at least one validation error")
	}
	return ValidationOutcome{kind: OutcomeInvalid, model: model, errors: slices.Clone(errs)}
}

// Illformed returns the outcome of a document that could not be elaborated.
func Illformed(msg string) ValidationOutcome {
	return ValidationOutcome{kind: OutcomeIllformed, msg: msg}
}

// Classify returns Valid for an empty error list and Invalid otherwise.
func Classify(model Model, errs []ValidationError) ValidationOutcome {
	if len(errs) == 0 {
		return Valid(model)
	}
	return Invalid(model, errs)
}

// Kind returns the variant of the outcome.
func (o ValidationOutcome) Kind() OutcomeKind {
	return o.kind
}

// IsValid reports whether the outcome is Valid.
func (o ValidationOutcome) IsValid() bool {
	return o.kind == OutcomeValid
}

// Model returns the elaborated model; nil for Illformed outcomes.
func (o ValidationOutcome) Model() Model {
	return o.model
}

// Errors returns a copy of the validation errors of an Invalid outcome.
func (o ValidationOutcome) Errors() []ValidationError {
	return slices.Clone(o.errors)
}

// Message describes why the outcome is not Valid; empty for Valid outcomes.
func (o ValidationOutcome) Message() string {
	switch o.kind {
	case OutcomeValid:
		return ""
	case OutcomeInvalid:
		if len(o.errors) == 1 {
			return "model is invalid: " + o.errors[0].Error()
		}
		return fmt.Sprintf("model is invalid: %s (and %d more)", o.errors[0].Error(), len(o.errors)-1)
	default:
		return o.msg
	}
}

// ModelEntry is a cache entry holding the elaboration result of one document.
type ModelEntry struct {
	Theory         *Theory
	ValidatedModel ValidationOutcome
	// Generation starts at 1 and increases with every recomputation.
	Generation uint64
}
