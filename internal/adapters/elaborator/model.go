// Package elaborator implements the computation library that elaborates
// notebook content into models of a theory and validates them.
package elaborator

import (
	"fmt"

	"go.trai.ch/elab/internal/core/domain"
)

// Validation error codes.
const (
	CodeMissingName     = "missing_name"
	CodeDuplicateName   = "duplicate_name"
	CodeMissingEndpoint = "missing_endpoint"
	CodeUndefinedObject = "undefined_object"
	CodeIllTyped        = "ill_typed"
)

// Object is an object generator of a model.
type Object struct {
	Cell domain.CellID
	Name string
	Type string
}

// Morphism is a morphism generator of a model.
type Morphism struct {
	Cell domain.CellID
	Name string
	Type string
	Dom  string
	Cod  string
}

// Model is a finitely presented model of a theory.
type Model struct {
	theory    *domain.Theory
	objects   []Object
	morphisms []Morphism
}

var _ domain.Model = (*Model)(nil)

// TheoryID implements domain.Model.
func (m *Model) TheoryID() string {
	return m.theory.ID
}

// Objects returns the object generators in declaration order.
func (m *Model) Objects() []Object {
	return m.objects
}

// Morphisms returns the morphism generators in declaration order.
func (m *Model) Morphisms() []Morphism {
	return m.morphisms
}

// Validate implements domain.Model. It reports, in declaration order,
// unnamed and duplicate generators and morphisms whose endpoints are missing,
// undefined or of the wrong object type.
func (m *Model) Validate() []domain.ValidationError {
	var errs []domain.ValidationError
	report := func(cell domain.CellID, code, format string, args ...any) {
		errs = append(errs, domain.ValidationError{CellID: cell, Code: code, Message: fmt.Sprintf(format, args...)})
	}

	names := make(map[string]struct{}, len(m.objects)+len(m.morphisms))
	declare := func(cell domain.CellID, name string) {
		if name == "" {
			report(cell, CodeMissingName, "generator has no name")
			return
		}
		if _, dup := names[name]; dup {
			report(cell, CodeDuplicateName, "name %q is already declared", name)
			return
		}
		names[name] = struct{}{}
	}

	obTypes := make(map[string]string, len(m.objects))
	for _, ob := range m.objects {
		declare(ob.Cell, ob.Name)
		if _, seen := obTypes[ob.Name]; !seen && ob.Name != "" {
			obTypes[ob.Name] = ob.Type
		}
	}

	for _, mor := range m.morphisms {
		declare(mor.Cell, mor.Name)

		morType, _ := m.theory.MorType(mor.Type)
		for _, end := range []struct{ role, name, want string }{
			{"domain", mor.Dom, morType.Dom},
			{"codomain", mor.Cod, morType.Cod},
		} {
			if end.name == "" {
				report(mor.Cell, CodeMissingEndpoint, "morphism %q has no %s", mor.Name, end.role)
				continue
			}
			got, ok := obTypes[end.name]
			if !ok {
				report(mor.Cell, CodeUndefinedObject, "%s of morphism %q: %q is not a declared object", end.role, mor.Name, end.name)
				continue
			}
			if got != end.want {
				report(mor.Cell, CodeIllTyped, "%s of morphism %q: %q has type %s, expected %s", end.role, mor.Name, end.name, got, end.want)
			}
		}
	}
	return errs
}
