package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/elab/internal/core/domain"
)

type stubModel struct{ errs []domain.ValidationError }

func (m stubModel) TheoryID() string                     { return "empty" }
func (m stubModel) Validate() []domain.ValidationError { return m.errs }

func TestClassify(t *testing.T) {
	model := stubModel{}

	valid := domain.Classify(model, nil)
	assert.Equal(t, domain.OutcomeValid, valid.Kind())
	assert.True(t, valid.IsValid())
	assert.Equal(t, model, valid.Model())
	assert.Empty(t, valid.Message())

	errs := []domain.ValidationError{
		{CellID: "m1", Code: "undefined-dom", Message: "domain X is not defined"},
		{Code: "duplicate", Message: "duplicate name"},
	}
	invalid := domain.Classify(model, errs)
	assert.Equal(t, domain.OutcomeInvalid, invalid.Kind())
	assert.False(t, invalid.IsValid())
	assert.Equal(t, errs, invalid.Errors())
	assert.Equal(t, "model is invalid: m1: domain X is not defined (and 1 more)", invalid.Message())
}

func TestIllformed(t *testing.T) {
	out := domain.Illformed("cycle detected")

	assert.Equal(t, domain.OutcomeIllformed, out.Kind())
	assert.Nil(t, out.Model())
	assert.Empty(t, out.Errors())
	assert.Equal(t, "cycle detected", out.Message())
	assert.Equal(t, "illformed", out.Kind().String())
}

func TestInvalid_PanicsWithoutErrors(t *testing.T) {
	assert.Panics(t, func() { domain.Invalid(stubModel{}, nil) })
}

func TestInvalid_SingleErrorMessage(t *testing.T) {
	out := domain.Invalid(stubModel{}, []domain.ValidationError{{Message: "bad"}})
	assert.Equal(t, "model is invalid: bad", out.Message())
}
