package elaborator

import (
	"context"
	"fmt"

	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/elab/internal/core/ports"
	"go.trai.ch/zerr"
)

// Elaborator builds Models from the formal cells of a notebook.
type Elaborator struct{}

var _ ports.Elaborator = (*Elaborator)(nil)

// New creates a new Elaborator.
func New() *Elaborator {
	return &Elaborator{}
}

// Elaborate implements ports.Elaborator.
//
// Objects and morphisms default to the first type of the theory. An
// instantiation copies the generators of the referenced model into the new
// model, qualified by the instantiation name ("inst.x").
func (e *Elaborator) Elaborate(
	ctx context.Context,
	cells []domain.Cell,
	deps map[string]domain.Model,
	theory *domain.Theory,
) (domain.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if theory == nil {
		return nil, zerr.Wrap(domain.ErrElaborationFailed, "no theory")
	}

	m := &Model{theory: theory}
	for _, cell := range cells {
		if !cell.IsFormal() || cell.Formal == nil {
			continue
		}
		var err error
		switch j := cell.Formal; j.Kind {
		case domain.JudgmentObject:
			err = e.object(m, cell.ID, j)
		case domain.JudgmentMorphism:
			err = e.morphism(m, cell.ID, j)
		case domain.JudgmentInstantiation:
			err = e.instantiate(m, cell.ID, j, deps)
		default:
			err = failure(cell.ID, fmt.Sprintf("unknown judgment kind %q", j.Kind))
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (e *Elaborator) object(m *Model, cell domain.CellID, j *domain.Judgment) error {
	typ := j.Type
	if typ == "" {
		ob, ok := m.theory.DefaultObType()
		if !ok {
			return failure(cell, fmt.Sprintf("theory %s has no object types", m.theory.ID))
		}
		typ = ob.ID
	}
	if _, ok := m.theory.ObType(typ); !ok {
		return failure(cell, fmt.Sprintf("unknown object type %q", typ))
	}
	m.objects = append(m.objects, Object{Cell: cell, Name: j.Name, Type: typ})
	return nil
}

func (e *Elaborator) morphism(m *Model, cell domain.CellID, j *domain.Judgment) error {
	typ := j.Type
	if typ == "" {
		mor, ok := m.theory.DefaultMorType()
		if !ok {
			return failure(cell, fmt.Sprintf("theory %s has no morphism types", m.theory.ID))
		}
		typ = mor.ID
	}
	if _, ok := m.theory.MorType(typ); !ok {
		return failure(cell, fmt.Sprintf("unknown morphism type %q", typ))
	}
	m.morphisms = append(m.morphisms, Morphism{Cell: cell, Name: j.Name, Type: typ, Dom: j.Dom, Cod: j.Cod})
	return nil
}

func (e *Elaborator) instantiate(m *Model, cell domain.CellID, j *domain.Judgment, deps map[string]domain.Model) error {
	if j.Model == "" {
		return nil
	}
	dep, ok := deps[j.Model]
	if !ok {
		return failure(cell, fmt.Sprintf("model %s is not available", j.Model))
	}
	sub, ok := dep.(*Model)
	if !ok {
		return failure(cell, fmt.Sprintf("model %s cannot be instantiated", j.Model))
	}
	if sub.TheoryID() != m.theory.ID {
		return failure(cell, fmt.Sprintf("model %s has theory %s, expected %s", j.Model, sub.TheoryID(), m.theory.ID))
	}

	qualify := func(name string) string {
		if j.Name == "" || name == "" {
			return name
		}
		return j.Name + "." + name
	}
	for _, ob := range sub.objects {
		m.objects = append(m.objects, Object{Cell: cell, Name: qualify(ob.Name), Type: ob.Type})
	}
	for _, mor := range sub.morphisms {
		m.morphisms = append(m.morphisms, Morphism{
			Cell: cell,
			Name: qualify(mor.Name),
			Type: mor.Type,
			Dom:  qualify(mor.Dom),
			Cod:  qualify(mor.Cod),
		})
	}
	return nil
}

func failure(cell domain.CellID, msg string) error {
	return zerr.With(zerr.Wrap(domain.ErrElaborationFailed, fmt.Sprintf("cell %s: %s", cell, msg)), "cell", string(cell))
}
