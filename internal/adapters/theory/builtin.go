package theory

import "go.trai.ch/elab/internal/core/domain"

// Identifiers of the builtin theories.
const (
	Empty        = "empty"
	SimpleOlog   = "simple-olog"
	SimpleSchema = "simple-schema"
	CausalLoop   = "causal-loop"
)

// Builtin returns fresh copies of the builtin theories.
func Builtin() []*domain.Theory {
	return []*domain.Theory{
		{
			ID:          Empty,
			Name:        "Empty",
			Description: "Plain collections of objects",
			ObTypes:     []domain.ObType{{ID: "Object", Name: "Object"}},
		},
		{
			ID:          SimpleOlog,
			Name:        "Olog",
			Description: "Ontology logs: types and aspects",
			ObTypes:     []domain.ObType{{ID: "Object", Name: "Type"}},
			MorTypes:    []domain.MorType{{ID: "Hom", Name: "Aspect", Dom: "Object", Cod: "Object"}},
		},
		{
			ID:          SimpleSchema,
			Name:        "Schema",
			Description: "Database schemas with entities and attributes",
			ObTypes: []domain.ObType{
				{ID: "Entity", Name: "Entity"},
				{ID: "AttrType", Name: "Attribute type"},
			},
			MorTypes: []domain.MorType{
				{ID: "Hom", Name: "Mapping", Dom: "Entity", Cod: "Entity"},
				{ID: "Attr", Name: "Attribute", Dom: "Entity", Cod: "AttrType"},
			},
		},
		{
			ID:          CausalLoop,
			Name:        "Causal loop diagram",
			Description: "Variables linked by positive and negative influences",
			ObTypes:     []domain.ObType{{ID: "Object", Name: "Variable"}},
			MorTypes: []domain.MorType{
				{ID: "Positive", Name: "Positive link", Dom: "Object", Cod: "Object"},
				{ID: "Negative", Name: "Negative link", Dom: "Object", Cod: "Object"},
			},
		},
	}
}
