package theory

import (
	"os"

	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// File is the YAML schema of a theory definition file.
type File struct {
	Theories []TheoryDTO `yaml:"theories"`
}

// TheoryDTO is the YAML form of a theory.
type TheoryDTO struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	ObTypes     []ObTypeDTO  `yaml:"obTypes"`
	MorTypes    []MorTypeDTO `yaml:"morTypes"`
}

// ObTypeDTO is the YAML form of an object type.
type ObTypeDTO struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// MorTypeDTO is the YAML form of a morphism type.
type MorTypeDTO struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Dom  string `yaml:"dom"`
	Cod  string `yaml:"cod"`
}

// LoadFile registers every theory defined in the YAML file at path.
// Nothing is registered if any definition is rejected.
func (r *Registry) LoadFile(path string) error {
	//nolint:gosec // G304: path comes from the workspace configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrTheoryFileReadFailed.Error()), "path", path)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrTheoryFileParseFailed.Error()), "path", path)
	}

	theories := make([]*domain.Theory, 0, len(f.Theories))
	seen := make(map[string]struct{}, len(f.Theories))
	for _, dto := range f.Theories {
		t := dto.toDomain()
		if err := Check(t); err != nil {
			return zerr.With(err, "path", path)
		}
		if _, dup := seen[t.ID]; dup || r.has(t.ID) {
			return zerr.With(zerr.With(zerr.Wrap(domain.ErrDuplicateTheory, "theory is already registered"), "theory", t.ID), "path", path)
		}
		seen[t.ID] = struct{}{}
		theories = append(theories, t)
	}

	for _, t := range theories {
		if err := r.Register(t); err != nil {
			return zerr.With(err, "path", path)
		}
	}
	return nil
}

func (dto TheoryDTO) toDomain() *domain.Theory {
	t := &domain.Theory{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
	}
	if t.Name == "" {
		t.Name = dto.ID
	}
	for _, ob := range dto.ObTypes {
		t.ObTypes = append(t.ObTypes, domain.ObType{ID: ob.ID, Name: ob.Name})
	}
	for _, mor := range dto.MorTypes {
		t.MorTypes = append(t.MorTypes, domain.MorType{ID: mor.ID, Name: mor.Name, Dom: mor.Dom, Cod: mor.Cod})
	}
	return t
}
