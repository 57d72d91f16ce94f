package filedoc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// File is the on-disk representation of a model document.
type File struct {
	// ID is the external identifier; the file stem is used when empty.
	ID     string    `yaml:"id"`
	Name   string    `yaml:"name"`
	Theory string    `yaml:"theory"`
	Cells  []CellDTO `yaml:"cells"`
}

// CellDTO is a notebook cell. A cell with a kind is formal, any other cell
// is rich text.
type CellDTO struct {
	ID    string `yaml:"id"`
	Text  string `yaml:"text,omitempty"`
	Kind  string `yaml:"kind,omitempty"`
	Name  string `yaml:"name,omitempty"`
	Type  string `yaml:"type,omitempty"`
	Dom   string `yaml:"dom,omitempty"`
	Cod   string `yaml:"cod,omitempty"`
	Model string `yaml:"model,omitempty"`
}

// ReadFile reads and parses the document stored at path.
func ReadFile(path string) (domain.Document, error) {
	// #nosec G304 -- path comes from walking the documents directory
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, zerr.With(zerr.Wrap(domain.ErrDocumentReadFailed, err.Error()), "path", path)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Document{}, zerr.With(zerr.Wrap(domain.ErrDocumentParseFailed, err.Error()), "path", path)
	}

	doc, err := file.Document(stem(path))
	if err != nil {
		return domain.Document{}, zerr.With(err, "path", path)
	}
	return doc, nil
}

// Document converts the file into a domain document. Cells without an id
// are numbered by position.
func (f File) Document(defaultID string) (domain.Document, error) {
	doc := domain.Document{
		ID:     f.ID,
		Name:   f.Name,
		Theory: f.Theory,
		Notebook: domain.Notebook{
			CellContents: make(map[domain.CellID]domain.Cell, len(f.Cells)),
		},
	}
	if doc.ID == "" {
		doc.ID = defaultID
	}
	if doc.Name == "" {
		doc.Name = doc.ID
	}

	for i, dto := range f.Cells {
		cell := dto.cell(i)
		if _, dup := doc.Notebook.CellContents[cell.ID]; dup {
			return domain.Document{}, zerr.With(zerr.Wrap(domain.ErrDocumentParseFailed, "duplicate cell id"), "cell", string(cell.ID))
		}
		doc.AppendCell(cell)
	}
	return doc, nil
}

func (c CellDTO) cell(index int) domain.Cell {
	id := domain.CellID(c.ID)
	if id == "" {
		id = domain.CellID(fmt.Sprintf("cell-%d", index+1))
	}
	if c.Kind == "" {
		return domain.Cell{ID: id, Tag: domain.CellRichText, Text: c.Text}
	}
	return domain.Cell{
		ID:   id,
		Tag:  domain.CellFormal,
		Text: c.Text,
		Formal: &domain.Judgment{
			Kind:  domain.JudgmentKind(c.Kind),
			Name:  c.Name,
			Type:  c.Type,
			Dom:   c.Dom,
			Cod:   c.Cod,
			Model: c.Model,
		},
	}
}

func stem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
