package domain

import (
	"maps"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// CellID is the stable identifier of a notebook cell.
type CellID string

// CellTag distinguishes free-text cells from formal cells.
type CellTag string

const (
	// CellRichText tags an informal, free-text cell.
	CellRichText CellTag = "rich-text"
	// CellFormal tags a cell holding a typed judgment.
	CellFormal CellTag = "formal"
)

// JudgmentKind is the kind of declaration held by a formal cell.
type JudgmentKind string

const (
	// JudgmentObject declares an object generator.
	JudgmentObject JudgmentKind = "object"
	// JudgmentMorphism declares a morphism generator between two objects.
	JudgmentMorphism JudgmentKind = "morphism"
	// JudgmentInstantiation instantiates another model document.
	JudgmentInstantiation JudgmentKind = "instantiation"
)

// Judgment is the formal content of a cell.
type Judgment struct {
	Kind JudgmentKind
	Name string
	// Type is the object or morphism type; empty means the theory default.
	Type string
	// Dom and Cod name the endpoints of a morphism.
	Dom string
	Cod string
	// Model is the reference of the instantiated document.
	Model string
}

// Cell is a single notebook cell.
type Cell struct {
	ID     CellID
	Tag    CellTag
	Text   string
	Formal *Judgment
}

// IsFormal reports whether the cell holds formal content.
func (c Cell) IsFormal() bool {
	return c.Tag == CellFormal
}

// Fingerprint returns a content hash of the cell used to detect edits.
func (c Cell) Fingerprint() uint64 {
	h := xxhash.New()
	write := func(s string) {
		_, _ = h.WriteString(s)
		_, _ = h.Write([]byte{0})
	}

	write(string(c.Tag))
	write(c.Text)
	if c.Formal != nil {
		write(string(c.Formal.Kind))
		write(c.Formal.Name)
		write(c.Formal.Type)
		write(c.Formal.Dom)
		write(c.Formal.Cod)
		write(c.Formal.Model)
	}
	return h.Sum64()
}

// Notebook is the ordered collection of cells of a document.
type Notebook struct {
	CellOrder    []CellID
	CellContents map[CellID]Cell
}

// Cells returns the cells in notebook order, skipping dangling ids.
func (n Notebook) Cells() []Cell {
	cells := make([]Cell, 0, len(n.CellOrder))
	for _, id := range n.CellOrder {
		if cell, ok := n.CellContents[id]; ok {
			cells = append(cells, cell)
		}
	}
	return cells
}

// FormalCells returns the formal cells in notebook order.
func (n Notebook) FormalCells() []Cell {
	cells := make([]Cell, 0, len(n.CellOrder))
	for _, cell := range n.Cells() {
		if cell.IsFormal() && cell.Formal != nil {
			cells = append(cells, cell)
		}
	}
	return cells
}

// Document is a snapshot of a model document.
type Document struct {
	// ID is the external identifier the document is addressed by.
	ID       string
	Name     string
	Theory   string
	Notebook Notebook
}

// Instantiations returns the distinct, non-empty model references of the
// document's instantiation cells in notebook order.
func (d Document) Instantiations() []string {
	seen := make(map[string]struct{})
	var refs []string
	for _, cell := range d.Notebook.FormalCells() {
		if cell.Formal.Kind != JudgmentInstantiation || cell.Formal.Model == "" {
			continue
		}
		if _, dup := seen[cell.Formal.Model]; dup {
			continue
		}
		seen[cell.Formal.Model] = struct{}{}
		refs = append(refs, cell.Formal.Model)
	}
	return refs
}

// AppendCell adds a cell at the end of the notebook.
func (d *Document) AppendCell(cell Cell) {
	if d.Notebook.CellContents == nil {
		d.Notebook.CellContents = make(map[CellID]Cell)
	}
	d.Notebook.CellOrder = append(d.Notebook.CellOrder, cell.ID)
	d.Notebook.CellContents[cell.ID] = cell
}

// RemoveCell deletes a cell from the notebook.
func (d *Document) RemoveCell(id CellID) {
	d.Notebook.CellOrder = slices.DeleteFunc(d.Notebook.CellOrder, func(c CellID) bool { return c == id })
	delete(d.Notebook.CellContents, id)
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := d
	out.Notebook.CellOrder = slices.Clone(d.Notebook.CellOrder)
	out.Notebook.CellContents = maps.Clone(d.Notebook.CellContents)
	for id, cell := range out.Notebook.CellContents {
		if cell.Formal != nil {
			j := *cell.Formal
			cell.Formal = &j
			out.Notebook.CellContents[id] = cell
		}
	}
	return out
}
