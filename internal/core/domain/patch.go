package domain

import (
	"slices"
	"strings"
)

// PatchAction is the kind of structural change a patch applies.
type PatchAction string

const (
	// PatchPut sets or replaces the value at a path.
	PatchPut PatchAction = "put"
	// PatchDel removes the value at a path.
	PatchDel PatchAction = "del"
	// PatchSplice edits text in place at a path.
	PatchSplice PatchAction = "splice"
)

// Field names used in patch paths.
const (
	FieldName         = "name"
	FieldTheory       = "theory"
	FieldNotebook     = "notebook"
	FieldCellOrder    = "cellOrder"
	FieldCellContents = "cellContents"
	FieldTag          = "tag"
	FieldText         = "text"
	FieldContent      = "content"
)

// Patch describes one structural change to a document.
type Patch struct {
	Action PatchAction
	Path   []string
}

// String renders the patch as "action /a/b/c".
func (p Patch) String() string {
	return string(p.Action) + " /" + strings.Join(p.Path, "/")
}

// Touches reports whether the patch path starts with the given field.
func (p Patch) Touches(field string) bool {
	return len(p.Path) > 0 && p.Path[0] == field
}

// Diff derives the structural patches that turn before into after.
// Cell contents are compared by fingerprint; patches are emitted in
// document field order, then cell order of after, then removed cells
// sorted by id.
func Diff(before, after Document) []Patch {
	var patches []Patch

	if before.Name != after.Name {
		patches = append(patches, Patch{Action: PatchPut, Path: []string{FieldName}})
	}
	if before.Theory != after.Theory {
		patches = append(patches, Patch{Action: PatchPut, Path: []string{FieldTheory}})
	}
	if !slices.Equal(before.Notebook.CellOrder, after.Notebook.CellOrder) {
		patches = append(patches, Patch{Action: PatchPut, Path: []string{FieldNotebook, FieldCellOrder}})
	}

	for _, id := range after.Notebook.CellOrder {
		next, ok := after.Notebook.CellContents[id]
		if !ok {
			continue
		}
		prev, existed := before.Notebook.CellContents[id]
		patches = append(patches, diffCell(id, prev, existed, next)...)
	}

	var removed []CellID
	for id := range before.Notebook.CellContents {
		if _, ok := after.Notebook.CellContents[id]; !ok {
			removed = append(removed, id)
		}
	}
	slices.Sort(removed)
	for _, id := range removed {
		patches = append(patches, Patch{Action: PatchDel, Path: cellPath(id)})
	}

	return patches
}

func diffCell(id CellID, prev Cell, existed bool, next Cell) []Patch {
	switch {
	case !existed:
		return []Patch{{Action: PatchPut, Path: cellPath(id)}}
	case prev.Fingerprint() == next.Fingerprint():
		return nil
	case prev.Tag != next.Tag:
		// A tag change removes the old cell and puts the new one.
		return []Patch{{Action: PatchDel, Path: cellPath(id)}, {Action: PatchPut, Path: cellPath(id)}}
	case next.Tag == CellRichText:
		return []Patch{{Action: PatchSplice, Path: append(cellPath(id), FieldText)}}
	default:
		return []Patch{{Action: PatchPut, Path: append(cellPath(id), FieldContent)}}
	}
}

func cellPath(id CellID) []string {
	return []string{FieldNotebook, FieldCellContents, string(id)}
}
