package modelcache

import "go.trai.ch/elab/internal/core/domain"

// IsRelevant reports whether a change described by patches can affect the
// model elaborated from doc, the document content after the change.
//
// Only patches to the theory or the notebook count. Within the notebook,
// patches to a cell count only when the cell is formal after the change.
// Removing a cell or reordering cells always counts, as does any patch to a
// cell that is no longer present. Renaming a formal declaration counts as
// well.
func IsRelevant(doc domain.Document, patches []domain.Patch) bool {
	for _, p := range patches {
		if isRelevantPatch(doc, p) {
			return true
		}
	}
	return false
}

func isRelevantPatch(doc domain.Document, p domain.Patch) bool {
	switch {
	case p.Touches(domain.FieldTheory):
		return true
	case !p.Touches(domain.FieldNotebook):
		return false
	}

	// notebook/cellContents/<id>[/...]
	if len(p.Path) < 3 || p.Path[1] != domain.FieldCellContents || p.Action == domain.PatchDel {
		return true
	}
	cell, ok := doc.Notebook.CellContents[domain.CellID(p.Path[2])]
	if !ok {
		return true
	}
	return cell.IsFormal()
}
