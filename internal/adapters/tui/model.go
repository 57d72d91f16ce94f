// Package tui renders live model updates as an interactive terminal UI.
package tui

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/elab/internal/core/ports"
)

// MsgModelUpdate carries a new cache entry into the UI.
type MsgModelUpdate struct {
	Update ports.ModelUpdate
}

// MsgModelError carries a refresh failure into the UI.
type MsgModelError struct {
	Key domain.ModelKey
	Err error
}

// Row is the UI state of one model.
type Row struct {
	Key        domain.ModelKey
	Name       string
	Outcome    domain.ValidationOutcome
	Generation uint64
	// Err is the last refresh failure; cleared by the next update.
	Err error
}

// Model is the bubbletea model listing all models in key order.
type Model struct {
	Rows        []*Row
	SelectedIdx int
	Width       int
	Height      int

	index map[domain.ModelKey]*Row
}

// NewModel creates an empty Model.
func NewModel() *Model {
	return &Model{index: make(map[domain.ModelKey]*Row)}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "k", "up":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
			}
		case "j", "down":
			if m.SelectedIdx < len(m.Rows)-1 {
				m.SelectedIdx++
			}
		}
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
	case MsgModelUpdate:
		row := m.row(msg.Update.Key)
		if msg.Update.Entry.Generation <= row.Generation {
			break
		}
		row.Name = msg.Update.Name
		row.Outcome = msg.Update.Entry.ValidatedModel
		row.Generation = msg.Update.Entry.Generation
		row.Err = nil
	case MsgModelError:
		m.row(msg.Key).Err = msg.Err
	}
	return m, nil
}

// Selected returns the selected row, if any.
func (m *Model) Selected() *Row {
	if m.SelectedIdx >= 0 && m.SelectedIdx < len(m.Rows) {
		return m.Rows[m.SelectedIdx]
	}
	return nil
}

// row returns the row of key, inserting it in key order if needed. The
// selection stays on the same row.
func (m *Model) row(key domain.ModelKey) *Row {
	if m.index == nil {
		m.index = make(map[domain.ModelKey]*Row)
	}
	if row, ok := m.index[key]; ok {
		return row
	}

	row := &Row{Key: key, Name: key.String()}
	m.index[key] = row
	pos, _ := slices.BinarySearchFunc(m.Rows, key, func(r *Row, k domain.ModelKey) int {
		return r.Key.Compare(k)
	})
	m.Rows = slices.Insert(m.Rows, pos, row)
	if len(m.Rows) > 1 && pos <= m.SelectedIdx {
		m.SelectedIdx++
	}
	return row
}
