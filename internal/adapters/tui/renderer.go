package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/elab/internal/core/ports"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer wraps the bubbletea Model as a ports.Renderer.
type Renderer struct {
	program *tea.Program
	model   *Model
	errCh   chan error
}

// NewRenderer creates a new TUI renderer.
func NewRenderer(model *Model, opts ...tea.ProgramOption) *Renderer {
	return &Renderer{
		program: tea.NewProgram(model, opts...),
		model:   model,
		errCh:   make(chan error, 1),
	}
}

// Start launches the TUI in a background goroutine.
func (r *Renderer) Start(_ context.Context) error {
	go func() {
		_, err := r.program.Run()
		r.errCh <- err
	}()
	return nil
}

// Stop signals the TUI to quit.
func (r *Renderer) Stop() error {
	r.program.Quit()
	return nil
}

// Wait blocks until the TUI has terminated, including when the user quits.
// A program ended by its context is not an error.
func (r *Renderer) Wait() error {
	err := <-r.errCh
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// OnModelUpdate forwards an update to the TUI.
func (r *Renderer) OnModelUpdate(update ports.ModelUpdate) {
	r.program.Send(MsgModelUpdate{Update: update})
}

// OnError forwards a refresh failure to the TUI.
func (r *Renderer) OnError(key domain.ModelKey, err error) {
	r.program.Send(MsgModelError{Key: key, Err: err})
}
