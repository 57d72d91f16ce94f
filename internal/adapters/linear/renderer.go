// Package linear provides a line-oriented renderer for CI and redirected
// output.
package linear

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/elab/internal/core/ports"
	"go.trai.ch/elab/internal/ui/output"
	"go.trai.ch/elab/internal/ui/style"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer prints one line per model update to stdout, followed by the
// validation errors of invalid models. Errors go to stderr.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu   sync.Mutex
	seen map[domain.ModelKey]uint64

	stopOnce sync.Once
	done     chan struct{}
}

// NewRenderer creates a new Renderer. Nil writers mean the process streams.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout: stdout,
		stderr: stderr,
		output: output.NewWithProfile(stdout, output.ColorProfileANSI),
		seen:   make(map[domain.ModelKey]uint64),
		done:   make(chan struct{}),
	}
}

// Start is a no-op for the line renderer.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop ends the renderer's lifecycle and releases Wait.
func (r *Renderer) Stop() error {
	r.stopOnce.Do(func() { close(r.done) })
	return nil
}

// Wait blocks until Stop is called.
func (r *Renderer) Wait() error {
	<-r.done
	return nil
}

// OnModelUpdate prints the outcome of an update. Updates that are not newer
// than the last printed generation of the model are dropped.
func (r *Renderer) OnModelUpdate(update ports.ModelUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if update.Entry.Generation <= r.seen[update.Key] {
		return
	}
	r.seen[update.Key] = update.Entry.Generation

	outcome := update.Entry.ValidatedModel
	icon, color := style.Outcome(outcome.Kind())
	symbol := r.output.String(icon).Foreground(termenv.RGBColor(string(color))).String()
	prefix := r.output.String(fmt.Sprintf("[%s]", label(update))).Faint().String()

	switch outcome.Kind() {
	case domain.OutcomeValid:
		_, _ = fmt.Fprintf(r.stdout, "%s %s valid (generation %d)\n", prefix, symbol, update.Entry.Generation)
	case domain.OutcomeInvalid:
		errs := outcome.Errors()
		_, _ = fmt.Fprintf(r.stdout, "%s %s invalid, %d error(s) (generation %d)\n", prefix, symbol, len(errs), update.Entry.Generation)
		for _, e := range errs {
			_, _ = fmt.Fprintf(r.stdout, "    → %s\n", e.Error())
		}
	default:
		_, _ = fmt.Fprintf(r.stdout, "%s %s ill-formed: %s (generation %d)\n", prefix, symbol, outcome.Message(), update.Entry.Generation)
	}
}

// OnError prints an error that occurred while refreshing a model.
func (r *Renderer) OnError(key domain.ModelKey, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	symbol := r.output.String(style.Cross).Foreground(termenv.RGBColor(string(style.Red))).String()
	_, _ = fmt.Fprintf(r.stderr, "[%s] %s %v\n", key.String(), symbol, err)
}

func label(update ports.ModelUpdate) string {
	if update.Name == "" || update.Name == update.Key.String() {
		return update.Key.String()
	}
	return update.Name + " " + update.Key.String()
}
