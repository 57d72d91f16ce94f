// Package app implements the application layer for elab.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/elab/internal/adapters/canonical"
	"go.trai.ch/elab/internal/adapters/filedoc"
	"go.trai.ch/elab/internal/adapters/theory"
	"go.trai.ch/elab/internal/adapters/watcher"
	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/elab/internal/core/ports"
	"go.trai.ch/elab/internal/engine/modelcache"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	theories     *theory.Registry
	elaborator   ports.Elaborator
	logger       ports.Logger
	tracer       ports.Tracer
	metrics      ports.Metrics

	stdout     io.Writer
	stderr     io.Writer
	teaOptions []tea.ProgramOption
	newWatcher func() (ports.Watcher, error)

	mu             sync.Mutex
	loadedTheories map[string]bool
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	theories *theory.Registry,
	elaborator ports.Elaborator,
	log ports.Logger,
	tracer ports.Tracer,
	metrics ports.Metrics,
) *App {
	return &App{
		configLoader: loader,
		theories:     theories,
		elaborator:   elaborator,
		logger:       log,
		tracer:       tracer,
		metrics:      metrics,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		newWatcher: func() (ports.Watcher, error) {
			return watcher.NewWatcher(domain.DocumentExt)
		},
		loadedTheories: make(map[string]bool),
	}
}

// WithOutput redirects the renderers' output streams.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout, a.stderr = stdout, stderr
	return a
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithWatcherFactory replaces how document watchers are created.
func (a *App) WithWatcherFactory(fn func() (ports.Watcher, error)) *App {
	a.newWatcher = fn
	return a
}

// session is an opened workspace.
type session struct {
	workspace *domain.Workspace
	canon     ports.Canonicalizer
	source    *filedoc.Source
}

// open loads the workspace containing dir and indexes its documents.
func (a *App) open(ctx context.Context, dir string) (*session, error) {
	ws, err := a.configLoader.Load(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	canon, err := canonical.ForStrategy(ws.References)
	if err != nil {
		return nil, err
	}

	if err := a.loadTheories(ws); err != nil {
		return nil, err
	}

	source := filedoc.NewSource(ws.DocumentsDir, canon, a.logger)
	if err := source.Load(ctx); err != nil {
		return nil, err
	}
	return &session{workspace: ws, canon: canon, source: source}, nil
}

// loadTheories registers the workspace's theory file once per App.
func (a *App) loadTheories(ws *domain.Workspace) error {
	if ws.TheoriesFile == "" {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.loadedTheories[ws.TheoriesFile] {
		return nil
	}
	if err := a.theories.LoadFile(ws.TheoriesFile); err != nil {
		return err
	}
	a.loadedTheories[ws.TheoriesFile] = true
	return nil
}

func (a *App) newLibrary(s *session, tracer ports.Tracer, metrics ports.Metrics) *modelcache.Library {
	return modelcache.NewLibrary(s.source, s.canon, a.theories, a.elaborator, a.logger, tracer, metrics)
}

// references returns refs, or the keys of every document when refs is empty.
func (s *session) references(refs []string) ([]string, error) {
	if len(refs) > 0 {
		return refs, nil
	}
	keys := s.source.Keys()
	if len(keys) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoDocuments, "the documents directory is empty"), "dir", s.workspace.DocumentsDir)
	}
	out := make([]string, len(keys))
	for i, key := range keys {
		out[i] = key.String()
	}
	return out, nil
}

// Theories prints the registered theories. Theories defined by the
// workspace containing dir are included when there is one.
func (a *App) Theories(_ context.Context, dir string) error {
	ws, err := a.configLoader.Load(dir)
	switch {
	case err == nil:
		if err := a.loadTheories(ws); err != nil {
			return err
		}
	case !errors.Is(err, domain.ErrConfigNotFound):
		return zerr.Wrap(err, "failed to load configuration")
	}

	for _, t := range a.theories.List() {
		obs := make([]string, len(t.ObTypes))
		for i, ob := range t.ObTypes {
			obs[i] = ob.ID
		}
		mors := make([]string, len(t.MorTypes))
		for i, mor := range t.MorTypes {
			mors[i] = fmt.Sprintf("%s: %s -> %s", mor.ID, mor.Dom, mor.Cod)
		}
		_, _ = fmt.Fprintf(a.stdout, "%s\t%s\n", t.ID, t.Name)
		_, _ = fmt.Fprintf(a.stdout, "  objects:   %s\n", strings.Join(obs, ", "))
		if len(mors) > 0 {
			_, _ = fmt.Fprintf(a.stdout, "  morphisms: %s\n", strings.Join(mors, ", "))
		}
	}
	return nil
}
