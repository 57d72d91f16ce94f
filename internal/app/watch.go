package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/elab/internal/adapters/detector"
	"go.trai.ch/elab/internal/adapters/linear"
	"go.trai.ch/elab/internal/adapters/telemetry"
	"go.trai.ch/elab/internal/adapters/tui"
	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/elab/internal/core/ports"
	"go.trai.ch/elab/internal/engine/modelcache"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// WatchOptions configures Watch.
type WatchOptions struct {
	// Dir is the directory the workspace is searched from.
	Dir string
	// Refs are the models to watch; all documents when empty.
	Refs []string
	// OutputMode is one of auto, tui or linear.
	OutputMode string
}

// Watch materializes the requested models and renders every new entry
// until ctx is canceled or the user quits the TUI. Document files are
// reloaded as they change on disk.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	s, err := a.open(ctx, opts.Dir)
	if err != nil {
		return err
	}
	refs, err := s.references(opts.Refs)
	if err != nil {
		return err
	}

	w, err := a.newWatcher()
	if err != nil {
		return zerr.Wrap(err, "failed to create file watcher")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	renderer := a.newRenderer(ctx, opts.OutputMode)

	// Failed passes triggered by file changes have no caller; the bridge
	// forwards them to the renderer.
	tp := setupOTel(telemetry.NewBridge(renderer))
	defer func() { _ = tp.Shutdown(context.WithoutCancel(ctx)) }()

	lib := a.newLibrary(s, a.tracer, a.metrics)
	defer lib.Destroy()

	g, gctx := errgroup.WithContext(ctx)

	// Renderer Routine. Quitting the TUI ends the watch.
	g.Go(func() error {
		if err := renderer.Start(gctx); err != nil {
			return err
		}
		err := renderer.Wait()
		cancel()
		return err
	})

	g.Go(func() error {
		<-gctx.Done()
		return renderer.Stop()
	})

	if err := subscribeAll(gctx, lib, refs, renderer); err != nil {
		cancel()
		_ = g.Wait()
		return err
	}

	// Watcher Routine
	g.Go(func() error {
		return s.source.Watch(gctx, w, s.workspace.Debounce)
	})

	return g.Wait()
}

func (a *App) newRenderer(ctx context.Context, outputMode string) ports.Renderer {
	mode := detector.ResolveMode(detector.DetectEnvironment(), outputMode)
	if mode == detector.ModeTUI {
		opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.teaOptions...)
		return tui.NewRenderer(tui.NewModel(), opts...)
	}
	return linear.NewRenderer(a.stdout, a.stderr)
}

// subscribeAll materializes refs, forwards their future entries to the
// renderer and renders their current entries.
func subscribeAll(ctx context.Context, lib *modelcache.Library, refs []string, renderer ports.Renderer) error {
	lives := make([]*modelcache.LiveModel, 0, len(refs))
	for _, ref := range refs {
		live, err := lib.GetLiveModel(ctx, ref)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to elaborate model"), "model", ref)
		}
		live.Subscribe(func(entry domain.ModelEntry) {
			renderer.OnModelUpdate(ports.ModelUpdate{Key: live.Key(), Name: live.Document().Name, Entry: entry})
		})
		lives = append(lives, live)
	}

	for _, live := range lives {
		if entry, ok := live.Entry(); ok {
			renderer.OnModelUpdate(ports.ModelUpdate{Key: live.Key(), Name: live.Document().Name, Entry: entry})
		}
	}
	return nil
}

// setupOTel installs a global tracer provider that reports spans to the
// bridge.
func setupOTel(bridge *telemetry.Bridge) *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
	return tp
}
