package modelcache

import (
	"context"
	"sync"
	"time"

	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/elab/internal/core/ports"
	"go.trai.ch/zerr"
)

// Library materializes elaborated models of documents on demand and keeps
// them current as the documents change.
//
// Elaboration passes are serialized across the library. Change events for a
// key are processed one at a time; events arriving during a pass for the same
// key are coalesced into one follow-up pass. Cache observers are called while
// a pass is in progress and must not call back into the Library.
type Library struct {
	source        ports.DocumentSource
	canonicalizer ports.Canonicalizer
	theories      ports.TheoryRegistry
	elaborator    ports.Elaborator
	logger        ports.Logger
	tracer        ports.Tracer
	metrics       ports.Metrics

	cache *Cache
	graph *domain.DependencyGraph

	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	destroyed    bool
	inProgress   map[domain.ModelKey]struct{}
	handles      map[domain.ModelKey]ports.DocumentHandle
	unsubscribes map[domain.ModelKey]func()

	gatesMu sync.Mutex
	gates   map[domain.ModelKey]*gate
}

// NewLibrary creates a new Library with the given dependencies.
func NewLibrary(
	source ports.DocumentSource,
	canonicalizer ports.Canonicalizer,
	theories ports.TheoryRegistry,
	elaborator ports.Elaborator,
	logger ports.Logger,
	tracer ports.Tracer,
	metrics ports.Metrics,
) *Library {
	ctx, cancel := context.WithCancel(context.Background())
	return &Library{
		source:        source,
		canonicalizer: canonicalizer,
		theories:      theories,
		elaborator:    elaborator,
		logger:        logger,
		tracer:        tracer,
		metrics:       metrics,
		cache:         NewCache(),
		graph:         domain.NewDependencyGraph(),
		ctx:           ctx,
		cancel:        cancel,
		inProgress:    make(map[domain.ModelKey]struct{}),
		handles:       make(map[domain.ModelKey]ports.DocumentHandle),
		unsubscribes:  make(map[domain.ModelKey]func()),
		gates:         make(map[domain.ModelKey]*gate),
	}
}

// GetElaboratedModel ensures the model referenced by ref is materialized and
// returns an accessor to its cache entry. Calling it again for the same
// document reuses the existing entry and change listener.
//
// Malformed references, unknown theories and unreadable documents are
// returned as errors. Problems with the document content are reported in the
// entry's ValidationOutcome instead.
func (l *Library) GetElaboratedModel(ctx context.Context, ref string) (*Accessor, error) {
	key, err := l.canonicalizer.Canonicalize(ref)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.materialize(ctx, key); err != nil {
		return nil, err
	}
	return l.cache.Accessor(key), nil
}

// GetLiveModel is like GetElaboratedModel but also exposes the document.
func (l *Library) GetLiveModel(ctx context.Context, ref string) (*LiveModel, error) {
	key, err := l.canonicalizer.Canonicalize(ref)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.materialize(ctx, key); err != nil {
		return nil, err
	}
	handle, ok := l.handles[key]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrEntryMissing, "no document handle for materialized model"), "model", key.String())
	}
	return &LiveModel{handle: handle, accessor: l.cache.Accessor(key)}, nil
}

// Keys returns the keys of all materialized models in canonical order.
func (l *Library) Keys() []domain.ModelKey {
	return l.cache.Keys()
}

// Destroy removes every change listener and per-key gate and clears the
// cache. Accessors obtained earlier receive no further updates. It is safe to
// call more than once.
func (l *Library) Destroy() {
	l.cancel()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.destroyed {
		return
	}
	l.destroyed = true

	for _, unsubscribe := range l.unsubscribes {
		unsubscribe()
	}
	clear(l.unsubscribes)
	clear(l.handles)

	l.gatesMu.Lock()
	clear(l.gates)
	l.gatesMu.Unlock()

	l.cache.Clear()
	l.graph.Clear()
}

// materialize fetches and elaborates key unless it is already cached.
// l.mu must be held.
func (l *Library) materialize(ctx context.Context, key domain.ModelKey) error {
	if l.destroyed {
		return domain.ErrLibraryDestroyed
	}
	if l.cache.Has(key) {
		return nil
	}

	handle, err := l.source.Fetch(ctx, key)
	if err != nil {
		return err
	}
	return l.install(ctx, key, handle)
}

// install registers the change listener of handle and stores the first entry
// for key. The listener is removed again if elaboration fails.
// l.mu must be held.
func (l *Library) install(ctx context.Context, key domain.ModelKey, handle ports.DocumentHandle) error {
	unsubscribe := handle.OnChange(func(doc domain.Document, patches []domain.Patch) {
		l.onChange(key, doc, patches)
	})
	l.handles[key] = handle
	l.unsubscribes[key] = unsubscribe

	if _, err := l.recompute(ctx, key, handle.Snapshot()); err != nil {
		unsubscribe()
		delete(l.handles, key)
		delete(l.unsubscribes, key)
		return err
	}
	return nil
}

func (l *Library) onChange(key domain.ModelKey, doc domain.Document, patches []domain.Patch) {
	if !IsRelevant(doc, patches) {
		l.metrics.RecordSkippedChange(l.ctx)
		return
	}
	l.gateFor(key).run(func() {
		l.refresh(key)
	})
}

func (l *Library) gateFor(key domain.ModelKey) *gate {
	l.gatesMu.Lock()
	defer l.gatesMu.Unlock()

	g, ok := l.gates[key]
	if !ok {
		g = &gate{}
		l.gates[key] = g
	}
	return g
}

// refresh re-elaborates key from the latest snapshot of its document.
// Errors have no caller to return to and are logged; the entry is kept.
func (l *Library) refresh(key domain.ModelKey) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.destroyed {
		return
	}
	handle, ok := l.handles[key]
	if !ok {
		return
	}

	if _, err := l.recompute(l.ctx, key, handle.Snapshot()); err != nil {
		if l.ctx.Err() != nil {
			return
		}
		l.logger.Error(zerr.With(zerr.Wrap(err, "failed to recompute model"), "model", key.String()))
	}
}

// recompute elaborates doc and stores the result as the new entry for key.
// l.mu must be held.
func (l *Library) recompute(ctx context.Context, key domain.ModelKey, doc domain.Document) (domain.ModelEntry, error) {
	ctx, span := l.tracer.Start(ctx, "modelcache.elaborate",
		ports.WithAttribute("model.key", key.String()),
		ports.WithAttribute("model.theory", doc.Theory),
	)
	defer span.End()

	start := time.Now()
	theory, outcome, err := l.elaborateAndValidate(ctx, key, doc)
	if err != nil {
		span.RecordError(err)
		return domain.ModelEntry{}, err
	}
	kind := outcome.Kind().String()
	l.metrics.RecordElaboration(ctx, kind, time.Since(start))

	entry := l.cache.Set(key, domain.ModelEntry{Theory: theory, ValidatedModel: outcome})
	span.SetAttribute("model.outcome", kind)
	span.SetAttribute("model.generation", int64(entry.Generation)) //nolint:gosec // G115: generations stay far below MaxInt64
	return entry, nil
}
