package modelcache

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/elab/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const cycleDetected = "cycle detected"

// dependency is an instantiation reference of a document and what is known
// about the document it refers to.
type dependency struct {
	ref      string
	key      domain.ModelKey
	refErr   error
	handle   ports.DocumentHandle
	fetchErr error
}

// elaborateAndValidate derives the outcome of doc. Problems with the content
// are reported as Illformed or Invalid outcomes; the error return is reserved
// for configuration errors such as an unknown theory.
// l.mu must be held.
func (l *Library) elaborateAndValidate(
	ctx context.Context,
	key domain.ModelKey,
	doc domain.Document,
) (*domain.Theory, domain.ValidationOutcome, error) {
	theory, err := l.theories.Get(ctx, doc.Theory)
	if err != nil {
		return nil, domain.ValidationOutcome{}, err
	}

	if _, busy := l.inProgress[key]; busy {
		return theory, domain.Illformed(cycleDetected), nil
	}
	l.inProgress[key] = struct{}{}
	defer delete(l.inProgress, key)

	models, failure, err := l.resolveDependencies(ctx, key, doc)
	if err != nil {
		return nil, domain.ValidationOutcome{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, domain.ValidationOutcome{}, err
	}
	if failure != "" {
		return theory, domain.Illformed(failure), nil
	}

	outcome, err := l.elaborate(ctx, doc, models, theory)
	if err != nil {
		return nil, domain.ValidationOutcome{}, err
	}
	return theory, outcome, nil
}

// elaborate runs the computation library on doc. Failures and panics of the
// library become Illformed outcomes; a canceled ctx is returned as an error
// so that nothing is cached.
func (l *Library) elaborate(
	ctx context.Context,
	doc domain.Document,
	models map[string]domain.Model,
	theory *domain.Theory,
) (outcome domain.ValidationOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome, err = domain.Illformed(fmt.Sprintf("elaboration panicked: %v", r)), nil
		}
	}()

	model, err := l.elaborator.Elaborate(ctx, doc.Notebook.FormalCells(), models, theory)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return domain.ValidationOutcome{}, ctxErr
	}
	if err != nil {
		return domain.Illformed(err.Error()), nil
	}
	return domain.Classify(model, model.Validate()), nil
}

// resolveDependencies makes sure every document instantiated by doc is
// materialized and returns their models keyed by reference. Dependencies are
// visited in notebook order; the first one that cannot be used ends the pass
// and its failure message is returned.
// l.mu must be held.
func (l *Library) resolveDependencies(
	ctx context.Context,
	key domain.ModelKey,
	doc domain.Document,
) (map[string]domain.Model, string, error) {
	deps := l.scanDependencies(doc)

	edges := make([]domain.ModelKey, 0, len(deps))
	for _, dep := range deps {
		if dep.refErr == nil {
			edges = append(edges, dep.key)
		}
	}
	l.graph.SetDependencies(key, edges)

	l.prefetch(ctx, deps)

	models := make(map[string]domain.Model, len(deps))
	for _, dep := range deps {
		if dep.refErr != nil {
			return nil, fmt.Sprintf("invalid model reference %q: %v", dep.ref, dep.refErr), nil
		}

		model, failure, err := l.resolveDependency(ctx, key, dep)
		if err != nil || failure != "" {
			return nil, failure, err
		}
		models[dep.ref] = model
	}
	return models, "", nil
}

// resolveDependency returns the model of dep, materializing it if needed.
// l.mu must be held.
func (l *Library) resolveDependency(
	ctx context.Context,
	key domain.ModelKey,
	dep *dependency,
) (domain.Model, string, error) {
	if _, busy := l.inProgress[dep.key]; busy {
		return nil, illformedDependency(dep.key, cycleDetected), nil
	}

	if entry, ok := l.cache.Get(dep.key); ok {
		if err := l.graph.FindCycle(key, dep.key); err != nil {
			return nil, illformedDependency(dep.key, cycleMessage(err)), nil
		}
		return modelOf(dep.key, entry)
	}

	if dep.handle == nil && dep.fetchErr == nil {
		dep.handle, dep.fetchErr = l.source.Fetch(ctx, dep.key)
	}
	if isCanceled(dep.fetchErr) {
		return nil, "", dep.fetchErr
	}
	if dep.fetchErr != nil {
		return nil, fmt.Sprintf("dependency %s could not be resolved: %v", dep.key, dep.fetchErr), nil
	}
	if err := l.install(ctx, dep.key, dep.handle); err != nil {
		return nil, "", err
	}

	entry, ok := l.cache.Get(dep.key)
	if !ok {
		return nil, "", zerr.With(zerr.Wrap(domain.ErrEntryMissing, "dependency was not cached"), "model", dep.key.String())
	}
	return modelOf(dep.key, entry)
}

// scanDependencies canonicalizes the instantiation references of doc.
func (l *Library) scanDependencies(doc domain.Document) []*dependency {
	refs := doc.Instantiations()
	deps := make([]*dependency, 0, len(refs))
	for _, ref := range refs {
		key, err := l.canonicalizer.Canonicalize(ref)
		deps = append(deps, &dependency{ref: ref, key: key, refErr: err})
	}
	return deps
}

// prefetch concurrently fetches the handles of all dependencies that are
// neither cached nor being elaborated. Results are stored on the dependency.
// l.mu must be held.
func (l *Library) prefetch(ctx context.Context, deps []*dependency) {
	first := make(map[domain.ModelKey]*dependency)
	var g errgroup.Group
	for _, dep := range deps {
		if dep.refErr != nil || l.cache.Has(dep.key) {
			continue
		}
		if _, busy := l.inProgress[dep.key]; busy {
			continue
		}
		if _, ok := first[dep.key]; ok {
			continue
		}
		first[dep.key] = dep

		g.Go(func() error {
			dep.handle, dep.fetchErr = l.source.Fetch(ctx, dep.key)
			return nil
		})
	}
	_ = g.Wait()

	// Equivalent references share the fetch of the first one.
	for _, dep := range deps {
		if f, ok := first[dep.key]; ok && f != dep {
			dep.handle, dep.fetchErr = f.handle, f.fetchErr
		}
	}
}

func modelOf(key domain.ModelKey, entry domain.ModelEntry) (domain.Model, string, error) {
	outcome := entry.ValidatedModel
	if !outcome.IsValid() {
		return nil, illformedDependency(key, outcome.Message()), nil
	}
	return outcome.Model(), "", nil
}

func illformedDependency(key domain.ModelKey, msg string) string {
	return fmt.Sprintf("dependency %s is ill-formed: %s", key, msg)
}

// cycleMessage renders a cycle error found in the dependency graph.
func cycleMessage(err error) string {
	var zErr *zerr.Error
	if errors.As(err, &zErr) {
		if path, ok := zErr.Metadata()["cycle"].(string); ok {
			return cycleDetected + ": " + path
		}
	}
	return cycleDetected
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
