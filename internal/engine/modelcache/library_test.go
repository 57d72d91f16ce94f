package modelcache_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/elab/internal/adapters/elaborator"
	"go.trai.ch/elab/internal/adapters/telemetry"
	"go.trai.ch/elab/internal/adapters/theory"
	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/elab/internal/core/ports"
	"go.trai.ch/elab/internal/core/ports/mocks"
	"go.trai.ch/elab/internal/engine/modelcache"
	"go.uber.org/mock/gomock"
)

func TestLibrary_Scenario(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.create(t, "A", theory.Empty)
	h.create(t, "B", theory.Empty, object("b1", "y"))

	acc := h.get(t, "A")
	entry := entryOf(t, acc)
	assert.Equal(t, uint64(1), entry.Generation)
	assert.Equal(t, domain.OutcomeValid, entry.ValidatedModel.Kind())
	assert.Equal(t, theory.Empty, entry.Theory.ID)

	// A formal declaration bumps the generation once.
	h.change(t, "A", appendCell(object("a1", "x")))
	entry = entryOf(t, acc)
	assert.Equal(t, uint64(2), entry.Generation)
	assert.True(t, entry.ValidatedModel.IsValid())

	// Display name edits are ignored.
	h.change(t, "A", func(d *domain.Document) { d.Name = "Renamed" })
	assert.Equal(t, uint64(2), entryOf(t, acc).Generation)

	// Instantiating a valid model materializes it.
	h.change(t, "A", appendCell(instance("a2", "b", "B")))
	entry = entryOf(t, acc)
	assert.Equal(t, uint64(3), entry.Generation)
	require.True(t, entry.ValidatedModel.IsValid(), entry.ValidatedModel.Message())
	assert.Equal(t, []domain.ModelKey{key("A"), key("B")}, h.lib.Keys())

	model, ok := entry.ValidatedModel.Model().(*elaborator.Model)
	require.True(t, ok)
	require.Len(t, model.Objects(), 2)
	assert.Equal(t, "b.y", model.Objects()[1].Name)

	// B now instantiates A, closing a cycle.
	accB := h.get(t, "B")
	h.change(t, "B", appendCell(instance("b2", "a", "A")))
	entryB := entryOf(t, accB)
	assert.Equal(t, uint64(2), entryB.Generation)
	assert.Equal(t, domain.OutcomeIllformed, entryB.ValidatedModel.Kind())
	assert.Equal(t, "dependency local:A is ill-formed: cycle detected: local:B -> local:A -> local:B", entryB.ValidatedModel.Message())

	// Dependents are not recomputed when a dependency changes.
	assert.Equal(t, uint64(3), entryOf(t, acc).Generation)

	// A's next recomputation sees the cycle.
	h.change(t, "A", appendCell(object("a3", "z")))
	entry = entryOf(t, acc)
	assert.Equal(t, uint64(4), entry.Generation)
	assert.Equal(t, domain.OutcomeIllformed, entry.ValidatedModel.Kind())
	assert.Equal(t, "dependency local:B is ill-formed: cycle detected: local:A -> local:B -> local:A", entry.ValidatedModel.Message())
}

func TestLibrary_IrrelevantEdits(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.create(t, "A", theory.Empty, object("c1", "x"), text("c2", "notes"))
	acc := h.get(t, "A")

	h.change(t, "A", func(d *domain.Document) { d.Name = "Other" })
	h.change(t, "A", func(d *domain.Document) {
		c := d.Notebook.CellContents["c2"]
		c.Text = "more notes"
		d.Notebook.CellContents["c2"] = c
	})

	assert.Equal(t, uint64(1), entryOf(t, acc).Generation)
}

func TestLibrary_FormalEdits(t *testing.T) {
	t.Parallel()

	edits := []struct {
		name string
		edit func(d *domain.Document)
	}{
		{"theory changed", func(d *domain.Document) { d.Theory = theory.SimpleOlog }},
		{"formal cell added", appendCell(object("c3", "y"))},
		{"formal cell removed", func(d *domain.Document) { d.RemoveCell("c1") }},
		{"formal cell mutated", func(d *domain.Document) {
			c := d.Notebook.CellContents["c1"]
			j := *c.Formal
			j.Type = "Object"
			c.Formal = &j
			d.Notebook.CellContents["c1"] = c
		}},
		{"formal declaration renamed", func(d *domain.Document) {
			c := d.Notebook.CellContents["c1"]
			j := *c.Formal
			j.Name = "renamed"
			c.Formal = &j
			d.Notebook.CellContents["c1"] = c
		}},
		{"formal cell turned into rich text", func(d *domain.Document) {
			d.Notebook.CellContents["c1"] = text("c1", "x")
		}},
		{"cells reordered", func(d *domain.Document) {
			d.Notebook.CellOrder[0], d.Notebook.CellOrder[1] = d.Notebook.CellOrder[1], d.Notebook.CellOrder[0]
		}},
	}

	for _, tt := range edits {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness(t)
			h.create(t, "A", theory.Empty, object("c1", "x"), text("c2", "notes"))
			acc := h.get(t, "A")

			h.change(t, "A", tt.edit)
			assert.Equal(t, uint64(2), entryOf(t, acc).Generation)
		})
	}
}

func TestLibrary_SelfReference(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.create(t, "A", theory.Empty, instance("c1", "self", "A"))

	entry := entryOf(t, h.get(t, "A"))
	assert.Equal(t, domain.OutcomeIllformed, entry.ValidatedModel.Kind())
	assert.Equal(t, "dependency local:A is ill-formed: cycle detected", entry.ValidatedModel.Message())
	assert.Equal(t, 1, h.repo.ListenerCount(key("A")))
}

func TestLibrary_TransitiveCycle(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.create(t, "A", theory.Empty, instance("c1", "b", "B"))
	h.create(t, "B", theory.Empty, instance("c1", "c", "C"))
	h.create(t, "C", theory.Empty, instance("c1", "a", "A"))

	entry := entryOf(t, h.get(t, "A"))
	assert.Equal(t, domain.OutcomeIllformed, entry.ValidatedModel.Kind())
	assert.Equal(t,
		"dependency local:B is ill-formed: dependency local:C is ill-formed: dependency local:A is ill-formed: cycle detected",
		entry.ValidatedModel.Message(),
	)

	for _, id := range []string{"A", "B", "C"} {
		assert.Equal(t, 1, h.repo.ListenerCount(key(id)), id)
		assert.Equal(t, domain.OutcomeIllformed, entryOf(t, h.get(t, id)).ValidatedModel.Kind(), id)
	}
}

func TestLibrary_IllformedDependency(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.create(t, "A", theory.Empty, instance("c1", "b", "B"))
	h.create(t, "B", theory.Empty, domain.Cell{
		ID: "c1", Tag: domain.CellFormal,
		Formal: &domain.Judgment{Kind: domain.JudgmentObject, Name: "x", Type: "Nope"},
	})

	entry := entryOf(t, h.get(t, "A"))
	assert.Equal(t, domain.OutcomeIllformed, entry.ValidatedModel.Kind())
	assert.Contains(t, entry.ValidatedModel.Message(), "dependency local:B is ill-formed: ")
	assert.Contains(t, entry.ValidatedModel.Message(), `unknown object type "Nope"`)
}

func TestLibrary_InvalidDependency(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.create(t, "A", theory.SimpleOlog, instance("c1", "b", "B"))
	h.create(t, "B", theory.SimpleOlog, object("c1", "x"), morphism("c2", "f", "x", "missing"))

	entryB := entryOf(t, h.get(t, "B"))
	require.Equal(t, domain.OutcomeInvalid, entryB.ValidatedModel.Kind())

	entry := entryOf(t, h.get(t, "A"))
	assert.Equal(t, domain.OutcomeIllformed, entry.ValidatedModel.Kind())
	assert.Equal(t,
		`dependency local:B is ill-formed: model is invalid: c2: codomain of morphism "f": "missing" is not a declared object`,
		entry.ValidatedModel.Message(),
	)
}

func TestLibrary_FirstFailingDependencyWins(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.create(t, "A", theory.Empty, instance("c1", "c", "C"), instance("c2", "b", "B"))
	h.create(t, "B", theory.Empty, instance("c1", "self", "B"))
	h.create(t, "C", theory.Empty, instance("c1", "missing", "Zz"))

	entry := entryOf(t, h.get(t, "A"))
	assert.Equal(t, "dependency local:C is ill-formed: dependency local:Zz could not be resolved: no such document: document not found",
		entry.ValidatedModel.Message())
}

func TestLibrary_MissingDependency(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.create(t, "A", theory.Empty, instance("c1", "z", "Zz"))

	entry := entryOf(t, h.get(t, "A"))
	assert.Equal(t, domain.OutcomeIllformed, entry.ValidatedModel.Kind())
	assert.Contains(t, entry.ValidatedModel.Message(), "dependency local:Zz could not be resolved")

	// The dependency resolves once it exists and A changes.
	h.create(t, "Zz", theory.Empty)
	h.change(t, "A", appendCell(object("c2", "x")))
	entry = entryOf(t, h.get(t, "A"))
	assert.True(t, entry.ValidatedModel.IsValid(), entry.ValidatedModel.Message())
	assert.Equal(t, uint64(2), entry.Generation)
}

func TestLibrary_MalformedReferenceInContent(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.create(t, "A", theory.Empty, instance("c1", "b", "not base58!"))

	entry := entryOf(t, h.get(t, "A"))
	assert.Equal(t, domain.OutcomeIllformed, entry.ValidatedModel.Kind())
	assert.Contains(t, entry.ValidatedModel.Message(), `invalid model reference "not base58!"`)
}

func TestLibrary_EmptyInstantiationIsSkipped(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.create(t, "A", theory.Empty, instance("c1", "pending", ""))

	assert.True(t, entryOf(t, h.get(t, "A")).ValidatedModel.IsValid())
}

func TestLibrary_EquivalentReferencesShareOneEntry(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.create(t, "A", theory.Empty, instance("c1", "b", "B"), instance("c2", "b2", "local:B"), instance("c3", "c", "C"))
	h.create(t, "B", theory.Empty, object("c1", "x"))
	h.create(t, "C", theory.Empty)

	entry := entryOf(t, h.get(t, "A"))
	require.True(t, entry.ValidatedModel.IsValid(), entry.ValidatedModel.Message())
	assert.Equal(t, 1, h.repo.ListenerCount(key("B")))
	assert.Equal(t, 1, h.repo.ListenerCount(key("C")))
	assert.Len(t, h.lib.Keys(), 3)
}

func TestLibrary_Idempotent(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.create(t, "A", theory.Empty)

	first := entryOf(t, h.get(t, "A"))
	second := entryOf(t, h.get(t, "local:A"))
	assert.Equal(t, first.Generation, second.Generation)
	assert.Equal(t, 1, h.repo.ListenerCount(key("A")))

	h.change(t, "A", appendCell(object("c1", "x")))
	assert.Equal(t, uint64(2), entryOf(t, h.get(t, "A")).Generation)
}

func TestLibrary_Destroy(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.create(t, "A", theory.Empty, instance("c1", "b", "B"))
	h.create(t, "B", theory.Empty)

	acc := h.get(t, "A")
	var notified int
	acc.Subscribe(func(domain.ModelEntry) { notified++ })

	h.change(t, "B", appendCell(object("c1", "y")))
	h.change(t, "A", appendCell(object("c3", "z")))
	notified = 0
	assert.Equal(t, 2, modelcache.GateCount(h.lib))

	h.lib.Destroy()
	h.lib.Destroy()

	assert.Zero(t, modelcache.GateCount(h.lib))
	assert.Equal(t, 0, h.repo.ListenerCount(key("A")))
	assert.Equal(t, 0, h.repo.ListenerCount(key("B")))

	h.change(t, "A", appendCell(object("c2", "x")))
	_, ok := acc.Get()
	assert.False(t, ok)
	assert.Zero(t, notified)
	assert.Empty(t, h.lib.Keys())

	_, err := h.lib.GetElaboratedModel(context.Background(), "A")
	assert.ErrorIs(t, err, domain.ErrLibraryDestroyed)
}

func TestLibrary_UnknownTheory(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.create(t, "A", "no-such-theory")

	_, err := h.lib.GetElaboratedModel(context.Background(), "A")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownTheory)
	assert.Empty(t, h.lib.Keys())
	assert.Equal(t, 0, h.repo.ListenerCount(key("A")))
}

func TestLibrary_DependencyWithUnknownTheory(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.create(t, "A", theory.Empty, instance("c1", "b", "B"))
	h.create(t, "B", "no-such-theory")

	_, err := h.lib.GetElaboratedModel(context.Background(), "A")
	assert.ErrorIs(t, err, domain.ErrUnknownTheory)
	assert.Equal(t, 0, h.repo.ListenerCount(key("A")))
	assert.Equal(t, 0, h.repo.ListenerCount(key("B")))
}

func TestLibrary_MalformedReference(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	_, err := h.lib.GetElaboratedModel(context.Background(), "local:")
	assert.ErrorIs(t, err, domain.ErrInvalidReference)

	_, err = h.lib.GetLiveModel(context.Background(), "0OIl")
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}

func TestLibrary_MissingDocument(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	_, err := h.lib.GetElaboratedModel(context.Background(), "A")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestLibrary_RefreshErrorKeepsEntry(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.create(t, "A", theory.Empty)
	acc := h.get(t, "A")

	h.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrUnknownTheory)
		assert.Contains(t, err.Error(), "failed to recompute model")
	})

	h.change(t, "A", func(d *domain.Document) { d.Theory = "no-such-theory" })

	entry := entryOf(t, acc)
	assert.Equal(t, uint64(1), entry.Generation)
	assert.Equal(t, theory.Empty, entry.Theory.ID)
}

func TestLibrary_ObserversSeeNewEntry(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.create(t, "A", theory.Empty)
	acc := h.get(t, "A")

	var seen []uint64
	unsubscribe := acc.Subscribe(func(e domain.ModelEntry) {
		seen = append(seen, e.Generation)
		// The accessor already reflects the entry being delivered.
		current, ok := acc.Get()
		assert.True(t, ok)
		assert.Equal(t, e.Generation, current.Generation)
	})

	h.change(t, "A", appendCell(object("c1", "x")))
	h.change(t, "A", appendCell(object("c2", "y")))
	unsubscribe()
	h.change(t, "A", appendCell(object("c3", "z")))

	assert.Equal(t, []uint64{2, 3}, seen)
	assert.Equal(t, uint64(4), entryOf(t, acc).Generation)
}

func TestLibrary_GetLiveModel(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.create(t, "A", theory.SimpleOlog, object("c1", "x"))

	live, err := h.lib.GetLiveModel(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, key("A"), live.Key())
	assert.Equal(t, "Model A", live.Document().Name)
	assert.Equal(t, theory.SimpleOlog, live.Theory().ID)
	assert.Equal(t, key("A"), live.Handle().Key())

	outcome, ok := live.ValidatedModel()
	require.True(t, ok)
	assert.True(t, outcome.IsValid())

	var got []uint64
	live.Subscribe(func(e domain.ModelEntry) { got = append(got, e.Generation) })
	h.change(t, "A", appendCell(object("c2", "y")))
	assert.Equal(t, []uint64{2}, got)
	assert.Len(t, live.Document().Notebook.CellOrder, 2)

	entry, ok := live.Entry()
	require.True(t, ok)
	assert.Equal(t, uint64(2), entry.Generation)

	// Same entry as the elaborated model view.
	assert.Equal(t, entry, entryOf(t, h.get(t, "A")))
}

func TestLibrary_ElaboratorFailureIsIllformed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	elab := mocks.NewMockElaborator(ctrl)
	elab.EXPECT().Elaborate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("boom"))

	h := newHarness(t, withElaborator(elab))
	h.create(t, "A", theory.Empty, object("c1", "x"))

	entry := entryOf(t, h.get(t, "A"))
	assert.Equal(t, domain.OutcomeIllformed, entry.ValidatedModel.Kind())
	assert.Equal(t, "boom", entry.ValidatedModel.Message())
	assert.NotNil(t, entry.Theory)
}

func TestLibrary_ElaboratorPanicIsIllformed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	elab := mocks.NewMockElaborator(ctrl)
	impl := elaborator.New()
	gomock.InOrder(
		elab.EXPECT().Elaborate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, []domain.Cell, map[string]domain.Model, *domain.Theory) (domain.Model, error) {
				panic("index out of range")
			}),
		// The refresh path recovers too and keeps processing later changes.
		elab.EXPECT().Elaborate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, []domain.Cell, map[string]domain.Model, *domain.Theory) (domain.Model, error) {
				panic("still broken")
			}),
		elab.EXPECT().Elaborate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(impl.Elaborate),
	)

	h := newHarness(t, withElaborator(elab))
	h.create(t, "A", theory.Empty, object("c1", "x"))

	acc := h.get(t, "A")
	entry := entryOf(t, acc)
	assert.Equal(t, domain.OutcomeIllformed, entry.ValidatedModel.Kind())
	assert.Equal(t, "elaboration panicked: index out of range", entry.ValidatedModel.Message())

	h.change(t, "A", appendCell(object("c2", "y")))
	entry = entryOf(t, acc)
	assert.Equal(t, uint64(2), entry.Generation)
	assert.Equal(t, "elaboration panicked: still broken", entry.ValidatedModel.Message())

	h.change(t, "A", appendCell(object("c3", "z")))
	entry = entryOf(t, acc)
	assert.Equal(t, uint64(3), entry.Generation)
	assert.True(t, entry.ValidatedModel.IsValid())
}

// cancelingSource cancels the caller's context when a given key is fetched.
type cancelingSource struct {
	ports.DocumentSource

	mu       sync.Mutex
	cancelOn domain.ModelKey
	cancel   context.CancelFunc
}

func (s *cancelingSource) Fetch(ctx context.Context, k domain.ModelKey) (ports.DocumentHandle, error) {
	s.mu.Lock()
	hit := k == s.cancelOn
	s.mu.Unlock()
	if hit {
		s.cancel()
		return nil, ctx.Err()
	}
	return s.DocumentSource.Fetch(ctx, k)
}

func (s *cancelingSource) disarm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelOn = domain.ModelKey{}
}

func TestLibrary_CanceledFetchIsNotCached(t *testing.T) {
	t.Parallel()

	src := &cancelingSource{}
	h := newHarness(t, withSource(src))
	src.DocumentSource = h.repo
	h.create(t, "A", theory.Empty, instance("c1", "b", "B"))
	h.create(t, "B", theory.Empty, object("c1", "y"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	src.cancelOn, src.cancel = key("B"), cancel

	_, err := h.lib.GetElaboratedModel(ctx, "A")
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, h.lib.Keys())
	assert.Equal(t, 0, h.repo.ListenerCount(key("A")))

	src.disarm()
	entry := entryOf(t, h.get(t, "A"))
	assert.Equal(t, uint64(1), entry.Generation)
	assert.True(t, entry.ValidatedModel.IsValid(), entry.ValidatedModel.Message())
	assert.Equal(t, 1, h.repo.ListenerCount(key("A")))
}

func TestLibrary_CanceledElaborationIsNotCached(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl := gomock.NewController(t)
	elab := mocks.NewMockElaborator(ctrl)
	impl := elaborator.New()
	gomock.InOrder(
		elab.EXPECT().Elaborate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, cells []domain.Cell, deps map[string]domain.Model, th *domain.Theory) (domain.Model, error) {
				cancel()
				return impl.Elaborate(ctx, cells, deps, th)
			}),
		elab.EXPECT().Elaborate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(impl.Elaborate),
	)

	h := newHarness(t, withElaborator(elab))
	h.create(t, "A", theory.Empty, object("c1", "x"))

	_, err := h.lib.GetElaboratedModel(ctx, "A")
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, h.lib.Keys())

	entry := entryOf(t, h.get(t, "A"))
	assert.Equal(t, uint64(1), entry.Generation)
	assert.True(t, entry.ValidatedModel.IsValid())
}

func TestLibrary_ElaboratorReceivesFormalCellsAndDependencies(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	elab := mocks.NewMockElaborator(ctrl)
	impl := elaborator.New()

	h := newHarness(t, withElaborator(elab))
	h.create(t, "A", theory.Empty, text("c0", "intro"), object("c1", "x"), instance("c2", "b", "B"))
	h.create(t, "B", theory.Empty)

	gomock.InOrder(
		elab.EXPECT().Elaborate(gomock.Any(), gomock.Len(0), gomock.Len(0), gomock.Any()).
			DoAndReturn(impl.Elaborate),
		elab.EXPECT().Elaborate(gomock.Any(), gomock.Len(2), gomock.Len(1), gomock.Any()).
			DoAndReturn(func(ctx context.Context, cells []domain.Cell, deps map[string]domain.Model, th *domain.Theory) (domain.Model, error) {
				assert.Equal(t, domain.CellID("c1"), cells[0].ID)
				assert.Contains(t, deps, "B")
				return impl.Elaborate(ctx, cells, deps, th)
			}),
	)

	assert.True(t, entryOf(t, h.get(t, "A")).ValidatedModel.IsValid())
}

func TestLibrary_SourceErrorsOnFetch(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	source := mocks.NewMockDocumentSource(ctrl)
	source.EXPECT().Fetch(gomock.Any(), key("A")).Return(nil, errors.New("offline"))

	h := newHarness(t, withSource(source))
	_, err := h.lib.GetElaboratedModel(context.Background(), "A")
	assert.EqualError(t, err, "offline")
}

func TestLibrary_ConcurrentChanges(t *testing.T) {
	t.Parallel()

	const writers = 16

	h := newHarness(t)
	h.create(t, "A", theory.Empty)
	acc := h.get(t, "A")

	var wg sync.WaitGroup
	for i := range writers {
		wg.Go(func() {
			cell := object(fmt.Sprintf("c%d", i), fmt.Sprintf("x%d", i))
			assert.NoError(t, h.repo.Change(key("A"), appendCell(cell)))
		})
	}
	wg.Wait()

	entry := entryOf(t, acc)
	assert.GreaterOrEqual(t, entry.Generation, uint64(2))
	assert.LessOrEqual(t, entry.Generation, uint64(writers+1))

	model, ok := entry.ValidatedModel.Model().(*elaborator.Model)
	require.True(t, ok)
	assert.Len(t, model.Objects(), writers)
}

func TestLibrary_Telemetry(t *testing.T) {
	t.Parallel()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	mp, reader := telemetry.NewMeterProvider()
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	metrics, err := telemetry.NewMetrics(mp.Meter("test"))
	require.NoError(t, err)

	h := newHarness(t, withTelemetry(telemetry.NewOTelTracerWithProvider(tp, "test"), metrics))
	h.create(t, "A", theory.Empty, instance("c1", "b", "B"))
	h.create(t, "B", theory.Empty, instance("c1", "missing", "Zz"))

	h.get(t, "A")
	h.change(t, "A", func(d *domain.Document) { d.Name = "ignored" })

	spans := sr.Ended()
	require.Len(t, spans, 2)

	// The dependency's span ends first and is nested in the dependent's.
	assert.Equal(t, telemetry.ElaborateSpanName, spans[0].Name())
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())

	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range spans[1].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "local:A", attrs["model.key"].AsString())
	assert.Equal(t, theory.Empty, attrs["model.theory"].AsString())
	assert.Equal(t, "illformed", attrs["model.outcome"].AsString())
	assert.Equal(t, int64(1), attrs["model.generation"].AsInt64())

	stats, err := telemetry.ReadStats(context.Background(), reader)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Elaborations["illformed"])
	assert.Equal(t, int64(1), stats.Skipped)
}
