package modelcache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/elab/internal/adapters/canonical"
	"go.trai.ch/elab/internal/adapters/elaborator"
	"go.trai.ch/elab/internal/adapters/memdoc"
	"go.trai.ch/elab/internal/adapters/telemetry"
	"go.trai.ch/elab/internal/adapters/theory"
	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/elab/internal/core/ports"
	"go.trai.ch/elab/internal/core/ports/mocks"
	"go.trai.ch/elab/internal/engine/modelcache"
	"go.uber.org/mock/gomock"
)

type harness struct {
	repo     *memdoc.Repo
	theories *theory.Registry
	logger   *mocks.MockLogger
	lib      *modelcache.Library
}

type harnessOption func(*harnessConfig)

type harnessConfig struct {
	source     ports.DocumentSource
	elaborator ports.Elaborator
	tracer     ports.Tracer
	metrics    ports.Metrics
}

func withSource(s ports.DocumentSource) harnessOption {
	return func(c *harnessConfig) { c.source = s }
}

func withElaborator(e ports.Elaborator) harnessOption {
	return func(c *harnessConfig) { c.elaborator = e }
}

func withTelemetry(tr ports.Tracer, m ports.Metrics) harnessOption {
	return func(c *harnessConfig) { c.tracer, c.metrics = tr, m }
}

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()

	repo := memdoc.NewRepo()
	cfg := harnessConfig{
		source:     repo,
		elaborator: elaborator.New(),
		tracer:     telemetry.NewNoOpTracer(),
		metrics:    telemetry.NewNoOpMetrics(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctrl := gomock.NewController(t)
	h := &harness{
		repo:     repo,
		theories: theory.NewRegistry(),
		logger:   mocks.NewMockLogger(ctrl),
	}
	h.lib = modelcache.NewLibrary(cfg.source, canonical.NewLocal(), h.theories, cfg.elaborator, h.logger, cfg.tracer, cfg.metrics)
	t.Cleanup(h.lib.Destroy)
	return h
}

func key(id string) domain.ModelKey {
	return domain.NewModelKey(canonical.LocalPrefix + id)
}

func (h *harness) create(t *testing.T, id, theoryID string, cells ...domain.Cell) {
	t.Helper()
	doc := domain.Document{ID: id, Name: "Model " + id, Theory: theoryID}
	for _, c := range cells {
		doc.AppendCell(c)
	}
	_, err := h.repo.Create(key(id), doc)
	require.NoError(t, err)
}

func (h *harness) change(t *testing.T, id string, fn func(doc *domain.Document)) {
	t.Helper()
	require.NoError(t, h.repo.Change(key(id), fn))
}

func (h *harness) get(t *testing.T, id string) *modelcache.Accessor {
	t.Helper()
	acc, err := h.lib.GetElaboratedModel(context.Background(), id)
	require.NoError(t, err)
	return acc
}

func entryOf(t *testing.T, acc *modelcache.Accessor) domain.ModelEntry {
	t.Helper()
	entry, ok := acc.Get()
	require.True(t, ok, "no entry for %s", acc.Key())
	return entry
}

func object(id, name string) domain.Cell {
	return domain.Cell{ID: domain.CellID(id), Tag: domain.CellFormal, Formal: &domain.Judgment{Kind: domain.JudgmentObject, Name: name}}
}

func morphism(id, name, dom, cod string) domain.Cell {
	return domain.Cell{ID: domain.CellID(id), Tag: domain.CellFormal, Formal: &domain.Judgment{Kind: domain.JudgmentMorphism, Name: name, Dom: dom, Cod: cod}}
}

func instance(id, name, ref string) domain.Cell {
	return domain.Cell{ID: domain.CellID(id), Tag: domain.CellFormal, Formal: &domain.Judgment{Kind: domain.JudgmentInstantiation, Name: name, Model: ref}}
}

func text(id, body string) domain.Cell {
	return domain.Cell{ID: domain.CellID(id), Tag: domain.CellRichText, Text: body}
}

func appendCell(c domain.Cell) func(*domain.Document) {
	return func(d *domain.Document) { d.AppendCell(c) }
}
