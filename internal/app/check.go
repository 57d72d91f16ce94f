package app

import (
	"context"
	"fmt"

	"go.trai.ch/elab/internal/adapters/linear"
	"go.trai.ch/elab/internal/adapters/telemetry"
	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/elab/internal/core/ports"
	"go.trai.ch/zerr"
)

// CheckOptions configures Check.
type CheckOptions struct {
	// Dir is the directory the workspace is searched from.
	Dir string
	// Refs are the models to check; all documents when empty.
	Refs []string
	// Stats logs elaboration metrics after the check.
	Stats bool
}

// Check elaborates and validates the requested models once and prints
// their outcomes. It fails with ErrModelsNotValid when any outcome is not
// Valid.
func (a *App) Check(ctx context.Context, opts CheckOptions) error {
	s, err := a.open(ctx, opts.Dir)
	if err != nil {
		return err
	}
	refs, err := s.references(opts.Refs)
	if err != nil {
		return err
	}

	metrics := a.metrics
	var stats func() (telemetry.Stats, error)
	if opts.Stats {
		mp, reader := telemetry.NewMeterProvider()
		defer func() { _ = mp.Shutdown(context.WithoutCancel(ctx)) }()
		m, err := telemetry.NewMetrics(mp.Meter(telemetry.InstrumentationName))
		if err != nil {
			return err
		}
		metrics = m
		stats = func() (telemetry.Stats, error) { return telemetry.ReadStats(ctx, reader) }
	}

	lib := a.newLibrary(s, a.tracer, metrics)
	defer lib.Destroy()

	renderer := linear.NewRenderer(a.stdout, a.stderr)
	if err := renderer.Start(ctx); err != nil {
		return err
	}
	defer func() {
		_ = renderer.Stop()
		_ = renderer.Wait()
	}()

	failed := 0
	for _, ref := range refs {
		live, err := lib.GetLiveModel(ctx, ref)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to elaborate model"), "model", ref)
		}
		entry, ok := live.Entry()
		if !ok {
			return zerr.With(zerr.Wrap(domain.ErrEntryMissing, "model has no cache entry"), "model", ref)
		}
		renderer.OnModelUpdate(ports.ModelUpdate{Key: live.Key(), Name: live.Document().Name, Entry: entry})
		if !entry.ValidatedModel.IsValid() {
			failed++
		}
	}

	if stats != nil {
		st, err := stats()
		if err != nil {
			return zerr.Wrap(err, "failed to read metrics")
		}
		a.logger.Info(fmt.Sprintf("%d elaboration(s): %d valid, %d invalid, %d ill-formed",
			st.Total(),
			st.Elaborations[domain.OutcomeValid.String()],
			st.Elaborations[domain.OutcomeInvalid.String()],
			st.Elaborations[domain.OutcomeIllformed.String()]))
	}

	if failed > 0 {
		return zerr.With(zerr.Wrap(domain.ErrModelsNotValid, fmt.Sprintf("%d of %d model(s) are not valid", failed, len(refs))), "failed", failed)
	}
	return nil
}
