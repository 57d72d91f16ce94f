package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/elab/internal/adapters/config"
	"go.trai.ch/elab/internal/adapters/elaborator"
	"go.trai.ch/elab/internal/adapters/telemetry"
	"go.trai.ch/elab/internal/adapters/theory"
	"go.trai.ch/elab/internal/app"
	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/elab/internal/core/ports"
	"go.trai.ch/elab/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newApp(loader ports.ConfigLoader, log ports.Logger) *app.App {
	return app.New(
		loader,
		theory.NewRegistry(),
		elaborator.New(),
		log,
		telemetry.NewNoOpTracer(),
		telemetry.NewNoOpMetrics(),
	).WithOutput(io.Discard, io.Discard)
}

func providerFor(a *app.App, log ports.Logger) ComponentProvider {
	return func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: a, Logger: log}, func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	application := newApp(mocks.NewMockConfigLoader(ctrl), mockLogger)

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, providerFor(application, mockLogger))
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the error and returns 1 when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockLoader.EXPECT().Load(".").Return(nil, errors.New("load failed"))
	mockLogger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.Contains(t, err.Error(), "load failed")
	})

	exitCode := run(context.Background(), []string{"check"}, io.Discard, providerFor(newApp(mockLoader, mockLogger), mockLogger))
	assert.Equal(t, 1, exitCode)
}

// TestRun_InvalidModels verifies that invalid models fail the run without logging.
func TestRun_InvalidModels(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	root := t.TempDir()
	models := filepath.Join(root, domain.DefaultDocumentsDir)
	require.NoError(t, os.MkdirAll(models, domain.DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.WorkspaceFileName), []byte("references: local\n"), domain.FilePerm))
	require.NoError(t, os.WriteFile(filepath.Join(models, "A.yaml"), []byte(
		"theory: simple-olog\ncells:\n  - id: f\n    kind: morphism\n    name: f\n    dom: X\n    cod: Y\n"), domain.FilePerm))

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	application := newApp(config.NewLoader(mockLogger), mockLogger)

	exitCode := run(context.Background(), []string{"check", "-C", root}, io.Discard, providerFor(application, mockLogger))
	assert.Equal(t, 1, exitCode)
}

// TestRun_Signal verifies that the context is canceled on signal.
func TestRun_Signal(t *testing.T) {
	ctrl := gomock.NewController(t)

	// We need a loader that blocks until the context is done.
	blockCh := make(chan struct{})

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(gomock.Any()).DoAndReturn(func(_ string) (*domain.Workspace, error) {
		select {
		case <-blockCh:
			return nil, context.Canceled
		case <-time.After(5 * time.Second):
			return nil, errors.New("timeout in mock")
		}
	})

	mockLogger := mocks.NewMockLogger(ctrl)
	// Allow logging of the error when context is canceled
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	application := newApp(mockLoader, mockLogger)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan int)

	go func() {
		errCh <- run(ctx, []string{"watch", "--ci"}, io.Discard, providerFor(application, mockLogger))
	}()

	// Wait a bit to ensure run() reaches Load()
	time.Sleep(100 * time.Millisecond)

	cancel()
	close(blockCh)

	select {
	case ret := <-errCh:
		assert.NotEqual(t, 0, ret)
	case <-time.After(2 * time.Second):
		t.Fatal("TestRun_Signal timed out waiting for run() to return")
	}
}
