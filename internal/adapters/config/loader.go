// Package config provides the workspace configuration loader for elab.
package config

import (
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/elab/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds the workspace file at or above cwd and resolves it.
func (l *Loader) Load(cwd string) (*domain.Workspace, error) {
	root, err := l.DiscoverRoot(cwd)
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(root, domain.WorkspaceFileName)
	var workfile Workfile
	if err := readAndUnmarshalYAML(configPath, &workfile); err != nil {
		return nil, err
	}

	if workfile.Version != "" && workfile.Version != "1" {
		l.Logger.Warn("unknown " + domain.WorkspaceFileName + " version " + workfile.Version + ", reading it as version 1")
	}

	return resolveWorkspace(root, &workfile)
}

// DiscoverRoot walks up from cwd to the directory containing elab.yaml.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	currentDir := cwd
	for {
		if _, err := os.Stat(filepath.Join(currentDir, domain.WorkspaceFileName)); err == nil {
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}
	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "no workspace file at or above the working directory"), "cwd", cwd)
}

func resolveWorkspace(root string, workfile *Workfile) (*domain.Workspace, error) {
	ws := &domain.Workspace{
		Root:         root,
		DocumentsDir: resolvePath(root, workfile.Documents, domain.DefaultDocumentsDir),
		References:   domain.ReferenceStrategy(workfile.References),
		Debounce:     domain.DefaultDebounce,
	}

	switch ws.References {
	case "":
		ws.References = domain.ReferenceUUID
	case domain.ReferenceUUID, domain.ReferenceLocal:
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidReferenceStrategy, "unknown reference strategy"), "references", workfile.References)
	}

	if workfile.Theories != "" {
		ws.TheoriesFile = resolvePath(root, workfile.Theories, "")
	}

	if workfile.Debounce != "" {
		d, err := time.ParseDuration(workfile.Debounce)
		if err != nil || d < 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "invalid debounce duration"), "debounce", workfile.Debounce)
		}
		ws.Debounce = d
	}

	return ws, nil
}

func resolvePath(root, path, fallback string) string {
	if path == "" {
		path = fallback
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is built from the discovered workspace root
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", configPath)
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, parseErr.Error()), "path", configPath)
	}

	return nil
}
