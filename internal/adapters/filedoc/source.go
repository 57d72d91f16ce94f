// Package filedoc serves model documents from a directory of YAML files.
package filedoc

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"go.trai.ch/elab/internal/adapters/memdoc"
	"go.trai.ch/elab/internal/adapters/watcher"
	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/elab/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

var _ ports.DocumentSource = (*Source)(nil)

// Source is a document source backed by files. Files are indexed by Load
// and read on first Fetch; loaded documents live in a memdoc.Repo so that
// reloading a file notifies the document's listeners with patches.
type Source struct {
	dir    string
	canon  ports.Canonicalizer
	logger ports.Logger
	repo   *memdoc.Repo
	group  singleflight.Group

	mu        sync.RWMutex
	paths     map[domain.ModelKey]string
	keys      map[string]domain.ModelKey
	revisions map[string]uint64

	// afterParse runs between reading a file and storing it in Fetch.
	afterParse func(path string)
}

// NewSource creates a source for the documents in dir.
func NewSource(dir string, canon ports.Canonicalizer, logger ports.Logger) *Source {
	return &Source{
		dir:    dir,
		canon:  canon,
		logger: logger,
		repo:   memdoc.NewRepo(),
		paths:     make(map[domain.ModelKey]string),
		keys:      make(map[string]domain.ModelKey),
		revisions: make(map[string]uint64),
	}
}

// Dir returns the documents directory.
func (s *Source) Dir() string {
	return s.dir
}

// Load indexes every document file below the documents directory.
// Two files with the same canonical key are an error.
func (s *Source) Load(ctx context.Context) error {
	var files []string
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !d.IsDir() && filepath.Ext(path) == domain.DocumentExt {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(domain.ErrNoDocuments, "documents directory does not exist"), "dir", s.dir)
		}
		return zerr.With(zerr.Wrap(err, "failed to scan documents"), "dir", s.dir)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, path := range files {
		key, _, err := s.parse(path)
		if err != nil {
			return err
		}
		if err := s.index(key, path); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns the keys of all indexed documents in canonical order.
func (s *Source) Keys() []domain.ModelKey {
	s.mu.RLock()
	keys := make([]domain.ModelKey, 0, len(s.paths))
	for key := range s.paths {
		keys = append(keys, key)
	}
	s.mu.RUnlock()

	slices.SortFunc(keys, domain.ModelKey.Compare)
	return keys
}

// Path returns the file of the document indexed under key.
func (s *Source) Path(key domain.ModelKey) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	path, ok := s.paths[key]
	return path, ok
}

// Fetch implements ports.DocumentSource. Concurrent fetches of a document
// that is not loaded yet share one read.
func (s *Source) Fetch(ctx context.Context, key domain.ModelKey) (ports.DocumentHandle, error) {
	if h, ok := s.repo.Handle(key); ok {
		return h, nil
	}

	v, err, _ := s.group.Do(key.String(), func() (any, error) {
		if h, ok := s.repo.Handle(key); ok {
			return h, nil
		}
		path, ok := s.Path(key)
		if !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrDocumentNotFound, "no document file"), "model", key.String())
		}
		// A Reload that starts before the document is stored skips it, so
		// the file is read again until no Reload overlapped the read.
		for {
			rev := s.revision(path)
			parsed, doc, err := s.parse(path)
			if err != nil {
				return nil, err
			}
			if parsed != key {
				return nil, zerr.With(zerr.Wrap(domain.ErrDocumentNotFound, "document id changed on disk"), "model", key.String())
			}
			if s.afterParse != nil {
				s.afterParse(path)
			}
			s.repo.Replace(key, doc)
			if s.revision(path) == rev {
				break
			}
		}
		return s.repo.Fetch(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	return v.(ports.DocumentHandle), nil //nolint:forcetypeassert // only handles are stored
}

// Watch reloads changed document files until ctx is canceled. Events are
// coalesced over window before reloading.
func (s *Source) Watch(ctx context.Context, w ports.Watcher, window time.Duration) error {
	if err := w.Start(ctx, s.dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to watch documents"), "dir", s.dir)
	}
	defer func() { _ = w.Stop() }()

	debouncer := watcher.NewDebouncer(window, s.Reload)
	defer debouncer.Stop()

	for event := range w.Events() {
		if filepath.Ext(event.Path) != domain.DocumentExt {
			continue
		}
		debouncer.Add(event.Path)
	}
	return nil
}

// Reload re-reads the given files. Loaded documents are replaced in place,
// which notifies their listeners; other files are only re-indexed. Files
// that fail to parse keep their last content and are reported to the logger.
func (s *Source) Reload(paths []string) {
	for _, path := range paths {
		s.mu.Lock()
		s.revisions[path]++
		s.mu.Unlock()

		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			s.forget(path)
			continue
		}

		key, doc, err := s.parse(path)
		if err != nil {
			s.logger.Error(zerr.Wrap(err, "failed to reload document"))
			continue
		}

		s.mu.Lock()
		if old, ok := s.keys[path]; ok && old != key {
			s.logger.Warn("document " + path + " changed its id from " + old.String() + " to " + key.String())
			delete(s.paths, old)
			delete(s.keys, path)
		}
		err = s.index(key, path)
		s.mu.Unlock()
		if err != nil {
			s.logger.Error(err)
			continue
		}

		if _, loaded := s.repo.Handle(key); loaded {
			s.repo.Replace(key, doc)
		}
	}
}

func (s *Source) revision(path string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revisions[path]
}

// forget drops a deleted file from the index. A loaded document keeps its
// last content.
func (s *Source) forget(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.keys[path]
	if !ok {
		return
	}
	delete(s.keys, path)
	delete(s.paths, key)
	s.logger.Warn("document " + key.String() + " was removed from disk")
}

func (s *Source) parse(path string) (domain.ModelKey, domain.Document, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return domain.ModelKey{}, domain.Document{}, err
	}
	key, err := s.canon.Canonicalize(doc.ID)
	if err != nil {
		return domain.ModelKey{}, domain.Document{}, zerr.With(err, "path", path)
	}
	return key, doc, nil
}

// index records path under key. s.mu must be held.
func (s *Source) index(key domain.ModelKey, path string) error {
	if existing, ok := s.paths[key]; ok && existing != path {
		err := zerr.With(zerr.Wrap(domain.ErrDuplicateDocument, "two files share a document id"), "model", key.String())
		return zerr.With(zerr.With(err, "path", path), "other", existing)
	}
	s.paths[key] = path
	s.keys[path] = key
	return nil
}
