package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/option"
	"github.com/viant/afs/url"
	"github.com/viant/schedsim/internal/logger"
	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/service/dao"
	"github.com/viant/schedsim/service/dao/criteria"
	"github.com/viant/schedsim/service/dao/run"
)

// Service stores run reports as JSON documents under a base URL.
type Service struct {
	baseURL string
	fs      afs.Service
	logger  *slog.Logger
	mu      sync.RWMutex
}

var _ dao.Service[string, model.Run] = (*Service)(nil)

// Save writes r to <baseURL>/<id>.json.
func (s *Service) Save(ctx context.Context, r *model.Run) error {
	if r == nil {
		return dao.ErrNilEntity
	}
	if r.ID == "" {
		return dao.ErrInvalidID
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	URL := s.runURL(r.ID)
	if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save run to %s: %w", URL, err)
	}
	return nil
}

// Load reads the run with id.
func (s *Service) Load(ctx context.Context, id string) (*model.Run, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	URL := s.runURL(id)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check if run exists: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: run %s", dao.ErrNotFound, id)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read run file: %w", err)
	}
	var ret model.Run
	if err = json.Unmarshal(data, &ret); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run %s: %w", id, err)
	}
	return &ret, nil
}

// Delete removes the run with id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	URL := s.runURL(id)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to check if run exists: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: run %s", dao.ErrNotFound, id)
	}
	if err = s.fs.Delete(ctx, URL); err != nil {
		return fmt.Errorf("failed to delete run file: %w", err)
	}
	return nil
}

// List returns stored runs matching parameters ordered by start time.
// Unreadable documents are logged and skipped.
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*model.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objects, err := s.fs.List(ctx, s.baseURL, option.NewRecursive(true))
	if err != nil {
		return nil, fmt.Errorf("failed to list run files: %w", err)
	}
	var runs []*model.Run
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			s.logger.Warn("skipping unreadable run", "url", object.URL(), logger.ErrAttr(err))
			continue
		}
		var r model.Run
		if err := json.Unmarshal(data, &r); err != nil {
			s.logger.Warn("skipping malformed run", "url", object.URL(), logger.ErrAttr(err))
			continue
		}
		if !criteria.MatchRun(&r, parameters) {
			continue
		}
		runs = append(runs, &r)
	}
	run.Sort(runs)
	return runs, nil
}

func (s *Service) runURL(id string) string {
	return url.Join(s.baseURL, id+".json")
}

// New creates a run store rooted at baseURL, creating the location if
// needed. A nil fs defaults to afs.New(); a nil log discards.
func New(fs afs.Service, baseURL string, log *slog.Logger) (*Service, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	if fs == nil {
		fs = afs.New()
	}
	if log == nil {
		log = logger.Discard()
	}
	baseURL = url.Normalize(baseURL, file.Scheme)
	ctx := context.Background()
	if exists, _ := fs.Exists(ctx, baseURL); !exists {
		if err := fs.Create(ctx, baseURL, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create run store %s: %w", baseURL, err)
		}
	}
	return &Service{baseURL: baseURL, fs: fs, logger: log}, nil
}
