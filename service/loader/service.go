// Package loader reads process lists. Plain text inputs hold one
// comma-delimited record per line; .yaml, .yml and .json inputs hold a list
// of process documents.
package loader

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/schedsim/internal/yml"
	"github.com/viant/schedsim/model"
	"gopkg.in/yaml.v3"
)

// ErrMalformedRecord is returned for input that cannot be decoded into
// process records.
var ErrMalformedRecord = errors.New("loader: malformed record")

// Service loads process lists through afs, so any afs URL (file, mem,
// embed, cloud storage) can serve as input.
type Service struct {
	fs      afs.Service
	options []storage.Option
}

// New creates a loader. A nil fs defaults to afs.New(); options are passed
// to every download, for example an embed.FS for embed:// URLs.
func New(fs afs.Service, options ...storage.Option) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs, options: options}
}

// Load downloads and decodes URL.
func (s *Service) Load(ctx context.Context, URL string) ([]*model.Process, error) {
	data, err := s.fs.DownloadWithURL(ctx, URL, s.options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load processes from %s: %w", URL, err)
	}
	var processes []*model.Process
	switch strings.ToLower(path.Ext(URL)) {
	case ".yaml", ".yml", ".json":
		processes, err = Decode(data)
	default:
		processes, err = Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", URL, err)
	}
	return processes, nil
}

// Decode reads a YAML or JSON list of processes, either top-level or under a
// "processes" key.
func Decode(data []byte) ([]*model.Process, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	root := yml.Root(&doc)
	if root == nil {
		return nil, nil
	}
	list := root
	if root.Kind == yaml.MappingNode {
		list = root.Lookup("processes")
	}
	if !list.IsSequence() {
		return nil, fmt.Errorf("%w: expected a list of processes at line %d", ErrMalformedRecord, root.Line)
	}
	var processes []*model.Process
	if err := list.Decode(&processes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	for i, p := range processes {
		if p == nil || p.Name == "" {
			return nil, fmt.Errorf("%w: process %d has no name", ErrMalformedRecord, i)
		}
	}
	return processes, nil
}
