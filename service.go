package schedsim

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/schedsim/internal/logger"
	"github.com/viant/schedsim/metrics"
	rfs "github.com/viant/schedsim/service/dao/run/fs"
	rmemory "github.com/viant/schedsim/service/dao/run/memory"
	"github.com/viant/schedsim/service/loader"
	"github.com/viant/schedsim/tracing"
)

// Service assembles a simulator runtime from configuration and options.
type Service struct {
	runtime    *Runtime
	config     *Config
	fs         afs.Service
	fsOptions  []storage.Option
	logger     *slog.Logger
	registry   *prometheus.Registry
	tracingErr error
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	if s.tracingErr != nil {
		return fmt.Errorf("failed to initialise tracing: %w", s.tracingErr)
	}
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	if err := s.ensureBaseSetup(); err != nil {
		return err
	}
	s.runtime.config = s.config
	s.runtime.fs = s.fs
	s.runtime.logger = s.logger
	s.runtime.loader = loader.New(s.fs, s.fsOptions...)
	return nil
}

func (s *Service) ensureBaseSetup() error {
	var err error
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.logger == nil {
		if s.logger, err = logger.Build(s.config.Log.Level, s.config.Log.Format, os.Stderr); err != nil {
			return err
		}
	}
	if s.config.Tracing.Enabled {
		if err = tracing.Init(s.config.Tracing.Service, s.config.Tracing.Version, s.config.Tracing.Output); err != nil {
			return fmt.Errorf("failed to initialise tracing: %w", err)
		}
	}
	if s.runtime.metrics, err = metrics.New(s.registry); err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	if s.runtime.runDAO == nil {
		if s.config.Store.URL == "" {
			s.runtime.runDAO = rmemory.New()
		} else if s.runtime.runDAO, err = rfs.New(s.fs, s.config.Store.URL, s.logger); err != nil {
			return err
		}
	}
	return nil
}

// Runtime returns the simulator runtime.
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// Config returns the effective configuration.
func (s *Service) Config() *Config {
	return s.config
}

// New creates a service. The configuration is validated and the run store
// and metrics are set up eagerly.
func New(options ...Option) (*Service, error) {
	ret := &Service{runtime: &Runtime{}}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}
