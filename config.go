package schedsim

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/schedsim/internal/logger"
	"github.com/viant/schedsim/service/admission"
	"github.com/viant/schedsim/service/messaging/memory"
	"github.com/viant/schedsim/service/scheduler"
	"github.com/viant/schedsim/service/trace"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the simulator configuration.
// Fields omitted from a YAML or JSON document keep their DefaultConfig value.
type Config struct {
	Memory  admission.Config `json:"memory" yaml:"memory"`
	Quantum scheduler.Config `json:"quantum" yaml:"quantum"`
	Events  memory.Config    `json:"events" yaml:"events"`
	Trace   TraceConfig      `json:"trace" yaml:"trace"`
	Summary SummaryConfig    `json:"summary" yaml:"summary"`
	Store   StoreConfig      `json:"store" yaml:"store"`
	Metrics MetricsConfig    `json:"metrics" yaml:"metrics"`
	Tracing TracingConfig    `json:"tracing" yaml:"tracing"`
	Log     LogConfig        `json:"log" yaml:"log"`
}

// TraceConfig selects the trace file written for every run. An empty URL
// disables the file sink.
type TraceConfig struct {
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
	Format string `json:"format" yaml:"format"`
}

type SummaryConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// StoreConfig selects the run report store; an empty URL keeps runs in memory.
type StoreConfig struct {
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// MetricsConfig sets the Prometheus textfile written after every run.
type MetricsConfig struct {
	Textfile string `json:"textfile,omitempty" yaml:"textfile,omitempty"`
}

// TracingConfig enables OpenTelemetry spans exported with the stdout
// exporter, to Output when set.
type TracingConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Service string `json:"service" yaml:"service"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	Output  string `json:"output,omitempty" yaml:"output,omitempty"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// DefaultConfig returns the 2048-unit machine with 512 units reserved for
// CPU-1, quanta 8 and 16, a text trace and the queue summary enabled.
func DefaultConfig() *Config {
	return &Config{
		Memory:  admission.DefaultConfig(),
		Quantum: scheduler.DefaultConfig(),
		Events:  memory.DefaultConfig(),
		Trace:   TraceConfig{Format: trace.FormatText},
		Summary: SummaryConfig{Enabled: true},
		Tracing: TracingConfig{Service: "schedsim"},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// Validate returns the first invalid setting or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if err := c.Memory.Validate(); err != nil {
		return err
	}
	if err := c.Quantum.Validate(); err != nil {
		return err
	}
	if c.Events.QueueBuffer < 0 {
		return fmt.Errorf("events.buffer must be >= 0")
	}
	if _, err := trace.NewEncoder(c.Trace.Format); err != nil {
		return fmt.Errorf("trace.format: %w", err)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// LoadConfig decodes the YAML (or JSON) document at URL over DefaultConfig
// and validates the result.
func LoadConfig(ctx context.Context, fs afs.Service, URL string, options ...storage.Option) (*Config, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, URL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", URL, err)
	}
	ret := DefaultConfig()
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	if err = ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", URL, err)
	}
	return ret, nil
}
