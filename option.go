package schedsim

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/progress"
	"github.com/viant/schedsim/service/dao"
	"github.com/viant/schedsim/service/trace"
	"github.com/viant/schedsim/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures a Service.
type Option func(s *Service)

// WithConfig replaces the default configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithFS sets the file system used for input, trace files and run reports.
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithFsOptions sets storage options passed to input downloads, for example
// an embed.FS serving embed:// URLs.
func WithFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.fsOptions = options
	}
}

// WithLogger sets the logger; the default is built from Config.Log.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithRunDAO sets the run report store.
func WithRunDAO(dao dao.Service[string, model.Run]) Option {
	return func(s *Service) {
		s.runtime.runDAO = dao
	}
}

// WithSink adds trace sinks receiving every event of every run. The caller
// owns the sinks and closes them.
func WithSink(sinks ...trace.Sink) Option {
	return func(s *Service) {
		s.runtime.sinks = append(s.runtime.sinks, sinks...)
	}
}

// WithRegistry sets the Prometheus registry metrics are registered on.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(s *Service) {
		s.registry = registry
	}
}

// WithProgress sets a callback receiving run counters on every change.
func WithProgress(onChange func(progress.Progress)) Option {
	return func(s *Service) {
		s.runtime.onProgress = onChange
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile is empty the
// stdout exporter is used; otherwise spans are written to the supplied file path. The first
// successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		s.tracingErr = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		s.tracingErr = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
