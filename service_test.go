package schedsim_test

import (
	"context"
	"embed"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	_ "github.com/viant/afs/embed"
	"github.com/viant/schedsim"
	"github.com/viant/schedsim/internal/logger"
	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/progress"
	"github.com/viant/schedsim/service/dao"
	"github.com/viant/schedsim/service/trace"
)

//go:embed testdata/*
var embedFS embed.FS

func newService(t *testing.T, options ...schedsim.Option) *schedsim.Service {
	t.Helper()
	options = append([]schedsim.Option{
		schedsim.WithFsOptions(&embedFS),
		schedsim.WithLogger(logger.Discard()),
	}, options...)
	srv, err := schedsim.New(options...)
	require.NoError(t, err)
	return srv
}

func TestRuntime_Run(t *testing.T) {
	ctx := context.Background()
	srv := newService(t)
	runtime := srv.Runtime()

	run, err := runtime.Run(ctx, "embed:///testdata/input.txt")
	require.NoError(t, err)

	expected, err := embedFS.ReadFile("testdata/expected.txt")
	require.NoError(t, err)
	diff, err := trace.Diff(string(expected), trace.Text(run.Events))
	require.NoError(t, err)
	assert.Empty(t, diff)

	assert.Equal(t, []string{"P1"}, run.Queues.Names(model.PriorityCPU1))
	assert.Equal(t, []string{"P2", "P3"}, run.Queues.Names(model.PriorityShortJob))
	assert.Equal(t, []string{"P4"}, run.Queues.Names(model.PriorityMedium))
	assert.Equal(t, []string{"P6"}, run.Queues.Names(model.PriorityLow))
	assert.Empty(t, run.EventsOf("P5"))
	assert.Equal(t, []model.Budget{
		{CPU: model.CPU1, Capacity: 512, Used: 100},
		{CPU: model.CPU2, Capacity: 1536, Used: 250},
	}, run.Budgets)
	assert.Equal(t, model.Stats{Input: 6, Admitted: 5, Dropped: 1, Dispatched: 8, Requeued: 3, Completed: 5}, run.Stats)
	assert.Equal(t, trace.Digest(run.Events), run.Digest)
	assert.Equal(t, "embed:///testdata/input.txt", run.Source)
	for i, e := range run.Events {
		assert.Equal(t, i+1, e.Seq)
	}

	stored, err := runtime.Report(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Digest, stored.Digest)
	runs, err := runtime.Runs(ctx, dao.NewParameter(dao.ParameterSource, run.Source))
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRuntime_Scenarios(t *testing.T) {
	testCases := []struct {
		description string
		processes   []*model.Process
		kinds       []model.EventKind
		names       []string
	}{
		{
			description: "single CPU-1 process",
			processes:   []*model.Process{{Name: "P1", Priority: 0, BurstTime: 5, RAM: 100, CPURate: 1}},
			kinds:       []model.EventKind{model.EventQueuedCPU1, model.EventAssignedCPU1, model.EventCompleted},
			names:       []string{"P1", "P1", "P1"},
		},
		{
			description: "shortest job dispatched first",
			processes: []*model.Process{
				{Name: "P2", Priority: 1, BurstTime: 10, RAM: 50, CPURate: 1},
				{Name: "P3", Priority: 1, BurstTime: 3, RAM: 50, CPURate: 1},
			},
			kinds: []model.EventKind{
				model.EventQueuedCPU2, model.EventQueuedCPU2,
				model.EventAssignedSJF, model.EventCompleted,
				model.EventAssignedSJF, model.EventCompleted,
			},
			names: []string{"P2", "P3", "P3", "P3", "P2", "P2"},
		},
		{
			description: "round robin quantum 8",
			processes:   []*model.Process{{Name: "P4", Priority: 2, BurstTime: 20, RAM: 50, CPURate: 1}},
			kinds: []model.EventKind{
				model.EventQueuedCPU2,
				model.EventAssignedRR, model.EventRequeuedRR,
				model.EventAssignedRR, model.EventRequeuedRR,
				model.EventAssignedRR, model.EventCompleted,
			},
			names: []string{"P4", "P4", "P4", "P4", "P4", "P4", "P4"},
		},
		{
			description: "CPU-1 process over budget",
			processes:   []*model.Process{{Name: "P5", Priority: 0, BurstTime: 5, RAM: 600, CPURate: 1}},
		},
	}

	ctx := context.Background()
	srv := newService(t)
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			run, err := srv.Runtime().Simulate(ctx, testCase.processes)
			require.NoError(t, err)
			var kinds []model.EventKind
			var names []string
			for _, e := range run.Events {
				kinds = append(kinds, e.Kind)
				names = append(names, e.Process)
			}
			assert.Equal(t, testCase.kinds, kinds)
			assert.Equal(t, testCase.names, names)
		})
	}
}

func TestRuntime_Deterministic(t *testing.T) {
	ctx := context.Background()
	srv := newService(t)
	first, err := srv.Runtime().Run(ctx, "embed:///testdata/input.txt")
	require.NoError(t, err)
	second, err := srv.Runtime().Run(ctx, "embed:///testdata/input.txt")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Digest, second.Digest)
	assert.Equal(t, first.Budgets, second.Budgets, "budgets start empty for every run")
}

func TestRuntime_TraceFileAndStore(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	config := schedsim.DefaultConfig()
	config.Trace.URL = "mem://localhost/schedsim/root/output.txt"
	config.Store.URL = "mem://localhost/schedsim/root/runs"
	config.Metrics.Textfile = filepath.Join(t.TempDir(), "schedsim.prom")

	var last progress.Progress
	srv := newService(t,
		schedsim.WithConfig(config),
		schedsim.WithFS(fs),
		schedsim.WithProgress(func(p progress.Progress) { last = p }),
	)
	run, err := srv.Runtime().Run(ctx, "embed:///testdata/input.txt")
	require.NoError(t, err)

	data, err := fs.DownloadWithURL(ctx, config.Trace.URL)
	require.NoError(t, err)
	expected, err := embedFS.ReadFile("testdata/expected.txt")
	require.NoError(t, err)
	assert.Equal(t, string(expected), string(data))

	stored, err := srv.Runtime().Report(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Stats, stored.Stats)
	assert.Equal(t, 5, last.Completed)
	assert.Equal(t, run.ID, last.RunID)

	prom, err := os.ReadFile(config.Metrics.Textfile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "schedsim_runs_total 1")
	assert.Contains(t, string(prom), `schedsim_ram_committed{cpu="CPU-2"} 250`)
	assert.Contains(t, string(prom), `schedsim_processes_total{cpu="CPU-1",outcome="dropped"} 1`)
}

func TestRuntime_InvalidPriority(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	config := schedsim.DefaultConfig()
	config.Trace.URL = "mem://localhost/schedsim/invalid/output.txt"
	srv := newService(t, schedsim.WithConfig(config), schedsim.WithFS(fs))

	_, err := srv.Runtime().Run(ctx, "embed:///testdata/invalid.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidPriority)

	ok, err := fs.Exists(ctx, config.Trace.URL)
	require.NoError(t, err)
	assert.False(t, ok)
	runs, err := srv.Runtime().Runs(ctx)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

var errSinkFull = errors.New("sink full")

type failingSink struct{ after int }

func (s *failingSink) Handle(context.Context, *model.Event) error {
	if s.after == 0 {
		return errSinkFull
	}
	s.after--
	return nil
}

func (s *failingSink) Close(context.Context) error { return nil }

func TestRuntime_SinkFailure(t *testing.T) {
	ctx := context.Background()
	srv := newService(t, schedsim.WithSink(&failingSink{after: 3}))
	_, err := srv.Runtime().Run(ctx, "embed:///testdata/input.txt")
	assert.ErrorIs(t, err, errSinkFull)

	registry := srv.Runtime().Metrics().Registry()
	count, err := testutil.GatherAndCount(registry, "schedsim_processes_total")
	require.NoError(t, err)
	assert.Equal(t, 0, count, "a failed run leaves admission counters untouched")
	assert.Equal(t, 0.0, counterSum(t, registry, "schedsim_events_total"))
	assert.Equal(t, 0.0, counterSum(t, registry, "schedsim_runs_total"))
}

func counterSum(t *testing.T, registry *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := registry.Gather()
	require.NoError(t, err)
	sum := 0.0
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			sum += metric.GetCounter().GetValue()
		}
	}
	return sum
}

func TestRuntime_WriterSink(t *testing.T) {
	ctx := context.Background()
	var buf strings.Builder
	sink, err := trace.NewWriterSink(&buf, trace.FormatText)
	require.NoError(t, err)
	srv := newService(t, schedsim.WithSink(sink))
	run, err := srv.Runtime().Run(ctx, "embed:///testdata/input.txt")
	require.NoError(t, err)
	assert.Equal(t, trace.Text(run.Events), buf.String())
}

func TestLoadConfig(t *testing.T) {
	config, err := schedsim.LoadConfig(context.Background(), nil, "embed:///testdata/config.yaml", &embedFS)
	require.NoError(t, err)
	assert.Equal(t, 1024, config.Memory.TotalRAM)
	assert.Equal(t, 128, config.Memory.CPU1Reserved)
	assert.Equal(t, 4, config.Quantum.MediumQuantum)
	assert.Equal(t, 16, config.Quantum.LowQuantum)
	assert.Equal(t, trace.FormatJSON, config.Trace.Format)
	assert.Equal(t, "debug", config.Log.Level)
	assert.True(t, config.Summary.Enabled)
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		description string
		mutate      func(c *schedsim.Config)
		expectErr   bool
	}{
		{description: "defaults", mutate: func(c *schedsim.Config) {}},
		{description: "zero total", mutate: func(c *schedsim.Config) { c.Memory.TotalRAM = 0 }, expectErr: true},
		{description: "reserve exceeds total", mutate: func(c *schedsim.Config) { c.Memory.CPU1Reserved = 4096 }, expectErr: true},
		{description: "zero quantum", mutate: func(c *schedsim.Config) { c.Quantum.LowQuantum = 0 }, expectErr: true},
		{description: "unknown trace format", mutate: func(c *schedsim.Config) { c.Trace.Format = "xml" }, expectErr: true},
		{description: "unknown log level", mutate: func(c *schedsim.Config) { c.Log.Level = "loud" }, expectErr: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			config := schedsim.DefaultConfig()
			testCase.mutate(config)
			err := config.Validate()
			if testCase.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	config := schedsim.DefaultConfig()
	config.Quantum.MediumQuantum = -1
	_, err := schedsim.New(schedsim.WithConfig(config))
	assert.Error(t, err)
}
