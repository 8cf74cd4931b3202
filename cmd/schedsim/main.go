package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/schedsim"
	"github.com/viant/schedsim/internal/logger"
	"github.com/viant/schedsim/service/summary"
	"github.com/viant/schedsim/service/trace"
	"github.com/viant/schedsim/tracing"
)

var version = "dev"

// Exit codes.
const (
	exitOK       = 0
	exitFailure  = 1
	exitUsage    = 2
	exitMismatch = 3
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func printUsage(w io.Writer, flags *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: schedsim [flags] input.txt")
	fmt.Fprintln(w, "Admits the processes listed in input.txt, dispatches them on two CPUs and writes the trace.")
	fmt.Fprintln(w)
	flags.SetOutput(w)
	flags.PrintDefaults()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("schedsim", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	configURL := flags.String("config", "", "YAML configuration file")
	outputURL := flags.String("o", "output.txt", "trace output file")
	format := flags.String("format", "", "trace format: text or json")
	expectURL := flags.String("expect", "", "golden trace to compare against; exit 3 on difference")
	showSummary := flags.Bool("summary", true, "print the admitted queues to stdout")
	metricsFile := flags.String("metrics", "", "write Prometheus metrics to this textfile")
	spansFile := flags.String("trace-spans", "", "write OpenTelemetry spans to this file")
	storeURL := flags.String("store", "", "directory for JSON run reports")
	verbose := flags.Bool("v", false, "debug logging")
	showVersion := flags.Bool("version", false, "show version and exit")

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			printUsage(stdout, flags)
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		printUsage(stderr, flags)
		return exitUsage
	}
	if *showVersion {
		fmt.Fprintf(stdout, "schedsim %s\n", version)
		return exitOK
	}
	if flags.NArg() != 1 {
		printUsage(stderr, flags)
		return exitUsage
	}
	set := map[string]bool{}
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })

	fs := afs.New()
	config := schedsim.DefaultConfig()
	if *configURL != "" {
		loaded, err := schedsim.LoadConfig(ctx, fs, url.Normalize(*configURL, file.Scheme))
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitUsage
		}
		config = loaded
	}
	if set["o"] || config.Trace.URL == "" {
		config.Trace.URL = url.Normalize(*outputURL, file.Scheme)
	}
	if *format != "" {
		config.Trace.Format = *format
	}
	if set["summary"] {
		config.Summary.Enabled = *showSummary
	}
	if *metricsFile != "" {
		config.Metrics.Textfile = *metricsFile
	}
	if *storeURL != "" {
		config.Store.URL = url.Normalize(*storeURL, file.Scheme)
	}
	if *spansFile != "" {
		config.Tracing.Enabled = true
		config.Tracing.Output = *spansFile
		config.Tracing.Version = version
	}
	if *verbose {
		config.Log.Level = "debug"
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	log, err := logger.Build(config.Log.Level, config.Log.Format, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	srv, err := schedsim.New(schedsim.WithConfig(config), schedsim.WithFS(fs), schedsim.WithLogger(log))
	if err != nil {
		log.Error("failed to start", logger.ErrAttr(err))
		return exitFailure
	}
	if config.Tracing.Enabled {
		defer func() {
			if err := tracing.Shutdown(ctx); err != nil {
				log.Warn("failed to flush spans", logger.ErrAttr(err))
			}
		}()
	}

	inputURL := url.Normalize(flags.Arg(0), file.Scheme)
	aRun, err := srv.Runtime().Run(ctx, inputURL)
	if err != nil {
		log.Error("simulation failed", "input", inputURL, logger.ErrAttr(err))
		return exitFailure
	}
	if config.Summary.Enabled {
		if err = summary.Write(stdout, aRun.Queues); err != nil {
			log.Error("failed to write summary", logger.ErrAttr(err))
			return exitFailure
		}
	}
	if *expectURL == "" {
		return exitOK
	}
	expected, err := fs.DownloadWithURL(ctx, url.Normalize(*expectURL, file.Scheme))
	if err != nil {
		log.Error("failed to read expected trace", logger.ErrAttr(err))
		return exitFailure
	}
	diff, err := trace.Diff(string(expected), trace.Text(aRun.Events))
	if err != nil {
		log.Error("failed to compare traces", logger.ErrAttr(err))
		return exitFailure
	}
	if diff != "" {
		fmt.Fprint(stderr, diff)
		return exitMismatch
	}
	return exitOK
}
