// Package tracing wraps OpenTelemetry so that simulator components can open
// spans around admission and dispatch stages without importing the upstream
// packages directly. Spans are no-ops until Init or InitWithExporter is
// called.
package tracing
