// Package otel provides OpenTelemetry metric exporter bindings for goSignup
// counters and histograms.
//
// [NewOTelExporter] registers Int64ObservableCounter instruments for each
// engine metric and Int64ObservableGauge per histogram bucket. A single
// callback reads [goSignup.Engine.MetricsSnapshot] on each collection cycle.
//
// The exporter never owns the MeterProvider; callers supply the Meter.
package otel
