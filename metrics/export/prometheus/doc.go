// Package prometheus renders goSignup metrics in Prometheus text exposition
// format.
//
// [NewPrometheusExporter] accepts a [goSignup.Engine] and exposes an
// [net/http.Handler] that serves all counters and histograms. Counter names
// are prefixed gosignup_*_total; the single histogram is
// gosignup_activate_latency_seconds.
//
// The exporter never registers in a global Prometheus registry; callers mount
// the Handler themselves.
package prometheus
