package internaldefs

import (
	goSignup "github.com/MrEthical07/goSignup"
)

// CounterDef binds an engine counter to its stable exported name.
type CounterDef struct {
	ID   goSignup.MetricID
	Name string
	Help string
}

// HistogramDef binds an engine histogram to its stable exported name.
type HistogramDef struct {
	ID   goSignup.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in a fixed render order.
var CounterDefs = []CounterDef{
	{ID: goSignup.MetricRegisterSuccess, Name: "gosignup_register_success_total", Help: "Successful registrations."},
	{ID: goSignup.MetricRegisterFailure, Name: "gosignup_register_failure_total", Help: "Failed registrations."},
	{ID: goSignup.MetricRegisterDuplicate, Name: "gosignup_register_duplicate_total", Help: "Registrations rejected for an existing email."},
	{ID: goSignup.MetricRegisterCompensated, Name: "gosignup_register_compensated_total", Help: "Registrations rolled back by compensation."},
	{ID: goSignup.MetricActivateSuccess, Name: "gosignup_activate_success_total", Help: "Successful activations."},
	{ID: goSignup.MetricActivateFailure, Name: "gosignup_activate_failure_total", Help: "Failed activations."},
	{ID: goSignup.MetricActivateExpired, Name: "gosignup_activate_expired_total", Help: "Activations rejected for an expired challenge."},
	{ID: goSignup.MetricActivateMismatch, Name: "gosignup_activate_mismatch_total", Help: "Activations rejected for a wrong code."},
	{ID: goSignup.MetricReissueSuccess, Name: "gosignup_reissue_success_total", Help: "Successful challenge reissuances."},
	{ID: goSignup.MetricReissueFailure, Name: "gosignup_reissue_failure_total", Help: "Failed challenge reissuances."},
	{ID: goSignup.MetricChallengeIssued, Name: "gosignup_challenge_issued_total", Help: "Challenges appended to the store."},
	{ID: goSignup.MetricWelcomeDeliveryFailure, Name: "gosignup_welcome_delivery_failure_total", Help: "Welcome messages that failed after activation."},
}

// HistogramDefs lists every exported histogram in a fixed render order.
var HistogramDefs = []HistogramDef{
	{ID: goSignup.MetricActivateLatency, Name: "gosignup_activate_latency_seconds", Help: "Activate latency histogram."},
}

// HistogramBounds are the upper bucket bounds, in seconds, matching the
// engine's fixed bucket layout.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix renders the same bounds as metric-name-safe suffixes.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw snapshot slice to the fixed bucket
// count.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative form
// required by Prometheus histogram semantics.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
