package goSignup

import (
	"time"

	"github.com/MrEthical07/goSignup/jwt"
	"github.com/MrEthical07/goSignup/password"
)

// Engine is the workflow core. It owns no storage and no transport: accounts
// and roles live behind injected providers, challenges live in Redis, and
// notifications go through the injected Notifier. Construct it with [New] and
// the [Builder] chain; the zero value is not usable.
//
// All exported methods are safe for concurrent use.
type Engine struct {
	config     Config
	challenges *otpChallengeStore
	accounts   AccountProvider
	roles      RoleProvider
	notifier   Notifier
	codes      CodeGenerator
	audit      *auditDispatcher
	metrics    *Metrics
	passwords  *password.Bcrypt
	tokens     *jwt.Manager
}

// Close flushes and stops the audit dispatcher. The engine must not be used
// after Close returns.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.audit.Close()
}

// AuditDropped reports how many audit events were discarded because the
// dispatcher buffer was full. Always zero unless auditing is enabled with
// DropIfFull.
func (e *Engine) AuditDropped() uint64 {
	if e == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of all engine metrics.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

// Config returns a copy of the engine's effective configuration.
func (e *Engine) Config() Config {
	return cloneConfig(e.config)
}

func (e *Engine) metricInc(id MetricID) {
	e.metrics.Inc(id)
}

func (e *Engine) metricObserve(id MetricID, d time.Duration) {
	e.metrics.Observe(id, d)
}
