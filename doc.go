// Package goSignup provides an account-enrollment engine: registration with a
// pending-activation state, one-time numeric challenges delivered out of band,
// time-boxed activation, and challenge reissuance, with a Redis-backed
// challenge log.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// goSignup is the public surface. It exposes [Engine], [Builder], [Config],
// the [Outcome] result contract, and the collaborator interfaces
// ([AccountProvider], [RoleProvider], [Notifier]) that callers implement
// against their own storage and delivery infrastructure. The engine owns
// orchestration only: it never implements persistence or notification
// transport itself.
//
// # Result contract
//
// Workflow methods do not report domain conditions through error returns.
// Each returns an [Outcome] that is either a success value or a [Failure]
// with one of a closed set of [FailureKind] tags. Collaborator faults are
// wrapped into [FailureUnexpected]; they never escape a workflow as a raw
// error.
//
// # What this package must NOT do
//
//   - Expose the Redis client, challenge encoding, or store layout in its
//     public API.
//   - Retry collaborator calls: a fault is surfaced (or compensated) exactly
//     once.
//   - Perform I/O outside of Engine methods (construction via Builder is
//     allocation-only until Build).
package goSignup
