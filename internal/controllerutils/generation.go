package controllerutils

import "time"

// ShouldReconcile reports whether a full reconcile is warranted given the
// object's current generation and the generation its status last recorded.
// A periodic resync (spec §4.9) passes forceResync=true to bypass the gate.
func ShouldReconcile(generation, observedGeneration int64, forceResync bool) bool {
	return forceResync || generation != observedGeneration
}

// Requeue intervals shared across controllers (spec §4.9). Degraded
// instances are polled more aggressively than steady-state resyncs so a
// recovering primary is noticed quickly.
const (
	RequeueAfterTransientError = 10 * time.Second
	RequeueAfterDegraded       = 30 * time.Second
	RequeueAfterSteadyState    = 5 * time.Minute

	// RequeueAfterNotSelected backs off a record that no DNSZone currently
	// selects (spec §4.8 step 1: "moderate backoff") more gently than a
	// transient error, since no zone showing up is an ordinary, possibly
	// long-lived state rather than a fault.
	RequeueAfterNotSelected = 1 * time.Minute
)

// Leader election defaults (spec §4.9), used when the corresponding
// environment variable is unset.
const (
	DefaultLeaseDuration = 15 * time.Second
	DefaultRenewDeadline = 10 * time.Second
	DefaultRetryPeriod   = 2 * time.Second
)

// DegradedThreshold is the number of consecutive per-instance failures that
// drives a zone's instance state from Pending/Configured to Degraded
// (spec §7).
const DegradedThreshold = 5
