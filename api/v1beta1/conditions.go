package v1beta1

// Condition types. Every resource's status.conditions uses the standard
// metav1.Condition shape; these constants name the types each controller
// writes, mirroring the teacher's convention of a flat ConditionType const
// block per resource (hostedcluster_conditions.go).
const (
	// ConditionReady is published by the instance, cluster and zone
	// controllers once their owned state has converged.
	ConditionReady = "Ready"

	// ConditionStalled marks a permanent configuration error (spec §7):
	// the controller will not requeue until generation advances.
	ConditionStalled = "Stalled"

	// ConditionDegraded marks a resource with partial, non-fatal failures.
	ConditionDegraded = "Degraded"

	// ConditionScaleBlocked is set on a Bind9Cluster when a scale-down
	// would orphan a live DNSZone (spec §4.5, §7).
	ConditionScaleBlocked = "ScaleBlocked"

	// ConditionNotSelected is set on a record resource that no DNSZone's
	// recordsFrom selector currently matches (spec §4.8 step 1).
	ConditionNotSelected = "NotSelected"

	// ConditionAvailable is set True on a record once at least one
	// primary has acknowledged the RRset replace (spec §4.3).
	ConditionAvailable = "Available"

	// ConditionFailed is set True on a record when every primary rejected
	// the update.
	ConditionFailed = "Failed"
)

// Condition reasons. Stable strings so callers can branch on "why", not just
// "what", matching the teacher's habit of pairing ConditionType with a
// short enumerated Reason.
const (
	ReasonReconcileSucceeded  = "ReconcileSucceeded"
	ReasonReconcileInProgress = "ReconcileInProgress"
	ReasonChildMissing        = "ChildMissing"
	ReasonChildCreateFailed   = "ChildCreateFailed"
	ReasonInvalidSpec         = "InvalidSpec"
	ReasonUnresolvedReference = "UnresolvedReference"
	ReasonEmptySelection      = "EmptySelection"
	ReasonZoneBlockingScale   = "ZoneBlockingScale"
	ReasonZoneRefMissing      = "ZoneRefMissing"
	ReasonPartialFailure      = "PartialFailure"
	ReasonAllPrimariesFailed  = "AllPrimariesFailed"
	ReasonAuthenticationError = "AuthenticationError"
	ReasonTransientError      = "TransientError"
)

// AnnotationLastResync is stamped on a DNSZone by the periodic resync
// scheduler (spec §4.9) to force a reconcile independent of watch events.
const AnnotationLastResync = "bindy.firestoned.github.io/last-resync"
