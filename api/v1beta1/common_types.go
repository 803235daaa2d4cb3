package v1beta1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
)

// Role distinguishes a primary (authoritative source) instance from a
// secondary (zone-transfer target) instance within a cluster.
type Role string

const (
	RolePrimary   Role = "primary"
	RoleSecondary Role = "secondary"
)

// InstanceSyncState is a node in the per-instance zone sync state machine
// described in spec §4.7.
type InstanceSyncState string

const (
	InstanceSyncPending    InstanceSyncState = "Pending"
	InstanceSyncConfigured InstanceSyncState = "Configured"
	InstanceSyncDegraded   InstanceSyncState = "Degraded"
)

// Finalizer strings. Each carries a dedicated finalizer per spec §3.
const (
	ProviderFinalizer = "bindy.firestoned.io/provider-finalizer"
	ClusterFinalizer  = "bindy.firestoned.io/cluster-finalizer"
	InstanceFinalizer = "bindy.firestoned.io/instance-finalizer"
	ZoneFinalizer     = "bindy.firestoned.io/zone-finalizer"
	RecordFinalizer   = "bindy.firestoned.io/record-finalizer"
)

// ObjectReference identifies a Kubernetes object by coordinates rather than
// by a live pointer, the same shape zoneRef uses on record status (spec §3).
type ObjectReference struct {
	// APIVersion of the referent.
	APIVersion string `json:"apiVersion"`
	// Kind of the referent.
	Kind string `json:"kind"`
	// Name of the referent.
	Name string `json:"name"`
	// Namespace of the referent.
	Namespace string `json:"namespace"`
}

// ZoneReference is the structured back-reference a record's status carries
// once a DNSZone has claimed it (spec §3, §4.7 Responsibility A). Only the
// structured form is implemented; see SPEC_FULL.md §C.1.
type ZoneReference struct {
	ObjectReference `json:",inline"`
	// ZoneName is the fully qualified zone name the referenced DNSZone manages.
	ZoneName string `json:"zoneName"`
}

// InstanceReference names a Bind9Instance that belongs to a zone's effective
// instance set, carried in DNSZone.status.bind9Instances.
type InstanceReference struct {
	// Name of the Bind9Instance.
	Name string `json:"name"`
	// UID of the Bind9Instance at the time it was observed.
	UID types.UID `json:"uid"`
	// Role the instance plays for this zone.
	Role Role `json:"role"`
	// State is this instance's position in the sync state machine.
	State InstanceSyncState `json:"state"`
	// Message carries human-readable detail for Degraded/Pending states.
	// +optional
	Message string `json:"message,omitempty"`
	// ConsecutiveFailures counts the run of failures driving Degraded
	// transitions (spec §7: Degraded only after N>=5).
	// +optional
	ConsecutiveFailures int32 `json:"consecutiveFailures,omitempty"`
}

// LabelSelectorReference pairs a label selector with nothing else; used for
// DNSZone.spec.recordsFrom, a list of independent selectors rather than one
// combined selector, so that a zone can claim records matching any one of
// several label sets.
type LabelSelectorReference struct {
	Selector metav1.LabelSelector `json:"selector"`
}

// Standard label keys applied to every object the resource builder emits
// (spec §4.1).
const (
	LabelManagedBy = "bindy.firestoned.io/managed-by"
	LabelCluster   = "bindy.firestoned.io/cluster"
	LabelRole      = "bindy.firestoned.io/role"
	LabelInstance  = "bindy.firestoned.io/instance"
	LabelProvider  = "bindy.firestoned.io/provider"

	ManagedByValue = "bindy"
)

// ResourceRequirements mirrors corev1.ResourceRequirements but keeps the CRD
// package free of a hard corev1 dependency in call sites that only need
// desired values; the builder converts this to corev1 at build time.
type ResourceRequirements struct {
	// +optional
	Requests map[string]string `json:"requests,omitempty"`
	// +optional
	Limits map[string]string `json:"limits,omitempty"`
}
