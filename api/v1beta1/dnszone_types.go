package v1beta1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func init() {
	SchemeBuilder.Register(&DNSZone{}, &DNSZoneList{})
}

// SOAConfig carries the start-of-authority fields a primary zone needs on
// creation (spec §3, §4.2).
type SOAConfig struct {
	// PrimaryNS is the SOA MNAME: the primary nameserver's hostname.
	PrimaryNS string `json:"primaryNS"`
	// AdminMailbox is the SOA RNAME, DNS-encoded (dots instead of @).
	AdminMailbox string `json:"adminMailbox"`
	// Serial seeds the zone; BIND9 advances it on further changes.
	// +optional
	Serial uint32 `json:"serial,omitempty"`
	// +kubebuilder:default=3600
	Refresh uint32 `json:"refresh,omitempty"`
	// +kubebuilder:default=900
	Retry uint32 `json:"retry,omitempty"`
	// +kubebuilder:default=1209600
	Expire uint32 `json:"expire,omitempty"`
	// +kubebuilder:default=3600
	NegativeTTL uint32 `json:"negativeTTL,omitempty"`
}

// DNSZoneSpec describes a zone and where it should be installed (spec §3).
type DNSZoneSpec struct {
	// ZoneName is the fully qualified zone name, e.g. "example.com.".
	// +kubebuilder:validation:Pattern=`^([a-zA-Z0-9_]([a-zA-Z0-9-_]*[a-zA-Z0-9_])?\.)+$`
	ZoneName string `json:"zoneName"`

	// ClusterRef optionally names a Bind9Cluster; every instance belonging
	// to it joins the effective instance set.
	// +optional
	ClusterRef string `json:"clusterRef,omitempty"`

	// InstanceSelector optionally selects Bind9Instances directly. The
	// effective instance set is the UID-deduplicated union of ClusterRef's
	// members and this selector's matches (spec §3, §4.7).
	// +optional
	InstanceSelector *metav1.LabelSelector `json:"instanceSelector,omitempty"`

	// SOA fields used when installing this zone as primary.
	SOA SOAConfig `json:"soa"`

	// DefaultTTL applies to records that don't set their own.
	// +kubebuilder:default=3600
	DefaultTTL uint32 `json:"defaultTTL,omitempty"`

	// RecordsFrom lists independent label selectors; a record matching any
	// one of them belongs to this zone (spec §3, §4.7 Responsibility A).
	// +optional
	RecordsFrom []LabelSelectorReference `json:"recordsFrom,omitempty"`

	// DNSSECPolicy optionally overrides the cluster-level policy name.
	// +optional
	DNSSECPolicy string `json:"dnssecPolicy,omitempty"`
}

// DNSZoneStatus reports per-instance sync state and discovered records
// (spec §3, §4.7).
type DNSZoneStatus struct {
	// ObservedGeneration is the generation last reconciled.
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// Bind9Instances lists every member of the effective instance set with
	// its current sync state (spec §8 property 3).
	// +optional
	Bind9Instances []InstanceReference `json:"bind9Instances,omitempty"`

	// Records lists the back-references to records this zone currently
	// claims, for quick inspection without a live selector evaluation.
	// +optional
	Records []ObjectReference `json:"records,omitempty"`

	// Conditions includes Ready and, for configuration errors, Stalled.
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`

	// LastResyncObserved mirrors the last resync-scheduler annotation value
	// this reconcile acted on, so a repeat of the same annotation value
	// doesn't look like a fresh forced resync.
	// +optional
	LastResyncObserved string `json:"lastResyncObserved,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Zone",type=string,JSONPath=`.spec.zoneName`
// +kubebuilder:printcolumn:name="Ready",type=string,JSONPath=`.status.conditions[?(@.type=="Ready")].status`

// DNSZone declares a zone that should be installed on a set of Bind9Instances
// and claims the record resources that belong to it.
type DNSZone struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   DNSZoneSpec   `json:"spec,omitempty"`
	Status DNSZoneStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// DNSZoneList contains a list of DNSZone.
type DNSZoneList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []DNSZone `json:"items"`
}

// InstanceState looks up an instance's current sync state by UID, returning
// ok=false when the instance is not (yet) part of status.bind9Instances.
func (z *DNSZone) InstanceState(uid string) (InstanceReference, bool) {
	for _, ref := range z.Status.Bind9Instances {
		if string(ref.UID) == uid {
			return ref, true
		}
	}
	return InstanceReference{}, false
}
