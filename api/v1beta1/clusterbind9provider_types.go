package v1beta1

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func init() {
	SchemeBuilder.Register(&ClusterBind9Provider{}, &ClusterBind9ProviderList{})
}

// ClusterBind9ProviderSpec fans out a Bind9Cluster into every target
// namespace with a shared set of defaults (spec §3).
type ClusterBind9ProviderSpec struct {
	// TargetNamespaces lists the namespaces that should each receive one
	// managed Bind9Cluster.
	// +kubebuilder:validation:MinItems=1
	TargetNamespaces []string `json:"targetNamespaces"`

	// DefaultPrimaryReplicas seeds Bind9Cluster.spec.primaryReplicas for
	// every namespace this provider manages.
	// +kubebuilder:validation:Minimum=1
	DefaultPrimaryReplicas int32 `json:"defaultPrimaryReplicas"`

	// DefaultSecondaryReplicas seeds Bind9Cluster.spec.secondaryReplicas.
	// +kubebuilder:validation:Minimum=0
	DefaultSecondaryReplicas int32 `json:"defaultSecondaryReplicas"`

	// DefaultConfig is copied verbatim into each managed cluster's
	// spec.config on creation; later edits to this field do not retroactively
	// change clusters that already exist (ownership of ongoing config drift
	// belongs to the Bind9Cluster, not the provider).
	// +optional
	DefaultConfig Bind9ServerConfig `json:"defaultConfig,omitempty"`
}

// ClusterBind9ProviderStatus reports fan-out progress.
type ClusterBind9ProviderStatus struct {
	// ObservedGeneration is the generation last reconciled.
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// ManagedNamespaces lists namespaces with a Bind9Cluster currently owned
	// by this provider.
	// +optional
	ManagedNamespaces []string `json:"managedNamespaces,omitempty"`

	// Conditions holds the aggregate status of the fan-out.
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:scope=Cluster
// +kubebuilder:printcolumn:name="Namespaces",type=integer,JSONPath=`.spec.targetNamespaces[*]`

// ClusterBind9Provider is a cluster-scoped declaration that a Bind9Cluster
// should exist in each of a set of namespaces.
type ClusterBind9Provider struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   ClusterBind9ProviderSpec   `json:"spec,omitempty"`
	Status ClusterBind9ProviderStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// ClusterBind9ProviderList contains a list of ClusterBind9Provider.
type ClusterBind9ProviderList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []ClusterBind9Provider `json:"items"`
}

// Bind9ServerConfig is the shared server configuration surface carried by a
// ClusterBind9Provider's defaults and a Bind9Cluster's spec (spec §3).
type Bind9ServerConfig struct {
	// Forwarders lists upstream resolvers for the BIND9 options block.
	// +optional
	Forwarders []string `json:"forwarders,omitempty"`

	// ACLs names access-control lists rendered into named.conf.
	// +optional
	ACLs []ACLConfig `json:"acls,omitempty"`

	// DNSSECPolicy, if set, names a DNSSEC policy stanza to generate and
	// reference from every zone that does not override it. BIND9 itself
	// performs the signing; this engine only emits the named.conf stanza
	// (spec §1 Non-goals).
	// +optional
	DNSSECPolicy string `json:"dnssecPolicy,omitempty"`

	// Image overrides the BIND9 container image.
	// +optional
	Image string `json:"image,omitempty"`

	// SidecarImage overrides the zone-admin HTTP sidecar image.
	// +optional
	SidecarImage string `json:"sidecarImage,omitempty"`

	// Resources are the pod resource requests/limits; the builder applies
	// documented defaults when unset (spec §4.1).
	// +optional
	Resources ResourceRequirements `json:"resources,omitempty"`
}

// ACLConfig names one BIND9 access-control list.
type ACLConfig struct {
	Name    string   `json:"name"`
	Entries []string `json:"entries"`
}

// PullPolicy is re-exported so callers outside this package don't need a
// corev1 import purely for a constant of the same type.
type PullPolicy = corev1.PullPolicy
