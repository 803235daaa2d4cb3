package v1beta1

import (
	"strconv"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func init() {
	SchemeBuilder.Register(&Bind9Cluster{}, &Bind9ClusterList{})
}

// Bind9ClusterSpec describes one logical DNS cluster: a set of primary and
// secondary Bind9Instance children sharing configuration (spec §3).
type Bind9ClusterSpec struct {
	// PrimaryReplicas is the desired count of role=primary instances.
	// +kubebuilder:validation:Minimum=1
	PrimaryReplicas int32 `json:"primaryReplicas"`

	// SecondaryReplicas is the desired count of role=secondary instances.
	// +kubebuilder:validation:Minimum=0
	SecondaryReplicas int32 `json:"secondaryReplicas"`

	// Config is shared server configuration applied to every instance this
	// cluster materializes.
	// +optional
	Config Bind9ServerConfig `json:"config,omitempty"`

	// ProviderRef optionally names the ClusterBind9Provider that created
	// this cluster, for traceability; it carries no behavior of its own.
	// +optional
	ProviderRef *ObjectReference `json:"providerRef,omitempty"`
}

// Bind9ClusterStatus reports instance-count convergence (spec §8 property 2).
type Bind9ClusterStatus struct {
	// ObservedGeneration is the generation last reconciled.
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// PrimaryReplicas is the observed count of ready role=primary instances.
	// +optional
	PrimaryReplicas int32 `json:"primaryReplicas,omitempty"`

	// SecondaryReplicas is the observed count of ready role=secondary instances.
	// +optional
	SecondaryReplicas int32 `json:"secondaryReplicas,omitempty"`

	// Ready mirrors the Ready condition for quick access.
	// +optional
	Ready bool `json:"ready,omitempty"`

	// Conditions includes Ready and, when applicable, ScaleBlocked.
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Primary",type=integer,JSONPath=`.spec.primaryReplicas`
// +kubebuilder:printcolumn:name="Secondary",type=integer,JSONPath=`.spec.secondaryReplicas`
// +kubebuilder:printcolumn:name="Ready",type=boolean,JSONPath=`.status.ready`

// Bind9Cluster is a namespaced declaration of one logical DNS server cluster.
type Bind9Cluster struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   Bind9ClusterSpec   `json:"spec,omitempty"`
	Status Bind9ClusterStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// Bind9ClusterList contains a list of Bind9Cluster.
type Bind9ClusterList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Bind9Cluster `json:"items"`
}

// InstanceName derives the deterministic child name for a given role and
// index, per spec §4.5: "{cluster}-primary-{i}" / "{cluster}-secondary-{i}".
func (c *Bind9Cluster) InstanceName(role Role, index int32) string {
	switch role {
	case RolePrimary:
		return instanceNameFor(c.Name, "primary", index)
	default:
		return instanceNameFor(c.Name, "secondary", index)
	}
}

func instanceNameFor(cluster, role string, index int32) string {
	return cluster + "-" + role + "-" + strconv.FormatInt(int64(index), 10)
}
