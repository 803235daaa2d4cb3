package v1beta1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func init() {
	SchemeBuilder.Register(&Bind9Instance{}, &Bind9InstanceList{})
}

// Bind9InstanceSpec describes one BIND9 server pod fleet member (spec §3).
type Bind9InstanceSpec struct {
	// Role is primary or secondary.
	// +kubebuilder:validation:Enum=primary;secondary
	Role Role `json:"role"`

	// ClusterRef names the parent Bind9Cluster in the same namespace.
	ClusterRef string `json:"clusterRef"`

	// Replicas is the desired pod replica count, typically 1.
	// +kubebuilder:validation:Minimum=1
	// +kubebuilder:default=1
	Replicas int32 `json:"replicas"`

	// Version is the BIND9 version to run. When set it must parse as a
	// semantic version, or the instance controller stalls the instance;
	// versions are not compared, so a downgrade is not rejected.
	// +optional
	Version string `json:"version,omitempty"`

	// Config carries per-instance overrides layered on top of the parent
	// cluster's shared Bind9ServerConfig.
	// +optional
	Config Bind9ServerConfig `json:"config,omitempty"`
}

// Bind9InstanceStatus reports readiness and connection details (spec §3).
type Bind9InstanceStatus struct {
	// ObservedGeneration is the generation last fully reconciled.
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// ReadyReplicas mirrors the owned Deployment's readyReplicas.
	// +optional
	ReadyReplicas int32 `json:"readyReplicas,omitempty"`

	// Endpoints lists addresses (ClusterIP service DNS names) other
	// controllers use to reach this instance's DNS and admin ports.
	// +optional
	Endpoints []string `json:"endpoints,omitempty"`

	// KeySecretName is the deterministically-derived name of the Secret
	// holding this instance's TSIG/RNDC key material.
	// +optional
	KeySecretName string `json:"keySecretName,omitempty"`

	// KeyGeneration counts key regenerations. Rotation is out of scope
	// (spec §9); this is always 1 once the key has been generated once.
	// +optional
	KeyGeneration int32 `json:"keyGeneration,omitempty"`

	// Conditions includes Ready.
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Role",type=string,JSONPath=`.spec.role`
// +kubebuilder:printcolumn:name="Ready",type=integer,JSONPath=`.status.readyReplicas`

// Bind9Instance is one BIND9 server (primary or secondary) within a cluster.
type Bind9Instance struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   Bind9InstanceSpec   `json:"spec,omitempty"`
	Status Bind9InstanceStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// Bind9InstanceList contains a list of Bind9Instance.
type Bind9InstanceList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Bind9Instance `json:"items"`
}

// KeySecretName derives the deterministic Secret name for an instance name,
// satisfying the invariant in spec §3 that the name is a pure function of
// the instance name.
func KeySecretName(instanceName string) string {
	return instanceName + "-key"
}

// IsReady reports whether the instance has as many ready pods as desired.
func (i *Bind9Instance) IsReady() bool {
	return i.Status.ReadyReplicas >= i.Spec.Replicas
}
