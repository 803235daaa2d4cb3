package v1beta1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func init() {
	SchemeBuilder.Register(&ARecord{}, &ARecordList{})
	SchemeBuilder.Register(&AAAARecord{}, &AAAARecordList{})
	SchemeBuilder.Register(&CNAMERecord{}, &CNAMERecordList{})
	SchemeBuilder.Register(&MXRecord{}, &MXRecordList{})
	SchemeBuilder.Register(&TXTRecord{}, &TXTRecordList{})
	SchemeBuilder.Register(&NSRecord{}, &NSRecordList{})
	SchemeBuilder.Register(&SRVRecord{}, &SRVRecordList{})
	SchemeBuilder.Register(&CAARecord{}, &CAARecordList{})
}

// RecordStatus is shared verbatim across all eight record kinds (spec §3).
type RecordStatus struct {
	// ZoneRef is the structured back-reference written by the zone
	// controller once a DNSZone claims this record (spec §4.7 Responsibility
	// A). Unset means no zone currently selects it.
	// +optional
	ZoneRef *ZoneReference `json:"zoneRef,omitempty"`

	// ObservedGeneration is the generation of spec this status reflects.
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// PrimaryStatus lists the per-primary outcome of the last applied
	// update (spec §4.3 Ordering, §7 partial success).
	// +optional
	PrimaryStatus []PrimaryUpdateStatus `json:"primaryStatus,omitempty"`

	// Conditions includes NotSelected, Available, Degraded, or Failed.
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// PrimaryUpdateStatus records one primary's outcome for the last RRset
// replace/delete this record issued.
type PrimaryUpdateStatus struct {
	InstanceName string `json:"instanceName"`
	Success      bool   `json:"success"`
	// +optional
	Message string `json:"message,omitempty"`
	// +optional
	LastAttempt metav1.Time `json:"lastAttempt,omitempty"`
}

// HasZoneRef reports whether the zone controller has claimed this record.
func (s *RecordStatus) HasZoneRef() bool {
	return s.ZoneRef != nil
}

// String renders one primary's outcome as "<instance>: ok" on success or
// "<instance>: <message>" otherwise.
func (s PrimaryUpdateStatus) String() string {
	if s.Success {
		return s.InstanceName + ": ok"
	}
	return s.InstanceName + ": " + s.Message
}

// ---- A ----

type ARecordSpec struct {
	OwnerName string `json:"ownerName"`
	// +kubebuilder:validation:Pattern=`^(\d{1,3}\.){3}\d{1,3}$`
	IPv4Address string `json:"ipv4Address"`
	// +kubebuilder:default=3600
	TTL uint32 `json:"ttl,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
type ARecord struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`
	Spec              ARecordSpec  `json:"spec,omitempty"`
	Status            RecordStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true
type ARecordList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []ARecord `json:"items"`
}

// ---- AAAA ----

type AAAARecordSpec struct {
	OwnerName   string `json:"ownerName"`
	IPv6Address string `json:"ipv6Address"`
	// +kubebuilder:default=3600
	TTL uint32 `json:"ttl,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
type AAAARecord struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`
	Spec              AAAARecordSpec `json:"spec,omitempty"`
	Status            RecordStatus   `json:"status,omitempty"`
}

// +kubebuilder:object:root=true
type AAAARecordList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []AAAARecord `json:"items"`
}

// ---- CNAME ----

type CNAMERecordSpec struct {
	OwnerName string `json:"ownerName"`
	Target    string `json:"target"`
	// +kubebuilder:default=3600
	TTL uint32 `json:"ttl,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
type CNAMERecord struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`
	Spec              CNAMERecordSpec `json:"spec,omitempty"`
	Status            RecordStatus    `json:"status,omitempty"`
}

// +kubebuilder:object:root=true
type CNAMERecordList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []CNAMERecord `json:"items"`
}

// ---- MX ----

type MXRecordSpec struct {
	OwnerName string `json:"ownerName"`
	Priority  uint16 `json:"priority"`
	Target    string `json:"target"`
	// +kubebuilder:default=3600
	TTL uint32 `json:"ttl,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
type MXRecord struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`
	Spec              MXRecordSpec `json:"spec,omitempty"`
	Status            RecordStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true
type MXRecordList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []MXRecord `json:"items"`
}

// ---- TXT ----

type TXTRecordSpec struct {
	OwnerName string   `json:"ownerName"`
	Values    []string `json:"values"`
	// +kubebuilder:default=3600
	TTL uint32 `json:"ttl,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
type TXTRecord struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`
	Spec              TXTRecordSpec `json:"spec,omitempty"`
	Status            RecordStatus  `json:"status,omitempty"`
}

// +kubebuilder:object:root=true
type TXTRecordList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []TXTRecord `json:"items"`
}

// ---- NS ----

type NSRecordSpec struct {
	OwnerName  string `json:"ownerName"`
	Nameserver string `json:"nameserver"`
	// +kubebuilder:default=3600
	TTL uint32 `json:"ttl,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
type NSRecord struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`
	Spec              NSRecordSpec `json:"spec,omitempty"`
	Status            RecordStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true
type NSRecordList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []NSRecord `json:"items"`
}

// ---- SRV ----

type SRVRecordSpec struct {
	OwnerName string `json:"ownerName"`
	Priority  uint16 `json:"priority"`
	Weight    uint16 `json:"weight"`
	Port      uint16 `json:"port"`
	Target    string `json:"target"`
	// +kubebuilder:default=3600
	TTL uint32 `json:"ttl,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
type SRVRecord struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`
	Spec              SRVRecordSpec `json:"spec,omitempty"`
	Status            RecordStatus  `json:"status,omitempty"`
}

// +kubebuilder:object:root=true
type SRVRecordList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []SRVRecord `json:"items"`
}

// ---- CAA ----

type CAARecordSpec struct {
	OwnerName string `json:"ownerName"`
	Flag      uint8  `json:"flag"`
	Tag       string `json:"tag"`
	Value     string `json:"value"`
	// +kubebuilder:default=3600
	TTL uint32 `json:"ttl,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
type CAARecord struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`
	Spec              CAARecordSpec `json:"spec,omitempty"`
	Status            RecordStatus  `json:"status,omitempty"`
}

// +kubebuilder:object:root=true
type CAARecordList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []CAARecord `json:"items"`
}
