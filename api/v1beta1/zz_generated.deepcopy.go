// Code generated by hand in the style of controller-gen's deepcopy-gen; keep
// in sync with the types in this package. Do not add business logic here.

package v1beta1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	runtime "k8s.io/apimachinery/pkg/runtime"
)

// ---------------- common_types.go ----------------

func (in *ObjectReference) DeepCopyInto(out *ObjectReference) {
	*out = *in
}

func (in *ObjectReference) DeepCopy() *ObjectReference {
	if in == nil {
		return nil
	}
	out := new(ObjectReference)
	in.DeepCopyInto(out)
	return out
}

func (in *ZoneReference) DeepCopyInto(out *ZoneReference) {
	*out = *in
}

func (in *ZoneReference) DeepCopy() *ZoneReference {
	if in == nil {
		return nil
	}
	out := new(ZoneReference)
	in.DeepCopyInto(out)
	return out
}

func (in *InstanceReference) DeepCopyInto(out *InstanceReference) {
	*out = *in
}

func (in *InstanceReference) DeepCopy() *InstanceReference {
	if in == nil {
		return nil
	}
	out := new(InstanceReference)
	in.DeepCopyInto(out)
	return out
}

func (in *LabelSelectorReference) DeepCopyInto(out *LabelSelectorReference) {
	*out = *in
	in.Selector.DeepCopyInto(&out.Selector)
}

func (in *LabelSelectorReference) DeepCopy() *LabelSelectorReference {
	if in == nil {
		return nil
	}
	out := new(LabelSelectorReference)
	in.DeepCopyInto(out)
	return out
}

func (in *ResourceRequirements) DeepCopyInto(out *ResourceRequirements) {
	*out = *in
	if in.Requests != nil {
		out.Requests = make(map[string]string, len(in.Requests))
		for k, v := range in.Requests {
			out.Requests[k] = v
		}
	}
	if in.Limits != nil {
		out.Limits = make(map[string]string, len(in.Limits))
		for k, v := range in.Limits {
			out.Limits[k] = v
		}
	}
}

func (in *ResourceRequirements) DeepCopy() *ResourceRequirements {
	if in == nil {
		return nil
	}
	out := new(ResourceRequirements)
	in.DeepCopyInto(out)
	return out
}

// ---------------- clusterbind9provider_types.go ----------------

func (in *ACLConfig) DeepCopyInto(out *ACLConfig) {
	*out = *in
	if in.Entries != nil {
		out.Entries = make([]string, len(in.Entries))
		copy(out.Entries, in.Entries)
	}
}

func (in *ACLConfig) DeepCopy() *ACLConfig {
	if in == nil {
		return nil
	}
	out := new(ACLConfig)
	in.DeepCopyInto(out)
	return out
}

func (in *Bind9ServerConfig) DeepCopyInto(out *Bind9ServerConfig) {
	*out = *in
	if in.Forwarders != nil {
		out.Forwarders = make([]string, len(in.Forwarders))
		copy(out.Forwarders, in.Forwarders)
	}
	if in.ACLs != nil {
		out.ACLs = make([]ACLConfig, len(in.ACLs))
		for i := range in.ACLs {
			in.ACLs[i].DeepCopyInto(&out.ACLs[i])
		}
	}
	in.Resources.DeepCopyInto(&out.Resources)
}

func (in *Bind9ServerConfig) DeepCopy() *Bind9ServerConfig {
	if in == nil {
		return nil
	}
	out := new(Bind9ServerConfig)
	in.DeepCopyInto(out)
	return out
}

func (in *ClusterBind9ProviderSpec) DeepCopyInto(out *ClusterBind9ProviderSpec) {
	*out = *in
	if in.TargetNamespaces != nil {
		out.TargetNamespaces = make([]string, len(in.TargetNamespaces))
		copy(out.TargetNamespaces, in.TargetNamespaces)
	}
	in.DefaultConfig.DeepCopyInto(&out.DefaultConfig)
}

func (in *ClusterBind9ProviderSpec) DeepCopy() *ClusterBind9ProviderSpec {
	if in == nil {
		return nil
	}
	out := new(ClusterBind9ProviderSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *ClusterBind9ProviderStatus) DeepCopyInto(out *ClusterBind9ProviderStatus) {
	*out = *in
	if in.ManagedNamespaces != nil {
		out.ManagedNamespaces = make([]string, len(in.ManagedNamespaces))
		copy(out.ManagedNamespaces, in.ManagedNamespaces)
	}
	if in.Conditions != nil {
		out.Conditions = make([]metav1.Condition, len(in.Conditions))
		for i := range in.Conditions {
			in.Conditions[i].DeepCopyInto(&out.Conditions[i])
		}
	}
}

func (in *ClusterBind9ProviderStatus) DeepCopy() *ClusterBind9ProviderStatus {
	if in == nil {
		return nil
	}
	out := new(ClusterBind9ProviderStatus)
	in.DeepCopyInto(out)
	return out
}

func (in *ClusterBind9Provider) DeepCopyInto(out *ClusterBind9Provider) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

func (in *ClusterBind9Provider) DeepCopy() *ClusterBind9Provider {
	if in == nil {
		return nil
	}
	out := new(ClusterBind9Provider)
	in.DeepCopyInto(out)
	return out
}

func (in *ClusterBind9Provider) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *ClusterBind9ProviderList) DeepCopyInto(out *ClusterBind9ProviderList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]ClusterBind9Provider, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *ClusterBind9ProviderList) DeepCopy() *ClusterBind9ProviderList {
	if in == nil {
		return nil
	}
	out := new(ClusterBind9ProviderList)
	in.DeepCopyInto(out)
	return out
}

func (in *ClusterBind9ProviderList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// ---------------- bind9cluster_types.go ----------------

func (in *Bind9ClusterSpec) DeepCopyInto(out *Bind9ClusterSpec) {
	*out = *in
	in.Config.DeepCopyInto(&out.Config)
	if in.ProviderRef != nil {
		out.ProviderRef = new(ObjectReference)
		*out.ProviderRef = *in.ProviderRef
	}
}

func (in *Bind9ClusterSpec) DeepCopy() *Bind9ClusterSpec {
	if in == nil {
		return nil
	}
	out := new(Bind9ClusterSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *Bind9ClusterStatus) DeepCopyInto(out *Bind9ClusterStatus) {
	*out = *in
	if in.Conditions != nil {
		out.Conditions = make([]metav1.Condition, len(in.Conditions))
		for i := range in.Conditions {
			in.Conditions[i].DeepCopyInto(&out.Conditions[i])
		}
	}
}

func (in *Bind9ClusterStatus) DeepCopy() *Bind9ClusterStatus {
	if in == nil {
		return nil
	}
	out := new(Bind9ClusterStatus)
	in.DeepCopyInto(out)
	return out
}

func (in *Bind9Cluster) DeepCopyInto(out *Bind9Cluster) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

func (in *Bind9Cluster) DeepCopy() *Bind9Cluster {
	if in == nil {
		return nil
	}
	out := new(Bind9Cluster)
	in.DeepCopyInto(out)
	return out
}

func (in *Bind9Cluster) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *Bind9ClusterList) DeepCopyInto(out *Bind9ClusterList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]Bind9Cluster, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *Bind9ClusterList) DeepCopy() *Bind9ClusterList {
	if in == nil {
		return nil
	}
	out := new(Bind9ClusterList)
	in.DeepCopyInto(out)
	return out
}

func (in *Bind9ClusterList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// ---------------- bind9instance_types.go ----------------

func (in *Bind9InstanceSpec) DeepCopyInto(out *Bind9InstanceSpec) {
	*out = *in
	in.Config.DeepCopyInto(&out.Config)
}

func (in *Bind9InstanceSpec) DeepCopy() *Bind9InstanceSpec {
	if in == nil {
		return nil
	}
	out := new(Bind9InstanceSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *Bind9InstanceStatus) DeepCopyInto(out *Bind9InstanceStatus) {
	*out = *in
	if in.Endpoints != nil {
		out.Endpoints = make([]string, len(in.Endpoints))
		copy(out.Endpoints, in.Endpoints)
	}
	if in.Conditions != nil {
		out.Conditions = make([]metav1.Condition, len(in.Conditions))
		for i := range in.Conditions {
			in.Conditions[i].DeepCopyInto(&out.Conditions[i])
		}
	}
}

func (in *Bind9InstanceStatus) DeepCopy() *Bind9InstanceStatus {
	if in == nil {
		return nil
	}
	out := new(Bind9InstanceStatus)
	in.DeepCopyInto(out)
	return out
}

func (in *Bind9Instance) DeepCopyInto(out *Bind9Instance) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

func (in *Bind9Instance) DeepCopy() *Bind9Instance {
	if in == nil {
		return nil
	}
	out := new(Bind9Instance)
	in.DeepCopyInto(out)
	return out
}

func (in *Bind9Instance) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *Bind9InstanceList) DeepCopyInto(out *Bind9InstanceList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]Bind9Instance, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *Bind9InstanceList) DeepCopy() *Bind9InstanceList {
	if in == nil {
		return nil
	}
	out := new(Bind9InstanceList)
	in.DeepCopyInto(out)
	return out
}

func (in *Bind9InstanceList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// ---------------- dnszone_types.go ----------------

func (in *SOAConfig) DeepCopyInto(out *SOAConfig) {
	*out = *in
}

func (in *SOAConfig) DeepCopy() *SOAConfig {
	if in == nil {
		return nil
	}
	out := new(SOAConfig)
	in.DeepCopyInto(out)
	return out
}

func (in *DNSZoneSpec) DeepCopyInto(out *DNSZoneSpec) {
	*out = *in
	if in.InstanceSelector != nil {
		out.InstanceSelector = in.InstanceSelector.DeepCopy()
	}
	out.SOA = in.SOA
	if in.RecordsFrom != nil {
		out.RecordsFrom = make([]LabelSelectorReference, len(in.RecordsFrom))
		for i := range in.RecordsFrom {
			in.RecordsFrom[i].DeepCopyInto(&out.RecordsFrom[i])
		}
	}
}

func (in *DNSZoneSpec) DeepCopy() *DNSZoneSpec {
	if in == nil {
		return nil
	}
	out := new(DNSZoneSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *DNSZoneStatus) DeepCopyInto(out *DNSZoneStatus) {
	*out = *in
	if in.Bind9Instances != nil {
		out.Bind9Instances = make([]InstanceReference, len(in.Bind9Instances))
		copy(out.Bind9Instances, in.Bind9Instances)
	}
	if in.Records != nil {
		out.Records = make([]ObjectReference, len(in.Records))
		copy(out.Records, in.Records)
	}
	if in.Conditions != nil {
		out.Conditions = make([]metav1.Condition, len(in.Conditions))
		for i := range in.Conditions {
			in.Conditions[i].DeepCopyInto(&out.Conditions[i])
		}
	}
}

func (in *DNSZoneStatus) DeepCopy() *DNSZoneStatus {
	if in == nil {
		return nil
	}
	out := new(DNSZoneStatus)
	in.DeepCopyInto(out)
	return out
}

func (in *DNSZone) DeepCopyInto(out *DNSZone) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

func (in *DNSZone) DeepCopy() *DNSZone {
	if in == nil {
		return nil
	}
	out := new(DNSZone)
	in.DeepCopyInto(out)
	return out
}

func (in *DNSZone) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *DNSZoneList) DeepCopyInto(out *DNSZoneList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]DNSZone, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *DNSZoneList) DeepCopy() *DNSZoneList {
	if in == nil {
		return nil
	}
	out := new(DNSZoneList)
	in.DeepCopyInto(out)
	return out
}

func (in *DNSZoneList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// ---------------- record_types.go ----------------

func (in *PrimaryUpdateStatus) DeepCopyInto(out *PrimaryUpdateStatus) {
	*out = *in
}

func (in *RecordStatus) DeepCopyInto(out *RecordStatus) {
	*out = *in
	if in.ZoneRef != nil {
		out.ZoneRef = new(ZoneReference)
		*out.ZoneRef = *in.ZoneRef
	}
	if in.PrimaryStatus != nil {
		out.PrimaryStatus = make([]PrimaryUpdateStatus, len(in.PrimaryStatus))
		copy(out.PrimaryStatus, in.PrimaryStatus)
	}
	if in.Conditions != nil {
		out.Conditions = make([]metav1.Condition, len(in.Conditions))
		for i := range in.Conditions {
			in.Conditions[i].DeepCopyInto(&out.Conditions[i])
		}
	}
}

func (in *RecordStatus) DeepCopy() *RecordStatus {
	if in == nil {
		return nil
	}
	out := new(RecordStatus)
	in.DeepCopyInto(out)
	return out
}

// genRecordDeepCopy is not a real generic (this file targets pre-generics
// style to match controller-gen output) -- each kind gets its own, mechanical
// pair below.

func (in *ARecordSpec) DeepCopyInto(out *ARecordSpec)   { *out = *in }
func (in *ARecordSpec) DeepCopy() *ARecordSpec          { out := new(ARecordSpec); in.DeepCopyInto(out); return out }
func (in *ARecord) DeepCopyInto(out *ARecord) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	out.Spec = in.Spec
	in.Status.DeepCopyInto(&out.Status)
}
func (in *ARecord) DeepCopy() *ARecord { out := new(ARecord); in.DeepCopyInto(out); return out }
func (in *ARecord) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
func (in *ARecordList) DeepCopyInto(out *ARecordList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]ARecord, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}
func (in *ARecordList) DeepCopy() *ARecordList { out := new(ARecordList); in.DeepCopyInto(out); return out }
func (in *ARecordList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *AAAARecordSpec) DeepCopyInto(out *AAAARecordSpec) { *out = *in }
func (in *AAAARecordSpec) DeepCopy() *AAAARecordSpec {
	out := new(AAAARecordSpec)
	in.DeepCopyInto(out)
	return out
}
func (in *AAAARecord) DeepCopyInto(out *AAAARecord) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	out.Spec = in.Spec
	in.Status.DeepCopyInto(&out.Status)
}
func (in *AAAARecord) DeepCopy() *AAAARecord { out := new(AAAARecord); in.DeepCopyInto(out); return out }
func (in *AAAARecord) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
func (in *AAAARecordList) DeepCopyInto(out *AAAARecordList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]AAAARecord, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}
func (in *AAAARecordList) DeepCopy() *AAAARecordList {
	out := new(AAAARecordList)
	in.DeepCopyInto(out)
	return out
}
func (in *AAAARecordList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *CNAMERecordSpec) DeepCopyInto(out *CNAMERecordSpec) { *out = *in }
func (in *CNAMERecordSpec) DeepCopy() *CNAMERecordSpec {
	out := new(CNAMERecordSpec)
	in.DeepCopyInto(out)
	return out
}
func (in *CNAMERecord) DeepCopyInto(out *CNAMERecord) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	out.Spec = in.Spec
	in.Status.DeepCopyInto(&out.Status)
}
func (in *CNAMERecord) DeepCopy() *CNAMERecord { out := new(CNAMERecord); in.DeepCopyInto(out); return out }
func (in *CNAMERecord) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
func (in *CNAMERecordList) DeepCopyInto(out *CNAMERecordList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]CNAMERecord, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}
func (in *CNAMERecordList) DeepCopy() *CNAMERecordList {
	out := new(CNAMERecordList)
	in.DeepCopyInto(out)
	return out
}
func (in *CNAMERecordList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *MXRecordSpec) DeepCopyInto(out *MXRecordSpec) { *out = *in }
func (in *MXRecordSpec) DeepCopy() *MXRecordSpec        { out := new(MXRecordSpec); in.DeepCopyInto(out); return out }
func (in *MXRecord) DeepCopyInto(out *MXRecord) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	out.Spec = in.Spec
	in.Status.DeepCopyInto(&out.Status)
}
func (in *MXRecord) DeepCopy() *MXRecord { out := new(MXRecord); in.DeepCopyInto(out); return out }
func (in *MXRecord) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
func (in *MXRecordList) DeepCopyInto(out *MXRecordList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]MXRecord, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}
func (in *MXRecordList) DeepCopy() *MXRecordList { out := new(MXRecordList); in.DeepCopyInto(out); return out }
func (in *MXRecordList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *TXTRecordSpec) DeepCopyInto(out *TXTRecordSpec) {
	*out = *in
	if in.Values != nil {
		out.Values = make([]string, len(in.Values))
		copy(out.Values, in.Values)
	}
}
func (in *TXTRecordSpec) DeepCopy() *TXTRecordSpec {
	out := new(TXTRecordSpec)
	in.DeepCopyInto(out)
	return out
}
func (in *TXTRecord) DeepCopyInto(out *TXTRecord) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}
func (in *TXTRecord) DeepCopy() *TXTRecord { out := new(TXTRecord); in.DeepCopyInto(out); return out }
func (in *TXTRecord) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
func (in *TXTRecordList) DeepCopyInto(out *TXTRecordList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]TXTRecord, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}
func (in *TXTRecordList) DeepCopy() *TXTRecordList {
	out := new(TXTRecordList)
	in.DeepCopyInto(out)
	return out
}
func (in *TXTRecordList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *NSRecordSpec) DeepCopyInto(out *NSRecordSpec) { *out = *in }
func (in *NSRecordSpec) DeepCopy() *NSRecordSpec        { out := new(NSRecordSpec); in.DeepCopyInto(out); return out }
func (in *NSRecord) DeepCopyInto(out *NSRecord) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	out.Spec = in.Spec
	in.Status.DeepCopyInto(&out.Status)
}
func (in *NSRecord) DeepCopy() *NSRecord { out := new(NSRecord); in.DeepCopyInto(out); return out }
func (in *NSRecord) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
func (in *NSRecordList) DeepCopyInto(out *NSRecordList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]NSRecord, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}
func (in *NSRecordList) DeepCopy() *NSRecordList { out := new(NSRecordList); in.DeepCopyInto(out); return out }
func (in *NSRecordList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *SRVRecordSpec) DeepCopyInto(out *SRVRecordSpec) { *out = *in }
func (in *SRVRecordSpec) DeepCopy() *SRVRecordSpec {
	out := new(SRVRecordSpec)
	in.DeepCopyInto(out)
	return out
}
func (in *SRVRecord) DeepCopyInto(out *SRVRecord) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	out.Spec = in.Spec
	in.Status.DeepCopyInto(&out.Status)
}
func (in *SRVRecord) DeepCopy() *SRVRecord { out := new(SRVRecord); in.DeepCopyInto(out); return out }
func (in *SRVRecord) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
func (in *SRVRecordList) DeepCopyInto(out *SRVRecordList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]SRVRecord, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}
func (in *SRVRecordList) DeepCopy() *SRVRecordList {
	out := new(SRVRecordList)
	in.DeepCopyInto(out)
	return out
}
func (in *SRVRecordList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *CAARecordSpec) DeepCopyInto(out *CAARecordSpec) { *out = *in }
func (in *CAARecordSpec) DeepCopy() *CAARecordSpec {
	out := new(CAARecordSpec)
	in.DeepCopyInto(out)
	return out
}
func (in *CAARecord) DeepCopyInto(out *CAARecord) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	out.Spec = in.Spec
	in.Status.DeepCopyInto(&out.Status)
}
func (in *CAARecord) DeepCopy() *CAARecord { out := new(CAARecord); in.DeepCopyInto(out); return out }
func (in *CAARecord) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
func (in *CAARecordList) DeepCopyInto(out *CAARecordList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]CAARecord, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}
func (in *CAARecordList) DeepCopy() *CAARecordList {
	out := new(CAARecordList)
	in.DeepCopyInto(out)
	return out
}
func (in *CAARecordList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
