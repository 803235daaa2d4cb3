package v1beta1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
)

// RecordObject is satisfied by all eight record kinds, letting the zone
// controller discover, match and tag records generically instead of
// special-casing each kind (spec §4.7 Responsibility A).
type RecordObject interface {
	runtime.Object
	metav1.Object
	GetRecordStatus() *RecordStatus
}

func (r *ARecord) GetRecordStatus() *RecordStatus     { return &r.Status }
func (r *AAAARecord) GetRecordStatus() *RecordStatus  { return &r.Status }
func (r *CNAMERecord) GetRecordStatus() *RecordStatus { return &r.Status }
func (r *MXRecord) GetRecordStatus() *RecordStatus    { return &r.Status }
func (r *TXTRecord) GetRecordStatus() *RecordStatus   { return &r.Status }
func (r *NSRecord) GetRecordStatus() *RecordStatus    { return &r.Status }
func (r *SRVRecord) GetRecordStatus() *RecordStatus   { return &r.Status }
func (r *CAARecord) GetRecordStatus() *RecordStatus   { return &r.Status }
