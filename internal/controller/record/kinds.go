package record

import (
	"github.com/go-logr/logr"
	"github.com/miekg/dns"
	"k8s.io/apimachinery/pkg/runtime"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/controllerutils"
	"github.com/firestoned/bindy/internal/dnsupdate"
)

// SetupWithManager registers the controller for whichever kind Adapter names.
func (r *Reconciler) SetupWithManager(mgr ctrl.Manager) error {
	return setupWithManager(mgr, r.Adapter.NewObject(), r)
}

// ---- A ----

type aRecordAdapter struct{}

func (aRecordAdapter) Kind() string    { return "ARecord" }
func (aRecordAdapter) RRType() uint16  { return dns.TypeA }
func (aRecordAdapter) NewObject() bindyv1beta1.RecordObject { return &bindyv1beta1.ARecord{} }
func (aRecordAdapter) OwnerName(obj bindyv1beta1.RecordObject) string {
	return obj.(*bindyv1beta1.ARecord).Spec.OwnerName
}
func (aRecordAdapter) Render(zoneName string, obj bindyv1beta1.RecordObject) (dns.RR, error) {
	return dnsupdate.RenderA(zoneName, obj.(*bindyv1beta1.ARecord).Spec)
}

// NewARecordReconciler builds the Reconciler for ARecord.
func NewARecordReconciler(c client.Client, scheme *runtime.Scheme, metrics *controllerutils.ControllerMetrics, log logr.Logger) *Reconciler {
	return &Reconciler{Client: c, Scheme: scheme, Metrics: metrics, Log: log, Adapter: aRecordAdapter{}}
}

// ---- AAAA ----

type aaaaRecordAdapter struct{}

func (aaaaRecordAdapter) Kind() string   { return "AAAARecord" }
func (aaaaRecordAdapter) RRType() uint16 { return dns.TypeAAAA }
func (aaaaRecordAdapter) NewObject() bindyv1beta1.RecordObject {
	return &bindyv1beta1.AAAARecord{}
}
func (aaaaRecordAdapter) OwnerName(obj bindyv1beta1.RecordObject) string {
	return obj.(*bindyv1beta1.AAAARecord).Spec.OwnerName
}
func (aaaaRecordAdapter) Render(zoneName string, obj bindyv1beta1.RecordObject) (dns.RR, error) {
	return dnsupdate.RenderAAAA(zoneName, obj.(*bindyv1beta1.AAAARecord).Spec)
}

// NewAAAARecordReconciler builds the Reconciler for AAAARecord.
func NewAAAARecordReconciler(c client.Client, scheme *runtime.Scheme, metrics *controllerutils.ControllerMetrics, log logr.Logger) *Reconciler {
	return &Reconciler{Client: c, Scheme: scheme, Metrics: metrics, Log: log, Adapter: aaaaRecordAdapter{}}
}

// ---- CNAME ----

type cnameRecordAdapter struct{}

func (cnameRecordAdapter) Kind() string   { return "CNAMERecord" }
func (cnameRecordAdapter) RRType() uint16 { return dns.TypeCNAME }
func (cnameRecordAdapter) NewObject() bindyv1beta1.RecordObject {
	return &bindyv1beta1.CNAMERecord{}
}
func (cnameRecordAdapter) OwnerName(obj bindyv1beta1.RecordObject) string {
	return obj.(*bindyv1beta1.CNAMERecord).Spec.OwnerName
}
func (cnameRecordAdapter) Render(zoneName string, obj bindyv1beta1.RecordObject) (dns.RR, error) {
	return dnsupdate.RenderCNAME(zoneName, obj.(*bindyv1beta1.CNAMERecord).Spec)
}

// NewCNAMERecordReconciler builds the Reconciler for CNAMERecord.
func NewCNAMERecordReconciler(c client.Client, scheme *runtime.Scheme, metrics *controllerutils.ControllerMetrics, log logr.Logger) *Reconciler {
	return &Reconciler{Client: c, Scheme: scheme, Metrics: metrics, Log: log, Adapter: cnameRecordAdapter{}}
}

// ---- MX ----

type mxRecordAdapter struct{}

func (mxRecordAdapter) Kind() string   { return "MXRecord" }
func (mxRecordAdapter) RRType() uint16 { return dns.TypeMX }
func (mxRecordAdapter) NewObject() bindyv1beta1.RecordObject {
	return &bindyv1beta1.MXRecord{}
}
func (mxRecordAdapter) OwnerName(obj bindyv1beta1.RecordObject) string {
	return obj.(*bindyv1beta1.MXRecord).Spec.OwnerName
}
func (mxRecordAdapter) Render(zoneName string, obj bindyv1beta1.RecordObject) (dns.RR, error) {
	return dnsupdate.RenderMX(zoneName, obj.(*bindyv1beta1.MXRecord).Spec)
}

// NewMXRecordReconciler builds the Reconciler for MXRecord.
func NewMXRecordReconciler(c client.Client, scheme *runtime.Scheme, metrics *controllerutils.ControllerMetrics, log logr.Logger) *Reconciler {
	return &Reconciler{Client: c, Scheme: scheme, Metrics: metrics, Log: log, Adapter: mxRecordAdapter{}}
}

// ---- TXT ----

type txtRecordAdapter struct{}

func (txtRecordAdapter) Kind() string   { return "TXTRecord" }
func (txtRecordAdapter) RRType() uint16 { return dns.TypeTXT }
func (txtRecordAdapter) NewObject() bindyv1beta1.RecordObject {
	return &bindyv1beta1.TXTRecord{}
}
func (txtRecordAdapter) OwnerName(obj bindyv1beta1.RecordObject) string {
	return obj.(*bindyv1beta1.TXTRecord).Spec.OwnerName
}
func (txtRecordAdapter) Render(zoneName string, obj bindyv1beta1.RecordObject) (dns.RR, error) {
	return dnsupdate.RenderTXT(zoneName, obj.(*bindyv1beta1.TXTRecord).Spec)
}

// NewTXTRecordReconciler builds the Reconciler for TXTRecord.
func NewTXTRecordReconciler(c client.Client, scheme *runtime.Scheme, metrics *controllerutils.ControllerMetrics, log logr.Logger) *Reconciler {
	return &Reconciler{Client: c, Scheme: scheme, Metrics: metrics, Log: log, Adapter: txtRecordAdapter{}}
}

// ---- NS ----

type nsRecordAdapter struct{}

func (nsRecordAdapter) Kind() string   { return "NSRecord" }
func (nsRecordAdapter) RRType() uint16 { return dns.TypeNS }
func (nsRecordAdapter) NewObject() bindyv1beta1.RecordObject {
	return &bindyv1beta1.NSRecord{}
}
func (nsRecordAdapter) OwnerName(obj bindyv1beta1.RecordObject) string {
	return obj.(*bindyv1beta1.NSRecord).Spec.OwnerName
}
func (nsRecordAdapter) Render(zoneName string, obj bindyv1beta1.RecordObject) (dns.RR, error) {
	return dnsupdate.RenderNS(zoneName, obj.(*bindyv1beta1.NSRecord).Spec)
}

// NewNSRecordReconciler builds the Reconciler for NSRecord.
func NewNSRecordReconciler(c client.Client, scheme *runtime.Scheme, metrics *controllerutils.ControllerMetrics, log logr.Logger) *Reconciler {
	return &Reconciler{Client: c, Scheme: scheme, Metrics: metrics, Log: log, Adapter: nsRecordAdapter{}}
}

// ---- SRV ----

type srvRecordAdapter struct{}

func (srvRecordAdapter) Kind() string   { return "SRVRecord" }
func (srvRecordAdapter) RRType() uint16 { return dns.TypeSRV }
func (srvRecordAdapter) NewObject() bindyv1beta1.RecordObject {
	return &bindyv1beta1.SRVRecord{}
}
func (srvRecordAdapter) OwnerName(obj bindyv1beta1.RecordObject) string {
	return obj.(*bindyv1beta1.SRVRecord).Spec.OwnerName
}
func (srvRecordAdapter) Render(zoneName string, obj bindyv1beta1.RecordObject) (dns.RR, error) {
	return dnsupdate.RenderSRV(zoneName, obj.(*bindyv1beta1.SRVRecord).Spec)
}

// NewSRVRecordReconciler builds the Reconciler for SRVRecord.
func NewSRVRecordReconciler(c client.Client, scheme *runtime.Scheme, metrics *controllerutils.ControllerMetrics, log logr.Logger) *Reconciler {
	return &Reconciler{Client: c, Scheme: scheme, Metrics: metrics, Log: log, Adapter: srvRecordAdapter{}}
}

// ---- CAA ----

type caaRecordAdapter struct{}

func (caaRecordAdapter) Kind() string   { return "CAARecord" }
func (caaRecordAdapter) RRType() uint16 { return dns.TypeCAA }
func (caaRecordAdapter) NewObject() bindyv1beta1.RecordObject {
	return &bindyv1beta1.CAARecord{}
}
func (caaRecordAdapter) OwnerName(obj bindyv1beta1.RecordObject) string {
	return obj.(*bindyv1beta1.CAARecord).Spec.OwnerName
}
func (caaRecordAdapter) Render(zoneName string, obj bindyv1beta1.RecordObject) (dns.RR, error) {
	return dnsupdate.RenderCAA(zoneName, obj.(*bindyv1beta1.CAARecord).Spec)
}

// NewCAARecordReconciler builds the Reconciler for CAARecord.
func NewCAARecordReconciler(c client.Client, scheme *runtime.Scheme, metrics *controllerutils.ControllerMetrics, log logr.Logger) *Reconciler {
	return &Reconciler{Client: c, Scheme: scheme, Metrics: metrics, Log: log, Adapter: caaRecordAdapter{}}
}
