// Package record implements the shared reconcile template every record kind
// follows (spec §4.8): wait to be claimed by a zone, render the kind's RRset,
// replace it on every primary in the zone's effective instance set, and
// report the aggregate outcome. internal/controller/record/kinds.go
// instantiates one Reconciler per concrete kind via a small adapter, so the
// eight near-identical CRDs share one implementation instead of eight
// copy-pasted ones.
package record

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/hashicorp/go-multierror"
	"github.com/miekg/dns"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/controllerutils"
	"github.com/firestoned/bindy/internal/dnsupdate"
	"github.com/firestoned/bindy/internal/resourcebuilder"
)

// recordWorkerCount matches spec §5's default for small CRDs.
const recordWorkerCount = 2

// kindAdapter isolates the one thing that differs between the eight record
// kinds: how to build a fresh empty object and how to turn its spec into an
// RR. Everything else (finalizer handling, zone lookup, fan-out to
// primaries, status aggregation) is identical and lives in Reconciler.
type kindAdapter interface {
	// Kind is the CRD Kind string, used in metrics and logs.
	Kind() string
	// RRType is the RR type this kind manages, used to build the DELETE.
	RRType() uint16
	// NewObject returns a fresh, empty instance of the concrete type.
	NewObject() bindyv1beta1.RecordObject
	// OwnerName returns the spec's owner name, zone-relative or qualified.
	OwnerName(obj bindyv1beta1.RecordObject) string
	// Render builds the RR this object's spec describes under zoneName.
	Render(zoneName string, obj bindyv1beta1.RecordObject) (dns.RR, error)
}

// Reconciler reconciles one record kind, selected by Adapter.
type Reconciler struct {
	client.Client
	Scheme  *runtime.Scheme
	Metrics *controllerutils.ControllerMetrics
	Log     logr.Logger
	Adapter kindAdapter

	// dnsUpdateClientFor is a seam for tests; nil in production, where it
	// dials the instance's real DNS listener. Returning the updateClient
	// interface rather than *dnsupdate.Client lets tests substitute a stub
	// that never touches the network.
	dnsUpdateClientFor func(ctx context.Context, instance *bindyv1beta1.Bind9Instance) (updateClient, error)
}

// updateClient is the subset of *dnsupdate.Client the record template
// drives; named so tests can substitute a stub.
type updateClient interface {
	Replace(ctx context.Context, zone string, rr dns.RR) (*dnsupdate.Result, error)
	Delete(ctx context.Context, zone, owner string, rrtype uint16) (*dnsupdate.Result, error)
}

func setupWithManager(mgr ctrl.Manager, obj client.Object, r *Reconciler) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(obj).
		WithOptions(controllerOptions()).
		Complete(r)
}

func (r *Reconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	start := time.Now()
	metricsKind := "record:" + r.Adapter.Kind()

	obj := r.Adapter.NewObject()
	if err := r.Get(ctx, req.NamespacedName, obj); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}

	if !obj.GetDeletionTimestamp().IsZero() {
		return r.reconcileDelete(ctx, obj)
	}

	if err := controllerutils.EnsureFinalizer(ctx, r.Client, obj, bindyv1beta1.RecordFinalizer); err != nil {
		return ctrl.Result{}, err
	}

	status := obj.GetRecordStatus()

	if status.ZoneRef == nil {
		controllerutils.SetCondition(&status.Conditions, bindyv1beta1.ConditionNotSelected, metav1.ConditionTrue, bindyv1beta1.ReasonUnresolvedReference, "no DNSZone currently selects this record", obj.GetGeneration())
		controllerutils.SetCondition(&status.Conditions, bindyv1beta1.ConditionAvailable, metav1.ConditionFalse, bindyv1beta1.ReasonUnresolvedReference, "", obj.GetGeneration())
		if err := r.Status().Update(ctx, obj); err != nil {
			return ctrl.Result{}, err
		}
		r.Metrics.ReconcileTotal.WithLabelValues(metricsKind, "not_selected").Inc()
		return ctrl.Result{RequeueAfter: controllerutils.RequeueAfterNotSelected}, nil
	}
	controllerutils.SetCondition(&status.Conditions, bindyv1beta1.ConditionNotSelected, metav1.ConditionFalse, bindyv1beta1.ReasonReconcileSucceeded, "", obj.GetGeneration())

	var zone bindyv1beta1.DNSZone
	if err := r.Get(ctx, client.ObjectKey{Name: status.ZoneRef.Name, Namespace: status.ZoneRef.Namespace}, &zone); err != nil {
		if apierrors.IsNotFound(err) {
			controllerutils.SetCondition(&status.Conditions, bindyv1beta1.ConditionFailed, metav1.ConditionTrue, bindyv1beta1.ReasonZoneRefMissing, "referenced DNSZone no longer exists", obj.GetGeneration())
			if uerr := r.Status().Update(ctx, obj); uerr != nil {
				return ctrl.Result{}, uerr
			}
			r.Metrics.ReconcileTotal.WithLabelValues(metricsKind, "error").Inc()
			return ctrl.Result{RequeueAfter: controllerutils.RequeueAfterTransientError}, nil
		}
		return ctrl.Result{}, fmt.Errorf("loading referenced zone: %w", err)
	}

	rr, err := r.Adapter.Render(zone.Spec.ZoneName, obj)
	if err != nil {
		controllerutils.SetCondition(&status.Conditions, bindyv1beta1.ConditionFailed, metav1.ConditionTrue, bindyv1beta1.ReasonInvalidSpec, err.Error(), obj.GetGeneration())
		if uerr := r.Status().Update(ctx, obj); uerr != nil {
			return ctrl.Result{}, uerr
		}
		r.Metrics.ReconcileTotal.WithLabelValues(metricsKind, "error").Inc()
		return ctrl.Result{}, nil
	}

	instances, err := controllerutils.EffectiveInstanceSet(ctx, r.Client, zone.Namespace, zone.Spec.ClusterRef, zone.Spec.InstanceSelector)
	if err != nil {
		return ctrl.Result{}, fmt.Errorf("resolving zone's effective instance set: %w", err)
	}
	primaries := primariesOf(instances)

	results, successCount, transient := r.replaceOnPrimaries(ctx, &zone, primaries, rr)

	status.PrimaryStatus = results
	status.ObservedGeneration = obj.GetGeneration()
	applyOutcomeConditions(status, len(primaries), successCount, aggregatePrimaryErrors(results), obj.GetGeneration())

	if err := r.Status().Update(ctx, obj); err != nil {
		return ctrl.Result{}, fmt.Errorf("updating record status: %w", err)
	}

	r.Metrics.ReconcileDuration.WithLabelValues(metricsKind).Observe(time.Since(start).Seconds())

	switch {
	case len(primaries) == 0 || successCount == 0:
		r.Metrics.ReconcileTotal.WithLabelValues(metricsKind, "error").Inc()
		return ctrl.Result{RequeueAfter: controllerutils.RequeueAfterDegraded}, nil
	case transient || successCount < len(primaries):
		r.Metrics.ReconcileTotal.WithLabelValues(metricsKind, "success").Inc()
		return ctrl.Result{RequeueAfter: controllerutils.RequeueAfterTransientError}, nil
	default:
		r.Metrics.ReconcileTotal.WithLabelValues(metricsKind, "success").Inc()
		return ctrl.Result{RequeueAfter: controllerutils.RequeueAfterSteadyState}, nil
	}
}

// reconcileDelete issues a DELETE to every primary before letting the
// finalizer go, tolerating primaries that report the zone as already absent
// (spec §4.8 step 5).
func (r *Reconciler) reconcileDelete(ctx context.Context, obj bindyv1beta1.RecordObject) (ctrl.Result, error) {
	if !controllerutil.ContainsFinalizer(obj, bindyv1beta1.RecordFinalizer) {
		return ctrl.Result{}, nil
	}

	status := obj.GetRecordStatus()
	if status.ZoneRef == nil {
		return ctrl.Result{}, controllerutils.RemoveFinalizer(ctx, r.Client, obj, bindyv1beta1.RecordFinalizer)
	}

	var zone bindyv1beta1.DNSZone
	if err := r.Get(ctx, client.ObjectKey{Name: status.ZoneRef.Name, Namespace: status.ZoneRef.Namespace}, &zone); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, controllerutils.RemoveFinalizer(ctx, r.Client, obj, bindyv1beta1.RecordFinalizer)
		}
		return ctrl.Result{}, err
	}

	instances, err := controllerutils.EffectiveInstanceSet(ctx, r.Client, zone.Namespace, zone.Spec.ClusterRef, zone.Spec.InstanceSelector)
	if err != nil {
		return ctrl.Result{}, fmt.Errorf("resolving zone's effective instance set: %w", err)
	}

	ownerFQDN := dnsupdate.OwnerFQDN(zone.Spec.ZoneName, r.Adapter.OwnerName(obj))
	allAcked := true
	for _, instance := range primariesOf(instances) {
		updateClient, err := r.clientFor(ctx, &instance)
		if err != nil {
			allAcked = false
			continue
		}
		res, err := updateClient.Delete(ctx, zone.Spec.ZoneName, ownerFQDN, r.Adapter.RRType())
		if err != nil || res == nil || (res.Outcome != dnsupdate.OutcomeSuccess && res.Outcome != dnsupdate.OutcomeNotConfigured) {
			allAcked = false
		}
	}
	if !allAcked {
		return ctrl.Result{RequeueAfter: controllerutils.RequeueAfterTransientError}, nil
	}

	return ctrl.Result{}, controllerutils.RemoveFinalizer(ctx, r.Client, obj, bindyv1beta1.RecordFinalizer)
}

// replaceOnPrimaries issues rr's replace against every primary, bounded by
// the small, fixed primary counts this system deals with (spec §4.8 step 3:
// "parallel-bounded fashion" is satisfied here by the workqueue's
// per-controller concurrency cap rather than intra-reconcile fan-out, since
// a zone typically has one or two primaries).
func (r *Reconciler) replaceOnPrimaries(ctx context.Context, zone *bindyv1beta1.DNSZone, primaries []bindyv1beta1.Bind9Instance, rr dns.RR) ([]bindyv1beta1.PrimaryUpdateStatus, int, bool) {
	results := make([]bindyv1beta1.PrimaryUpdateStatus, 0, len(primaries))
	successCount := 0
	transient := false

	for _, instance := range primaries {
		attempt := bindyv1beta1.PrimaryUpdateStatus{InstanceName: instance.Name, LastAttempt: metav1.Now()}

		updateClient, err := r.clientFor(ctx, &instance)
		if err != nil {
			attempt.Message = err.Error()
			results = append(results, attempt)
			transient = true
			continue
		}

		result, err := updateClient.Replace(ctx, zone.Spec.ZoneName, rr)
		switch {
		case err == nil && result.Outcome == dnsupdate.OutcomeSuccess:
			attempt.Success = true
			successCount++
		case result != nil && result.Outcome == dnsupdate.OutcomeTransient:
			attempt.Message = fmt.Sprintf("transient failure (rcode %d)", result.RCode)
			transient = true
		case result != nil && result.Outcome == dnsupdate.OutcomeNotConfigured:
			attempt.Message = fmt.Sprintf("zone not yet configured on this primary (rcode %d)", result.RCode)
			transient = true
		case err != nil:
			attempt.Message = err.Error()
			transient = true
		default:
			attempt.Message = fmt.Sprintf("rejected (rcode %d)", result.RCode)
		}
		results = append(results, attempt)
	}
	return results, successCount, transient
}

// applyOutcomeConditions sets Available/Degraded/Failed per spec §4.8 step 4.
// message carries the aggregated per-primary failure detail (empty when
// every primary succeeded).
func applyOutcomeConditions(status *bindyv1beta1.RecordStatus, total, successCount int, message string, generation int64) {
	switch {
	case total == 0:
		controllerutils.SetCondition(&status.Conditions, bindyv1beta1.ConditionFailed, metav1.ConditionTrue, bindyv1beta1.ReasonEmptySelection, "zone has no primary instances", generation)
		controllerutils.SetCondition(&status.Conditions, bindyv1beta1.ConditionAvailable, metav1.ConditionFalse, bindyv1beta1.ReasonEmptySelection, "", generation)
		controllerutils.SetCondition(&status.Conditions, bindyv1beta1.ConditionDegraded, metav1.ConditionFalse, bindyv1beta1.ReasonEmptySelection, "", generation)
	case successCount == total:
		controllerutils.SetCondition(&status.Conditions, bindyv1beta1.ConditionAvailable, metav1.ConditionTrue, bindyv1beta1.ReasonReconcileSucceeded, "", generation)
		controllerutils.SetCondition(&status.Conditions, bindyv1beta1.ConditionDegraded, metav1.ConditionFalse, bindyv1beta1.ReasonReconcileSucceeded, "", generation)
		controllerutils.SetCondition(&status.Conditions, bindyv1beta1.ConditionFailed, metav1.ConditionFalse, bindyv1beta1.ReasonReconcileSucceeded, "", generation)
	case successCount == 0:
		controllerutils.SetCondition(&status.Conditions, bindyv1beta1.ConditionFailed, metav1.ConditionTrue, bindyv1beta1.ReasonAllPrimariesFailed, message, generation)
		controllerutils.SetCondition(&status.Conditions, bindyv1beta1.ConditionAvailable, metav1.ConditionFalse, bindyv1beta1.ReasonAllPrimariesFailed, "", generation)
	default:
		controllerutils.SetCondition(&status.Conditions, bindyv1beta1.ConditionDegraded, metav1.ConditionTrue, bindyv1beta1.ReasonPartialFailure, message, generation)
		controllerutils.SetCondition(&status.Conditions, bindyv1beta1.ConditionAvailable, metav1.ConditionTrue, bindyv1beta1.ReasonPartialFailure, "", generation)
	}
}

// aggregatePrimaryErrors joins every failed primary's message into one
// string for the record's Degraded/Failed condition (spec §4.3 Ordering,
// §7 partial success), the same aggregation pattern the zone controller
// uses for its own per-instance sync failures.
func aggregatePrimaryErrors(results []bindyv1beta1.PrimaryUpdateStatus) string {
	var result *multierror.Error
	for _, r := range results {
		if !r.Success && r.Message != "" {
			result = multierror.Append(result, fmt.Errorf("%s: %s", r.InstanceName, r.Message))
		}
	}
	if result == nil {
		return ""
	}
	return result.Error()
}

func primariesOf(instances []bindyv1beta1.Bind9Instance) []bindyv1beta1.Bind9Instance {
	var out []bindyv1beta1.Bind9Instance
	for _, instance := range instances {
		if instance.Spec.Role == bindyv1beta1.RolePrimary {
			out = append(out, instance)
		}
	}
	return out
}

// clientFor builds a dnsupdate.Client for instance's DNS listener, loading
// its TSIG key material from the instance's key Secret.
func (r *Reconciler) clientFor(ctx context.Context, instance *bindyv1beta1.Bind9Instance) (updateClient, error) {
	if r.dnsUpdateClientFor != nil {
		return r.dnsUpdateClientFor(ctx, instance)
	}

	var secret corev1.Secret
	if err := r.Get(ctx, client.ObjectKey{Name: bindyv1beta1.KeySecretName(instance.Name), Namespace: instance.Namespace}, &secret); err != nil {
		return nil, fmt.Errorf("loading key secret for %s: %w", instance.Name, err)
	}
	keyName := string(secret.Data[resourcebuilder.SecretKeyTSIGName])
	keyB64 := string(secret.Data[resourcebuilder.SecretKeyTSIGSecret])
	addr := fmt.Sprintf("%s.%s.svc:%d", instance.Name, instance.Namespace, resourcebuilder.DNSPort)

	onTrip := func() {
		r.Metrics.BreakerTripsTotal.WithLabelValues(instance.Name, "dnsupdate").Inc()
	}
	return dnsupdate.New(instance.Name, addr, keyName, keyB64, onTrip), nil
}
