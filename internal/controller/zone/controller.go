// Package zone reconciles DNSZone: the pivot component that both tags
// matching record resources with a back-reference (spec §4.7 Responsibility
// A) and installs the zone on every instance in its effective set (spec
// §4.7 Responsibility B).
package zone

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/workqueue"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller"
	"sigs.k8s.io/controller-runtime/pkg/handler"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/controllerutils"
	"github.com/firestoned/bindy/internal/validation"
)

// Reconciler reconciles a DNSZone.
type Reconciler struct {
	client.Client
	Scheme  *runtime.Scheme
	Metrics *controllerutils.ControllerMetrics
	Log     logr.Logger

	// baseURLFor overrides how an instance's sidecar base URL is derived.
	// Nil in production, where bind9ClientFor builds the in-cluster Service
	// DNS name; tests set this to point at an httptest.Server instead.
	baseURLFor func(instance *bindyv1beta1.Bind9Instance) string
}

// zoneWorkerCount is higher than the other controllers' because zone
// reconciles fan out to every record kind and every instance in the
// effective set (spec §5: "4 for the zone controller").
const zoneWorkerCount = 4

func (r *Reconciler) SetupWithManager(mgr ctrl.Manager) error {
	recordKinds := []client.Object{
		&bindyv1beta1.ARecord{}, &bindyv1beta1.AAAARecord{}, &bindyv1beta1.CNAMERecord{},
		&bindyv1beta1.MXRecord{}, &bindyv1beta1.TXTRecord{}, &bindyv1beta1.NSRecord{},
		&bindyv1beta1.SRVRecord{}, &bindyv1beta1.CAARecord{},
	}

	bldr := ctrl.NewControllerManagedBy(mgr).
		For(&bindyv1beta1.DNSZone{}).
		WithOptions(controller.Options{
			MaxConcurrentReconciles: zoneWorkerCount,
			RateLimiter:             workqueue.NewItemExponentialFailureRateLimiter(1*time.Second, 30*time.Second),
		})

	// A change to any record in a namespace can change which zone wins the
	// tie-break for it, so every record kind fans in to a reconcile of
	// every DNSZone in that namespace (spec §4.7 "Watch fan-in").
	for _, kind := range recordKinds {
		bldr = bldr.Watches(kind, handler.EnqueueRequestsFromMapFunc(r.zonesInNamespace))
	}

	return bldr.Complete(r)
}

func (r *Reconciler) zonesInNamespace(ctx context.Context, obj client.Object) []ctrl.Request {
	var zones bindyv1beta1.DNSZoneList
	if err := r.List(ctx, &zones, client.InNamespace(obj.GetNamespace())); err != nil {
		return nil
	}
	requests := make([]ctrl.Request, 0, len(zones.Items))
	for _, z := range zones.Items {
		requests = append(requests, ctrl.Request{NamespacedName: client.ObjectKeyFromObject(&z)})
	}
	return requests
}

func (r *Reconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	start := time.Now()

	dnsZone := &bindyv1beta1.DNSZone{}
	if err := r.Get(ctx, req.NamespacedName, dnsZone); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}

	ctx, log := controllerutils.WithCorrelationID(ctx, r.Log)

	if !dnsZone.DeletionTimestamp.IsZero() {
		if err := r.revokeZoneFromInstances(ctx, dnsZone); err != nil {
			return ctrl.Result{}, fmt.Errorf("revoking zone from instances: %w", err)
		}
		if err := r.clearOwnedRecordRefs(ctx, dnsZone); err != nil {
			return ctrl.Result{}, err
		}
		if err := controllerutils.RemoveFinalizer(ctx, r.Client, dnsZone, bindyv1beta1.ZoneFinalizer); err != nil {
			return ctrl.Result{}, err
		}
		return ctrl.Result{}, nil
	}

	if err := controllerutils.EnsureFinalizer(ctx, r.Client, dnsZone, bindyv1beta1.ZoneFinalizer); err != nil {
		return ctrl.Result{}, err
	}

	if err := validation.ValidateDNSZoneSpec(dnsZone.Spec); err != nil {
		controllerutils.SetCondition(&dnsZone.Status.Conditions, bindyv1beta1.ConditionStalled, metav1.ConditionTrue, bindyv1beta1.ReasonInvalidSpec, err.Error(), dnsZone.Generation)
		r.Metrics.ReconcileTotal.WithLabelValues("zone", "error").Inc()
		return ctrl.Result{}, r.Status().Update(ctx, dnsZone)
	}

	forceResync := dnsZone.Annotations[bindyv1beta1.AnnotationLastResync] != "" &&
		dnsZone.Annotations[bindyv1beta1.AnnotationLastResync] != dnsZone.Status.LastResyncObserved
	if controllerutils.ShouldReconcile(dnsZone.Generation, dnsZone.Status.ObservedGeneration, forceResync) {
		log.V(1).Info("reconciling", "zone", dnsZone.Name, "forceResync", forceResync)
	}
	dnsZone.Status.LastResyncObserved = dnsZone.Annotations[bindyv1beta1.AnnotationLastResync]

	claimed, err := r.discoverAndTagRecords(ctx, dnsZone)
	if err != nil {
		return ctrl.Result{}, fmt.Errorf("discovering records: %w", err)
	}

	instances, err := r.effectiveInstanceSet(ctx, dnsZone)
	if err != nil {
		r.Metrics.ReconcileTotal.WithLabelValues("zone", "error").Inc()
		controllerutils.SetCondition(&dnsZone.Status.Conditions, bindyv1beta1.ConditionStalled, metav1.ConditionTrue, bindyv1beta1.ReasonInvalidSpec, err.Error(), dnsZone.Generation)
		if serr := r.Status().Update(ctx, dnsZone); serr != nil {
			return ctrl.Result{}, serr
		}
		return ctrl.Result{}, err
	}

	if dnsZone.Spec.ClusterRef == "" && dnsZone.Spec.InstanceSelector == nil {
		controllerutils.SetCondition(&dnsZone.Status.Conditions, bindyv1beta1.ConditionStalled, metav1.ConditionTrue, bindyv1beta1.ReasonUnresolvedReference, "zone names neither a clusterRef nor an instanceSelector", dnsZone.Generation)
		return ctrl.Result{}, r.Status().Update(ctx, dnsZone)
	}
	if len(instances) == 0 {
		controllerutils.SetCondition(&dnsZone.Status.Conditions, bindyv1beta1.ConditionStalled, metav1.ConditionTrue, bindyv1beta1.ReasonEmptySelection, "no Bind9Instance matched clusterRef or instanceSelector", dnsZone.Generation)
		return ctrl.Result{}, r.Status().Update(ctx, dnsZone)
	}

	refs := r.installZone(ctx, dnsZone, instances)

	dnsZone.Status.ObservedGeneration = dnsZone.Generation
	dnsZone.Status.Bind9Instances = refs
	dnsZone.Status.Records = claimed

	allConfigured := true
	for _, ref := range refs {
		if ref.State != bindyv1beta1.InstanceSyncConfigured {
			allConfigured = false
			break
		}
	}

	readyStatus := metav1.ConditionFalse
	reason := bindyv1beta1.ReasonReconcileInProgress
	message := ""
	if allConfigured {
		readyStatus = metav1.ConditionTrue
		reason = bindyv1beta1.ReasonReconcileSucceeded
	} else {
		message = aggregateInstanceErrors(refs)
	}
	controllerutils.SetCondition(&dnsZone.Status.Conditions, bindyv1beta1.ConditionReady, readyStatus, reason, message, dnsZone.Generation)
	controllerutils.SetCondition(&dnsZone.Status.Conditions, bindyv1beta1.ConditionStalled, metav1.ConditionFalse, bindyv1beta1.ReasonReconcileSucceeded, "", dnsZone.Generation)

	if allConfigured && r.recordsReady(ctx, claimed) {
		r.notifySecondaries(ctx, dnsZone, instances)
	}

	if err := r.Status().Update(ctx, dnsZone); err != nil {
		return ctrl.Result{}, fmt.Errorf("updating zone status: %w", err)
	}

	r.Metrics.ReconcileDuration.WithLabelValues("zone").Observe(time.Since(start).Seconds())
	syncStates := []string{string(bindyv1beta1.InstanceSyncPending), string(bindyv1beta1.InstanceSyncConfigured), string(bindyv1beta1.InstanceSyncDegraded)}
	for _, ref := range refs {
		for _, state := range syncStates {
			value := 0.0
			if state == string(ref.State) {
				value = 1
			}
			r.Metrics.InstanceSyncState.WithLabelValues(dnsZone.Name, ref.Name, state).Set(value)
		}
	}
	r.Metrics.ReconcileTotal.WithLabelValues("zone", "success").Inc()

	if !allConfigured {
		return ctrl.Result{RequeueAfter: controllerutils.RequeueAfterDegraded}, nil
	}
	return ctrl.Result{RequeueAfter: controllerutils.RequeueAfterSteadyState}, nil
}

// recordsReady reports whether every record this zone claims carries a True
// Available condition, the trigger for requesting notify/retransfer (spec §4.7
// Responsibility B).
func (r *Reconciler) recordsReady(ctx context.Context, claimed []bindyv1beta1.ObjectReference) bool {
	for _, ref := range claimed {
		lister, ok := recordListers[ref.Kind]
		if !ok {
			continue
		}
		records, err := lister(ctx, r.Client, ref.Namespace)
		if err != nil {
			return false
		}
		found := false
		for _, record := range records {
			if record.GetName() != ref.Name {
				continue
			}
			found = true
			if !controllerutils.IsTrue(record.GetRecordStatus().Conditions, bindyv1beta1.ConditionAvailable) {
				return false
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// clearOwnedRecordRefs drops every record's zoneRef before the zone's
// finalizer is removed, so a deleted zone never leaves a dangling reference
// behind (spec §8 property 9: recreation restores the same back-references,
// which requires deletion to actually clear them first).
func (r *Reconciler) clearOwnedRecordRefs(ctx context.Context, dnsZone *bindyv1beta1.DNSZone) error {
	for _, lister := range recordListers {
		records, err := lister(ctx, r.Client, dnsZone.Namespace)
		if err != nil {
			return err
		}
		for _, record := range records {
			status := record.GetRecordStatus()
			if status.ZoneRef == nil || status.ZoneRef.Name != dnsZone.Name || status.ZoneRef.Namespace != dnsZone.Namespace {
				continue
			}
			status.ZoneRef = nil
			if err := r.Status().Update(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}
