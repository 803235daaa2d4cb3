// Package cluster reconciles Bind9Cluster: materializing deterministically
// named primary and secondary Bind9Instance children and scaling them up or
// down to match spec (spec §4.5).
package cluster

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/workqueue"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/controllerutils"
)

// Reconciler reconciles a Bind9Cluster.
type Reconciler struct {
	client.Client
	Scheme  *runtime.Scheme
	Metrics *controllerutils.ControllerMetrics
}

func (r *Reconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&bindyv1beta1.Bind9Cluster{}).
		WithOptions(controller.Options{
			RateLimiter: workqueue.NewItemExponentialFailureRateLimiter(1*time.Second, 30*time.Second),
		}).
		Owns(&bindyv1beta1.Bind9Instance{}).
		Complete(r)
}

func (r *Reconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	log := ctrl.LoggerFrom(ctx)
	start := time.Now()

	bindCluster := &bindyv1beta1.Bind9Cluster{}
	if err := r.Get(ctx, req.NamespacedName, bindCluster); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}

	if !bindCluster.DeletionTimestamp.IsZero() {
		if err := r.deleteChildInstances(ctx, bindCluster); err != nil {
			return ctrl.Result{}, fmt.Errorf("deleting child instances: %w", err)
		}
		if err := controllerutils.RemoveFinalizer(ctx, r.Client, bindCluster, bindyv1beta1.ClusterFinalizer); err != nil {
			return ctrl.Result{}, err
		}
		return ctrl.Result{}, nil
	}

	if err := controllerutils.EnsureFinalizer(ctx, r.Client, bindCluster, bindyv1beta1.ClusterFinalizer); err != nil {
		return ctrl.Result{}, err
	}

	primariesReady, blockedPrimary, err := r.reconcileRole(ctx, bindCluster, bindyv1beta1.RolePrimary, bindCluster.Spec.PrimaryReplicas)
	if err != nil {
		return ctrl.Result{}, fmt.Errorf("reconciling primaries: %w", err)
	}
	secondariesReady, blockedSecondary, err := r.reconcileRole(ctx, bindCluster, bindyv1beta1.RoleSecondary, bindCluster.Spec.SecondaryReplicas)
	if err != nil {
		return ctrl.Result{}, fmt.Errorf("reconciling secondaries: %w", err)
	}

	bindCluster.Status.ObservedGeneration = bindCluster.Generation
	bindCluster.Status.PrimaryReplicas = primariesReady
	bindCluster.Status.SecondaryReplicas = secondariesReady
	blocked := blockedPrimary || blockedSecondary
	bindCluster.Status.Ready = !blocked && primariesReady == bindCluster.Spec.PrimaryReplicas && secondariesReady == bindCluster.Spec.SecondaryReplicas

	if blocked {
		controllerutils.SetCondition(&bindCluster.Status.Conditions, bindyv1beta1.ConditionScaleBlocked, metav1.ConditionTrue, bindyv1beta1.ReasonZoneBlockingScale, "a DNSZone still references an instance pending removal", bindCluster.Generation)
	} else {
		controllerutils.SetCondition(&bindCluster.Status.Conditions, bindyv1beta1.ConditionScaleBlocked, metav1.ConditionFalse, bindyv1beta1.ReasonReconcileSucceeded, "", bindCluster.Generation)
	}
	readyStatus := metav1.ConditionFalse
	if bindCluster.Status.Ready {
		readyStatus = metav1.ConditionTrue
	}
	controllerutils.SetCondition(&bindCluster.Status.Conditions, bindyv1beta1.ConditionReady, readyStatus, bindyv1beta1.ReasonReconcileSucceeded, "", bindCluster.Generation)

	if err := r.Status().Update(ctx, bindCluster); err != nil {
		return ctrl.Result{}, fmt.Errorf("updating cluster status: %w", err)
	}

	r.Metrics.ReconcileDuration.WithLabelValues("cluster").Observe(time.Since(start).Seconds())
	r.Metrics.ReconcileTotal.WithLabelValues("cluster", "success").Inc()

	if blocked {
		log.Info("scale blocked by zone reference, will recheck", "cluster", bindCluster.Name)
		return ctrl.Result{RequeueAfter: controllerutils.RequeueAfterDegraded}, nil
	}
	return ctrl.Result{RequeueAfter: controllerutils.RequeueAfterSteadyState}, nil
}

// deleteChildInstances explicitly deletes every Bind9Instance this cluster
// owns, before the finalizer is removed (spec §4.5: "removes child
// Bind9Instances explicitly on deletion").
func (r *Reconciler) deleteChildInstances(ctx context.Context, bindCluster *bindyv1beta1.Bind9Cluster) error {
	var list bindyv1beta1.Bind9InstanceList
	if err := r.List(ctx, &list, client.InNamespace(bindCluster.Namespace), client.MatchingLabels{
		bindyv1beta1.LabelCluster: bindCluster.Name,
	}); err != nil {
		return err
	}
	for i := range list.Items {
		if err := r.Delete(ctx, &list.Items[i]); err != nil && !apierrors.IsNotFound(err) {
			return err
		}
	}
	return nil
}

// reconcileRole ensures exactly `desired` Bind9Instance children of the
// given role exist, named low-to-high (spec §4.5 deterministic naming).
// Scale-up creates the lowest-missing indices first; scale-down removes the
// highest indices first, refusing to remove any instance a DNSZone still
// references (spec §4.5, §7: ScaleBlocked).
func (r *Reconciler) reconcileRole(ctx context.Context, bindCluster *bindyv1beta1.Bind9Cluster, role bindyv1beta1.Role, desired int32) (ready int32, blocked bool, err error) {
	var index int32
	for index = 0; index < desired; index++ {
		instance := &bindyv1beta1.Bind9Instance{
			ObjectMeta: metav1.ObjectMeta{
				Name:      bindCluster.InstanceName(role, index),
				Namespace: bindCluster.Namespace,
			},
		}
		if _, cerr := controllerutil.CreateOrUpdate(ctx, r.Client, instance, func() error {
			if err := controllerutil.SetControllerReference(bindCluster, instance, r.Scheme); err != nil {
				return err
			}
			instance.Labels = map[string]string{
				bindyv1beta1.LabelManagedBy: bindyv1beta1.ManagedByValue,
				bindyv1beta1.LabelCluster:   bindCluster.Name,
				bindyv1beta1.LabelRole:      string(role),
			}
			instance.Spec.Role = role
			instance.Spec.ClusterRef = bindCluster.Name
			if instance.Spec.Replicas == 0 {
				instance.Spec.Replicas = 1
			}
			instance.Spec.Config = bindCluster.Spec.Config
			return nil
		}); cerr != nil {
			return ready, blocked, cerr
		}

		var fresh bindyv1beta1.Bind9Instance
		if err := r.Get(ctx, client.ObjectKeyFromObject(instance), &fresh); err == nil && fresh.IsReady() {
			ready++
		}
	}

	// Scale down: remove any existing instance of this role at or above
	// `desired`, highest index first, unless a DNSZone still references it.
	var list bindyv1beta1.Bind9InstanceList
	if err := r.List(ctx, &list, client.InNamespace(bindCluster.Namespace), client.MatchingLabels{
		bindyv1beta1.LabelCluster: bindCluster.Name,
		bindyv1beta1.LabelRole:    string(role),
	}); err != nil {
		return ready, blocked, err
	}

	// Names share the "<cluster>-<role>-" prefix, so a longer name carries a
	// higher index; equal lengths compare lexically.
	sort.Slice(list.Items, func(a, b int) bool {
		na, nb := list.Items[a].Name, list.Items[b].Name
		if len(na) != len(nb) {
			return len(na) > len(nb)
		}
		return na > nb
	})

	for i := range list.Items {
		candidate := &list.Items[i]
		if !isExcessIndex(bindCluster, role, candidate.Name, desired) {
			continue
		}
		referenced, rerr := r.isReferencedByZone(ctx, candidate)
		if rerr != nil {
			return ready, blocked, rerr
		}
		if referenced {
			blocked = true
			continue
		}
		if err := r.Delete(ctx, candidate); err != nil && !apierrors.IsNotFound(err) {
			return ready, blocked, err
		}
	}

	return ready, blocked, nil
}

func isExcessIndex(bindCluster *bindyv1beta1.Bind9Cluster, role bindyv1beta1.Role, name string, desired int32) bool {
	prefix := bindCluster.InstanceName(role, 0)
	prefix = prefix[:len(prefix)-len("0")]
	if !strings.HasPrefix(name, prefix) {
		return false
	}
	index, err := strconv.ParseInt(strings.TrimPrefix(name, prefix), 10, 32)
	if err != nil {
		return false
	}
	return int32(index) >= desired
}

func (r *Reconciler) isReferencedByZone(ctx context.Context, instance *bindyv1beta1.Bind9Instance) (bool, error) {
	var zones bindyv1beta1.DNSZoneList
	if err := r.List(ctx, &zones, client.InNamespace(instance.Namespace)); err != nil {
		return false, err
	}
	for _, zone := range zones.Items {
		if _, ok := zone.InstanceState(string(instance.UID)); ok {
			return true, nil
		}
	}
	return false, nil
}
