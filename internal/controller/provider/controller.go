// Package provider reconciles ClusterBind9Provider: fanning a single
// cluster-scoped declaration out into one managed Bind9Cluster per target
// namespace (spec §4.4).
package provider

import (
	"context"
	"fmt"
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

// Reconciler reconciles a ClusterBind9Provider.
type Reconciler struct {
	client.Client
	Scheme  *runtime.Scheme
	Metrics *controllerutils.ControllerMetrics
}

// SetupWithManager registers the controller with mgr.
func (r *Reconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&bindyv1beta1.ClusterBind9Provider{}).
		WithOptions(controller.Options{
			RateLimiter: workqueue.NewItemExponentialFailureRateLimiter(1*time.Second, 30*time.Second),
		}).
		Owns(&bindyv1beta1.Bind9Cluster{}).
		Complete(r)
}

// Reconcile implements the provider fan-out described in spec §4.4: one
// Bind9Cluster, named after the provider, created or updated in each of
// spec.targetNamespaces, using the provider's defaults as that cluster's
// spec when first created.
func (r *Reconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	log := ctrl.LoggerFrom(ctx)
	start := time.Now()

	provider := &bindyv1beta1.ClusterBind9Provider{}
	if err := r.Get(ctx, req.NamespacedName, provider); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}

	if !provider.DeletionTimestamp.IsZero() {
		if err := r.deleteManagedClusters(ctx, provider); err != nil {
			return ctrl.Result{}, fmt.Errorf("deleting managed clusters: %w", err)
		}
		if err := controllerutils.RemoveFinalizer(ctx, r.Client, provider, bindyv1beta1.ProviderFinalizer); err != nil {
			return ctrl.Result{}, err
		}
		return ctrl.Result{}, nil
	}

	if err := controllerutils.EnsureFinalizer(ctx, r.Client, provider, bindyv1beta1.ProviderFinalizer); err != nil {
		return ctrl.Result{}, err
	}

	managed := make([]string, 0, len(provider.Spec.TargetNamespaces))
	var reconcileErr error
	for _, ns := range provider.Spec.TargetNamespaces {
		if err := r.reconcileClusterInNamespace(ctx, provider, ns); err != nil {
			log.Error(err, "failed reconciling managed cluster", "namespace", ns)
			reconcileErr = err
			continue
		}
		managed = append(managed, ns)
	}

	provider.Status.ObservedGeneration = provider.Generation
	provider.Status.ManagedNamespaces = managed

	status := metav1.ConditionTrue
	reason := bindyv1beta1.ReasonReconcileSucceeded
	message := fmt.Sprintf("%d namespace(s) managed", len(managed))
	if reconcileErr != nil {
		status = metav1.ConditionFalse
		reason = bindyv1beta1.ReasonChildCreateFailed
		message = reconcileErr.Error()
	}
	controllerutils.SetCondition(&provider.Status.Conditions, bindyv1beta1.ConditionReady, status, reason, message, provider.Generation)

	if err := r.Status().Update(ctx, provider); err != nil {
		return ctrl.Result{}, fmt.Errorf("updating provider status: %w", err)
	}

	r.Metrics.ReconcileDuration.WithLabelValues("provider").Observe(time.Since(start).Seconds())
	if reconcileErr != nil {
		r.Metrics.ReconcileTotal.WithLabelValues("provider", "error").Inc()
		return ctrl.Result{RequeueAfter: controllerutils.RequeueAfterTransientError}, reconcileErr
	}
	r.Metrics.ReconcileTotal.WithLabelValues("provider", "success").Inc()
	return ctrl.Result{RequeueAfter: controllerutils.RequeueAfterSteadyState}, nil
}

// deleteManagedClusters explicitly deletes every Bind9Cluster labeled as
// belonging to provider, before the finalizer is removed (spec §4.6: "on
// provider deletion, delete the managed clusters... before removing the
// finalizer"). Explicit deletion here, rather than owner-reference garbage
// collection, matters because other controllers observing a cluster's
// disappearance need that to happen in a predictable step, not whenever
// the garbage collector gets around to it.
func (r *Reconciler) deleteManagedClusters(ctx context.Context, provider *bindyv1beta1.ClusterBind9Provider) error {
	var clusters bindyv1beta1.Bind9ClusterList
	if err := r.List(ctx, &clusters, client.MatchingLabels{bindyv1beta1.LabelProvider: provider.Name}); err != nil {
		return err
	}
	for i := range clusters.Items {
		if err := r.Delete(ctx, &clusters.Items[i]); err != nil && !apierrors.IsNotFound(err) {
			return err
		}
	}
	return nil
}

func (r *Reconciler) reconcileClusterInNamespace(ctx context.Context, provider *bindyv1beta1.ClusterBind9Provider, namespace string) error {
	cluster := &bindyv1beta1.Bind9Cluster{
		ObjectMeta: metav1.ObjectMeta{Name: provider.Name, Namespace: namespace},
	}
	_, err := controllerutil.CreateOrUpdate(ctx, r.Client, cluster, func() error {
		if err := controllerutil.SetControllerReference(provider, cluster, r.Scheme); err != nil {
			return err
		}
		if cluster.Labels == nil {
			cluster.Labels = map[string]string{}
		}
		cluster.Labels[bindyv1beta1.LabelProvider] = provider.Name
		if cluster.CreationTimestamp.IsZero() {
			// Defaults only seed a brand-new cluster; once it exists its
			// spec is owned by whoever edits the Bind9Cluster directly
			// (spec §3: "later edits to this field do not retroactively
			// change clusters that already exist").
			cluster.Spec.PrimaryReplicas = provider.Spec.DefaultPrimaryReplicas
			cluster.Spec.SecondaryReplicas = provider.Spec.DefaultSecondaryReplicas
			cluster.Spec.Config = provider.Spec.DefaultConfig
			cluster.Spec.ProviderRef = &bindyv1beta1.ObjectReference{
				APIVersion: bindyv1beta1.GroupVersion.String(),
				Kind:       "ClusterBind9Provider",
				Name:       provider.Name,
			}
		}
		return nil
	})
	return err
}
