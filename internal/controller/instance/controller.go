// Package instance reconciles Bind9Instance: materializing the Deployment,
// Service, ConfigMap and key Secret a single BIND9 server needs, generating
// its TSIG/RNDC key exactly once, and publishing readiness (spec §4.1).
package instance

import (
	"context"
	"fmt"
	"time"

	"github.com/blang/semver"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/apimachinery/pkg/util/workqueue"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/controllerutils"
	"github.com/firestoned/bindy/internal/resourcebuilder"
)

// Reconciler reconciles a Bind9Instance.
type Reconciler struct {
	client.Client
	Scheme  *runtime.Scheme
	Metrics *controllerutils.ControllerMetrics
}

func (r *Reconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&bindyv1beta1.Bind9Instance{}).
		WithOptions(controller.Options{
			RateLimiter: workqueue.NewItemExponentialFailureRateLimiter(1*time.Second, 30*time.Second),
		}).
		Owns(&appsv1.Deployment{}).
		Owns(&corev1.Service{}).
		Owns(&corev1.ConfigMap{}).
		Owns(&corev1.Secret{}).
		Complete(r)
}

func (r *Reconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	start := time.Now()

	bindInstance := &bindyv1beta1.Bind9Instance{}
	if err := r.Get(ctx, req.NamespacedName, bindInstance); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}

	if !bindInstance.DeletionTimestamp.IsZero() {
		if err := r.deleteChildren(ctx, bindInstance); err != nil {
			return ctrl.Result{}, fmt.Errorf("deleting children: %w", err)
		}
		if err := controllerutils.RemoveFinalizer(ctx, r.Client, bindInstance, bindyv1beta1.InstanceFinalizer); err != nil {
			return ctrl.Result{}, err
		}
		return ctrl.Result{}, nil
	}

	if err := controllerutils.EnsureFinalizer(ctx, r.Client, bindInstance, bindyv1beta1.InstanceFinalizer); err != nil {
		return ctrl.Result{}, err
	}

	if bindInstance.Spec.Version != "" {
		if _, err := semver.Parse(bindInstance.Spec.Version); err != nil {
			controllerutils.SetCondition(&bindInstance.Status.Conditions, bindyv1beta1.ConditionStalled, metav1.ConditionTrue, bindyv1beta1.ReasonInvalidSpec, fmt.Sprintf("spec.version %q is not a valid semantic version: %v", bindInstance.Spec.Version, err), bindInstance.Generation)
			r.Metrics.ReconcileTotal.WithLabelValues("instance", "error").Inc()
			return ctrl.Result{}, r.Status().Update(ctx, bindInstance)
		}
		controllerutils.SetCondition(&bindInstance.Status.Conditions, bindyv1beta1.ConditionStalled, metav1.ConditionFalse, bindyv1beta1.ReasonReconcileSucceeded, "", bindInstance.Generation)
	}

	clusterConfig, err := r.parentClusterConfig(ctx, bindInstance)
	if err != nil {
		r.Metrics.ReconcileTotal.WithLabelValues("instance", "error").Inc()
		return ctrl.Result{RequeueAfter: controllerutils.RequeueAfterTransientError}, fmt.Errorf("loading parent cluster: %w", err)
	}

	if err := r.ensureKeySecret(ctx, bindInstance); err != nil {
		r.Metrics.ReconcileTotal.WithLabelValues("instance", "error").Inc()
		return ctrl.Result{RequeueAfter: controllerutils.RequeueAfterTransientError}, fmt.Errorf("ensuring key secret: %w", err)
	}

	rebuild, err := r.needsChildRebuild(ctx, bindInstance, clusterConfig)
	if err != nil {
		return ctrl.Result{}, fmt.Errorf("checking for drift: %w", err)
	}
	if rebuild {
		setOwner := func(owner, controlled client.Object) error {
			return controllerutil.SetControllerReference(owner, controlled, r.Scheme)
		}
		if err := resourcebuilder.Reconcile(ctx, r.Client, bindInstance, clusterConfig, setOwner); err != nil {
			r.Metrics.ReconcileTotal.WithLabelValues("instance", "error").Inc()
			return ctrl.Result{RequeueAfter: controllerutils.RequeueAfterTransientError}, fmt.Errorf("reconciling children: %w", err)
		}
	}

	ready, err := r.deploymentReady(ctx, bindInstance)
	if err != nil {
		return ctrl.Result{}, fmt.Errorf("reading deployment status: %w", err)
	}

	bindInstance.Status.ObservedGeneration = bindInstance.Generation
	bindInstance.Status.ReadyReplicas = ready
	bindInstance.Status.KeySecretName = bindyv1beta1.KeySecretName(bindInstance.Name)
	bindInstance.Status.KeyGeneration = 1
	bindInstance.Status.Endpoints = []string{
		fmt.Sprintf("%s.%s.svc", bindInstance.Name, bindInstance.Namespace),
	}

	readyStatus := metav1.ConditionFalse
	reason := bindyv1beta1.ReasonReconcileInProgress
	if ready >= bindInstance.Spec.Replicas {
		readyStatus = metav1.ConditionTrue
		reason = bindyv1beta1.ReasonReconcileSucceeded
	}
	controllerutils.SetCondition(&bindInstance.Status.Conditions, bindyv1beta1.ConditionReady, readyStatus, reason, "", bindInstance.Generation)

	if err := r.Status().Update(ctx, bindInstance); err != nil {
		return ctrl.Result{}, fmt.Errorf("updating instance status: %w", err)
	}

	r.Metrics.ReconcileDuration.WithLabelValues("instance").Observe(time.Since(start).Seconds())

	if readyStatus != metav1.ConditionTrue {
		r.Metrics.ReconcileTotal.WithLabelValues("instance", "success").Inc()
		return ctrl.Result{RequeueAfter: controllerutils.RequeueAfterDegraded}, nil
	}
	r.Metrics.ReconcileTotal.WithLabelValues("instance", "success").Inc()
	return ctrl.Result{RequeueAfter: controllerutils.RequeueAfterSteadyState}, nil
}

// deleteChildren explicitly removes the Deployment, Service, ConfigMap and
// key Secret this instance owns, before the finalizer is dropped (spec
// §4.4 step 1). Other controllers (zone's bind9ClientFor, in particular)
// rely on the instance's children disappearing before the instance object
// itself does, which owner-reference garbage collection does not order.
func (r *Reconciler) deleteChildren(ctx context.Context, bindInstance *bindyv1beta1.Bind9Instance) error {
	children := []client.Object{
		resourcebuilder.Deployment(bindInstance),
		resourcebuilder.Service(bindInstance),
		resourcebuilder.ConfigMap(bindInstance),
		resourcebuilder.KeySecret(bindInstance),
	}
	for _, child := range children {
		if err := r.Delete(ctx, child); err != nil && !apierrors.IsNotFound(err) {
			return err
		}
	}
	return nil
}

// ensureKeySecret loads the instance's key Secret, creating it with freshly
// generated TSIG key material if absent, and committing it before any
// Deployment rollout so pods never boot without a key mounted (spec §4.1
// step 3).
func (r *Reconciler) ensureKeySecret(ctx context.Context, bindInstance *bindyv1beta1.Bind9Instance) error {
	secret := resourcebuilder.KeySecret(bindInstance)
	key := client.ObjectKeyFromObject(secret)

	existing := &corev1.Secret{}
	err := r.Get(ctx, key, existing)
	switch {
	case err == nil:
		if hasKeyMaterial(existing) {
			return nil
		}
		if err := populateKeyMaterial(existing, bindInstance.Name); err != nil {
			return err
		}
		if err := controllerutil.SetControllerReference(bindInstance, existing, r.Scheme); err != nil {
			return err
		}
		return r.Update(ctx, existing)
	case apierrors.IsNotFound(err):
		if err := populateKeyMaterial(secret, bindInstance.Name); err != nil {
			return err
		}
		if err := controllerutil.SetControllerReference(bindInstance, secret, r.Scheme); err != nil {
			return err
		}
		return r.Create(ctx, secret)
	default:
		return err
	}
}

func (r *Reconciler) parentClusterConfig(ctx context.Context, bindInstance *bindyv1beta1.Bind9Instance) (bindyv1beta1.Bind9ServerConfig, error) {
	if bindInstance.Spec.ClusterRef == "" {
		return bindyv1beta1.Bind9ServerConfig{}, nil
	}
	var bindCluster bindyv1beta1.Bind9Cluster
	if err := r.Get(ctx, types.NamespacedName{Name: bindInstance.Spec.ClusterRef, Namespace: bindInstance.Namespace}, &bindCluster); err != nil {
		return bindyv1beta1.Bind9ServerConfig{}, err
	}
	return bindCluster.Spec.Config, nil
}

// needsChildRebuild implements the decision policy of spec §4.4: a full
// child rebuild only runs when the generation has advanced past what was
// last observed, observedGeneration is unset, a required child is
// missing, or the spec hash no longer matches the one stamped on the
// Deployment. Otherwise the reconcile only refreshes status.
func (r *Reconciler) needsChildRebuild(ctx context.Context, bindInstance *bindyv1beta1.Bind9Instance, clusterConfig bindyv1beta1.Bind9ServerConfig) (bool, error) {
	if controllerutils.ShouldReconcile(bindInstance.Generation, bindInstance.Status.ObservedGeneration, false) {
		return true, nil
	}

	var dep appsv1.Deployment
	if err := r.Get(ctx, client.ObjectKeyFromObject(resourcebuilder.Deployment(bindInstance)), &dep); err != nil {
		if apierrors.IsNotFound(err) {
			return true, nil
		}
		return false, err
	}
	for _, child := range []client.Object{resourcebuilder.Service(bindInstance), resourcebuilder.ConfigMap(bindInstance), resourcebuilder.KeySecret(bindInstance)} {
		if err := r.Get(ctx, client.ObjectKeyFromObject(child), child); err != nil {
			if apierrors.IsNotFound(err) {
				return true, nil
			}
			return false, err
		}
	}

	wantHash, err := resourcebuilder.SpecHash(bindInstance, clusterConfig)
	if err != nil {
		return false, fmt.Errorf("computing spec hash: %w", err)
	}
	gotHash := dep.Spec.Template.Annotations[resourcebuilder.SpecHashAnnotation]
	return wantHash != gotHash, nil
}

func (r *Reconciler) deploymentReady(ctx context.Context, bindInstance *bindyv1beta1.Bind9Instance) (int32, error) {
	var dep appsv1.Deployment
	if err := r.Get(ctx, client.ObjectKeyFromObject(resourcebuilder.Deployment(bindInstance)), &dep); err != nil {
		if apierrors.IsNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	return dep.Status.ReadyReplicas, nil
}
