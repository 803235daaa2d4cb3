package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/controllerutils"
	"github.com/firestoned/bindy/internal/resourcebuilder"
)

func newScheme(t *testing.T) *runtime.Scheme {
	t.Helper()
	s := runtime.NewScheme()
	require.NoError(t, bindyv1beta1.AddToScheme(s))
	require.NoError(t, appsv1.AddToScheme(s))
	require.NoError(t, corev1.AddToScheme(s))
	return s
}

func testInstance() *bindyv1beta1.Bind9Instance {
	return &bindyv1beta1.Bind9Instance{
		ObjectMeta: metav1.ObjectMeta{Name: "east-primary-0", Namespace: "dns-system", Generation: 1},
		Spec: bindyv1beta1.Bind9InstanceSpec{
			Role:       bindyv1beta1.RolePrimary,
			ClusterRef: "east",
			Replicas:   1,
		},
	}
}

// testParentCluster is the Bind9Cluster testInstance's clusterRef names; the
// instance controller reads its shared config before building children.
func testParentCluster() *bindyv1beta1.Bind9Cluster {
	return &bindyv1beta1.Bind9Cluster{
		ObjectMeta: metav1.ObjectMeta{Name: "east", Namespace: "dns-system"},
	}
}

func TestReconcileGeneratesKeySecretOnce(t *testing.T) {
	scheme := newScheme(t)
	bindInstance := testInstance()
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(bindInstance, testParentCluster()).WithStatusSubresource(bindInstance).Build()
	r := &Reconciler{Client: c, Scheme: scheme, Metrics: controllerutils.NewControllerMetrics()}

	_, err := r.Reconcile(t.Context(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "east-primary-0", Namespace: "dns-system"}})
	require.NoError(t, err)

	var secret corev1.Secret
	require.NoError(t, c.Get(t.Context(), types.NamespacedName{Name: "east-primary-0-key", Namespace: "dns-system"}, &secret))
	firstKey := string(secret.Data[resourcebuilder.SecretKeyTSIGSecret])
	assert.NotEmpty(t, firstKey)

	_, err = r.Reconcile(t.Context(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "east-primary-0", Namespace: "dns-system"}})
	require.NoError(t, err)

	var secretAgain corev1.Secret
	require.NoError(t, c.Get(t.Context(), types.NamespacedName{Name: "east-primary-0-key", Namespace: "dns-system"}, &secretAgain))
	assert.Equal(t, firstKey, string(secretAgain.Data[resourcebuilder.SecretKeyTSIGSecret]))
}

func TestReconcileCreatesDeploymentAndConfigMap(t *testing.T) {
	scheme := newScheme(t)
	bindInstance := testInstance()
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(bindInstance, testParentCluster()).WithStatusSubresource(bindInstance).Build()
	r := &Reconciler{Client: c, Scheme: scheme, Metrics: controllerutils.NewControllerMetrics()}

	_, err := r.Reconcile(t.Context(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "east-primary-0", Namespace: "dns-system"}})
	require.NoError(t, err)

	var dep appsv1.Deployment
	require.NoError(t, c.Get(t.Context(), types.NamespacedName{Name: "east-primary-0", Namespace: "dns-system"}, &dep))
	assert.Len(t, dep.Spec.Template.Spec.Containers, 2)

	var cm corev1.ConfigMap
	require.NoError(t, c.Get(t.Context(), types.NamespacedName{Name: "east-primary-0-config", Namespace: "dns-system"}, &cm))
	assert.Contains(t, cm.Data["named.conf"], "options")
}

func TestReconcileReportsReadyFromDeploymentStatus(t *testing.T) {
	scheme := newScheme(t)
	bindInstance := testInstance()
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(bindInstance, testParentCluster()).WithStatusSubresource(bindInstance, &appsv1.Deployment{}).Build()
	r := &Reconciler{Client: c, Scheme: scheme, Metrics: controllerutils.NewControllerMetrics()}

	_, err := r.Reconcile(t.Context(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "east-primary-0", Namespace: "dns-system"}})
	require.NoError(t, err)

	var dep appsv1.Deployment
	require.NoError(t, c.Get(t.Context(), types.NamespacedName{Name: "east-primary-0", Namespace: "dns-system"}, &dep))
	dep.Status.ReadyReplicas = 1
	require.NoError(t, c.Status().Update(t.Context(), &dep))

	_, err = r.Reconcile(t.Context(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "east-primary-0", Namespace: "dns-system"}})
	require.NoError(t, err)

	var updated bindyv1beta1.Bind9Instance
	require.NoError(t, c.Get(t.Context(), types.NamespacedName{Name: "east-primary-0", Namespace: "dns-system"}, &updated))
	assert.Equal(t, int32(1), updated.Status.ReadyReplicas)
	assert.True(t, controllerutils.IsTrue(updated.Status.Conditions, bindyv1beta1.ConditionReady))
}

func TestReconcileStallsOnInvalidVersion(t *testing.T) {
	scheme := newScheme(t)
	bindInstance := testInstance()
	bindInstance.Spec.Version = "not-a-semver"
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(bindInstance).WithStatusSubresource(bindInstance).Build()
	r := &Reconciler{Client: c, Scheme: scheme, Metrics: controllerutils.NewControllerMetrics()}

	_, err := r.Reconcile(t.Context(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "east-primary-0", Namespace: "dns-system"}})
	require.NoError(t, err)

	var updated bindyv1beta1.Bind9Instance
	require.NoError(t, c.Get(t.Context(), types.NamespacedName{Name: "east-primary-0", Namespace: "dns-system"}, &updated))
	assert.True(t, controllerutils.IsTrue(updated.Status.Conditions, bindyv1beta1.ConditionStalled))

	var dep appsv1.Deployment
	err = c.Get(t.Context(), types.NamespacedName{Name: "east-primary-0", Namespace: "dns-system"}, &dep)
	assert.Error(t, err, "no Deployment should be created for an instance with an invalid version")
}
