package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/controllerutils"
)

func newScheme(t *testing.T) *runtime.Scheme {
	t.Helper()
	s := runtime.NewScheme()
	require.NoError(t, bindyv1beta1.AddToScheme(s))
	return s
}

func TestReconcileCreatesOneClusterPerTargetNamespace(t *testing.T) {
	scheme := newScheme(t)
	provider := &bindyv1beta1.ClusterBind9Provider{
		ObjectMeta: metav1.ObjectMeta{Name: "default", Generation: 1},
		Spec: bindyv1beta1.ClusterBind9ProviderSpec{
			TargetNamespaces:        []string{"team-a", "team-b"},
			DefaultPrimaryReplicas:  2,
			DefaultSecondaryReplicas: 1,
		},
	}
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(provider).WithStatusSubresource(provider).Build()
	r := &Reconciler{Client: c, Scheme: scheme, Metrics: controllerutils.NewControllerMetrics()}

	_, err := r.Reconcile(t.Context(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "default"}})
	require.NoError(t, err)

	for _, ns := range []string{"team-a", "team-b"} {
		var cluster bindyv1beta1.Bind9Cluster
		require.NoError(t, c.Get(t.Context(), types.NamespacedName{Name: "default", Namespace: ns}, &cluster))
		assert.Equal(t, int32(2), cluster.Spec.PrimaryReplicas)
		assert.Equal(t, int32(1), cluster.Spec.SecondaryReplicas)
	}

	var updated bindyv1beta1.ClusterBind9Provider
	require.NoError(t, c.Get(t.Context(), types.NamespacedName{Name: "default"}, &updated))
	assert.ElementsMatch(t, []string{"team-a", "team-b"}, updated.Status.ManagedNamespaces)
	assert.True(t, controllerutils.IsTrue(updated.Status.Conditions, bindyv1beta1.ConditionReady))
}

func TestReconcileDoesNotOverwriteExistingClusterSpec(t *testing.T) {
	scheme := newScheme(t)
	provider := &bindyv1beta1.ClusterBind9Provider{
		ObjectMeta: metav1.ObjectMeta{Name: "default", Generation: 1},
		Spec: bindyv1beta1.ClusterBind9ProviderSpec{
			TargetNamespaces:       []string{"team-a"},
			DefaultPrimaryReplicas: 2,
		},
	}
	existing := &bindyv1beta1.Bind9Cluster{
		ObjectMeta: metav1.ObjectMeta{Name: "default", Namespace: "team-a"},
		Spec:       bindyv1beta1.Bind9ClusterSpec{PrimaryReplicas: 5},
	}
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(provider, existing).WithStatusSubresource(provider).Build()
	r := &Reconciler{Client: c, Scheme: scheme, Metrics: controllerutils.NewControllerMetrics()}

	_, err := r.Reconcile(t.Context(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "default"}})
	require.NoError(t, err)

	var cluster bindyv1beta1.Bind9Cluster
	require.NoError(t, c.Get(t.Context(), types.NamespacedName{Name: "default", Namespace: "team-a"}, &cluster))
	assert.Equal(t, int32(5), cluster.Spec.PrimaryReplicas)
}
