package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
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

func TestReconcileCreatesInstancesLowToHigh(t *testing.T) {
	scheme := newScheme(t)
	bindCluster := &bindyv1beta1.Bind9Cluster{
		ObjectMeta: metav1.ObjectMeta{Name: "east", Namespace: "dns-system", Generation: 1},
		Spec:       bindyv1beta1.Bind9ClusterSpec{PrimaryReplicas: 2, SecondaryReplicas: 1},
	}
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(bindCluster).WithStatusSubresource(bindCluster).Build()
	r := &Reconciler{Client: c, Scheme: scheme, Metrics: controllerutils.NewControllerMetrics()}

	_, err := r.Reconcile(t.Context(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "east", Namespace: "dns-system"}})
	require.NoError(t, err)

	for _, name := range []string{"east-primary-0", "east-primary-1", "east-secondary-0"} {
		var instance bindyv1beta1.Bind9Instance
		require.NoError(t, c.Get(t.Context(), types.NamespacedName{Name: name, Namespace: "dns-system"}, &instance))
	}
}

func TestReconcileScalesDownHighestIndexFirst(t *testing.T) {
	scheme := newScheme(t)
	bindCluster := &bindyv1beta1.Bind9Cluster{
		ObjectMeta: metav1.ObjectMeta{Name: "east", Namespace: "dns-system", Generation: 1},
		Spec:       bindyv1beta1.Bind9ClusterSpec{PrimaryReplicas: 1, SecondaryReplicas: 0},
	}
	existing := []client.Object{
		bindCluster,
		&bindyv1beta1.Bind9Instance{
			ObjectMeta: metav1.ObjectMeta{
				Name: "east-primary-0", Namespace: "dns-system",
				Labels: map[string]string{bindyv1beta1.LabelCluster: "east", bindyv1beta1.LabelRole: "primary"},
			},
		},
		&bindyv1beta1.Bind9Instance{
			ObjectMeta: metav1.ObjectMeta{
				Name: "east-primary-1", Namespace: "dns-system",
				Labels: map[string]string{bindyv1beta1.LabelCluster: "east", bindyv1beta1.LabelRole: "primary"},
			},
		},
	}
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(existing...).WithStatusSubresource(bindCluster).Build()
	r := &Reconciler{Client: c, Scheme: scheme, Metrics: controllerutils.NewControllerMetrics()}

	_, err := r.Reconcile(t.Context(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "east", Namespace: "dns-system"}})
	require.NoError(t, err)

	var kept bindyv1beta1.Bind9Instance
	assert.NoError(t, c.Get(t.Context(), types.NamespacedName{Name: "east-primary-0", Namespace: "dns-system"}, &kept))

	var removed bindyv1beta1.Bind9Instance
	assert.Error(t, c.Get(t.Context(), types.NamespacedName{Name: "east-primary-1", Namespace: "dns-system"}, &removed))
}

func TestReconcileBlocksScaleDownWhenZoneReferencesInstance(t *testing.T) {
	scheme := newScheme(t)
	bindCluster := &bindyv1beta1.Bind9Cluster{
		ObjectMeta: metav1.ObjectMeta{Name: "east", Namespace: "dns-system", Generation: 1},
		Spec:       bindyv1beta1.Bind9ClusterSpec{PrimaryReplicas: 1, SecondaryReplicas: 0},
	}
	excess := &bindyv1beta1.Bind9Instance{
		ObjectMeta: metav1.ObjectMeta{
			Name: "east-primary-1", Namespace: "dns-system", UID: "instance-uid-1",
			Labels: map[string]string{bindyv1beta1.LabelCluster: "east", bindyv1beta1.LabelRole: "primary"},
		},
	}
	zone := &bindyv1beta1.DNSZone{
		ObjectMeta: metav1.ObjectMeta{Name: "example-com", Namespace: "dns-system"},
		Status: bindyv1beta1.DNSZoneStatus{
			Bind9Instances: []bindyv1beta1.InstanceReference{{UID: "instance-uid-1"}},
		},
	}
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(bindCluster, excess, zone).WithStatusSubresource(bindCluster).Build()
	r := &Reconciler{Client: c, Scheme: scheme, Metrics: controllerutils.NewControllerMetrics()}

	_, err := r.Reconcile(t.Context(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "east", Namespace: "dns-system"}})
	require.NoError(t, err)

	var stillThere bindyv1beta1.Bind9Instance
	require.NoError(t, c.Get(t.Context(), types.NamespacedName{Name: "east-primary-1", Namespace: "dns-system"}, &stillThere))

	var updated bindyv1beta1.Bind9Cluster
	require.NoError(t, c.Get(t.Context(), types.NamespacedName{Name: "east", Namespace: "dns-system"}, &updated))
	assert.True(t, controllerutils.IsTrue(updated.Status.Conditions, bindyv1beta1.ConditionScaleBlocked))
}
