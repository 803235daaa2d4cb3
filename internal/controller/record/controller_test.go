package record

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-logr/logr/testr"
	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/controllerutils"
	"github.com/firestoned/bindy/internal/dnsupdate"
)

func newScheme(t *testing.T) *runtime.Scheme {
	t.Helper()
	s := runtime.NewScheme()
	require.NoError(t, bindyv1beta1.AddToScheme(s))
	require.NoError(t, corev1.AddToScheme(s))
	return s
}

// stubUpdateClient lets tests dictate Replace/Delete outcomes without
// dialing a real DNS listener.
type stubUpdateClient struct {
	replaceResult *dnsupdate.Result
	replaceErr    error
	deleteErr     error
}

func (s *stubUpdateClient) Replace(ctx context.Context, zone string, rr dns.RR) (*dnsupdate.Result, error) {
	return s.replaceResult, s.replaceErr
}

func (s *stubUpdateClient) Delete(ctx context.Context, zone, owner string, rrtype uint16) (*dnsupdate.Result, error) {
	return &dnsupdate.Result{Outcome: dnsupdate.OutcomeSuccess}, s.deleteErr
}

func testInstance(name, namespace, clusterRef string) *bindyv1beta1.Bind9Instance {
	return &bindyv1beta1.Bind9Instance{
		ObjectMeta: metav1.ObjectMeta{
			Name: name, Namespace: namespace, UID: types.UID("uid-" + name),
			Labels: map[string]string{bindyv1beta1.LabelCluster: clusterRef, bindyv1beta1.LabelRole: string(bindyv1beta1.RolePrimary)},
		},
		Spec: bindyv1beta1.Bind9InstanceSpec{Role: bindyv1beta1.RolePrimary, ClusterRef: clusterRef, Replicas: 1},
	}
}

func testZone(name, namespace, clusterRef string) *bindyv1beta1.DNSZone {
	return &bindyv1beta1.DNSZone{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Spec:       bindyv1beta1.DNSZoneSpec{ZoneName: "example.com.", ClusterRef: clusterRef},
	}
}

func TestReconcileNotSelectedBacksOff(t *testing.T) {
	scheme := newScheme(t)
	record := &bindyv1beta1.ARecord{
		ObjectMeta: metav1.ObjectMeta{Name: "www", Namespace: "dns-system"},
		Spec:       bindyv1beta1.ARecordSpec{OwnerName: "www", IPv4Address: "10.0.0.1"},
	}
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(record).WithStatusSubresource(record).Build()
	r := &Reconciler{Client: c, Scheme: scheme, Metrics: controllerutils.NewControllerMetrics(), Log: testr.New(t), Adapter: aRecordAdapter{}}

	res, err := r.Reconcile(t.Context(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "www", Namespace: "dns-system"}})
	require.NoError(t, err)
	assert.Equal(t, controllerutils.RequeueAfterNotSelected, res.RequeueAfter)

	var updated bindyv1beta1.ARecord
	require.NoError(t, c.Get(t.Context(), types.NamespacedName{Name: "www", Namespace: "dns-system"}, &updated))
	assert.True(t, controllerutils.IsTrue(updated.Status.Conditions, bindyv1beta1.ConditionNotSelected))
	assert.False(t, controllerutils.IsTrue(updated.Status.Conditions, bindyv1beta1.ConditionAvailable))
}

func zoneRefTo(zone *bindyv1beta1.DNSZone) *bindyv1beta1.ZoneReference {
	return &bindyv1beta1.ZoneReference{
		ObjectReference: bindyv1beta1.ObjectReference{Kind: "DNSZone", Name: zone.Name, Namespace: zone.Namespace},
		ZoneName:        zone.Spec.ZoneName,
	}
}

func TestReconcileFailsWhenReferencedZoneMissing(t *testing.T) {
	scheme := newScheme(t)
	record := &bindyv1beta1.ARecord{
		ObjectMeta: metav1.ObjectMeta{Name: "www", Namespace: "dns-system", Finalizers: []string{bindyv1beta1.RecordFinalizer}},
		Spec:       bindyv1beta1.ARecordSpec{OwnerName: "www", IPv4Address: "10.0.0.1"},
		Status: bindyv1beta1.RecordStatus{
			ZoneRef: &bindyv1beta1.ZoneReference{
				ObjectReference: bindyv1beta1.ObjectReference{Kind: "DNSZone", Name: "gone", Namespace: "dns-system"},
				ZoneName:        "example.com.",
			},
		},
	}
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(record).WithStatusSubresource(record).Build()
	r := &Reconciler{Client: c, Scheme: scheme, Metrics: controllerutils.NewControllerMetrics(), Log: testr.New(t), Adapter: aRecordAdapter{}}

	res, err := r.Reconcile(t.Context(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "www", Namespace: "dns-system"}})
	require.NoError(t, err)
	assert.Equal(t, controllerutils.RequeueAfterTransientError, res.RequeueAfter)

	var updated bindyv1beta1.ARecord
	require.NoError(t, c.Get(t.Context(), types.NamespacedName{Name: "www", Namespace: "dns-system"}, &updated))
	assert.True(t, controllerutils.IsTrue(updated.Status.Conditions, bindyv1beta1.ConditionFailed))
}

func TestReconcileInvalidSpecFailsWithoutRequeue(t *testing.T) {
	scheme := newScheme(t)
	zone := testZone("example-com", "dns-system", "east")
	record := &bindyv1beta1.ARecord{
		ObjectMeta: metav1.ObjectMeta{Name: "www", Namespace: "dns-system", Finalizers: []string{bindyv1beta1.RecordFinalizer}},
		Spec:       bindyv1beta1.ARecordSpec{OwnerName: "www", IPv4Address: "not-an-ip"},
		Status:     bindyv1beta1.RecordStatus{ZoneRef: zoneRefTo(zone)},
	}
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(zone, record).WithStatusSubresource(record).Build()
	r := &Reconciler{Client: c, Scheme: scheme, Metrics: controllerutils.NewControllerMetrics(), Log: testr.New(t), Adapter: aRecordAdapter{}}

	res, err := r.Reconcile(t.Context(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "www", Namespace: "dns-system"}})
	require.NoError(t, err)
	assert.Zero(t, res.RequeueAfter)

	var updated bindyv1beta1.ARecord
	require.NoError(t, c.Get(t.Context(), types.NamespacedName{Name: "www", Namespace: "dns-system"}, &updated))
	assert.True(t, controllerutils.IsTrue(updated.Status.Conditions, bindyv1beta1.ConditionFailed))
}

func TestReconcileAllPrimariesSucceedMarksAvailable(t *testing.T) {
	scheme := newScheme(t)
	instance := testInstance("east-primary-0", "dns-system", "east")
	zone := testZone("example-com", "dns-system", "east")
	record := &bindyv1beta1.ARecord{
		ObjectMeta: metav1.ObjectMeta{Name: "www", Namespace: "dns-system", Generation: 2, Finalizers: []string{bindyv1beta1.RecordFinalizer}},
		Spec:       bindyv1beta1.ARecordSpec{OwnerName: "www", IPv4Address: "10.0.0.1"},
		Status:     bindyv1beta1.RecordStatus{ZoneRef: zoneRefTo(zone)},
	}
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(instance, zone, record).WithStatusSubresource(record).Build()
	r := &Reconciler{
		Client: c, Scheme: scheme, Metrics: controllerutils.NewControllerMetrics(), Log: testr.New(t), Adapter: aRecordAdapter{},
		dnsUpdateClientFor: func(ctx context.Context, instance *bindyv1beta1.Bind9Instance) (updateClient, error) {
			return &stubUpdateClient{replaceResult: &dnsupdate.Result{Outcome: dnsupdate.OutcomeSuccess}}, nil
		},
	}

	res, err := r.Reconcile(t.Context(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "www", Namespace: "dns-system"}})
	require.NoError(t, err)
	assert.Equal(t, controllerutils.RequeueAfterSteadyState, res.RequeueAfter)

	var updated bindyv1beta1.ARecord
	require.NoError(t, c.Get(t.Context(), types.NamespacedName{Name: "www", Namespace: "dns-system"}, &updated))
	assert.True(t, controllerutils.IsTrue(updated.Status.Conditions, bindyv1beta1.ConditionAvailable))
	require.Len(t, updated.Status.PrimaryStatus, 1)
	assert.True(t, updated.Status.PrimaryStatus[0].Success)
	assert.Equal(t, int64(2), updated.Status.ObservedGeneration)
}

func TestReconcileAllPrimariesFailMarksFailed(t *testing.T) {
	scheme := newScheme(t)
	instance := testInstance("east-primary-0", "dns-system", "east")
	zone := testZone("example-com", "dns-system", "east")
	record := &bindyv1beta1.ARecord{
		ObjectMeta: metav1.ObjectMeta{Name: "www", Namespace: "dns-system", Finalizers: []string{bindyv1beta1.RecordFinalizer}},
		Spec:       bindyv1beta1.ARecordSpec{OwnerName: "www", IPv4Address: "10.0.0.1"},
		Status:     bindyv1beta1.RecordStatus{ZoneRef: zoneRefTo(zone)},
	}
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(instance, zone, record).WithStatusSubresource(record).Build()
	r := &Reconciler{
		Client: c, Scheme: scheme, Metrics: controllerutils.NewControllerMetrics(), Log: testr.New(t), Adapter: aRecordAdapter{},
		dnsUpdateClientFor: func(ctx context.Context, instance *bindyv1beta1.Bind9Instance) (updateClient, error) {
			return &stubUpdateClient{replaceResult: &dnsupdate.Result{Outcome: dnsupdate.OutcomePermanent, RCode: 5}}, nil
		},
	}

	res, err := r.Reconcile(t.Context(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "www", Namespace: "dns-system"}})
	require.NoError(t, err)
	assert.Equal(t, controllerutils.RequeueAfterDegraded, res.RequeueAfter)

	var updated bindyv1beta1.ARecord
	require.NoError(t, c.Get(t.Context(), types.NamespacedName{Name: "www", Namespace: "dns-system"}, &updated))
	assert.True(t, controllerutils.IsTrue(updated.Status.Conditions, bindyv1beta1.ConditionFailed))
	assert.False(t, controllerutils.IsTrue(updated.Status.Conditions, bindyv1beta1.ConditionAvailable))
}

func TestReconcileMixedOutcomesMarksDegradedButAvailable(t *testing.T) {
	scheme := newScheme(t)
	primaryA := testInstance("east-primary-0", "dns-system", "east")
	primaryB := testInstance("east-primary-1", "dns-system", "east")
	zone := testZone("example-com", "dns-system", "east")
	record := &bindyv1beta1.ARecord{
		ObjectMeta: metav1.ObjectMeta{Name: "www", Namespace: "dns-system", Finalizers: []string{bindyv1beta1.RecordFinalizer}},
		Spec:       bindyv1beta1.ARecordSpec{OwnerName: "www", IPv4Address: "10.0.0.1"},
		Status:     bindyv1beta1.RecordStatus{ZoneRef: zoneRefTo(zone)},
	}
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(primaryA, primaryB, zone, record).WithStatusSubresource(record).Build()
	r := &Reconciler{
		Client: c, Scheme: scheme, Metrics: controllerutils.NewControllerMetrics(), Log: testr.New(t), Adapter: aRecordAdapter{},
		dnsUpdateClientFor: func(ctx context.Context, instance *bindyv1beta1.Bind9Instance) (updateClient, error) {
			if instance.Name == "east-primary-0" {
				return &stubUpdateClient{replaceResult: &dnsupdate.Result{Outcome: dnsupdate.OutcomeSuccess}}, nil
			}
			return &stubUpdateClient{replaceResult: &dnsupdate.Result{Outcome: dnsupdate.OutcomePermanent, RCode: 5}}, nil
		},
	}

	res, err := r.Reconcile(t.Context(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "www", Namespace: "dns-system"}})
	require.NoError(t, err)
	assert.Equal(t, controllerutils.RequeueAfterTransientError, res.RequeueAfter)

	var updated bindyv1beta1.ARecord
	require.NoError(t, c.Get(t.Context(), types.NamespacedName{Name: "www", Namespace: "dns-system"}, &updated))
	assert.True(t, controllerutils.IsTrue(updated.Status.Conditions, bindyv1beta1.ConditionDegraded))
	assert.True(t, controllerutils.IsTrue(updated.Status.Conditions, bindyv1beta1.ConditionAvailable))
	assert.Len(t, updated.Status.PrimaryStatus, 2)
}

func TestReconcileEmptySelectionMarksFailed(t *testing.T) {
	scheme := newScheme(t)
	zone := testZone("example-com", "dns-system", "east")
	record := &bindyv1beta1.ARecord{
		ObjectMeta: metav1.ObjectMeta{Name: "www", Namespace: "dns-system", Finalizers: []string{bindyv1beta1.RecordFinalizer}},
		Spec:       bindyv1beta1.ARecordSpec{OwnerName: "www", IPv4Address: "10.0.0.1"},
		Status:     bindyv1beta1.RecordStatus{ZoneRef: zoneRefTo(zone)},
	}
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(zone, record).WithStatusSubresource(record).Build()
	r := &Reconciler{Client: c, Scheme: scheme, Metrics: controllerutils.NewControllerMetrics(), Log: testr.New(t), Adapter: aRecordAdapter{}}

	res, err := r.Reconcile(t.Context(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "www", Namespace: "dns-system"}})
	require.NoError(t, err)
	assert.Equal(t, controllerutils.RequeueAfterDegraded, res.RequeueAfter)

	var updated bindyv1beta1.ARecord
	require.NoError(t, c.Get(t.Context(), types.NamespacedName{Name: "www", Namespace: "dns-system"}, &updated))
	assert.True(t, controllerutils.IsTrue(updated.Status.Conditions, bindyv1beta1.ConditionFailed))
}

func TestReconcileDeleteWithoutZoneRefRemovesFinalizerImmediately(t *testing.T) {
	scheme := newScheme(t)
	now := metav1.Now()
	record := &bindyv1beta1.ARecord{
		ObjectMeta: metav1.ObjectMeta{
			Name: "www", Namespace: "dns-system",
			DeletionTimestamp: &now,
			Finalizers:        []string{bindyv1beta1.RecordFinalizer},
		},
		Spec: bindyv1beta1.ARecordSpec{OwnerName: "www", IPv4Address: "10.0.0.1"},
	}
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(record).WithStatusSubresource(record).Build()
	r := &Reconciler{Client: c, Scheme: scheme, Metrics: controllerutils.NewControllerMetrics(), Log: testr.New(t), Adapter: aRecordAdapter{}}

	_, err := r.Reconcile(t.Context(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "www", Namespace: "dns-system"}})
	require.NoError(t, err)

	var updated bindyv1beta1.ARecord
	err = c.Get(t.Context(), types.NamespacedName{Name: "www", Namespace: "dns-system"}, &updated)
	if err == nil {
		assert.Empty(t, updated.Finalizers)
	}
}

func TestReconcileDeleteWithZoneAlreadyGoneRemovesFinalizer(t *testing.T) {
	scheme := newScheme(t)
	now := metav1.Now()
	record := &bindyv1beta1.ARecord{
		ObjectMeta: metav1.ObjectMeta{
			Name: "www", Namespace: "dns-system",
			DeletionTimestamp: &now,
			Finalizers:        []string{bindyv1beta1.RecordFinalizer},
		},
		Spec: bindyv1beta1.ARecordSpec{OwnerName: "www", IPv4Address: "10.0.0.1"},
		Status: bindyv1beta1.RecordStatus{
			ZoneRef: &bindyv1beta1.ZoneReference{
				ObjectReference: bindyv1beta1.ObjectReference{Kind: "DNSZone", Name: "gone", Namespace: "dns-system"},
				ZoneName:        "example.com.",
			},
		},
	}
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(record).WithStatusSubresource(record).Build()
	r := &Reconciler{Client: c, Scheme: scheme, Metrics: controllerutils.NewControllerMetrics(), Log: testr.New(t), Adapter: aRecordAdapter{}}

	_, err := r.Reconcile(t.Context(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "www", Namespace: "dns-system"}})
	require.NoError(t, err)

	var updated bindyv1beta1.ARecord
	err = c.Get(t.Context(), types.NamespacedName{Name: "www", Namespace: "dns-system"}, &updated)
	if err == nil {
		assert.Empty(t, updated.Finalizers)
	}
}

func TestReconcileDeleteRemovesFinalizerOnceAllPrimariesAck(t *testing.T) {
	scheme := newScheme(t)
	instance := testInstance("east-primary-0", "dns-system", "east")
	zone := testZone("example-com", "dns-system", "east")
	now := metav1.Now()
	record := &bindyv1beta1.ARecord{
		ObjectMeta: metav1.ObjectMeta{
			Name: "www", Namespace: "dns-system",
			DeletionTimestamp: &now,
			Finalizers:        []string{bindyv1beta1.RecordFinalizer},
		},
		Spec:   bindyv1beta1.ARecordSpec{OwnerName: "www", IPv4Address: "10.0.0.1"},
		Status: bindyv1beta1.RecordStatus{ZoneRef: zoneRefTo(zone)},
	}
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(instance, zone, record).WithStatusSubresource(record).Build()
	r := &Reconciler{
		Client: c, Scheme: scheme, Metrics: controllerutils.NewControllerMetrics(), Log: testr.New(t), Adapter: aRecordAdapter{},
		dnsUpdateClientFor: func(ctx context.Context, instance *bindyv1beta1.Bind9Instance) (updateClient, error) {
			return &stubUpdateClient{}, nil
		},
	}

	_, err := r.Reconcile(t.Context(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "www", Namespace: "dns-system"}})
	require.NoError(t, err)

	var updated bindyv1beta1.ARecord
	err = c.Get(t.Context(), types.NamespacedName{Name: "www", Namespace: "dns-system"}, &updated)
	if err == nil {
		assert.Empty(t, updated.Finalizers)
	}
}

func TestReconcileDeleteRequeuesWhenAPrimaryFailsToAck(t *testing.T) {
	scheme := newScheme(t)
	instance := testInstance("east-primary-0", "dns-system", "east")
	zone := testZone("example-com", "dns-system", "east")
	now := metav1.Now()
	record := &bindyv1beta1.ARecord{
		ObjectMeta: metav1.ObjectMeta{
			Name: "www", Namespace: "dns-system",
			DeletionTimestamp: &now,
			Finalizers:        []string{bindyv1beta1.RecordFinalizer},
		},
		Spec:   bindyv1beta1.ARecordSpec{OwnerName: "www", IPv4Address: "10.0.0.1"},
		Status: bindyv1beta1.RecordStatus{ZoneRef: zoneRefTo(zone)},
	}
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(instance, zone, record).WithStatusSubresource(record).Build()
	r := &Reconciler{
		Client: c, Scheme: scheme, Metrics: controllerutils.NewControllerMetrics(), Log: testr.New(t), Adapter: aRecordAdapter{},
		dnsUpdateClientFor: func(ctx context.Context, instance *bindyv1beta1.Bind9Instance) (updateClient, error) {
			return &stubUpdateClient{deleteErr: fmt.Errorf("connection refused")}, nil
		},
	}

	res, err := r.Reconcile(t.Context(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "www", Namespace: "dns-system"}})
	require.NoError(t, err)
	assert.Equal(t, controllerutils.RequeueAfterTransientError, res.RequeueAfter)

	var updated bindyv1beta1.ARecord
	require.NoError(t, c.Get(t.Context(), types.NamespacedName{Name: "www", Namespace: "dns-system"}, &updated))
	assert.Contains(t, updated.Finalizers, bindyv1beta1.RecordFinalizer)
}
