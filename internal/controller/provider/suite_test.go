package provider

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/controllerutils"
)

func TestProviderSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Provider Controller Suite")
}

func ctx() context.Context {
	return context.Background()
}

var _ = Describe("ClusterBind9Provider reconciliation", func() {
	var (
		c        client.Client
		r        *Reconciler
		provider *bindyv1beta1.ClusterBind9Provider
	)

	BeforeEach(func() {
		scheme := runtime.NewScheme()
		Expect(bindyv1beta1.AddToScheme(scheme)).To(Succeed())

		provider = &bindyv1beta1.ClusterBind9Provider{
			ObjectMeta: metav1.ObjectMeta{Name: "fleet", Generation: 1},
			Spec: bindyv1beta1.ClusterBind9ProviderSpec{
				TargetNamespaces:       []string{"team-a"},
				DefaultPrimaryReplicas: 1,
			},
		}
		c = fake.NewClientBuilder().WithScheme(scheme).WithObjects(provider).WithStatusSubresource(provider).Build()
		r = &Reconciler{Client: c, Scheme: scheme, Metrics: controllerutils.NewControllerMetrics()}
	})

	When("the provider is freshly created", func() {
		It("gains the provider finalizer on the first reconcile", func() {
			_, err := r.Reconcile(ctx(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "fleet"}})
			Expect(err).NotTo(HaveOccurred())

			var updated bindyv1beta1.ClusterBind9Provider
			Expect(c.Get(ctx(), types.NamespacedName{Name: "fleet"}, &updated)).To(Succeed())
			Expect(updated.Finalizers).To(ContainElement(bindyv1beta1.ProviderFinalizer))
		})
	})

	When("the provider is marked for deletion", func() {
		It("explicitly deletes its managed clusters by label before removing the finalizer", func() {
			_, err := r.Reconcile(ctx(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "fleet"}})
			Expect(err).NotTo(HaveOccurred())

			var managed bindyv1beta1.Bind9Cluster
			Expect(c.Get(ctx(), types.NamespacedName{Name: "fleet", Namespace: "team-a"}, &managed)).To(Succeed())
			Expect(managed.Labels).To(HaveKeyWithValue(bindyv1beta1.LabelProvider, "fleet"))

			var toDelete bindyv1beta1.ClusterBind9Provider
			Expect(c.Get(ctx(), types.NamespacedName{Name: "fleet"}, &toDelete)).To(Succeed())
			Expect(c.Delete(ctx(), &toDelete)).To(Succeed())

			_, err = r.Reconcile(ctx(), ctrl.Request{NamespacedName: types.NamespacedName{Name: "fleet"}})
			Expect(err).NotTo(HaveOccurred())

			var clusterGone bindyv1beta1.Bind9Cluster
			err = c.Get(ctx(), types.NamespacedName{Name: "fleet", Namespace: "team-a"}, &clusterGone)
			Expect(err).To(HaveOccurred(), "the managed cluster is deleted explicitly, not left for GC")

			var gone bindyv1beta1.ClusterBind9Provider
			err = c.Get(ctx(), types.NamespacedName{Name: "fleet"}, &gone)
			Expect(err).To(HaveOccurred(), "the fake client reclaims an object once its finalizer list empties under a deletion timestamp")
		})
	})
})
