package resourcebuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

func testInstance() *bindyv1beta1.Bind9Instance {
	return &bindyv1beta1.Bind9Instance{
		ObjectMeta: metav1.ObjectMeta{Name: "east-primary-0", Namespace: "dns-system"},
		Spec: bindyv1beta1.Bind9InstanceSpec{
			Role:       bindyv1beta1.RolePrimary,
			ClusterRef: "east",
			Replicas:   1,
		},
	}
}

func TestReconcileDeploymentAddsBothContainers(t *testing.T) {
	instance := testInstance()
	dep := Deployment(instance)
	params := &Params{Instance: instance, NamedConf: "options {};", SpecHash: "abc123"}

	require.NoError(t, ReconcileDeployment(dep, params))

	names := []string{}
	for _, c := range dep.Spec.Template.Spec.Containers {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"bind9", "zone-admin"}, names)
	assert.Equal(t, int32(1), *dep.Spec.Replicas)
	assert.Equal(t, "abc123", dep.Spec.Template.Annotations[SpecHashAnnotation])
}

func TestReconcileDeploymentIsIdempotent(t *testing.T) {
	instance := testInstance()
	dep := Deployment(instance)
	params := &Params{Instance: instance, NamedConf: "options {};", SpecHash: "abc123"}

	require.NoError(t, ReconcileDeployment(dep, params))
	require.NoError(t, ReconcileDeployment(dep, params))

	assert.Len(t, dep.Spec.Template.Spec.Containers, 2)
}

func TestReconcileDeploymentUsesInstanceImageOverride(t *testing.T) {
	instance := testInstance()
	instance.Spec.Config.Image = "custom/bind9:9.20"
	dep := Deployment(instance)
	params := &Params{Instance: instance, NamedConf: "options {};", SpecHash: "x"}

	require.NoError(t, ReconcileDeployment(dep, params))

	var bind9 *corev1.Container
	for i := range dep.Spec.Template.Spec.Containers {
		if dep.Spec.Template.Spec.Containers[i].Name == "bind9" {
			bind9 = &dep.Spec.Template.Spec.Containers[i]
		}
	}
	require.NotNil(t, bind9)
	assert.Equal(t, "custom/bind9:9.20", bind9.Image)
}

func TestReconcileServiceExposesThreePorts(t *testing.T) {
	instance := testInstance()
	svc := Service(instance)
	params := &Params{Instance: instance}

	require.NoError(t, ReconcileService(svc, params))
	assert.Len(t, svc.Spec.Ports, 3)
}

func TestSpecHashStableAcrossCalls(t *testing.T) {
	instance := testInstance()
	h1, err := SpecHash(instance, bindyv1beta1.Bind9ServerConfig{})
	require.NoError(t, err)
	h2, err := SpecHash(instance, bindyv1beta1.Bind9ServerConfig{})
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestSpecHashChangesWithClusterConfig(t *testing.T) {
	instance := testInstance()
	h1, err := SpecHash(instance, bindyv1beta1.Bind9ServerConfig{Forwarders: []string{"8.8.8.8"}})
	require.NoError(t, err)
	h2, err := SpecHash(instance, bindyv1beta1.Bind9ServerConfig{Forwarders: []string{"1.1.1.1"}})
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestEffectiveConfigInstanceOverridesWin(t *testing.T) {
	instance := testInstance()
	instance.Spec.Config.Forwarders = []string{"9.9.9.9"}
	out := effectiveConfig(instance, bindyv1beta1.Bind9ServerConfig{Forwarders: []string{"8.8.8.8"}, DNSSECPolicy: "default"})
	assert.Equal(t, []string{"9.9.9.9"}, out.Forwarders)
	assert.Equal(t, "default", out.DNSSECPolicy)
}

func TestRenderNamedConfIncludesForwarders(t *testing.T) {
	out, err := RenderNamedConf(bindyv1beta1.Bind9ServerConfig{Forwarders: []string{"8.8.8.8", "8.8.4.4"}})
	require.NoError(t, err)
	assert.Contains(t, out, "8.8.8.8")
	assert.Contains(t, out, "8.8.4.4")
}

func TestRenderNamedConfOmitsForwardersWhenUnset(t *testing.T) {
	out, err := RenderNamedConf(bindyv1beta1.Bind9ServerConfig{})
	require.NoError(t, err)
	assert.NotContains(t, out, "forwarders")
}
