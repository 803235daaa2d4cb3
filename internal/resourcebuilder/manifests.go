// Package resourcebuilder builds and reconciles the Kubernetes objects owned
// by a Bind9Instance: a Deployment running the BIND9 container plus the
// zone-admin HTTP sidecar, a Service exposing the DNS and admin ports, a
// ServiceAccount, a ConfigMap holding the rendered named.conf, and the
// envelope of the TSIG/RNDC key Secret (the instance controller fills in the
// key material itself; see internal/controller/instance).
package resourcebuilder

import (
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

const (
	// DNSPort is the BIND9 listener port for both TCP and UDP.
	DNSPort = 53
	// AdminPort is the zone-admin HTTP sidecar's listener port.
	AdminPort = 8080

	containerNameBind9  = "bind9"
	containerNameSidecar = "zone-admin"

	defaultBind9Image   = "internal.registry/bindy/bind9:9.18"
	defaultSidecarImage = "internal.registry/bindy/zone-admin:latest"

	// Data keys within the key Secret an instance owns (spec §3, §4.1). The
	// instance controller is the only writer; every other consumer (the
	// zone controller's sidecar client, record controllers' DNS UPDATE
	// client) only reads these.
	SecretKeyTSIGName   = "tsig-key-name"
	SecretKeyTSIGSecret = "tsig-key-secret"
	SecretKeyAlgorithm  = "algorithm"
	SecretKeySAToken    = "sa-token"

	// TSIGAlgorithm is the fixed HMAC algorithm every generated key uses
	// (spec §4.1: "algorithm hmac-sha256").
	TSIGAlgorithm = "hmac-sha256"
)

// Deployment returns the identity object for an instance's Deployment: name
// and namespace set, everything else left for Reconcile to populate.
func Deployment(instance *bindyv1beta1.Bind9Instance) *appsv1.Deployment {
	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{
			Name:      instance.Name,
			Namespace: instance.Namespace,
		},
	}
}

// Service returns the identity object for an instance's ClusterIP Service.
func Service(instance *bindyv1beta1.Bind9Instance) *corev1.Service {
	return &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:      instance.Name,
			Namespace: instance.Namespace,
		},
	}
}

// ServiceAccount returns the identity object for an instance's ServiceAccount.
func ServiceAccount(instance *bindyv1beta1.Bind9Instance) *corev1.ServiceAccount {
	return &corev1.ServiceAccount{
		ObjectMeta: metav1.ObjectMeta{
			Name:      instance.Name,
			Namespace: instance.Namespace,
		},
	}
}

// ConfigMap returns the identity object for an instance's named.conf ConfigMap.
func ConfigMap(instance *bindyv1beta1.Bind9Instance) *corev1.ConfigMap {
	return &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      instance.Name + "-config",
			Namespace: instance.Namespace,
		},
	}
}

// KeySecret returns the identity object for an instance's TSIG/RNDC key
// Secret. Callers that only need to ensure the Secret exists (without
// touching key material) use this; the instance controller owns Data.
func KeySecret(instance *bindyv1beta1.Bind9Instance) *corev1.Secret {
	return &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      bindyv1beta1.KeySecretName(instance.Name),
			Namespace: instance.Namespace,
		},
		Type: corev1.SecretTypeOpaque,
	}
}
