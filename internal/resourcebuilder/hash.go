package resourcebuilder

import (
	"strconv"

	"github.com/mitchellh/hashstructure/v2"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

// SpecHashAnnotation is stamped onto the Deployment's pod template so the
// instance controller can detect drift without a field-by-field diff against
// the live object (spec §4.5 convergence, §8 property: idempotent reconcile).
const SpecHashAnnotation = "bindy.firestoned.io/spec-hash"

// SpecHash returns a stable hash of the instance spec plus the cluster
// config layered under it, the same combination Reconcile renders from.
func SpecHash(instance *bindyv1beta1.Bind9Instance, clusterConfig bindyv1beta1.Bind9ServerConfig) (string, error) {
	effective := effectiveConfig(instance, clusterConfig)
	h, err := hashstructure.Hash(struct {
		Spec   bindyv1beta1.Bind9InstanceSpec
		Config bindyv1beta1.Bind9ServerConfig
	}{
		Spec:   instance.Spec,
		Config: effective,
	}, hashstructure.FormatV2, nil)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(h, 16), nil
}

// effectiveConfig layers the instance's own config on top of the cluster's
// shared config: an instance-set field wins, otherwise the cluster's value
// applies (spec §3 "per-instance overrides layered on top of").
func effectiveConfig(instance *bindyv1beta1.Bind9Instance, clusterConfig bindyv1beta1.Bind9ServerConfig) bindyv1beta1.Bind9ServerConfig {
	out := clusterConfig
	ic := instance.Spec.Config
	if len(ic.Forwarders) > 0 {
		out.Forwarders = ic.Forwarders
	}
	if len(ic.ACLs) > 0 {
		out.ACLs = ic.ACLs
	}
	if ic.DNSSECPolicy != "" {
		out.DNSSECPolicy = ic.DNSSECPolicy
	}
	if ic.Image != "" {
		out.Image = ic.Image
	}
	if ic.SidecarImage != "" {
		out.SidecarImage = ic.SidecarImage
	}
	if len(ic.Resources.Requests) > 0 || len(ic.Resources.Limits) > 0 {
		out.Resources = ic.Resources
	}
	return out
}
