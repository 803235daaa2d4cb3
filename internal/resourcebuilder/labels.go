package resourcebuilder

import (
	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

// InstanceLabels returns the standard label set every object owned by an
// instance carries (spec §4.1).
func InstanceLabels(instance *bindyv1beta1.Bind9Instance) map[string]string {
	return map[string]string{
		bindyv1beta1.LabelManagedBy: bindyv1beta1.ManagedByValue,
		bindyv1beta1.LabelCluster:   instance.Spec.ClusterRef,
		bindyv1beta1.LabelRole:      string(instance.Spec.Role),
		bindyv1beta1.LabelInstance:  instance.Name,
	}
}

func mergeLabels(dst map[string]string, src map[string]string) map[string]string {
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
