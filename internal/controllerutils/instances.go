package controllerutils

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"sigs.k8s.io/controller-runtime/pkg/client"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

// EffectiveInstanceSet computes the union, deduplicated by UID, of instances
// belonging to clusterRef and instances matched by selector (spec §3, §4.7
// Responsibility B). Either input may be empty; both the zone controller and
// the record controllers (which resolve a zone's effective set again when
// issuing DNS UPDATEs) share this helper so the dedup and selector semantics
// can't drift between the two.
func EffectiveInstanceSet(ctx context.Context, c client.Client, namespace, clusterRef string, selector *metav1.LabelSelector) ([]bindyv1beta1.Bind9Instance, error) {
	seen := map[string]struct{}{}
	var out []bindyv1beta1.Bind9Instance

	add := func(instances []bindyv1beta1.Bind9Instance) {
		for _, instance := range instances {
			uid := string(instance.UID)
			if _, ok := seen[uid]; ok {
				continue
			}
			seen[uid] = struct{}{}
			out = append(out, instance)
		}
	}

	if clusterRef != "" {
		var list bindyv1beta1.Bind9InstanceList
		if err := c.List(ctx, &list, client.InNamespace(namespace), client.MatchingLabels{
			bindyv1beta1.LabelCluster: clusterRef,
		}); err != nil {
			return nil, err
		}
		add(list.Items)
	}

	if selector != nil {
		sel, err := metav1.LabelSelectorAsSelector(selector)
		if err != nil {
			return nil, fmt.Errorf("invalid instanceSelector: %w", err)
		}
		var list bindyv1beta1.Bind9InstanceList
		if err := c.List(ctx, &list); err != nil {
			return nil, err
		}
		var matched []bindyv1beta1.Bind9Instance
		for _, instance := range list.Items {
			if instance.Namespace == namespace && sel.Matches(labels.Set(instance.Labels)) {
				matched = append(matched, instance)
			}
		}
		add(matched)
	}

	return out, nil
}
