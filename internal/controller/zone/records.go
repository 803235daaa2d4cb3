package zone

import (
	"context"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"sigs.k8s.io/controller-runtime/pkg/client"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

// listRecordsFunc lists every record of one kind in a namespace, wrapped
// behind bindyv1beta1.RecordObject so discoverAndTagRecords can treat all
// eight kinds identically (spec §4.7 Responsibility A).
type listRecordsFunc func(ctx context.Context, c client.Client, namespace string) ([]bindyv1beta1.RecordObject, error)

var recordListers = map[string]listRecordsFunc{
	"ARecord":     listARecords,
	"AAAARecord":  listAAAARecords,
	"CNAMERecord": listCNAMERecords,
	"MXRecord":    listMXRecords,
	"TXTRecord":   listTXTRecords,
	"NSRecord":    listNSRecords,
	"SRVRecord":   listSRVRecords,
	"CAARecord":   listCAARecords,
}

func listARecords(ctx context.Context, c client.Client, ns string) ([]bindyv1beta1.RecordObject, error) {
	var list bindyv1beta1.ARecordList
	if err := c.List(ctx, &list, client.InNamespace(ns)); err != nil {
		return nil, err
	}
	out := make([]bindyv1beta1.RecordObject, len(list.Items))
	for i := range list.Items {
		out[i] = &list.Items[i]
	}
	return out, nil
}

func listAAAARecords(ctx context.Context, c client.Client, ns string) ([]bindyv1beta1.RecordObject, error) {
	var list bindyv1beta1.AAAARecordList
	if err := c.List(ctx, &list, client.InNamespace(ns)); err != nil {
		return nil, err
	}
	out := make([]bindyv1beta1.RecordObject, len(list.Items))
	for i := range list.Items {
		out[i] = &list.Items[i]
	}
	return out, nil
}

func listCNAMERecords(ctx context.Context, c client.Client, ns string) ([]bindyv1beta1.RecordObject, error) {
	var list bindyv1beta1.CNAMERecordList
	if err := c.List(ctx, &list, client.InNamespace(ns)); err != nil {
		return nil, err
	}
	out := make([]bindyv1beta1.RecordObject, len(list.Items))
	for i := range list.Items {
		out[i] = &list.Items[i]
	}
	return out, nil
}

func listMXRecords(ctx context.Context, c client.Client, ns string) ([]bindyv1beta1.RecordObject, error) {
	var list bindyv1beta1.MXRecordList
	if err := c.List(ctx, &list, client.InNamespace(ns)); err != nil {
		return nil, err
	}
	out := make([]bindyv1beta1.RecordObject, len(list.Items))
	for i := range list.Items {
		out[i] = &list.Items[i]
	}
	return out, nil
}

func listTXTRecords(ctx context.Context, c client.Client, ns string) ([]bindyv1beta1.RecordObject, error) {
	var list bindyv1beta1.TXTRecordList
	if err := c.List(ctx, &list, client.InNamespace(ns)); err != nil {
		return nil, err
	}
	out := make([]bindyv1beta1.RecordObject, len(list.Items))
	for i := range list.Items {
		out[i] = &list.Items[i]
	}
	return out, nil
}

func listNSRecords(ctx context.Context, c client.Client, ns string) ([]bindyv1beta1.RecordObject, error) {
	var list bindyv1beta1.NSRecordList
	if err := c.List(ctx, &list, client.InNamespace(ns)); err != nil {
		return nil, err
	}
	out := make([]bindyv1beta1.RecordObject, len(list.Items))
	for i := range list.Items {
		out[i] = &list.Items[i]
	}
	return out, nil
}

func listSRVRecords(ctx context.Context, c client.Client, ns string) ([]bindyv1beta1.RecordObject, error) {
	var list bindyv1beta1.SRVRecordList
	if err := c.List(ctx, &list, client.InNamespace(ns)); err != nil {
		return nil, err
	}
	out := make([]bindyv1beta1.RecordObject, len(list.Items))
	for i := range list.Items {
		out[i] = &list.Items[i]
	}
	return out, nil
}

func listCAARecords(ctx context.Context, c client.Client, ns string) ([]bindyv1beta1.RecordObject, error) {
	var list bindyv1beta1.CAARecordList
	if err := c.List(ctx, &list, client.InNamespace(ns)); err != nil {
		return nil, err
	}
	out := make([]bindyv1beta1.RecordObject, len(list.Items))
	for i := range list.Items {
		out[i] = &list.Items[i]
	}
	return out, nil
}

// zoneMatchesRecord reports whether any of zone's recordsFrom selectors
// match record's labels.
func zoneMatchesRecord(zoneSpec bindyv1beta1.DNSZoneSpec, record bindyv1beta1.RecordObject) bool {
	set := labels.Set(record.GetLabels())
	for _, ref := range zoneSpec.RecordsFrom {
		selector, err := metav1.LabelSelectorAsSelector(&ref.Selector)
		if err != nil {
			continue
		}
		if selector.Matches(set) {
			return true
		}
	}
	return false
}

// winningZone returns the zone among candidates that matches record and
// sorts first by UID (byte-lexicographic), or nil if none match (spec §4.7
// Responsibility A tie-break, §8 property 5).
func winningZone(record bindyv1beta1.RecordObject, candidates []bindyv1beta1.DNSZone) *bindyv1beta1.DNSZone {
	var winner *bindyv1beta1.DNSZone
	for i := range candidates {
		z := &candidates[i]
		if !zoneMatchesRecord(z.Spec, record) {
			continue
		}
		if winner == nil || string(z.UID) < string(winner.UID) {
			winner = z
		}
	}
	return winner
}

// discoverAndTagRecords implements spec §4.7 Responsibility A: it considers
// every DNSZone in the namespace (not only the one being reconciled) so the
// tie-break rule is applied consistently regardless of which zone's
// reconcile happened to run.
func (r *Reconciler) discoverAndTagRecords(ctx context.Context, zone *bindyv1beta1.DNSZone) ([]bindyv1beta1.ObjectReference, error) {
	var allZones bindyv1beta1.DNSZoneList
	if err := r.List(ctx, &allZones, client.InNamespace(zone.Namespace)); err != nil {
		return nil, err
	}

	var claimed []bindyv1beta1.ObjectReference
	for kind, lister := range recordListers {
		records, err := lister(ctx, r.Client, zone.Namespace)
		if err != nil {
			return nil, err
		}
		for _, record := range records {
			status := record.GetRecordStatus()
			winner := winningZone(record, allZones.Items)

			switch {
			case winner != nil && winner.UID == zone.UID:
				desired := &bindyv1beta1.ZoneReference{
					ObjectReference: bindyv1beta1.ObjectReference{
						APIVersion: bindyv1beta1.GroupVersion.String(),
						Kind:       "DNSZone",
						Name:       zone.Name,
						Namespace:  zone.Namespace,
					},
					ZoneName: zone.Spec.ZoneName,
				}
				if status.ZoneRef == nil || *status.ZoneRef != *desired {
					status.ZoneRef = desired
					if err := r.Status().Update(ctx, record); err != nil {
						return nil, err
					}
				}
				claimed = append(claimed, bindyv1beta1.ObjectReference{
					APIVersion: bindyv1beta1.GroupVersion.String(),
					Kind:       kind,
					Name:       record.GetName(),
					Namespace:  record.GetNamespace(),
				})
			case status.ZoneRef != nil && status.ZoneRef.Name == zone.Name && status.ZoneRef.Namespace == zone.Namespace:
				status.ZoneRef = nil
				if err := r.Status().Update(ctx, record); err != nil {
					return nil, err
				}
			}
		}
	}
	return claimed, nil
}
