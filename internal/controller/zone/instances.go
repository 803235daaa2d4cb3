package zone

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
	"github.com/firestoned/bindy/internal/bind9client"
	"github.com/firestoned/bindy/internal/controllerutils"
	"github.com/firestoned/bindy/internal/resourcebuilder"
)

// effectiveInstanceSet computes the union, deduplicated by UID, of instances
// belonging to zone.Spec.ClusterRef and instances matched by
// zone.Spec.InstanceSelector (spec §3, §4.7 Responsibility B).
func (r *Reconciler) effectiveInstanceSet(ctx context.Context, zone *bindyv1beta1.DNSZone) ([]bindyv1beta1.Bind9Instance, error) {
	return controllerutils.EffectiveInstanceSet(ctx, r.Client, zone.Namespace, zone.Spec.ClusterRef, zone.Spec.InstanceSelector)
}

// bind9ClientFor builds a Client for the sidecar of instance, loading its
// admin bearer token from the instance's key Secret.
func (r *Reconciler) bind9ClientFor(ctx context.Context, instance *bindyv1beta1.Bind9Instance) (*bind9client.Client, error) {
	var secret corev1.Secret
	if err := r.Get(ctx, client.ObjectKey{Name: bindyv1beta1.KeySecretName(instance.Name), Namespace: instance.Namespace}, &secret); err != nil {
		return nil, fmt.Errorf("loading key secret for %s: %w", instance.Name, err)
	}
	token := string(secret.Data[resourcebuilder.SecretKeySAToken])
	baseURL := fmt.Sprintf("http://%s.%s.svc:%d", instance.Name, instance.Namespace, resourcebuilder.AdminPort)
	if r.baseURLFor != nil {
		baseURL = r.baseURLFor(instance)
	}
	onTrip := func() {
		r.Metrics.BreakerTripsTotal.WithLabelValues(instance.Name, "bind9client").Inc()
	}
	log := r.Log
	if id := controllerutils.CorrelationID(ctx); id != "" {
		log = log.WithValues("correlationID", id)
	}
	return bind9client.New(instance.Name, baseURL, token, log, onTrip), nil
}

// installZone ensures zone is present on every member of instances,
// transitioning each instance's sync state according to the state machine
// in spec §4.7: Pending on absence, Configured on success, Degraded after
// controllerutils.DegradedThreshold consecutive failures.
func (r *Reconciler) installZone(ctx context.Context, zone *bindyv1beta1.DNSZone, instances []bindyv1beta1.Bind9Instance) []bindyv1beta1.InstanceReference {
	primaries := make([]string, 0, len(instances))
	for _, instance := range instances {
		if instance.Spec.Role == bindyv1beta1.RolePrimary {
			primaries = append(primaries, fmt.Sprintf("%s.%s.svc:53", instance.Name, instance.Namespace))
		}
	}

	refs := make([]bindyv1beta1.InstanceReference, 0, len(instances))
	for _, instance := range instances {
		prior, found := zone.InstanceState(string(instance.UID))
		if !found {
			prior.State = bindyv1beta1.InstanceSyncPending
		}
		ref := bindyv1beta1.InstanceReference{
			Name:                instance.Name,
			UID:                 instance.UID,
			Role:                instance.Spec.Role,
			State:               bindyv1beta1.InstanceSyncPending,
			ConsecutiveFailures: prior.ConsecutiveFailures,
		}

		c, err := r.bind9ClientFor(ctx, &instance)
		if err != nil {
			ref.State = bindyv1beta1.InstanceSyncPending
			ref.Message = err.Error()
			refs = append(refs, ref)
			continue
		}

		params := bind9client.AddZoneParams{
			Role:         string(instance.Spec.Role),
			PrimaryNS:    zone.Spec.SOA.PrimaryNS,
			AdminMailbox: zone.Spec.SOA.AdminMailbox,
			Serial:       zone.Spec.SOA.Serial,
			Refresh:      zone.Spec.SOA.Refresh,
			Retry:        zone.Spec.SOA.Retry,
			Expire:       zone.Spec.SOA.Expire,
			NegativeTTL:  zone.Spec.SOA.NegativeTTL,
		}
		if instance.Spec.Role == bindyv1beta1.RoleSecondary {
			params.Primaries = primaries
		}

		if err := c.AddZone(ctx, zone.Spec.ZoneName, params); err != nil {
			ref.ConsecutiveFailures++
			ref.Message = err.Error()
			if ref.ConsecutiveFailures >= controllerutils.DegradedThreshold {
				ref.State = bindyv1beta1.InstanceSyncDegraded
			} else {
				ref.State = prior.State
			}
			refs = append(refs, ref)
			continue
		}

		ref.State = bindyv1beta1.InstanceSyncConfigured
		ref.ConsecutiveFailures = 0
		ref.Message = ""
		refs = append(refs, ref)
	}
	return refs
}

// aggregateInstanceErrors joins every non-Configured instance's failure into
// one human-readable message for the zone's Ready condition, so an operator
// reading `kubectl describe` sees every failing instance at once instead of
// having to cross-reference status.bind9Instances themselves.
func aggregateInstanceErrors(refs []bindyv1beta1.InstanceReference) string {
	var result *multierror.Error
	for _, ref := range refs {
		if ref.State != bindyv1beta1.InstanceSyncConfigured && ref.Message != "" {
			result = multierror.Append(result, fmt.Errorf("%s: %s", ref.Name, ref.Message))
		}
	}
	if result == nil {
		return ""
	}
	return result.Error()
}

// revokeZoneFromInstances calls DelZone against every instance in the
// zone's effective set, protocol-level cleanup that garbage collection
// cannot do on its own (spec §3, §4.7). Best-effort: an instance that is
// unreachable or already lacks the zone must not block finalizer removal,
// so failures are joined for logging rather than returned individually.
func (r *Reconciler) revokeZoneFromInstances(ctx context.Context, zone *bindyv1beta1.DNSZone) error {
	instances, err := r.effectiveInstanceSet(ctx, zone)
	if err != nil {
		return nil
	}
	var result *multierror.Error
	for _, instance := range instances {
		c, err := r.bind9ClientFor(ctx, &instance)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if err := c.DelZone(ctx, zone.Spec.ZoneName); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", instance.Name, err))
		}
	}
	if result == nil {
		return nil
	}
	r.Log.V(1).Info("some instances failed zone revocation, proceeding with deletion", "zone", zone.Name, "error", result.Error())
	return nil
}

// notifySecondaries asks every primary to notify and every secondary to
// retransfer, used once every instance is Configured and every claimed
// record is Available (spec §4.7 Responsibility B).
func (r *Reconciler) notifySecondaries(ctx context.Context, zone *bindyv1beta1.DNSZone, instances []bindyv1beta1.Bind9Instance) {
	for _, instance := range instances {
		c, err := r.bind9ClientFor(ctx, &instance)
		if err != nil {
			continue
		}
		if instance.Spec.Role == bindyv1beta1.RolePrimary {
			_ = c.Notify(ctx, zone.Spec.ZoneName)
		} else {
			_ = c.Retransfer(ctx, zone.Spec.ZoneName)
		}
	}
}
