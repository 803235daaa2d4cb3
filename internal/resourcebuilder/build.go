package resourcebuilder

import (
	"context"
	"fmt"

	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

// Reconcile creates or updates every child object a Bind9Instance owns,
// in the order a fresh rollout needs them: ServiceAccount and ConfigMap and
// key Secret before the Deployment that mounts them, then the Service.
// Every child except the ServiceAccount gets instance set as its controller
// owner reference; the ServiceAccount is the one shared-pattern exception
// (spec §4.1) and is left unowned.
func Reconcile(ctx context.Context, c client.Client, instance *bindyv1beta1.Bind9Instance, clusterConfig bindyv1beta1.Bind9ServerConfig, setOwner func(owner, controlled client.Object) error) error {
	namedConf, err := RenderNamedConf(effectiveConfig(instance, clusterConfig))
	if err != nil {
		return fmt.Errorf("rendering named.conf: %w", err)
	}
	specHash, err := SpecHash(instance, clusterConfig)
	if err != nil {
		return fmt.Errorf("hashing instance spec: %w", err)
	}
	params := &Params{
		Instance:      instance,
		ClusterConfig: clusterConfig,
		NamedConf:     namedConf,
		SpecHash:      specHash,
	}

	sa := ServiceAccount(instance)
	if _, err := controllerutil.CreateOrUpdate(ctx, c, sa, func() error {
		return ReconcileServiceAccount(sa, params)
	}); err != nil {
		return fmt.Errorf("reconciling service account: %w", err)
	}

	cm := ConfigMap(instance)
	if _, err := controllerutil.CreateOrUpdate(ctx, c, cm, func() error {
		if err := setOwner(instance, cm); err != nil {
			return err
		}
		return ReconcileConfigMap(cm, params)
	}); err != nil {
		return fmt.Errorf("reconciling configmap: %w", err)
	}

	secret := KeySecret(instance)
	if _, err := controllerutil.CreateOrUpdate(ctx, c, secret, func() error {
		if err := setOwner(instance, secret); err != nil {
			return err
		}
		return ReconcileKeySecret(secret, params)
	}); err != nil {
		return fmt.Errorf("reconciling key secret: %w", err)
	}

	dep := Deployment(instance)
	if _, err := controllerutil.CreateOrUpdate(ctx, c, dep, func() error {
		if err := setOwner(instance, dep); err != nil {
			return err
		}
		return ReconcileDeployment(dep, params)
	}); err != nil {
		return fmt.Errorf("reconciling deployment: %w", err)
	}

	svc := Service(instance)
	if _, err := controllerutil.CreateOrUpdate(ctx, c, svc, func() error {
		if err := setOwner(instance, svc); err != nil {
			return err
		}
		return ReconcileService(svc, params)
	}); err != nil {
		return fmt.Errorf("reconciling service: %w", err)
	}

	return nil
}
