package resourcebuilder

import (
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

// Params carries everything Reconcile* needs beyond the Bind9Instance
// itself, mirroring the teacher's <component>Params convention.
type Params struct {
	Instance      *bindyv1beta1.Bind9Instance
	ClusterConfig bindyv1beta1.Bind9ServerConfig
	NamedConf     string
	SpecHash      string
}

// ReconcileServiceAccount mutates sa in place to match the desired state for
// instance. It is safe to call repeatedly (controllerutil.CreateOrUpdate
// semantics).
func ReconcileServiceAccount(sa *corev1.ServiceAccount, p *Params) error {
	sa.Labels = mergeLabels(sa.Labels, InstanceLabels(p.Instance))
	return nil
}

// ReconcileConfigMap mutates cm in place with the rendered named.conf.
func ReconcileConfigMap(cm *corev1.ConfigMap, p *Params) error {
	cm.Labels = mergeLabels(cm.Labels, InstanceLabels(p.Instance))
	if cm.Data == nil {
		cm.Data = map[string]string{}
	}
	cm.Data["named.conf"] = p.NamedConf
	return nil
}

// ReconcileKeySecret ensures labels and type are set without touching Data;
// the instance controller populates and preserves key material separately
// because generation must happen exactly once (spec §4.1, §9 Non-goals:
// rotation out of scope).
func ReconcileKeySecret(secret *corev1.Secret, p *Params) error {
	secret.Labels = mergeLabels(secret.Labels, InstanceLabels(p.Instance))
	if secret.Type == "" {
		secret.Type = corev1.SecretTypeOpaque
	}
	return nil
}

// ReconcileService mutates svc in place to expose the DNS and admin ports.
func ReconcileService(svc *corev1.Service, p *Params) error {
	svc.Labels = mergeLabels(svc.Labels, InstanceLabels(p.Instance))
	svc.Spec.Selector = InstanceLabels(p.Instance)
	svc.Spec.Ports = []corev1.ServicePort{
		{
			Name:       "dns-tcp",
			Protocol:   corev1.ProtocolTCP,
			Port:       DNSPort,
			TargetPort: intstr.FromInt32(DNSPort),
		},
		{
			Name:       "dns-udp",
			Protocol:   corev1.ProtocolUDP,
			Port:       DNSPort,
			TargetPort: intstr.FromInt32(DNSPort),
		},
		{
			Name:       "admin",
			Protocol:   corev1.ProtocolTCP,
			Port:       AdminPort,
			TargetPort: intstr.FromInt32(AdminPort),
		},
	}
	return nil
}

// ReconcileDeployment mutates dep in place to run the BIND9 container and
// the zone-admin sidecar, mounting the rendered config and key Secret.
func ReconcileDeployment(dep *appsv1.Deployment, p *Params) error {
	instance := p.Instance
	labels := InstanceLabels(instance)
	dep.Labels = mergeLabels(dep.Labels, labels)

	replicas := instance.Spec.Replicas
	dep.Spec.Replicas = &replicas
	dep.Spec.Selector = &metav1.LabelSelector{MatchLabels: labels}

	if dep.Spec.Template.Labels == nil {
		dep.Spec.Template.Labels = map[string]string{}
	}
	dep.Spec.Template.Labels = mergeLabels(dep.Spec.Template.Labels, labels)
	if dep.Spec.Template.Annotations == nil {
		dep.Spec.Template.Annotations = map[string]string{}
	}
	dep.Spec.Template.Annotations[SpecHashAnnotation] = p.SpecHash

	dep.Spec.Template.Spec.ServiceAccountName = instance.Name
	dep.Spec.Template.Spec.SecurityContext = &corev1.PodSecurityContext{
		SeccompProfile: &corev1.SeccompProfile{Type: corev1.SeccompProfileTypeRuntimeDefault},
	}

	config := effectiveConfig(instance, p.ClusterConfig)
	resources, err := toResourceRequirements(config.Resources)
	if err != nil {
		return fmt.Errorf("instance %s: %w", instance.Name, err)
	}

	bind9Image := config.Image
	if bind9Image == "" {
		bind9Image = defaultBind9Image
	}
	sidecarImage := config.SidecarImage
	if sidecarImage == "" {
		sidecarImage = defaultSidecarImage
	}

	volumes := []corev1.Volume{
		{
			Name: "config",
			VolumeSource: corev1.VolumeSource{
				ConfigMap: &corev1.ConfigMapVolumeSource{
					LocalObjectReference: corev1.LocalObjectReference{Name: instance.Name + "-config"},
				},
			},
		},
		{
			Name: "key",
			VolumeSource: corev1.VolumeSource{
				Secret: &corev1.SecretVolumeSource{
					SecretName: bindyv1beta1.KeySecretName(instance.Name),
				},
			},
		},
		{
			Name:         "zones",
			VolumeSource: corev1.VolumeSource{EmptyDir: &corev1.EmptyDirVolumeSource{}},
		},
	}
	dep.Spec.Template.Spec.Volumes = volumes

	bind9Container := corev1.Container{
		Name:  containerNameBind9,
		Image: bind9Image,
		Ports: []corev1.ContainerPort{
			{Name: "dns-tcp", ContainerPort: DNSPort, Protocol: corev1.ProtocolTCP},
			{Name: "dns-udp", ContainerPort: DNSPort, Protocol: corev1.ProtocolUDP},
		},
		VolumeMounts: []corev1.VolumeMount{
			{Name: "config", MountPath: "/etc/bind", ReadOnly: true},
			{Name: "key", MountPath: "/etc/bind/keys", ReadOnly: true},
			{Name: "zones", MountPath: "/var/lib/bind/zones"},
		},
		Resources:       resources,
		SecurityContext: hardenedContainerSecurityContext(),
		LivenessProbe: &corev1.Probe{
			ProbeHandler: corev1.ProbeHandler{
				TCPSocket: &corev1.TCPSocketAction{Port: intstr.FromInt32(DNSPort)},
			},
			InitialDelaySeconds: 10,
			PeriodSeconds:       10,
		},
		ReadinessProbe: &corev1.Probe{
			ProbeHandler: corev1.ProbeHandler{
				TCPSocket: &corev1.TCPSocketAction{Port: intstr.FromInt32(DNSPort)},
			},
			InitialDelaySeconds: 5,
			PeriodSeconds:       10,
		},
	}

	sidecarContainer := corev1.Container{
		Name:  containerNameSidecar,
		Image: sidecarImage,
		Ports: []corev1.ContainerPort{
			{Name: "admin", ContainerPort: AdminPort, Protocol: corev1.ProtocolTCP},
		},
		Env: []corev1.EnvVar{
			{
				Name: "BINDY_SA_TOKEN",
				ValueFrom: &corev1.EnvVarSource{
					SecretKeyRef: &corev1.SecretKeySelector{
						LocalObjectReference: corev1.LocalObjectReference{Name: bindyv1beta1.KeySecretName(instance.Name)},
						Key:                  "sa-token",
						Optional:             boolPtr(true),
					},
				},
			},
		},
		VolumeMounts: []corev1.VolumeMount{
			{Name: "zones", MountPath: "/var/lib/bind/zones"},
		},
		SecurityContext: hardenedContainerSecurityContext(),
		LivenessProbe: &corev1.Probe{
			ProbeHandler: corev1.ProbeHandler{
				HTTPGet: &corev1.HTTPGetAction{Path: "/healthz", Port: intstr.FromInt32(AdminPort)},
			},
			InitialDelaySeconds: 10,
			PeriodSeconds:       10,
		},
		ReadinessProbe: &corev1.Probe{
			ProbeHandler: corev1.ProbeHandler{
				HTTPGet: &corev1.HTTPGetAction{Path: "/healthz", Port: intstr.FromInt32(AdminPort)},
			},
			InitialDelaySeconds: 5,
			PeriodSeconds:       10,
		},
	}

	dep.Spec.Template.Spec.Containers = upsertContainer(dep.Spec.Template.Spec.Containers, bind9Container)
	dep.Spec.Template.Spec.Containers = upsertContainer(dep.Spec.Template.Spec.Containers, sidecarContainer)

	return nil
}

// upsertContainer replaces the container with a matching name or appends it,
// the same mutate-in-place idiom the teacher's util.UpdateContainer applies,
// adapted here because our container set also needs to grow (bind9 +
// sidecar), not just be edited.
func upsertContainer(containers []corev1.Container, desired corev1.Container) []corev1.Container {
	for i := range containers {
		if containers[i].Name == desired.Name {
			containers[i] = desired
			return containers
		}
	}
	return append(containers, desired)
}

func toResourceRequirements(r bindyv1beta1.ResourceRequirements) (corev1.ResourceRequirements, error) {
	out := corev1.ResourceRequirements{}
	if len(r.Requests) > 0 {
		out.Requests = corev1.ResourceList{}
		for k, v := range r.Requests {
			q, err := resource.ParseQuantity(v)
			if err != nil {
				return out, fmt.Errorf("invalid request quantity %s=%s: %w", k, v, err)
			}
			out.Requests[corev1.ResourceName(k)] = q
		}
	}
	if len(r.Limits) > 0 {
		out.Limits = corev1.ResourceList{}
		for k, v := range r.Limits {
			q, err := resource.ParseQuantity(v)
			if err != nil {
				return out, fmt.Errorf("invalid limit quantity %s=%s: %w", k, v, err)
			}
			out.Limits[corev1.ResourceName(k)] = q
		}
	}
	return out, nil
}

func boolPtr(b bool) *bool { return &b }

// hardenedContainerSecurityContext locks both the bind9 and zone-admin
// containers down to the baseline every instance runs under (spec §4.1):
// non-root, no capabilities, read-only root filesystem.
func hardenedContainerSecurityContext() *corev1.SecurityContext {
	return &corev1.SecurityContext{
		RunAsNonRoot:             boolPtr(true),
		AllowPrivilegeEscalation: boolPtr(false),
		ReadOnlyRootFilesystem:   boolPtr(true),
		Capabilities: &corev1.Capabilities{
			Drop: []corev1.Capability{"ALL"},
		},
	}
}
