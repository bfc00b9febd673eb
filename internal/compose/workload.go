package compose

import (
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/imamik/dbforge/internal/config"
	"github.com/imamik/dbforge/internal/credentials"
	"github.com/imamik/dbforge/internal/naming"
	"github.com/imamik/dbforge/internal/util/ptr"
)

const (
	containerName = "postgres"
	exporterName  = "metrics"
	portName      = "postgresql"
	metricsName   = "metrics"

	configVolume    = "config"
	configMountPath = "/etc/postgresql"

	// dataVolume backs the data directory when no claim template applies.
	// The name cannot collide with a claim template called "data".
	dataVolume = "data-ephemeral"
)

// workload builds the primary long-running document: a StatefulSet when the
// instance is stateful, a Deployment otherwise.
func (c *composer) workload() runtime.Object {
	if c.res.Stateful {
		return c.statefulSet()
	}
	return c.deployment()
}

func (c *composer) statefulSet() *appsv1.StatefulSet {
	sts := &appsv1.StatefulSet{
		TypeMeta: metav1.TypeMeta{APIVersion: "apps/v1", Kind: "StatefulSet"},
		ObjectMeta: metav1.ObjectMeta{
			Name:   c.names.Workload,
			Labels: c.names.Labels(naming.ComponentDatabase),
		},
		Spec: appsv1.StatefulSetSpec{
			Replicas:    ptr.Int32(c.res.ReplicaCount),
			ServiceName: c.names.HeadlessService,
			Selector: &metav1.LabelSelector{
				MatchLabels: c.names.SelectorLabels(),
			},
			Template: c.podTemplate(),
		},
	}

	// Claim templates are attached only when persistence is on; the claim
	// list is ignored entirely otherwise.
	if c.res.Persistence.Enabled {
		for _, claim := range c.res.Persistence.Claims {
			sts.Spec.VolumeClaimTemplates = append(sts.Spec.VolumeClaimTemplates, c.claimTemplate(claim))
		}
	}

	return sts
}

func (c *composer) deployment() *appsv1.Deployment {
	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{APIVersion: "apps/v1", Kind: "Deployment"},
		ObjectMeta: metav1.ObjectMeta{
			Name:   c.names.Workload,
			Labels: c.names.Labels(naming.ComponentDatabase),
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.Int32(c.res.ReplicaCount),
			Selector: &metav1.LabelSelector{
				MatchLabels: c.names.SelectorLabels(),
			},
			Template: c.podTemplate(),
		},
	}
}

func (c *composer) claimTemplate(claim config.ClaimValues) corev1.PersistentVolumeClaim {
	modes := make([]corev1.PersistentVolumeAccessMode, 0, len(claim.AccessModes))
	for _, m := range claim.AccessModes {
		modes = append(modes, corev1.PersistentVolumeAccessMode(m))
	}
	if len(modes) == 0 {
		modes = []corev1.PersistentVolumeAccessMode{corev1.ReadWriteOnce}
	}

	pvc := corev1.PersistentVolumeClaim{
		ObjectMeta: metav1.ObjectMeta{
			Name:   claim.Name,
			Labels: c.names.SelectorLabels(),
		},
		Spec: corev1.PersistentVolumeClaimSpec{
			AccessModes: modes,
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{
					corev1.ResourceStorage: resource.MustParse(claim.Size),
				},
			},
		},
	}
	if claim.StorageClass != "" {
		pvc.Spec.StorageClassName = ptr.String(claim.StorageClass)
	}
	return pvc
}

func (c *composer) podTemplate() corev1.PodTemplateSpec {
	tpl := corev1.PodTemplateSpec{
		ObjectMeta: metav1.ObjectMeta{
			Labels:      c.names.Labels(naming.ComponentDatabase),
			Annotations: c.podAnnotations(),
		},
		Spec: corev1.PodSpec{
			Containers:   []corev1.Container{c.databaseContainer()},
			NodeSelector: c.res.NodeSelector,
			Tolerations:  c.res.Tolerations,
		},
	}

	if c.res.Monitoring.Enabled {
		tpl.Spec.Containers = append(tpl.Spec.Containers, c.exporterContainer())
	}

	if len(c.res.Parameters) > 0 {
		tpl.Spec.Volumes = append(tpl.Spec.Volumes, corev1.Volume{
			Name: configVolume,
			VolumeSource: corev1.VolumeSource{
				ConfigMap: &corev1.ConfigMapVolumeSource{
					LocalObjectReference: corev1.LocalObjectReference{Name: c.names.ConfigMap},
				},
			},
		})
	}

	// Without persistence the data directory lives on an emptyDir so the
	// engine still has somewhere writable.
	if !c.res.Persistence.Enabled || !c.res.Stateful {
		tpl.Spec.Volumes = append(tpl.Spec.Volumes, corev1.Volume{
			Name:         dataVolume,
			VolumeSource: corev1.VolumeSource{EmptyDir: &corev1.EmptyDirVolumeSource{}},
		})
	}

	if c.res.HighAvailability {
		tpl.Spec.Affinity = c.antiAffinity()
		tpl.Spec.TopologySpreadConstraints = c.topologySpread()
	}

	return tpl
}

func (c *composer) podAnnotations() map[string]string {
	annotations := map[string]string{}
	if len(c.res.Parameters) > 0 {
		// A parameter change must roll the pods even though the ConfigMap
		// name stays stable across renders.
		annotations["checksum/config"] = parametersChecksum(c.res.Parameters)
	}
	if c.res.Monitoring.Enabled {
		annotations["prometheus.io/scrape"] = "true"
		annotations["prometheus.io/port"] = fmt.Sprintf("%d", c.res.Monitoring.Port)
	}
	if len(annotations) == 0 {
		return nil
	}
	return annotations
}

func (c *composer) databaseContainer() corev1.Container {
	container := corev1.Container{
		Name:            containerName,
		Image:           c.res.Image.Ref(),
		ImagePullPolicy: corev1.PullPolicy(c.res.Image.PullPolicy),
		Ports: []corev1.ContainerPort{{
			Name:          portName,
			ContainerPort: c.res.Service.Port,
		}},
		Env:       c.databaseEnv(),
		Resources: resourceRequirements(c.res.Resources),
		ReadinessProbe: &corev1.Probe{
			ProbeHandler: corev1.ProbeHandler{
				Exec: &corev1.ExecAction{
					Command: []string{"pg_isready", "-U", "postgres"},
				},
			},
			InitialDelaySeconds: 5,
			PeriodSeconds:       10,
		},
		LivenessProbe: &corev1.Probe{
			ProbeHandler: corev1.ProbeHandler{
				Exec: &corev1.ExecAction{
					Command: []string{"pg_isready", "-U", "postgres"},
				},
			},
			InitialDelaySeconds: 30,
			PeriodSeconds:       15,
		},
	}

	container.VolumeMounts = c.dataMounts()
	if len(c.res.Parameters) > 0 {
		container.VolumeMounts = append(container.VolumeMounts, corev1.VolumeMount{
			Name:      configVolume,
			MountPath: configMountPath,
			ReadOnly:  true,
		})
		container.Args = []string{"-c", fmt.Sprintf("config_file=%s/%s", configMountPath, parametersFile)}
	}

	return container
}

// databaseEnv binds the engine's bootstrap variables to the resolved secret.
// Values are always referenced by name, never embedded as literals, so the
// generated and externally-referenced secret paths stay interchangeable.
func (c *composer) databaseEnv() []corev1.EnvVar {
	return []corev1.EnvVar{
		secretEnv("POSTGRES_USER", c.secretName, credentials.KeyUsername),
		secretEnv("POSTGRES_PASSWORD", c.secretName, credentials.KeyPassword),
		secretEnv("POSTGRES_DB", c.secretName, credentials.KeyDatabase),
		{Name: "PGDATA", Value: config.DefaultDataMountPath + "/pgdata"},
	}
}

func (c *composer) exporterContainer() corev1.Container {
	return corev1.Container{
		Name:            exporterName,
		Image:           c.res.Monitoring.Image.Ref(),
		ImagePullPolicy: corev1.PullPolicy(c.res.Monitoring.Image.PullPolicy),
		Ports: []corev1.ContainerPort{{
			Name:          metricsName,
			ContainerPort: c.res.Monitoring.Port,
		}},
		Env: []corev1.EnvVar{
			{Name: "DATA_SOURCE_URI", Value: fmt.Sprintf("localhost:%d/postgres?sslmode=disable", c.res.Service.Port)},
			secretEnv("DATA_SOURCE_USER", c.secretName, credentials.KeyUsername),
			secretEnv("DATA_SOURCE_PASS", c.secretName, credentials.KeyPassword),
		},
	}
}

// dataMounts mounts each claim at its configured path. Stateful workloads
// with persistence mount the claim templates; everything else mounts the
// single emptyDir data volume.
func (c *composer) dataMounts() []corev1.VolumeMount {
	if c.res.Stateful && c.res.Persistence.Enabled {
		mounts := make([]corev1.VolumeMount, 0, len(c.res.Persistence.Claims))
		for _, claim := range c.res.Persistence.Claims {
			mountPath := claim.MountPath
			if mountPath == "" {
				mountPath = config.DefaultDataMountPath
			}
			mounts = append(mounts, corev1.VolumeMount{
				Name:      claim.Name,
				MountPath: mountPath,
			})
		}
		return mounts
	}
	return []corev1.VolumeMount{{
		Name:      dataVolume,
		MountPath: config.DefaultDataMountPath,
	}}
}

func (c *composer) antiAffinity() *corev1.Affinity {
	return &corev1.Affinity{
		PodAntiAffinity: &corev1.PodAntiAffinity{
			PreferredDuringSchedulingIgnoredDuringExecution: []corev1.WeightedPodAffinityTerm{{
				Weight: 100,
				PodAffinityTerm: corev1.PodAffinityTerm{
					LabelSelector: &metav1.LabelSelector{
						MatchLabels: c.names.SelectorLabels(),
					},
					TopologyKey: "kubernetes.io/hostname",
				},
			}},
		},
	}
}

func (c *composer) topologySpread() []corev1.TopologySpreadConstraint {
	return []corev1.TopologySpreadConstraint{{
		MaxSkew:           1,
		TopologyKey:       "topology.kubernetes.io/zone",
		WhenUnsatisfiable: corev1.ScheduleAnyway,
		LabelSelector: &metav1.LabelSelector{
			MatchLabels: c.names.SelectorLabels(),
		},
	}}
}

func secretEnv(name, secretName, key string) corev1.EnvVar {
	return corev1.EnvVar{
		Name: name,
		ValueFrom: &corev1.EnvVarSource{
			SecretKeyRef: &corev1.SecretKeySelector{
				LocalObjectReference: corev1.LocalObjectReference{Name: secretName},
				Key:                  key,
			},
		},
	}
}

func resourceRequirements(res config.ResourceValues) corev1.ResourceRequirements {
	return corev1.ResourceRequirements{
		Requests: resourceList(res.Requests),
		Limits:   resourceList(res.Limits),
	}
}

func resourceList(rl config.ResourceList) corev1.ResourceList {
	if rl.CPU == "" && rl.Memory == "" {
		return nil
	}
	out := corev1.ResourceList{}
	if rl.CPU != "" {
		out[corev1.ResourceCPU] = resource.MustParse(rl.CPU)
	}
	if rl.Memory != "" {
		out[corev1.ResourceMemory] = resource.MustParse(rl.Memory)
	}
	return out
}
