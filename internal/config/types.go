package config

import (
	corev1 "k8s.io/api/core/v1"
)

// Values is the pre-merge configuration shape. Both the packaged defaults and
// caller overrides use it; overridable scalars are pointers so an explicit
// false/0 can be told apart from "not supplied".
//
// Field tags are JSON because override files are decoded with sigs.k8s.io/yaml,
// which converts YAML to JSON before unmarshalling.
type Values struct {
	// Stateful selects a StatefulSet-shaped workload instead of a Deployment.
	Stateful *bool `json:"stateful,omitempty"`

	// ReplicaCount is the desired replica count. Advisory when autoscaling
	// is enabled.
	ReplicaCount *int32 `json:"replicaCount,omitempty"`

	Image       ImageValues       `json:"image,omitempty"`
	Service     ServiceValues     `json:"service,omitempty"`
	Resources   ResourceValues    `json:"resources,omitempty"`
	Persistence PersistenceValues `json:"persistence,omitempty"`
	Credentials CredentialValues  `json:"credentials,omitempty"`
	Autoscaling AutoscalingValues `json:"autoscaling,omitempty"`

	NetworkPolicy    FlagValues        `json:"networkPolicy,omitempty"`
	DisruptionBudget DisruptionValues  `json:"disruptionBudget,omitempty"`
	HighAvailability FlagValues        `json:"highAvailability,omitempty"`
	Monitoring       MonitoringValues  `json:"monitoring,omitempty"`
	Backup           BackupValues      `json:"backup,omitempty"`

	// Jobs are arbitrary scheduled jobs. Supplying any entry replaces the
	// whole list; there is no element-wise merge.
	Jobs []JobValues `json:"jobs,omitempty"`

	// Parameters are database engine settings rendered into the instance
	// ConfigMap. Keys merge individually.
	Parameters map[string]string `json:"parameters,omitempty"`

	NodeSelector map[string]string   `json:"nodeSelector,omitempty"`
	Tolerations  []corev1.Toleration `json:"tolerations,omitempty"`
}

// ImageValues is a container image reference.
type ImageValues struct {
	Repository string `json:"repository,omitempty"`
	Tag        string `json:"tag,omitempty"`
	PullPolicy string `json:"pullPolicy,omitempty"`
}

// ServiceValues shapes the client-facing service.
type ServiceValues struct {
	Type string `json:"type,omitempty"`
	Port *int32 `json:"port,omitempty"`
}

// ResourceValues are container resource requests and limits, expressed as
// Kubernetes quantity strings.
type ResourceValues struct {
	Requests ResourceList `json:"requests,omitempty"`
	Limits   ResourceList `json:"limits,omitempty"`
}

// ResourceList holds cpu/memory quantity strings.
type ResourceList struct {
	CPU    string `json:"cpu,omitempty"`
	Memory string `json:"memory,omitempty"`
}

// PersistenceValues enables per-replica storage and lists the claim templates
// to attach. Supplying any claim replaces the default list wholesale.
type PersistenceValues struct {
	Enabled *bool         `json:"enabled,omitempty"`
	Claims  []ClaimValues `json:"claims,omitempty"`
}

// ClaimValues is a single volume-claim template.
type ClaimValues struct {
	Name         string   `json:"name"`
	StorageClass string   `json:"storageClass,omitempty"`
	Size         string   `json:"size,omitempty"`
	AccessModes  []string `json:"accessModes,omitempty"`
	MountPath    string   `json:"mountPath,omitempty"`
}

// CredentialValues selects the credential source. Leave Password empty and
// set ExistingSecret to bind against a secret that already exists in the
// cluster; the referenced secret must carry the same keys a generated one
// would (username/password/database).
type CredentialValues struct {
	Username       string `json:"username,omitempty"`
	Password       string `json:"password,omitempty"`
	Database       string `json:"database,omitempty"`
	ExistingSecret string `json:"existingSecret,omitempty"`
}

// AutoscalingValues configures the horizontal autoscaler.
type AutoscalingValues struct {
	Enabled                 *bool  `json:"enabled,omitempty"`
	MinReplicas             *int32 `json:"minReplicas,omitempty"`
	MaxReplicas             *int32 `json:"maxReplicas,omitempty"`
	TargetCPUUtilization    *int32 `json:"targetCPUUtilization,omitempty"`
	TargetMemoryUtilization *int32 `json:"targetMemoryUtilization,omitempty"`
}

// FlagValues is a bare enable/disable toggle.
type FlagValues struct {
	Enabled *bool `json:"enabled,omitempty"`
}

// DisruptionValues configures the pod disruption budget.
type DisruptionValues struct {
	Enabled      *bool  `json:"enabled,omitempty"`
	MinAvailable *int32 `json:"minAvailable,omitempty"`
}

// MonitoringValues enables the metrics exporter sidecar.
type MonitoringValues struct {
	Enabled *bool       `json:"enabled,omitempty"`
	Image   ImageValues `json:"image,omitempty"`
	Port    *int32      `json:"port,omitempty"`
}

// BackupValues configures the default scheduled backup job.
type BackupValues struct {
	Enabled  *bool  `json:"enabled,omitempty"`
	Schedule string `json:"schedule,omitempty"`
	// Retention is the number of completed backup runs kept in job history.
	Retention *int32      `json:"retention,omitempty"`
	Image     ImageValues `json:"image,omitempty"`
}

// JobValues is a free-form scheduled job definition. Env and Volumes are
// opaque passthrough; credential material is always injected by reference,
// never copied into these fields.
type JobValues struct {
	Name              string               `json:"name"`
	Schedule          string               `json:"schedule"`
	Image             ImageValues          `json:"image,omitempty"`
	Command           []string             `json:"command,omitempty"`
	Env               []corev1.EnvVar      `json:"env,omitempty"`
	Volumes           []corev1.Volume      `json:"volumes,omitempty"`
	VolumeMounts      []corev1.VolumeMount `json:"volumeMounts,omitempty"`
	ConcurrencyPolicy string               `json:"concurrencyPolicy,omitempty"`
	HistoryLimit      *int32               `json:"historyLimit,omitempty"`
	FailedHistory     *int32               `json:"failedHistory,omitempty"`
}

// Ref returns the full image reference, or "" when no repository is set.
func (i ImageValues) Ref() string {
	if i.Repository == "" {
		return ""
	}
	if i.Tag == "" {
		return i.Repository
	}
	return i.Repository + ":" + i.Tag
}
