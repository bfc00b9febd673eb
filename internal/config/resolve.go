package config

import (
	"encoding/json"
	"fmt"
	"reflect"

	"dario.cat/mergo"
	corev1 "k8s.io/api/core/v1"
)

// Resolved is the single source of truth after merge: every flag and scalar
// is concrete, every list is final. Composition reads only from this type.
type Resolved struct {
	Stateful     bool
	ReplicaCount int32

	Image     ImageValues
	Service   ResolvedService
	Resources ResourceValues

	Persistence ResolvedPersistence
	Credentials CredentialValues
	Autoscaling ResolvedAutoscaling

	NetworkPolicy    bool
	DisruptionBudget ResolvedDisruption
	HighAvailability bool
	Monitoring       ResolvedMonitoring
	Backup           ResolvedBackup

	Jobs       []ResolvedJob
	Parameters map[string]string

	NodeSelector map[string]string
	Tolerations  []corev1.Toleration
}

// ResolvedService is the client-facing service shape.
type ResolvedService struct {
	Type string
	Port int32
}

// ResolvedPersistence is the final persistence decision.
type ResolvedPersistence struct {
	Enabled bool
	Claims  []ClaimValues
}

// ResolvedAutoscaling is the final autoscaler shape.
type ResolvedAutoscaling struct {
	Enabled                 bool
	MinReplicas             int32
	MaxReplicas             int32
	TargetCPUUtilization    int32
	TargetMemoryUtilization int32
}

// ResolvedDisruption is the final disruption-budget shape.
type ResolvedDisruption struct {
	Enabled      bool
	MinAvailable int32
}

// ResolvedMonitoring is the final exporter sidecar shape.
type ResolvedMonitoring struct {
	Enabled bool
	Image   ImageValues
	Port    int32
}

// ResolvedBackup is the final backup-job shape.
type ResolvedBackup struct {
	Enabled   bool
	Schedule  string
	Retention int32
	Image     ImageValues
}

// ResolvedJob is a scheduled job with all defaults applied.
type ResolvedJob struct {
	Name              string
	Schedule          string
	Image             ImageValues
	Command           []string
	Env               []corev1.EnvVar
	Volumes           []corev1.Volume
	VolumeMounts      []corev1.VolumeMount
	ConcurrencyPolicy string
	HistoryLimit      int32
	FailedHistory     int32
}

// Resolve deep-merges caller overrides onto the packaged defaults and expands
// the result into a fully-concrete configuration. Scalar leaves replace
// defaults, maps merge key-wise, and list-valued fields replace the default
// list wholesale when the caller supplies any entry. The merge itself never
// fails on valid shapes; invariant checking is a separate pass.
func Resolve(defaults, overrides Values) (*Resolved, error) {
	merged, err := cloneValues(defaults)
	if err != nil {
		return nil, err
	}
	if err := mergeValues(&merged, overrides); err != nil {
		return nil, err
	}
	return expand(merged), nil
}

// cloneValues deep-copies a Values so the merge never writes through shared
// maps or slices into the caller's defaults.
func cloneValues(v Values) (Values, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Values{}, fmt.Errorf("failed to clone defaults: %w", err)
	}
	var out Values
	if err := json.Unmarshal(data, &out); err != nil {
		return Values{}, fmt.Errorf("failed to clone defaults: %w", err)
	}
	return out, nil
}

// mergeValues applies src on top of dst with the resolver's merge semantics.
func mergeValues(dst *Values, src Values) error {
	if err := mergo.Merge(dst, src, mergo.WithOverride, mergo.WithTransformers(pointerTransformer{})); err != nil {
		return fmt.Errorf("failed to merge overrides: %w", err)
	}
	return nil
}

// pointerTransformer makes a non-nil override pointer always win, so that an
// explicit `enabled: false` can switch off a default-true flag. Without it
// mergo dereferences both sides and treats false/0 as empty.
type pointerTransformer struct{}

func (pointerTransformer) Transformer(t reflect.Type) func(dst, src reflect.Value) error {
	if t.Kind() != reflect.Ptr {
		return nil
	}
	return func(dst, src reflect.Value) error {
		if !src.IsNil() && dst.CanSet() {
			dst.Set(src)
		}
		return nil
	}
}

// expand flattens the merged pointer shape into concrete values.
func expand(v Values) *Resolved {
	r := &Resolved{
		Stateful:     boolOf(v.Stateful),
		ReplicaCount: int32Of(v.ReplicaCount),
		Image:        v.Image,
		Service: ResolvedService{
			Type: v.Service.Type,
			Port: int32Of(v.Service.Port),
		},
		Resources: v.Resources,
		Persistence: ResolvedPersistence{
			Enabled: boolOf(v.Persistence.Enabled),
			Claims:  v.Persistence.Claims,
		},
		Credentials: v.Credentials,
		Autoscaling: ResolvedAutoscaling{
			Enabled:                 boolOf(v.Autoscaling.Enabled),
			MinReplicas:             int32Of(v.Autoscaling.MinReplicas),
			MaxReplicas:             int32Of(v.Autoscaling.MaxReplicas),
			TargetCPUUtilization:    int32Of(v.Autoscaling.TargetCPUUtilization),
			TargetMemoryUtilization: int32Of(v.Autoscaling.TargetMemoryUtilization),
		},
		NetworkPolicy: boolOf(v.NetworkPolicy.Enabled),
		DisruptionBudget: ResolvedDisruption{
			Enabled:      boolOf(v.DisruptionBudget.Enabled),
			MinAvailable: int32Of(v.DisruptionBudget.MinAvailable),
		},
		HighAvailability: boolOf(v.HighAvailability.Enabled),
		Monitoring: ResolvedMonitoring{
			Enabled: boolOf(v.Monitoring.Enabled),
			Image:   v.Monitoring.Image,
			Port:    int32Of(v.Monitoring.Port),
		},
		Backup: ResolvedBackup{
			Enabled:   boolOf(v.Backup.Enabled),
			Schedule:  v.Backup.Schedule,
			Retention: int32Of(v.Backup.Retention),
			Image:     v.Backup.Image,
		},
		Parameters:   v.Parameters,
		NodeSelector: v.NodeSelector,
		Tolerations:  v.Tolerations,
	}

	// Jobs inherit the instance image and conservative job-control defaults.
	for _, j := range v.Jobs {
		rj := ResolvedJob{
			Name:              j.Name,
			Schedule:          j.Schedule,
			Image:             j.Image,
			Command:           j.Command,
			Env:               j.Env,
			Volumes:           j.Volumes,
			VolumeMounts:      j.VolumeMounts,
			ConcurrencyPolicy: j.ConcurrencyPolicy,
			HistoryLimit:      3,
			FailedHistory:     1,
		}
		if rj.Image.Repository == "" {
			rj.Image = r.Image
		}
		if rj.ConcurrencyPolicy == "" {
			rj.ConcurrencyPolicy = "Forbid"
		}
		if j.HistoryLimit != nil {
			rj.HistoryLimit = *j.HistoryLimit
		}
		if j.FailedHistory != nil {
			rj.FailedHistory = *j.FailedHistory
		}
		r.Jobs = append(r.Jobs, rj)
	}

	// The backup image falls back to the instance image, which ships the
	// matching client tools.
	if r.Backup.Image.Repository == "" {
		r.Backup.Image = r.Image
	}

	return r
}

func boolOf(p *bool) bool {
	if p == nil {
		return false
	}
	return *p
}

func int32Of(p *int32) int32 {
	if p == nil {
		return 0
	}
	return *p
}
