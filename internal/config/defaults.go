package config

import "github.com/imamik/dbforge/internal/util/ptr"

// Packaged default versions and ports.
const (
	DefaultImageRepository = "postgres"
	DefaultImageTag        = "16.4"

	DefaultExporterRepository = "quay.io/prometheuscommunity/postgres-exporter"
	DefaultExporterTag        = "v0.15.0"

	DefaultPort        int32 = 5432
	DefaultMetricsPort int32 = 9187

	DefaultDataMountPath = "/var/lib/postgresql/data"

	// DefaultBackupSchedule runs the backup job daily at 02:00.
	DefaultBackupSchedule = "0 2 * * *"
)

// Defaults returns the packaged default configuration. Every field the
// resolver reads has a value here; overrides only ever add to or replace
// these leaves.
func Defaults() Values {
	return Values{
		Stateful:     ptr.Bool(true),
		ReplicaCount: ptr.Int32(1),
		Image: ImageValues{
			Repository: DefaultImageRepository,
			Tag:        DefaultImageTag,
			PullPolicy: "IfNotPresent",
		},
		Service: ServiceValues{
			Type: "ClusterIP",
			Port: ptr.Int32(DefaultPort),
		},
		Resources: ResourceValues{
			Requests: ResourceList{CPU: "250m", Memory: "256Mi"},
			Limits:   ResourceList{CPU: "500m", Memory: "512Mi"},
		},
		Persistence: PersistenceValues{
			Enabled: ptr.Bool(true),
			Claims: []ClaimValues{{
				Name:        "data",
				Size:        "8Gi",
				AccessModes: []string{"ReadWriteOnce"},
				MountPath:   DefaultDataMountPath,
			}},
		},
		Credentials: CredentialValues{
			Username: "postgres",
			Database: "postgres",
		},
		Autoscaling: AutoscalingValues{
			Enabled:              ptr.Bool(false),
			MinReplicas:          ptr.Int32(1),
			MaxReplicas:          ptr.Int32(3),
			TargetCPUUtilization: ptr.Int32(80),
		},
		NetworkPolicy:    FlagValues{Enabled: ptr.Bool(false)},
		DisruptionBudget: DisruptionValues{Enabled: ptr.Bool(false), MinAvailable: ptr.Int32(1)},
		HighAvailability: FlagValues{Enabled: ptr.Bool(false)},
		Monitoring: MonitoringValues{
			Enabled: ptr.Bool(false),
			Image: ImageValues{
				Repository: DefaultExporterRepository,
				Tag:        DefaultExporterTag,
				PullPolicy: "IfNotPresent",
			},
			Port: ptr.Int32(DefaultMetricsPort),
		},
		Backup: BackupValues{
			Enabled:   ptr.Bool(false),
			Schedule:  DefaultBackupSchedule,
			Retention: ptr.Int32(7),
		},
	}
}
