package compose

import (
	"fmt"

	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/imamik/dbforge/internal/config"
	"github.com/imamik/dbforge/internal/credentials"
	"github.com/imamik/dbforge/internal/naming"
	"github.com/imamik/dbforge/internal/util/ptr"
)

const backupVolume = "backups"

// scheduledJobs returns the job list to emit and the component its documents
// are labeled with. The caller-supplied list wins and carries the neutral job
// component; with backup enabled and no list supplied, the single default
// backup job is synthesized.
func (c *composer) scheduledJobs() ([]config.ResolvedJob, string) {
	if len(c.res.Jobs) > 0 {
		return c.res.Jobs, naming.ComponentJob
	}
	if c.res.Backup.Enabled {
		return []config.ResolvedJob{c.defaultBackupJob()}, naming.ComponentBackup
	}
	return nil, ""
}

// defaultBackupJob dumps the database on the configured schedule. The dump
// target is an emptyDir; callers that want durable backups supply their own
// job list with a proper volume.
func (c *composer) defaultBackupJob() config.ResolvedJob {
	return config.ResolvedJob{
		Name:     "backup",
		Schedule: c.res.Backup.Schedule,
		Image:    c.res.Backup.Image,
		Command: []string{
			"sh", "-c",
			fmt.Sprintf(`pg_dump -h %s -p %d -U "$PGUSER" -d "$PGDATABASE" -F c -f /backups/%s-$(date +%%Y%%m%%d%%H%%M%%S).dump`,
				c.names.Service, c.res.Service.Port, c.names.Base),
		},
		Volumes: []corev1.Volume{{
			Name:         backupVolume,
			VolumeSource: corev1.VolumeSource{EmptyDir: &corev1.EmptyDirVolumeSource{}},
		}},
		VolumeMounts: []corev1.VolumeMount{{
			Name:      backupVolume,
			MountPath: "/backups",
		}},
		ConcurrencyPolicy: "Forbid",
		HistoryLimit:      c.res.Backup.Retention,
		FailedHistory:     1,
	}
}

// cronJob renders one scheduled job. Credential environment variables are
// always injected as references against the resolved secret name; literal
// credential values never appear inside a job document.
func (c *composer) cronJob(job config.ResolvedJob, component string) *batchv1.CronJob {
	env := []corev1.EnvVar{
		{Name: "PGHOST", Value: c.names.Service},
		{Name: "PGPORT", Value: fmt.Sprintf("%d", c.res.Service.Port)},
		secretEnv("PGUSER", c.secretName, credentials.KeyUsername),
		secretEnv("PGPASSWORD", c.secretName, credentials.KeyPassword),
		secretEnv("PGDATABASE", c.secretName, credentials.KeyDatabase),
	}
	env = append(env, job.Env...)

	return &batchv1.CronJob{
		TypeMeta: metav1.TypeMeta{APIVersion: "batch/v1", Kind: "CronJob"},
		ObjectMeta: metav1.ObjectMeta{
			Name:   c.names.Job(job.Name),
			Labels: c.names.Labels(component),
		},
		Spec: batchv1.CronJobSpec{
			Schedule:                   job.Schedule,
			ConcurrencyPolicy:          batchv1.ConcurrencyPolicy(job.ConcurrencyPolicy),
			SuccessfulJobsHistoryLimit: ptr.Int32(job.HistoryLimit),
			FailedJobsHistoryLimit:     ptr.Int32(job.FailedHistory),
			JobTemplate: batchv1.JobTemplateSpec{
				Spec: batchv1.JobSpec{
					Template: corev1.PodTemplateSpec{
						ObjectMeta: metav1.ObjectMeta{
							Labels: c.names.Labels(component),
						},
						Spec: corev1.PodSpec{
							RestartPolicy: corev1.RestartPolicyOnFailure,
							Containers: []corev1.Container{{
								Name:         job.Name,
								Image:        job.Image.Ref(),
								Command:      job.Command,
								Env:          env,
								VolumeMounts: job.VolumeMounts,
							}},
							Volumes:      job.Volumes,
							NodeSelector: c.res.NodeSelector,
							Tolerations:  c.res.Tolerations,
						},
					},
				},
			},
		},
	}
}
