package compose

import (
	"github.com/imamik/dbforge/internal/config"
	"github.com/imamik/dbforge/internal/credentials"
	"github.com/imamik/dbforge/internal/naming"
)

// Render validates the resolved configuration and composes the full document
// set for one instance. Validation is fail-fast: any violation aborts the
// render with every collected error and zero documents.
func Render(instance string, res *config.Resolved) (*Manifest, error) {
	var errs config.ValidationErrors
	if err := naming.ValidateInstance(instance); err != nil {
		errs = append(errs, config.ValidationError{
			Code:    config.CodeInvalidInstanceName,
			Field:   "instance",
			Message: err.Error(),
		})
	}
	errs = append(errs, res.Validate()...)
	if len(errs) > 0 {
		return nil, errs
	}

	c := &composer{
		res:    res,
		names:  naming.Derive(instance),
		source: credentials.Resolve(res.Credentials),
	}
	c.secretName = c.source.SecretName(c.names.Secret)

	return c.compose(), nil
}

// composer carries the derived values every builder needs. It holds no
// mutable state beyond the manifest under construction.
type composer struct {
	res    *config.Resolved
	names  naming.NameSet
	source credentials.Source

	// secretName is the one name every credential consumer binds to,
	// whether the secret is generated or externally referenced.
	secretName string
}

// compose emits documents in a fixed order: workload, services, config,
// secret, autoscaler, network policy, disruption budget, scheduled jobs.
func (c *composer) compose() *Manifest {
	m := &Manifest{Instance: c.names.Base}

	dbLabels := c.names.Labels(naming.ComponentDatabase)

	m.add(KindWorkload, c.names.Workload, dbLabels, c.workload())
	m.add(KindService, c.names.Service, dbLabels, c.service())
	if c.res.Stateful {
		m.add(KindService, c.names.HeadlessService, dbLabels, c.headlessService())
	}
	if len(c.res.Parameters) > 0 {
		m.add(KindConfigMap, c.names.ConfigMap, dbLabels, c.configMap())
	}
	if !c.source.External {
		m.add(KindSecret, c.names.Secret, dbLabels, c.secret())
	}
	if c.res.Autoscaling.Enabled {
		m.add(KindAutoscaler, c.names.Autoscaler, dbLabels, c.autoscaler())
	}
	if c.res.NetworkPolicy {
		m.add(KindNetworkPolicy, c.names.NetworkPolicy, dbLabels, c.networkPolicy())
	}
	if c.res.DisruptionBudget.Enabled {
		m.add(KindDisruptionBudget, c.names.DisruptionBudget, dbLabels, c.disruptionBudget())
	}

	jobs, jobComponent := c.scheduledJobs()
	jobLabels := c.names.Labels(jobComponent)
	for _, job := range jobs {
		m.add(KindScheduledJob, c.names.Job(job.Name), jobLabels, c.cronJob(job, jobComponent))
	}

	return m
}
