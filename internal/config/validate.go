package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/imamik/dbforge/internal/naming"
)

// Validate runs every cross-cutting invariant check in a single pass and
// returns all violations together. A non-empty result must abort composition
// entirely: no document is ever emitted from a configuration that failed
// validation.
func (r *Resolved) Validate() ValidationErrors {
	var errs ValidationErrors

	add := func(code ValidationCode, field, format string, args ...any) {
		errs = append(errs, ValidationError{
			Code:    code,
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	// Credential presence: either an inline password or an external secret
	// reference must be available before anything is rendered.
	if r.Credentials.Password == "" && r.Credentials.ExistingSecret == "" {
		add(CodeMissingPassword, "credentials",
			"either credentials.password or credentials.existingSecret must be set")
	}

	if r.ReplicaCount < 0 {
		add(CodeInvalidReplicaRange, "replicaCount",
			"replica count cannot be negative, got %d", r.ReplicaCount)
	}
	if r.Stateful && r.ReplicaCount < 1 {
		add(CodeInvalidReplicaRange, "replicaCount",
			"stateful workloads need at least 1 replica, got %d", r.ReplicaCount)
	}

	if r.Autoscaling.Enabled {
		a := r.Autoscaling
		if a.MinReplicas < 1 || a.MaxReplicas < 1 {
			add(CodeInvalidAutoscalingRange, "autoscaling",
				"minReplicas and maxReplicas must both be at least 1, got %d/%d",
				a.MinReplicas, a.MaxReplicas)
		}
		if a.MinReplicas > a.MaxReplicas {
			add(CodeInvalidAutoscalingRange, "autoscaling",
				"minReplicas %d exceeds maxReplicas %d", a.MinReplicas, a.MaxReplicas)
		}
		if a.TargetCPUUtilization < 1 || a.TargetCPUUtilization > 100 {
			add(CodeInvalidAutoscalingRange, "autoscaling.targetCPUUtilization",
				"target utilization must be 1-100, got %d", a.TargetCPUUtilization)
		}
		// The memory target is optional; when set it obeys the same range.
		if a.TargetMemoryUtilization != 0 && (a.TargetMemoryUtilization < 1 || a.TargetMemoryUtilization > 100) {
			add(CodeInvalidAutoscalingRange, "autoscaling.targetMemoryUtilization",
				"target utilization must be 1-100, got %d", a.TargetMemoryUtilization)
		}
	}

	if r.Persistence.Enabled && len(r.Persistence.Claims) == 0 {
		add(CodePersistenceWithoutClaims, "persistence.claims",
			"persistence is enabled but no volume claim templates are defined")
	}
	for i, claim := range r.Persistence.Claims {
		field := fmt.Sprintf("persistence.claims[%d]", i)
		if claim.Name == "" {
			add(CodeEmptyName, field+".name", "claim template name is required")
		}
		if claim.Size == "" {
			add(CodeInvalidQuantity, field+".size", "claim template size is required")
		} else if _, err := resource.ParseQuantity(claim.Size); err != nil {
			add(CodeInvalidQuantity, field+".size", "invalid storage size %q: %v", claim.Size, err)
		}
	}

	errs = append(errs, validateQuantities(r.Resources)...)

	if r.Backup.Enabled {
		errs = append(errs, validateSchedule("backup.schedule", r.Backup.Schedule)...)
	}

	// Job names must be unique: every job renders a document named
	// "<instance>-<name>", so a repeated name would make one document
	// silently overwrite the other on apply.
	seen := make(map[string]int, len(r.Jobs))
	for i, job := range r.Jobs {
		field := fmt.Sprintf("jobs[%d]", i)
		if job.Name == "" {
			add(CodeEmptyName, field+".name", "scheduled job name is required")
		} else if err := naming.ValidateJobName(job.Name); err != nil {
			add(CodeInvalidJobName, field+".name", "%v", err)
		} else if first, dup := seen[job.Name]; dup {
			add(CodeDuplicateName, field+".name",
				"job name %q already used by jobs[%d]", job.Name, first)
		} else {
			seen[job.Name] = i
		}
		errs = append(errs, validateSchedule(field+".schedule", job.Schedule)...)
	}

	return errs
}

// validateSchedule requires a non-empty, parseable 5-field cron expression.
func validateSchedule(field, schedule string) ValidationErrors {
	if schedule == "" {
		return ValidationErrors{{
			Code:    CodeEmptySchedule,
			Field:   field,
			Message: "schedule expression is required",
		}}
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return ValidationErrors{{
			Code:    CodeInvalidSchedule,
			Field:   field,
			Message: fmt.Sprintf("invalid cron expression %q: %v", schedule, err),
		}}
	}
	return nil
}

func validateQuantities(res ResourceValues) ValidationErrors {
	var errs ValidationErrors
	check := func(field, value string) {
		if value == "" {
			return
		}
		if _, err := resource.ParseQuantity(value); err != nil {
			errs = append(errs, ValidationError{
				Code:    CodeInvalidQuantity,
				Field:   field,
				Message: fmt.Sprintf("invalid quantity %q: %v", value, err),
			})
		}
	}
	check("resources.requests.cpu", res.Requests.CPU)
	check("resources.requests.memory", res.Requests.Memory)
	check("resources.limits.cpu", res.Limits.CPU)
	check("resources.limits.memory", res.Limits.Memory)
	return errs
}
