// Package naming derives the canonical names and label sets shared by every
// generated document. All names are pure functions of the instance identifier,
// so a re-render for the same instance always produces byte-identical names
// and the orchestrator's apply stays idempotent. No document ever computes a
// name on its own.
package naming

import (
	"fmt"
	"regexp"
)

// instanceRegex enforces DNS-1123 label rules: lowercase alphanumeric and
// hyphens, starting with a letter.
var instanceRegex = regexp.MustCompile(`^[a-z]([a-z0-9-]*[a-z0-9])?$`)

// maxInstanceLen keeps every suffixed name under the 63-character object-name
// limit.
const maxInstanceLen = 40

// NameSet holds every derived resource name for one instance.
type NameSet struct {
	// Base is the instance identifier itself, also the workload name.
	Base string

	Workload         string
	Service          string
	HeadlessService  string
	Secret           string
	ConfigMap        string
	Autoscaler       string
	NetworkPolicy    string
	DisruptionBudget string
}

// Derive computes the name set for an instance identifier.
func Derive(instance string) NameSet {
	return NameSet{
		Base:             instance,
		Workload:         instance,
		Service:          instance,
		HeadlessService:  fmt.Sprintf("%s-headless", instance),
		Secret:           fmt.Sprintf("%s-credentials", instance),
		ConfigMap:        fmt.Sprintf("%s-config", instance),
		Autoscaler:       fmt.Sprintf("%s-autoscaler", instance),
		NetworkPolicy:    fmt.Sprintf("%s-network-policy", instance),
		DisruptionBudget: fmt.Sprintf("%s-pdb", instance),
	}
}

// Job returns the name for a scheduled job belonging to this instance.
func (n NameSet) Job(job string) string {
	return fmt.Sprintf("%s-%s", n.Base, job)
}

// maxJobLen keeps "<instance>-<job>" under the 63-character object-name
// limit for the longest allowed instance name.
const maxJobLen = 22

// ValidateJobName checks that a scheduled-job name can be suffixed onto an
// instance name and still form a valid Kubernetes object name.
func ValidateJobName(job string) error {
	if job == "" {
		return fmt.Errorf("job name is required")
	}
	if len(job) > maxJobLen {
		return fmt.Errorf("job name %q exceeds %d characters", job, maxJobLen)
	}
	if !instanceRegex.MatchString(job) {
		return fmt.Errorf("job name %q must be lowercase alphanumeric with hyphens and start with a letter", job)
	}
	return nil
}

// ValidateInstance checks that an instance identifier is usable as a
// Kubernetes object name prefix.
func ValidateInstance(instance string) error {
	if instance == "" {
		return fmt.Errorf("instance name is required")
	}
	if len(instance) > maxInstanceLen {
		return fmt.Errorf("instance name %q exceeds %d characters", instance, maxInstanceLen)
	}
	if !instanceRegex.MatchString(instance) {
		return fmt.Errorf("instance name %q must be lowercase alphanumeric with hyphens and start with a letter", instance)
	}
	return nil
}
