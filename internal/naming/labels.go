package naming

// Standard label keys, following the Kubernetes recommended-label convention.
const (
	KeyName      = "app.kubernetes.io/name"
	KeyInstance  = "app.kubernetes.io/instance"
	KeyComponent = "app.kubernetes.io/component"
	KeyManagedBy = "app.kubernetes.io/managed-by"
)

// Component values.
const (
	ComponentDatabase = "database"
	ComponentBackup   = "backup"
	ComponentJob      = "job"
)

const (
	appName   = "postgresql"
	managedBy = "dbforge"
)

// Labels returns the full label set for a document with the given component.
// It is always a superset of SelectorLabels for the same instance.
func (n NameSet) Labels(component string) map[string]string {
	return map[string]string{
		KeyName:      appName,
		KeyInstance:  n.Base,
		KeyComponent: component,
		KeyManagedBy: managedBy,
	}
}

// SelectorLabels returns the stable subset used by selectors. The component
// and managed-by keys are deliberately excluded: selectors are immutable on
// workloads, so only keys that can never change belong here.
func (n NameSet) SelectorLabels() map[string]string {
	return map[string]string{
		KeyName:     appName,
		KeyInstance: n.Base,
	}
}
