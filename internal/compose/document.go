package compose

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/runtime"
	sigsyaml "sigs.k8s.io/yaml"
)

// Kind tags the role a document plays in the rendered set.
type Kind string

const (
	KindWorkload         Kind = "Workload"
	KindService          Kind = "Service"
	KindConfigMap        Kind = "ConfigMap"
	KindSecret           Kind = "Secret"
	KindAutoscaler       Kind = "Autoscaler"
	KindNetworkPolicy    Kind = "NetworkPolicy"
	KindDisruptionBudget Kind = "DisruptionBudget"
	KindScheduledJob     Kind = "ScheduledJob"
)

// Document is one rendered object. Constructed once per render and never
// mutated afterwards; the external serializer or applier consumes it wholesale.
type Document struct {
	Kind   Kind
	Name   string
	Labels map[string]string
	Object runtime.Object
}

// Manifest is the ordered document sequence for one instance.
type Manifest struct {
	Instance  string
	Documents []Document
}

func (m *Manifest) add(kind Kind, name string, labels map[string]string, obj runtime.Object) {
	m.Documents = append(m.Documents, Document{
		Kind:   kind,
		Name:   name,
		Labels: labels,
		Object: obj,
	})
}

// Find returns the documents of the given kind, in emission order.
func (m *Manifest) Find(kind Kind) []Document {
	var docs []Document
	for _, d := range m.Documents {
		if d.Kind == kind {
			docs = append(docs, d)
		}
	}
	return docs
}

// YAML serializes the manifest as a multi-document YAML stream in emission
// order.
func (m *Manifest) YAML() ([]byte, error) {
	parts := make([]string, 0, len(m.Documents))
	for _, d := range m.Documents {
		data, err := sigsyaml.Marshal(d.Object)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s %q: %w", d.Kind, d.Name, err)
		}
		parts = append(parts, string(data))
	}
	return []byte(strings.Join(parts, "---\n")), nil
}
