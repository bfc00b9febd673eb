package compose

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/imamik/dbforge/internal/naming"
)

// service builds the client-facing service. Its selector is bound to the
// workload's selector labels through the shared name registry, never computed
// locally.
func (c *composer) service() *corev1.Service {
	svc := &corev1.Service{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Service"},
		ObjectMeta: metav1.ObjectMeta{
			Name:   c.names.Service,
			Labels: c.names.Labels(naming.ComponentDatabase),
		},
		Spec: corev1.ServiceSpec{
			Type:     corev1.ServiceType(c.res.Service.Type),
			Selector: c.names.SelectorLabels(),
			Ports: []corev1.ServicePort{{
				Name:       portName,
				Port:       c.res.Service.Port,
				TargetPort: intstr.FromString(portName),
			}},
		},
	}

	if c.res.Monitoring.Enabled {
		svc.Spec.Ports = append(svc.Spec.Ports, corev1.ServicePort{
			Name:       metricsName,
			Port:       c.res.Monitoring.Port,
			TargetPort: intstr.FromString(metricsName),
		})
	}

	return svc
}

// headlessService gives stateful replicas their stable per-pod DNS identity.
func (c *composer) headlessService() *corev1.Service {
	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Service"},
		ObjectMeta: metav1.ObjectMeta{
			Name:   c.names.HeadlessService,
			Labels: c.names.Labels(naming.ComponentDatabase),
		},
		Spec: corev1.ServiceSpec{
			ClusterIP:                corev1.ClusterIPNone,
			Selector:                 c.names.SelectorLabels(),
			PublishNotReadyAddresses: true,
			Ports: []corev1.ServicePort{{
				Name:       portName,
				Port:       c.res.Service.Port,
				TargetPort: intstr.FromString(portName),
			}},
		},
	}
}
