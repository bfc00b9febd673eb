package compose

import (
	autoscalingv2 "k8s.io/api/autoscaling/v2"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/imamik/dbforge/internal/naming"
	"github.com/imamik/dbforge/internal/util/ptr"
)

// autoscaler targets the workload by kind and shared name. When it is
// emitted, the workload's own replica count is advisory only; reconciling
// desired against actual replicas is the orchestrator's job.
func (c *composer) autoscaler() *autoscalingv2.HorizontalPodAutoscaler {
	targetKind := "Deployment"
	if c.res.Stateful {
		targetKind = "StatefulSet"
	}

	metrics := []autoscalingv2.MetricSpec{{
		Type: autoscalingv2.ResourceMetricSourceType,
		Resource: &autoscalingv2.ResourceMetricSource{
			Name: corev1.ResourceCPU,
			Target: autoscalingv2.MetricTarget{
				Type:               autoscalingv2.UtilizationMetricType,
				AverageUtilization: ptr.Int32(c.res.Autoscaling.TargetCPUUtilization),
			},
		},
	}}
	if c.res.Autoscaling.TargetMemoryUtilization > 0 {
		metrics = append(metrics, autoscalingv2.MetricSpec{
			Type: autoscalingv2.ResourceMetricSourceType,
			Resource: &autoscalingv2.ResourceMetricSource{
				Name: corev1.ResourceMemory,
				Target: autoscalingv2.MetricTarget{
					Type:               autoscalingv2.UtilizationMetricType,
					AverageUtilization: ptr.Int32(c.res.Autoscaling.TargetMemoryUtilization),
				},
			},
		})
	}

	return &autoscalingv2.HorizontalPodAutoscaler{
		TypeMeta: metav1.TypeMeta{APIVersion: "autoscaling/v2", Kind: "HorizontalPodAutoscaler"},
		ObjectMeta: metav1.ObjectMeta{
			Name:   c.names.Autoscaler,
			Labels: c.names.Labels(naming.ComponentDatabase),
		},
		Spec: autoscalingv2.HorizontalPodAutoscalerSpec{
			ScaleTargetRef: autoscalingv2.CrossVersionObjectReference{
				APIVersion: "apps/v1",
				Kind:       targetKind,
				Name:       c.names.Workload,
			},
			MinReplicas: ptr.Int32(c.res.Autoscaling.MinReplicas),
			MaxReplicas: c.res.Autoscaling.MaxReplicas,
			Metrics:     metrics,
		},
	}
}
