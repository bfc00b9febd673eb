package compose

import (
	networkingv1 "k8s.io/api/networking/v1"
	policyv1 "k8s.io/api/policy/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/imamik/dbforge/internal/naming"
)

// networkPolicy restricts ingress to the database port (plus the metrics
// port when monitoring is on), selecting the workload through the shared
// label set.
func (c *composer) networkPolicy() *networkingv1.NetworkPolicy {
	dbPort := intstr.FromInt32(c.res.Service.Port)
	ports := []networkingv1.NetworkPolicyPort{{Port: &dbPort}}
	if c.res.Monitoring.Enabled {
		metricsPort := intstr.FromInt32(c.res.Monitoring.Port)
		ports = append(ports, networkingv1.NetworkPolicyPort{Port: &metricsPort})
	}

	return &networkingv1.NetworkPolicy{
		TypeMeta: metav1.TypeMeta{APIVersion: "networking.k8s.io/v1", Kind: "NetworkPolicy"},
		ObjectMeta: metav1.ObjectMeta{
			Name:   c.names.NetworkPolicy,
			Labels: c.names.Labels(naming.ComponentDatabase),
		},
		Spec: networkingv1.NetworkPolicySpec{
			PodSelector: metav1.LabelSelector{
				MatchLabels: c.names.SelectorLabels(),
			},
			PolicyTypes: []networkingv1.PolicyType{networkingv1.PolicyTypeIngress},
			Ingress: []networkingv1.NetworkPolicyIngressRule{{
				Ports: ports,
			}},
		},
	}
}

// disruptionBudget keeps a floor of available replicas during voluntary
// disruptions, selecting the workload through the shared label set.
func (c *composer) disruptionBudget() *policyv1.PodDisruptionBudget {
	minAvailable := intstr.FromInt32(c.res.DisruptionBudget.MinAvailable)

	return &policyv1.PodDisruptionBudget{
		TypeMeta: metav1.TypeMeta{APIVersion: "policy/v1", Kind: "PodDisruptionBudget"},
		ObjectMeta: metav1.ObjectMeta{
			Name:   c.names.DisruptionBudget,
			Labels: c.names.Labels(naming.ComponentDatabase),
		},
		Spec: policyv1.PodDisruptionBudgetSpec{
			MinAvailable: &minAvailable,
			Selector: &metav1.LabelSelector{
				MatchLabels: c.names.SelectorLabels(),
			},
		},
	}
}
