// Package kube submits rendered manifests to a cluster with Server-Side
// Apply. It is the external collaborator of the render engine: the engine
// never touches the network, and this package never inspects or mutates the
// documents it is given.
package kube

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/discovery/cached/memory"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/restmapper"
	"k8s.io/client-go/tools/clientcmd"
)

// Applier applies multi-document YAML to a cluster.
type Applier interface {
	// Apply applies each document with Server-Side Apply, using the given
	// field manager. Applying the same rendered set twice is a no-op.
	Apply(ctx context.Context, manifests []byte, fieldManager string) error
}

type applier struct {
	dynamic dynamic.Interface
	mapper  meta.RESTMapper
}

// NewApplier builds an Applier from a kubeconfig file path. An empty path
// falls back to the default loading rules (KUBECONFIG, ~/.kube/config).
func NewApplier(kubeconfigPath string) (Applier, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfigPath != "" {
		loadingRules.ExplicitPath = kubeconfigPath
	}

	restConfig, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		loadingRules, &clientcmd.ConfigOverrides{}).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}

	discoveryClient, err := discovery.NewDiscoveryClientForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create discovery client: %w", err)
	}

	mapper := restmapper.NewDeferredDiscoveryRESTMapper(memory.NewMemCacheClient(discoveryClient))

	return &applier{dynamic: dynamicClient, mapper: mapper}, nil
}

// NewFromClients builds an Applier from pre-built clients. Intended for tests.
func NewFromClients(dynamicClient dynamic.Interface, mapper meta.RESTMapper) Applier {
	return &applier{dynamic: dynamicClient, mapper: mapper}
}
