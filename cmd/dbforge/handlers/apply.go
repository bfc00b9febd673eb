package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/dbforge/internal/kube"
)

// fieldManager identifies dbforge as the Server-Side Apply actor.
const fieldManager = "dbforge"

// newApplier creates the cluster applier; replaced in tests.
var newApplier = kube.NewApplier

// Apply renders the manifest set for one instance and submits it to the
// cluster. Names are deterministic per instance, so re-applying updates
// resources in place.
func Apply(ctx context.Context, instance string, valuesFiles []string, kubeconfigPath string) error {
	manifest, err := renderManifest(instance, valuesFiles)
	if err != nil {
		return err
	}

	out, err := manifest.YAML()
	if err != nil {
		return fmt.Errorf("failed to serialize manifests: %w", err)
	}

	applier, err := newApplier(kubeconfigPath)
	if err != nil {
		return err
	}

	if err := applier.Apply(ctx, out, fieldManager); err != nil {
		return fmt.Errorf("failed to apply manifests for %q: %w", instance, err)
	}

	fmt.Fprintf(stdout, "Applied %d documents for %s\n", len(manifest.Documents), instance)
	return nil
}
