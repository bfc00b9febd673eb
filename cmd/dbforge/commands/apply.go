package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dbforge/cmd/dbforge/handlers"
)

// Apply returns the command that renders a manifest set and submits it to a
// cluster with Server-Side Apply.
//
// Optional flags:
//
//	--values, -f:   override values files, applied in order (repeatable)
//	--kubeconfig:   kubeconfig path (default: KUBECONFIG or ~/.kube/config)
func Apply() *cobra.Command {
	var valuesFiles []string
	var kubeconfigPath string

	cmd := &cobra.Command{
		Use:   "apply INSTANCE",
		Short: "Render and apply the manifest set to a cluster",
		Long: `Render the manifest set for a database instance and apply it with
Server-Side Apply. Names are stable across renders, so re-applying the same
instance updates resources in place instead of creating new ones.

Examples:
  dbforge apply orders-db -f values.yaml

  dbforge apply orders-db -f values.yaml --kubeconfig ./kubeconfig`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Apply(cmd.Context(), args[0], valuesFiles, kubeconfigPath)
		},
	}

	cmd.Flags().StringSliceVarP(&valuesFiles, "values", "f", nil, "Override values file (repeatable, applied in order)")
	cmd.Flags().StringVar(&kubeconfigPath, "kubeconfig", "", "Path to kubeconfig (default: KUBECONFIG or ~/.kube/config)")

	return cmd
}
