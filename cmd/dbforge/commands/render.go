package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dbforge/cmd/dbforge/handlers"
)

// Render returns the command that renders the manifest set for one instance.
//
// Required arguments:
//
//	INSTANCE: the instance identifier used to derive every resource name
//
// Optional flags:
//
//	--values, -f: override values files, applied in order (repeatable)
//	--output, -o: write the manifest stream to a file instead of stdout
func Render() *cobra.Command {
	var valuesFiles []string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "render INSTANCE",
		Short: "Render the manifest set for a database instance",
		Long: `Render the full Kubernetes manifest set for a database instance.

Packaged defaults are merged with the given values files, the result is
validated, and the documents are written as a multi-document YAML stream.
A failed validation reports every violated invariant and emits nothing.

Examples:
  # Render with defaults plus one values file
  dbforge render orders-db -f values.yaml

  # Layer a production override on top
  dbforge render orders-db -f values.yaml -f production.yaml

  # Write the stream to a file
  dbforge render orders-db -f values.yaml -o manifests.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return handlers.Render(args[0], valuesFiles, outputPath)
		},
	}

	cmd.Flags().StringSliceVarP(&valuesFiles, "values", "f", nil, "Override values file (repeatable, applied in order)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write manifests to this file instead of stdout")

	return cmd
}
