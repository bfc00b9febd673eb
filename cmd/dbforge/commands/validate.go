package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dbforge/cmd/dbforge/handlers"
)

// Validate returns the command that checks a configuration without emitting
// any documents.
func Validate() *cobra.Command {
	var valuesFiles []string

	cmd := &cobra.Command{
		Use:   "validate INSTANCE",
		Short: "Validate a configuration without rendering",
		Long: `Resolve and validate a configuration, reporting every violated
invariant at once. Nothing is rendered.

Examples:
  dbforge validate orders-db -f values.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return handlers.Validate(args[0], valuesFiles)
		},
	}

	cmd.Flags().StringSliceVarP(&valuesFiles, "values", "f", nil, "Override values file (repeatable, applied in order)")

	return cmd
}
