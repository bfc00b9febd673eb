// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"fmt"
	"io"
	"os"

	"github.com/imamik/dbforge/internal/compose"
	"github.com/imamik/dbforge/internal/config"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadValuesFiles loads and pre-merges override files.
	loadValuesFiles = config.LoadFiles

	// writeFile writes data to a file.
	writeFile = os.WriteFile

	// stdout is the destination for rendered output.
	stdout io.Writer = os.Stdout
)

// Render resolves the configuration for one instance, renders the full
// document set, and writes it as a multi-document YAML stream.
func Render(instance string, valuesFiles []string, outputPath string) error {
	manifest, err := renderManifest(instance, valuesFiles)
	if err != nil {
		return err
	}

	out, err := manifest.YAML()
	if err != nil {
		return fmt.Errorf("failed to serialize manifests: %w", err)
	}

	if outputPath != "" {
		if err := writeFile(outputPath, out, 0o644); err != nil {
			return fmt.Errorf("failed to write manifests: %w", err)
		}
		fmt.Fprintf(stdout, "Wrote %d documents to %s\n", len(manifest.Documents), outputPath)
		return nil
	}

	_, err = stdout.Write(out)
	return err
}

// renderManifest is the shared resolve-validate-compose pipeline.
func renderManifest(instance string, valuesFiles []string) (*compose.Manifest, error) {
	overrides, err := loadValuesFiles(valuesFiles)
	if err != nil {
		return nil, err
	}

	resolved, err := config.Resolve(config.Defaults(), overrides)
	if err != nil {
		return nil, err
	}

	return compose.Render(instance, resolved)
}
