package handlers

import (
	"fmt"

	"github.com/imamik/dbforge/internal/config"
	"github.com/imamik/dbforge/internal/naming"
)

// Validate resolves the configuration and reports every violated invariant
// without rendering any document.
func Validate(instance string, valuesFiles []string) error {
	overrides, err := loadValuesFiles(valuesFiles)
	if err != nil {
		return err
	}

	resolved, err := config.Resolve(config.Defaults(), overrides)
	if err != nil {
		return err
	}

	var errs config.ValidationErrors
	if err := naming.ValidateInstance(instance); err != nil {
		errs = append(errs, config.ValidationError{
			Code:    config.CodeInvalidInstanceName,
			Field:   "instance",
			Message: err.Error(),
		})
	}
	errs = append(errs, resolved.Validate()...)
	if len(errs) > 0 {
		return errs
	}

	fmt.Fprintf(stdout, "Configuration for %q is valid\n", instance)
	return nil
}
