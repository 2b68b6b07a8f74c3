package config

import (
	"fmt"
	"slices"
	"strings"
)

// Validate checks the configuration for correctness. All problems are
// reported together as *ValidationErrors.
func Validate(cfg *Config) error {
	var errs []ValidationError

	errs = append(errs, validateEnum("write_policy", cfg.WritePolicy, validWritePolicies, ErrInvalidWritePolicy)...)
	errs = append(errs, validateEnum("package_manager", cfg.PackageManager, validPackageManagers, ErrInvalidPackageManager)...)
	errs = append(errs, validateEnum("log_level", cfg.LogLevel, validLogLevels, ErrInvalidLogLevel)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

func validateEnum(field, value string, allowed []string, sentinel error) []ValidationError {
	if slices.Contains(allowed, strings.ToLower(value)) {
		return nil
	}
	return []ValidationError{
		{
			Field:   field,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
			Value:   value,
			Wrapped: sentinel,
		},
	}
}
