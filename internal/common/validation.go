package common

import (
	"fmt"
	"slices"
)

// ValidateOutputFormat checks format against the configured format list. An
// empty list places no restriction.
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 {
		return nil
	}

	if slices.Contains(supportedFormats, format) {
		return nil
	}

	return fmt.Errorf("output format %q is not supported (available: %v)",
		format, supportedFormats)
}

// GetSupportedFormats exposes the configured format list, used by the shell
// completion functions on the format flags.
func GetSupportedFormats(supportedFormats []string) []string {
	return supportedFormats
}
