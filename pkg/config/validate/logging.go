package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DeBrosOfficial/assettracker/pkg/logging"
)

// LoggingConfig represents the logging configuration for validation purposes.
type LoggingConfig struct {
	Level      string
	Format     string
	OutputFile string
}

// ValidateLogging checks the names pkg/logging understands and that the log file can be
// created. An unknown level would otherwise fall back to info without notice.
func ValidateLogging(log LoggingConfig) []error {
	var errs []error

	if !logging.KnownLevel(log.Level) {
		errs = append(errs, ValidationError{
			Path:    "logging.level",
			Message: fmt.Sprintf("invalid value %q", log.Level),
			Hint:    "allowed values: " + strings.Join(logging.Levels, ", "),
		})
	}

	if !logging.KnownFormat(log.Format) {
		errs = append(errs, ValidationError{
			Path:    "logging.format",
			Message: fmt.Sprintf("invalid value %q", log.Format),
			Hint:    "allowed values: " + strings.Join(logging.Formats, ", "),
		})
	}

	if log.OutputFile == "" {
		return errs
	}
	if info, err := os.Stat(log.OutputFile); err == nil && info.IsDir() {
		errs = append(errs, ValidationError{
			Path:    "logging.output_file",
			Message: "path is a directory",
			Hint:    "empty writes to stdout",
		})
	} else if dir := filepath.Dir(log.OutputFile); dir != "" && dir != "." {
		if err := ValidateDirWritable(dir); err != nil {
			errs = append(errs, ValidationError{
				Path:    "logging.output_file",
				Message: fmt.Sprintf("parent directory not writable: %v", err),
			})
		}
	}
	return errs
}
