package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnrecognized     = errors.New("unrecognized filename")
	ErrMissingReference = errors.New("missing reference entry")
	ErrPlacement        = errors.New("placement error")
	ErrConflict         = errors.New("destination conflict")
	ErrFilesystem       = errors.New("filesystem error")
	ErrConfiguration    = errors.New("configuration error")
	ErrExternal         = errors.New("external service error")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrFilesystem
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Category maps an error to the short label used in summaries and log fields.
func Category(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnrecognized):
		return "unrecognized"
	case errors.Is(err, ErrMissingReference):
		return "missing_reference"
	case errors.Is(err, ErrPlacement):
		return "placement"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrExternal):
		return "external"
	default:
		return "filesystem"
	}
}

// Recoverable reports whether a failure is isolated to a single file. Every
// per-file category is recoverable; configuration errors are not.
func Recoverable(err error) bool {
	if err == nil {
		return true
	}
	return !errors.Is(err, ErrConfiguration)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
