package errors

import (
	"maps"
	"slices"
)

// ErrorCategory represents the broad category of an error for classification and routing.
type ErrorCategory string

const (
	// CategoryConfig represents user-facing configuration and input errors.
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// CategoryExtraction represents per-file content errors.
	CategoryExtraction ErrorCategory = "extraction"
	CategoryMetadata   ErrorCategory = "metadata"
	CategoryTemplate   ErrorCategory = "template"
	CategoryRender     ErrorCategory = "render"

	// CategoryArtifact represents site-wide artifact generation errors.
	CategoryArtifact ErrorCategory = "artifact"

	CategoryFileSystem     ErrorCategory = "filesystem"
	CategoryTemplateSource ErrorCategory = "template_source"
	CategoryServer         ErrorCategory = "server"
	CategoryInternal       ErrorCategory = "internal"
)

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution completely
	SeverityError   ErrorSeverity = "error"   // Fails the current operation
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// ErrorContext names what a failure concerns, e.g. file, field or artifact.
type ErrorContext map[string]any

// Set stores value under key, allocating the map when c is nil.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = ErrorContext{}
	}
	c[key] = value
	return c
}

func (c ErrorContext) Get(key string) (any, bool) {
	value, ok := c[key]
	return value, ok
}

func (c ErrorContext) GetString(key string) (string, bool) {
	value, ok := c[key].(string)
	return value, ok
}

// Merge returns a new context holding c overlaid with other.
func (c ErrorContext) Merge(other ErrorContext) ErrorContext {
	out := make(ErrorContext, len(c)+len(other))
	maps.Copy(out, c)
	maps.Copy(out, other)
	return out
}

// Keys returns the context keys in sorted order.
func (c ErrorContext) Keys() []string {
	return slices.Sorted(maps.Keys(c))
}
