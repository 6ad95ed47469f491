package errors

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	err := NewError(CategoryConfig, "invalid configuration").
		WithSeverity(SeverityFatal).
		WithContext("file", "pagesmith.yaml").
		Build()

	require.Equal(t, CategoryConfig, err.Category())
	require.Equal(t, SeverityFatal, err.Severity())
	require.Equal(t, "invalid configuration", err.Message())
	require.True(t, err.IsFatal())
	require.Equal(t, "[config:fatal] invalid configuration", err.Error())

	file, ok := err.Context().GetString("file")
	require.True(t, ok)
	require.Equal(t, "pagesmith.yaml", file)
}

func TestClassifiedError_WithContextCopies(t *testing.T) {
	base := MetadataError("missing required metadata field").Build()
	withField := base.WithContext("field", "title")

	_, ok := base.Context().Get("field")
	require.False(t, ok)
	field, _ := withField.Context().GetString("field")
	require.Equal(t, "title", field)
	require.ErrorIs(t, withField, base)
}

func TestClassifiedError_ThroughWrapping(t *testing.T) {
	inner := TemplateError("unresolved placeholder").Build()
	wrapped := fmt.Errorf("compile: %w", inner)

	require.Equal(t, CategoryTemplate, GetCategory(wrapped))
	require.Equal(t, SeverityFatal, GetSeverity(wrapped))

	plain := errors.New("plain")
	require.Equal(t, CategoryInternal, GetCategory(plain))
	require.Equal(t, SeverityError, GetSeverity(plain))
	_, ok := AsClassified(plain)
	require.False(t, ok)
}

func TestClassifiedError_LogValue(t *testing.T) {
	err := WrapError(errors.New("boom"), CategoryFileSystem, "write failed").
		WithContext("path", "public/index.html").
		WithContext("op", "rename").
		Build()

	var buf bytes.Buffer
	slog.New(slog.NewTextHandler(&buf, nil)).Error("failed", slog.Any("error", err))
	require.Contains(t, buf.String(),
		`error.message="write failed" error.category=filesystem error.severity=error error.op=rename error.path=public/index.html error.cause=boom`)
}

func TestErrorBuilder(t *testing.T) {
	original := errors.New("original error")
	err := WrapError(original, CategoryFileSystem, "write failed").
		Warning().
		WithContext("path", "site/index.html").
		WithContextMap(ErrorContext{"attempt": 1}).
		Build()

	require.Equal(t, SeverityWarning, err.Severity())
	require.ErrorIs(t, err, original)
	attempt, ok := err.Context().Get("attempt")
	require.True(t, ok)
	require.Equal(t, 1, attempt)
}

func TestErrorBuilder_Constructors(t *testing.T) {
	tests := []struct {
		name     string
		builder  *ErrorBuilder
		category ErrorCategory
		severity ErrorSeverity
	}{
		{"config", ConfigError("x"), CategoryConfig, SeverityFatal},
		{"validation", ValidationError("x"), CategoryValidation, SeverityFatal},
		{"extraction", ExtractionError("x"), CategoryExtraction, SeverityFatal},
		{"metadata", MetadataError("x"), CategoryMetadata, SeverityFatal},
		{"template", TemplateError("x"), CategoryTemplate, SeverityFatal},
		{"render", RenderError("x"), CategoryRender, SeverityFatal},
		{"artifact", ArtifactError("x"), CategoryArtifact, SeverityFatal},
		{"filesystem", FileSystemError("x"), CategoryFileSystem, SeverityError},
		{"template source", TemplateSourceError("x"), CategoryTemplateSource, SeverityError},
		{"server", ServerError("x"), CategoryServer, SeverityError},
		{"internal", InternalError("x"), CategoryInternal, SeverityFatal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.builder.Build()
			require.Equal(t, tt.category, err.Category())
			require.Equal(t, tt.severity, err.Severity())
		})
	}
}

func TestErrorContext_Merge(t *testing.T) {
	a := ErrorContext{}.Set("key1", "value1").Set("shared", "original")
	b := ErrorContext{}.Set("key2", 42).Set("shared", "overridden")
	merged := a.Merge(b)

	v1, _ := merged.GetString("key1")
	shared, _ := merged.GetString("shared")
	v2, ok := merged.Get("key2")
	require.Equal(t, "value1", v1)
	require.Equal(t, "overridden", shared)
	require.True(t, ok)
	require.Equal(t, 42, v2)
	_, ok = merged.Get("missing")
	require.False(t, ok)
}
