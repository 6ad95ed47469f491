package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
)

// ClassifiedError is a failure with a category, a severity and context
// naming what it concerns (file, field, artifact, path...).
type ClassifiedError struct {
	category ErrorCategory
	severity ErrorSeverity
	message  string
	cause    error
	context  ErrorContext
}

func (e *ClassifiedError) Error() string {
	head := fmt.Sprintf("[%s:%s] %s", e.category, e.severity, e.message)
	if e.cause == nil {
		return head
	}
	return head + ": " + e.cause.Error()
}

func (e *ClassifiedError) Unwrap() error { return e.cause }

func (e *ClassifiedError) Category() ErrorCategory { return e.category }
func (e *ClassifiedError) Severity() ErrorSeverity { return e.severity }
func (e *ClassifiedError) Message() string         { return e.message }
func (e *ClassifiedError) Cause() error            { return e.cause }
func (e *ClassifiedError) Context() ErrorContext   { return e.context }

// WithContext returns a copy of e with key set.
func (e *ClassifiedError) WithContext(key string, value any) *ClassifiedError {
	cp := *e
	cp.context = e.context.Merge(ErrorContext{key: value})
	return &cp
}

// Is matches another ClassifiedError with the same category and message.
func (e *ClassifiedError) Is(target error) bool {
	other, ok := target.(*ClassifiedError)
	return ok && e.category == other.category && e.message == other.message
}

// IsFatal reports whether the error should stop the command.
func (e *ClassifiedError) IsFatal() bool { return e.severity == SeverityFatal }

// LogValue renders the error as a slog group: message, category, severity,
// the context keys in sorted order and the cause.
func (e *ClassifiedError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("message", e.message),
		slog.String("category", string(e.category)),
		slog.String("severity", string(e.severity)),
	}
	attrs = append(attrs, e.context.attrs()...)
	if e.cause != nil {
		attrs = append(attrs, slog.String("cause", e.cause.Error()))
	}
	return slog.GroupValue(attrs...)
}

func (c ErrorContext) attrs() []slog.Attr {
	out := make([]slog.Attr, 0, len(c))
	for _, k := range c.Keys() {
		out = append(out, slog.Any(k, c[k]))
	}
	return out
}

// AsClassified finds the first ClassifiedError in err's chain.
func AsClassified(err error) (*ClassifiedError, bool) {
	var classified *ClassifiedError
	if stderrors.As(err, &classified) {
		return classified, true
	}
	return nil, false
}

// GetCategory returns the category of the first ClassifiedError in err's
// chain, or CategoryInternal.
func GetCategory(err error) ErrorCategory {
	if classified, ok := AsClassified(err); ok {
		return classified.category
	}
	return CategoryInternal
}

// GetSeverity returns the severity of the first ClassifiedError in err's
// chain, or SeverityError.
func GetSeverity(err error) ErrorSeverity {
	if classified, ok := AsClassified(err); ok {
		return classified.severity
	}
	return SeverityError
}
