package errors

// ErrorBuilder assembles a ClassifiedError step by step.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts an error of the given category at SeverityError.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{err: ClassifiedError{
		category: category,
		severity: SeverityError,
		message:  message,
	}}
}

// WrapError is NewError with cause attached.
func WrapError(cause error, category ErrorCategory, message string) *ErrorBuilder {
	return NewError(category, message).WithCause(cause)
}

func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.err.severity = severity
	return b
}

func (b *ErrorBuilder) WithCause(cause error) *ErrorBuilder {
	b.err.cause = cause
	return b
}

func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.err.context = b.err.context.Set(key, value)
	return b
}

func (b *ErrorBuilder) WithContextMap(ctx ErrorContext) *ErrorBuilder {
	b.err.context = b.err.context.Merge(ctx)
	return b
}

func (b *ErrorBuilder) Fatal() *ErrorBuilder   { return b.WithSeverity(SeverityFatal) }
func (b *ErrorBuilder) Warning() *ErrorBuilder { return b.WithSeverity(SeverityWarning) }

// Build returns the error. Later builder calls do not affect it.
func (b *ErrorBuilder) Build() *ClassifiedError {
	out := b.err
	out.context = ErrorContext{}.Merge(b.err.context)
	return &out
}

// Content and configuration failures stop a compile outright; I/O, template
// fetch and server failures fail only the current operation.

func ConfigError(message string) *ErrorBuilder {
	return NewError(CategoryConfig, message).Fatal()
}

func ValidationError(message string) *ErrorBuilder {
	return NewError(CategoryValidation, message).Fatal()
}

// ExtractionError reports a malformed metadata block.
func ExtractionError(message string) *ErrorBuilder {
	return NewError(CategoryExtraction, message).Fatal()
}

// MetadataError reports a missing or ill-typed metadata field.
func MetadataError(message string) *ErrorBuilder {
	return NewError(CategoryMetadata, message).Fatal()
}

func TemplateError(message string) *ErrorBuilder {
	return NewError(CategoryTemplate, message).Fatal()
}

func RenderError(message string) *ErrorBuilder {
	return NewError(CategoryRender, message).Fatal()
}

// ArtifactError reports a failure in a site-wide file such as sitemap.xml.
func ArtifactError(message string) *ErrorBuilder {
	return NewError(CategoryArtifact, message).Fatal()
}

func FileSystemError(message string) *ErrorBuilder {
	return NewError(CategoryFileSystem, message)
}

func TemplateSourceError(message string) *ErrorBuilder {
	return NewError(CategoryTemplateSource, message)
}

func ServerError(message string) *ErrorBuilder {
	return NewError(CategoryServer, message)
}

func InternalError(message string) *ErrorBuilder {
	return NewError(CategoryInternal, message).Fatal()
}
