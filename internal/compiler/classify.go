package compiler

import (
	"context"
	"errors"

	"git.home.luguber.info/inful/pagesmith/internal/artifacts"
	ferrors "git.home.luguber.info/inful/pagesmith/internal/foundation/errors"
	"git.home.luguber.info/inful/pagesmith/internal/frontmatter"
	"git.home.luguber.info/inful/pagesmith/internal/metadata"
	"git.home.luguber.info/inful/pagesmith/internal/templates"
)

var (
	errCanceled   = errors.New("compile canceled")
	errRenderBody = errors.New("render body")
)

// Classify maps a compile failure onto a ClassifiedError carrying the
// offending file, field or artifact as context. Already classified errors
// are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := ferrors.AsClassified(err); ok {
		return err
	}

	var b *ferrors.ErrorBuilder
	var (
		extractErr   *frontmatter.ExtractionError
		missingErr   *metadata.MissingFieldError
		renderErr    *templates.TemplateRenderError
		changeErr    *artifacts.InvalidChangeFreqError
		generateErr  *artifacts.GenerateError
		collisionErr *CollisionError
		ioErr        *IOError
		transErr     *TransitionError
		unsafeErr    *UnsafeOutputError
	)
	switch {
	case errors.Is(err, errCanceled), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		b = ferrors.InternalError("compile canceled").Warning()
	case errors.As(err, &extractErr):
		b = ferrors.ExtractionError("malformed metadata block")
	case errors.As(err, &missingErr):
		b = ferrors.MetadataError("missing required metadata field").WithContext("field", missingErr.Field)
	case errors.As(err, &renderErr):
		b = ferrors.TemplateError("unresolved template placeholders").WithContext("placeholders", renderErr.Unresolved)
	case errors.Is(err, errRenderBody):
		b = ferrors.RenderError("body could not be rendered")
	case errors.Is(err, templates.ErrLayoutNotFound):
		b = ferrors.TemplateError("layout not found")
	case errors.As(err, &changeErr):
		b = ferrors.ArtifactError("invalid sitemap changefreq").WithContext("value", changeErr.Value)
	case errors.As(err, &generateErr):
		b = ferrors.ArtifactError("artifact generation failed")
	case errors.As(err, &collisionErr):
		b = ferrors.ValidationError("output name collision").WithContext("output", collisionErr.Output)
	case errors.As(err, &unsafeErr):
		b = ferrors.ConfigError("output directory would replace sources").WithContext("output", unsafeErr.Output).WithContext("source", unsafeErr.Source)
	case errors.As(err, &ioErr):
		b = ferrors.FileSystemError("filesystem operation failed").WithContext("op", ioErr.Op).WithContext("path", ioErr.Path)
	case errors.As(err, &transErr):
		b = ferrors.InternalError("compiler state machine violated")
	default:
		b = ferrors.InternalError("compile failed")
	}

	var fileErr *FileError
	if errors.As(err, &fileErr) {
		b.WithContext("file", fileErr.Path)
	}
	if generateErr != nil || errors.As(err, &generateErr) {
		b.WithContext("artifact", generateErr.Filename)
	}
	return b.WithCause(err).Build()
}
