// Package errors provides classified error primitives used across pagesmith.
//
// A ClassifiedError carries a category (config, extraction, template,
// artifact, filesystem, ...), a severity and structured context. The CLI
// adapter turns the category into a process exit code and a one-line message
// that names the failing file or field.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryExtraction, "metadata block could not be parsed").
//		WithContext("file", path).
//		Build()
package errors
