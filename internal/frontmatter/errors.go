package frontmatter

import "fmt"

// FormatParseError reports a metadata block whose opening fence matched but
// whose contents could not be parsed in that format.
type FormatParseError struct {
	Format Format
	Err    error
}

func (e *FormatParseError) Error() string {
	return fmt.Sprintf("parse %s metadata block: %v", e.Format, e.Err)
}

func (e *FormatParseError) Unwrap() error { return e.Err }

// ExtractionError attributes a metadata block failure to a content file.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract metadata from %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
