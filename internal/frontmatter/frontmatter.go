package frontmatter

import (
	"bytes"
	"errors"
)

// Fence strings for the line-delimited metadata conventions.
const (
	FenceYAML = "---"
	FenceTOML = "+++"
)

// ErrMissingClosingDelimiter indicates the document opened a fenced block
// that never closes.
var ErrMissingClosingDelimiter = errors.New("metadata block start delimiter found but closing delimiter is missing")

// SplitFenced separates a block delimited by fence lines from the body.
// found is false and body is the whole input when content does not open
// with fence. LF and CRLF documents are handled.
func SplitFenced(content []byte, fence string) (block, body []byte, found bool, err error) {
	nl := newlineOf(content)
	line := []byte(fence + nl)
	if !bytes.HasPrefix(content, line) {
		return nil, content, false, nil
	}
	rest := content[len(line):]

	if bytes.HasPrefix(rest, line) {
		return []byte{}, rest[len(line):], true, nil
	}
	if idx := bytes.Index(rest, []byte(nl+fence+nl)); idx >= 0 {
		return rest[:idx+len(nl)], rest[idx+len(nl)+len(line):], true, nil
	}
	// Closing fence on the last line with no newline after it.
	if tail := []byte(nl + fence); bytes.HasSuffix(rest, tail) {
		return rest[:len(rest)-len(fence)], []byte{}, true, nil
	}
	return nil, nil, false, ErrMissingClosingDelimiter
}

// newlineOf returns the line ending of the first line of content.
func newlineOf(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
