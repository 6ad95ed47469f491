package frontmatter

import (
	"bytes"

	"git.home.luguber.info/inful/pagesmith/internal/metadata"
)

// Format identifies the metadata block convention a document used.
type Format int

const (
	FormatNone Format = iota
	FormatYAML
	FormatTOML
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	case FormatJSON:
		return "json"
	default:
		return "none"
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Result is the outcome of extracting a metadata block.
type Result struct {
	Metadata *metadata.Metadata
	Format   Format
	Body     string
	// Attempts holds the parse failures of conventions that were tried and
	// skipped before the result was produced. Always empty in strict mode.
	Attempts []*FormatParseError
}

// Extractor splits a content file into metadata and body.
type Extractor struct {
	// Strict makes a matched but unparseable block an error instead of
	// falling through to the next convention.
	Strict bool
}

type convention struct {
	format Format
	match  func(content []byte, nl string) bool
	parse  func(content []byte) (*metadata.Metadata, []byte, error)
}

var conventions = []convention{
	{
		format: FormatYAML,
		match:  func(c []byte, nl string) bool { return bytes.HasPrefix(c, []byte(FenceYAML+nl)) },
		parse:  extractYAML,
	},
	{
		format: FormatTOML,
		match:  func(c []byte, nl string) bool { return bytes.HasPrefix(c, []byte(FenceTOML+nl)) },
		parse:  extractTOML,
	},
	{
		format: FormatJSON,
		match:  func(c []byte, _ string) bool { return len(c) > 0 && c[0] == '{' },
		parse:  extractJSON,
	},
}

// Extract returns the metadata, format and body of raw using lenient
// fallback.
func Extract(raw []byte) (*Result, error) {
	return (&Extractor{}).Extract("", raw)
}

// Extract tries YAML, TOML and JSON in that order. In lenient mode a block
// that fails to parse falls through to the next convention, and when nothing
// parses the whole input becomes the body with empty metadata.
func (x *Extractor) Extract(path string, raw []byte) (*Result, error) {
	content := bytes.TrimPrefix(raw, utf8BOM)
	nl := newlineOf(content)

	res := &Result{}
	for _, conv := range conventions {
		if !conv.match(content, nl) {
			continue
		}
		meta, body, err := conv.parse(content)
		if err != nil {
			perr := &FormatParseError{Format: conv.format, Err: err}
			if x.Strict {
				return nil, &ExtractionError{Path: path, Err: perr}
			}
			res.Attempts = append(res.Attempts, perr)
			continue
		}
		res.Metadata = meta
		res.Format = conv.format
		res.Body = string(trimLeadingBlankLine(body, nl))
		return res, nil
	}

	res.Metadata = metadata.New()
	res.Format = FormatNone
	res.Body = string(content)
	return res, nil
}

// trimLeadingBlankLine drops a single empty line separating the block from
// the body.
func trimLeadingBlankLine(body []byte, nl string) []byte {
	if bytes.HasPrefix(body, []byte(nl)) {
		return body[len(nl):]
	}
	if nl == "\r\n" && bytes.HasPrefix(body, []byte("\n")) {
		return body[1:]
	}
	return body
}
