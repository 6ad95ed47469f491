package frontmatter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"git.home.luguber.info/inful/pagesmith/internal/metadata"
)

func extractJSON(content []byte) (*metadata.Metadata, []byte, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()

	meta, err := decodeObject(dec)
	if err != nil {
		return nil, nil, err
	}

	body := content[dec.InputOffset():]
	// Drop the remainder of the line holding the closing brace.
	if i := bytes.IndexByte(body, '\n'); i >= 0 && len(bytes.TrimSpace(body[:i])) == 0 {
		body = body[i+1:]
	} else if len(bytes.TrimSpace(body)) == 0 {
		body = body[len(body):]
	}
	return meta, body, nil
}

// ParseJSON parses a JSON object into ordered metadata.
func ParseJSON(block []byte) (*metadata.Metadata, error) {
	dec := json.NewDecoder(bytes.NewReader(block))
	dec.UseNumber()
	return decodeObject(dec)
}

// decodeObject reads exactly one top-level object, keeping member order.
func decodeObject(dec *json.Decoder) (*metadata.Metadata, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	meta := metadata.New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %v", tok)
		}
		var val any
		if err := dec.Decode(&val); err != nil {
			return nil, err
		}
		flattenValue(meta, key, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return meta, nil
}
