package frontmatter

import (
	"strings"

	"github.com/BurntSushi/toml"

	"git.home.luguber.info/inful/pagesmith/internal/metadata"
)

func extractTOML(content []byte) (*metadata.Metadata, []byte, error) {
	block, body, _, err := SplitFenced(content, FenceTOML)
	if err != nil {
		return nil, nil, err
	}
	meta, err := ParseTOML(block)
	if err != nil {
		return nil, nil, err
	}
	return meta, body, nil
}

// ParseTOML parses a raw TOML block (without fences) into ordered metadata.
// Keys follow document order; tables are flattened to dotted keys.
func ParseTOML(block []byte) (*metadata.Metadata, error) {
	var fields map[string]any
	md, err := toml.Decode(string(block), &fields)
	if err != nil {
		return nil, err
	}

	meta := metadata.New()
	for _, key := range md.Keys() {
		val, ok := lookupPath(fields, key)
		if !ok {
			continue
		}
		switch val.(type) {
		case map[string]any, []map[string]any:
			continue
		}
		_ = meta.Set(strings.Join(key, "."), stringify(val))
	}
	return meta, nil
}

// lookupPath walks nested tables. Paths that cross an array of tables are
// not addressable and report false.
func lookupPath(fields map[string]any, key toml.Key) (any, bool) {
	var cur any = fields
	for _, part := range key {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
