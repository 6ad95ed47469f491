package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/pagesmith/internal/metadata"
)

var errNotMapping = errors.New("yaml block is not a mapping")

func extractYAML(content []byte) (*metadata.Metadata, []byte, error) {
	block, body, _, err := SplitFenced(content, FenceYAML)
	if err != nil {
		return nil, nil, err
	}
	meta, err := ParseYAML(block)
	if err != nil {
		return nil, nil, err
	}
	return meta, body, nil
}

// ParseYAML parses a raw YAML block (without fences) into ordered metadata.
//
// Scalars are kept as written, sequences are joined with ", " and nested
// mappings are flattened to dotted keys. When yaml.v3 rejects the block the
// simple `key: value` line reader is tried before giving up.
func ParseYAML(block []byte) (*metadata.Metadata, error) {
	meta := metadata.New()
	if len(strings.TrimSpace(string(block))) == 0 {
		return meta, nil
	}

	var doc yaml.Node
	yamlErr := yaml.Unmarshal(block, &doc)
	if yamlErr == nil {
		yamlErr = flattenDocument(meta, &doc)
		if yamlErr == nil {
			return meta, nil
		}
	}

	lineMeta, lineErr := parseKeyValueLines(string(block))
	if lineErr != nil {
		return nil, fmt.Errorf("%w (line reader: %v)", yamlErr, lineErr)
	}
	return lineMeta, nil
}

func flattenDocument(meta *metadata.Metadata, doc *yaml.Node) error {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return errNotMapping
	}
	return flattenMapping(meta, "", root)
}

func flattenMapping(meta *metadata.Metadata, prefix string, n *yaml.Node) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := prefix + n.Content[i].Value
		val := resolveAlias(n.Content[i+1])
		switch val.Kind {
		case yaml.MappingNode:
			if err := flattenMapping(meta, key+".", val); err != nil {
				return err
			}
		case yaml.SequenceNode:
			items := make([]string, 0, len(val.Content))
			for _, item := range val.Content {
				s, err := scalarText(resolveAlias(item))
				if err != nil {
					return err
				}
				items = append(items, s)
			}
			_ = meta.Set(key, strings.Join(items, ", "))
		default:
			s, err := scalarText(val)
			if err != nil {
				return err
			}
			_ = meta.Set(key, s)
		}
	}
	return nil
}

func scalarText(n *yaml.Node) (string, error) {
	if n.Kind == yaml.ScalarNode {
		if n.Tag == "!!null" {
			return "", nil
		}
		return n.Value, nil
	}
	out, err := yaml.Marshal(n)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// parseKeyValueLines reads `key: value` lines, splitting on the first colon.
func parseKeyValueLines(block string) (*metadata.Metadata, error) {
	meta := metadata.New()
	for i, line := range strings.Split(strings.ReplaceAll(block, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		key, value, ok := strings.Cut(trimmed, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("line %d: expected key: value", i+1)
		}
		_ = meta.Set(key, unquote(strings.TrimSpace(value)))
	}
	return meta, nil
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
