package frontmatter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/pagesmith/internal/metadata"
)

// Serialize emits meta as a complete metadata block in format, fences
// included, preserving key order. Extracting the result yields the same
// keys and values.
func Serialize(meta *metadata.Metadata, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return serializeYAML(meta)
	case FormatTOML:
		return serializeTOML(meta)
	case FormatJSON:
		return serializeJSON(meta)
	default:
		return nil, fmt.Errorf("cannot serialize metadata as %s", format)
	}
}

// Compose builds a full document: the serialized block, a blank separator
// line and the body.
func Compose(meta *metadata.Metadata, format Format, body string) ([]byte, error) {
	block, err := Serialize(meta, format)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(block)+1+len(body))
	out = append(out, block...)
	out = append(out, '\n')
	out = append(out, body...)
	return out, nil
}

func serializeYAML(meta *metadata.Metadata) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(FenceYAML + "\n")
	if meta.Len() > 0 {
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range meta.Keys() {
			v, _ := meta.Get(k)
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v},
			)
		}
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(n); err != nil {
			_ = enc.Close()
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
	}
	buf.WriteString(FenceYAML + "\n")
	return buf.Bytes(), nil
}

func serializeTOML(meta *metadata.Metadata) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(FenceTOML + "\n")
	// One pair per encode call keeps document order; the encoder sorts map keys.
	for _, k := range meta.Keys() {
		v, _ := meta.Get(k)
		line, err := toml.Marshal(map[string]string{k: v})
		if err != nil {
			return nil, err
		}
		buf.Write(line)
	}
	buf.WriteString(FenceTOML + "\n")
	return buf.Bytes(), nil
}

func serializeJSON(meta *metadata.Metadata) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	keys := meta.Keys()
	for i, k := range keys {
		v, _ := meta.Get(k)
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.WriteString("  ")
		buf.Write(kb)
		buf.WriteString(": ")
		buf.Write(vb)
		if i < len(keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}
