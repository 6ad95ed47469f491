package page

import (
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/pagesmith/internal/frontmatter"
	"git.home.luguber.info/inful/pagesmith/internal/metadata"
)

// Fingerprint computes the content fingerprint of a source file from its raw
// metadata and body. The metadata is serialized as YAML in key order, without
// fences and without a fingerprint key of its own.
func Fingerprint(raw *metadata.Metadata, body string) (string, error) {
	fields := metadata.New()
	for _, k := range raw.Keys() {
		if k == mdfp.FingerprintField {
			continue
		}
		v, _ := raw.Get(k)
		_ = fields.Set(k, v)
	}

	block := ""
	if fields.Len() > 0 {
		serialized, err := frontmatter.Serialize(fields, frontmatter.FormatYAML)
		if err != nil {
			return "", err
		}
		block = strings.TrimSuffix(strings.TrimPrefix(string(serialized), frontmatter.FenceYAML+"\n"), frontmatter.FenceYAML+"\n")
		block = strings.TrimSuffix(block, "\n")
	}

	return mdfp.CalculateFingerprintFromParts(block, body), nil
}
