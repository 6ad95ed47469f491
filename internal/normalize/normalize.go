// Package normalize turns raw extracted metadata into a page's canonical
// form: required fields checked, keywords split, slug derived, meta tags
// rendered. The result is frozen.
package normalize

import (
	"strings"

	"git.home.luguber.info/inful/pagesmith/internal/metadata"
	"git.home.luguber.info/inful/pagesmith/internal/util/strutil"
)

// Derived metadata keys written by the normalizer.
const (
	KeyTitle    = "title"
	KeyKeywords = "keywords"
	KeySlug     = "slug"
	KeyMeta     = "meta"
)

// Page is the normalized view of a content file's metadata.
type Page struct {
	Metadata *metadata.Metadata
	Keywords []string
	Slug     string
	MetaTags MetaTagGroups
}

// Normalizer is stateless after construction and safe for concurrent use.
type Normalizer struct {
	defaults *metadata.Metadata
}

// New returns a Normalizer. Keys in defaults are filled in for pages that do
// not set them.
func New(defaults *metadata.Metadata) *Normalizer {
	if defaults == nil {
		defaults = metadata.New()
	}
	return &Normalizer{defaults: defaults.Clone()}
}

// Normalize validates and enriches raw. raw itself is not modified.
func (n *Normalizer) Normalize(raw *metadata.Metadata) (*Page, error) {
	title, err := metadata.Require(raw, KeyTitle)
	if err != nil {
		return nil, err
	}

	meta := raw.Clone()
	for _, k := range n.defaults.Keys() {
		if !meta.Has(k) {
			v, _ := n.defaults.Get(k)
			_ = meta.Set(k, v)
		}
	}

	keywords := strutil.SplitList(metadata.FieldOrDefault(meta, KeyKeywords, ""))
	if meta.Has(KeyKeywords) {
		_ = meta.Set(KeyKeywords, strings.Join(keywords, ", "))
	}

	slug := strings.TrimSpace(metadata.FieldOrDefault(meta, KeySlug, ""))
	if slug == "" {
		slug = strutil.Slugify(title)
	}
	_ = meta.Set(KeySlug, slug)

	tags := BuildMetaTags(meta)
	_ = meta.Set(KeyMeta, tags.String())
	meta.Freeze()

	return &Page{
		Metadata: meta,
		Keywords: keywords,
		Slug:     slug,
		MetaTags: tags,
	}, nil
}
