package artifacts

import (
	"net/url"
	"strings"

	"git.home.luguber.info/inful/pagesmith/internal/metadata"
	"git.home.luguber.info/inful/pagesmith/internal/page"
)

// SiteInfo holds configured site-level values.
type SiteInfo struct {
	Name        string
	Domain      string
	BaseURL     string
	Language    string
	Description string
	Copyright   string
	Author      string
	Generator   string
}

// SiteAggregate is every compiled page, sorted by source name, plus site
// configuration. It is read-only once built.
type SiteAggregate struct {
	Site  SiteInfo
	Pages []*page.Artifact
	meta  *metadata.Metadata
}

// NewAggregate builds the aggregate and resolves site-level metadata:
// configured values overlaid by the index page, or the first page when
// there is no index.
func NewAggregate(site SiteInfo, pages []*page.Artifact) *SiteAggregate {
	meta := metadata.New()
	set := func(k, v string) {
		if v != "" {
			_ = meta.Set(k, v)
		}
	}
	set("name", site.Name)
	set("title", site.Name)
	set("description", site.Description)
	set("language", site.Language)
	set("copyright", site.Copyright)
	set("author", site.Author)
	set("cname", site.Domain)
	set("permalink", site.BaseURL)
	set("generator", site.Generator)

	if home := homePage(pages); home != nil {
		for _, k := range home.Metadata.Keys() {
			v, _ := home.Metadata.Get(k)
			if strings.TrimSpace(v) == "" {
				continue
			}
			if k == "permalink" {
				v = resolveURL(site.BaseURL, v)
			}
			_ = meta.Set(k, v)
		}
	}
	meta.Freeze()

	return &SiteAggregate{Site: site, Pages: pages, meta: meta}
}

// Metadata returns the resolved site-level metadata.
func (a *SiteAggregate) Metadata() *metadata.Metadata { return a.meta }

func (a *SiteAggregate) field(key string) string {
	return strings.TrimSpace(metadata.FieldOrDefault(a.meta, key, ""))
}

func homePage(pages []*page.Artifact) *page.Artifact {
	for _, p := range pages {
		if strings.EqualFold(strings.TrimSuffix(p.OutputName, ".html"), "index") {
			return p
		}
	}
	if len(pages) > 0 {
		return pages[0]
	}
	return nil
}

// resolveURL joins a relative reference onto base. Absolute references and
// an empty base return ref unchanged.
func resolveURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if base == "" || ref == "" {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil || r.IsAbs() {
		return ref
	}
	b, err := url.Parse(strings.TrimSuffix(base, "/") + "/")
	if err != nil {
		return ref
	}
	return b.ResolveReference(&url.URL{Path: strings.TrimPrefix(r.Path, "/"), RawQuery: r.RawQuery, Fragment: r.Fragment}).String()
}
