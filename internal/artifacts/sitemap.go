package artifacts

import (
	"bytes"
	"encoding/xml"
	"slices"
	"strings"

	"git.home.luguber.info/inful/pagesmith/internal/metadata"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
}

// Sitemap emits a sitemaps.org urlset with one entry per page that has a
// permalink. An invalid changefreq fails the whole sitemap.
func Sitemap(agg *SiteAggregate, defaultFreq string) ([]byte, error) {
	set := urlSet{XMLNS: sitemapNS, URLs: []sitemapURL{}}
	for _, p := range agg.Pages {
		permalink := strings.TrimSpace(metadata.FieldOrDefault(p.Metadata, "permalink", ""))
		if permalink == "" {
			continue
		}
		freq := strings.TrimSpace(metadata.FieldOrDefault(p.Metadata, "changefreq", defaultFreq))
		if err := ValidateChangeFreq(freq); err != nil {
			return nil, &InvalidChangeFreqError{Value: freq, Page: p.SourceName}
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        resolveURL(agg.Site.BaseURL, permalink),
			LastMod:    sitemapDate(p.Metadata),
			ChangeFreq: strings.ToLower(freq),
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// ValidateChangeFreq reports whether v is in the changefreq enumeration.
// Matching ignores case.
func ValidateChangeFreq(v string) error {
	if slices.Contains(ValidChangeFreqs, strings.ToLower(v)) {
		return nil
	}
	return &InvalidChangeFreqError{Value: v}
}

// sitemapDate renders last_build_date or date as YYYY-MM-DD. Unparseable or
// missing dates omit lastmod.
func sitemapDate(m *metadata.Metadata) string {
	for _, key := range []string{"last_build_date", "lastmod", "date"} {
		v, ok := m.Get(key)
		if !ok {
			continue
		}
		if t, err := metadata.ParseDate(v); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
