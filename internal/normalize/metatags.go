package normalize

import (
	"strings"

	"git.home.luguber.info/inful/pagesmith/internal/metadata"
	"git.home.luguber.info/inful/pagesmith/internal/util/strutil"
)

// tagSource maps a meta tag name to the metadata key supplying its content.
type tagSource struct {
	name string
	key  string
}

func sameName(names ...string) []tagSource {
	out := make([]tagSource, len(names))
	for i, n := range names {
		out[i] = tagSource{name: n, key: n}
	}
	return out
}

var (
	primaryTags = sameName(
		"author", "description", "format-detection", "generator", "keywords",
		"language", "permalink", "rating", "referrer", "revisit-after",
		"robots", "theme-color", "title", "viewport",
	)
	appleTags = sameName(
		"apple_mobile_web_app_orientations", "apple_touch_icon_sizes",
		"apple-mobile-web-app-capable", "apple-mobile-web-app-status-bar-inset",
		"apple-mobile-web-app-status-bar-style", "apple-mobile-web-app-title",
		"apple-touch-fullscreen",
	)
	openGraphTags = []tagSource{
		{"og:description", "description"},
		{"og:image", "image"},
		{"og:image:alt", "image_alt"},
		{"og:image:height", "image_height"},
		{"og:image:width", "image_width"},
		{"og:locale", "locale"},
		{"og:site_name", "site_name"},
		{"og:title", "title"},
		{"og:type", "type"},
		{"og:url", "permalink"},
	}
	microsoftTags = sameName("msapplication-navbutton-color")
	twitterTags   = []tagSource{
		{"twitter:card", "twitter_card"},
		{"twitter:creator", "twitter_creator"},
		{"twitter:description", "description"},
		{"twitter:image", "image"},
		{"twitter:image:alt", "image_alt"},
		{"twitter:image:height", "image_height"},
		{"twitter:image:width", "image_width"},
		{"twitter:site", "url"},
		{"twitter:title", "title"},
		{"twitter:url", "url"},
	}
)

// MetaTagGroups holds rendered <meta> lines per platform.
type MetaTagGroups struct {
	Primary   string
	Apple     string
	OpenGraph string
	Microsoft string
	Twitter   string
}

// String joins the non-empty groups, one tag per line.
func (g MetaTagGroups) String() string {
	parts := make([]string, 0, 5)
	for _, s := range []string{g.Primary, g.Apple, g.OpenGraph, g.Microsoft, g.Twitter} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// BuildMetaTags renders every group from meta. Absent or empty values are
// omitted and content values are HTML escaped.
func BuildMetaTags(meta *metadata.Metadata) MetaTagGroups {
	return MetaTagGroups{
		Primary:   renderTags(meta, primaryTags),
		Apple:     renderTags(meta, appleTags),
		OpenGraph: renderTags(meta, openGraphTags),
		Microsoft: renderTags(meta, microsoftTags),
		Twitter:   renderTags(meta, twitterTags),
	}
}

func renderTags(meta *metadata.Metadata, sources []tagSource) string {
	lines := make([]string, 0, len(sources))
	for _, src := range sources {
		v := strings.TrimSpace(metadata.FieldOrDefault(meta, src.key, ""))
		if v == "" {
			continue
		}
		lines = append(lines, FormatMetaTag(src.name, v))
	}
	return strings.Join(lines, "\n")
}

// FormatMetaTag renders a single <meta> element with an escaped content value.
func FormatMetaTag(name, content string) string {
	return `<meta name="` + name + `" content="` + strutil.EscapeHTML(content) + `">`
}
