package artifacts

import (
	"strings"

	"git.home.luguber.info/inful/pagesmith/internal/metadata"
)

// Robots emits robots.txt pointing crawlers at the sitemap.
func Robots(agg *SiteAggregate) ([]byte, error) {
	permalink := strings.TrimSuffix(agg.field("permalink"), "/")
	return []byte("User-agent: *\nSitemap: " + permalink + "/sitemap.xml\n"), nil
}

// humansSections lists humans.txt lines per section as label/metadata key.
var humansSections = []struct {
	title  string
	fields [][2]string
}{
	{"TEAM", [][2]string{
		{"Name", "author"},
		{"Website", "author_website"},
		{"Twitter", "author_twitter"},
		{"Location", "author_location"},
	}},
	{"THANKS", [][2]string{
		{"Thanks", "thanks"},
	}},
	{"SITE", [][2]string{
		{"Last update", "site_last_updated"},
		{"Standards", "site_standards"},
		{"Components", "site_components"},
		{"Software", "site_software"},
	}},
}

// Humans emits humans.txt. Every field is optional; empty fields are
// omitted but the section headers are always present.
func Humans(agg *SiteAggregate) ([]byte, error) {
	var b strings.Builder
	for i, sec := range humansSections {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("/* " + sec.title + " */\n")
		for _, f := range sec.fields {
			if v := agg.field(f[1]); v != "" {
				b.WriteString("\t" + f[0] + ": " + v + "\n")
			}
		}
	}
	return []byte(b.String()), nil
}

// CNAME emits the bare domain and its www alias. A missing cname yields
// empty output, or a MissingFieldError when required is set.
func CNAME(agg *SiteAggregate, required bool) ([]byte, error) {
	domain := agg.field("cname")
	if domain == "" {
		if required {
			return nil, &metadata.MissingFieldError{Field: "cname"}
		}
		return []byte{}, nil
	}
	base := strings.TrimPrefix(strings.ToLower(domain), "www.")
	return []byte(base + "\nwww." + base + "\n"), nil
}
