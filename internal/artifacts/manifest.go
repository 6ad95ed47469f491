package artifacts

import (
	"encoding/json"

	"git.home.luguber.info/inful/pagesmith/internal/util/strutil"
)

type webManifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	Description     string         `json:"description"`
	Icons           []manifestIcon `json:"icons"`
	Orientation     string         `json:"orientation"`
	Scope           string         `json:"scope"`
	ThemeColor      string         `json:"theme_color"`
}

type manifestIcon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type"`
	Purpose string `json:"purpose"`
}

// Manifest emits the web app manifest from site-level metadata. An icon
// entry is added only when the icon key is set.
func Manifest(agg *SiteAggregate) ([]byte, error) {
	name := strutil.FirstNonEmpty(agg.field("name"), agg.field("title"))
	m := webManifest{
		Name:            name,
		ShortName:       strutil.FirstNonEmpty(agg.field("short_name"), name),
		StartURL:        ".",
		Display:         "standalone",
		BackgroundColor: "#ffffff",
		Description:     agg.field("description"),
		Icons:           []manifestIcon{},
		Orientation:     "portrait-primary",
		Scope:           "/",
		ThemeColor:      agg.field("theme-color"),
	}
	if icon := agg.field("icon"); icon != "" {
		m.Icons = append(m.Icons, manifestIcon{
			Src:     icon,
			Sizes:   "512x512",
			Type:    "image/svg+xml",
			Purpose: "any maskable",
		})
	}

	out, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
