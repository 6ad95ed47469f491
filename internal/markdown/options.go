package markdown

// Options controls how content bodies are rendered.
type Options struct {
	// Extensions names goldmark extensions to enable. Empty selects the
	// default set (table, strikethrough, linkify).
	Extensions []string
	// HighlightStyle enables chroma code highlighting with the named style.
	HighlightStyle string
	// HardWraps renders soft line breaks as <br>.
	HardWraps bool
	// DisableHeadingAnchors skips the id/class heading transformer.
	DisableHeadingAnchors bool
	// TransliterateAnchors folds heading ids to ASCII where a mapping exists.
	TransliterateAnchors bool
}
