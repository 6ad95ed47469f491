package markdown

import (
	"bytes"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Renderer converts a content body to HTML.
type Renderer interface {
	Render(body []byte) (string, error)
}

// GoldmarkRenderer implements Renderer with a goldmark engine built once at
// construction. It holds no per-call state and is safe for concurrent use.
type GoldmarkRenderer struct {
	engine goldmark.Markdown
}

// NewGoldmarkRenderer builds a renderer for opts.
func NewGoldmarkRenderer(opts Options) *GoldmarkRenderer {
	return &GoldmarkRenderer{engine: newEngine(opts)}
}

// Render satisfies Renderer.
func (r *GoldmarkRenderer) Render(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert(body, &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return buf.String(), nil
}

func newEngine(opts Options) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)
	if opts.HighlightStyle != "" {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(opts.HighlightStyle),
			highlighting.WithFormatOptions(chromahtml.TabWidth(2)),
		))
	}

	var parserOptions []parser.Option
	if !opts.DisableHeadingAnchors {
		parserOptions = append(parserOptions,
			parser.WithASTTransformers(util.Prioritized(&headingAnchorTransformer{transliterate: opts.TransliterateAnchors}, 100)),
		)
	}

	rendererOptions := []renderer.Option{html.WithUnsafe()}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	return goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parserOptions...),
		goldmark.WithRendererOptions(rendererOptions...),
	)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.Table,
			extension.Strikethrough,
			extension.Linkify,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, ok := seen[key]; ok || key == "" {
			continue
		}
		if ext, ok := extensionRegistry[key]; ok {
			extenders = append(extenders, ext)
			seen[key] = struct{}{}
		}
	}
	return extenders
}
