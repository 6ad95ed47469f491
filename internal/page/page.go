// Package page assembles a finished HTML document from a normalized page,
// its rendered body and a skeleton. It performs no I/O beyond skeleton
// loading.
package page

import (
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/pagesmith/internal/metadata"
	"git.home.luguber.info/inful/pagesmith/internal/minify"
	"git.home.luguber.info/inful/pagesmith/internal/navigation"
	"git.home.luguber.info/inful/pagesmith/internal/normalize"
	"git.home.luguber.info/inful/pagesmith/internal/templates"
	"git.home.luguber.info/inful/pagesmith/internal/util/strutil"
)

// Artifact is one compiled page.
type Artifact struct {
	SourceName  string
	OutputName  string
	Metadata    *metadata.Metadata
	Keywords    []string
	Slug        string
	Body        string
	HTML        string
	Template    string
	Fingerprint string
}

// Site carries site-wide values used when a page does not set them.
type Site struct {
	Stylesheet string
	Copyright  string
	Language   string
	Generator  string
}

// Options toggles post-assembly processing.
type Options struct {
	Minify bool
}

// Assembler is safe for concurrent use.
type Assembler struct {
	loader *templates.Loader
	menu   *navigation.Menu
	site   Site
	opts   Options
}

// NewAssembler returns an Assembler. menu may be nil.
func NewAssembler(loader *templates.Loader, menu *navigation.Menu, site Site, opts Options) *Assembler {
	return &Assembler{loader: loader, menu: menu, site: site, opts: opts}
}

// OutputName replaces the extension of sourceName with .html. Directories
// in sourceName are kept, so the output mirrors the content tree.
func OutputName(sourceName string) string {
	return strings.TrimSuffix(sourceName, filepath.Ext(sourceName)) + ".html"
}

// Context builds the placeholder values for p. Every metadata key is
// available under its own name; the standard names always resolve, falling
// back to site values or the empty string.
func (a *Assembler) Context(sourceName string, p *normalize.Page, body string) templates.Context {
	meta := p.Metadata
	ctx := templates.Context(meta.Map())

	get := func(key, def string) string { return metadata.FieldOrDefault(meta, key, def) }

	ctx["title"] = strutil.EscapeHTML(get("title", ""))
	ctx["description"] = strutil.EscapeHTML(get("description", ""))
	ctx["keywords"] = strings.Join(p.Keywords, ", ")
	ctx["meta"] = get(normalize.KeyMeta, p.MetaTags.String())
	ctx["css"] = get("css", get("stylesheet", a.site.Stylesheet))
	ctx["content"] = body
	ctx["copyright"] = get("copyright", a.site.Copyright)
	ctx["navigation"] = a.menu.Render(navigation.PageKey(sourceName))
	ctx["lang"] = get("lang", get("language", a.site.Language))
	ctx["slug"] = p.Slug
	ctx["permalink"] = get("permalink", "")
	ctx["generator"] = get("generator", a.site.Generator)
	return ctx
}

// Assemble fills the page's skeleton and returns the finished artifact.
func (a *Assembler) Assemble(sourceName string, p *normalize.Page, body string) (*Artifact, error) {
	tpl, err := a.loader.Load(metadata.FieldOrDefault(p.Metadata, "layout", ""))
	if err != nil {
		return nil, err
	}

	out, err := tpl.Execute(a.Context(sourceName, p, body))
	if err != nil {
		return nil, err
	}

	if a.opts.Minify {
		if out, err = minify.HTML(out); err != nil {
			return nil, fmt.Errorf("minify %s: %w", sourceName, err)
		}
	}

	return &Artifact{
		SourceName: sourceName,
		OutputName: OutputName(sourceName),
		Metadata:   p.Metadata,
		Keywords:   p.Keywords,
		Slug:       p.Slug,
		Body:       body,
		HTML:       out,
		Template:   tpl.Name(),
	}, nil
}
