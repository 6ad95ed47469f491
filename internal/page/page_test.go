package page

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inful/mdfp"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/pagesmith/internal/metadata"
	"git.home.luguber.info/inful/pagesmith/internal/navigation"
	"git.home.luguber.info/inful/pagesmith/internal/normalize"
	"git.home.luguber.info/inful/pagesmith/internal/templates"
)

func normalized(t *testing.T, pairs ...string) *normalize.Page {
	t.Helper()
	m := metadata.New()
	for i := 0; i+1 < len(pairs); i += 2 {
		require.NoError(t, m.Set(pairs[i], pairs[i+1]))
	}
	p, err := normalize.New(nil).Normalize(m)
	require.NoError(t, err)
	return p
}

func TestOutputName(t *testing.T) {
	require.Equal(t, "about.html", OutputName("about.md"))
	require.Equal(t, "guides/setup.html", OutputName("guides/setup.markdown"))
	require.Equal(t, "README.html", OutputName("README"))
}

func TestAssemble_EndToEndSkeleton(t *testing.T) {
	dir := t.TempDir()
	skeleton := "<html><head>{{meta}}<link href=\"{{css}}\"></head><body><h1>{{title}}</h1><h2>{{description}}</h2>{{content}}<footer>{{copyright}}</footer></body></html>"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(skeleton), 0o600))

	a := NewAssembler(templates.NewLoader(dir), nil, Site{Stylesheet: "style.css", Copyright: "© Me"}, Options{})
	p := normalized(t,
		"title", "My Title",
		"description", "My Description",
		"keywords", "foo, bar, baz",
		"permalink", "/my-permalink",
	)

	art, err := a.Assemble("my-page.md", p, "<p>My content</p>\n")
	require.NoError(t, err)
	require.Equal(t, "my-page.html", art.OutputName)
	require.Equal(t, "my-title", art.Slug)
	require.Equal(t, filepath.Join(dir, "index.html"), art.Template)
	require.Contains(t, art.HTML, "<h1>My Title</h1>")
	require.Contains(t, art.HTML, "<h2>My Description</h2>")
	require.Contains(t, art.HTML, "<p>My content</p>")
	require.Contains(t, art.HTML, `<link href="style.css">`)
	require.Contains(t, art.HTML, "<footer>© Me</footer>")
	require.Contains(t, art.HTML, `<meta name="keywords" content="foo, bar, baz">`)
}

func TestAssemble_UnresolvedPlaceholder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("{{title}} {{nope}}"), 0o600))
	a := NewAssembler(templates.NewLoader(dir), nil, Site{}, Options{})

	_, err := a.Assemble("a.md", normalized(t, "title", "T"), "")
	var tre *templates.TemplateRenderError
	require.ErrorAs(t, err, &tre)
	require.Equal(t, []string{"{{nope}}"}, tre.Unresolved)
}

func TestAssemble_MetadataKeysAndNavigation(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "post.html"), []byte("{{author}}|{{lang}}|{{navigation}}"), 0o600))

	menu := navigation.Build([]string{"about.md", "blog.md"}, language.English)
	a := NewAssembler(templates.NewLoader(dir), menu, Site{Language: "en"}, Options{})

	art, err := a.Assemble("blog.md", normalized(t, "title", "T", "author", "Jane", "layout", "post"), "")
	require.NoError(t, err)
	require.Contains(t, art.HTML, "Jane|en|<ul class=\"nav\">")
	require.Contains(t, art.HTML, `aria-current="page">Blog</a>`)
}

func TestAssemble_Minify(t *testing.T) {
	a := NewAssembler(templates.NewLoader(""), nil, Site{}, Options{Minify: true})
	art, err := a.Assemble("a.md", normalized(t, "title", "T", "description", "D"), "<p>x</p>\n\n\n")
	require.NoError(t, err)
	require.NotContains(t, art.HTML, "\n\n")
	require.Contains(t, art.HTML, "<h1>T</h1>")
}

func TestFingerprint_StableAndSensitive(t *testing.T) {
	m := metadata.FromMap(map[string]string{"title": "T"})

	a, err := Fingerprint(m, "body")
	require.NoError(t, err)
	b, err := Fingerprint(m, "body")
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.NotEmpty(t, a)

	c, err := Fingerprint(m, "body changed")
	require.NoError(t, err)
	require.NotEqual(t, a, c)

	withFP := m.Clone()
	require.NoError(t, withFP.Set(mdfp.FingerprintField, "old"))
	d, err := Fingerprint(withFP, "body")
	require.NoError(t, err)
	require.Equal(t, a, d)
}

func TestAssemble_EscapesTitleAndDescription(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<title>{{title}}</title><h1>{{title}}</h1><h2>{{description}}</h2>"), 0o600))
	a := NewAssembler(templates.NewLoader(dir), nil, Site{}, Options{})

	art, err := a.Assemble("a.md", normalized(t, "title", "A & B <x>", "description", `Say "hi"`), "")
	require.NoError(t, err)
	require.Equal(t, "<title>A &amp; B &lt;x&gt;</title><h1>A &amp; B &lt;x&gt;</h1><h2>Say &quot;hi&quot;</h2>", art.HTML)
}

func TestAssemble_NestedPageNavigation(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("{{navigation}}"), 0o600))
	menu := navigation.Build([]string{"a/guide.md", "b/guide.md"}, language.English)
	a := NewAssembler(templates.NewLoader(dir), menu, Site{}, Options{})

	art, err := a.Assemble("b/guide.md", normalized(t, "title", "Guide"), "")
	require.NoError(t, err)
	require.Equal(t, "b/guide.html", art.OutputName)
	require.Equal(t, 1, strings.Count(art.HTML, `aria-current="page"`))
	require.Contains(t, art.HTML, `<a href="/b/guide.html" title="Guide" aria-current="page">`)
	require.Contains(t, art.HTML, `<a href="/a/guide.html" title="Guide">`)
}
