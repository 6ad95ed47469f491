package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pagesmith/internal/config"
	ferrors "git.home.luguber.info/inful/pagesmith/internal/foundation/errors"
	"git.home.luguber.info/inful/pagesmith/internal/i18n"
	"git.home.luguber.info/inful/pagesmith/internal/metrics"
)

func testGlobal(lang string) (*Global, *bytes.Buffer) {
	var out bytes.Buffer
	return &Global{
		Ctx:      context.Background(),
		Messages: i18n.MustLoad().Translator(lang),
		Out:      &out,
	}, &out
}

func writeContent(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func siteConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Site.Name = "Example"
	cfg.Site.BaseURL = "https://example.com"
	cfg.Content.Dir = filepath.Join(root, "content")
	cfg.Output.Dir = filepath.Join(root, "public")
	writeContent(t, cfg.Content.Dir, "index.md", "---\ntitle: My Title\ndescription: My Description\npermalink: /\n---\nMy content\n")
	return cfg
}

func TestRunBuild(t *testing.T) {
	cfg := siteConfig(t)
	g, out := testGlobal("en")

	report, err := RunBuild(g, cfg, metrics.NoopRecorder{})
	require.NoError(t, err)
	require.Len(t, report.Pages, 1)

	html, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1>My Title</h1>")
	assert.Contains(t, out.String(), "Compiling "+cfg.Content.Dir+" into "+cfg.Output.Dir)
	assert.Contains(t, out.String(), "Compiled 1 pages and 5 artifacts in ")

	out.Reset()
	_, err = RunBuild(g, cfg, metrics.NoopRecorder{})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "1 pages unchanged since the previous build")
}

func TestRunBuild_LocalizedFailure(t *testing.T) {
	cfg := siteConfig(t)
	writeContent(t, cfg.Content.Dir, "broken.md", "no metadata at all\n")
	g, out := testGlobal("fr")

	_, err := RunBuild(g, cfg, metrics.NoopRecorder{})
	require.Error(t, err)
	assert.Contains(t, out.String(), "Compilation de ")
	assert.Contains(t, out.String(), "Échec de la compilation")

	adapter := ferrors.NewCLIErrorAdapter(false, nil)
	require.Equal(t, 3, adapter.ExitCodeFor(err))
	msg := adapter.FormatError(err)
	assert.Contains(t, msg, "field=title")
	assert.Contains(t, msg, "broken.md")
}

func TestRunBuild_TemplateRepositoryFailure(t *testing.T) {
	cfg := siteConfig(t)
	cfg.Template.Repository = filepath.Join(t.TempDir(), "missing-repo")
	cfg.Template.Ref = "main"
	g, _ := testGlobal("en")

	_, err := RunBuild(g, cfg, metrics.NoopRecorder{})
	require.Error(t, err)
	require.Equal(t, ferrors.CategoryTemplateSource, ferrors.GetCategory(err))
	require.NoDirExists(t, cfg.Output.Dir)
}

func TestSiteFlags_Apply(t *testing.T) {
	cfg := config.Default()
	strict, minify := true, true
	flags := SiteFlags{
		Content:      "pages",
		Output:       "dist",
		TemplateRepo: "https://example.com/theme.git",
		Strict:       &strict,
		Minify:       &minify,
		Workers:      4,
	}
	require.NoError(t, flags.apply(cfg))
	require.Equal(t, "pages", cfg.Content.Dir)
	require.Equal(t, "dist", cfg.Output.Dir)
	require.Equal(t, "main", cfg.Template.Ref)
	require.True(t, cfg.Build.Strict)
	require.True(t, cfg.Render.Minify)
	require.Equal(t, 4, cfg.Build.Workers)

	bad := SiteFlags{Output: "pages"}
	err := bad.apply(cfg)
	require.Equal(t, ferrors.CategoryConfig, ferrors.GetCategory(err))
}

func TestRunInit(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, config.DefaultPath)
	tplDir := filepath.Join(dir, "template")
	g, out := testGlobal("de")

	require.NoError(t, RunInit(g, cfgPath, tplDir, false))
	require.FileExists(t, cfgPath)
	require.FileExists(t, filepath.Join(tplDir, "index.html"))
	require.FileExists(t, filepath.Join(tplDir, "style.css"))
	require.NotEmpty(t, out.String())

	err := RunInit(g, cfgPath, tplDir, false)
	require.Equal(t, ferrors.CategoryConfig, ferrors.GetCategory(err))

	require.NoError(t, os.WriteFile(filepath.Join(tplDir, "index.html"), []byte("custom"), 0o600))
	require.NoError(t, RunInit(g, cfgPath, tplDir, true))
	data, err := os.ReadFile(filepath.Join(tplDir, "index.html"))
	require.NoError(t, err)
	require.Equal(t, "custom", string(data))
}

func TestCLI_ParseAndRun(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeContent(t, filepath.Join(dir, "content"), "index.md", "---\ntitle: Home\npermalink: /\n---\nHello\n")

	var cli CLI
	parser, err := kong.New(&cli, kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	kctx, err := parser.Parse([]string{"build", "--minify=true", "-j", "2"})
	require.NoError(t, err)
	require.Equal(t, "build", kctx.Command())

	g, _ := testGlobal("en")
	require.NoError(t, kctx.Run(g, &cli))
	require.True(t, *cli.Build.Minify)
	require.FileExists(t, filepath.Join(dir, "public", "index.html"))
	require.FileExists(t, filepath.Join(dir, "public", "sitemap.xml"))
}

func TestVersionCmd(t *testing.T) {
	g, out := testGlobal("en")
	require.NoError(t, (&VersionCmd{}).Run(g))
	require.Contains(t, out.String(), "pagesmith ")
}

func TestTemplateWorkspace_StablePerRepository(t *testing.T) {
	a := config.Default()
	a.Template.Repository = "https://example.com/a.git"
	b := config.Default()
	b.Template.Repository = "https://example.com/b.git"

	require.Equal(t, templateWorkspace(a).Path(), templateWorkspace(a).Path())
	require.NotEqual(t, templateWorkspace(a).Path(), templateWorkspace(b).Path())
	require.True(t, templateWorkspace(a).Persistent())
}
