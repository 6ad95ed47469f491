package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtract_YAML(t *testing.T) {
	doc := "---\ntitle: My Title\ndescription: My Description\nkeywords: foo, bar, baz\npermalink: /my-permalink\n---\n\nMy content\n"

	res, err := Extract([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, FormatYAML, res.Format)
	require.Equal(t, []string{"title", "description", "keywords", "permalink"}, res.Metadata.Keys())
	title, _ := res.Metadata.Get("title")
	require.Equal(t, "My Title", title)
	kw, _ := res.Metadata.Get("keywords")
	require.Equal(t, "foo, bar, baz", kw)
	require.Equal(t, "My content\n", res.Body)
}

func TestExtract_YAMLScalarsVerbatim(t *testing.T) {
	doc := "---\ndate: 2024-01-02\nversion: 1.10\nflag: yes\nempty:\n---\nbody"

	res, err := Extract([]byte(doc))
	require.NoError(t, err)
	m := res.Metadata.Map()
	require.Equal(t, "2024-01-02", m["date"])
	require.Equal(t, "1.10", m["version"])
	require.Equal(t, "yes", m["flag"])
	require.Equal(t, "", m["empty"])
}

func TestExtract_YAMLFlattensNestedAndSequences(t *testing.T) {
	doc := "---\nsocial:\n  twitter: me\n  site:\n    url: https://x\ntags: [a, b]\n---\nbody"

	res, err := Extract([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, []string{"social.twitter", "social.site.url", "tags"}, res.Metadata.Keys())
	m := res.Metadata.Map()
	require.Equal(t, "https://x", m["social.site.url"])
	require.Equal(t, "a, b", m["tags"])
}

func TestExtract_YAMLFallsBackToLineReader(t *testing.T) {
	// A tab-indented continuation is rejected by yaml.v3 but fine line by line.
	doc := "---\ntitle: Colons: everywhere: here\n\tauthor: Jane\n---\nbody"

	res, err := Extract([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, FormatYAML, res.Format)
	m := res.Metadata.Map()
	require.Equal(t, "Colons: everywhere: here", m["title"])
	require.Equal(t, "Jane", m["author"])
}

func TestExtract_DuplicateKeyLastWins(t *testing.T) {
	res, err := Extract([]byte("---\ntitle: a\ntitle: b\n---\nbody"))
	require.NoError(t, err)
	require.Equal(t, "b", res.Metadata.Map()["title"])
	require.Equal(t, []string{"title"}, res.Metadata.Keys())
}

func TestExtract_TOML(t *testing.T) {
	doc := "+++\ntitle = \"T\"\ndate = 2024-03-01\nupdated = 2024-03-01T10:00:00Z\ntags = [\"x\", \"y\"]\nweight = 3\n[author]\nname = \"Jane\"\n+++\n\nbody\n"

	res, err := Extract([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, FormatTOML, res.Format)
	require.Equal(t, []string{"title", "date", "updated", "tags", "weight", "author.name"}, res.Metadata.Keys())
	m := res.Metadata.Map()
	require.Equal(t, "2024-03-01", m["date"])
	require.Equal(t, "2024-03-01T10:00:00Z", m["updated"])
	require.Equal(t, "x, y", m["tags"])
	require.Equal(t, "3", m["weight"])
	require.Equal(t, "Jane", m["author.name"])
	require.Equal(t, "body\n", res.Body)
}

func TestExtract_JSON(t *testing.T) {
	doc := "{\n  \"title\": \"J\",\n  \"n\": 10,\n  \"ok\": true\n}\n\nbody {not json}\n"

	res, err := Extract([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, FormatJSON, res.Format)
	require.Equal(t, []string{"title", "n", "ok"}, res.Metadata.Keys())
	m := res.Metadata.Map()
	require.Equal(t, "10", m["n"])
	require.Equal(t, "true", m["ok"])
	require.Equal(t, "body {not json}\n", res.Body)
}

func TestExtract_NoBlock(t *testing.T) {
	res, err := Extract([]byte("Just text\n"))
	require.NoError(t, err)
	require.Equal(t, FormatNone, res.Format)
	require.Zero(t, res.Metadata.Len())
	require.Equal(t, "Just text\n", res.Body)
}

func TestExtract_MalformedFallsBackToBody(t *testing.T) {
	cases := map[string]string{
		"unclosed yaml": "---\ntitle: x\nno closing fence\n",
		"bad toml":      "+++\ntitle = \n+++\nbody\n",
		"bad json":      "{\"title\": }\nbody\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := Extract([]byte(doc))
			require.NoError(t, err)
			require.Equal(t, FormatNone, res.Format)
			require.Equal(t, doc, res.Body)
			require.Len(t, res.Attempts, 1)
		})
	}
}

func TestExtract_StrictReportsFormat(t *testing.T) {
	x := &Extractor{Strict: true}
	_, err := x.Extract("posts/a.md", []byte("+++\ntitle = \n+++\nbody\n"))
	require.Error(t, err)

	var ee *ExtractionError
	require.ErrorAs(t, err, &ee)
	require.Equal(t, "posts/a.md", ee.Path)

	var pe *FormatParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, FormatTOML, pe.Format)
}

func TestExtract_CRLFAndBOM(t *testing.T) {
	doc := "\xEF\xBB\xBF---\r\ntitle: Win\r\n---\r\n\r\nbody\r\n"

	res, err := Extract([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, FormatYAML, res.Format)
	require.Equal(t, "Win", res.Metadata.Map()["title"])
	require.Equal(t, "body\r\n", res.Body)
}
