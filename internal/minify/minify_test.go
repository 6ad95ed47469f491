package minify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTML_CollapsesWhitespaceAndDropsComments(t *testing.T) {
	src := "<html>\n  <body>\n    <p>  a \n  b </p>\n<!-- note -->\n  </body>\n</html>\n"
	out, err := HTML(src)
	require.NoError(t, err)
	require.Equal(t, "<html> <body> <p> a b </p> </body> </html>", out)
}

func TestHTML_PreservesRawElements(t *testing.T) {
	src := "<pre>  keep\n   this</pre>\n\n<script>var  a = 1;\n</script><textarea>\n x  y</textarea><style>p  { }</style>"
	out, err := HTML(src)
	require.NoError(t, err)
	require.Equal(t, "<pre>  keep\n   this</pre> <script>var  a = 1;\n</script><textarea>\n x  y</textarea><style>p  { }</style>", out)
}

func TestHTML_KeepsMarkupAndEntities(t *testing.T) {
	src := `<!DOCTYPE html><a href="/x" class="nav">Tom &amp;   Jerry</a><br/>`
	out, err := HTML(src)
	require.NoError(t, err)
	require.Equal(t, `<!DOCTYPE html><a href="/x" class="nav">Tom &amp; Jerry</a><br/>`, out)
}

func TestHTML_KeepsConditionalComments(t *testing.T) {
	out, err := HTML("<!--[if IE]><p>x</p><![endif]-->")
	require.NoError(t, err)
	require.Equal(t, "<!--[if IE]><p>x</p><![endif]-->", out)
}
