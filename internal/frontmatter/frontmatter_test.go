package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitFenced(t *testing.T) {
	tests := []struct {
		name      string
		fence     string
		input     string
		wantBlock string
		wantBody  string
		wantFound bool
	}{
		{"no block", FenceYAML, "# Title\n\nHello\n", "", "# Title\n\nHello\n", false},
		{"yaml", FenceYAML, "---\nkey: value\n---\n# Title\n", "key: value\n", "# Title\n", true},
		{"toml", FenceTOML, "+++\ntitle = \"x\"\n+++\nbody\n", "title = \"x\"\n", "body\n", true},
		{"closing fence at EOF", FenceYAML, "---\nkey: value\n---", "key: value\n", "", true},
		{"crlf", FenceYAML, "---\r\nkey: value\r\n---\r\n# Title\r\n", "key: value\r\n", "# Title\r\n", true},
		{"empty block", FenceYAML, "---\n---\n# Title\n", "", "# Title\n", true},
		{"other fence", FenceTOML, "---\nkey: value\n---\n", "", "---\nkey: value\n---\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, body, found, err := SplitFenced([]byte(tt.input), tt.fence)
			require.NoError(t, err)
			require.Equal(t, tt.wantFound, found)
			require.Equal(t, tt.wantBlock, string(block))
			require.Equal(t, tt.wantBody, string(body))
		})
	}
}

func TestSplitFenced_MissingClosingDelimiter(t *testing.T) {
	_, _, found, err := SplitFenced([]byte("---\nkey: value\n# Title\n"), FenceYAML)
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
	require.False(t, found)
}

func TestNewlineOf(t *testing.T) {
	require.Equal(t, "\n", newlineOf([]byte("a\nb")))
	require.Equal(t, "\r\n", newlineOf([]byte("a\r\nb")))
	require.Equal(t, "\n", newlineOf(nil))
}
