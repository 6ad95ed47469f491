package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLoad_TablesShareKeys(t *testing.T) {
	b, err := Load()
	require.NoError(t, err)
	require.Equal(t, []language.Tag{language.English, language.French, language.German}, b.Languages())

	for i := range b.tables[1:] {
		for key := range b.tables[0] {
			require.Contains(t, b.tables[i+1], key, "language %s", supported[i+1])
		}
	}
}

func TestTranslator(t *testing.T) {
	b := MustLoad()

	tests := []struct {
		lang string
		want string
	}{
		{"en", "Hello"},
		{"fr", "Bonjour"},
		{"de", "Hallo"},
		{"fr-CA", "Bonjour"},
		{"de-AT,en;q=0.5", "Hallo"},
		{"ja", "Hello"},
		{"", "Hello"},
		{"not a tag!", "Hello"},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			require.Equal(t, tt.want, b.Translator(tt.lang).T("hello"))
		})
	}
}

func TestTranslator_Format(t *testing.T) {
	tr := MustLoad().Translator("fr")
	require.Equal(t, language.French, tr.Tag())
	require.Equal(t, "3 pages et 6 artefacts compilés en 1s", tr.T("build_completed", 3, 6, "1s"))
}

func TestTranslator_Fallbacks(t *testing.T) {
	tr := MustLoad().Translator("de")
	tr.table = map[string]string{}

	require.Equal(t, "Goodbye", tr.T("goodbye"))
	require.Equal(t, "no_such_key", tr.T("no_such_key"))
	_, ok := tr.Lookup("goodbye")
	require.False(t, ok)
}

func TestExact(t *testing.T) {
	b := MustLoad()

	tr, err := b.Exact("de")
	require.NoError(t, err)
	require.Equal(t, language.German, tr.Tag())

	_, err = b.Exact("ja")
	require.ErrorIs(t, err, ErrUnsupportedLanguage)

	_, err = b.Exact("???")
	require.ErrorIs(t, err, ErrUnsupportedLanguage)
}
