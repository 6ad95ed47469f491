// Package i18n loads the embedded message tables used for user-facing CLI
// and server output. Lookups fall back to English, then to the key itself.
package i18n

import (
	"embed"
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed messages/*.yaml
var messageFS embed.FS

// supported lists the embedded languages; the first entry is the fallback.
var supported = []language.Tag{language.English, language.French, language.German}

// ErrUnsupportedLanguage is returned by Bundle.Exact for languages without a table.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Bundle holds every embedded message table.
type Bundle struct {
	matcher language.Matcher
	tables  []map[string]string
}

// Load parses the embedded tables.
func Load() (*Bundle, error) {
	b := &Bundle{matcher: language.NewMatcher(supported), tables: make([]map[string]string, len(supported))}
	for i, tag := range supported {
		name := "messages/" + tag.String() + ".yaml"
		raw, err := messageFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		table := map[string]string{}
		if err := yaml.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		b.tables[i] = table
	}
	return b, nil
}

// MustLoad is Load for package-level initialisation.
func MustLoad() *Bundle {
	b, err := Load()
	if err != nil {
		panic(err)
	}
	return b
}

// Languages returns the supported language tags, fallback first.
func (b *Bundle) Languages() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Translator returns the closest match for lang, which may be a BCP 47 tag
// or an Accept-Language style list. Unknown or empty input yields English.
func (b *Bundle) Translator(lang string) *Translator {
	tags, _, err := language.ParseAcceptLanguage(lang)
	if err != nil || len(tags) == 0 {
		return b.translator(0)
	}
	_, idx, _ := b.matcher.Match(tags...)
	return b.translator(idx)
}

// Exact returns the translator for lang only when a table for its base
// language exists.
func (b *Bundle) Exact(lang string) (*Translator, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	_, idx, conf := b.matcher.Match(tag)
	if conf == language.No {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	return b.translator(idx), nil
}

func (b *Bundle) translator(idx int) *Translator {
	return &Translator{
		tag:      supported[idx],
		table:    b.tables[idx],
		fallback: b.tables[0],
		printer:  message.NewPrinter(supported[idx]),
	}
}

// Translator formats messages for one language. It is safe for concurrent use.
type Translator struct {
	tag      language.Tag
	table    map[string]string
	fallback map[string]string
	printer  *message.Printer
}

// Tag returns the translator's language.
func (t *Translator) Tag() language.Tag { return t.tag }

// Lookup returns the raw message for key in this language only.
func (t *Translator) Lookup(key string) (string, bool) {
	v, ok := t.table[key]
	return v, ok
}

// T formats the message for key with args using locale-aware number
// formatting. A key missing from the table falls back to English, then to
// the key itself.
func (t *Translator) T(key string, args ...any) string {
	format, ok := t.table[key]
	if !ok {
		if format, ok = t.fallback[key]; !ok {
			format = key
		}
	}
	if len(args) == 0 {
		return format
	}
	return t.printer.Sprintf(format, args...)
}
