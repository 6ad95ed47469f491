// Package navigation builds the site menu injected through the
// {{navigation}} placeholder.
package navigation

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/pagesmith/internal/util/sets"
	"git.home.luguber.info/inful/pagesmith/internal/util/strutil"
)

// excluded page names never appear in the menu.
var excluded = sets.New("index", "404", "privacy", "terms", "offline")

// Item is a single menu entry.
type Item struct {
	Name  string // slash-separated source path without extension
	Label string
	Href  string
}

// Menu is an ordered, immutable list of items.
type Menu struct {
	items []Item
}

// Build creates a menu from content file names, ordered by path. Entries
// are keyed by their output path, so pages with the same file name in
// different directories each get one. Labels come from the file name, title
// cased for lang with hyphens and underscores as spaces.
func Build(sourceNames []string, lang language.Tag) *Menu {
	caser := cases.Title(lang)
	seen := sets.New[string]()
	items := make([]Item, 0, len(sourceNames))
	for _, name := range sourceNames {
		base := filepath.Base(name)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		if stem == "" || excluded.Has(strings.ToLower(stem)) {
			continue
		}
		key := PageKey(name)
		if seen.Has(strings.ToLower(key)) {
			continue
		}
		seen.Add(strings.ToLower(key))
		items = append(items, Item{
			Name:  key,
			Label: caser.String(strings.NewReplacer("-", " ", "_", " ").Replace(stem)),
			Href:  "/" + key + ".html",
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return &Menu{items: items}
}

// PageKey is the menu key of a content file: its slash-separated path
// relative to the content directory without the extension.
func PageKey(sourceName string) string {
	slashed := filepath.ToSlash(sourceName)
	return strings.TrimSuffix(slashed, path.Ext(slashed))
}

// Items returns a copy of the entries.
func (m *Menu) Items() []Item {
	return append([]Item(nil), m.items...)
}

// Render returns the menu as an HTML list. The entry whose Name equals
// current, a PageKey, is marked with aria-current. An empty menu renders as "".
func (m *Menu) Render(current string) string {
	if m == nil || len(m.items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<ul class="nav">` + "\n")
	for _, it := range m.items {
		label := strutil.EscapeHTML(it.Label)
		b.WriteString(`<li class="nav-item"><a href="`)
		b.WriteString(strutil.EscapeHref(it.Href))
		b.WriteString(`" title="`)
		b.WriteString(label)
		b.WriteString(`"`)
		if it.Name == current {
			b.WriteString(` aria-current="page"`)
		}
		b.WriteString(`>`)
		b.WriteString(label)
		b.WriteString("</a></li>\n")
	}
	b.WriteString("</ul>")
	return b.String()
}
