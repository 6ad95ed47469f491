package markdown

import (
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-slug"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/pagesmith/internal/util/strutil"
)

// headingAnchorTransformer sets id and class on every heading to the slug of
// its text. Ids are made unique within a document with numeric suffixes.
type headingAnchorTransformer struct {
	transliterate bool
}

func (t *headingAnchorTransformer) Transform(doc *gmast.Document, reader text.Reader, _ parser.Context) {
	src := reader.Source()
	used := map[string]int{}

	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		h, ok := n.(*gmast.Heading)
		if !entering || !ok {
			return gmast.WalkContinue, nil
		}
		id := uniqueID(t.anchorID(nodeText(h, src)), used)
		h.SetAttributeString("id", []byte(id))
		h.SetAttributeString("class", []byte(id))
		return gmast.WalkSkipChildren, nil
	})
}

var asciiCharMap = sync.OnceValues(slug.GetCharMap)

// fallbackAnchor names headings whose text has no letters or digits.
const fallbackAnchor = "section"

// anchorID slugs heading text. With transliteration, go-slug's character map
// first folds accented and symbol characters to ASCII ("Über" to "uber",
// "&" to "and"); scripts it has no mapping for keep their letters.
func (t *headingAnchorTransformer) anchorID(s string) string {
	if t.transliterate {
		if charMap, err := asciiCharMap(); err == nil {
			if folded, err := slug.HashNormalizeWithCharMap(s, charMap); err == nil {
				s = folded
			}
		}
	}
	if id := strutil.Slugify(s); id != "" {
		return id
	}
	return fallbackAnchor
}

func uniqueID(id string, used map[string]int) string {
	n := used[id]
	used[id] = n + 1
	if n == 0 {
		return id
	}
	return id + "-" + strconv.Itoa(n)
}

// nodeText concatenates the literal text below n.
func nodeText(n gmast.Node, src []byte) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch v := c.(type) {
		case *gmast.Text:
			b.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(v.Value)
		case *gmast.RawHTML:
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
