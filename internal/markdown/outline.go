package markdown

import (
	"slices"
	"strings"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

type LinkKind string

const (
	LinkKindInline LinkKind = "inline"
	LinkKindImage  LinkKind = "image"
	LinkKindAuto   LinkKind = "auto"
	// LinkKindReference is a "[label]: dest" definition. Uses of the label
	// appear separately as inline links.
	LinkKindReference LinkKind = "reference"
)

type Link struct {
	Kind        LinkKind
	Destination string
}

// Heading is one entry of a rendered body's outline.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id,omitempty"`
}

// Outline is the structure of a body as the default renderer sees it.
type Outline struct {
	Headings []Heading
	Links    []Link
}

// Destinations returns the link targets used in the body, skipping
// reference definitions.
func (o Outline) Destinations() []string {
	var out []string
	for _, l := range o.Links {
		if l.Kind != LinkKindReference {
			out = append(out, l.Destination)
		}
	}
	return out
}

// Analyze parses body once with opts and collects headings, with the ids a
// renderer built from the same opts assigns, and links. Code spans and
// blocks are not inspected.
func Analyze(body []byte, opts Options) Outline {
	pctx := parser.NewContext()
	root := newEngine(opts).Parser().Parse(text.NewReader(body), parser.WithContext(pctx))

	var ol Outline
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *gmast.Heading:
			ol.Headings = append(ol.Headings, Heading{Level: v.Level, Text: nodeText(v, body), ID: attrString(v, "id")})
		case *gmast.AutoLink:
			ol.Links = append(ol.Links, Link{Kind: LinkKindAuto, Destination: string(v.URL(body))})
		case *gmast.Image:
			ol.Links = append(ol.Links, Link{Kind: LinkKindImage, Destination: string(v.Destination)})
		case *gmast.Link:
			ol.Links = append(ol.Links, Link{Kind: LinkKindInline, Destination: string(v.Destination)})
		}
		return gmast.WalkContinue, nil
	})

	refs := pctx.References()
	slices.SortFunc(refs, func(a, b parser.Reference) int {
		return strings.Compare(string(a.Label()), string(b.Label()))
	})
	for _, ref := range refs {
		ol.Links = append(ol.Links, Link{Kind: LinkKindReference, Destination: string(ref.Destination())})
	}
	return ol
}

func attrString(n gmast.Node, name string) string {
	v, ok := n.AttributeString(name)
	if !ok {
		return ""
	}
	b, _ := v.([]byte)
	return string(b)
}
