// Package minify shrinks assembled HTML pages by collapsing whitespace in
// text and dropping comments. Content of pre, textarea, script and style is
// left untouched, as is all tag markup.
package minify

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

var preserved = map[string]bool{
	"pre":      true,
	"textarea": true,
	"script":   true,
	"style":    true,
}

// HTML minifies src.
func HTML(src string) (string, error) {
	z := html.NewTokenizer(strings.NewReader(src))
	var out bytes.Buffer
	out.Grow(len(src))

	depth := 0 // nesting inside preserved elements
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return strings.TrimSpace(out.String()), nil
			}
			return "", z.Err()
		case html.CommentToken:
			raw := z.Raw()
			if depth > 0 || bytes.HasPrefix(raw, []byte("<!--[if")) {
				out.Write(raw)
			}
		case html.TextToken:
			raw := z.Raw()
			if depth > 0 {
				out.Write(raw)
				continue
			}
			text := collapseSpace(raw)
			if len(text) > 0 && text[0] == ' ' && out.Len() > 0 && out.Bytes()[out.Len()-1] == ' ' {
				text = text[1:]
			}
			out.Write(text)
		case html.StartTagToken:
			raw := append([]byte(nil), z.Raw()...)
			name, _ := z.TagName()
			if preserved[string(name)] {
				depth++
			}
			out.Write(raw)
		case html.EndTagToken:
			raw := append([]byte(nil), z.Raw()...)
			name, _ := z.TagName()
			if preserved[string(name)] && depth > 0 {
				depth--
			}
			out.Write(raw)
		default:
			out.Write(z.Raw())
		}
	}
}

// collapseSpace replaces each run of ASCII whitespace with one space.
func collapseSpace(b []byte) []byte {
	out := make([]byte, 0, len(b))
	inSpace := false
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\r', '\f':
			if !inSpace {
				out = append(out, ' ')
				inSpace = true
			}
		default:
			out = append(out, c)
			inSpace = false
		}
	}
	return out
}
