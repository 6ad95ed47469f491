package templates

import (
	"fmt"
	"strings"
)

// Context maps placeholder names to replacement text.
type Context map[string]string

// TemplateRenderError reports placeholders left in the output after
// substitution.
type TemplateRenderError struct {
	// Unresolved lists the leftover tokens in order of appearance.
	Unresolved []string
	// Output is the rendered text with unresolved tokens left in place.
	Output string
}

func (e *TemplateRenderError) Error() string {
	return fmt.Sprintf("unresolved template placeholder %s", strings.Join(e.Unresolved, ", "))
}

type segment struct {
	literal     string
	placeholder string
}

// Template is a parsed page skeleton. It is immutable and safe to execute
// concurrently.
type Template struct {
	name     string
	segments []segment
}

// Name identifies where the skeleton was loaded from.
func (t *Template) Name() string { return t.name }

// Parse splits skeleton into literal text and {{name}} placeholders. Names
// use the characters [A-Za-z0-9_.-]; surrounding spaces inside the braces are
// allowed.
func Parse(name, skeleton string) *Template {
	t := &Template{name: name}
	rest := skeleton
	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			t.appendLiteral(rest)
			return t
		}
		closeIdx := strings.Index(rest[open+2:], "}}")
		if closeIdx < 0 {
			t.appendLiteral(rest)
			return t
		}
		inner := strings.TrimSpace(rest[open+2 : open+2+closeIdx])
		end := open + 2 + closeIdx + 2
		if !isIdentifier(inner) {
			// Keep the opening braces literal and continue after them so a
			// later valid token is still recognised.
			t.appendLiteral(rest[:open+2])
			rest = rest[open+2:]
			continue
		}
		t.appendLiteral(rest[:open])
		t.segments = append(t.segments, segment{placeholder: inner})
		rest = rest[end:]
	}
}

func (t *Template) appendLiteral(s string) {
	if s == "" {
		return
	}
	if n := len(t.segments); n > 0 && t.segments[n-1].placeholder == "" {
		t.segments[n-1].literal += s
		return
	}
	t.segments = append(t.segments, segment{literal: s})
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '.', r == '-':
		default:
			return false
		}
	}
	return true
}

// Execute substitutes ctx values in a single pass. Values are inserted
// verbatim and never re-scanned, so placeholder syntax inside content is
// harmless. Any placeholder without a value, or stray "{{" in the skeleton,
// yields a TemplateRenderError.
func (t *Template) Execute(ctx Context) (string, error) {
	var b strings.Builder
	var unresolved []string
	for _, seg := range t.segments {
		if seg.placeholder == "" {
			b.WriteString(seg.literal)
			if strings.Contains(seg.literal, "{{") {
				unresolved = append(unresolved, strayToken(seg.literal))
			}
			continue
		}
		if v, ok := ctx[seg.placeholder]; ok {
			b.WriteString(v)
			continue
		}
		token := "{{" + seg.placeholder + "}}"
		b.WriteString(token)
		unresolved = append(unresolved, token)
	}
	if len(unresolved) > 0 {
		return "", &TemplateRenderError{Unresolved: unresolved, Output: b.String()}
	}
	return b.String(), nil
}

// Placeholders returns the distinct placeholder names in order.
func (t *Template) Placeholders() []string {
	seen := map[string]bool{}
	var out []string
	for _, seg := range t.segments {
		if seg.placeholder != "" && !seen[seg.placeholder] {
			seen[seg.placeholder] = true
			out = append(out, seg.placeholder)
		}
	}
	return out
}

// strayToken returns a short excerpt starting at the first "{{" in s.
func strayToken(s string) string {
	i := strings.Index(s, "{{")
	excerpt := s[i:]
	if j := strings.IndexAny(excerpt[2:], "\n<"); j >= 0 {
		excerpt = excerpt[:j+2]
	}
	if len(excerpt) > 40 {
		excerpt = excerpt[:40]
	}
	return excerpt
}

// Render parses and executes skeleton in one step.
func Render(skeleton string, ctx Context) (string, error) {
	return Parse("inline", skeleton).Execute(ctx)
}
