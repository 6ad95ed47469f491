// Package strutil contains small string helpers shared by the metadata
// normalizer, the artifact generators and the navigation builder.
package strutil

import (
	"regexp"
	"strings"
)

var nonAlnumRun = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Slugify lowercases s, replaces every run of characters that are neither
// letters nor digits with a single hyphen and trims leading and trailing
// hyphens. Letters outside ASCII are kept: "Über uns" becomes "über-uns".
func Slugify(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	return strings.Trim(nonAlnumRun.ReplaceAllString(lower, "-"), "-")
}

var (
	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
		"/", "&#x2F;",
	)
	hrefEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
	)
)

// EscapeHTML replaces & < > " ' and / with entities. It is applied to every
// meta-tag value and to page text placed in the skeleton.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// EscapeHref is EscapeHTML without the slash rule, for href attributes that
// must stay readable paths.
func EscapeHref(s string) string {
	return hrefEscaper.Replace(s)
}

// SplitList splits a comma separated value, trimming items and dropping
// empty ones. The result is never nil.
func SplitList(s string) []string {
	out := []string{}
	for part := range strings.SplitSeq(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FirstNonEmpty returns the first argument that is not blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
