// Package templates loads page skeletons and fills their {{name}}
// placeholders.
//
// Substitution is a single pass with no conditionals, loops or nested
// expansion. Skeletons come from a template directory (a layout named in page
// metadata, then index.html or page.html) or from the embedded default.
package templates
