// Package workspace manages scratch directories for remote template
// checkouts.
//
// Ephemeral workspaces (pagesmith-template-*) live for one compile and are
// removed by Cleanup. Persistent workspaces keep a fixed directory across
// rebuilds so `pagesmith serve` can fetch into an existing checkout.
package workspace
