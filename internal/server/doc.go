// Package server is the development server behind `pagesmith serve`. It
// serves a compiled output tree, exposes compile metrics, and rebuilds the
// site when content changes or on a fixed interval.
package server
