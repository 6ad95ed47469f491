// Package compiler turns a content directory into a static site.
//
// A compile walks a fixed sequence of states:
//
//	scanning -> processing_files -> aggregating -> generating_artifacts -> writing -> done
//
// with failed reachable from every non-terminal state. Pages are compiled
// concurrently and fail fast; everything is written into a sibling staging
// directory that replaces the output directory only after every stage
// succeeded.
package compiler
