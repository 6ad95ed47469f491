package compiler

import (
	"fmt"
	"strings"
)

// FileError attributes a per-file failure to its source path.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }
func (e *FileError) Unwrap() error { return e.Err }

// IOError is a filesystem failure outside per-file processing.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// CollisionError reports source files whose output names differ only by
// case.
type CollisionError struct {
	Output string
	Paths  []string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("output name collision on %s: %s", e.Output, strings.Join(e.Paths, ", "))
}

// UnsafeOutputError reports an output directory that is, or contains, a
// source directory. Promoting a build would replace the sources.
type UnsafeOutputError struct {
	Output string
	Source string
}

func (e *UnsafeOutputError) Error() string {
	return fmt.Sprintf("output directory %s must not be or contain source directory %s", e.Output, e.Source)
}
