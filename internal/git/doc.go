// Package git fetches template repositories. A template source is a
// repository URL plus a branch, tag or commit; the checkout is reused
// between fetches when the target directory already holds a clone.
package git
