// Package metadata holds the ordered string map extracted from a content
// file's metadata block, along with typed accessors, the MissingFieldError
// kind and lenient date parsing shared by the artifact generators.
package metadata
