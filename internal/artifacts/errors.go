package artifacts

import "fmt"

// ValidChangeFreqs is the sitemaps.org changefreq enumeration.
var ValidChangeFreqs = []string{"always", "hourly", "daily", "weekly", "monthly", "yearly", "never"}

// InvalidChangeFreqError reports a changefreq outside ValidChangeFreqs.
type InvalidChangeFreqError struct {
	Value string
	Page  string
}

func (e *InvalidChangeFreqError) Error() string {
	return fmt.Sprintf("invalid changefreq %q in %s (want one of always, hourly, daily, weekly, monthly, yearly, never)", e.Value, e.Page)
}

// GenerateError attributes a generator failure to its artifact.
type GenerateError struct {
	Kind     Kind
	Filename string
	Err      error
}

func (e *GenerateError) Error() string {
	return fmt.Sprintf("generate %s: %v", e.Filename, e.Err)
}

func (e *GenerateError) Unwrap() error { return e.Err }
