package artifacts

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Kind identifies a generated artifact.
type Kind string

const (
	KindSitemap     Kind = "sitemap"
	KindFeed        Kind = "feed"
	KindManifest    Kind = "manifest"
	KindRobots      Kind = "robots"
	KindAttribution Kind = "attribution"
	KindDomainAlias Kind = "domain_alias"
)

// Artifact is a generated site-wide file.
type Artifact struct {
	Kind     Kind
	Filename string
	Content  []byte
}

// Options tune generator behaviour.
type Options struct {
	// DefaultChangeFreq applies to sitemap entries without a changefreq.
	DefaultChangeFreq string
	// CNAMERequired turns a missing cname into a MissingFieldError.
	CNAMERequired bool
}

// Generator produces one artifact from the aggregate.
type Generator struct {
	Kind     Kind
	Filename string
	Generate func(*SiteAggregate) ([]byte, error)
}

// Generators returns the generator set in fixed output order.
func Generators(opts Options) []Generator {
	if opts.DefaultChangeFreq == "" {
		opts.DefaultChangeFreq = "weekly"
	}
	return []Generator{
		{KindSitemap, "sitemap.xml", func(a *SiteAggregate) ([]byte, error) { return Sitemap(a, opts.DefaultChangeFreq) }},
		{KindFeed, "rss.xml", Feed},
		{KindManifest, "manifest.json", Manifest},
		{KindRobots, "robots.txt", Robots},
		{KindAttribution, "humans.txt", Humans},
		{KindDomainAlias, "CNAME", func(a *SiteAggregate) ([]byte, error) { return CNAME(a, opts.CNAMERequired) }},
	}
}

// GenerateAll runs gens concurrently over agg. Results keep the order of
// gens; the first error cancels the remaining work and is returned.
func GenerateAll(ctx context.Context, agg *SiteAggregate, gens []Generator) ([]Artifact, error) {
	out := make([]Artifact, len(gens))
	g, gctx := errgroup.WithContext(ctx)
	for i, gen := range gens {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			content, err := gen.Generate(agg)
			if err != nil {
				return &GenerateError{Kind: gen.Kind, Filename: gen.Filename, Err: err}
			}
			out[i] = Artifact{Kind: gen.Kind, Filename: gen.Filename, Content: content}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
