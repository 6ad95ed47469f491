// Package artifacts generates the site-wide files derived from every
// compiled page: sitemap, RSS feed, web manifest, robots.txt, humans.txt and
// CNAME. Generators are pure functions of a SiteAggregate and run
// concurrently.
package artifacts
