package artifacts

import (
	"bytes"
	"encoding/xml"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/pagesmith/internal/metadata"
	"git.home.luguber.info/inful/pagesmith/internal/util/strutil"
)

const atomNS = "http://www.w3.org/2005/Atom"

type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Atom    string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	AtomLink       atomLink  `xml:"atom:link"`
	Title          string    `xml:"title"`
	Link           string    `xml:"link"`
	Description    string    `xml:"description"`
	Language       string    `xml:"language,omitempty"`
	Copyright      string    `xml:"copyright,omitempty"`
	ManagingEditor string    `xml:"managingEditor,omitempty"`
	WebMaster      string    `xml:"webMaster,omitempty"`
	PubDate        string    `xml:"pubDate,omitempty"`
	LastBuildDate  string    `xml:"lastBuildDate,omitempty"`
	Category       string    `xml:"category,omitempty"`
	Generator      string    `xml:"generator,omitempty"`
	Docs           string    `xml:"docs,omitempty"`
	TTL            string    `xml:"ttl,omitempty"`
	Image          *rssImage `xml:"image,omitempty"`
	Items          []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssImage struct {
	URL   string `xml:"url"`
	Title string `xml:"title"`
	Link  string `xml:"link"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	Description string  `xml:"description"`
	Author      string  `xml:"author,omitempty"`
	Category    string  `xml:"category,omitempty"`
	PubDate     string  `xml:"pubDate,omitempty"`
	GUID        rssGUID `xml:"guid"`
}

type rssGUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink string `xml:"isPermaLink,attr"`
}

// Feed emits an RSS 2.0 document with one item per page.
func Feed(agg *SiteAggregate) ([]byte, error) {
	link := agg.field("permalink")
	ch := rssChannel{
		AtomLink: atomLink{
			Href: strings.TrimSuffix(link, "/") + "/rss.xml",
			Rel:  "self",
			Type: "application/rss+xml",
		},
		Title:          strutil.FirstNonEmpty(agg.Site.Name, agg.field("title")),
		Link:           link,
		Description:    strutil.FirstNonEmpty(agg.Site.Description, agg.field("description")),
		Language:       agg.field("language"),
		Copyright:      agg.field("copyright"),
		ManagingEditor: agg.field("managing_editor"),
		WebMaster:      agg.field("webmaster"),
		PubDate:        feedDate(agg.field("pub_date")),
		LastBuildDate:  feedDate(agg.field("last_build_date")),
		Category:       agg.field("category"),
		Generator:      agg.field("generator"),
		Docs:           agg.field("docs"),
		TTL:            agg.field("ttl"),
		Items:          make([]rssItem, 0, len(agg.Pages)),
	}
	if img := agg.field("image"); img != "" {
		ch.Image = &rssImage{URL: img, Title: ch.Title, Link: link}
	}

	for _, p := range agg.Pages {
		get := func(key string) string { return strings.TrimSpace(metadata.FieldOrDefault(p.Metadata, key, "")) }

		itemLink := resolveURL(agg.Site.BaseURL, strutil.FirstNonEmpty(get("item_link"), get("permalink"), p.OutputName))
		guid := get("item_guid")
		if guid == "" {
			guid = uuid.NewSHA1(uuid.NameSpaceURL, []byte(itemLink)).String()
		}
		ch.Items = append(ch.Items, rssItem{
			Title:       strutil.FirstNonEmpty(get("item_title"), get("title")),
			Link:        itemLink,
			Description: strutil.FirstNonEmpty(get("item_description"), get("description")),
			Author:      get("author"),
			Category:    get("category"),
			PubDate:     feedDate(strutil.FirstNonEmpty(get("item_pub_date"), get("pub_date"), get("date"))),
			GUID:        rssGUID{Value: guid, IsPermaLink: "false"},
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(rssDoc{Version: "2.0", Atom: atomNS, Channel: ch}); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// feedDate renders v as RFC 1123 with numeric zone when it parses and
// passes it through unchanged otherwise.
func feedDate(v string) string {
	if v == "" {
		return ""
	}
	t, err := metadata.ParseDate(v)
	if err != nil {
		return v
	}
	return t.Format(time.RFC1123Z)
}
