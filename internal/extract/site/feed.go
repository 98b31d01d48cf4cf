package site

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"culturefeed-backend/internal/logger"
)

// feedLinkTypes are the MIME types browsers use for RSS/Atom
// autodiscovery <link> tags.
var feedLinkTypes = map[string]bool{
	"application/rss+xml":  true,
	"application/atom+xml": true,
	"application/xml":      true,
}

// discoverFeedLinks finds <link rel="alternate" type="application/...xml">
// tags in the page head and resolves them against the page's URL.
func discoverFeedLinks(doc pageDoc) []string {
	var links []string
	doc.doc.Find("link[rel=alternate]").Each(func(_ int, s *goquery.Selection) {
		typ := strings.ToLower(strings.TrimSpace(s.AttrOr("type", "")))
		if !feedLinkTypes[typ] {
			return
		}
		if href, ok := s.Attr("href"); ok && href != "" {
			links = append(links, doc.resolve(href))
		}
	})
	return links
}

// discoverFeed is the fourth discovery strategy in priority order
// (spec.md §4.7 step 3): when JSON-LD, microdata and heuristic CSS all
// come up empty, check whether the venue publishes an RSS/Atom feed and
// treat its items as event blocks. Unlike the other three strategies it
// needs a second network round trip, so it is tried last and only on a
// full miss, and it is a method (not a package-level discoverer) since
// it needs the scraper's fetcher.
func (s *Scraper) discoverFeed(ctx context.Context, doc pageDoc) []Block {
	links := discoverFeedLinks(doc)
	for _, link := range links {
		body, _, err := s.fetcher.Fetch(ctx, link)
		if err != nil {
			logger.EventWarn(ctx, "site: feed fetch failed", "url", link, "error", err)
			continue
		}
		parsed, err := gofeed.NewParser().ParseString(string(body))
		if err != nil {
			logger.EventWarn(ctx, "site: feed parse failed", "url", link, "error", err)
			continue
		}
		if len(parsed.Items) == 0 {
			continue
		}
		blocks := make([]Block, 0, len(parsed.Items))
		for _, item := range parsed.Items {
			blocks = append(blocks, feedItemToBlock(item))
		}
		return blocks
	}
	return nil
}

// feedItemToBlock converts one feed entry to a Block. DateRangeRaw uses
// gofeed's already-parsed time rather than the item's raw RFC822/ISO
// date string, since internal/eventtime's layout table doesn't cover
// every format feeds emit in the wild.
func feedItemToBlock(item *gofeed.Item) Block {
	var dateRaw string
	switch {
	case item.PublishedParsed != nil:
		dateRaw = item.PublishedParsed.Format("2006-01-02")
	case item.UpdatedParsed != nil:
		dateRaw = item.UpdatedParsed.Format("2006-01-02")
	}
	return Block{
		Title:        item.Title,
		Description:  item.Description,
		URL:          item.Link,
		DateRangeRaw: dateRaw,
	}
}
