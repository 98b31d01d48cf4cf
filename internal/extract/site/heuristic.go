package site

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// candidateContainerSelectors is the last-resort enumeration from
// spec.md §4.7 step 3, covering the class-name conventions common to
// event-calendar plugins and hand-rolled listing pages.
var candidateContainerSelectors = []string{
	".event", ".event-item", ".event-card", ".events-list .item",
	"[class*='event-listing']", "[class*='eventItem']",
	"article.event", "li.event", ".calendar-item", ".program-item",
}

func discoverHeuristic(page pageDoc) []Block {
	seen := make(map[string]bool)
	var blocks []Block
	for _, sel := range candidateContainerSelectors {
		page.doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			b := heuristicBlock(page, s)
			if b.Title == "" {
				return
			}
			key := b.Title + "|" + b.URL
			if seen[key] {
				return
			}
			seen[key] = true
			blocks = append(blocks, b)
		})
	}
	return blocks
}

func heuristicBlock(page pageDoc, s *goquery.Selection) Block {
	b := Block{}

	if title := s.Find("h1,h2,h3,.title,[class*='title']").First(); title.Length() > 0 {
		b.Title = strings.TrimSpace(title.Text())
	}
	if b.Title == "" {
		b.Title = strings.TrimSpace(s.Text())
	}

	if link := s.Find("a[href]").First(); link.Length() > 0 {
		if href, ok := link.Attr("href"); ok {
			b.URL = page.resolve(href)
		}
	}
	if img := s.Find("img[src]").First(); img.Length() > 0 {
		if src, ok := img.Attr("src"); ok {
			b.ImageURL = page.resolve(src)
		}
	}
	if desc := s.Find(".description,.excerpt,p").First(); desc.Length() > 0 {
		b.Description = strings.TrimSpace(desc.Text())
	}
	if date := s.Find(".date,[class*='date'],time").First(); date.Length() > 0 {
		if dt, ok := date.Attr("datetime"); ok {
			b.DateRangeRaw = dt
		} else {
			b.DateRangeRaw = strings.TrimSpace(date.Text())
		}
	}
	if timeEl := s.Find(".time,[class*='time']").First(); timeEl.Length() > 0 {
		b.TimeRangeRaw = strings.TrimSpace(timeEl.Text())
	}
	if loc := s.Find(".location,.venue,[class*='location']").First(); loc.Length() > 0 {
		b.LocationRaw = strings.TrimSpace(loc.Text())
	}
	return b
}
