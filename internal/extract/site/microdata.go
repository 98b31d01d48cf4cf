package site

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// discoverMicrodata covers schema.org microdata embedded directly in
// HTML attributes (itemscope/itemtype/itemprop), the second-priority
// strategy in spec.md §4.7 step 3.
func discoverMicrodata(page pageDoc) []Block {
	var blocks []Block
	page.doc.Find(`[itemscope][itemtype]`).Each(func(_ int, s *goquery.Selection) {
		itemType, _ := s.Attr("itemtype")
		if !strings.Contains(itemType, "Event") {
			return
		}
		blocks = append(blocks, microdataBlock(page, s))
	})
	return blocks
}

func microdataBlock(page pageDoc, s *goquery.Selection) Block {
	b := Block{}
	s.Find("[itemprop]").Each(func(_ int, prop *goquery.Selection) {
		name, _ := prop.Attr("itemprop")
		switch name {
		case "name":
			b.Title = firstNonEmpty(b.Title, microdataValue(prop))
		case "description":
			b.Description = firstNonEmpty(b.Description, microdataValue(prop))
		case "url":
			if href, ok := prop.Attr("href"); ok {
				b.URL = page.resolve(href)
			}
		case "image":
			if src, ok := prop.Attr("src"); ok {
				b.ImageURL = page.resolve(src)
			}
		case "startDate":
			if dt, ok := prop.Attr("content"); ok {
				b.DateRangeRaw = dt
			} else {
				b.DateRangeRaw = microdataValue(prop)
			}
		case "endDate":
			var end string
			if dt, ok := prop.Attr("content"); ok {
				end = dt
			} else {
				end = microdataValue(prop)
			}
			b.DateRangeRaw = strings.TrimSpace(b.DateRangeRaw + " " + end)
		case "location", "address":
			b.LocationRaw = firstNonEmpty(b.LocationRaw, microdataValue(prop))
		}
	})
	return b
}

func microdataValue(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
