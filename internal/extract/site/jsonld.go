package site

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// jsonLDNode covers the subset of schema.org Event fields this extractor
// cares about. @type may be a bare string or a JSON array of strings.
type jsonLDNode struct {
	Type      json.RawMessage `json:"@type"`
	Name      string          `json:"name"`
	Desc      string          `json:"description"`
	URL       string          `json:"url"`
	Image     json.RawMessage `json:"image"`
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Location  json.RawMessage `json:"location"`
}

func discoverJSONLD(page pageDoc) []Block {
	var blocks []Block
	page.doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		for _, raw := range splitJSONDocs(text) {
			blocks = append(blocks, nodesFromRaw(raw)...)
		}
	})
	return blocks
}

// splitJSONDocs returns the trimmed script text as a single document (a
// bare object or array). A concatenation of several top-level JSON
// values in one script tag is not split apart.
func splitJSONDocs(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return []string{text}
}

func nodesFromRaw(raw string) []Block {
	var single jsonLDNode
	if err := json.Unmarshal([]byte(raw), &single); err == nil && isEventType(single.Type) {
		return []Block{blockFromNode(single)}
	}

	var list []jsonLDNode
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		var blocks []Block
		for _, n := range list {
			if isEventType(n.Type) {
				blocks = append(blocks, blockFromNode(n))
			}
		}
		return blocks
	}

	// @graph wrapper, common on CMS-driven sites.
	var graph struct {
		Graph []jsonLDNode `json:"@graph"`
	}
	if err := json.Unmarshal([]byte(raw), &graph); err == nil {
		var blocks []Block
		for _, n := range graph.Graph {
			if isEventType(n.Type) {
				blocks = append(blocks, blockFromNode(n))
			}
		}
		return blocks
	}
	return nil
}

func isEventType(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return strings.Contains(single, "Event")
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		for _, t := range list {
			if strings.Contains(t, "Event") {
				return true
			}
		}
	}
	return false
}

func blockFromNode(n jsonLDNode) Block {
	return Block{
		Title:        n.Name,
		Description:  n.Desc,
		URL:          n.URL,
		ImageURL:     firstImageURL(n.Image),
		DateRangeRaw: strings.TrimSpace(n.StartDate + " " + n.EndDate),
		LocationRaw:  locationString(n.Location),
	}
}

func firstImageURL(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0]
	}
	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.URL
	}
	return ""
}

func locationString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Name    string `json:"name"`
		Address any    `json:"address"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if addr, ok := obj.Address.(string); ok && addr != "" {
			return strings.TrimSpace(obj.Name + ", " + addr)
		}
		return obj.Name
	}
	return ""
}
