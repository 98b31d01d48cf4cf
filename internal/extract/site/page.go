package site

import (
	"bytes"
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// pageDoc bundles a parsed document with the URL it came from, so
// discovery strategies can resolve relative hrefs/srcs.
type pageDoc struct {
	doc     *goquery.Document
	baseURL *url.URL
}

func parsePage(body []byte, sourceURL string) (pageDoc, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return pageDoc{}, err
	}
	base, _ := url.Parse(sourceURL)
	return pageDoc{doc: doc, baseURL: base}, nil
}

func (p pageDoc) resolve(ref string) string {
	if ref == "" || p.baseURL == nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return p.baseURL.ResolveReference(u).String()
}
