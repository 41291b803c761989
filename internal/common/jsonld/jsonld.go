// Package jsonld locates schema.org JobPosting metadata embedded in a page.
package jsonld

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var whitespace = regexp.MustCompile(`\s+`)

// FindJobPosting scans the document's ld+json blocks in order and returns
// the first JobPosting object, either at the top level or inside an @graph
// container. Blocks that fail to decode are skipped.
func FindJobPosting(doc *goquery.Document) (map[string]any, bool) {
	var posting map[string]any
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return true
		}
		data, ok := decode(raw)
		if !ok {
			return true
		}
		if item, ok := selectPosting(data); ok {
			posting = item
			return false
		}
		return true
	})
	return posting, posting != nil
}

// decode parses a block as is, then retries with whitespace collapsed for
// blocks that embed raw control characters inside string values.
func decode(raw string) (map[string]any, bool) {
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err == nil {
		return data, true
	}
	collapsed := whitespace.ReplaceAllString(raw, " ")
	if err := json.Unmarshal([]byte(collapsed), &data); err == nil {
		return data, true
	}
	return nil, false
}

func selectPosting(data map[string]any) (map[string]any, bool) {
	if isJobPosting(data) {
		return data, true
	}
	graph, ok := data["@graph"].([]any)
	if !ok {
		return nil, false
	}
	for _, entry := range graph {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if isJobPosting(item) {
			return item, true
		}
	}
	return nil, false
}

func isJobPosting(item map[string]any) bool {
	switch t := item["@type"].(type) {
	case string:
		return t == "JobPosting"
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok && s == "JobPosting" {
				return true
			}
		}
	}
	return false
}
