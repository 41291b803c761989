package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var reDetailHeading = regexp.MustCompile(`(?i)Job details|Detalle del empleo|Descripción|Descripción del puesto`)

// Description extracts the visible posting body. Candidates are gathered
// from the named containers, then from the sibling run after a details
// heading; only when neither exists do all paragraphs count. The longest
// rendering wins, first candidate on ties.
func Description(doc *goquery.Document, selectors []string) string {
	var candidates []string

	for _, selector := range selectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			candidates = append(candidates, renderText(sel))
		}
	}

	if section := detailSection(doc); section != nil {
		candidates = append(candidates, renderText(section))
	}

	if len(candidates) == 0 {
		if paragraphs := doc.Find("p"); paragraphs.Length() > 0 {
			candidates = append(candidates, renderText(paragraphs))
		}
	}

	best := ""
	for _, text := range candidates {
		if len(text) > len(best) {
			best = text
		}
	}
	return normalizeBreaks(best)
}

// detailSection returns the siblings between a details heading and the
// next heading, or nil when the page has no such section.
func detailSection(doc *goquery.Document) *goquery.Selection {
	heading := doc.Find("h2, h3").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return reDetailHeading.MatchString(s.Text())
	}).First()
	if heading.Length() == 0 {
		return nil
	}
	section := heading.NextUntil("h1, h2, h3")
	if section.Length() == 0 {
		return nil
	}
	return section
}

func normalizeBreaks(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
