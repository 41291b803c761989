package trabajosdiarios

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	reJobPath      = regexp.MustCompile(`/trabajo/\d+/`)
	reJobContainer = regexp.MustCompile(`(?i)job|oferta|trabajo`)
	reNextText     = regexp.MustCompile(`(?i)Siguiente|Next`)
)

// buildPageURL appends the page parameter; page 1 is the bare listing URL.
func buildPageURL(listURL string, page int) string {
	if page <= 1 {
		return listURL
	}
	sep := "?"
	if strings.Contains(listURL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%spage=%d", listURL, sep, page)
}

// collectJobLinks gathers detail page URLs from a listing page: first
// anchors whose href matches the numeric detail path, then the first
// detail link inside each job-classed container. Order is preserved and
// duplicates dropped.
func collectJobLinks(doc *goquery.Document, baseURL string) []string {
	var links []string
	seen := make(map[string]struct{})

	add := func(href string) {
		abs := resolveURL(baseURL, href)
		if abs == "" {
			return
		}
		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}
		links = append(links, abs)
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if href := s.AttrOr("href", ""); reJobPath.MatchString(href) {
			add(href)
		}
	})

	doc.Find("article, div").Each(func(_ int, s *goquery.Selection) {
		if !reJobContainer.MatchString(s.AttrOr("class", "")) {
			return
		}
		link := s.Find(`a[href*="/trabajo/"]`).First()
		if link.Length() == 0 {
			return
		}
		add(link.AttrOr("href", ""))
	})

	return links
}

// hasNextPage reports whether the listing links to a further page, either
// through a "Siguiente"/"Next" anchor or pagination markup.
func hasNextPage(doc *goquery.Document) bool {
	found := false
	doc.Find("a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if reNextText.MatchString(s.Text()) {
			found = true
			return false
		}
		return true
	})
	if found {
		return true
	}
	return doc.Find(`li.next a, a[rel="next"]`).Length() > 0
}

func resolveURL(baseURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
