package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/project-tico/td-scraper/internal/config"
)

var (
	reKeywordsMeta  = regexp.MustCompile(`(?i)keywords`)
	reKeywordSplit  = regexp.MustCompile(`[,|;]`)
	relatedPhrases  = []string{"trabajo de", "trabajo en", "empleo de", "empleo en"}
	relatedPrefixes = []string{"Trabajo de", "Trabajo en", "Empleo de", "Empleo en"}

	relatedSearchSelectors = []string{
		`a[href*="/trabajo/"]`,
		`a[href*="/ofertas-trabajo/"]`,
		`.tag`,
		`a.btn`,
		`a[class*="tag"]`,
		`a[class*="button"]`,
	}
	breadcrumbSelectors = []string{
		"nav.breadcrumb a",
		"ul.breadcrumb a",
		"ol.breadcrumb a",
		".breadcrumb a",
		`[class*="breadcrumb"] a`,
		`nav[aria-label="breadcrumb"] a`,
	}
	tagLinkSelectors = []string{
		`a[rel="tag"]`,
		"a.tag",
		"a.category",
		".tags a",
		".categories a",
		`a[href*="/categoria/"]`,
		`a[href*="/categoria-"]`,
	}

	// Breadcrumb entries that are navigation, not categories.
	breadcrumbSkip = map[string]struct{}{
		"home": {}, "inicio": {}, "san josé": {}, "san jose": {}, "costa rica": {},
	}
)

// Candidates shorter than this are noise ("de", "CR").
const minCategoryLen = 3

// CategorySignals carries the inputs the resolver needs beyond the page
// itself: the already-resolved title and any category strings the
// structured metadata declared.
type CategorySignals struct {
	Title      string
	Structured []string
}

// ResolveCategory pools every category signal the page offers, cleans the
// pool and applies the profile's policy: "first" keeps the best surviving
// candidate, "join" keeps them all comma-separated.
//
// Signal order decides ties under the "first" policy: title keywords,
// related-search links, breadcrumbs, meta keywords, tag links, structured
// metadata.
func ResolveCategory(doc *goquery.Document, signals CategorySignals, profile *config.Profile) string {
	var pool []string
	if hit := titleCategory(signals.Title, profile.CategoryKeywords); hit != "" {
		pool = append(pool, hit)
	}
	pool = append(pool, relatedSearchCategories(doc)...)
	pool = append(pool, breadcrumbCategories(doc)...)
	pool = append(pool, metaKeywordCategories(doc)...)
	pool = append(pool, tagLinkCategories(doc)...)
	pool = append(pool, signals.Structured...)

	valid := cleanCandidates(pool, profile.Gazetteer)
	if len(valid) == 0 {
		return ""
	}
	if profile.CategoryPolicy == config.CategoryPolicyJoin {
		return strings.Join(valid, ",")
	}
	return valid[0]
}

// titleCategory matches the lowercased title against the keyword groups in
// order and returns the first group's label that hits.
func titleCategory(title string, groups []config.KeywordGroup) string {
	if title == "" {
		return ""
	}
	lower := strings.ToLower(title)
	for _, group := range groups {
		for _, keyword := range group.Keywords {
			if strings.Contains(lower, keyword) {
				return group.Label
			}
		}
	}
	return ""
}

// relatedSearchCategories reads the sidebar's related-search buttons. Only
// links phrased like "Trabajo de X" or "Empleo en X" count; the phrase is
// stripped and the first comma segment kept.
func relatedSearchCategories(doc *goquery.Document) []string {
	var out []string
	for _, selector := range relatedSearchSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			text := compactText(s)
			if text == "" || !containsAny(strings.ToLower(text), relatedPhrases) {
				return
			}
			cleaned := text
			for _, prefix := range relatedPrefixes {
				cleaned = strings.ReplaceAll(cleaned, prefix, "")
			}
			cleaned = strings.TrimSpace(cleaned)
			if cleaned == "" {
				return
			}
			out = append(out, strings.TrimSpace(strings.SplitN(cleaned, ",", 2)[0]))
		})
	}
	return out
}

// breadcrumbCategories keeps breadcrumb links that point at category
// pages, skipping the home and province crumbs.
func breadcrumbCategories(doc *goquery.Document) []string {
	var out []string
	for _, selector := range breadcrumbSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			text := compactText(s)
			if text == "" {
				return
			}
			if _, skip := breadcrumbSkip[strings.ToLower(text)]; skip {
				return
			}
			href := s.AttrOr("href", "")
			if strings.Contains(href, "/categoria/") || strings.Contains(href, "/category/") ||
				strings.Contains(href, "/ofertas-trabajo/") {
				out = append(out, text)
			}
		})
	}
	return out
}

// metaKeywordCategories splits the first keywords meta tag on commas,
// pipes and semicolons.
func metaKeywordCategories(doc *goquery.Document) []string {
	var out []string
	doc.Find("meta[name]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !reKeywordsMeta.MatchString(s.AttrOr("name", "")) {
			return true
		}
		for _, part := range reKeywordSplit.Split(s.AttrOr("content", ""), -1) {
			if kw := strings.TrimSpace(part); kw != "" {
				out = append(out, kw)
			}
		}
		return false
	})
	return out
}

// tagLinkCategories collects the text of tag- and category-styled links.
func tagLinkCategories(doc *goquery.Document) []string {
	var out []string
	for _, selector := range tagLinkSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			if text := compactText(s); text != "" {
				out = append(out, text)
			}
		})
	}
	return out
}

// cleanCandidates collapses whitespace, keeps the first comma segment,
// drops gazetteer place names and too-short entries, and deduplicates
// case-insensitively preserving first-seen order.
func cleanCandidates(pool, gazetteer []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, raw := range pool {
		cleaned := collapse(raw)
		if idx := strings.Index(cleaned, ","); idx >= 0 {
			cleaned = strings.TrimSpace(cleaned[:idx])
		}
		if utf8.RuneCountInString(cleaned) < minCategoryLen {
			continue
		}
		lower := strings.ToLower(cleaned)
		if isPlaceName(lower, gazetteer) {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, cleaned)
	}
	return out
}

// isPlaceName reports whether the candidate is, or contains, a gazetteer
// entry.
func isPlaceName(lower string, gazetteer []string) bool {
	for _, place := range gazetteer {
		place = strings.ToLower(place)
		if lower == place || strings.Contains(lower, place) {
			return true
		}
	}
	return false
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
