package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	rePremiumClass = regexp.MustCompile(`(?i)premium`)
	reFilledWord   = regexp.MustCompile(`(?i)\b(llenad[oa]|filled)\b`)
	reUrgentWord   = regexp.MustCompile(`(?i)\b(urgente|urgent)\b`)
	reImageExt     = regexp.MustCompile(`(?i)\.(jpg|png|jpeg|webp)`)
)

// Badges holds the page-level status markers.
type Badges struct {
	Featured bool
	Filled   bool
	Urgent   bool
}

// DetectBadges scans for the premium badge and the filled/urgent words.
// The word scan covers the whole page text, script blocks included, so an
// incidental mention anywhere on the page flips the flag.
func DetectBadges(doc *goquery.Document) Badges {
	pageText := doc.Text()

	featured := rePremiumClass.MatchString(pageText)
	if !featured {
		doc.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if rePremiumClass.MatchString(s.AttrOr("class", "")) {
				featured = true
				return false
			}
			return true
		})
	}

	return Badges{
		Featured: featured,
		Filled:   reFilledWord.MatchString(pageText),
		Urgent:   reUrgentWord.MatchString(pageText),
	}
}

// FeaturedImage returns the first image with a photo extension, resolved
// against the site base. Relative paths without a leading slash are
// dropped, as are unresolvable forms.
func FeaturedImage(doc *goquery.Document, baseURL string) string {
	var out string
	doc.Find("img[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src := strings.TrimSpace(s.AttrOr("src", ""))
		if src == "" || !reImageExt.MatchString(src) {
			return true
		}
		switch {
		case strings.HasPrefix(src, "http"):
			out = src
		case strings.HasPrefix(src, "//"):
			out = "https:" + src
		case strings.HasPrefix(src, "/"):
			out = baseURL + src
		}
		return false
	})
	return out
}
