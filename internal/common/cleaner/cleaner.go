package cleaner

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var lineBreakTags = regexp.MustCompile(`(?i)<br\s*/?>|</p>|</div>|</li>`)

// Cleaner strips HTML from field values using Bluemonday
type Cleaner struct {
	policy *bluemonday.Policy
}

// NewCleaner creates a cleaner that strips ALL HTML
func NewCleaner() *Cleaner {
	return &Cleaner{policy: bluemonday.StrictPolicy()}
}

// PlainText removes markup and decodes entities, leaving plain text
func (c *Cleaner) PlainText(s string) string {
	// Block-level closings become line breaks before the tags are dropped,
	// otherwise adjacent lines run together
	s = lineBreakTags.ReplaceAllString(s, "\n")
	return html.UnescapeString(c.policy.Sanitize(s))
}

// NormalizeDescription strips markup and canonicalizes line breaks: CRLF
// and CR become LF, every line is trimmed, blank lines survive. Applying
// it twice gives the same result as applying it once.
func (c *Cleaner) NormalizeDescription(s string) string {
	text := c.PlainText(s)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
