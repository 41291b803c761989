// Package extractor pulls individual job fields out of parsed detail pages.
// Every function is a fallback used only when the page's structured
// metadata left the field empty, so each one tolerates missing markup and
// returns "" instead of failing.
package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var whitespace = regexp.MustCompile(`\s+`)

// collapse trims and folds runs of whitespace into single spaces.
func collapse(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// compactText returns the selection's text with whitespace collapsed.
func compactText(sel *goquery.Selection) string {
	return collapse(sel.Text())
}

// renderText flattens a selection to plain text, one trimmed fragment per
// line, skipping script and style content.
func renderText(sel *goquery.Selection) string {
	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, "\n")
}

func collectText(n *html.Node, parts *[]string) {
	switch n.Type {
	case html.TextNode:
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// labelParent finds the first text node matching re anywhere in the
// document and returns its parent element. The walk covers script
// contents too; callers guard against pathological matches with length
// checks on the extracted value.
func labelParent(doc *goquery.Document, re *regexp.Regexp) *goquery.Selection {
	var target *html.Node
	for _, root := range doc.Selection.Nodes {
		if n := findTextNode(root, re); n != nil {
			target = n.Parent
			break
		}
	}
	if target == nil {
		return nil
	}
	sel := doc.FindNodes(target)
	if sel.Length() == 0 {
		return nil
	}
	return sel
}

func findTextNode(n *html.Node, re *regexp.Regexp) *html.Node {
	if n.Type == html.TextNode && re.MatchString(n.Data) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findTextNode(c, re); found != nil {
			return found
		}
	}
	return nil
}
