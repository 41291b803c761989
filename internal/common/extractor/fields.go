package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// Employment type codes shared with the structured-data vocabulary.
const (
	TypeFullTime  = "FULL_TIME"
	TypePartTime  = "PART_TIME"
	TypeTemporary = "TEMPORARY"
	TypeContract  = "CONTRACT"
)

var (
	reExperienceRow   = regexp.MustCompile(`(?i)Experiencia requerida`)
	reExperienceLabel = regexp.MustCompile(`(?i)Experiencia requerida:\s*`)
	reEducationLabel  = regexp.MustCompile(`(?i)Educación requerida:\s*`)
	reLocationLabel   = regexp.MustCompile(`(?i)Ubicación:\s*`)
	reContractTrigger = regexp.MustCompile(`(?i)Tipo de Contrato:|Tiempo Completo|Tiempo Parcial`)
)

// Label rows carry short values like "2 años" or "Secundaria"; anything
// longer means the matched parent was a whole paragraph, not a row.
const maxLabelValueLen = 50

// Title returns the first h1 text.
func Title(doc *goquery.Document) string {
	return compactText(doc.Find("h1").First())
}

// Experience reads the required-experience row. The primary form is a
// dt/dd definition list: the labelled span sits inside a dt and the value
// is the following dd. Pages without the list fall back to stripping the
// label out of its parent's text.
func Experience(doc *goquery.Document) string {
	span := doc.Find("span").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return reExperienceRow.MatchString(s.Text())
	}).First()
	if span.Length() > 0 {
		if dt := span.Closest("dt"); dt.Length() > 0 {
			if dd := dt.NextAllFiltered("dd").First(); dd.Length() > 0 {
				if text := compactText(dd); text != "" {
					return text
				}
			}
		}
	}
	return labelValue(doc, reExperienceLabel)
}

// Qualification reads the required-education row.
func Qualification(doc *goquery.Document) string {
	return labelValue(doc, reEducationLabel)
}

// labelValue strips the label from its parent's text and keeps the rest
// when it is short enough to be a row value.
func labelValue(doc *goquery.Document, label *regexp.Regexp) string {
	parent := labelParent(doc, label)
	if parent == nil {
		return ""
	}
	value := strings.TrimSpace(label.ReplaceAllString(compactText(parent), ""))
	if value == "" || utf8.RuneCountInString(value) >= maxLabelValueLen {
		return ""
	}
	return value
}

// ContractType detects the contract-type row and returns the employment
// code it implies, or "" when the page has no recognizable row. Phrase
// matching is case sensitive, following the site's label casing.
func ContractType(doc *goquery.Document) string {
	parent := labelParent(doc, reContractTrigger)
	if parent == nil {
		return ""
	}
	text := compactText(parent)
	switch {
	case strings.Contains(text, "Tiempo Completo") || strings.Contains(text, "Full Time"):
		return TypeFullTime
	case strings.Contains(text, "Tiempo Parcial") || strings.Contains(text, "Part Time"):
		return TypePartTime
	case strings.Contains(text, "Temporal"):
		return TypeTemporary
	case strings.Contains(text, "Por Contrato"):
		return TypeContract
	}
	return ""
}

// Location reads the location row and keeps only the first comma segment,
// dropping canton or district detail after it.
func Location(doc *goquery.Document) string {
	parent := labelParent(doc, reLocationLabel)
	if parent == nil {
		return ""
	}
	value := strings.TrimSpace(reLocationLabel.ReplaceAllString(compactText(parent), ""))
	if value == "" {
		return ""
	}
	if idx := strings.Index(value, ","); idx >= 0 {
		value = strings.TrimSpace(value[:idx])
	}
	return value
}
