package normalizer

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/project-tico/td-scraper/internal/common/cleaner"
	"github.com/project-tico/td-scraper/internal/common/extractor"
	"github.com/project-tico/td-scraper/internal/common/jsonld"
	"github.com/project-tico/td-scraper/internal/config"
	"github.com/project-tico/td-scraper/internal/domain"
)

// Normalizer assembles normalized job records from parsed detail pages.
// Structured metadata writes first and is never overwritten; the HTML
// extractors only fill fields the metadata left empty.
type Normalizer struct {
	profile *config.Profile
	cleaner *cleaner.Cleaner
}

// NewNormalizer creates a normalizer for the given site profile
func NewNormalizer(profile *config.Profile) *Normalizer {
	return &Normalizer{
		profile: profile,
		cleaner: cleaner.NewCleaner(),
	}
}

// Normalize builds the record for one detail page. It always returns a
// full record; fields the page does not carry stay empty.
func (n *Normalizer) Normalize(pageURL string, doc *goquery.Document) *domain.Job {
	job := domain.NewJob(domain.SourceTrabajosDiarios)
	job.Tag = n.profile.RegionTag

	var structured []string
	if item, ok := jsonld.FindJobPosting(doc); ok {
		structured = n.applyStructured(job, item)
	}

	if job.Title == "" {
		job.Title = extractor.Title(doc)
	}
	if job.Description == "" {
		job.Description = extractor.Description(doc, n.profile.DescriptionSelectors)
	}
	if job.Location == "" {
		if loc := extractor.Location(doc); loc != "" {
			job.Location = loc
			job.Address = loc
		}
	}
	if job.Experience == "" {
		job.Experience = extractor.Experience(doc)
	}
	if job.Qualification == "" {
		job.Qualification = extractor.Qualification(doc)
	}
	if job.JobType == "" {
		if code := extractor.ContractType(doc); code != "" {
			job.JobType = n.profile.Vocabulary.EmploymentLabel(code)
		}
	}
	if job.Category == "" {
		job.Category = extractor.ResolveCategory(doc, extractor.CategorySignals{
			Title:      job.Title,
			Structured: structured,
		}, n.profile)
	}

	badges := extractor.DetectBadges(doc)
	job.Featured = badges.Featured
	job.Filled = badges.Filled
	job.Urgent = badges.Urgent

	if job.FeaturedImage == "" {
		job.FeaturedImage = extractor.FeaturedImage(doc, n.profile.BaseURL)
	}

	// Fixed terminal fields, set after everything else so no extractor
	// can shadow them
	job.ApplyType = n.profile.ApplyType
	job.ApplyURL = pageURL
	if job.MaxSalary == "" {
		job.MaxSalary = job.Salary
	}

	return job
}

// applyStructured copies the JobPosting metadata into the record and
// returns the category strings it declared, for the category resolver.
func (n *Normalizer) applyStructured(job *domain.Job, item map[string]any) []string {
	vocab := n.profile.Vocabulary

	job.Title = strings.TrimSpace(getString(item, "title"))
	if desc := getString(item, "description"); desc != "" {
		job.Description = n.cleaner.NormalizeDescription(desc)
	}
	if through := strings.TrimSpace(getString(item, "validThrough")); through != "" {
		job.ExpiryDate = through
		job.ApplicationDeadline = through
	}
	if et := strings.TrimSpace(getString(item, "employmentType")); et != "" {
		job.JobType = vocab.EmploymentLabel(et)
	}
	if edu := getMap(item, "educationRequirements"); edu != nil {
		job.Qualification = strings.TrimSpace(getString(edu, "credentialCategory"))
	}
	if exp := getMap(item, "experienceRequirements"); exp != nil {
		if months, ok := getNumber(exp, "monthsOfExperience"); ok {
			job.Experience = vocab.ExperienceFromMonths(months)
		}
	}
	if loc := getMap(item, "jobLocation"); loc != nil {
		if addr := getMap(loc, "address"); addr != nil {
			// Locality beats region; both mirror into address and the map pin
			place := strings.TrimSpace(getString(addr, "addressLocality"))
			if place == "" {
				place = strings.TrimSpace(getString(addr, "addressRegion"))
			}
			if place != "" {
				job.Location = place
				job.Address = place
				job.MapLocation = place
			}
		}
	}
	if salary := getMap(item, "baseSalary"); salary != nil {
		if value := getMap(salary, "value"); value != nil {
			if amount := scalarString(value["value"]); amount != "" {
				job.Salary = amount
			}
			if unit := strings.TrimSpace(getString(value, "unitText")); unit != "" {
				job.SalaryType = vocab.SalaryUnitLabel(unit)
			}
		}
	}

	var categories []string
	if occ := strings.TrimSpace(getString(item, "occupationalCategory")); occ != "" {
		categories = append(categories, occ)
	}
	if industry := strings.TrimSpace(getString(item, "industry")); industry != "" {
		categories = append(categories, industry)
	}
	return categories
}

// getString returns the first string value among the given keys
func getString(data map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := data[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// getMap returns a nested object, nil when the key holds anything else
func getMap(data map[string]any, key string) map[string]any {
	if v, ok := data[key].(map[string]any); ok {
		return v
	}
	return nil
}

// getNumber reads a numeric value that may arrive as a JSON number or a
// numeric string
func getNumber(data map[string]any, key string) (float64, bool) {
	switch v := data[key].(type) {
	case float64:
		return v, true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// scalarString renders a string-or-number value, keeping integral numbers
// free of a trailing ".0"
func scalarString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	}
	return ""
}
