package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	require.NoError(t, p.Validate())
	assert.Len(t, p.ListingURLs, 7, "one listing per province")
	assert.Equal(t, CategoryPolicyFirst, p.CategoryPolicy)
	assert.Equal(t, "Costa Rica", p.RegionTag)
	assert.Equal(t, "external", p.ApplyType)
	assert.NotEmpty(t, p.Gazetteer)
	assert.NotEmpty(t, p.CategoryKeywords)
	assert.NotEmpty(t, p.DescriptionSelectors)
}

func TestEmploymentLabel(t *testing.T) {
	v := DefaultProfile().Vocabulary
	assert.Equal(t, "Tiempo Completo", v.EmploymentLabel("FULL_TIME"))
	assert.Equal(t, "Tiempo parcial", v.EmploymentLabel("PART_TIME"))
	assert.Equal(t, "Temporario", v.EmploymentLabel("TEMPORARY"))
	assert.Equal(t, "Contrato", v.EmploymentLabel("CONTRACT"))
	assert.Equal(t, "INTERNSHIP", v.EmploymentLabel("INTERNSHIP"), "unknown codes pass through")
}

func TestSalaryUnitLabel(t *testing.T) {
	v := DefaultProfile().Vocabulary
	assert.Equal(t, "mensual", v.SalaryUnitLabel("MONTH"))
	assert.Equal(t, "anual", v.SalaryUnitLabel("YEAR"))
	assert.Equal(t, "hora", v.SalaryUnitLabel("HOUR"))
	assert.Equal(t, "", v.SalaryUnitLabel("WEEK"), "unknown units drop")
}

func TestExperienceFromMonths(t *testing.T) {
	v := DefaultProfile().Vocabulary
	tests := []struct {
		months float64
		want   string
	}{
		{0, ""},
		{-3, ""},
		{6, "6 meses"},
		{11, "11 meses"},
		{12, "1 año"},
		{18, "1 año"},
		{24, "2 años"},
		{30, "2 años"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, v.ExperienceFromMonths(tt.months), "months=%v", tt.months)
	}
}

func TestLoadProfileEmptyPath(t *testing.T) {
	p, err := LoadProfile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile().BaseURL, p.BaseURL)
}

func TestLoadProfileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	body := `
region_tag: Nicaragua
category_policy: join
listing_urls:
  - https://example.com/ofertas
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	p, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "Nicaragua", p.RegionTag)
	assert.Equal(t, CategoryPolicyJoin, p.CategoryPolicy)
	assert.Equal(t, []string{"https://example.com/ofertas"}, p.ListingURLs)

	// Keys the file does not set keep their defaults
	assert.Equal(t, "https://trabajosdiarios.co.cr", p.BaseURL)
	assert.NotEmpty(t, p.Gazetteer)
}

func TestLoadProfileBadPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("category_policy: longest\n"), 0o644))
	_, err := LoadProfile(path)
	assert.Error(t, err)
}

func TestLoadProfileMissingFile(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
