package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Category resolution policies. "first" keeps the single best candidate,
// "join" keeps the full deduplicated list joined with commas.
const (
	CategoryPolicyFirst = "first"
	CategoryPolicyJoin  = "join"
)

// Profile describes the target board: where its listings live and the
// site-specific vocabulary the extractors match against. The defaults
// cover trabajosdiarios.co.cr; a YAML file can override any field.
type Profile struct {
	BaseURL        string   `yaml:"base_url"`
	ListingURLs    []string `yaml:"listing_urls"`
	RegionTag      string   `yaml:"region_tag"`
	ApplyType      string   `yaml:"apply_type"`
	CategoryPolicy string   `yaml:"category_policy"`

	// Place names that must never be accepted as a job category
	Gazetteer []string `yaml:"gazetteer"`
	// Title keyword groups checked in order, first hit wins
	CategoryKeywords []KeywordGroup `yaml:"category_keywords"`
	// Containers probed for the visible description, in order
	DescriptionSelectors []string `yaml:"description_selectors"`

	Vocabulary Vocabulary `yaml:"vocabulary"`
}

// KeywordGroup maps a display category to the title keywords that imply it.
type KeywordGroup struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Vocabulary holds the output labels for structured-data codes. Employment
// codes without a mapping pass through verbatim; salary units without a
// mapping are dropped.
type Vocabulary struct {
	EmploymentTypes map[string]string `yaml:"employment_types"`
	SalaryUnits     map[string]string `yaml:"salary_units"`
	YearSingular    string            `yaml:"year_singular"`
	YearPlural      string            `yaml:"year_plural"`
	MonthsWord      string            `yaml:"months_word"`
}

func (v Vocabulary) EmploymentLabel(code string) string {
	if label, ok := v.EmploymentTypes[code]; ok {
		return label
	}
	return code
}

func (v Vocabulary) SalaryUnitLabel(code string) string {
	return v.SalaryUnits[code]
}

// ExperienceFromMonths renders a monthsOfExperience value as human text,
// in years once the requirement reaches a full year.
func (v Vocabulary) ExperienceFromMonths(months float64) string {
	if months <= 0 {
		return ""
	}
	if months >= 12 {
		years := int(months / 12)
		if years == 1 {
			return fmt.Sprintf("1 %s", v.YearSingular)
		}
		return fmt.Sprintf("%d %s", years, v.YearPlural)
	}
	return fmt.Sprintf("%d %s", int(months), v.MonthsWord)
}

// DefaultProfile returns the built-in trabajosdiarios.co.cr profile.
func DefaultProfile() *Profile {
	return &Profile{
		BaseURL: "https://trabajosdiarios.co.cr",
		ListingURLs: []string{
			"https://trabajosdiarios.co.cr/ofertas-trabajo/en-san-jose",
			"https://trabajosdiarios.co.cr/ofertas-trabajo/en-alajuela",
			"https://trabajosdiarios.co.cr/ofertas-trabajo/en-cartago",
			"https://trabajosdiarios.co.cr/ofertas-trabajo/en-guanacaste",
			"https://trabajosdiarios.co.cr/ofertas-trabajo/en-heredia",
			"https://trabajosdiarios.co.cr/ofertas-trabajo/en-limon",
			"https://trabajosdiarios.co.cr/ofertas-trabajo/en-puntarenas",
		},
		RegionTag:      "Costa Rica",
		ApplyType:      "external",
		CategoryPolicy: CategoryPolicyFirst,
		Gazetteer: []string{
			"san josé", "san jose", "costa rica", "inicio", "home",
			"alajuela", "cartago", "heredia", "guanacaste", "puntarenas", "limón",
			"santa ana", "escazú", "curridabat", "desamparados", "tibás",
			"san pedro", "san francisco", "guadalupe", "moravia", "pavas",
			"goicoechea", "montes de oca", "san rafael", "san antonio",
			"pozos", "hatillo", "coronado", "santo domingo", "barva",
		},
		CategoryKeywords: []KeywordGroup{
			{Label: "Ventas", Keywords: []string{"vendedor", "ventas", "comercial", "ejecutivo de cuentas"}},
			{Label: "Cocina", Keywords: []string{"cocina", "cocinero", "chef", "ayudante de cocina", "auxiliar de cocina"}},
			{Label: "Restaurante", Keywords: []string{"restaurante", "mesero", "camarero", "barista"}},
			{Label: "Administración", Keywords: []string{"administrador", "administración", "administrativo", "asistente administrativo"}},
			{Label: "Recursos Humanos", Keywords: []string{"recursos humanos", "rrhh", "reclutador"}},
			{Label: "Contabilidad", Keywords: []string{"contador", "contabilidad", "auditor"}},
			{Label: "Tecnología", Keywords: []string{"programador", "desarrollador", "ingeniero de software", "it", "sistemas"}},
			{Label: "Marketing", Keywords: []string{"marketing", "publicidad", "mercadeo", "community manager"}},
			{Label: "Servicio Al Cliente", Keywords: []string{"servicio al cliente", "atención al cliente", "call center"}},
			{Label: "Logística", Keywords: []string{"logística", "almacén", "bodega", "chofer", "conductor"}},
			{Label: "Seguridad", Keywords: []string{"seguridad", "vigilante", "guardia"}},
			{Label: "Limpieza", Keywords: []string{"limpieza", "conserje", "mantenimiento"}},
			{Label: "Educación", Keywords: []string{"profesor", "maestro", "docente", "instructor"}},
			{Label: "Salud", Keywords: []string{"enfermero", "médico", "doctor", "farmacia"}},
			{Label: "Construcción", Keywords: []string{"construcción", "albañil", "maestro de obra", "soldador"}},
			{Label: "Diseño", Keywords: []string{"diseñador", "diseño gráfico", "diseño web"}},
		},
		DescriptionSelectors: []string{
			"div.job-description", "div.job-details", "div.description", "div.oferta-descripcion",
			"#job-description", ".descripcion", ".job-content",
		},
		Vocabulary: Vocabulary{
			EmploymentTypes: map[string]string{
				"FULL_TIME": "Tiempo Completo",
				"PART_TIME": "Tiempo parcial",
				"TEMPORARY": "Temporario",
				"CONTRACT":  "Contrato",
			},
			SalaryUnits: map[string]string{
				"MONTH": "mensual",
				"YEAR":  "anual",
				"HOUR":  "hora",
			},
			YearSingular: "año",
			YearPlural:   "años",
			MonthsWord:   "meses",
		},
	}
}

// LoadProfile reads a YAML profile over the defaults. An empty path keeps
// the defaults as is.
func LoadProfile(path string) (*Profile, error) {
	profile := DefaultProfile()
	if path == "" {
		return profile, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site profile: %w", err)
	}
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("parse site profile %s: %w", path, err)
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

func (p *Profile) Validate() error {
	if p.BaseURL == "" {
		return fmt.Errorf("site profile: base_url is required")
	}
	if len(p.ListingURLs) == 0 {
		return fmt.Errorf("site profile: at least one listing URL is required")
	}
	switch p.CategoryPolicy {
	case CategoryPolicyFirst, CategoryPolicyJoin:
	default:
		return fmt.Errorf("site profile: unknown category policy %q", p.CategoryPolicy)
	}
	return nil
}
