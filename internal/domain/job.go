package domain

import "time"

// Job is the normalized record produced for every scraped posting. String
// fields hold "" when the page carried no value; the full shape is always
// emitted so downstream imports see a stable schema.
type Job struct {
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Category            string   `json:"category"`
	JobType             string   `json:"job_type"`
	Location            string   `json:"location"`
	Address             string   `json:"address"`
	Salary              string   `json:"salary"`
	SalaryType          string   `json:"salary_type"`
	MaxSalary           string   `json:"max_salary"`
	Experience          string   `json:"experience"`
	Qualification       string   `json:"qualification"`
	CareerLevel         string   `json:"career_level"`
	ExpiryDate          string   `json:"expiry_date"`
	ApplicationDeadline string   `json:"application_deadline_date"`
	ApplyType           string   `json:"apply_type"`
	ApplyURL            string   `json:"apply_url"`
	ApplyEmail          string   `json:"apply_email"`
	Featured            bool     `json:"featured"`
	Filled              bool     `json:"filled"`
	Urgent              bool     `json:"urgent"`
	FeaturedImage       string   `json:"featured_image"`
	VideoURL            string   `json:"video_url"`
	Tag                 string   `json:"tag"`
	Photos              []string `json:"photos"`
	Gender              string   `json:"gender"`
	MapLocation         string   `json:"map_location"`

	Source    JobSource `json:"source"`
	CrawledAt time.Time `json:"crawled_at"`
}

// NewJob returns a record with collection fields initialized so encoders
// emit [] rather than null.
func NewJob(source JobSource) *Job {
	return &Job{
		Source:    source,
		Photos:    []string{},
		CrawledAt: time.Now().UTC(),
	}
}

// Columns is the fixed export column order shared by the CSV writer and the
// Postgres indexer.
var Columns = []string{
	"title",
	"description",
	"category",
	"job_type",
	"location",
	"address",
	"salary",
	"salary_type",
	"max_salary",
	"experience",
	"qualification",
	"career_level",
	"expiry_date",
	"application_deadline_date",
	"apply_type",
	"apply_url",
	"apply_email",
	"featured",
	"filled",
	"urgent",
	"featured_image",
	"video_url",
	"tag",
	"photos",
	"gender",
	"map_location",
}

// JobSource identifies the board a record was scraped from.
type JobSource string

const (
	SourceTrabajosDiarios JobSource = "trabajosdiarios"
)
