package indexer

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "github.com/lib/pq"

	"github.com/project-tico/td-scraper/internal/domain"
)

// PostgresIndexer upserts records to PostgreSQL, keyed by apply_url so a
// re-scrape of the same posting updates the existing row.
type PostgresIndexer struct {
	db        *sql.DB
	tableName string
}

// NewPostgresIndexer creates a new PostgreSQL indexer
func NewPostgresIndexer(connStr string, tableName string) (*PostgresIndexer, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	indexer := &PostgresIndexer{
		db:        db,
		tableName: tableName,
	}

	if err := indexer.ensureTable(); err != nil {
		return nil, fmt.Errorf("ensure table: %w", err)
	}

	return indexer, nil
}

// ensureTable creates the records table if it doesn't exist
func (i *PostgresIndexer) ensureTable() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			apply_url TEXT PRIMARY KEY,
			title TEXT,
			description TEXT,
			category TEXT,
			job_type TEXT,
			location TEXT,
			address TEXT,
			salary TEXT,
			salary_type TEXT,
			max_salary TEXT,
			experience TEXT,
			qualification TEXT,
			career_level TEXT,
			expiry_date TEXT,
			application_deadline_date TEXT,
			apply_type TEXT,
			apply_email TEXT,
			featured BOOLEAN DEFAULT FALSE,
			filled BOOLEAN DEFAULT FALSE,
			urgent BOOLEAN DEFAULT FALSE,
			featured_image TEXT,
			video_url TEXT,
			tag TEXT,
			photos TEXT[],
			gender TEXT,
			map_location TEXT,
			source TEXT,
			crawled_at TIMESTAMP WITH TIME ZONE,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`, i.tableName)

	_, err := i.db.Exec(query)
	return err
}

func (i *PostgresIndexer) upsertQuery() string {
	return fmt.Sprintf(`
		INSERT INTO %s (
			apply_url, title, description, category, job_type,
			location, address, salary, salary_type, max_salary,
			experience, qualification, career_level, expiry_date, application_deadline_date,
			apply_type, apply_email, featured, filled, urgent,
			featured_image, video_url, tag, photos, gender,
			map_location, source, crawled_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25,
			$26, $27, $28, NOW()
		)
		ON CONFLICT (apply_url) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			job_type = EXCLUDED.job_type,
			location = EXCLUDED.location,
			address = EXCLUDED.address,
			salary = EXCLUDED.salary,
			salary_type = EXCLUDED.salary_type,
			max_salary = EXCLUDED.max_salary,
			experience = EXCLUDED.experience,
			qualification = EXCLUDED.qualification,
			career_level = EXCLUDED.career_level,
			expiry_date = EXCLUDED.expiry_date,
			application_deadline_date = EXCLUDED.application_deadline_date,
			apply_type = EXCLUDED.apply_type,
			apply_email = EXCLUDED.apply_email,
			featured = EXCLUDED.featured,
			filled = EXCLUDED.filled,
			urgent = EXCLUDED.urgent,
			featured_image = EXCLUDED.featured_image,
			video_url = EXCLUDED.video_url,
			tag = EXCLUDED.tag,
			photos = EXCLUDED.photos,
			gender = EXCLUDED.gender,
			map_location = EXCLUDED.map_location,
			source = EXCLUDED.source,
			crawled_at = EXCLUDED.crawled_at,
			updated_at = NOW()
	`, i.tableName)
}

func rowArgs(job *domain.Job) []any {
	photos := "{}"
	if len(job.Photos) > 0 {
		photos = "{" + strings.Join(job.Photos, ",") + "}"
	}
	return []any{
		job.ApplyURL, job.Title, job.Description, job.Category, job.JobType,
		job.Location, job.Address, job.Salary, job.SalaryType, job.MaxSalary,
		job.Experience, job.Qualification, job.CareerLevel, job.ExpiryDate, job.ApplicationDeadline,
		job.ApplyType, job.ApplyEmail, job.Featured, job.Filled, job.Urgent,
		job.FeaturedImage, job.VideoURL, job.Tag, photos, job.Gender,
		job.MapLocation, string(job.Source), job.CrawledAt,
	}
}

// Index upserts a single record
func (i *PostgresIndexer) Index(ctx context.Context, job *domain.Job) error {
	_, err := i.db.ExecContext(ctx, i.upsertQuery(), rowArgs(job)...)
	return err
}

// BulkIndex upserts multiple records inside one transaction
func (i *PostgresIndexer) BulkIndex(ctx context.Context, jobs []*domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, i.upsertQuery())
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, job := range jobs {
		if _, err := stmt.ExecContext(ctx, rowArgs(job)...); err != nil {
			log.Printf("Error indexing job %s: %v", job.ApplyURL, err)
			continue
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Close closes the database connection
func (i *PostgresIndexer) Close() error {
	return i.db.Close()
}
