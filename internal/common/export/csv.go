// Package export writes scraped records to the import-ready file formats.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/project-tico/td-scraper/internal/domain"
)

// utf8BOM makes spreadsheet apps detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes all records in the fixed column order, UTF-8 with BOM.
func WriteCSV(path string, jobs []*domain.Job) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(domain.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, job := range jobs {
		if err := w.Write(csvRow(job)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// csvRow renders one record in domain.Columns order. Booleans become 1/0,
// photo lists join with commas, description line breaks become CRLF.
func csvRow(j *domain.Job) []string {
	return []string{
		j.Title,
		crlf(j.Description),
		j.Category,
		j.JobType,
		j.Location,
		j.Address,
		j.Salary,
		j.SalaryType,
		j.MaxSalary,
		j.Experience,
		j.Qualification,
		j.CareerLevel,
		j.ExpiryDate,
		j.ApplicationDeadline,
		j.ApplyType,
		j.ApplyURL,
		j.ApplyEmail,
		boolFlag(j.Featured),
		boolFlag(j.Filled),
		boolFlag(j.Urgent),
		j.FeaturedImage,
		j.VideoURL,
		j.Tag,
		strings.Join(j.Photos, ","),
		j.Gender,
		j.MapLocation,
	}
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func crlf(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}
