package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-tico/td-scraper/internal/domain"
)

func sampleJob() *domain.Job {
	job := domain.NewJob(domain.SourceTrabajosDiarios)
	job.Title = "Cocinero"
	job.Description = "Línea uno\nLínea dos"
	job.Category = "Cocina"
	job.Salary = "450000"
	job.MaxSalary = "450000"
	job.ApplyType = "external"
	job.ApplyURL = "https://trabajosdiarios.co.cr/trabajo/123/cocinero"
	job.Featured = true
	job.Tag = "Costa Rica"
	job.Photos = []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}
	return job
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.csv")
	require.NoError(t, WriteCSV(path, []*domain.Job{sampleJob()}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	raw := string(data)

	assert.True(t, strings.HasPrefix(raw, "\xef\xbb\xbf"), "file should start with a UTF-8 BOM")
	assert.Contains(t, raw, "Línea uno\r\nLínea dos", "description line breaks should be CRLF on disk")

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(raw, "\xef\xbb\xbf")))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, domain.Columns, rows[0])

	row := rows[1]
	require.Len(t, row, len(domain.Columns))
	assert.Equal(t, "Cocinero", row[0])
	assert.Equal(t, "450000", row[6])
	assert.Equal(t, "1", row[17], "featured renders as 1")
	assert.Equal(t, "0", row[18], "filled renders as 0")
	assert.Equal(t, "https://cdn.example.com/a.jpg,https://cdn.example.com/b.jpg", row[23])
}

func TestWriteCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.csv")
	require.NoError(t, WriteCSV(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\xef\xbb\xbf")))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
	assert.Equal(t, domain.Columns, rows[0])
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	job := sampleJob()
	job.Description = "I+D & cocina"
	empty := domain.NewJob(domain.SourceTrabajosDiarios)
	require.NoError(t, WriteJSON(path, []*domain.Job{job, empty}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	raw := string(data)

	assert.Contains(t, raw, `"application_deadline_date"`)
	assert.Contains(t, raw, "I+D & cocina", "ampersands should stay readable")
	assert.NotContains(t, raw, `\u0026`)
	assert.Contains(t, raw, `"photos": []`, "empty photo lists encode as [], not null")

	var decoded []*domain.Job
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Cocinero", decoded[0].Title)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}, decoded[0].Photos)
	assert.Equal(t, domain.SourceTrabajosDiarios, decoded[1].Source)
}
