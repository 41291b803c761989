package indexer

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-tico/td-scraper/internal/domain"
)

func TestUpsertQuery(t *testing.T) {
	i := &PostgresIndexer{tableName: "trabajos_diarios_jobs"}
	query := i.upsertQuery()

	assert.Contains(t, query, "INSERT INTO trabajos_diarios_jobs")
	assert.Contains(t, query, "ON CONFLICT (apply_url) DO UPDATE")
	assert.NotContains(t, query, "$29", "updated_at uses NOW(), not a placeholder")

	// Every placeholder appears exactly once, each followed by a comma
	for n := 1; n <= 28; n++ {
		placeholder := "$" + strconv.Itoa(n) + ","
		assert.Equal(t, 1, strings.Count(query, placeholder), "placeholder $%d", n)
	}
}

func TestRowArgs(t *testing.T) {
	job := domain.NewJob(domain.SourceTrabajosDiarios)
	job.ApplyURL = "https://trabajosdiarios.co.cr/trabajo/123/cocinero"
	job.Title = "Cocinero"
	job.Photos = []string{"a.jpg", "b.jpg"}

	args := rowArgs(job)
	require.Len(t, args, 28)
	assert.Equal(t, job.ApplyURL, args[0])
	assert.Equal(t, "Cocinero", args[1])
	assert.Equal(t, "{a.jpg,b.jpg}", args[23], "photos render as an array literal")
	assert.Equal(t, "trabajosdiarios", args[26])
}

func TestRowArgsEmptyPhotos(t *testing.T) {
	args := rowArgs(domain.NewJob(domain.SourceTrabajosDiarios))
	require.Len(t, args, 28)
	assert.Equal(t, "{}", args[23])
}
