package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/project-tico/td-scraper/internal/domain"
)

// WriteJSON writes all records as an indented JSON array. HTML characters
// and non-ASCII text stay unescaped so the Spanish content remains
// readable in the file.
func WriteJSON(path string, jobs []*domain.Job) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(jobs); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
