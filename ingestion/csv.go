package ingestion

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"searchprep/models"
)

// requiredColumns must all be present in the CSV header; the run fails
// before any network call when one is missing.
var requiredColumns = []string{"id", "name", "description"}

// ReadSections reads the whole CSV file into document records. The file is
// decoded as UTF-8 with an optional byte-order mark, the first row is the
// header, and every following row maps onto {id, name, description} by
// column name. A non-empty category is attached to every record.
func ReadSections(path string, category string) ([]models.Document, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(transform.NewReader(f, unicode.UTF8BOM.NewDecoder()))

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("CSV file '%s' is empty", path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, header, fmt.Errorf("CSV file '%s' is missing required column '%s'", path, name)
		}
	}

	var sections []models.Document
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, header, fmt.Errorf("failed to read CSV row: %w", err)
		}

		sections = append(sections, models.Document{
			ID:          record[columns["id"]],
			Name:        record[columns["name"]],
			Description: record[columns["description"]],
			Category:    category,
		})
	}

	return sections, header, nil
}
