// Package roster loads the developer table (name, tier, region) from CSV.
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"LaunchTracker/internal/domain"
)

const (
	columnName   = "Brand Name"
	columnTier   = "Tier"
	columnRegion = "Main Region"
)

// nameAliases are accepted in place of columnName.
var nameAliases = []string{columnName, "Brand"}

// Load opens path and reads it with Read. A missing file yields domain.ErrRosterMissing.
func Load(path string) ([]domain.Developer, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrRosterMissing, path)
		}
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses a roster CSV with a header row. Columns are matched case-insensitively.
func Read(r io.Reader) ([]domain.Developer, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &domain.SchemaError{Missing: []string{columnName, columnTier, columnRegion}}
		}
		return nil, &domain.ParseError{Source: "roster", Err: err}
	}

	index := indexHeader(header)
	nameIdx := lookup(index, nameAliases...)
	tierIdx := lookup(index, columnTier)
	regionIdx := lookup(index, columnRegion)

	var missing []string
	if nameIdx < 0 {
		missing = append(missing, columnName)
	}
	if tierIdx < 0 {
		missing = append(missing, columnTier)
	}
	if regionIdx < 0 {
		missing = append(missing, columnRegion)
	}
	if len(missing) > 0 {
		return nil, &domain.SchemaError{Missing: missing}
	}

	var developers []domain.Developer
	seen := map[string]int{}
	for row := 2; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.ParseError{Source: "roster", Err: err}
		}
		if blank(record) {
			continue
		}

		name := field(record, nameIdx)
		if name == "" {
			return nil, &domain.SchemaError{Row: row, Reason: "empty developer name"}
		}
		key := strings.ToLower(name)
		if first, dup := seen[key]; dup {
			return nil, &domain.SchemaError{Row: row, Reason: fmt.Sprintf("duplicate developer %s (first listed on row %d)", name, first)}
		}
		seen[key] = row

		tier, err := domain.ParseTier(field(record, tierIdx))
		if err != nil {
			return nil, &domain.SchemaError{Row: row, Reason: err.Error()}
		}

		developers = append(developers, domain.Developer{
			Name:   name,
			Tier:   tier,
			Region: field(record, regionIdx),
		})
	}

	return developers, nil
}

func indexHeader(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, col := range header {
		key := normalize(col)
		if _, ok := index[key]; !ok {
			index[key] = i
		}
	}
	return index
}

func lookup(index map[string]int, names ...string) int {
	for _, name := range names {
		if i, ok := index[normalize(name)]; ok {
			return i
		}
	}
	return -1
}

func normalize(col string) string {
	col = strings.TrimPrefix(col, "\ufeff")
	return strings.ToLower(strings.Join(strings.Fields(col), " "))
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
