package repository

import (
	"fmt"
	"strings"
)

// createHeaderMap maps each expected column to its index in header. Matching ignores case,
// surrounding whitespace and a leading byte order mark.
func createHeaderMap(header []string, expectedHeader []string) (map[string]int, error) {
	columnMap := make(map[string]int, len(expectedHeader))

	for _, column := range expectedHeader {
		found := false
		for i, field := range header {
			field = strings.TrimSpace(strings.TrimPrefix(field, "\ufeff"))
			if strings.EqualFold(column, field) {
				columnMap[column] = i
				found = true
				break
			}
		}

		if !found {
			return nil, fmt.Errorf("required field '%s' not found in CSV header", column)
		}
	}

	return columnMap, nil
}
