package attendance

import "strings"

const datePrefixLen = len("2006-01-02")

// DatePrefix returns the first ten characters of a date or date-time string.
// Shorter values are returned unchanged.
func DatePrefix(date string) string {
	if len(date) <= datePrefixLen {
		return date
	}
	return date[:datePrefixLen]
}

// Filter returns the records whose name contains searchName (case-insensitive)
// and whose date prefix equals filterDate. An empty filterDate matches every
// date. Source order is preserved.
func Filter(records []Record, searchName, filterDate string) []Record {
	needle := strings.ToLower(searchName)
	visible := make([]Record, 0, len(records))
	for _, record := range records {
		if !strings.Contains(strings.ToLower(record.Name), needle) {
			continue
		}
		if filterDate != "" && record.DateKey() != filterDate {
			continue
		}
		visible = append(visible, record)
	}
	return visible
}
