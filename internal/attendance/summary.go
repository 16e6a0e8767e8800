package attendance

// DateCount is the number of visits recorded for one calendar day.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Summary lists visit counts per date in order of first appearance.
type Summary []DateCount

// Summarize tallies records by date prefix. Dates appear in the order they are
// first seen, which is also the left-to-right order of the summary chart.
func Summarize(records []Record) Summary {
	positions := make(map[string]int, len(records))
	summary := Summary{}
	for _, record := range records {
		key := record.DateKey()
		if pos, ok := positions[key]; ok {
			summary[pos].Count++
			continue
		}
		positions[key] = len(summary)
		summary = append(summary, DateCount{Date: key, Count: 1})
	}
	return summary
}

// Counts returns the summary as an unordered map.
func (s Summary) Counts() map[string]int {
	counts := make(map[string]int, len(s))
	for _, dc := range s {
		counts[dc.Date] = dc.Count
	}
	return counts
}

// Total returns the number of visits across all dates.
func (s Summary) Total() int {
	total := 0
	for _, dc := range s {
		total += dc.Count
	}
	return total
}
