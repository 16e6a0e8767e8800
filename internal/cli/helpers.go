package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/faizmokh/gymattend/internal/attendance"
)

// now is swapped in tests.
var now = time.Now

func resolveDate(dateFlag string) (string, error) {
	if dateFlag == "" {
		return now().In(time.Local).Format("2006-01-02"), nil
	}

	parsed, err := time.ParseInLocation("2006-01-02", dateFlag, time.Local)
	if err != nil {
		return "", fmt.Errorf("parse date: %w", err)
	}
	return parsed.Format("2006-01-02"), nil
}

func resolveTime(timeFlag string) (string, error) {
	if timeFlag == "" {
		return now().In(time.Local).Format("15:04"), nil
	}

	parsed, err := time.Parse("15:04", timeFlag)
	if err != nil {
		return "", fmt.Errorf("parse time: %w", err)
	}
	return parsed.Format("15:04"), nil
}

func formatRecord(record attendance.Record) string {
	id := record.ID
	if id == "" {
		id = "-"
	}
	date := record.DateKey()
	if date == "" {
		date = "----------"
	}
	timeIn := record.TimeIn
	if timeIn == "" {
		timeIn = "--:--"
	}
	return fmt.Sprintf("%s  %s  %s (id %s)", date, timeIn, record.Name, id)
}

func printRecords(out io.Writer, records []attendance.Record) {
	if len(records) == 0 {
		fmt.Fprintln(out, "No attendance records")
		return
	}
	for i, record := range records {
		fmt.Fprintf(out, "%d. %s\n", i+1, formatRecord(record))
	}
}

func printSummary(out io.Writer, summary attendance.Summary) {
	if len(summary) == 0 {
		fmt.Fprintln(out, "No visits")
		return
	}
	for _, dc := range summary {
		fmt.Fprintf(out, "%s  %d visit%s\n", dc.Date, dc.Count, plural(dc.Count))
	}
	fmt.Fprintf(out, "Total: %d visit%s\n", summary.Total(), plural(summary.Total()))
}

// reportFailure writes the failure to the diagnostic log and returns it for
// the command to surface.
func (s *session) reportFailure(cmd *cobra.Command, message string, err error) error {
	s.logger.Error(message,
		zap.String("command", cmd.Name()),
		zap.Error(err),
		zap.String("request_id", attendance.RequestID(err)),
		zap.Int("status", attendance.StatusCode(err)),
	)
	return fmt.Errorf("%s: %w", message, err)
}

func plural(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
