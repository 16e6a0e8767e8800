package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faizmokh/gymattend/internal/attendance"
)

func newListCommand(ctx context.Context, s *session) *cobra.Command {
	var (
		nameFlag string
		dateFlag string
		jsonFlag bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List attendance records, optionally filtered by name and date.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := s.collection(ctx)
			if err != nil {
				return err
			}

			records, err := client.List(ctx)
			if err != nil {
				return s.reportFailure(cmd, "error fetching attendance", err)
			}
			visible := attendance.Filter(records, nameFlag, dateFlag)

			if jsonFlag {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(visible)
			}
			printRecords(cmd.OutOrStdout(), visible)
			return nil
		},
	}

	cmd.Flags().StringVar(&nameFlag, "name", "", "Case-insensitive substring of the member name")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Calendar day in YYYY-MM-DD")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the matching records as JSON")

	return cmd
}

func newAddCommand(ctx context.Context, s *session) *cobra.Command {
	var (
		nameFlag string
		dateFlag string
		timeFlag string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a gym visit.",
		Long:  "add posts a new attendance record. The date defaults to today and the time to now; the name is required.",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}
			timeIn, err := resolveTime(timeFlag)
			if err != nil {
				return err
			}

			draft := attendance.Draft{Name: nameFlag, Date: date, TimeIn: timeIn}
			if !draft.Complete() {
				return fmt.Errorf("add attendance: %w", attendance.ErrIncompleteDraft)
			}

			client, err := s.collection(ctx)
			if err != nil {
				return err
			}
			created, err := client.Create(ctx, draft)
			if err != nil {
				return s.reportFailure(cmd, "error adding attendance", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", formatRecord(created))
			return nil
		},
	}

	cmd.Flags().StringVar(&nameFlag, "name", "", "Member name")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Visit date in YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&timeFlag, "time", "", "Check-in time in HH:MM (default: current time)")

	return cmd
}

func newDeleteCommand(ctx context.Context, s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an attendance record by id.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := s.collection(ctx)
			if err != nil {
				return err
			}

			id := args[0]
			if err := client.Delete(ctx, id); err != nil {
				return s.reportFailure(cmd, "error deleting attendance", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted attendance record %s\n", id)
			return nil
		},
	}

	return cmd
}
