package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faizmokh/gymattend/internal/attendance"
	"github.com/faizmokh/gymattend/internal/ui"
	"github.com/faizmokh/gymattend/internal/version"
)

func newSummaryCommand(ctx context.Context, s *session) *cobra.Command {
	var (
		nameFlag  string
		dateFlag  string
		chartFlag bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Count visits per day in the order days first appear.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := s.collection(ctx)
			if err != nil {
				return err
			}

			records, err := client.List(ctx)
			if err != nil {
				return s.reportFailure(cmd, "error fetching attendance", err)
			}
			summary := attendance.Summarize(attendance.Filter(records, nameFlag, dateFlag))

			out := cmd.OutOrStdout()
			printSummary(out, summary)
			if chartFlag && len(summary) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, ui.RenderSummary(summary))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&nameFlag, "name", "", "Case-insensitive substring of the member name")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Calendar day in YYYY-MM-DD")
	cmd.Flags().BoolVar(&chartFlag, "chart", false, "Draw the bar chart below the counts")

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build metadata.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gymattend %s\n", version.Info())
		},
	}
}
