package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/faizmokh/gymattend/internal/attendance"
	"github.com/faizmokh/gymattend/internal/config"
	"github.com/faizmokh/gymattend/internal/logging"
	"github.com/faizmokh/gymattend/internal/ui"
	"github.com/faizmokh/gymattend/internal/version"
)

// session carries what every command needs to reach the attendance API.
type session struct {
	cfg    config.Config
	logger *zap.Logger
	apiURL string

	client *attendance.Client
}

func newSession(cfg config.Config, logger *zap.Logger) *session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &session{cfg: cfg, logger: logger, apiURL: cfg.APIURL}
}

// collection builds the API client on first use so flags are already parsed.
func (s *session) collection(ctx context.Context) (*attendance.Client, error) {
	if s.client != nil {
		return s.client, nil
	}
	client, err := attendance.NewClient(ctx, s.apiURL,
		attendance.WithToken(s.cfg.APIToken),
		attendance.WithTimeout(s.cfg.APITimeout),
	)
	if err != nil {
		return nil, err
	}
	s.client = client
	return client, nil
}

// NewRootCommand creates the top-level Cobra command to host subcommands and TUI launcher.
func NewRootCommand(ctx context.Context, cfg config.Config, logger *zap.Logger) *cobra.Command {
	s := newSession(cfg, logger)

	cmd := &cobra.Command{
		Use:     "gymattend",
		Short:   "Record and review gym attendance from your terminal.",
		Version: version.Info(),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := s.collection(ctx)
			if err != nil {
				return err
			}
			m := ui.NewModel(ctx, client, s.logger)
			defer m.Close()
			if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("run TUI: %w", err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&s.apiURL, "api-url", cfg.APIURL, "Attendance API base URL (scheme and host)")

	cmd.AddCommand(
		newListCommand(ctx, s),
		newAddCommand(ctx, s),
		newDeleteCommand(ctx, s),
		newSummaryCommand(ctx, s),
		newVersionCommand(),
	)

	return cmd
}

// ExecuteCommand loads configuration, opens the diagnostic log, and runs the root command.
func ExecuteCommand(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		OutputPath: cfg.LogPath,
	})
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = closeLog() }()

	logger.Debug("starting",
		zap.String("version", version.Version),
		zap.String("api_url", cfg.APIURL),
	)

	return NewRootCommand(ctx, cfg, logger).Execute()
}

// Main is a helper used by cmd/gymattend/main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	if err := ExecuteCommand(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
