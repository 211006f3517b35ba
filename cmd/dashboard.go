package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/echodeck/echodeck/config"
	"github.com/echodeck/echodeck/internal/integrations"
	"github.com/echodeck/echodeck/internal/log"
	"github.com/echodeck/echodeck/internal/oracle"
	"github.com/echodeck/echodeck/internal/output"
	"github.com/echodeck/echodeck/internal/session"
	"github.com/echodeck/echodeck/internal/tui"
)

// NewCmdDashboard creates the dashboard command.
func NewCmdDashboard(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the prioritized focus queue (same as bare echodeck)",
		Long: `Fetches items from all configured sources, classifies them with the
model, and shows the focus queue. Interactive when run in a terminal.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, opts)
		},
	}

	addDashboardFlags(cmd, opts)
	return cmd
}

// addDashboardFlags adds the dashboard-specific flags to a command.
func addDashboardFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format for non-interactive runs (table, json, markdown)")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")
	cmd.Flags().Var(newTUIFlag(opts), "tui", "Enable/disable interactive UI (default: auto-detect)")
}

// loadConfig initializes logging and loads the merged configuration.
func loadConfig(opts *Options) (*config.Config, error) {
	log.Initialize(opts.Verbosity, os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildSession wires a session from config: oracle client, integration
// fetcher and scoring weights. A missing API key is fatal here; nothing
// meaningful can render without the classifier.
func buildSession(cfg *config.Config) (*session.Session, *oracle.Client, error) {
	client, err := oracle.NewClient(cfg.GetAnthropicKey(), cfg.GetOracleSettings())
	if err != nil {
		return nil, nil, err
	}

	sess := session.New(session.Config{
		Credentials: cfg.GetCredentials(),
		Classifier:  client,
		Planner:     client,
		Fetcher:     integrations.NewFetcher(),
		Weights:     cfg.GetScoreWeights(),
	})
	return sess, client, nil
}

func resolveFormat(opts *Options, cfg *config.Config) output.Format {
	if opts.Format != "" {
		return output.Format(opts.Format)
	}
	return output.Format(cfg.DefaultFormat)
}

func runDashboard(cmd *cobra.Command, opts *Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	sess, _, err := buildSession(cfg)
	if err != nil {
		return err
	}

	if shouldUseTUI(opts) {
		// The TUI refreshes itself on startup.
		return tui.Run(sess)
	}

	if err := sess.Refresh(cmd.Context()); err != nil {
		return err
	}

	formatter := output.NewFormatter(resolveFormat(opts, cfg))
	if err := formatter.FormatState(sess.Snapshot(), os.Stdout); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return nil
}
