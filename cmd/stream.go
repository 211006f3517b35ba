package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/echodeck/echodeck/internal/model"
	"github.com/echodeck/echodeck/internal/output"
	"github.com/echodeck/echodeck/internal/stream"
)

// NewCmdStream creates the stream command.
func NewCmdStream(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "List raw inbox items across all sources",
		Long: `Fetches and classifies items, then lists the raw inbox stream.
Filter with --category and --source; filters combine.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStream(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (table, json, markdown)")
	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "Filter by category (Urgent, Important, Routine, Noise)")
	cmd.Flags().StringVarP(&opts.Source, "source", "s", "", "Filter by source (email, slack, jira, calendar)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Maximum number of items (0 = all)")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")
	return cmd
}

func runStream(cmd *cobra.Command, opts *Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	var f stream.Filter
	if opts.Category != "" {
		category, ok := model.ParseCategory(opts.Category)
		if !ok {
			return fmt.Errorf("invalid category %q", opts.Category)
		}
		f.Category = category
	}
	if opts.Source != "" {
		source, ok := model.ParseSource(opts.Source)
		if !ok {
			return fmt.Errorf("invalid source %q", opts.Source)
		}
		f.Source = source
	}

	sess, _, err := buildSession(cfg)
	if err != nil {
		return err
	}
	if err := sess.Refresh(cmd.Context()); err != nil {
		return err
	}

	items := sess.Stream(f)
	if opts.Limit > 0 && len(items) > opts.Limit {
		items = items[:opts.Limit]
	}

	formatter := output.NewFormatter(resolveFormat(opts, cfg))
	return formatter.FormatStream(items, os.Stdout)
}
