package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/echodeck/echodeck/internal/output"
)

// NewCmdPlan creates the plan command.
func NewCmdPlan(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a daily plan from the top priorities",
		Long: `Fetches and classifies items, then asks the model to schedule the
top-priority tasks into a day plan.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (table, json, markdown)")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")
	return cmd
}

func runPlan(cmd *cobra.Command, opts *Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	sess, _, err := buildSession(cfg)
	if err != nil {
		return err
	}
	if err := sess.Refresh(cmd.Context()); err != nil {
		return err
	}

	plan, err := sess.Plan(cmd.Context())
	if err != nil {
		return err
	}

	formatter := output.NewFormatter(resolveFormat(opts, cfg))
	return formatter.FormatPlan(plan, os.Stdout)
}
