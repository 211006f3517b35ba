package cmd

import (
	"github.com/spf13/cobra"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "echodeck",
		Short: "AI-prioritized inbox dashboard",
		Long: `Echodeck aggregates messages from email, chat, issue tracking and
calendar sources, classifies them with a hosted language model, and
presents a single prioritized focus queue.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, opts)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Add dashboard flags to root so `echodeck` and `echodeck dashboard`
	// work identically
	addDashboardFlags(rootCmd, opts)

	// Register subcommands
	rootCmd.AddCommand(NewCmdDashboard(opts))
	rootCmd.AddCommand(NewCmdStream(opts))
	rootCmd.AddCommand(NewCmdPlan(opts))
	rootCmd.AddCommand(NewCmdServe(opts))
	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}
