package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for volsreport.
// Running it without a subcommand generates the documents, so the plain
// `volsreport` invocation reads data/input.json and writes to output/.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "volsreport",
		Short: "Generate management reports on unauthorized fiber-optic attachments",
		Long: `volsreport reads the unauthorized fiber-optic (ВОЛС) attachment dataset
and renders it into a PDF report (A4 landscape) and a PowerPoint deck.

Without a subcommand it behaves like 'volsreport generate'.`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerateCmd,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs to stderr as JSON lines")
	addGenerateFlags(cmd)

	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewPreviewCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
