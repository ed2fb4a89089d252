package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/volsreport/volsreport/internal/config"
	"github.com/volsreport/volsreport/internal/dataset"
	"github.com/volsreport/volsreport/internal/pipeline"
	"github.com/volsreport/volsreport/internal/report"
)

// NewPreviewCmd creates the preview command.
func NewPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the report content in the terminal",
		Long: `Preview loads the dataset and prints the sections of the report as plain
text, without rendering any document. Use it to check the figures before
generating.

Examples:
  # Print the preview of data/input.json
  volsreport preview

  # Include the risk distribution and the conclusions
  volsreport preview -v

  # Print the dataset as JSON
  volsreport preview --json

  # Print the preview and save the dataset as JSON
  volsreport preview --save snapshot.json`,
		Args: cobra.NoArgs,
		RunE: runPreviewCmd,
	}

	cmd.Flags().StringP("input", "i", config.DefaultInputPath,
		"Dataset JSON file")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .volsreport.yaml in current or home directory)")
	cmd.Flags().BoolP("json", "j", false,
		"Print the dataset as indented JSON instead of text")
	cmd.Flags().Bool("show-empty", true,
		"Show sections without rows")
	cmd.Flags().StringP("save", "s", "",
		"Also write the dataset as JSON to this file")

	return cmd
}

// runPreviewCmd executes the preview command.
func runPreviewCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	showEmpty, err := cmd.Flags().GetBool("show-empty")
	if err != nil {
		return err
	}
	savePath, err := cmd.Flags().GetString("save")
	if err != nil {
		return err
	}

	rec, err := dataset.Load(cfg.InputPath)
	if err != nil {
		return err
	}

	var w report.Writer
	if jsonOutput {
		w = report.NewJSONWriter(cmd.OutOrStdout(), report.WithPrettyPrint())
	} else {
		w = report.NewSimpleWriter(cmd.OutOrStdout(),
			report.WithShowEmpty(showEmpty),
			report.WithVerbose(cfg.Verbose),
			report.WithContent(pipeline.ContentOptions(cfg)),
		)
	}

	if savePath != "" {
		if dir := filepath.Dir(savePath); dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
		}
		f, err := os.Create(savePath) //nolint:gosec // User-provided output path is intentional
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", savePath, err)
		}
		defer f.Close()

		w = report.NewMultiWriter(w, report.NewJSONWriter(f, report.WithPrettyPrint()))
	}

	if _, err := w.Write(rec); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return nil
}
