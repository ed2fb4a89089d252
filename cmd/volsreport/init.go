package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/volsreport/volsreport/internal/config"
)

//go:embed templates/volsreport.yaml templates/input.json
var templates embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new volsreport configuration file",
		Long: `Initialize creates a new .volsreport.yaml configuration file in the current
directory.

The generated file documents every option with its default value. With
--with-sample a sample dataset is written to data/input.json as well, so
'volsreport generate' can be tried right away.

Examples:
  # Create .volsreport.yaml in current directory
  volsreport init

  # Also write a sample dataset
  volsreport init --with-sample

  # Force overwrite existing files
  volsreport init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing files")
	cmd.Flags().Bool("with-sample", false,
		"Also write a sample dataset to "+config.DefaultInputPath)
	cmd.Flags().String("sample-path", config.DefaultInputPath,
		"Path of the sample dataset written with --with-sample")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	withSample, err := cmd.Flags().GetBool("with-sample")
	if err != nil {
		return err
	}
	samplePath, err := cmd.Flags().GetString("sample-path")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if err := writeTemplate("templates/volsreport.yaml", outputPath, force); err != nil {
		return err
	}
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)

	if withSample {
		if err := writeTemplate("templates/input.json", samplePath, force); err != nil {
			return err
		}
		fmt.Fprintf(out, "Created sample dataset: %s\n", samplePath)
	}

	fmt.Fprintln(out, "\nEdit the configuration to set:")
	fmt.Fprintln(out, "  - the dataset path and output directory")
	fmt.Fprintln(out, "  - the organization printed on the title slide")
	fmt.Fprintln(out, "  - companion outputs and run history")

	return nil
}

// writeTemplate copies an embedded template to path.
// An existing file is only replaced when force is set.
func writeTemplate(name, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file already exists: %s (use -f to overwrite)", path)
		}
	}

	content, err := templates.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read template %s: %w", name, err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
