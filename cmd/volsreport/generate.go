package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/volsreport/volsreport/internal/config"
	"github.com/volsreport/volsreport/internal/database"
	"github.com/volsreport/volsreport/internal/log"
	"github.com/volsreport/volsreport/internal/model"
	"github.com/volsreport/volsreport/internal/pipeline"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render the PDF report and the slide deck",
		Long: `Generate reads the dataset and writes the management documents:

- <base_name>.pdf   A4 landscape report with four tables and conclusions
- <base_name>.pptx  title slide and five content slides

With --xlsx and --markdown an Excel workbook and a Markdown summary are
written next to them. Every document is rendered before any file is
written, so a bad dataset never leaves partial output behind.

Examples:
  # Read data/input.json and write to output/
  volsreport generate

  # Use another dataset and output directory
  volsreport generate -i september.json -o reports/2025-09

  # Also write the workbook and record the run in the history database
  volsreport generate --xlsx --history`,
		Args: cobra.NoArgs,
		RunE: runGenerateCmd,
	}

	addGenerateFlags(cmd)
	return cmd
}

// addGenerateFlags registers the flags shared by the root and generate commands.
func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", config.DefaultInputPath,
		"Dataset JSON file")
	cmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir,
		"Directory the documents are written to (created if missing)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .volsreport.yaml in current or home directory)")

	cmd.Flags().Bool("xlsx", false, "Also write an Excel workbook")
	cmd.Flags().Bool("markdown", false, "Also write a Markdown summary")
	cmd.Flags().Bool("history", false, "Record the run in the history database")
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(cmd, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run, err := generate(ctx, cfg, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Готово: %s\n", strings.Join(run.Paths(), " "))
	return nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// newLogger returns a text logger on stderr, or a JSON one with --log-json.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	jsonLogs, err := cmd.Flags().GetBool("log-json")
	if err == nil && jsonLogs {
		return log.NewJSON(cmd.ErrOrStderr(), verbose)
	}
	return log.New(cmd.ErrOrStderr(), verbose)
}

// buildConfig creates a Config from the configuration file and the
// command flags. Flags given on the command line win over the file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	if err := applyConfigFile(cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		if cfg.InputPath, err = flags.GetString("input"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("output-dir") {
		if cfg.OutputDir, err = flags.GetString("output-dir"); err != nil {
			return nil, err
		}
	}

	for name, dst := range map[string]*bool{
		"xlsx":     &cfg.XLSX,
		"markdown": &cfg.Markdown,
		"history":  &cfg.History,
	} {
		if !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetBool(name); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// applyConfigFile loads the configuration file into cfg.
// If the user explicitly specified a path, a missing file is an error.
// Otherwise a missing file means built-in defaults.
func applyConfigFile(cfg *config.Config) error {
	path := config.FindConfigFile(cfg.ConfigFilePath)
	if path == "" {
		if cfg.ConfigFilePath != "" {
			return fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
		}
		return nil
	}

	file, err := config.LoadConfigFile(path)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return fmt.Errorf("configuration file not found: %s", path)
		}
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	file.Apply(cfg)
	return nil
}

// generate runs the default pipeline for cfg and returns the completed run.
func generate(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*model.Run, error) {
	var defaultOpts []pipeline.DefaultPipelineOption

	if cfg.History {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to open history database: %w", err)
		}
		defer closeQuietly(db, logger)

		logger.Debug("history database opened", "path", db.Path())
		defaultOpts = append(defaultOpts, pipeline.WithPipelineSaver(db))
	}

	p := pipeline.Default(cfg, []pipeline.Option{pipeline.WithLogger(logger)}, defaultOpts...)

	run := model.NewRun(cfg.InputPath)
	logger.Info("generating documents",
		"input", cfg.InputPath,
		"output", cfg.OutputDir,
		"steps", p.StepNames(),
	)
	if err := p.Execute(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// closeQuietly closes c and logs a failure instead of returning it.
func closeQuietly(c io.Closer, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Warn("failed to close", "error", err)
	}
}
