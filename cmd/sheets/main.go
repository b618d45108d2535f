// Package main provides the CLI entry point for the spreadsheet editor.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dhruv-33/google-sheets/pkg/sheets"
	"github.com/dhruv-33/google-sheets/pkg/sheets/storage"
)

var (
	dataDir      string
	configPath   string
	logLevel     string
	logFormat    string
	recalc       string
	historyLimit int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheets",
		Short: "Edit spreadsheets from the terminal or a browser",
		Long: `sheets is a small multi-sheet spreadsheet engine with SUM, AVERAGE,
COUNT, MAX and MIN formulas, per-sheet undo/redo and CSV, JSON and XLSX export.`,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&dataDir, "data", "", "Directory holding the workbook (default: in-memory)")
	flags.StringVar(&configPath, "config", "", "YAML file with workbook options")
	flags.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "text", "Log format: text, json")
	flags.StringVar(&recalc, "recalc", "", "Recalculation mode: single-pass, fixed-point")
	flags.IntVar(&historyLimit, "history-limit", 0, "Undo steps kept per sheet (0: unbounded)")

	rootCmd.AddCommand(
		newShellCmd(),
		newRunCmd(),
		newExportCmd(),
		newImportCmd(),
		newServeCmd(),
	)
	return rootCmd
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(cmd.ErrOrStderr())

	switch strings.ToLower(logFormat) {
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format: %s (must be text or json)", logFormat)
	}
	return nil
}

// loadOptions builds workbook options from the config file and flags.
func loadOptions(cmd *cobra.Command) (sheets.Options, error) {
	opts := sheets.DefaultOptions()
	if configPath != "" {
		var err error
		if opts, err = sheets.LoadOptions(configPath); err != nil {
			return opts, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if cmd.Flags().Changed("recalc") {
		opts.Recalc = sheets.RecalcMode(recalc)
	}
	if cmd.Flags().Changed("history-limit") {
		opts.HistoryLimit = historyLimit
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	opts.Logger = logrus.StandardLogger()
	return opts, nil
}

// openWorkbook opens the workbook selected by --data.
func openWorkbook(cmd *cobra.Command) (*sheets.Workbook, error) {
	opts, err := loadOptions(cmd)
	if err != nil {
		return nil, err
	}
	if dataDir == "" {
		return sheets.New(opts), nil
	}
	store, err := storage.NewDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}
	logrus.WithField("dir", store.Root()).Debug("Using directory store")
	return sheets.Open(store, opts), nil
}
