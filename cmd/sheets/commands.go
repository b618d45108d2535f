package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dhruv-33/google-sheets/pkg/sheets"
	"github.com/dhruv-33/google-sheets/pkg/sheets/models"
	"github.com/dhruv-33/google-sheets/pkg/sheets/server"
	"github.com/dhruv-33/google-sheets/pkg/sheets/xlsx"
)

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive line editor (type help for commands)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := openWorkbook(cmd)
			if err != nil {
				return err
			}
			return runShell(cmd.InOrStdin(), cmd.OutOrStdout(), wb)
		},
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <command...>",
		Short: "Apply one shell command to the workbook",
		Example: `  sheets --data ./book run set A1 =SUM(B1:B3)
  sheets --data ./book run sheet add`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := openWorkbook(cmd)
			if err != nil {
				return err
			}
			act, err := parseLine(strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, err = execute(cmd.OutOrStdout(), wb, act)
			return err
		},
	}
}

func newExportCmd() *cobra.Command {
	var (
		format     string
		sheetName  string
		outputPath string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a sheet as CSV or JSON, or the workbook as XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := openWorkbook(cmd)
			if err != nil {
				return err
			}
			var w io.Writer = cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("failed to create output: %w", err)
				}
				defer f.Close()
				w = f
			}
			switch format {
			case server.FormatCSV:
				err = wb.ExportCSV(w, sheetName)
			case server.FormatJSON:
				err = wb.ExportJSON(w, sheetName)
			case server.FormatXLSX:
				if outputPath == "" {
					return errors.New("xlsx export needs --output")
				}
				err = wb.ExportXLSX(w)
			default:
				return fmt.Errorf("invalid format: %s (must be csv, json, or xlsx)", format)
			}
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", server.FormatCSV, "Export format: csv, json, xlsx")
	cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet to export (default: active sheet)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <input.xlsx>",
		Short: "Replace the workbook with the contents of an Excel file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]
			if _, err := os.Stat(inputPath); os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", inputPath)
			}
			wb, err := openWorkbook(cmd)
			if err != nil {
				return err
			}
			opts := wb.Options()
			data, err := xlsx.ReadFile(inputPath, models.Extent{Rows: opts.Rows, Cols: opts.Cols})
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			if err := wb.Load(data); err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			for _, name := range wb.Sheets() {
				d, _ := wb.Data(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d cells\n", name, len(d))
			}
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the workbook to browsers over a websocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := openWorkbook(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, addr, wb)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "HTTP service address")
	return cmd
}

func serve(ctx context.Context, addr string, wb *sheets.Workbook) error {
	hub := server.NewHub(wb, logrus.StandardLogger())
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.NewHandler(hub),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(ctx)
		return nil
	})
	g.Go(func() error {
		logrus.WithField("addr", addr).Info("Server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	})
	return g.Wait()
}
