package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"pitos/adapters/excel"
	"pitos/adapters/numeric"
	"pitos/adapters/reader"
	"pitos/app"
	"pitos/internal/config"
	"pitos/internal/pitos"
	"pitos/ports"
)

// Input formats accepted by --format
const (
	formatAuto  = "auto"
	formatText  = "text"
	formatJSON  = "json"
	formatExcel = "xlsx"
)

type runOptions struct {
	format    string
	sheet     string
	jsonPath  string
	precision int
	workers   int
	summary   bool
}

func newRunCmd(cfg *config.Config) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Test every row of a file for uniformity",
		Long: `Run the PITOS test on each row of a numeric file and print one p-value per row.

A text file holds whitespace-separated rows; a single column is one
sample. JSON input is an array of numbers or an array of arrays, optionally
selected with --json-path. Excel input reads one sample per row of --sheet.

Example: pitos run samples.txt --precision 6`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("precision") {
				opts.precision = cfg.Output.Precision
			}
			if !cmd.Flags().Changed("workers") {
				opts.workers = cfg.Engine.Workers
			}
			if opts.precision < 0 {
				return fmt.Errorf("--precision must not be negative")
			}
			return runTest(cmd, cfg, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", formatAuto, "Input format: auto, text, json or xlsx")
	cmd.Flags().StringVar(&opts.sheet, "sheet", excel.DefaultSheet, "Worksheet to read for xlsx input")
	cmd.Flags().StringVar(&opts.jsonPath, "json-path", "", "gjson path selecting the data in JSON input")
	cmd.Flags().IntVar(&opts.precision, "precision", 18, "Digits after the decimal point")
	cmd.Flags().IntVar(&opts.workers, "workers", 1, "Goroutines evaluating the pairs of one sample")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Log a summary of the p-values to stderr")

	return cmd
}

func runTest(cmd *cobra.Command, cfg *config.Config, path string, opts runOptions) error {
	src, err := newSampleReader(path, opts)
	if err != nil {
		return err
	}

	rows, err := src.ReadRows(cmd.Context())
	if err != nil {
		return err
	}

	engine := pitos.NewEngine(numeric.NewGonumDistributions(), pitos.WithWorkers(opts.workers))
	svc := app.NewPITOSService(engine, cfg.Engine.BatchWorkers, slog.Default())

	report, err := svc.RunBatch(cmd.Context(), rows)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, p := range report.PValues {
		fmt.Fprintf(out, "%.*f\n", opts.precision, p)
	}

	if opts.summary {
		slog.Info("batch summary",
			"file", path,
			"rows", report.Summary.Rows,
			"min", report.Summary.Min,
			"median", report.Summary.Median,
			"max", report.Summary.Max,
			"rejected", report.Summary.Rejected,
			"alpha", report.Summary.Alpha)
	}
	return nil
}

// newSampleReader picks a reader from --format, falling back to the file extension.
func newSampleReader(path string, opts runOptions) (ports.SampleReader, error) {
	format := strings.ToLower(opts.format)
	if format == "" || format == formatAuto {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".xlsx", ".xlsm":
			format = formatExcel
		case ".json":
			format = formatJSON
		default:
			format = formatText
		}
	}

	switch format {
	case formatText:
		return reader.NewTextFileReader(path), nil
	case formatJSON:
		return reader.NewJSONFileReader(path, opts.jsonPath), nil
	case formatExcel:
		return excel.NewReader(path, opts.sheet), nil
	default:
		return nil, fmt.Errorf("unknown input format %q", opts.format)
	}
}
