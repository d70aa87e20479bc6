// Package main provides the CLI entry point for ordersplit.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/internal/batch"
	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/internal/config"
	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/internal/logging"
	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit"
	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/models"
	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/output"
	"github.com/x-e-n-o-m-a-n/Table-XLSX-Parser/pkg/ordersplit/parser"
	"go.uber.org/zap"
)

var (
	configPath string
	logLevel   string

	mode       string
	force      bool
	jsonOutput bool
	pretty     bool

	jobs   int
	suffix string

	format       string
	cols         string
	keep         bool
	noSkipHeader bool
	sheetName    string
	outputPath   string

	cfg    *config.Config
	logger = zap.NewNop()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

func reportError(w io.Writer, err error) {
	if kind := ordersplit.Kind(err); kind != "" {
		fmt.Fprintf(w, "Error (%s): %v\n", kind, err)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ordersplit",
		Short: "Split xlsx order sheets into one worksheet per order",
		Long: `ordersplit reads every worksheet of an xlsx workbook, groups data rows by
the order identifier in column G and writes a new workbook with one
worksheet per order.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newSplitCmd(), newSplitDirCmd(), newConvertCmd())
	return rootCmd
}

func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		loaded.Log.Level = logLevel
		if err := loaded.Validate(); err != nil {
			return err
		}
	}
	l, err := logging.New(loaded.Log)
	if err != nil {
		return err
	}
	cfg, logger = loaded, l
	return nil
}

func newSplitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split INPUT OUTPUT",
		Short: "Split one workbook by order identifier",
		Args:  cobra.ExactArgs(2),
		RunE:  runSplit,
	}
	cmd.Flags().StringVar(&mode, "mode", "", "Identifier mode: plain, order-operation (default from config)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing output file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the summary as JSON")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func splitOptions(cmd *cobra.Command) (ordersplit.Options, error) {
	opts := ordersplit.DefaultOptions()
	opts.Mode = ordersplit.Mode(cfg.Split.Mode)
	if cmd.Flags().Changed("mode") {
		opts.Mode = ordersplit.Mode(mode)
	}
	if !opts.Mode.Valid() {
		return opts, fmt.Errorf("invalid mode: %s (must be plain or order-operation)", opts.Mode)
	}
	opts.Overwrite = cfg.Split.Overwrite || force
	opts.Logger = logger
	return opts, nil
}

func runSplit(cmd *cobra.Command, args []string) error {
	opts, err := splitOptions(cmd)
	if err != nil {
		return err
	}

	summary, err := ordersplit.Split(args[0], args[1], opts)
	if err != nil {
		return err
	}
	return printSummary(cmd.OutOrStdout(), summary)
}

func printSummary(w io.Writer, summary *models.SplitSummary) error {
	if !jsonOutput {
		return output.WriteSummary(w, summary)
	}
	data, err := output.ToJSON(summary, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func newSplitDirCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split-dir IN_DIR OUT_DIR",
		Short: "Split every workbook in a directory",
		Args:  cobra.ExactArgs(2),
		RunE:  runSplitDir,
	}
	cmd.Flags().StringVar(&mode, "mode", "", "Identifier mode: plain, order-operation (default from config)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing output files")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Concurrent splits (default from config)")
	cmd.Flags().StringVar(&suffix, "suffix", "", "Output file name suffix (default from config)")
	return cmd
}

func runSplitDir(cmd *cobra.Command, args []string) error {
	opts, err := splitOptions(cmd)
	if err != nil {
		return err
	}
	runner := &batch.Runner{Jobs: cfg.Batch.Jobs, Logger: logger}
	if cmd.Flags().Changed("jobs") {
		runner.Jobs = jobs
	}
	sfx := cfg.Batch.Suffix
	if cmd.Flags().Changed("suffix") {
		sfx = suffix
	}

	planned, err := batch.Plan(args[0], args[1], sfx)
	if err != nil {
		return err
	}
	if len(planned) == 0 {
		return fmt.Errorf("no .xlsx files in %s", args[0])
	}

	runner.Split = func(input, out string) (*models.SplitSummary, error) {
		return ordersplit.Split(input, out, opts)
	}
	results, err := runner.Run(cmd.Context(), planned)

	w := cmd.OutOrStdout()
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "FAIL %s: %v\n", res.Job.Input, res.Err)
			continue
		}
		fmt.Fprintf(w, "OK   %s -> %s (%d sheets, %d rows, %d skipped)\n",
			res.Job.Input, res.Summary.OutputPath, res.Summary.SheetsCreated,
			res.Summary.RowsExported, res.Summary.SkippedInvalidRows)
	}
	if err != nil {
		return err
	}
	if failed := batch.Failed(results); failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert INPUT",
		Short: "Export one worksheet as CSV or XML",
		Args:  cobra.ExactArgs(1),
		RunE:  runConvert,
	}
	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv, xml")
	cmd.Flags().StringVar(&cols, "cols", "", "Comma-separated 1-based columns to drop (or keep with --keep)")
	cmd.Flags().BoolVar(&keep, "keep", false, "Export only the columns listed in --cols")
	cmd.Flags().BoolVar(&noSkipHeader, "no-skip-header", false, "Include the first row")
	cmd.Flags().StringVar(&sheetName, "sheet", "", "Worksheet to export (default: first)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func parseColumns(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid column %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	var write func(io.Writer, models.Sheet, output.ExportOptions) error
	switch format {
	case "csv":
		write = output.WriteCSV
	case "xml":
		write = output.WriteXML
	default:
		return fmt.Errorf("invalid format: %s (must be csv or xml)", format)
	}

	columns, err := parseColumns(cols)
	if err != nil {
		return err
	}
	opts := output.ExportOptions{Columns: columns, Keep: keep, SkipHeader: !noSkipHeader}

	wb, err := parser.ReadWorkbook(args[0], logger)
	if err != nil {
		return &ordersplit.ReadError{Path: args[0], Err: err}
	}
	sheet := wb.Sheets[0]
	if sheetName != "" {
		found := false
		for _, s := range wb.Sheets {
			if s.Name == sheetName {
				sheet, found = s, true
				break
			}
		}
		if !found {
			return fmt.Errorf("sheet %q not found in %s", sheetName, args[0])
		}
	}

	if outputPath == "" {
		return write(cmd.OutOrStdout(), sheet, opts)
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := write(f, sheet, opts); err != nil {
		f.Close()
		return errors.Join(err, os.Remove(outputPath))
	}
	return f.Close()
}
