package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mention-scan/internal/contacts"
	"github.com/pdiddy/mention-scan/internal/report"
	"github.com/pdiddy/mention-scan/internal/scan"
	"github.com/pdiddy/mention-scan/internal/search"
	"github.com/pdiddy/mention-scan/pkg/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Search the corpus for every contact in a CSV export",
	Long: `Scan loads contacts from a connections CSV export, issues one exact-phrase
search per contact against the corpus API with a minimum delay between
requests, and writes a single report covering every contact: matched,
unmatched, and failed alike. A record-level query failure never aborts the
batch; it is recorded and shown inline.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringP("contacts", "c", "", "path to the connections CSV export (required)")
	scanCmd.Flags().StringP("output", "o", "", "report output path (default mentions-report.html)")
	scanCmd.Flags().String("format", "", "report format: html, markdown, json, or yaml (default: by output extension)")
	scanCmd.Flags().Duration("delay", 0, "minimum delay between API requests (default 250ms)")
	scanCmd.Flags().Duration("timeout", 0, "per-request timeout (default 30s)")
	scanCmd.Flags().Int("min-mentions", 0, "collapse hit details for contacts with fewer mentions (default 1)")
	scanCmd.Flags().String("api-url", "", "search API base URL")
	scanCmd.Flags().String("indexes", "", "comma-separated corpus indexes to search")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := scanConfig(cmd)
	if cfg.ContactsPath == "" {
		return fmt.Errorf("provide a contacts CSV with --contacts")
	}
	// Reject an unknown format before spending time on queries.
	if _, err := report.New(cfg.Report.Format, io.Discard, cfg.Report); err != nil {
		return err
	}

	cts, err := contacts.LoadFile(cfg.ContactsPath)
	if err != nil {
		return err
	}
	if len(cts) == 0 {
		return fmt.Errorf("no contacts found in %s: check the file format", cfg.ContactsPath)
	}
	fmt.Fprintf(os.Stderr, "Loaded %d contacts from %s\n", len(cts), cfg.ContactsPath)

	client := search.NewClient(cfg.Search)
	result, err := scan.Run(cmd.Context(), client, cts, os.Stdout)
	if err != nil {
		return err
	}

	report.FormatSummary(result, os.Stdout)

	if err := writeReport(result, cfg.Report, cfg.OutputPath); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "\nFull report saved to: %s\n", cfg.OutputPath)
	return nil
}

// scanConfig resolves the run configuration: package defaults, overridden
// by config-file values, overridden by flags.
func scanConfig(cmd *cobra.Command) types.ScanConfig {
	cfg := types.DefaultScanConfig()

	if v := viper.GetString("search.base_url"); v != "" {
		cfg.Search.BaseURL = v
	}
	if v := viper.GetString("search.indexes"); v != "" {
		cfg.Search.Indexes = v
	}
	if v := viper.GetDuration("search.request_delay"); v > 0 {
		cfg.Search.RequestDelay = v
	}
	if v := viper.GetDuration("search.timeout"); v > 0 {
		cfg.Search.Timeout = v
	}
	if v := viper.GetInt("report.min_mentions"); v > 0 {
		cfg.Report.MinMentions = v
	}
	if v := viper.GetString("report.pdf_base_url"); v != "" {
		cfg.Report.PDFBaseURL = v
	}
	if v := viper.GetString("output_path"); v != "" {
		cfg.OutputPath = v
	}

	cfg.ContactsPath, _ = cmd.Flags().GetString("contacts")
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.OutputPath = v
	}
	if v, _ := cmd.Flags().GetString("api-url"); v != "" {
		cfg.Search.BaseURL = v
	}
	if v, _ := cmd.Flags().GetString("indexes"); v != "" {
		cfg.Search.Indexes = v
	}
	if v, _ := cmd.Flags().GetDuration("delay"); v > 0 {
		cfg.Search.RequestDelay = v
	}
	if v, _ := cmd.Flags().GetDuration("timeout"); v > 0 {
		cfg.Search.Timeout = v
	}
	if v, _ := cmd.Flags().GetInt("min-mentions"); v > 0 {
		cfg.Report.MinMentions = v
	}

	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = viper.GetString("report.format")
	}
	cfg.Report.Format = formatFor(format, cfg.OutputPath)
	return cfg
}

// formatFor picks the report format from an explicit choice or, failing
// that, the output file extension.
func formatFor(format, outputPath string) string {
	if format != "" {
		return format
	}
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".md", ".markdown":
		return "markdown"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "html"
	}
}

// writeReport renders the batch to a temporary file in the destination
// directory and renames it into place once rendering succeeds, so a render
// or write failure never leaves a truncated report behind.
func writeReport(result types.BatchResult, cfg types.ReportConfig, destPath string) error {
	dir := filepath.Dir(destPath)

	tmp, err := os.CreateTemp(dir, ".mention-scan-*.tmp")
	if err != nil {
		return fmt.Errorf("creating report temp file: %w", err)
	}
	tmpPath := tmp.Name()

	w, err := report.New(cfg.Format, tmp, cfg)
	if err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}

	_, writeErr := w.Write(&result)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing report: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing report temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming report into place: %w", err)
	}
	return nil
}
