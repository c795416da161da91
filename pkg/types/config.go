package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout. It must be finite: one slow
	// record must not stall the whole batch.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "mention-scan/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the query client.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the search API endpoint.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Indexes names the corpus indexes to search, comma-separated.
	Indexes string `json:"indexes" yaml:"indexes"`

	// RequestDelay is the minimum time between successive outbound
	// queries, measured from request issue to request issue (default 250ms).
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`
}

// ReportConfig holds settings for report rendering.
type ReportConfig struct {
	// Format selects the report format: html, markdown, json, or yaml.
	Format string `json:"format" yaml:"format"`

	// MinMentions is the hit-count threshold below which a record's hit
	// details are collapsed to a status line only (default 1). Every record
	// still appears in the report regardless of this value.
	MinMentions int `json:"min_mentions" yaml:"min_mentions"`

	// PDFBaseURL is the base URL for per-hit corpus document links. Empty
	// disables links.
	PDFBaseURL string `json:"pdf_base_url" yaml:"pdf_base_url"`
}

// ScanConfig groups all settings for one pipeline run.
type ScanConfig struct {
	Search SearchConfig `json:"search" yaml:"search"`
	Report ReportConfig `json:"report" yaml:"report"`

	// ContactsPath is the connections CSV to load.
	ContactsPath string `json:"contacts_path" yaml:"contacts_path"`

	// OutputPath is where the report artifact is written.
	OutputPath string `json:"output_path" yaml:"output_path"`
}

// Defaults for one pipeline run.
const (
	DefaultSearchBaseURL = "https://analytics.dugganusa.com/api/v1/search"
	DefaultPDFBaseURL    = "https://www.justice.gov/epstein/files/"
	DefaultIndexes       = "epstein_files"
	DefaultRequestDelay  = 250 * time.Millisecond
	DefaultTimeout       = 30 * time.Second
	DefaultUserAgent     = "mention-scan/0.1"
	DefaultOutputPath    = "mentions-report.html"
)

// DefaultScanConfig returns a ScanConfig populated with the package defaults.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		Search: SearchConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   DefaultTimeout,
				UserAgent: DefaultUserAgent,
			},
			BaseURL:      DefaultSearchBaseURL,
			Indexes:      DefaultIndexes,
			RequestDelay: DefaultRequestDelay,
		},
		Report: ReportConfig{
			Format:      "html",
			MinMentions: 1,
			PDFBaseURL:  DefaultPDFBaseURL,
		},
		OutputPath: DefaultOutputPath,
	}
}
