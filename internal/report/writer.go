// Package report renders a batch result as a single self-contained
// document. Every user- or remote-supplied string (names, snippets, source
// identifiers) is escaped for the target format before embedding, so a
// hostile value in the corpus or the CSV cannot inject active content into
// the rendered artifact. Rendering is pure: the same batch always produces
// byte-identical output.
package report

import (
	"fmt"
	"io"

	"github.com/pdiddy/mention-scan/pkg/types"
)

// Writer renders one batch result to its configured destination.
// Implementations write complete documents, never partial ones: a render
// error means nothing useful was produced.
type Writer interface {
	// Write outputs the report and returns the number of bytes written.
	Write(result *types.BatchResult) (int, error)
}

// baseWriter provides the common output destination for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// New returns the Writer for format: html, markdown (md), json, or
// yaml (yml). An empty format selects html.
func New(format string, output io.Writer, cfg types.ReportConfig) (Writer, error) {
	switch format {
	case "", "html":
		return NewHTMLWriter(output, cfg), nil
	case "markdown", "md":
		return NewMarkdownWriter(output, cfg), nil
	case "json":
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case "yaml", "yml":
		return NewYAMLWriter(output), nil
	default:
		return nil, fmt.Errorf("unknown report format %q (want html, markdown, json, or yaml)", format)
	}
}

// minMentions normalizes the configured detail threshold.
func minMentions(cfg types.ReportConfig) int {
	if cfg.MinMentions > 0 {
		return cfg.MinMentions
	}
	return 1
}
