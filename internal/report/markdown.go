package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/pdiddy/mention-scan/pkg/types"
)

// MarkdownWriter outputs the report in Markdown format, suitable for
// sharing in documentation or issue trackers.
//
// Design decision: we use the nao1215/markdown library for fluent,
// type-safe markdown generation (headings, tables, bullet lists). The
// library does not escape cell or list content, so every embedded name,
// snippet, and source identifier goes through escapeMarkdown first.
type MarkdownWriter struct {
	baseWriter
	cfg types.ReportConfig
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, cfg types.ReportConfig) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		cfg:        cfg,
	}
}

// Write renders the batch as Markdown. All records appear in input order;
// a zero-hit record gets an explicit "No match." line.
func (w *MarkdownWriter) Write(result *types.BatchResult) (int, error) {
	md := markdown.NewMarkdown(w.output)
	threshold := minMentions(w.cfg)

	md.H1("Contact Mentions Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Contacts searched", strconv.Itoa(result.Total())},
			{"Contacts with mentions", strconv.Itoa(result.Matched())},
			{"No match", strconv.Itoa(result.NoMatch())},
			{"Query failures", strconv.Itoa(result.Failed())},
		},
	})
	md.PlainText("")

	for _, rec := range result.Records {
		md.H2(escapeMarkdown(rec.Contact.FullName()))
		if meta := contactMeta(rec.Contact); meta != "" {
			md.PlainText(escapeMarkdown(meta))
		}

		switch {
		case rec.Outcome.Failed():
			md.PlainText("Query failed: " + escapeMarkdown(rec.Outcome.Err))
		case !rec.Outcome.Matched():
			md.PlainText("No match.")
		default:
			md.PlainTextf("%d mentions.", rec.Outcome.TotalHits)
			if rec.Outcome.TotalHits >= threshold && len(rec.Outcome.Hits) > 0 {
				md.PlainText("")
				md.BulletList(hitItems(rec.Outcome.Hits)...)
			}
		}
		md.PlainText("")
	}

	md.HorizontalRule()
	md.PlainText("Report generated by mention-scan.")

	return len(md.String()), md.Build()
}

// hitItems formats hits as single-line, escaped bullet entries.
func hitItems(hits []types.MatchHit) []string {
	items := make([]string, len(hits))
	for i, h := range hits {
		item := escapeMarkdown(flatten(h.Snippet))
		if h.SourceID != "" {
			item += " (" + escapeMarkdown(h.SourceID) + ")"
		}
		items[i] = item
	}
	return items
}

// flatten collapses all whitespace runs, including newlines, to single
// spaces so a snippet cannot break out of its list item.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"|", `\|`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
)

// escapeMarkdown neutralizes markdown and inline-HTML syntax in
// user-or-remote-supplied text.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
