package report

import (
	"bytes"
	"html/template"
	"io"
	"net/url"
	"strings"

	"github.com/pdiddy/mention-scan/pkg/types"
)

// HTMLWriter outputs a self-contained HTML report with inline styles.
//
// Design decision: we render through html/template rather than string
// concatenation because its contextual auto-escaping covers both element
// content and attribute values, which is exactly the injection surface a
// report full of remote-supplied snippets has.
type HTMLWriter struct {
	baseWriter
	cfg types.ReportConfig
}

// NewHTMLWriter creates an HTMLWriter that outputs to the given writer.
func NewHTMLWriter(output io.Writer, cfg types.ReportConfig) *HTMLWriter {
	return &HTMLWriter{
		baseWriter: newBaseWriter(output),
		cfg:        cfg,
	}
}

// Write renders the batch as HTML. Every record appears: matched records
// get a mention badge (and hit details at or above the MinMentions
// threshold), zero-hit records an explicit "no match" line, failed records
// the failure reason.
func (w *HTMLWriter) Write(result *types.BatchResult) (int, error) {
	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, w.view(result)); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}

type htmlView struct {
	Total   int
	Matched int
	NoMatch int
	Failed  int
	Records []htmlRecord
}

type htmlRecord struct {
	Name      string
	Meta      string
	TotalHits int
	Err       string
	ShowHits  bool
	Hits      []htmlHit
}

type htmlHit struct {
	Snippet  string
	SourceID string
	URL      string
}

func (w *HTMLWriter) view(result *types.BatchResult) htmlView {
	v := htmlView{
		Total:   result.Total(),
		Matched: result.Matched(),
		NoMatch: result.NoMatch(),
		Failed:  result.Failed(),
	}
	threshold := minMentions(w.cfg)

	for _, rec := range result.Records {
		hr := htmlRecord{
			Name:      rec.Contact.FullName(),
			Meta:      contactMeta(rec.Contact),
			TotalHits: rec.Outcome.TotalHits,
			Err:       rec.Outcome.Err,
		}
		if !rec.Outcome.Failed() && rec.Outcome.TotalHits >= threshold {
			hr.ShowHits = len(rec.Outcome.Hits) > 0
			for _, h := range rec.Outcome.Hits {
				hr.Hits = append(hr.Hits, htmlHit{
					Snippet:  h.Snippet,
					SourceID: h.SourceID,
					URL:      hitURL(w.cfg.PDFBaseURL, h.SourceID),
				})
			}
		}
		v.Records = append(v.Records, hr)
	}
	return v
}

// contactMeta formats the position/company line, e.g. "Engineer at Acme".
func contactMeta(c types.Contact) string {
	switch {
	case c.Position != "" && c.Company != "":
		return c.Position + " at " + c.Company
	case c.Position != "":
		return c.Position
	default:
		return c.Company
	}
}

// hitURL builds the corpus document link for a hit. The corpus publishes
// files under a different casing than the index reports ("dataset" vs
// "DataSet"), so the path is fixed up before escaping.
func hitURL(base, sourceID string) string {
	if base == "" || sourceID == "" {
		return ""
	}
	p := strings.ReplaceAll(sourceID, "dataset", "DataSet")
	escaped := strings.TrimPrefix((&url.URL{Path: p}).EscapedPath(), "/")
	return strings.TrimSuffix(base, "/") + "/" + escaped
}

var htmlTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Contact Mentions Report</title>
<style>
* { box-sizing: border-box; }
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; max-width: 1100px; margin: 0 auto; padding: 20px; background-color: #f5f5f5; }
h1 { color: #333; border-bottom: 2px solid #333; padding-bottom: 10px; }
.summary, .record { background: #fff; padding: 20px; margin-bottom: 20px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
.record-header { display: flex; justify-content: space-between; align-items: center; border-bottom: 1px solid #eee; padding-bottom: 10px; margin-bottom: 10px; }
.record-name { font-size: 1.3em; font-weight: bold; color: #333; }
.record-meta { color: #666; font-size: 0.9em; }
.hit-count { background: #e74c3c; color: white; padding: 4px 14px; border-radius: 20px; font-weight: bold; }
.no-match { color: #2e7d32; font-style: italic; }
.failed { color: #c0392b; }
.hit { background: #f9f9f9; padding: 12px; margin-bottom: 8px; border-radius: 4px; border-left: 3px solid #3498db; }
.hit-snippet { color: #444; font-size: 0.95em; margin-bottom: 6px; }
.hit-link { color: #3498db; text-decoration: none; font-size: 0.85em; }
.hit-link:hover { text-decoration: underline; }
</style>
</head>
<body>
<h1>Contact Mentions Report</h1>
<div class="summary">
<strong>Contacts searched:</strong> {{.Total}}<br>
<strong>Contacts with mentions:</strong> {{.Matched}}<br>
<strong>No match:</strong> {{.NoMatch}}<br>
<strong>Query failures:</strong> {{.Failed}}
</div>
{{range .Records}}<div class="record">
<div class="record-header">
<div>
<div class="record-name">{{.Name}}</div>
{{if .Meta}}<div class="record-meta">{{.Meta}}</div>
{{end}}</div>
{{if .Err}}<div class="failed">query failed: {{.Err}}</div>
{{else if .TotalHits}}<div class="hit-count">{{.TotalHits}} mentions</div>
{{else}}<div class="no-match">no match</div>
{{end}}</div>
{{if .ShowHits}}{{range .Hits}}<div class="hit">
<div class="hit-snippet">{{.Snippet}}</div>
{{if .URL}}<a class="hit-link" href="{{.URL}}">View document: {{.SourceID}}</a>
{{end}}</div>
{{end}}{{end}}</div>
{{end}}</body>
</html>
`))
