package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/pdiddy/mention-scan/pkg/types"
)

// topMentions caps the terminal summary table.
const topMentions = 20

// FormatSummary writes a human-readable terminal summary of the batch to
// w: the outcome counters plus a table of the most-mentioned contacts.
// This is progress output for the operator, not part of the report artifact.
func FormatSummary(result types.BatchResult, w io.Writer) {
	fmt.Fprintf(w, "\nBatch summary: %d searched, %d with mentions, %d no match, %d failed\n",
		result.Total(), result.Matched(), result.NoMatch(), result.Failed())

	var matched []types.RecordResult
	for _, rec := range result.Records {
		if rec.Outcome.Matched() {
			matched = append(matched, rec)
		}
	}
	if len(matched) == 0 {
		return
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Outcome.TotalHits > matched[j].Outcome.TotalHits
	})
	if len(matched) > topMentions {
		matched = matched[:topMentions]
	}

	fmt.Fprintln(w, "\nTop mentions:")
	for _, rec := range matched {
		fmt.Fprintf(w, "  %6d - %s\n", rec.Outcome.TotalHits, rec.Contact.FullName())
	}
}
