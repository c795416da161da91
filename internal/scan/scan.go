// Package scan drives the batch query pipeline: one paced lookup per
// contact, strictly sequential and in input order, with per-record
// failure isolation.
package scan

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/mention-scan/pkg/types"
)

// Searcher is the query surface the pipeline drives. *search.Client
// implements it; tests substitute scripted stubs.
type Searcher interface {
	Lookup(ctx context.Context, contact types.Contact) types.Outcome
}

// Run queries every contact in order, printing per-record progress to w,
// and returns the assembled batch. A record's query failure is recorded in
// its outcome and the batch continues. Run returns a non-nil error only
// when ctx is cancelled between records; the partial batch returned
// alongside it must not be rendered.
func Run(ctx context.Context, client Searcher, contacts []types.Contact, w io.Writer) (types.BatchResult, error) {
	outcomes := make([]types.Outcome, 0, len(contacts))
	for i, contact := range contacts {
		if err := ctx.Err(); err != nil {
			return Aggregate(contacts[:i], outcomes), err
		}

		outcome := client.Lookup(ctx, contact)
		if outcome.Failed() {
			fmt.Fprintf(w, "[%d/%d] %s -> error: %s\n", i+1, len(contacts), contact.FullName(), outcome.Err)
		} else {
			fmt.Fprintf(w, "[%d/%d] %s -> %d hits\n", i+1, len(contacts), contact.FullName(), outcome.TotalHits)
		}
		outcomes = append(outcomes, outcome)
	}
	return Aggregate(contacts, outcomes), nil
}

// Aggregate zips contacts with their outcomes preserving order and
// cardinality. Aggregation is structural only: hit content passes through
// untouched, and a contact with no outcome (cancelled run) is not included.
func Aggregate(contacts []types.Contact, outcomes []types.Outcome) types.BatchResult {
	n := len(contacts)
	if len(outcomes) < n {
		n = len(outcomes)
	}
	records := make([]types.RecordResult, n)
	for i := 0; i < n; i++ {
		records[i] = types.RecordResult{Contact: contacts[i], Outcome: outcomes[i]}
	}
	return types.BatchResult{Records: records}
}
