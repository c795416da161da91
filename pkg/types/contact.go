package types

// Contact is one name record loaded from a connections CSV export.
// Identity is positional: duplicates in the input are preserved and never
// merged. Contacts are immutable after loading.
type Contact struct {
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	Company   string `json:"company,omitempty" yaml:"company,omitempty"`
	Position  string `json:"position,omitempty" yaml:"position,omitempty"`
}

// FullName returns the query form of the name: first and last joined by a
// single space.
func (c Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// MatchHit is one reported occurrence of a contact name in the remote corpus.
type MatchHit struct {
	// SourceID identifies the corpus document the hit came from (the
	// file path reported by the search API).
	SourceID string `json:"source_id" yaml:"source_id"`

	// Snippet is a short display excerpt around the match.
	Snippet string `json:"snippet" yaml:"snippet"`
}

// Outcome is the result of exactly one query for one contact. An empty Err
// means the query succeeded, possibly with zero hits; a non-empty Err means
// the query failed at the transport, status, or decoding layer and no hit
// information is available.
type Outcome struct {
	Hits []MatchHit `json:"hits,omitempty" yaml:"hits,omitempty"`

	// TotalHits is the corpus-wide occurrence count reported by the API,
	// which may exceed len(Hits) when the API truncates hit details.
	TotalHits int `json:"total_hits" yaml:"total_hits"`

	Err string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the query itself failed.
func (o Outcome) Failed() bool { return o.Err != "" }

// Matched reports whether the query succeeded and found at least one hit.
func (o Outcome) Matched() bool { return o.Err == "" && o.TotalHits > 0 }

// RecordResult pairs a contact with its query outcome.
type RecordResult struct {
	Contact Contact `json:"contact" yaml:"contact"`
	Outcome Outcome `json:"outcome" yaml:"outcome"`
}

// BatchResult is the ordered outcome of one pipeline run: one record per
// loaded contact, in input order. No record is dropped, including records
// whose query failed.
type BatchResult struct {
	Records []RecordResult `json:"records" yaml:"records"`
}

// Total returns the number of records in the batch.
func (r BatchResult) Total() int { return len(r.Records) }

// Matched returns the number of records with at least one hit.
func (r BatchResult) Matched() int {
	n := 0
	for _, rec := range r.Records {
		if rec.Outcome.Matched() {
			n++
		}
	}
	return n
}

// NoMatch returns the number of records whose query succeeded with zero hits.
func (r BatchResult) NoMatch() int {
	n := 0
	for _, rec := range r.Records {
		if !rec.Outcome.Failed() && !rec.Outcome.Matched() {
			n++
		}
	}
	return n
}

// Failed returns the number of records whose query failed.
func (r BatchResult) Failed() int {
	n := 0
	for _, rec := range r.Records {
		if rec.Outcome.Failed() {
			n++
		}
	}
	return n
}

// HasFailures reports whether any record's query failed.
func (r BatchResult) HasFailures() bool { return r.Failed() > 0 }
