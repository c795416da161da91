// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package contacts parses connections CSV exports into contact records.
//
// LinkedIn exports prepend a free-text "Notes" section before the real
// header row, so the loader scans forward until it finds a row naming both
// a first-name and a last-name column, then parses everything after it.
package contacts

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/mention-scan/pkg/types"
)

// ErrNoHeader is returned when no row in the input names both a first-name
// and a last-name column. It is the only loader error that aborts a batch.
var ErrNoHeader = errors.New("no header row with first/last name columns found")

// utf8BOM is the byte order mark some spreadsheet tools prepend to CSV exports.
const utf8BOM = "\uFEFF"

// LoadFile opens path and loads the contacts it contains.
func LoadFile(path string) ([]types.Contact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening contacts file: %w", err)
	}
	defer f.Close()

	cts, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cts, nil
}

// Load parses tabular input into contact records. Leading metadata lines
// before the header row are skipped. Rows missing either name field are
// skipped, not errored; duplicate names are preserved in input order.
// Load fails with ErrNoHeader only when no usable header row exists
// anywhere in the input.
func Load(r io.Reader) ([]types.Contact, error) {
	br := bufio.NewReader(r)

	cols, err := findHeader(br)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1

	var cts []types.Contact
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Only malformed rows are skippable; an underlying read
			// error repeats on every call and must abort instead.
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return nil, fmt.Errorf("reading contacts input: %w", err)
			}
			continue
		}

		first := strings.TrimSpace(field(row, cols.first))
		last := strings.TrimSpace(field(row, cols.last))
		if first == "" || last == "" {
			continue
		}

		cts = append(cts, types.Contact{
			FirstName: first,
			LastName:  last,
			Company:   strings.TrimSpace(field(row, cols.company)),
			Position:  strings.TrimSpace(field(row, cols.position)),
		})
	}
	return cts, nil
}

// findHeader scans lines until one parses as a header row naming both name
// columns and returns its column layout. Lines that merely mention the
// labels in running text (preamble notes) fail the parse check and the
// scan continues, so a real header later in the input is still found.
func findHeader(br *bufio.Reader) (columns, error) {
	first := true
	for {
		line, err := br.ReadString('\n')
		if first {
			line = strings.TrimPrefix(line, utf8BOM)
			first = false
		}
		if isHeaderLine(line) {
			if cols, ok := parseHeader(line); ok {
				return cols, nil
			}
		}
		if err == io.EOF {
			return columns{}, ErrNoHeader
		}
		if err != nil {
			return columns{}, fmt.Errorf("reading contacts input: %w", err)
		}
	}
}

// isHeaderLine reports whether line mentions both a first-name and a
// last-name column, case-insensitively. It is a cheap pre-filter;
// parseHeader decides whether the line really is a header.
func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "first name") && strings.Contains(lower, "last name")
}

// parseHeader parses a candidate line as CSV and reports whether its cells
// name both required columns exactly.
func parseHeader(line string) (columns, bool) {
	fields, err := csv.NewReader(strings.NewReader(line)).Read()
	if err != nil {
		return columns{}, false
	}
	cols := columnIndexes(fields)
	return cols, cols.first >= 0 && cols.last >= 0
}

type columns struct {
	first, last, company, position int
}

// columnIndexes locates the known columns in the header row. Extra columns
// are ignored; missing optional columns map to -1.
func columnIndexes(header []string) columns {
	cols := columns{first: -1, last: -1, company: -1, position: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "first name":
			cols.first = i
		case "last name":
			cols.last = i
		case "company":
			cols.company = i
		case "position":
			cols.position = i
		}
	}
	return cols
}

// field returns row[i], or "" when i is out of range or -1.
func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
