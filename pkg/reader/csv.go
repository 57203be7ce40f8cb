// Package reader turns raw dataset exports into the ordered sequence
// of flat records the merge engine consumes. It is deliberately dumb
// plumbing: one record per row, source column name -> raw string value,
// schema fixed per dataset. All interpretation happens downstream.
package reader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Warning is a non-fatal issue encountered while reading a file, such
// as a row with a diverging column count.
type Warning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Result holds the parsed records alongside any warnings.
type Result struct {
	Records  []map[string]string `json:"records"`
	Warnings []Warning           `json:"warnings"`
}

// ReadFile reads and parses a delimited export from disk.
func ReadFile(path string, delimiter rune) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	result, err := Parse(data, delimiter)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return result, nil
}

// Parse parses delimited bytes into one map per row, keyed by the
// header row. Rows with too few columns are padded with empty values,
// rows with too many are truncated; both produce a warning rather than
// an error because real-world exports routinely carry ragged tails.
func Parse(data []byte, delimiter rune) (*Result, error) {
	decoded, _, err := DetectAndDecode(data)
	if err != nil {
		return nil, fmt.Errorf("encoding detection failed: %w", err)
	}

	r := csv.NewReader(bytes.NewReader(decoded))
	r.Comma = delimiter
	// Column-count handling is ours; quoting in the wild is sloppy.
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	headers, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty file: no header row found")
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}
	headerCount := len(headers)

	var records []map[string]string
	var warnings []Warning
	rowNum := 1

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++

		if err != nil {
			warnings = append(warnings, Warning{Row: rowNum, Message: fmt.Sprintf("parse error: %v", err)})
			continue
		}

		if len(row) != headerCount {
			if len(row) < headerCount {
				warnings = append(warnings, Warning{
					Row:     rowNum,
					Message: fmt.Sprintf("row has %d columns, expected %d; padding with empty values", len(row), headerCount),
				})
				padded := make([]string, headerCount)
				copy(padded, row)
				row = padded
			} else {
				warnings = append(warnings, Warning{
					Row:     rowNum,
					Message: fmt.Sprintf("row has %d columns, expected %d; truncating extra columns", len(row), headerCount),
				})
				row = row[:headerCount]
			}
		}

		record := make(map[string]string, headerCount)
		for i, h := range headers {
			record[h] = row[i]
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("file contains no data rows")
	}

	return &Result{Records: records, Warnings: warnings}, nil
}
