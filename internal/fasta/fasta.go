// Package fasta contains minimal helpers to read FASTA formatted input.
// Parsing is intentionally simple and conservative: header lines start
// with '>', sequence lines are concatenated as-is.
package fasta

import (
	"bufio"
	"io"
	"strings"
)

// Record is a single FASTA record.
type Record struct {
	Header   string
	Sequence string
}

// Parse reads FASTA records from r.
func Parse(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var records []Record
	var current *Record
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			if current != nil {
				records = append(records, *current)
			}
			current = &Record{Header: strings.TrimSpace(line[1:])}
			continue
		}
		if current == nil {
			// headerless input: treat everything as one anonymous record
			current = &Record{}
		}
		current.Sequence += line
	}
	if current != nil {
		records = append(records, *current)
	}
	return records, scanner.Err()
}

// Extract accepts either FASTA text or a raw sequence and returns the
// flattened sequence plus the first header (empty for raw input). Records
// of a multi-FASTA are concatenated, matching how the analyzer treats an
// uploaded file as one sample.
func Extract(content string) (sequence, header string) {
	records, err := Parse(strings.NewReader(content))
	if err != nil || len(records) == 0 {
		return strings.TrimSpace(content), ""
	}
	var b strings.Builder
	for _, rec := range records {
		b.WriteString(rec.Sequence)
	}
	return b.String(), records[0].Header
}
