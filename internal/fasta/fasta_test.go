package fasta

import (
	"strings"
	"testing"
)

func TestParseMultiRecord(t *testing.T) {
	input := ">seq1 first isolate\nACGT\nACGT\n>seq2\nTTTT\n"
	records, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("failed in Parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected two records, got %d", len(records))
	}
	if records[0].Header != "seq1 first isolate" {
		t.Errorf("wrong header: %q", records[0].Header)
	}
	if records[0].Sequence != "ACGTACGT" {
		t.Errorf("multiline sequence not concatenated: %q", records[0].Sequence)
	}
	if records[1].Sequence != "TTTT" {
		t.Errorf("second record: %q", records[1].Sequence)
	}
}

// Raw sequence text without a header parses as one anonymous record
func TestParseHeaderless(t *testing.T) {
	records, err := Parse(strings.NewReader("ACGT\nTTTT\n"))
	if err != nil {
		t.Fatalf("failed in Parse: %v", err)
	}
	if len(records) != 1 || records[0].Header != "" || records[0].Sequence != "ACGTTTTT" {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestParseCRLFAndBlankLines(t *testing.T) {
	records, err := Parse(strings.NewReader(">s\r\nACGT\r\n\r\nTTTT\r\n"))
	if err != nil {
		t.Fatalf("failed in Parse: %v", err)
	}
	if len(records) != 1 || records[0].Sequence != "ACGTTTTT" {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestExtract(t *testing.T) {
	cases := []struct {
		name       string
		input      string
		wantSeq    string
		wantHeader string
	}{
		{"fasta", ">isolate-1\nACGT\nACGT\n", "ACGTACGT", "isolate-1"},
		{"raw", "ACGTACGT", "ACGTACGT", ""},
		{"raw trimmed", "  ACGT\n", "ACGT", ""},
		{"multi fasta concatenated", ">a\nACGT\n>b\nTTTT\n", "ACGTTTTT", "a"},
		{"empty", "", "", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			seq, header := Extract(c.input)
			if seq != c.wantSeq || header != c.wantHeader {
				t.Errorf("Extract(%q) = (%q, %q), want (%q, %q)", c.input, seq, header, c.wantSeq, c.wantHeader)
			}
		})
	}
}
