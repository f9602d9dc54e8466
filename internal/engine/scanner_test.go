package engine

import (
	"math"
	"strings"
	"testing"

	"github.com/phazegen/hgtscan/internal/catalog"
	"github.com/phazegen/hgtscan/internal/domain/analysis"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	return New(catalog.Default())
}

// A homopolymer matches nothing: zero hits, not an error
func TestScanNoMatches(t *testing.T) {
	e := testEngine(t)
	hits := e.Scan(strings.Repeat("A", 44))
	if len(hits) != 0 {
		t.Errorf("expected no hits, got %v", hits)
	}
}

func TestScanIS3Hit(t *testing.T) {
	e := testEngine(t)
	seq := strings.Repeat("T", 10) + "CAGGTA" + strings.Repeat("C", 10)

	hits := e.Scan(seq)
	if len(hits) != 1 {
		t.Fatalf("expected one hit, got %v", hits)
	}

	h := hits[0]
	if h.Category != analysis.CategoryTransposon || h.Name != "IS3" {
		t.Errorf("wrong rule matched: %+v", h)
	}
	if h.Start != 10 || h.End != 16 {
		t.Errorf("wrong offsets: start=%d end=%d", h.Start, h.End)
	}
	if h.Position != "10-16" {
		t.Errorf("wrong position string: %s", h.Position)
	}
	if h.Length != 6 || h.Matched != "CAGGTA" {
		t.Errorf("wrong match: len=%d seq=%s", h.Length, h.Matched)
	}
	if h.ElementType != "Insertion Sequence" || h.Family != "IS3 family" {
		t.Errorf("wrong classification: %+v", h)
	}

	want := 0.75 + 6.0/150.0
	if math.Abs(h.Confidence-want) > 1e-9 {
		t.Errorf("wrong confidence: got %f, want %f", h.Confidence, want)
	}
}

// Input is uppercased before matching
func TestScanLowercaseInput(t *testing.T) {
	e := testEngine(t)
	hits := e.Scan("ttttttttttcaggtacccccccccc")
	if len(hits) != 1 || hits[0].Matched != "CAGGTA" {
		t.Fatalf("lowercase input not normalized: %v", hits)
	}
}

// Adjacent occurrences produce non-overlapping hits in offset order
func TestScanNonOverlapping(t *testing.T) {
	e := testEngine(t)
	hits := e.Scan("CAGGTACAGGTA")
	if len(hits) != 2 {
		t.Fatalf("expected two hits, got %v", hits)
	}
	if hits[0].Start != 0 || hits[0].End != 6 || hits[1].Start != 6 || hits[1].End != 12 {
		t.Errorf("wrong offsets: %+v", hits)
	}
}

// Long matches are truncated for display but keep their full length
func TestScanDisplayTruncation(t *testing.T) {
	e := testEngine(t)
	seq := "ATG" + strings.Repeat("C", 15) + "AAA" + strings.Repeat("C", 10) + "TAA"

	hits := e.Scan(seq)
	if len(hits) != 1 {
		t.Fatalf("expected one IncF hit, got %v", hits)
	}

	h := hits[0]
	if h.Name != "IncF" || h.Category != analysis.CategoryPlasmid {
		t.Fatalf("wrong rule matched: %+v", h)
	}
	if h.Length != 34 {
		t.Errorf("full length not preserved: %d", h.Length)
	}
	if len(h.Matched) != 33 || !strings.HasSuffix(h.Matched, "...") {
		t.Errorf("display not truncated to 30+ellipsis: %q", h.Matched)
	}
	if h.Matched[:30] != seq[:30] {
		t.Errorf("truncated display should be the match prefix: %q", h.Matched)
	}
	if h.RiskCategory != analysis.RiskCategoryHigh {
		t.Errorf("IncF should classify as high risk, got %s", h.RiskCategory)
	}
	// length 34 pushes past the cap
	if h.Confidence != 0.95 {
		t.Errorf("confidence should hit the category cap, got %f", h.Confidence)
	}
}

// Hits are grouped plasmid, transposon, resistance regardless of position
func TestScanCategoryOrder(t *testing.T) {
	e := testEngine(t)
	// transposon signature before the plasmid one in sequence order
	seq := "CAGGTA" + "TTTT" + "ATG" + strings.Repeat("C", 15) + "AAA" + strings.Repeat("C", 10) + "TAA"

	hits := e.Scan(seq)
	if len(hits) != 2 {
		t.Fatalf("expected two hits, got %v", hits)
	}
	if hits[0].Category != analysis.CategoryPlasmid || hits[1].Category != analysis.CategoryTransposon {
		t.Errorf("hits not in category order: %+v", hits)
	}
}

// A non-high-risk plasmid classifies as medium
func TestScanMediumRiskPlasmid(t *testing.T) {
	e := testEngine(t)
	// RepA: ATG [ACGT]{18,} CAG [ACGT]{9,} TAA
	seq := "ATG" + strings.Repeat("C", 18) + "CAG" + strings.Repeat("C", 9) + "TAA"

	hits := e.Scan(seq)
	if len(hits) != 1 || hits[0].Name != "RepA" {
		t.Fatalf("expected one RepA hit, got %v", hits)
	}
	if hits[0].RiskCategory != analysis.RiskCategoryMedium {
		t.Errorf("RepA should classify as medium risk, got %s", hits[0].RiskCategory)
	}
}
