package analysis

import (
	"fmt"
	"time"
)

// ID tipe untuk Analysis
type AnalysisID string

// Category enum untuk detected elements
type Category string

const (
	CategoryPlasmid    Category = "plasmid"
	CategoryTransposon Category = "transposon"
	CategoryResistance Category = "resistance"
)

// Categories in fixed report order.
var Categories = []Category{CategoryPlasmid, CategoryTransposon, CategoryResistance}

// Tier enum untuk risk level
type Tier string

const (
	TierMinimal  Tier = "Minimal"
	TierLow      Tier = "Low"
	TierMedium   Tier = "Medium"
	TierHigh     Tier = "High"
	TierCritical Tier = "Critical"
)

// Status enum
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Plasmid risk category labels
const (
	RiskCategoryHigh   = "High"
	RiskCategoryMedium = "Medium"
)

// Hit is one match of a catalog rule against an input sequence. The same
// shape is used for pattern-scan hits and for hits translated from external
// annotation tools. Immutable once created.
type Hit struct {
	Category   Category `json:"category"`
	Name       string   `json:"name"`
	Start      int      `json:"start"`
	End        int      `json:"end"`
	Position   string   `json:"position"` // "start-end", half-open
	Length     int      `json:"length"`   // full match length, kept even when Matched is truncated
	Matched    string   `json:"sequence"`
	Confidence float64  `json:"confidence"`

	// category-specific classification, copied from the matching rule
	RiskCategory string `json:"risk_category,omitempty"` // plasmid: High | Medium
	ElementType  string `json:"element_type,omitempty"`  // transposon: Insertion Sequence | Transposon
	Family       string `json:"family,omitempty"`        // transposon family
	DrugClass    string `json:"drug_class,omitempty"`    // resistance
	Critical     bool   `json:"critical,omitempty"`      // resistance criticality flag
}

// PositionString renders a half-open match range the way reports expect it.
func PositionString(start, end int) string {
	return fmt.Sprintf("%d-%d", start, end)
}

// DetectedElements groups hits per category in fixed order.
type DetectedElements struct {
	Plasmids        []Hit `json:"plasmids"`
	Transposons     []Hit `json:"transposons"`
	ResistanceGenes []Hit `json:"resistance_genes"`
}

// Summary value object
type Summary struct {
	TotalElements    int `json:"total_elements"`
	PlasmidCount     int `json:"plasmid_count"`
	TransposonCount  int `json:"transposon_count"`
	ResistanceCount  int `json:"resistance_count"`
	HighRiskPlasmids int `json:"high_risk_plasmids"`
}

// Result is the pure output of one analysis: a function of (sequence,
// catalog) only. It carries no id, clock or status so re-analyzing the
// same sequence yields an identical value.
type Result struct {
	SampleID        string           `json:"sample_id"`
	SequenceLength  int              `json:"sequence_length"`
	Elements        DetectedElements `json:"detected_elements"`
	RiskScore       int              `json:"risk_score"`
	RiskLevel       Tier             `json:"risk_level"`
	Recommendations []string         `json:"recommendations"`
	Summary         Summary          `json:"summary"`
}

// Aggregate Root: Analysis, the persisted record wrapping a Result.
type Analysis struct {
	ID              AnalysisID       `json:"id"`
	SampleID        string           `json:"sample_id"`
	SequenceLength  int              `json:"sequence_length"`
	Status          Status           `json:"status"`
	RiskScore       int              `json:"risk_score"`
	RiskLevel       Tier             `json:"risk_level"`
	Elements        DetectedElements `json:"detected_elements"`
	Recommendations []string         `json:"recommendations"`
	Summary         Summary          `json:"summary"`
	ReportURL       string           `json:"report_url,omitempty"`
	Warnings        []string         `json:"warnings,omitempty"`
	Error           string           `json:"error,omitempty"`
	DurationMS      int64            `json:"duration_ms"`
	CreatedAt       time.Time        `json:"created_at"`
}

// PatternList is the catalog introspection shape: per-category rule names
// in definition order plus the reference sets used for classification.
type PatternList struct {
	CatalogVersion    int      `json:"catalog_version"`
	PlasmidPatterns   []string `json:"plasmid_patterns"`
	TransposonPatterns []string `json:"transposon_patterns"`
	ResistancePatterns []string `json:"resistance_patterns"`
	HighRiskReplicons []string `json:"high_risk_plasmids"`
	CriticalGenes     []string `json:"critical_genes"`
}
