package engine

import (
	"math"
	"strings"

	"github.com/phazegen/hgtscan/internal/catalog"
	"github.com/phazegen/hgtscan/internal/domain/analysis"
)

// matched substrings longer than this are truncated for display;
// the full length is kept on the hit for scoring.
const displayLimit = 30

// Scan applies every catalog rule to the sequence and returns all
// non-overlapping matches, grouped by category in fixed order, then by
// rule definition order, then by match start offset. A rule that never
// matches contributes no hits; that is not an error.
func (e *Engine) Scan(sequence string) []analysis.Hit {
	seq := strings.ToUpper(sequence)

	var hits []analysis.Hit
	for _, cat := range e.cat.Categories() {
		conf := e.cat.Confidence(cat)
		for _, rule := range e.cat.Rules(cat) {
			for _, loc := range rule.Pattern.FindAllStringIndex(seq, -1) {
				hits = append(hits, makeHit(cat, rule, conf, seq, loc[0], loc[1]))
			}
		}
	}
	return hits
}

func makeHit(cat analysis.Category, rule catalog.Rule, conf catalog.Confidence, seq string, start, end int) analysis.Hit {
	length := end - start
	matched := seq[start:end]
	if len(matched) > displayLimit {
		matched = matched[:displayLimit] + "..."
	}

	h := analysis.Hit{
		Category:   cat,
		Name:       rule.Name,
		Start:      start,
		End:        end,
		Position:   analysis.PositionString(start, end),
		Length:     length,
		Matched:    matched,
		Confidence: confidence(conf, length),
	}

	switch cat {
	case analysis.CategoryPlasmid:
		h.RiskCategory = analysis.RiskCategoryMedium
		if rule.HighRisk {
			h.RiskCategory = analysis.RiskCategoryHigh
		}
	case analysis.CategoryTransposon:
		h.ElementType = rule.ElementType
		h.Family = rule.Family
	case analysis.CategoryResistance:
		h.DrugClass = rule.DrugClass
		h.Critical = rule.Critical
	}
	return h
}

// confidence rewards longer matches with diminishing returns, bounded by
// the category cap to avoid false certainty.
func confidence(c catalog.Confidence, length int) float64 {
	return math.Min(c.Base+float64(length)/c.Scale, c.Cap)
}
