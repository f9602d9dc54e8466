package engine

import (
	"strings"

	"github.com/phazegen/hgtscan/internal/domain/analysis"
)

// score weights
const (
	plasmidBase     = 10
	plasmidHighRisk = 15
	plasmidIncBonus = 5

	transposonFlat = 8

	resistanceBase     = 15
	resistanceCritical = 20
	carbapenemBonus    = 25
	colistinBonus      = 30
)

// Score accumulates the risk score over a hit collection and clamps it to
// [0,100]. The sum depends only on the multiset of hits, never on their
// order.
func Score(hits []analysis.Hit) int {
	score := 0
	for _, h := range hits {
		switch h.Category {
		case analysis.CategoryPlasmid:
			score += plasmidBase
			if h.RiskCategory == analysis.RiskCategoryHigh {
				score += plasmidHighRisk
			}
			if strings.HasPrefix(h.Name, "Inc") {
				score += plasmidIncBonus
			}
		case analysis.CategoryTransposon:
			score += transposonFlat
		case analysis.CategoryResistance:
			score += resistanceBase
			if h.Critical {
				score += resistanceCritical
			}
			class := strings.ToLower(h.DrugClass)
			if strings.Contains(class, "carbapenem") {
				score += carbapenemBonus
			}
			if strings.Contains(class, "colistin") {
				score += colistinBonus
			}
		}
	}
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// TierFor maps a score onto the five-tier table, lower bounds inclusive.
func TierFor(score int) analysis.Tier {
	switch {
	case score >= 75:
		return analysis.TierCritical
	case score >= 50:
		return analysis.TierHigh
	case score >= 30:
		return analysis.TierMedium
	case score >= 10:
		return analysis.TierLow
	default:
		return analysis.TierMinimal
	}
}
