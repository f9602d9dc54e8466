package engine

import "github.com/phazegen/hgtscan/internal/domain/analysis"

// Advisory messages. These are the user-facing contract: text, order and
// the exclusivity of RecNoRisk with the category advisories must not
// change without versioning the report.
const (
	RecImmediateAction    = "IMMEDIATE ACTION: High spread risk detected"
	RecInfectionControl   = "Implement infection control measures"
	RecReportSurveillance = "Report to surveillance authorities"
	RecReviewTreatment    = "Critical resistance detected - review treatment protocols"
	RecMonitorSpread      = "Mobile genetic elements present - monitor for spread"
	RecTransposonActivity = "High transposon activity - increased mobility potential"
	RecNoRisk             = "No significant HGT risk detected - routine monitoring sufficient"
	RecConsultSpecialist  = "Consult with infection control specialist"
)

// Recommend maps a tier and hit set onto the ordered advisory list.
// Deterministic: identical inputs always yield the identical list.
func Recommend(tier analysis.Tier, hits []analysis.Hit) []string {
	var recs []string

	if tier == analysis.TierCritical || tier == analysis.TierHigh {
		recs = append(recs, RecImmediateAction, RecInfectionControl, RecReportSurveillance)
	}
	if anyCriticalResistance(hits) {
		recs = append(recs, RecReviewTreatment)
	}
	if countCategory(hits, analysis.CategoryPlasmid) > 0 {
		recs = append(recs, RecMonitorSpread)
	}
	if countCategory(hits, analysis.CategoryTransposon) > 2 {
		recs = append(recs, RecTransposonActivity)
	}
	if len(recs) == 0 {
		recs = append(recs, RecNoRisk)
	}
	return append(recs, RecConsultSpecialist)
}

func anyCriticalResistance(hits []analysis.Hit) bool {
	for _, h := range hits {
		if h.Category == analysis.CategoryResistance && h.Critical {
			return true
		}
	}
	return false
}

func countCategory(hits []analysis.Hit, cat analysis.Category) int {
	n := 0
	for _, h := range hits {
		if h.Category == cat {
			n++
		}
	}
	return n
}
