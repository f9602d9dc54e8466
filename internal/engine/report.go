package engine

import "github.com/phazegen/hgtscan/internal/domain/analysis"

// Assemble composes scanner output, score, tier and recommendations into
// one Result. Pure aggregation: it tallies, groups and copies, and never
// mutates its inputs.
func Assemble(sampleID string, seqLen int, hits []analysis.Hit, score int, tier analysis.Tier, recs []string) *analysis.Result {
	res := &analysis.Result{
		SampleID:       sampleID,
		SequenceLength: seqLen,
		RiskScore:      score,
		RiskLevel:      tier,
		Elements: analysis.DetectedElements{
			Plasmids:        []analysis.Hit{},
			Transposons:     []analysis.Hit{},
			ResistanceGenes: []analysis.Hit{},
		},
		Recommendations: append([]string(nil), recs...),
	}

	for _, h := range hits {
		switch h.Category {
		case analysis.CategoryPlasmid:
			res.Elements.Plasmids = append(res.Elements.Plasmids, h)
			res.Summary.PlasmidCount++
			if h.RiskCategory == analysis.RiskCategoryHigh {
				res.Summary.HighRiskPlasmids++
			}
		case analysis.CategoryTransposon:
			res.Elements.Transposons = append(res.Elements.Transposons, h)
			res.Summary.TransposonCount++
		case analysis.CategoryResistance:
			res.Elements.ResistanceGenes = append(res.Elements.ResistanceGenes, h)
			res.Summary.ResistanceCount++
		}
		res.Summary.TotalElements++
	}
	return res
}
