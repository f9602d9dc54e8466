// Package engine is the detection-and-scoring core: a pure function of
// (sequence, catalog). It does no I/O, holds no mutable state and is safe
// for concurrent use from any number of goroutines.
package engine

import (
	"github.com/phazegen/hgtscan/internal/catalog"
	"github.com/phazegen/hgtscan/internal/domain/analysis"
)

// Engine runs sequence analyses against one immutable catalog.
type Engine struct {
	cat *catalog.Catalog
}

// New creates an Engine over the given catalog.
func New(cat *catalog.Catalog) *Engine { return &Engine{cat: cat} }

// Catalog exposes the engine's rule set for boundary introspection.
func (e *Engine) Catalog() *catalog.Catalog { return e.cat }

// Analyze runs the full pipeline: scan, score, tier, recommend, assemble.
// Callers wanting to inject hits from other sources (the annotation
// adapter) use Scan plus AnalyzeHits instead.
func (e *Engine) Analyze(sequence, sampleID string) *analysis.Result {
	return e.AnalyzeHits(sampleID, len(sequence), e.Scan(sequence))
}

// AnalyzeHits runs score, tier, recommend and assemble over an already
// collected hit set.
func (e *Engine) AnalyzeHits(sampleID string, seqLen int, hits []analysis.Hit) *analysis.Result {
	score := Score(hits)
	tier := TierFor(score)
	recs := Recommend(tier, hits)
	return Assemble(sampleID, seqLen, hits, score, tier, recs)
}

// Patterns lists the catalog contents for the introspection endpoint.
func (e *Engine) Patterns() analysis.PatternList {
	return analysis.PatternList{
		CatalogVersion:     e.cat.Version,
		PlasmidPatterns:    e.cat.RuleNames(analysis.CategoryPlasmid),
		TransposonPatterns: e.cat.RuleNames(analysis.CategoryTransposon),
		ResistancePatterns: e.cat.RuleNames(analysis.CategoryResistance),
		HighRiskReplicons:  e.cat.HighRiskReplicons,
		CriticalGenes:      e.cat.CriticalGenes,
	}
}
