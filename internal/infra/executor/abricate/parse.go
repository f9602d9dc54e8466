package abricate

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	domain "github.com/phazegen/hgtscan/internal/domain/analysis"
)

// ABRicate tab-separated report columns.
const (
	colStart      = 2
	colEnd        = 3
	colGene       = 5
	colCoverage   = 9
	colIdentity   = 10
	colResistance = 14
	minColumns    = 11
)

// parseReport translates one ABRicate report into Hits. Rows that cannot
// be parsed are skipped; ABRicate emits a header row per file prefixed
// with '#'.
func (r *Runner) parseReport(db string, data []byte) ([]domain.Hit, error) {
	var hits []domain.Hit

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < minColumns {
			continue
		}

		start, err1 := strconv.Atoi(parts[colStart])
		end, err2 := strconv.Atoi(parts[colEnd])
		if err1 != nil || err2 != nil {
			continue
		}
		if start > 0 {
			start-- // ABRicate is 1-based inclusive; hits are 0-based half-open
		}
		if end < start {
			start, end = end-1, start+1
		}

		gene := parts[colGene]
		identity, _ := strconv.ParseFloat(parts[colIdentity], 64)

		h := domain.Hit{
			Category:   categoryFor(db),
			Name:       gene,
			Start:      start,
			End:        end,
			Position:   domain.PositionString(start, end),
			Length:     end - start,
			Matched:    gene,
			Confidence: identity / 100,
		}

		switch h.Category {
		case domain.CategoryPlasmid:
			h.RiskCategory = domain.RiskCategoryMedium
			if r.highRiskReplicon(gene) {
				h.RiskCategory = domain.RiskCategoryHigh
			}
		case domain.CategoryTransposon:
			h.ElementType = "Insertion Sequence"
			h.Family = "Unknown family"
		case domain.CategoryResistance:
			h.DrugClass = "Multiple classes"
			if len(parts) > colResistance && parts[colResistance] != "" {
				h.DrugClass = parts[colResistance]
			}
			h.Critical = r.criticalGene(gene)
		}

		hits = append(hits, h)
	}
	return hits, scanner.Err()
}

func categoryFor(db string) domain.Category {
	switch db {
	case "plasmidfinder":
		return domain.CategoryPlasmid
	case "isfinder":
		return domain.CategoryTransposon
	default: // card, resfinder, ncbi, argannot, megares
		return domain.CategoryResistance
	}
}

// highRiskReplicon matches by substring: ABRicate replicon names carry
// suffixes like IncFIB(AP001918).
func (r *Runner) highRiskReplicon(replicon string) bool {
	for _, hr := range r.cat.HighRiskReplicons {
		if strings.Contains(replicon, hr) {
			return true
		}
	}
	return false
}

func (r *Runner) criticalGene(gene string) bool {
	lower := strings.ToLower(gene)
	for _, cg := range r.cat.CriticalGenes {
		if strings.Contains(lower, strings.ToLower(cg)) {
			return true
		}
	}
	return false
}
