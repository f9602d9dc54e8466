// Package abricate adapts ABRicate, run inside Docker, to the Annotator
// port: its tabular report is translated into the same Hit shape the
// pattern scanner produces, so scoring and recommendations never see
// where a hit came from.
package abricate

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/phazegen/hgtscan/internal/catalog"
	domain "github.com/phazegen/hgtscan/internal/domain/analysis"
)

const dockerImage = "staphb/abricate:latest"

type Runner struct {
	cat         *catalog.Catalog
	minIdentity int
	minCoverage int
}

func NewRunner(cat *catalog.Catalog, minIdentity, minCoverage int) *Runner {
	if minIdentity <= 0 {
		minIdentity = 90
	}
	if minCoverage <= 0 {
		minCoverage = 80
	}
	return &Runner{cat: cat, minIdentity: minIdentity, minCoverage: minCoverage}
}

// Annotate runs ABRicate once per requested database and merges the hits.
func (r *Runner) Annotate(ctx context.Context, req domain.AnnotateRequest) ([]domain.Hit, error) {
	dbs := req.Databases
	if len(dbs) == 0 {
		dbs = []string{"plasmidfinder", "card"}
	}

	dir := filepath.Dir(req.FastaPath)
	base := filepath.Base(req.FastaPath)

	var hits []domain.Hit
	for _, db := range dbs {
		cmd := exec.CommandContext(ctx, "docker", "run", "--rm",
			"-v", fmt.Sprintf("%s:/data", dir),
			dockerImage,
			"abricate", "--db", db,
			"--minid", fmt.Sprintf("%d", r.minIdentity),
			"--mincov", fmt.Sprintf("%d", r.minCoverage),
			"/data/"+base,
		)
		out, err := cmd.Output()
		if err != nil {
			if ee, ok := err.(*exec.ExitError); ok {
				return nil, fmt.Errorf("abricate %s: %v, stderr=%s", db, err, string(ee.Stderr))
			}
			return nil, fmt.Errorf("abricate %s: %w", db, err)
		}
		parsed, err := r.parseReport(db, out)
		if err != nil {
			return nil, fmt.Errorf("abricate %s: %w", db, err)
		}
		hits = append(hits, parsed...)
	}
	return hits, nil
}
