package analyses

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/phazegen/hgtscan/internal/application"
	domain "github.com/phazegen/hgtscan/internal/domain/analysis"
	"github.com/phazegen/hgtscan/internal/domain/analysiserrors"
	"github.com/phazegen/hgtscan/internal/engine"
)

// Service implements the analysis use-cases. The engine is stateless and
// the adapters are safe for concurrent use, so one Service instance
// serves all requests.
type Service struct {
	Repo      domain.Repository
	Errors    analysiserrors.Repository // optional
	Engine    *engine.Engine
	Reports   domain.ReportStore // optional report archive
	Annotator domain.Annotator   // optional external annotation
	Databases []string           // annotator databases
	Clock     application.Clock
}

// AnalyzeCommand carries one validated analysis request. The boundary has
// already rejected empty or sub-minimum sequences before building this.
type AnalyzeCommand struct {
	SampleID string
	Sequence string
	Source   string // api | upload | cli
	Deep     bool   // also run the external annotation adapter
}

// Analyze runs the engine, persists the record and archives the report.
// An unexpected panic inside the pipeline is converted into a failed
// record with an explicit error marker instead of crashing the caller;
// this is a safety net, not a designed control-flow path.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (a *domain.Analysis, err error) {
	start := s.Clock.Now()
	id := domain.AnalysisID(uuid.New().String())

	defer func() {
		if r := recover(); r != nil {
			a = &domain.Analysis{
				ID:             id,
				SampleID:       cmd.SampleID,
				SequenceLength: len(cmd.Sequence),
				Status:         domain.StatusFailed,
				RiskLevel:      domain.TierMinimal,
				Error:          fmt.Sprintf("internal fault: %v", r),
				Warnings:       []string{"analysis aborted; results are incomplete"},
				DurationMS:     s.Clock.Now().Sub(start).Milliseconds(),
				CreatedAt:      start,
			}
			_ = s.Repo.Save(ctx, a)
			s.recordError(ctx, id, cmd.SampleID, "scan", fmt.Sprintf("%v", r))
			err = nil
		}
	}()

	var warnings []string

	hits := s.Engine.Scan(cmd.Sequence)
	if cmd.Deep && s.Annotator != nil {
		extra, aerr := s.annotate(ctx, cmd.Sequence, cmd.SampleID)
		if aerr != nil {
			warnings = append(warnings, fmt.Sprintf("external annotation failed: %v", aerr))
			s.recordError(ctx, id, cmd.SampleID, "annotate", aerr.Error())
		} else {
			hits = append(hits, extra...)
		}
	}

	res := s.Engine.AnalyzeHits(cmd.SampleID, len(cmd.Sequence), hits)

	a = &domain.Analysis{
		ID:              id,
		SampleID:        res.SampleID,
		SequenceLength:  res.SequenceLength,
		Status:          domain.StatusSuccess,
		RiskScore:       res.RiskScore,
		RiskLevel:       res.RiskLevel,
		Elements:        res.Elements,
		Recommendations: res.Recommendations,
		Summary:         res.Summary,
		Warnings:        warnings,
		DurationMS:      s.Clock.Now().Sub(start).Milliseconds(),
		CreatedAt:       start,
	}

	if err := s.Repo.Save(ctx, a); err != nil {
		return nil, err
	}

	if s.Reports != nil {
		url, uerr := s.archiveReport(ctx, a)
		if uerr != nil {
			a.Warnings = append(a.Warnings, fmt.Sprintf("report archive failed: %v", uerr))
			s.recordError(ctx, id, cmd.SampleID, "store", uerr.Error())
		} else {
			a.ReportURL = url
			if err := s.Repo.Save(ctx, a); err != nil {
				return nil, err
			}
		}
	}

	return a, nil
}

// annotate writes the sequence to a temp FASTA file and runs the adapter.
func (s *Service) annotate(ctx context.Context, sequence, sampleID string) ([]domain.Hit, error) {
	f, err := os.CreateTemp("", "hgtscan-*.fasta")
	if err != nil {
		return nil, err
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := fmt.Fprintf(f, ">%s\n%s\n", sampleID, sequence); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	return s.Annotator.Annotate(ctx, domain.AnnotateRequest{
		FastaPath: path,
		Databases: s.Databases,
	})
}

// archiveReport uploads the rendered JSON report and returns its URL.
func (s *Service) archiveReport(ctx context.Context, a *domain.Analysis) (string, error) {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", err
	}
	f, err := os.CreateTemp("", "hgtscan-report-*.json")
	if err != nil {
		return "", err
	}
	path := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}

	key := fmt.Sprintf("reports/%s.json", a.ID)
	return s.Reports.UploadAndCleanup(ctx, path, key)
}

func (s *Service) recordError(ctx context.Context, id domain.AnalysisID, sampleID, phase, msg string) {
	if s.Errors == nil {
		return
	}
	_ = s.Errors.Save(ctx, &analysiserrors.AnalysisError{
		AnalysisID: string(id),
		SampleID:   sampleID,
		Phase:      phase,
		Message:    msg,
		CreatedAt:  s.Clock.Now(),
	})
}

// Get fetches one analysis by id
func (s *Service) Get(ctx context.Context, id domain.AnalysisID) (*domain.Analysis, error) {
	return s.Repo.Get(ctx, id)
}

// Latest fetches the N most recent analyses
func (s *Service) Latest(ctx context.Context, limit int) ([]*domain.Analysis, error) {
	return s.Repo.Latest(ctx, limit)
}

// Paginate fetches one page of analyses
func (s *Service) Paginate(ctx context.Context, page, pageSize int) (domain.PaginatedResult, error) {
	return s.Repo.Paginate(ctx, page, pageSize)
}

// Summary aggregates analyses of the last N days
func (s *Service) Summary(ctx context.Context, sinceDays int) (map[string]any, error) {
	total, critical, high, medium, err := s.Repo.Summary(ctx, sinceDays)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"total_analyses": total,
		"critical":       critical,
		"high":           high,
		"medium":         medium,
	}, nil
}

// Patterns exposes the catalog introspection operation
func (s *Service) Patterns() domain.PatternList {
	return s.Engine.Patterns()
}
