package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/phazegen/hgtscan/internal/domain/ai"
	domain "github.com/phazegen/hgtscan/internal/domain/analysis"
	"github.com/phazegen/hgtscan/internal/domain/analyst"
)

// Service turns stored analysis reports into AI interpretations and keeps
// them for audit.
type Service struct {
	client   ai.Client
	analyses domain.Repository
	store    analyst.Repository
}

func NewService(client ai.Client, analyses domain.Repository, store analyst.Repository) *Service {
	return &Service{client: client, analyses: analyses, store: store}
}

// InterpretAndStore fetches an analysis, asks the AI client for an
// interpretation of its report and persists the result.
func (s *Service) InterpretAndStore(ctx context.Context, analysisID string) (*analyst.Interpretation, error) {
	a, err := s.analyses.Get(ctx, domain.AnalysisID(analysisID))
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("analysis not found: %s", analysisID)
	}

	report, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}

	result, err := s.client.Interpret(ctx, string(report))
	if err != nil {
		return nil, err
	}

	it := &analyst.Interpretation{
		ID:         analyst.InterpretationID(uuid.New().String()),
		AnalysisID: analysisID,
		Result:     result,
		CreatedAt:  time.Now(),
	}
	if err := s.store.Save(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// LatestByAnalysis returns the most recent interpretation of an analysis.
func (s *Service) LatestByAnalysis(ctx context.Context, analysisID string) (*analyst.Interpretation, error) {
	return s.store.LatestByAnalysis(ctx, analysisID)
}

// List returns a page of interpretations.
func (s *Service) List(ctx context.Context, page, pageSize int) ([]*analyst.Interpretation, error) {
	return s.store.Paginate(ctx, page, pageSize)
}
