package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/phazegen/hgtscan/internal/domain/analyst"
)

type InterpretationRepository struct {
	db *sql.DB
}

func NewInterpretationRepository(db *sql.DB) *InterpretationRepository {
	return &InterpretationRepository{db: db}
}

// Save inserts an interpretation record
func (r *InterpretationRepository) Save(ctx context.Context, it *domain.Interpretation) error {
	const q = `
INSERT INTO hgt_interpretations
  (id, analysis_id, model, result_json, created_at)
VALUES (?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  analysis_id=VALUES(analysis_id), model=VALUES(model), result_json=VALUES(result_json);
`
	result := it.Result
	if strings.TrimSpace(result) == "" {
		// result_json column requires valid JSON; use empty object
		result = "{}"
	}
	createdAt := it.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, q, it.ID, stringOrDash(it.AnalysisID), it.Model, result, createdAt)
	return err
}

// Paginate returns a page of interpretations ordered by created_at desc
func (r *InterpretationRepository) Paginate(ctx context.Context, page, pageSize int) ([]*domain.Interpretation, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	const q = `
SELECT id, analysis_id, model, result_json, created_at
FROM hgt_interpretations
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?;
`
	rows, err := r.db.QueryContext(ctx, q, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Interpretation
	for rows.Next() {
		var it domain.Interpretation
		if err := rows.Scan(&it.ID, &it.AnalysisID, &it.Model, &it.Result, &it.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

// LatestByAnalysis returns the most recent interpretation for an analysis
func (r *InterpretationRepository) LatestByAnalysis(ctx context.Context, analysisID string) (*domain.Interpretation, error) {
	const q = `
SELECT id, analysis_id, model, result_json, created_at
FROM hgt_interpretations
WHERE analysis_id=?
ORDER BY created_at DESC, id DESC
LIMIT 1;
`
	var it domain.Interpretation
	if err := r.db.QueryRowContext(ctx, q, analysisID).Scan(
		&it.ID, &it.AnalysisID, &it.Model, &it.Result, &it.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &it, nil
}
