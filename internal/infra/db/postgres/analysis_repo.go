package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	domain "github.com/phazegen/hgtscan/internal/domain/analysis"
)

type AnalysisRepository struct{ db *sql.DB }

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository { return &AnalysisRepository{db: db} }

const analysisColumns = `
id, sample_id, sequence_length, status, risk_score, risk_level,
total_elements, plasmids, transposons, resistance_genes, high_risk_plasmids,
elements_json, recommendations_json, warnings_json, error,
report_url, duration_ms, created_at`

// Save insert/update Analysis record
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Analysis) error {
	const q = `
INSERT INTO hgt_analyses
(id, sample_id, sequence_length, status, risk_score, risk_level,
 total_elements, plasmids, transposons, resistance_genes, high_risk_plasmids,
 elements_json, recommendations_json, warnings_json, error,
 report_url, duration_ms, created_at)
VALUES ($1,$2,$3,$4,$5,$6,
        $7,$8,$9,$10,$11,
        $12,$13,$14,$15,
        $16,$17,$18)
ON CONFLICT (id) DO UPDATE SET
 status = EXCLUDED.status,
 risk_score = EXCLUDED.risk_score,
 risk_level = EXCLUDED.risk_level,
 total_elements = EXCLUDED.total_elements,
 plasmids = EXCLUDED.plasmids,
 transposons = EXCLUDED.transposons,
 resistance_genes = EXCLUDED.resistance_genes,
 high_risk_plasmids = EXCLUDED.high_risk_plasmids,
 elements_json = EXCLUDED.elements_json,
 recommendations_json = EXCLUDED.recommendations_json,
 warnings_json = EXCLUDED.warnings_json,
 error = EXCLUDED.error,
 report_url = EXCLUDED.report_url,
 duration_ms = EXCLUDED.duration_ms;`

	sample := stringOrDash(a.SampleID)
	status := stringOrDash(string(a.Status))
	level := stringOrDash(string(a.RiskLevel))
	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	_, err := r.db.ExecContext(ctx, q,
		a.ID, sample, a.SequenceLength, status, a.RiskScore, level,
		a.Summary.TotalElements, a.Summary.PlasmidCount, a.Summary.TransposonCount,
		a.Summary.ResistanceCount, a.Summary.HighRiskPlasmids,
		jsonOrEmpty(a.Elements), jsonOrList(a.Recommendations), jsonOrList(a.Warnings), a.Error,
		a.ReportURL, a.DurationMS, created,
	)
	return err
}

func scanAnalysis(row interface{ Scan(...any) error }) (*domain.Analysis, error) {
	var a domain.Analysis
	var elements, recs, warnings string
	if err := row.Scan(
		&a.ID, &a.SampleID, &a.SequenceLength, &a.Status, &a.RiskScore, &a.RiskLevel,
		&a.Summary.TotalElements, &a.Summary.PlasmidCount, &a.Summary.TransposonCount,
		&a.Summary.ResistanceCount, &a.Summary.HighRiskPlasmids,
		&elements, &recs, &warnings, &a.Error,
		&a.ReportURL, &a.DurationMS, &a.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(elements), &a.Elements); err != nil {
		return nil, fmt.Errorf("decoding elements_json: %w", err)
	}
	if err := json.Unmarshal([]byte(recs), &a.Recommendations); err != nil {
		return nil, fmt.Errorf("decoding recommendations_json: %w", err)
	}
	if err := json.Unmarshal([]byte(warnings), &a.Warnings); err != nil {
		return nil, fmt.Errorf("decoding warnings_json: %w", err)
	}
	return &a, nil
}

// Get by ID
func (r *AnalysisRepository) Get(ctx context.Context, id domain.AnalysisID) (*domain.Analysis, error) {
	q := `SELECT ` + analysisColumns + ` FROM hgt_analyses WHERE id=$1 LIMIT 1;`
	return scanAnalysis(r.db.QueryRowContext(ctx, q, id))
}

// Latest analyses ordered by created_at desc
func (r *AnalysisRepository) Latest(ctx context.Context, limit int) ([]*domain.Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	q := `SELECT ` + analysisColumns + ` FROM hgt_analyses ORDER BY created_at DESC, id DESC LIMIT $1;`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Paginate with offset + limit
func (r *AnalysisRepository) Paginate(ctx context.Context, page, pageSize int) (domain.PaginatedResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	q := `SELECT ` + analysisColumns + ` FROM hgt_analyses ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2;`
	rows, err := r.db.QueryContext(ctx, q, pageSize, offset)
	if err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("querying analyses: %w", err)
	}
	defer rows.Close()

	var list []*domain.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return domain.PaginatedResult{}, fmt.Errorf("scanning row: %w", err)
		}
		list = append(list, a)
	}
	if err = rows.Err(); err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("iterating rows: %w", err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hgt_analyses`).Scan(&total); err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("getting total count: %w", err)
	}

	return domain.PaginatedResult{
		Data:       list,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// Summary counts analyses by risk level since N days
func (r *AnalysisRepository) Summary(ctx context.Context, sinceDays int) (int, int, int, int, error) {
	if sinceDays <= 0 {
		sinceDays = 7
	}
	cut := time.Now().AddDate(0, 0, -sinceDays)

	const q = `
SELECT COUNT(*) AS total_analyses,
       COALESCE(SUM(CASE WHEN risk_level='Critical' THEN 1 ELSE 0 END),0) AS critical,
       COALESCE(SUM(CASE WHEN risk_level='High' THEN 1 ELSE 0 END),0)     AS high,
       COALESCE(SUM(CASE WHEN risk_level='Medium' THEN 1 ELSE 0 END),0)   AS medium
FROM hgt_analyses
WHERE created_at >= $1;`

	var t, c, h, m int
	if err := r.db.QueryRowContext(ctx, q, cut).Scan(&t, &c, &h, &m); err != nil {
		return 0, 0, 0, 0, err
	}
	return t, c, h, m, nil
}
