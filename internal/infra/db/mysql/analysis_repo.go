package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	domain "github.com/phazegen/hgtscan/internal/domain/analysis"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

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
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 status=VALUES(status), risk_score=VALUES(risk_score), risk_level=VALUES(risk_level),
 total_elements=VALUES(total_elements), plasmids=VALUES(plasmids),
 transposons=VALUES(transposons), resistance_genes=VALUES(resistance_genes),
 high_risk_plasmids=VALUES(high_risk_plasmids),
 elements_json=VALUES(elements_json), recommendations_json=VALUES(recommendations_json),
 warnings_json=VALUES(warnings_json), error=VALUES(error),
 report_url=VALUES(report_url), duration_ms=VALUES(duration_ms);
`
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
	q := `SELECT ` + analysisColumns + ` FROM hgt_analyses WHERE id=? LIMIT 1;`
	return scanAnalysis(r.db.QueryRowContext(ctx, q, id))
}

// Latest analyses ordered by created_at desc
func (r *AnalysisRepository) Latest(ctx context.Context, limit int) ([]*domain.Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	q := `SELECT ` + analysisColumns + ` FROM hgt_analyses ORDER BY created_at DESC, id DESC LIMIT ?;`
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

// Paginate with offset + limit (classic pagination)
func (r *AnalysisRepository) Paginate(ctx context.Context, page, pageSize int) (domain.PaginatedResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	q := `SELECT ` + analysisColumns + ` FROM hgt_analyses ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?;`
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
       COALESCE(SUM(risk_level='Critical'),0) AS critical,
       COALESCE(SUM(risk_level='High'),0)     AS high,
       COALESCE(SUM(risk_level='Medium'),0)   AS medium
FROM hgt_analyses
WHERE created_at >= ?;
`
	var t, c, h, m int
	if err := r.db.QueryRowContext(ctx, q, cut).Scan(&t, &c, &h, &m); err != nil {
		return 0, 0, 0, 0, err
	}
	return t, c, h, m, nil
}
