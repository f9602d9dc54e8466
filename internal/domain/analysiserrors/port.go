package analysiserrors

import "context"

// Repository port for persisting analysis failures
type Repository interface {
	Save(ctx context.Context, e *AnalysisError) error
	Latest(ctx context.Context, limit int) ([]*AnalysisError, error)
}
