package analyst

import "context"

// Repository port for persisting and querying interpretations
type Repository interface {
	Save(ctx context.Context, it *Interpretation) error
	Paginate(ctx context.Context, page, pageSize int) ([]*Interpretation, error)
	LatestByAnalysis(ctx context.Context, analysisID string) (*Interpretation, error)
}
