package analysis

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, a *Analysis) error
	Get(ctx context.Context, id AnalysisID) (*Analysis, error)
	Latest(ctx context.Context, limit int) ([]*Analysis, error)
	Paginate(ctx context.Context, page, pageSize int) (PaginatedResult, error)
	Summary(ctx context.Context, sinceDays int) (int, int, int, int, error)
}

// ReportStore port (interface untuk penyimpanan report artifacts)
type ReportStore interface {
	Upload(ctx context.Context, localPath, key string) (string, error)
	UploadAndCleanup(ctx context.Context, localPath, key string) (string, error)
}

// AnnotateRequest for the external annotation adapter.
type AnnotateRequest struct {
	FastaPath string
	Databases []string
}

// Annotator port: translates an external annotation tool's output into
// the same Hit shape the scanner produces, so scoring and recommendations
// are unaffected by the data source.
type Annotator interface {
	Annotate(ctx context.Context, req AnnotateRequest) ([]Hit, error)
}
