package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appai "github.com/phazegen/hgtscan/internal/application/ai"
	appanalyses "github.com/phazegen/hgtscan/internal/application/analyses"
	domai "github.com/phazegen/hgtscan/internal/domain/ai"
	domain "github.com/phazegen/hgtscan/internal/domain/analysis"
	"github.com/phazegen/hgtscan/internal/fasta"
	"github.com/phazegen/hgtscan/internal/middleware"
)

// maxUploadBytes caps multipart sequence uploads.
const maxUploadBytes = 32 << 20

// errBadRequest marks client-fault errors; the wrap maps them to 400.
var errBadRequest = errors.New("bad request")

type Router struct {
	svc   *appanalyses.Service
	aiSvc *appai.Service
}

func NewRouter(svc *appanalyses.Service, aiSvc *appai.Service) http.Handler {
	r := &Router{svc: svc, aiSvc: aiSvc}
	mux := chi.NewRouter()

	mux.Get("/", r.wrap(r.handleRoot))
	mux.Get("/health", middleware.LivenessHandler)
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/api", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Post("/analyze/file", r.wrap(r.handleAnalyzeFile))
		rt.Get("/patterns", r.wrap(r.handlePatterns))
		rt.Get("/test", r.wrap(r.handleTest))
		rt.Get("/analyses", r.wrap(r.handleList))
		rt.Get("/analyses/latest", r.wrap(r.handleLatest))
		rt.Get("/analyses/{id}", r.wrap(r.handleGet))
		rt.Get("/summary", r.wrap(r.handleSummary))
		rt.Post("/analyses/{id}/interpret", r.wrap(r.handleInterpret))
		rt.Get("/analyses/{id}/interpret", r.wrap(r.handleInterpretLatest))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case errors.Is(err, errBadRequest):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, sql.ErrNoRows):
				http.Error(w, "not found", http.StatusNotFound)
			case errors.Is(err, domai.ErrQuotaExceeded):
				http.Error(w, "ai quota exceeded", http.StatusTooManyRequests)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// GET /
func (r *Router) handleRoot(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, map[string]any{
		"message": "HGT Risk Detection API",
		"status":  "running",
		"endpoints": map[string]string{
			"analyze":      "POST /api/analyze",
			"analyze_file": "POST /api/analyze/file",
			"patterns":     "GET /api/patterns",
			"health":       "GET /health",
			"test":         "GET /api/test",
		},
	})
}

// POST /api/analyze
// Body: {"sequence": "...", "filename": "sample.fasta", "deep": false}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Sequence string `json:"sequence"`
		Filename string `json:"filename"`
		Deep     bool   `json:"deep"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return r.analyze(w, req, body.Sequence, body.Filename, "api", body.Deep)
}

// POST /api/analyze/file — multipart upload, FASTA-aware
func (r *Router) handleAnalyzeFile(w http.ResponseWriter, req *http.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, maxUploadBytes)
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	file, hdr, err := req.FormFile("file")
	if err != nil {
		return fmt.Errorf("%w: no file content provided", errBadRequest)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	sequence, header := fasta.Extract(string(content))
	name := hdr.Filename
	if header != "" {
		name = header
	}
	deep := req.FormValue("deep") == "true"

	return r.analyze(w, req, sequence, name, "upload", deep)
}

func (r *Router) analyze(w http.ResponseWriter, req *http.Request, sequence, name, source string, deep bool) error {
	if err := middleware.ValidateSequence(sequence); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}

	middleware.IncrementAnalyses()
	a, err := r.svc.Analyze(req.Context(), appanalyses.AnalyzeCommand{
		SampleID: middleware.SanitizeSampleID(name),
		Sequence: sequence,
		Source:   source,
		Deep:     deep,
	})
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}
	if a.Status == domain.StatusFailed {
		middleware.IncrementAnalysesFailed()
	}
	return writeJSON(w, a)
}

// GET /api/patterns
func (r *Router) handlePatterns(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, r.svc.Patterns())
}

// GET /api/test — analyzes a built-in sample sequence
func (r *Router) handleTest(w http.ResponseWriter, req *http.Request) error {
	const sample = "ATGCTAGCTAGCTAGCTAGCTAGCTAGCTAGCTAGCTAGCTAGC" +
		"TAGCTAGCTAGCTAGCTAGCTAGCTAGCTAGCTAGCTAGCTAGC" +
		"CAGGTAATCGATCGATCGATCGATCGATCGATCGATCGATCGA" +
		"TGCATGCATGCATGCATGCATGCATGCATGCATGCATGCATGC"

	return r.analyze(w, req, sample, "test_sample.fasta", "test", false)
}

// GET /api/analyses/latest?limit=20
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	list, err := r.svc.Latest(req.Context(), middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}
	return writeJSON(w, list)
}

// GET /api/analyses?page=&page_size=
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	res, err := r.svc.Paginate(req.Context(), page, size)
	if err != nil {
		return err
	}
	return writeJSON(w, res)
}

// GET /api/analyses/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	a, err := r.svc.Get(req.Context(), domain.AnalysisID(id))
	if err != nil {
		return err
	}
	return writeJSON(w, a)
}

// GET /api/summary?days=7
func (r *Router) handleSummary(w http.ResponseWriter, req *http.Request) error {
	days, _ := strconv.Atoi(req.URL.Query().Get("days"))
	summary, err := r.svc.Summary(req.Context(), middleware.ValidateDays(days))
	if err != nil {
		return err
	}
	return writeJSON(w, summary)
}

// POST /api/analyses/{id}/interpret
func (r *Router) handleInterpret(w http.ResponseWriter, req *http.Request) error {
	if r.aiSvc == nil {
		return fmt.Errorf("%w: ai interpretation is not configured", errBadRequest)
	}
	id := chi.URLParam(req, "id")
	it, err := r.aiSvc.InterpretAndStore(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, it)
}

// GET /api/analyses/{id}/interpret
func (r *Router) handleInterpretLatest(w http.ResponseWriter, req *http.Request) error {
	if r.aiSvc == nil {
		return fmt.Errorf("%w: ai interpretation is not configured", errBadRequest)
	}
	id := chi.URLParam(req, "id")
	it, err := r.aiSvc.LatestByAnalysis(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, it)
}
