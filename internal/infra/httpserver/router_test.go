package httpserver

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phazegen/hgtscan/internal/application"
	appanalyses "github.com/phazegen/hgtscan/internal/application/analyses"
	"github.com/phazegen/hgtscan/internal/catalog"
	domain "github.com/phazegen/hgtscan/internal/domain/analysis"
	"github.com/phazegen/hgtscan/internal/engine"
)

type memRepo struct {
	byID map[domain.AnalysisID]*domain.Analysis
}

func newMemRepo() *memRepo {
	return &memRepo{byID: make(map[domain.AnalysisID]*domain.Analysis)}
}

func (m *memRepo) Save(ctx context.Context, a *domain.Analysis) error {
	m.byID[a.ID] = a
	return nil
}
func (m *memRepo) Get(ctx context.Context, id domain.AnalysisID) (*domain.Analysis, error) {
	a, ok := m.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return a, nil
}
func (m *memRepo) Latest(ctx context.Context, limit int) ([]*domain.Analysis, error) {
	var out []*domain.Analysis
	for _, a := range m.byID {
		out = append(out, a)
	}
	return out, nil
}
func (m *memRepo) Paginate(ctx context.Context, page, pageSize int) (domain.PaginatedResult, error) {
	data, _ := m.Latest(ctx, pageSize)
	return domain.PaginatedResult{Data: data, Page: page, PageSize: pageSize, Total: int64(len(data)), TotalPages: 1}, nil
}
func (m *memRepo) Summary(ctx context.Context, sinceDays int) (int, int, int, int, error) {
	return len(m.byID), 0, 0, 0, nil
}

func testRouter(t *testing.T) (http.Handler, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	svc := &appanalyses.Service{
		Repo:   repo,
		Engine: engine.New(catalog.Default()),
		Clock:  application.SystemClock{},
	}
	return NewRouter(svc, nil), repo
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeEndpoint(t *testing.T) {
	h, repo := testRouter(t)

	seq := strings.Repeat("T", 10) + "CAGGTA" + strings.Repeat("C", 10)
	rec := postJSON(t, h, "/api/analyze", map[string]any{
		"sequence": seq,
		"filename": "isolate.fasta",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var a domain.Analysis
	if err := json.NewDecoder(rec.Body).Decode(&a); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if a.Status != domain.StatusSuccess || a.SampleID != "isolate.fasta" {
		t.Errorf("analysis: %+v", a)
	}
	if a.Summary.TransposonCount != 1 {
		t.Errorf("summary: %+v", a.Summary)
	}
	if _, ok := repo.byID[a.ID]; !ok {
		t.Error("analysis not persisted")
	}
}

func TestAnalyzeEndpointRejectsShortSequence(t *testing.T) {
	h, _ := testRouter(t)

	rec := postJSON(t, h, "/api/analyze", map[string]any{"sequence": "ACGT"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "too short") {
		t.Errorf("body: %s", rec.Body.String())
	}

	rec = postJSON(t, h, "/api/analyze", map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty sequence: status %d, want 400", rec.Code)
	}
}

func TestAnalyzeEndpointRejectsBadJSON(t *testing.T) {
	h, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestAnalyzeFileEndpoint(t *testing.T) {
	h, _ := testRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "upload.fasta")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte(">isolate-9\n" + strings.Repeat("A", 20) + "\nCAGGTA" + strings.Repeat("C", 10) + "\n"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze/file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var a domain.Analysis
	if err := json.NewDecoder(rec.Body).Decode(&a); err != nil {
		t.Fatal(err)
	}
	// FASTA header wins over the upload file name
	if a.SampleID != "isolate-9" {
		t.Errorf("sample id: %q", a.SampleID)
	}
	if a.Summary.TransposonCount != 1 {
		t.Errorf("summary: %+v", a.Summary)
	}
}

func TestAnalyzeFileEndpointWithoutFile(t *testing.T) {
	h, _ := testRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("deep", "false")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze/file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestPatternsEndpoint(t *testing.T) {
	h, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/patterns", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}

	var p domain.PatternList
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatal(err)
	}
	if len(p.PlasmidPatterns) == 0 || len(p.CriticalGenes) == 0 {
		t.Errorf("pattern list: %+v", p)
	}
}

func TestTestEndpoint(t *testing.T) {
	h, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var a domain.Analysis
	if err := json.NewDecoder(rec.Body).Decode(&a); err != nil {
		t.Fatal(err)
	}
	// the built-in sample carries an IS3 signature
	if a.Summary.TransposonCount == 0 {
		t.Errorf("built-in sample found nothing: %+v", a.Summary)
	}
}

func TestGetEndpointNotFound(t *testing.T) {
	h, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/analyses/ba3efcb4-23f7-4f44-8196-7892e20c3b3c", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status %d, want 404", rec.Code)
	}
}

func TestGetEndpointRoundTrip(t *testing.T) {
	h, _ := testRouter(t)

	seq := strings.Repeat("A", 25)
	rec := postJSON(t, h, "/api/analyze", map[string]any{"sequence": seq})
	var created domain.Analysis
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/analyses/"+string(created.ID), nil)
	getRec := httptest.NewRecorder()
	h.ServeHTTP(getRec, req)
	if getRec.Code != http.StatusOK {
		t.Fatalf("status %d", getRec.Code)
	}

	var got domain.Analysis
	if err := json.NewDecoder(getRec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.ID != created.ID || got.RiskLevel != created.RiskLevel {
		t.Errorf("round trip mismatch: %+v vs %+v", got, created)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	h, _ := testRouter(t)

	postJSON(t, h, "/api/analyze", map[string]any{"sequence": strings.Repeat("A", 25)})

	req := httptest.NewRequest(http.MethodGet, "/api/summary?days=7", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}

	var summary map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&summary); err != nil {
		t.Fatal(err)
	}
	if summary["total_analyses"].(float64) != 1 {
		t.Errorf("summary: %v", summary)
	}
}

func TestInterpretEndpointUnconfigured(t *testing.T) {
	h, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/analyses/ba3efcb4-23f7-4f44-8196-7892e20c3b3c/interpret", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}
