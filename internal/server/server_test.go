package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/careerpath/roadmappdf/internal/model"
	"github.com/careerpath/roadmappdf/internal/progress"
	"github.com/careerpath/roadmappdf/internal/render"
	"github.com/careerpath/roadmappdf/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, progress.Store) {
	t.Helper()
	store := progress.NewMemory()
	assembler := report.New(report.DefaultOptions()).WithCanvas(func(o report.Options) render.Canvas {
		return render.NewRecorder(o.PageSize.Width, o.PageSize.Height)
	})
	return New(Config{BodyLimit: 1 << 20}, assembler, store, log.New(io.Discard, "", 0)), store
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, data interface{}) SemanticResponse {
	t.Helper()
	defer resp.Body.Close()
	var env struct {
		Status  int             `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return SemanticResponse{Status: env.Status, Message: env.Message}
}

func record() model.RoleRecord {
	return model.RoleRecord{
		Role:          "Backend Engineer",
		MatchScore:    62,
		AvgSalary:     1200000,
		MissingSkills: []string{"Docker", "Kubernetes", "Terraform"},
	}
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	resp := doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	env := decode(t, resp, nil)
	assert.Equal(t, MessageOK, env.Message)
}

func TestRequestIDIsEchoed(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}

func TestExport(t *testing.T) {
	s, _ := newTestServer(t)
	resp := doJSON(t, s, http.MethodPost, "/api/v1/roadmaps/export", map[string]interface{}{
		"record":    record(),
		"completed": []string{"Docker"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "career-roadmap-backend-engineer.pdf")
	assert.Equal(t, "1", resp.Header.Get("X-Roadmap-Pages"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Page 1 of 1")
}

func TestExport_InvalidRecord(t *testing.T) {
	s, _ := newTestServer(t)
	rec := record()
	rec.Role = ""
	resp := doJSON(t, s, http.MethodPost, "/api/v1/roadmaps/export", map[string]interface{}{"record": rec})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	env := decode(t, resp, nil)
	assert.Equal(t, "Invalid role record", env.Message)
}

func TestExport_MalformedBody(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/roadmaps/export", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

type failingRenderer struct{}

func (failingRenderer) Render(*model.RoleRecord, model.ProgressState) (*report.Artifact, error) {
	return nil, &report.RenderError{Message: "failed to serialize document", Cause: errors.New("secret detail")}
}

func TestExport_RenderFailureHidesDetails(t *testing.T) {
	s := New(Config{BodyLimit: 1 << 20}, failingRenderer{}, nil, log.New(io.Discard, "", 0))
	resp := doJSON(t, s, http.MethodPost, "/api/v1/roadmaps/export", map[string]interface{}{"record": record()})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	env := decode(t, resp, nil)
	assert.Equal(t, MessageInternalServerError, env.Message)
}

func TestMetrics_UsesStoredProgress(t *testing.T) {
	s, store := newTestServer(t)
	require.NoError(t, store.Save(t.Context(), "Backend Engineer", model.NewProgressState("Docker", "Rust")))

	resp := doJSON(t, s, http.MethodPost, "/api/v1/roadmaps/metrics", map[string]interface{}{"record": record()})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Completed   int    `json:"completed"`
		Total       int    `json:"total"`
		GapProgress int    `json:"gap_progress"`
		Readiness   int    `json:"readiness"`
		Tier        string `json:"tier"`
	}
	decode(t, resp, &got)
	assert.Equal(t, 1, got.Completed)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 33, got.GapProgress)
	assert.Equal(t, 50, got.Readiness)
	assert.Equal(t, "medium", got.Tier)
}

func TestMetrics_MatchesRenderedDocument(t *testing.T) {
	s, _ := newTestServer(t)
	rec := record()
	rec.MissingSkills = []string{"<i>Docker</i>", "Kubernetes", ""}
	completed := []string{"Docker"}

	resp := doJSON(t, s, http.MethodPost, "/api/v1/roadmaps/metrics", map[string]interface{}{"record": rec, "completed": completed})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got struct {
		Completed   int `json:"completed"`
		Total       int `json:"total"`
		GapProgress int `json:"gap_progress"`
		Readiness   int `json:"readiness"`
	}
	decode(t, resp, &got)

	want := report.Metrics(&rec, model.NewProgressState(completed...))
	assert.Equal(t, 1, got.Completed)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, want.GapProgress, got.GapProgress)
	assert.Equal(t, want.Readiness, got.Readiness)
}

func TestProgressEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	resp := doJSON(t, s, http.MethodPut, "/api/v1/progress/Backend%20Engineer", map[string]interface{}{"skills": []string{"Go", "Docker"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var body progressBody
	resp = doJSON(t, s, http.MethodGet, "/api/v1/progress/Backend%20Engineer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &body)
	assert.Equal(t, "Backend Engineer", body.Role)
	assert.Equal(t, []string{"Docker", "Go"}, body.Skills)

	var tr toggleResponse
	resp = doJSON(t, s, http.MethodPost, "/api/v1/progress/Backend%20Engineer/toggle", toggleRequest{Skill: "Go"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &tr)
	assert.False(t, tr.Done)
	assert.Equal(t, []string{"Docker"}, tr.Skills)

	resp = doJSON(t, s, http.MethodPost, "/api/v1/progress/Backend%20Engineer/toggle", toggleRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	s, _ := newTestServer(t)
	resp := doJSON(t, s, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
