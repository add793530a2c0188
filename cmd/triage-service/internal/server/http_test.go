package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clinictriage/cmd/triage-service/internal/biz"
	"clinictriage/cmd/triage-service/internal/data"
	"clinictriage/cmd/triage-service/internal/service"
)

func newTestServer(t *testing.T) *HTTPServer {
	t.Helper()
	engine := biz.NewEngine(data.NewStaticKnowledgeBase(data.KnowledgeConfig{}), biz.DefaultEngineConfig(), zap.NewNop())
	t.Cleanup(engine.Close)
	svc := service.NewTriageService(engine, nil, false, zap.NewNop())
	return NewHTTPServer(svc, zap.NewNop())
}

func TestHTTPServer_Health(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHTTPServer_Triage(t *testing.T) {
	srv := newTestServer(t)

	body := `{"message": "I have chest pain and can't breathe"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/triage", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Content            string `json:"content"`
		Type               string `json:"type"`
		EscalationRequired bool   `json:"escalation_required"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "emergency", resp.Type)
	assert.True(t, resp.EscalationRequired)
	assert.Contains(t, resp.Content, "995")
}

func TestHTTPServer_TriageEmptyMessage(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/triage", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "EMPTY_MESSAGE")
}

// Malformed JSON is a plain bad request, not an empty-message error.
func TestHTTPServer_TriageMalformedJSON(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/triage", strings.NewReader(`{"message": "Hello"`))
	req.Header.Set("Content-Type", "application/json")
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "BAD_REQUEST")
	assert.NotContains(t, w.Body.String(), "EMPTY_MESSAGE")
}

func TestHTTPServer_CORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/triage", nil)
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
