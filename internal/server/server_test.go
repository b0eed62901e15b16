package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-mentor/internal/catalog"
	"career-mentor/internal/common/config"
	"career-mentor/internal/common/logger"
	"career-mentor/internal/engine"
	"career-mentor/internal/engine/respond"
	"career-mentor/internal/models"
	"career-mentor/internal/session"
)

type zeroPicker struct{}

func (zeroPicker) Pick(int) int { return 0 }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := session.NewMemoryStore(time.Hour)
	eng := engine.New(store, catalog.NewStaticCatalog(), logger.NewNoOpLogger(), engine.Options{Picker: zeroPicker{}})
	return New(eng, logger.NewNoOpLogger(), config.ServerConfig{Port: 0, ReadTimeout: 5000, WriteTimeout: 5000})
}

func postJSON(t *testing.T, handler http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestMessageEndpoint(t *testing.T) {
	t.Run("valid message returns both sides of the exchange", func(t *testing.T) {
		srv := newTestServer(t)
		rec := postJSON(t, srv.Handler(), "/api/v1/chatbot/message", map[string]interface{}{
			"message": "What career should I pursue?",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		payload := decodeBody(t, rec)
		assert.Equal(t, true, payload["success"])

		data := payload["data"].(map[string]interface{})
		assert.NotEmpty(t, data["sessionId"])
		assert.Len(t, data["suggestions"], 10)

		conversation := data["conversation"].([]interface{})
		require.Len(t, conversation, 2)
		user := conversation[0].(map[string]interface{})
		bot := conversation[1].(map[string]interface{})
		assert.Equal(t, "user", user["sender"])
		assert.Equal(t, "bot", bot["sender"])
		assert.Equal(t, "career_choice", bot["intent"])
		assert.NotEmpty(t, bot["text"])
	})

	t.Run("session id sticks across turns", func(t *testing.T) {
		srv := newTestServer(t)
		rec := postJSON(t, srv.Handler(), "/api/v1/chatbot/message", map[string]interface{}{
			"message": "hello there friend",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		sessionID := decodeBody(t, rec)["data"].(map[string]interface{})["sessionId"].(string)

		rec = postJSON(t, srv.Handler(), "/api/v1/chatbot/message", map[string]interface{}{
			"message":   "I want a career assessment",
			"sessionId": sessionID,
		})
		require.Equal(t, http.StatusOK, rec.Code)
		data := decodeBody(t, rec)["data"].(map[string]interface{})
		assert.Equal(t, sessionID, data["sessionId"])

		bot := data["conversation"].([]interface{})[1].(map[string]interface{})
		flow := bot["flow"].(map[string]interface{})
		assert.Equal(t, "experience-level", flow["currentStep"])
	})

	t.Run("missing message is a 400 with schema errors", func(t *testing.T) {
		srv := newTestServer(t)
		rec := postJSON(t, srv.Handler(), "/api/v1/chatbot/message", map[string]interface{}{
			"sessionId": "s1",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		payload := decodeBody(t, rec)
		assert.Equal(t, false, payload["success"])
		assert.NotEmpty(t, payload["errors"])
	})

	t.Run("oversized message is a 400", func(t *testing.T) {
		srv := newTestServer(t)
		rec := postJSON(t, srv.Handler(), "/api/v1/chatbot/message", map[string]interface{}{
			"message": strings.Repeat("a", 1001),
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed JSON is a 400", func(t *testing.T) {
		srv := newTestServer(t)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chatbot/message", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store outage maps to 503 retryable", func(t *testing.T) {
		eng := engine.New(failingSessionStore{}, catalog.NewStaticCatalog(), logger.NewNoOpLogger(), engine.Options{Picker: zeroPicker{}})
		srv := New(eng, logger.NewNoOpLogger(), config.ServerConfig{Port: 0})

		rec := postJSON(t, srv.Handler(), "/api/v1/chatbot/message", map[string]interface{}{
			"message": "hello there friend",
		})
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		payload := decodeBody(t, rec)
		assert.Equal(t, true, payload["retryable"])
		assert.EqualValues(t, 3, payload["maxRetries"])
	})

	t.Run("unclassified errors return the fallback reply", func(t *testing.T) {
		srv := newTestServer(t)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/chatbot/message", nil)
		srv.writeEngineError(rec, req, fmt.Errorf("boom"))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		payload := decodeBody(t, rec)
		assert.Equal(t, false, payload["success"])
		assert.Equal(t, respond.FallbackMessage, payload["message"])
		assert.Len(t, payload["suggestedActions"], 3)
	})
}

type failingSessionStore struct{}

func (failingSessionStore) Get(ctx context.Context, sessionID string) (*models.SessionState, error) {
	return nil, fmt.Errorf("connection refused")
}

func (failingSessionStore) Put(ctx context.Context, state *models.SessionState) error {
	return fmt.Errorf("connection refused")
}

func (failingSessionStore) Delete(ctx context.Context, sessionID string) error {
	return fmt.Errorf("connection refused")
}

func TestHistoryAndClear(t *testing.T) {
	srv := newTestServer(t)

	rec := postJSON(t, srv.Handler(), "/api/v1/chatbot/message", map[string]interface{}{
		"message": "hello there friend",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	sessionID := decodeBody(t, rec)["data"].(map[string]interface{})["sessionId"].(string)

	t.Run("history returns stored turns", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/chatbot/history/"+sessionID, nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		data := decodeBody(t, rec)["data"].(map[string]interface{})
		assert.Len(t, data["history"], 2)
	})

	t.Run("unknown session is a 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/chatbot/history/absent", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete clears the conversation", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/chatbot/conversation/"+sessionID, nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		req = httptest.NewRequest(http.MethodGet, "/api/v1/chatbot/history/"+sessionID, nil)
		rec = httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSuggestionsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/chatbot/suggestions", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Len(t, data["suggestions"], 10)
}

func TestFeedbackEndpoint(t *testing.T) {
	t.Run("valid feedback is accepted", func(t *testing.T) {
		srv := newTestServer(t)
		rec := postJSON(t, srv.Handler(), "/api/v1/chatbot/feedback", map[string]interface{}{
			"messageId": "m1",
			"rating":    5,
			"sessionId": "s1",
			"feedback":  "very helpful",
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rating outside 1-5 is rejected", func(t *testing.T) {
		srv := newTestServer(t)
		rec := postJSON(t, srv.Handler(), "/api/v1/chatbot/feedback", map[string]interface{}{
			"messageId": "m1",
			"rating":    9,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing messageId is rejected", func(t *testing.T) {
		srv := newTestServer(t)
		rec := postJSON(t, srv.Handler(), "/api/v1/chatbot/feedback", map[string]interface{}{
			"rating": 3,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decodeBody(t, rec)["status"])
}
