package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ethosdigital/agency-ai-platform/pkg/logging"
)

func TestRequestLoggerPassesThrough(t *testing.T) {
	handler := RequestLogger(logging.New("error"))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("payload"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/chatbot/message", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// The wrapped writer must not alter what the handler produced.
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "payload", rec.Body.String())
}

func TestRequestLoggerNilLogger(t *testing.T) {
	handler := RequestLogger(nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
