package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/book-finder/pkg/ai"
	"github.com/yourusername/book-finder/pkg/book"
)

func TestHealth(t *testing.T) {
	r := setupRouter(&MockService{}, routerOptions{TextProvider: "gemini:gemini-2.0-flash"})

	w := doRequest(r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "UP", body["status"])
	assert.Equal(t, "lookup", body["cover_strategy"])
	assert.Equal(t, "gemini:gemini-2.0-flash", body["text_provider"])
}

func TestRequestIDHeader(t *testing.T) {
	r := setupRouter(&MockService{}, routerOptions{})

	w := doRequest(r, http.MethodGet, "/health", "")
	_, err := uuid.Parse(w.Header().Get(requestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, id)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get(requestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(requestIDHeader))
}

func TestErrorEnvelopeCarriesTraceID(t *testing.T) {
	svc := &MockService{SummarizeFunc: func(context.Context, book.ReadingLogQuery) (string, error) {
		return "", &ai.GenerationError{Kind: ai.KindSchema, Op: "summarize_reading_log", Err: errors.New("bad json")}
	}}
	r := setupRouter(svc, routerOptions{})

	w := doRequest(r, http.MethodPost, "/api/ai/reading-log/summary", `{"bookLog":"x"}`)
	require.Equal(t, http.StatusBadGateway, w.Code)

	body := decode(t, w)
	assert.NotEmpty(t, body["traceId"])
	assert.Equal(t, w.Header().Get(requestIDHeader), body["traceId"], "falls back to the request id without a tracer")
}

func TestInitLoggerFormats(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	initLogger(slog.LevelWarn, "json", &buf)
	slog.Info("hidden")
	slog.Warn("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	initLogger(slog.LevelInfo, "text", &buf)
	slog.Info("plain", "k", "v")
	assert.Contains(t, buf.String(), "msg=plain")
}

func TestCLIMessage(t *testing.T) {
	err := &ai.GenerationError{Kind: ai.KindTransport, Op: "find_books", Err: errors.New("secret detail")}
	assert.Equal(t, generationFailedMessage, cliMessage(err))
	assert.Equal(t, "boom", cliMessage(errors.New("boom")))
}
