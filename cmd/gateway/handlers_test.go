package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/book-finder/pkg/ai"
	"github.com/yourusername/book-finder/pkg/book"
	"github.com/yourusername/book-finder/pkg/provider"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func doRequest(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestSuggestionsHandler(t *testing.T) {
	svc := &MockService{SuggestFunc: func(_ context.Context, q book.SuggestionQuery) ([]book.Book, error) {
		assert.Equal(t, "talking animals", q.Description)
		return []book.Book{
			{Title: "Frog and Toad", Author: "Arnold Lobel", CoverImage: "https://books.google.com/f.jpg", Source: book.SourceAI},
			{Title: "Zog", Author: "Julia Donaldson", CoverImage: book.PlaceholderCover, Source: book.SourceAI},
		}, nil
	}}
	r := setupRouter(svc, routerOptions{TextProvider: "mock"})

	w := doRequest(r, http.MethodPost, "/api/ai/suggestions", `{"description":"talking animals"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp BooksResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "Zog", resp.Data[1].Title)
	assert.Equal(t, book.PlaceholderCover, resp.Data[1].CoverImage)
}

func TestSuggestionsHandlerValidation(t *testing.T) {
	svc := &MockService{SuggestFunc: func(context.Context, book.SuggestionQuery) ([]book.Book, error) {
		return nil, &book.ValidationError{Fields: []book.FieldError{{Field: "description", Message: "is required"}}}
	}}
	r := setupRouter(svc, routerOptions{})

	w := doRequest(r, http.MethodPost, "/api/ai/suggestions", `{"description":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, float64(http.StatusBadRequest), body["code"])
	detail := body["detail"].([]any)
	require.Len(t, detail, 1)
	assert.Equal(t, "description", detail[0].(map[string]any)["field"])
}

func TestSuggestionsHandlerMalformedBody(t *testing.T) {
	called := false
	svc := &MockService{SuggestFunc: func(context.Context, book.SuggestionQuery) ([]book.Book, error) {
		called = true
		return nil, nil
	}}
	r := setupRouter(svc, routerOptions{})

	w := doRequest(r, http.MethodPost, "/api/ai/suggestions", `{"description":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called)
}

func TestGenerationFailureDoesNotLeak(t *testing.T) {
	internal := errors.New("rpc error: code = PermissionDenied desc = API key AIza-secret expired")
	svc := &MockService{RandomFunc: func(context.Context, book.RandomQuery) (book.Book, error) {
		return book.Book{}, &ai.GenerationError{Kind: ai.KindTransport, Op: "find_random_book", Err: internal}
	}}
	r := setupRouter(svc, routerOptions{})

	w := doRequest(r, http.MethodPost, "/api/ai/random", `{"category":"Fiction","genre":"Fantasy","readingAge":"6-8"}`)
	require.Equal(t, http.StatusBadGateway, w.Code)

	body := decode(t, w)
	assert.Equal(t, generationFailedMessage, body["error"])
	assert.Equal(t, "", body["detail"])
	assert.NotContains(t, w.Body.String(), "AIza-secret")
	assert.NotContains(t, w.Body.String(), "PermissionDenied")
}

func TestRandomHandler(t *testing.T) {
	svc := &MockService{RandomFunc: func(_ context.Context, q book.RandomQuery) (book.Book, error) {
		assert.Equal(t, book.RandomQuery{Category: "Fiction", Genre: "Fantasy", ReadingAge: "6-8"}, q)
		return book.Book{Title: "The Hobbit", Author: "J.R.R. Tolkien", CoverImage: "https://x/h.jpg"}, nil
	}}
	r := setupRouter(svc, routerOptions{})

	w := doRequest(r, http.MethodPost, "/api/ai/random", `{"category":"Fiction","genre":"Fantasy","readingAge":"6-8"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp BookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "The Hobbit", resp.Data.Title)
}

func TestSummaryHandler(t *testing.T) {
	svc := &MockService{SummarizeFunc: func(_ context.Context, q book.ReadingLogQuery) (string, error) {
		assert.Equal(t, "Charlotte's Web", q.BookLog)
		return "Enjoys animal stories.", nil
	}}
	r := setupRouter(svc, routerOptions{})

	w := doRequest(r, http.MethodPost, "/api/ai/reading-log/summary", `{"bookLog":"Charlotte's Web"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Enjoys animal stories.", decode(t, w)["summary"])
}

func TestSearchHandler(t *testing.T) {
	svc := &MockService{SearchFunc: func(_ context.Context, q book.KeywordQuery) ([]book.Book, error) {
		assert.Equal(t, "dinosaurs", q.Query)
		return []book.Book{{Title: "Dinosaurs Before Dark", Source: book.SourceGoogleBooks}}, nil
	}}
	r := setupRouter(svc, routerOptions{})

	w := doRequest(r, http.MethodGet, "/api/books/search?q=dinosaurs", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])
}

func TestSearchHandlerErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"missing key", &book.CredentialError{Name: "GOOGLE_BOOKS_API_KEY"}, http.StatusServiceUnavailable, "credential missing: GOOGLE_BOOKS_API_KEY is not set"},
		{"upstream", &provider.SearchError{Message: "Google Books is unavailable right now.", Err: errors.New("googleapi: Error 500")}, http.StatusBadGateway, "Google Books is unavailable right now."},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockService{SearchFunc: func(context.Context, book.KeywordQuery) ([]book.Book, error) {
				return nil, tt.err
			}}
			w := doRequest(setupRouter(svc, routerOptions{}), http.MethodGet, "/api/books/search?q=x", "")
			require.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.detail, decode(t, w)["detail"])
		})
	}
}

func TestCoverHandler(t *testing.T) {
	svc := &MockService{CoverFunc: func(_ context.Context, q book.CoverQuery) (string, error) {
		assert.Equal(t, "Matilda", q.Title)
		assert.Equal(t, "Roald Dahl", q.Author)
		return "https://books.google.com/m.jpg", nil
	}}
	r := setupRouter(svc, routerOptions{})

	w := doRequest(r, http.MethodGet, "/api/covers?title=Matilda&author=Roald+Dahl", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://books.google.com/m.jpg", decode(t, w)["coverImage"])
}
