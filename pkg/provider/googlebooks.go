package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/books/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/yourusername/book-finder/pkg/book"
)

const (
	defaultMaxResults = 20
	defaultTimeout    = 10 * time.Second

	searchFields googleapi.Field = "items(id,volumeInfo(title,authors,description,categories,industryIdentifiers,imageLinks))"
	coverFields  googleapi.Field = "items(volumeInfo/imageLinks)"
)

// GoogleBooksConfig holds connection details for the Google Books API.
type GoogleBooksConfig struct {
	APIKey     string
	BaseURL    string // Optional (tests)
	MaxResults int
	Timeout    time.Duration
}

// GoogleBooks queries volumes.list. Without an API key every call fails
// with book.ErrCredentialMissing and no request is made.
type GoogleBooks struct {
	svc        *books.Service
	maxResults int64
	timeout    time.Duration
}

func NewGoogleBooks(ctx context.Context, cfg GoogleBooksConfig) (*GoogleBooks, error) {
	g := &GoogleBooks{
		maxResults: int64(cfg.MaxResults),
		timeout:    cfg.Timeout,
	}
	if g.maxResults <= 0 || g.maxResults > 40 {
		g.maxResults = defaultMaxResults
	}
	if g.timeout <= 0 {
		g.timeout = defaultTimeout
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return g, nil
	}

	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(strings.TrimRight(cfg.BaseURL, "/")+"/"))
	}
	svc, err := books.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create google books client: %w", err)
	}
	g.svc = svc
	return g, nil
}

// Configured reports whether an API key was supplied.
func (g *GoogleBooks) Configured() bool { return g.svc != nil }

// Search passes the keyword query straight through to Google Books.
func (g *GoogleBooks) Search(ctx context.Context, q book.KeywordQuery) ([]book.Book, error) {
	if g.svc == nil {
		return nil, &book.CredentialError{Name: "GOOGLE_BOOKS_API_KEY"}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.svc.Volumes.List(q.Query).
		Fields(searchFields).
		MaxResults(g.maxResults).
		PrintType("books").
		Context(ctx).
		Do()
	if err != nil {
		return nil, friendlyError("search", err)
	}

	out := make([]book.Book, 0, len(resp.Items))
	for _, v := range resp.Items {
		if v == nil || v.VolumeInfo == nil {
			continue
		}
		out = append(out, toBook(v))
	}
	return out, nil
}

// FirstThumbnail returns the thumbnail of the best match for title and
// author, falling back to the small thumbnail. An empty string means the
// API answered but had no image.
func (g *GoogleBooks) FirstThumbnail(ctx context.Context, title, author string) (string, error) {
	if g.svc == nil {
		return "", &book.CredentialError{Name: "GOOGLE_BOOKS_API_KEY"}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.svc.Volumes.List(coverQuery(title, author)).
		Fields(coverFields).
		Context(ctx).
		Do()
	if err != nil {
		return "", friendlyError("cover lookup", err)
	}
	if len(resp.Items) == 0 || resp.Items[0] == nil || resp.Items[0].VolumeInfo == nil {
		return "", nil
	}
	return thumbnail(resp.Items[0].VolumeInfo.ImageLinks), nil
}

func coverQuery(title, author string) string {
	if author == "" {
		return "intitle:" + title
	}
	return fmt.Sprintf("intitle:%s+inauthor:%s", title, author)
}

func thumbnail(links *books.VolumeVolumeInfoImageLinks) string {
	if links == nil {
		return ""
	}
	if links.Thumbnail != "" {
		return links.Thumbnail
	}
	return links.SmallThumbnail
}

func toBook(v *books.Volume) book.Book {
	info := v.VolumeInfo
	cover := SecureURL(thumbnail(info.ImageLinks))
	if cover == "" {
		cover = book.PlaceholderCover
	}
	return book.Book{
		ID:          v.Id,
		Title:       info.Title,
		Author:      strings.Join(info.Authors, ", "),
		Description: plainText(info.Description),
		CoverImage:  cover,
		AIHint:      book.Hint(info.Title),
		ISBN:        preferredISBN(info.IndustryIdentifiers),
		Categories:  info.Categories,
		Source:      book.SourceGoogleBooks,
	}
}

// friendlyError maps technical errors to user-friendly messages.
func friendlyError(action string, err error) error {
	friendly := "Google Books request failed."

	var apiErr *googleapi.Error
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		friendly = "Connection to Google Books timed out."
	case errors.As(err, &apiErr):
		switch {
		case apiErr.Code == http.StatusBadRequest:
			friendly = "Google Books rejected the query."
		case apiErr.Code == http.StatusForbidden || apiErr.Code == http.StatusUnauthorized:
			friendly = "Google Books rejected the API key."
		case apiErr.Code == http.StatusTooManyRequests:
			friendly = "Google Books rate limit reached. Please try again later."
		case apiErr.Code >= 500:
			friendly = "Google Books is unavailable right now."
		}
	case strings.Contains(err.Error(), "connection refused"):
		friendly = "Google Books refused the connection."
	case strings.Contains(err.Error(), "no such host"):
		friendly = "Could not resolve hostname for Google Books."
	}

	// Log original error for debugging but return friendly one
	slog.Error("Google Books error", "action", action, "original_error", err)
	return &SearchError{Message: friendly, Err: err}
}
