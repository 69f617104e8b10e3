package provider

import (
	"context"

	"github.com/yourusername/book-finder/pkg/book"
)

// SearchProvider runs keyword searches against a bibliographic catalogue.
type SearchProvider interface {
	Search(ctx context.Context, q book.KeywordQuery) ([]book.Book, error)
}

// ThumbnailFinder looks up the cover thumbnail of a single title.
type ThumbnailFinder interface {
	FirstThumbnail(ctx context.Context, title, author string) (string, error)
}

// SearchError carries a message safe to show users next to the original failure.
type SearchError struct {
	Message string
	Err     error
}

func (e *SearchError) Error() string { return e.Message }

func (e *SearchError) Unwrap() error { return e.Err }
