package suggest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yourusername/book-finder/pkg/book"
	"github.com/yourusername/book-finder/pkg/cover"
	"github.com/yourusername/book-finder/pkg/provider"
)

// Generator is the text generation side, satisfied by *ai.Librarian.
type Generator interface {
	FindBooks(ctx context.Context, q book.SuggestionQuery) ([]book.BookSuggestion, error)
	FindRandomBook(ctx context.Context, q book.RandomQuery) (book.BookSuggestion, error)
	SummarizeReadingLog(ctx context.Context, q book.ReadingLogQuery) (string, error)
}

// Service is what the HTTP handlers and CLI commands call.
type Service struct {
	gen      Generator
	search   provider.SearchProvider
	covers   cover.Resolver
	pipeline *Pipeline
}

// NewService wires the flows. gen may be nil when no text model is
// configured; the generation flows then fail with book.ErrCredentialMissing.
func NewService(gen Generator, search provider.SearchProvider, covers cover.Resolver) *Service {
	return &Service{
		gen:      gen,
		search:   search,
		covers:   covers,
		pipeline: NewPipeline(covers),
	}
}

func (s *Service) generator() (Generator, error) {
	if s.gen == nil {
		return nil, fmt.Errorf("%w: no text model configured", book.ErrCredentialMissing)
	}
	return s.gen, nil
}

// CoverStrategy reports the active cover resolution strategy.
func (s *Service) CoverStrategy() string { return s.covers.Strategy() }

// Suggest generates suggestions for a description and attaches covers.
func (s *Service) Suggest(ctx context.Context, q book.SuggestionQuery) ([]book.Book, error) {
	q = q.Normalize()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	gen, err := s.generator()
	if err != nil {
		return nil, err
	}
	suggestions, err := gen.FindBooks(ctx, q)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "suggestions generated", "count", len(suggestions))

	return book.FromSuggestions(s.pipeline.Enrich(ctx, suggestions)), nil
}

// Random generates one suggestion for the constraints and attaches its cover.
func (s *Service) Random(ctx context.Context, q book.RandomQuery) (book.Book, error) {
	q = q.Normalize()
	if err := q.Validate(); err != nil {
		return book.Book{}, err
	}

	gen, err := s.generator()
	if err != nil {
		return book.Book{}, err
	}
	suggestion, err := gen.FindRandomBook(ctx, q)
	if err != nil {
		return book.Book{}, err
	}

	enriched := s.pipeline.Enrich(ctx, []book.BookSuggestion{suggestion})
	return book.FromSuggestion(enriched[0]), nil
}

// Search runs a keyword search against the bibliographic API.
func (s *Service) Search(ctx context.Context, q book.KeywordQuery) ([]book.Book, error) {
	q = q.Normalize()
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return s.search.Search(ctx, q)
}

// Summarize condenses a reading log.
func (s *Service) Summarize(ctx context.Context, q book.ReadingLogQuery) (string, error) {
	q = q.Normalize()
	if err := q.Validate(); err != nil {
		return "", err
	}
	gen, err := s.generator()
	if err != nil {
		return "", err
	}
	return gen.SummarizeReadingLog(ctx, q)
}

// Cover resolves a single cover. Only input validation can fail.
func (s *Service) Cover(ctx context.Context, q book.CoverQuery) (string, error) {
	q = q.Normalize()
	if err := q.Validate(); err != nil {
		return "", err
	}
	return s.covers.Resolve(ctx, q), nil
}
