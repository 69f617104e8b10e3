package main

import (
	"context"

	"github.com/yourusername/book-finder/pkg/book"
)

type MockService struct {
	SuggestFunc   func(ctx context.Context, q book.SuggestionQuery) ([]book.Book, error)
	RandomFunc    func(ctx context.Context, q book.RandomQuery) (book.Book, error)
	SearchFunc    func(ctx context.Context, q book.KeywordQuery) ([]book.Book, error)
	SummarizeFunc func(ctx context.Context, q book.ReadingLogQuery) (string, error)
	CoverFunc     func(ctx context.Context, q book.CoverQuery) (string, error)
}

func (m *MockService) Suggest(ctx context.Context, q book.SuggestionQuery) ([]book.Book, error) {
	if m.SuggestFunc != nil {
		return m.SuggestFunc(ctx, q)
	}
	return []book.Book{}, nil
}

func (m *MockService) Random(ctx context.Context, q book.RandomQuery) (book.Book, error) {
	if m.RandomFunc != nil {
		return m.RandomFunc(ctx, q)
	}
	return book.Book{}, nil
}

func (m *MockService) Search(ctx context.Context, q book.KeywordQuery) ([]book.Book, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, q)
	}
	return []book.Book{}, nil
}

func (m *MockService) Summarize(ctx context.Context, q book.ReadingLogQuery) (string, error) {
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, q)
	}
	return "", nil
}

func (m *MockService) Cover(ctx context.Context, q book.CoverQuery) (string, error) {
	if m.CoverFunc != nil {
		return m.CoverFunc(ctx, q)
	}
	return book.PlaceholderCover, nil
}

func (m *MockService) CoverStrategy() string { return "lookup" }
