package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/yourusername/book-finder/pkg/book"
	"github.com/yourusername/book-finder/pkg/telemetry"
)

// Librarian runs the text generation flows on top of a TextModel.
type Librarian struct {
	model TextModel
}

func NewLibrarian(model TextModel) *Librarian {
	return &Librarian{model: model}
}

// Model reports the backend in use.
func (l *Librarian) Model() string { return l.model.Name() }

type suggestionList struct {
	Suggestions []book.BookSuggestion `json:"suggestions"`
}

type readingLogSummary struct {
	Summary string `json:"summary"`
}

// FindBooks asks the model for books matching a free-text description.
// A reply without suggestions yields an empty, non-nil list.
func (l *Librarian) FindBooks(ctx context.Context, q book.SuggestionQuery) ([]book.BookSuggestion, error) {
	const op = "find_books"

	var out suggestionList
	if err := l.generate(ctx, op, findBooksPrompt(q), suggestionListOutput, &out); err != nil {
		return nil, err
	}

	suggestions := make([]book.BookSuggestion, 0, len(out.Suggestions))
	for i, s := range out.Suggestions {
		s = s.Normalize()
		if err := book.ValidateSuggestion(s); err != nil {
			return nil, l.fail(ctx, op, KindSchema, fmt.Errorf("suggestion %d: %w", i, err))
		}
		suggestions = append(suggestions, s.WithCover(""))
	}
	return suggestions, nil
}

// FindRandomBook asks the model for exactly one book matching the constraints.
func (l *Librarian) FindRandomBook(ctx context.Context, q book.RandomQuery) (book.BookSuggestion, error) {
	const op = "find_random_book"

	var out book.BookSuggestion
	if err := l.generate(ctx, op, randomBookPrompt(q), suggestionOutput, &out); err != nil {
		return book.BookSuggestion{}, err
	}
	out = out.Normalize()
	if err := book.ValidateSuggestion(out); err != nil {
		return book.BookSuggestion{}, l.fail(ctx, op, KindSchema, err)
	}
	return out.WithCover(""), nil
}

// SummarizeReadingLog condenses a student's reading log for a teacher.
func (l *Librarian) SummarizeReadingLog(ctx context.Context, q book.ReadingLogQuery) (string, error) {
	const op = "summarize_reading_log"

	var out readingLogSummary
	if err := l.generate(ctx, op, readingLogPrompt(q), summaryOutput, &out); err != nil {
		return "", err
	}
	summary := strings.TrimSpace(out.Summary)
	if summary == "" {
		return "", l.fail(ctx, op, KindEmpty, errEmptyResponse)
	}
	return summary, nil
}

func (l *Librarian) generate(ctx context.Context, op, prompt string, schema outputSchema, dst any) error {
	ctx, span := telemetry.Start(ctx, "ai.generate",
		attribute.String("ai.op", op),
		attribute.String("ai.model", l.model.Name()),
	)
	defer span.End()

	raw, err := l.model.GenerateJSON(ctx, Request{Name: schema.name, Prompt: prompt, Schema: schema.genai})
	if err != nil {
		telemetry.Fail(span, err)
		if errors.Is(err, errEmptyResponse) {
			return l.fail(ctx, op, KindEmpty, err)
		}
		return l.fail(ctx, op, KindTransport, err)
	}

	if err := schema.decode(raw, dst); err != nil {
		telemetry.Fail(span, err)
		if errors.Is(err, errEmptyResponse) {
			return l.fail(ctx, op, KindEmpty, err)
		}
		return l.fail(ctx, op, KindSchema, err)
	}
	return nil
}

func (l *Librarian) fail(ctx context.Context, op string, kind Kind, err error) error {
	slog.ErrorContext(ctx, "ai generation failed", "op", op, "kind", kind, "model", l.model.Name(), "error", err)
	return &GenerationError{Kind: kind, Op: op, Err: err}
}
