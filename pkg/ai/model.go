package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"

	"github.com/yourusername/book-finder/pkg/book"
)

// Request is one structured generation call.
type Request struct {
	// Name identifies the flow in logs, spans and provider-side schema names.
	Name   string
	Prompt string
	// Schema describes the JSON document the model must return.
	Schema *genai.Schema
}

// TextModel is the generative text boundary. Implementations return the
// raw model text; parsing and validation happen in the Librarian.
type TextModel interface {
	GenerateJSON(ctx context.Context, req Request) (string, error)
	Name() string
}

var errEmptyResponse = errors.New("model returned no content")

// Kind classifies a generation failure.
type Kind string

const (
	KindTransport Kind = "transport"
	KindSchema    Kind = "schema"
	KindEmpty     Kind = "empty"
)

// GenerationError is returned by every Librarian flow that fails.
// errors.Is(err, book.ErrGeneration) holds for all of them.
type GenerationError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", book.ErrGeneration, e.Op, e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) Is(target error) bool { return target == book.ErrGeneration }

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
