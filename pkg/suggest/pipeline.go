// Package suggest chains suggestion generation to cover enrichment.
package suggest

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/book-finder/pkg/book"
	"github.com/yourusername/book-finder/pkg/cover"
	"github.com/yourusername/book-finder/pkg/telemetry"
)

// Pipeline attaches a cover to every suggestion.
type Pipeline struct {
	covers cover.Resolver
}

func NewPipeline(covers cover.Resolver) *Pipeline {
	return &Pipeline{covers: covers}
}

// Enrich starts every cover lookup at once, waits for all of them and
// returns the suggestions in input order. Only CoverImage differs between
// input and output.
func (p *Pipeline) Enrich(ctx context.Context, in []book.BookSuggestion) []book.BookSuggestion {
	out := make([]book.BookSuggestion, len(in))
	if len(in) == 0 {
		return out
	}

	ctx, span := telemetry.Start(ctx, "suggest.enrich",
		attribute.Int("suggest.count", len(in)),
		attribute.String("cover.strategy", p.covers.Strategy()),
	)
	defer span.End()

	var g errgroup.Group
	for i, s := range in {
		g.Go(func() error {
			url := p.covers.Resolve(ctx, book.CoverQuery{
				Title:       s.Title,
				Author:      s.Author,
				Description: s.Description,
			})
			out[i] = s.WithCover(url)
			return nil
		})
	}
	_ = g.Wait()

	return out
}
