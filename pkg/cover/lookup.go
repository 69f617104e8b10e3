package cover

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/yourusername/book-finder/pkg/book"
	"github.com/yourusername/book-finder/pkg/provider"
	"github.com/yourusername/book-finder/pkg/telemetry"
)

// LookupResolver uses the first matching thumbnail from the bibliographic API.
type LookupResolver struct {
	finder provider.ThumbnailFinder
}

func NewLookupResolver(finder provider.ThumbnailFinder) *LookupResolver {
	return &LookupResolver{finder: finder}
}

func (r *LookupResolver) Strategy() string { return StrategyLookup }

func (r *LookupResolver) Resolve(ctx context.Context, q book.CoverQuery) string {
	ctx, span := telemetry.Start(ctx, "cover.resolve",
		attribute.String("cover.strategy", StrategyLookup),
		attribute.String("book.title", q.Title),
	)
	defer span.End()

	thumb, err := r.finder.FirstThumbnail(ctx, q.Title, q.Author)
	if err != nil {
		telemetry.Fail(span, err)
		if errors.Is(err, book.ErrCredentialMissing) {
			slog.WarnContext(ctx, "cover lookup skipped", "reason", err)
		} else {
			slog.ErrorContext(ctx, "cover lookup failed", "title", q.Title, "author", q.Author, "error", err)
		}
		return Placeholder
	}

	cover := provider.SecureURL(thumb)
	if !usable(cover) {
		if thumb != "" {
			slog.WarnContext(ctx, "cover lookup returned unusable url", "title", q.Title, "url", thumb)
		}
		return Placeholder
	}
	span.SetAttributes(attribute.Bool("cover.found", true))
	return cover
}
