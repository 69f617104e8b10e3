package cover

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/yourusername/book-finder/pkg/ai"
	"github.com/yourusername/book-finder/pkg/book"
	"github.com/yourusername/book-finder/pkg/telemetry"
)

// GenerativeResolver draws an illustrative cover with an image model.
type GenerativeResolver struct {
	images ai.ImageModel
}

func NewGenerativeResolver(images ai.ImageModel) *GenerativeResolver {
	return &GenerativeResolver{images: images}
}

func (r *GenerativeResolver) Strategy() string { return StrategyGenerative }

func (r *GenerativeResolver) Resolve(ctx context.Context, q book.CoverQuery) string {
	ctx, span := telemetry.Start(ctx, "cover.resolve",
		attribute.String("cover.strategy", StrategyGenerative),
		attribute.String("book.title", q.Title),
	)
	defer span.End()

	img, err := r.images.GenerateImage(ctx, coverPrompt(q))
	if err != nil {
		telemetry.Fail(span, err)
		slog.ErrorContext(ctx, "cover generation failed", "title", q.Title, "author", q.Author, "error", err)
		return Placeholder
	}
	if len(img.Data) == 0 || img.MIMEType == "" {
		slog.WarnContext(ctx, "cover generation returned an empty image", "title", q.Title)
		return Placeholder
	}

	uri := img.DataURI()
	if !usable(uri) {
		slog.WarnContext(ctx, "cover generation returned a non-image payload", "title", q.Title, "mime_type", img.MIMEType)
		return Placeholder
	}
	return uri
}

func coverPrompt(q book.CoverQuery) string {
	return fmt.Sprintf(`Create a vibrant, whimsical illustration for the cover of a children's book.
The book is titled "%s" by %s.
Story: %s
The illustration must not contain any text, letters or words. Fill the whole image edge to edge with no borders.`,
		q.Title, authorOrUnknown(q.Author), q.Description)
}

func authorOrUnknown(a string) string {
	if a == "" {
		return "an unknown author"
	}
	return a
}
