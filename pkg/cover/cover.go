// Package cover resolves a displayable cover image for a book. Resolution
// never fails: every error path ends at the placeholder URL.
package cover

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/yourusername/book-finder/pkg/ai"
	"github.com/yourusername/book-finder/pkg/book"
	"github.com/yourusername/book-finder/pkg/provider"
)

// Placeholder is returned whenever no cover can be found or generated.
const Placeholder = book.PlaceholderCover

const (
	StrategyLookup     = "lookup"
	StrategyGenerative = "generative"
)

// Resolver maps a book to a cover URL. Implementations absorb every failure.
type Resolver interface {
	Resolve(ctx context.Context, q book.CoverQuery) string
	Strategy() string
}

// New picks exactly one strategy for the deployment.
func New(strategy string, finder provider.ThumbnailFinder, images ai.ImageModel) (Resolver, error) {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case "", StrategyLookup:
		if finder == nil {
			return nil, fmt.Errorf("cover strategy %q needs a thumbnail finder", StrategyLookup)
		}
		return NewLookupResolver(finder), nil
	case StrategyGenerative:
		if images == nil {
			return nil, fmt.Errorf("cover strategy %q needs an image model", StrategyGenerative)
		}
		return NewGenerativeResolver(images), nil
	default:
		return nil, fmt.Errorf("unknown cover strategy %q", strategy)
	}
}

// usable reports whether u can be handed to a browser as an image source.
func usable(u string) bool {
	if strings.HasPrefix(u, "data:image/") {
		return true
	}
	parsed, err := url.Parse(u)
	return err == nil && parsed.Scheme == "https" && parsed.Host != ""
}
