// Package book holds the transient records passed between the AI flows,
// the cover resolver and the HTTP layer.
package book

import (
	"strings"
	"unicode"
)

// PlaceholderCover is served whenever no real cover can be resolved.
const PlaceholderCover = "https://placehold.co/300x400.png"

const (
	SourceAI          = "ai"
	SourceGoogleBooks = "google_books"
)

// BookSuggestion is one recommendation produced by the text model.
// CoverImage stays empty until the enrichment pipeline fills it.
type BookSuggestion struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Description string `json:"description"`
	AgeRange    string `json:"ageRange"`
	CoverImage  string `json:"coverImage,omitempty"`
}

// WithCover returns a copy of s carrying the given cover URL.
func (s BookSuggestion) WithCover(url string) BookSuggestion {
	s.CoverImage = url
	return s
}

// Book is the shape rendered by clients, shared by AI suggestions and
// keyword search results so the front end does not care where a book came from.
type Book struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	AgeRange    string   `json:"ageRange,omitempty"`
	CoverImage  string   `json:"coverImage"`
	AIHint      string   `json:"aiHint,omitempty"`
	ISBN        string   `json:"isbn,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Source      string   `json:"source"`
}

// FromSuggestion converts an enriched suggestion to a Book.
func FromSuggestion(s BookSuggestion) Book {
	cover := s.CoverImage
	if cover == "" {
		cover = PlaceholderCover
	}
	return Book{
		Title:       s.Title,
		Author:      s.Author,
		Description: s.Description,
		AgeRange:    s.AgeRange,
		CoverImage:  cover,
		AIHint:      Hint(s.Title),
		Source:      SourceAI,
	}
}

// FromSuggestions converts in order. A nil input yields an empty slice.
func FromSuggestions(in []BookSuggestion) []Book {
	out := make([]Book, 0, len(in))
	for _, s := range in {
		out = append(out, FromSuggestion(s))
	}
	return out
}

// Hint builds the short image hint tag used by the UI: the first two
// words of the title, lowercased, letters and digits only.
func Hint(title string) string {
	words := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) > 2 {
		words = words[:2]
	}
	return strings.Join(words, " ")
}
