package book

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// SuggestionQuery is the free-text description behind an AI search.
type SuggestionQuery struct {
	Description string `json:"description" validate:"required,max=2000"`
}

// RandomQuery constrains a single random pick.
type RandomQuery struct {
	Category   string `json:"category" validate:"required,max=100"`
	Genre      string `json:"genre" validate:"required,max=100"`
	ReadingAge string `json:"readingAge" validate:"required,max=50"`
}

// CoverQuery identifies the book whose cover is wanted. Description is
// only read by the generative strategy.
type CoverQuery struct {
	Title       string `json:"title" form:"title" validate:"required,max=300"`
	Author      string `json:"author" form:"author" validate:"max=300"`
	Description string `json:"description" form:"description" validate:"max=2000"`
}

// KeywordQuery is passed straight through to the bibliographic search API.
type KeywordQuery struct {
	Query string `json:"q" form:"q" validate:"required,max=300"`
}

// ReadingLogQuery carries a student's reading log for summarising.
type ReadingLogQuery struct {
	BookLog string `json:"bookLog" validate:"required,max=20000"`
}

var (
	validate  = newValidator()
	titleCase = cases.Title(language.English)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

func clean(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

func (q SuggestionQuery) Normalize() SuggestionQuery {
	q.Description = clean(q.Description)
	return q
}

func (q SuggestionQuery) Validate() error { return validateStruct(q) }

// Normalize trims every field and title-cases category and genre so the
// prompt reads "Fiction"/"Fantasy" regardless of how the form sent them.
func (q RandomQuery) Normalize() RandomQuery {
	q.Category = titleCase.String(clean(q.Category))
	q.Genre = titleCase.String(clean(q.Genre))
	q.ReadingAge = clean(q.ReadingAge)
	return q
}

func (q RandomQuery) Validate() error { return validateStruct(q) }

func (q CoverQuery) Normalize() CoverQuery {
	q.Title = clean(q.Title)
	q.Author = clean(q.Author)
	q.Description = clean(q.Description)
	return q
}

func (q CoverQuery) Validate() error { return validateStruct(q) }

func (q KeywordQuery) Normalize() KeywordQuery {
	q.Query = clean(q.Query)
	return q
}

func (q KeywordQuery) Validate() error { return validateStruct(q) }

func (q ReadingLogQuery) Normalize() ReadingLogQuery {
	q.BookLog = clean(q.BookLog)
	return q
}

func (q ReadingLogQuery) Validate() error { return validateStruct(q) }

// Normalize trims the text fields of model output. The cover is left alone.
func (s BookSuggestion) Normalize() BookSuggestion {
	s.Title = clean(s.Title)
	s.Author = clean(s.Author)
	s.Description = clean(s.Description)
	s.AgeRange = clean(s.AgeRange)
	return s
}

// ValidateSuggestion rejects model output missing a title or author.
// Pass a normalized suggestion.
func ValidateSuggestion(s BookSuggestion) error {
	return validateStruct(s)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ve := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return ve
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}
