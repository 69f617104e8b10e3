package ai

import (
	"fmt"

	"github.com/yourusername/book-finder/pkg/book"
)

func findBooksPrompt(q book.SuggestionQuery) string {
	return fmt.Sprintf(`You are a helpful assistant that suggests books based on a description provided by the user.

The user is looking for books described as: %s.

Suggest books that match the description. Include the title, author, a short description of the book, and the age range the book is appropriate for. Return the results as JSON.`,
		q.Description)
}

func randomBookPrompt(q book.RandomQuery) string {
	return fmt.Sprintf(`You are a helpful assistant that suggests a random book for children.

Suggest one single book that is in the genre '%s' and the category '%s' and is appropriate for the age range '%s'.

Do not suggest more than one book. Return the result as JSON.`,
		q.Genre, q.Category, q.ReadingAge)
}

func readingLogPrompt(q book.ReadingLogQuery) string {
	return fmt.Sprintf(`You are an AI assistant helping teachers understand student reading habits.

Summarize the following book log, highlighting the student's reading preferences, common themes, and any notable patterns.

Book Log:
%s`,
		q.BookLog)
}
