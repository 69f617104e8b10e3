package provider

import (
	"regexp"
	"strings"

	"google.golang.org/api/books/v1"
)

// isbnPrefixRegex matches common ISBN prefixes like "ISBN-13:", "ISBN-10:", "ISBN:".
var isbnPrefixRegex = regexp.MustCompile(`(?i)^(isbn-13|isbn-10|isbn)\s*:\s*`)

// isbnCleanRegex matches any character that is not a digit or the letter 'X' (case-insensitive).
var isbnCleanRegex = regexp.MustCompile(`[^0-9xX]`)

// CleanISBN sanitizes a raw string to extract a pure ISBN number.
func CleanISBN(raw string) string {
	s := isbnPrefixRegex.ReplaceAllString(raw, "")
	s = isbnCleanRegex.ReplaceAllString(s, "")
	return strings.ToUpper(strings.TrimSpace(s))
}

// preferredISBN picks ISBN-13 over ISBN-10 from a volume's identifiers.
func preferredISBN(ids []*books.VolumeVolumeInfoIndustryIdentifiers) string {
	var isbn10 string
	for _, id := range ids {
		if id == nil {
			continue
		}
		switch id.Type {
		case "ISBN_13":
			return CleanISBN(id.Identifier)
		case "ISBN_10":
			if isbn10 == "" {
				isbn10 = CleanISBN(id.Identifier)
			}
		}
	}
	return isbn10
}

// SecureURL rewrites a leading http: scheme to https:.
func SecureURL(u string) string {
	if strings.HasPrefix(u, "http:") {
		return "https:" + strings.TrimPrefix(u, "http:")
	}
	return u
}
