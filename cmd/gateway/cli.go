package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yourusername/book-finder/pkg/book"
)

// cliMessage hides model failure details the same way the HTTP API does.
func cliMessage(err error) string {
	if errors.Is(err, book.ErrGeneration) {
		return generationFailedMessage
	}
	return err.Error()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// withService builds the service graph for a one-shot command.
func withService(run func(cmd *cobra.Command, args []string, svc BookService) (any, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg, needsTextModel(cmd))
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := run(cmd, args, a.service)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	}
}

var suggestCmd = &cobra.Command{
	Use:         "suggest <description>",
	Short:       "Suggest books matching a description",
	Annotations: textModelRequired,
	Args:        cobra.MinimumNArgs(1),
	RunE: withService(func(cmd *cobra.Command, args []string, svc BookService) (any, error) {
		return svc.Suggest(cmd.Context(), book.SuggestionQuery{Description: strings.Join(args, " ")})
	}),
}

var randomCmd = &cobra.Command{
	Use:         "random",
	Short:       "Suggest one random book",
	Annotations: textModelRequired,
	RunE: withService(func(cmd *cobra.Command, args []string, svc BookService) (any, error) {
		category, _ := cmd.Flags().GetString("category")
		genre, _ := cmd.Flags().GetString("genre")
		age, _ := cmd.Flags().GetString("age")
		return svc.Random(cmd.Context(), book.RandomQuery{Category: category, Genre: genre, ReadingAge: age})
	}),
}

var coverCmd = &cobra.Command{
	Use:   "cover",
	Short: "Resolve a cover image URL",
	RunE: withService(func(cmd *cobra.Command, args []string, svc BookService) (any, error) {
		title, _ := cmd.Flags().GetString("title")
		author, _ := cmd.Flags().GetString("author")
		description, _ := cmd.Flags().GetString("description")
		url, err := svc.Cover(cmd.Context(), book.CoverQuery{Title: title, Author: author, Description: description})
		if err != nil {
			return nil, err
		}
		return CoverResponse{Status: "success", CoverImage: url}, nil
	}),
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Keyword search on Google Books",
	Args:  cobra.MinimumNArgs(1),
	RunE: withService(func(cmd *cobra.Command, args []string, svc BookService) (any, error) {
		return svc.Search(cmd.Context(), book.KeywordQuery{Query: strings.Join(args, " ")})
	}),
}

var summarizeCmd = &cobra.Command{
	Use:         "summarize",
	Short:       "Summarize a reading log read from a file or stdin",
	Annotations: textModelRequired,
	RunE: withService(func(cmd *cobra.Command, args []string, svc BookService) (any, error) {
		path, _ := cmd.Flags().GetString("file")
		var (
			data []byte
			err  error
		)
		if path == "" || path == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read reading log: %w", err)
		}

		summary, err := svc.Summarize(cmd.Context(), book.ReadingLogQuery{BookLog: string(data)})
		if err != nil {
			return nil, err
		}
		return SummaryResponse{Status: "success", Summary: summary}, nil
	}),
}

func init() {
	randomCmd.Flags().String("category", "", "book category, e.g. Fiction")
	randomCmd.Flags().String("genre", "", "book genre, e.g. Fantasy")
	randomCmd.Flags().String("age", "", "reading age, e.g. 6-8")

	coverCmd.Flags().String("title", "", "book title")
	coverCmd.Flags().String("author", "", "book author")
	coverCmd.Flags().String("description", "", "short description (generative strategy only)")

	summarizeCmd.Flags().StringP("file", "f", "", "reading log file (default: stdin)")
}
