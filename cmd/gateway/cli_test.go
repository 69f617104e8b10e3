package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/book-finder/pkg/book"
)

// runCLI executes the root command in an empty directory with no keys set.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, name := range []string{
		"GEMINI_API_KEY", "GOOGLE_API_KEY", "OPENAI_API_KEY", "GOOGLE_BOOKS_API_KEY",
		"BOOKFINDER_AI_GEMINI_API_KEY", "BOOKFINDER_AI_OPENAI_API_KEY", "BOOKFINDER_BOOKS_API_KEY",
		"BOOKFINDER_AI_PROVIDER", "BOOKFINDER_COVER_STRATEGY",
	} {
		t.Setenv(name, "")
	}

	prev := slog.Default()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		slog.SetDefault(prev)
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTextModelAnnotations(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"serve", true},
		{"suggest", true},
		{"random", true},
		{"summarize", true},
		{"cover", false},
		{"search", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{tt.name})
			require.NoError(t, err)
			assert.Equal(t, tt.want, needsTextModel(cmd))
		})
	}
}

func TestCoverCommandWithoutKeys(t *testing.T) {
	out, err := runCLI(t, "cover", "--title", "Matilda", "--author", "Roald Dahl")
	require.NoError(t, err)

	var resp CoverResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, book.PlaceholderCover, resp.CoverImage)
}

func TestSearchCommandWithoutKeysReachesSearch(t *testing.T) {
	_, err := runCLI(t, "search", "dinosaurs")
	require.Error(t, err)

	var cerr *book.CredentialError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "GOOGLE_BOOKS_API_KEY", cerr.Name, "the text-model key is not checked for search")
}

func TestSuggestCommandRequiresTextModelKey(t *testing.T) {
	_, err := runCLI(t, "suggest", "talking", "animals")
	require.Error(t, err)

	var cerr *book.CredentialError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "GEMINI_API_KEY", cerr.Name)
}
