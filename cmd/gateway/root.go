package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/book-finder/pkg/config"
)

const version = "1.0.0"

// textModelAnnotation marks commands that call the text model. Only those
// refuse to start without its key.
const textModelAnnotation = "book-finder/text-model"

var textModelRequired = map[string]string{textModelAnnotation: "required"}

func needsTextModel(cmd *cobra.Command) bool {
	return cmd.Annotations[textModelAnnotation] == "required"
}

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Children's book finder with AI suggestions and cover art",
	Long: `Book Finder suggests children's books from a free-text description or a
category/genre/reading-age triple, attaches a cover to every suggestion and
exposes keyword search over Google Books.

Run "gateway serve" for the HTTP API, or use the one-shot commands to call
the same flows from a terminal.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		initLogger(loaded.SlogLevel(), loaded.App.LogFormat, os.Stderr)
		if err := loaded.Validate(); err != nil {
			slog.Error("invalid configuration", "error", err)
			return err
		}
		if needsTextModel(cmd) {
			if err := loaded.ValidateTextModel(); err != nil {
				slog.Error("invalid configuration", "command", cmd.Name(), "error", err)
				return err
			}
		}
		for _, w := range loaded.Warnings() {
			slog.Warn(w)
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: json or text")
	rootCmd.PersistentFlags().String("provider", "", "text model provider: gemini or openai")
	rootCmd.PersistentFlags().String("cover-strategy", "", "cover strategy: lookup or generative")

	rootCmd.AddCommand(serveCmd, suggestCmd, randomCmd, coverCmd, searchCmd, summarizeCmd)
}

func initLogger(level slog.Level, format string, w io.Writer) {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewJSONHandler(w, opts)
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}
