package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yourusername/book-finder/pkg/book"
	"github.com/yourusername/book-finder/pkg/provider"
	"github.com/yourusername/book-finder/pkg/telemetry"
)

// generationFailedMessage is shown for every text-model failure; the cause is logged only.
const generationFailedMessage = "Failed to communicate with the AI. Please try again later."

const requestIDHeader = "X-Request-Id"

// BookService is what the handlers need from *suggest.Service.
type BookService interface {
	Suggest(ctx context.Context, q book.SuggestionQuery) ([]book.Book, error)
	Random(ctx context.Context, q book.RandomQuery) (book.Book, error)
	Search(ctx context.Context, q book.KeywordQuery) ([]book.Book, error)
	Summarize(ctx context.Context, q book.ReadingLogQuery) (string, error)
	Cover(ctx context.Context, q book.CoverQuery) (string, error)
	CoverStrategy() string
}

type routerOptions struct {
	TextProvider string
	CORSOrigins  []string
}

// --- Error Handling ---

// ErrorResponse is the error envelope shared by every endpoint.
type ErrorResponse struct {
	Status  string `json:"status" example:"error"`
	Error   string `json:"error"`
	Detail  any    `json:"detail"`
	Code    int    `json:"code"`
	TraceID string `json:"traceId"`
}

func AbortWithError(c *gin.Context, code int, message string, err error) {
	var detail any = ""
	var verr *book.ValidationError
	var serr *provider.SearchError
	switch {
	case err == nil:
	case errors.As(err, &verr):
		detail = verr.Fields
	case errors.As(err, &serr):
		detail = serr.Message
	case errors.Is(err, book.ErrCredentialMissing):
		detail = err.Error()
	}

	slog.ErrorContext(c.Request.Context(), "api error",
		"path", c.Request.URL.Path,
		"status", code,
		"message", message,
		"request_id", c.GetString("RequestID"),
		"error", err,
	)

	c.AbortWithStatusJSON(code, ErrorResponse{
		Status:  "error",
		Error:   message,
		Detail:  detail,
		Code:    code,
		TraceID: traceID(c),
	})
}

// abortWithServiceError maps service errors onto status codes.
func abortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, book.ErrValidation):
		AbortWithError(c, http.StatusBadRequest, "Invalid request", err)
	case errors.Is(err, book.ErrCredentialMissing):
		AbortWithError(c, http.StatusServiceUnavailable, "Service is not configured", err)
	case errors.Is(err, book.ErrGeneration):
		AbortWithError(c, http.StatusBadGateway, generationFailedMessage, err)
	default:
		var serr *provider.SearchError
		if errors.As(err, &serr) {
			AbortWithError(c, http.StatusBadGateway, "Search failed", err)
			return
		}
		AbortWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

func traceID(c *gin.Context) string {
	if id := telemetry.TraceID(c.Request.Context()); id != "" {
		return id
	}
	return c.GetString("RequestID")
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("RequestID", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func setupRouter(svc BookService, opts routerOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// --- 0. OpenTelemetry Middleware ---
	r.Use(otelgin.Middleware("book-finder"))
	r.Use(requestID())

	// --- 1. CORS Configuration ---
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	// --- 2. Health Check ---
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "UP",
			"time":           time.Now(),
			"cover_strategy": svc.CoverStrategy(),
			"text_provider":  opts.TextProvider,
		})
	})

	// --- 3. API ---
	h := &handlers{svc: svc}
	api := r.Group("/api")
	{
		api.POST("/ai/suggestions", h.suggestions)
		api.POST("/ai/random", h.random)
		api.POST("/ai/reading-log/summary", h.summary)
		api.GET("/books/search", h.search)
		api.GET("/covers", h.cover)
	}

	// --- 4. Swagger ---
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

var serveCmd = &cobra.Command{
	Use:         "serve",
	Short:       "Run the HTTP API",
	Annotations: textModelRequired,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		shutdownTracer, err := telemetry.InitTracer(ctx, "book-finder", version)
		if err != nil {
			slog.Warn("failed to init tracer", "error", err)
		} else {
			defer func() { _ = shutdownTracer(context.Background()) }()
		}

		a, err := buildApp(ctx, cfg, true)
		if err != nil {
			return err
		}
		defer a.Close()

		if cfg.App.Environment == "production" {
			gin.SetMode(gin.ReleaseMode)
		}

		router := setupRouter(a.service, routerOptions{
			TextProvider: a.textProvider,
			CORSOrigins:  cfg.Server.CORSOrigins,
		})
		httpSrv := &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}

		errCh := make(chan error, 1)
		go func() {
			slog.Info("book finder starting", "addr", httpSrv.Addr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			slog.Error("book finder listen failed", "error", err)
			return err
		case <-ctx.Done():
		}
		slog.Info("shutting down book finder...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			slog.Error("book finder forced to shutdown", "error", err)
		}

		slog.Info("book finder exiting")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("port", "", "HTTP port (default 8899)")
}
