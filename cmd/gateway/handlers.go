package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/book-finder/pkg/book"
)

type handlers struct {
	svc BookService
}

// BooksResponse wraps a list of books.
type BooksResponse struct {
	Status string      `json:"status" example:"success"`
	Count  int         `json:"count"`
	Data   []book.Book `json:"data"`
}

// BookResponse wraps a single book.
type BookResponse struct {
	Status string    `json:"status" example:"success"`
	Data   book.Book `json:"data"`
}

// SummaryResponse wraps a reading-log summary.
type SummaryResponse struct {
	Status  string `json:"status" example:"success"`
	Summary string `json:"summary"`
}

// CoverResponse wraps a resolved cover URL.
type CoverResponse struct {
	Status     string `json:"status" example:"success"`
	CoverImage string `json:"coverImage"`
}

// suggestions godoc
// @Summary      Suggest books from a description
// @Description  Asks the text model for books matching a free-text description and attaches a cover to each.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request  body      book.SuggestionQuery  true  "What the reader is looking for"
// @Success      200      {object}  BooksResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse
// @Router       /ai/suggestions [post]
func (h *handlers) suggestions(c *gin.Context) {
	var q book.SuggestionQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		AbortWithError(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	books, err := h.svc.Suggest(c.Request.Context(), q)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, BooksResponse{Status: "success", Count: len(books), Data: books})
}

// random godoc
// @Summary      Suggest one random book
// @Description  Picks a single book for a category, genre and reading age, with its cover.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request  body      book.RandomQuery  true  "Constraints for the pick"
// @Success      200      {object}  BookResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse
// @Router       /ai/random [post]
func (h *handlers) random(c *gin.Context) {
	var q book.RandomQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		AbortWithError(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	b, err := h.svc.Random(c.Request.Context(), q)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, BookResponse{Status: "success", Data: b})
}

// summary godoc
// @Summary      Summarize a reading log
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request  body      book.ReadingLogQuery  true  "Reading log"
// @Success      200      {object}  SummaryResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse
// @Router       /ai/reading-log/summary [post]
func (h *handlers) summary(c *gin.Context) {
	var q book.ReadingLogQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		AbortWithError(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	summary, err := h.svc.Summarize(c.Request.Context(), q)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SummaryResponse{Status: "success", Summary: summary})
}

// search godoc
// @Summary      Keyword search
// @Description  Passes the query straight to Google Books.
// @Tags         books
// @Produce      json
// @Param        q    query     string  true  "Search terms"
// @Success      200  {object}  BooksResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /books/search [get]
func (h *handlers) search(c *gin.Context) {
	var q book.KeywordQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		AbortWithError(c, http.StatusBadRequest, "Invalid query", nil)
		return
	}

	books, err := h.svc.Search(c.Request.Context(), q)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, BooksResponse{Status: "success", Count: len(books), Data: books})
}

// cover godoc
// @Summary      Resolve a cover image
// @Description  Always answers with a usable URL; the placeholder when nothing is found.
// @Tags         books
// @Produce      json
// @Param        title        query     string  true   "Book title"
// @Param        author       query     string  false  "Book author"
// @Param        description  query     string  false  "Short description (generative strategy only)"
// @Success      200          {object}  CoverResponse
// @Failure      400          {object}  ErrorResponse
// @Router       /covers [get]
func (h *handlers) cover(c *gin.Context) {
	var q book.CoverQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		AbortWithError(c, http.StatusBadRequest, "Invalid query", nil)
		return
	}

	url, err := h.svc.Cover(c.Request.Context(), q)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, CoverResponse{Status: "success", CoverImage: url})
}
