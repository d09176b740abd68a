package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/library_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/library_management_app/internal/core/ports/services"
	"github.com/SscSPs/library_management_app/internal/dto"
	"github.com/SscSPs/library_management_app/internal/middleware"
)

// bookHandler handles HTTP requests for the catalog.
type bookHandler struct {
	bookService portssvc.BookSvcFacade
}

func newBookHandler(bs portssvc.BookSvcFacade) *bookHandler {
	return &bookHandler{bookService: bs}
}

func registerBookRoutes(rg *gin.RouterGroup, bookService portssvc.BookSvcFacade) {
	h := newBookHandler(bookService)

	books := rg.Group("/books")
	{
		books.POST("", h.createBook)
		books.GET("", h.listBooks)
		books.GET("/genres", h.listGenres)
		books.GET("/:key", h.getBook)
		books.PATCH("/:key", h.updateBook)
		books.PATCH("/:key/status", h.setBookStatus)
		books.GET("/:key/availability", h.checkAvailability)
	}
}

// createBook godoc
// @Summary Add a book
// @Description Adds a book to the catalog as available. Genre defaults to "General".
// @Tags books
// @Accept  json
// @Produce  json
// @Param   book body dto.CreateBookRequest true "Book details"
// @Success 201 {object} dto.BookResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /books [post]
func (h *bookHandler) createBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if !bindJSON(c, &req) {
		return
	}
	book, err := h.bookService.CreateBook(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Book created successfully", slog.String("book_key", book.BookKey.String()))
	c.JSON(http.StatusCreated, dto.ToBookResponse(book))
}

// listBooks godoc
// @Summary List books
// @Tags books
// @Produce  json
// @Param   genre query string false "Genre, matched case-insensitively"
// @Param   page query int false "Page number" default(1)
// @Param   per_page query int false "Page size (max 1000)" default(100)
// @Success 200 {object} dto.ListBooksResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /books [get]
func (h *bookHandler) listBooks(c *gin.Context) {
	var params dto.ListBooksParams
	if !bindQuery(c, &params) {
		return
	}
	books, err := h.bookService.ListBooks(c.Request.Context(), domain.BookFilter{Genre: params.Genre, Page: params.ToPage()})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListBookResponse(books, params.ToPage()))
}

// listGenres godoc
// @Summary List genres
// @Tags books
// @Produce  json
// @Success 200 {object} dto.GenresResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /books/genres [get]
func (h *bookHandler) listGenres(c *gin.Context) {
	genres, err := h.bookService.ListGenres(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if genres == nil {
		genres = []string{}
	}
	c.JSON(http.StatusOK, dto.GenresResponse{Genres: genres})
}

// getBook godoc
// @Summary Get a book
// @Tags books
// @Produce  json
// @Param   key path string true "Book key"
// @Success 200 {object} dto.BookResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /books/{key} [get]
func (h *bookHandler) getBook(c *gin.Context) {
	key, ok := keyParam(c)
	if !ok {
		return
	}
	book, err := h.bookService.GetBook(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

// updateBook godoc
// @Summary Update a book
// @Tags books
// @Accept  json
// @Produce  json
// @Param   key path string true "Book key"
// @Param   book body dto.UpdateBookRequest true "Fields to update"
// @Success 200 {object} dto.BookResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /books/{key} [patch]
func (h *bookHandler) updateBook(c *gin.Context) {
	key, ok := keyParam(c)
	if !ok {
		return
	}
	var req dto.UpdateBookRequest
	if !bindJSON(c, &req) {
		return
	}
	book, err := h.bookService.UpdateBook(c.Request.Context(), key, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

// setBookStatus godoc
// @Summary Change a book's status
// @Description Manual override of the book status, e.g. to take it off the shelf.
// @Tags books
// @Accept  json
// @Produce  json
// @Param   key path string true "Book key"
// @Param   status body dto.UpdateStatusRequest true "Target status enumerator"
// @Success 200 {object} dto.BookResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /books/{key}/status [patch]
func (h *bookHandler) setBookStatus(c *gin.Context) {
	key, ok := keyParam(c)
	if !ok {
		return
	}
	var req dto.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	book, err := h.bookService.SetBookStatus(c.Request.Context(), key, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

// checkAvailability godoc
// @Summary Check book availability
// @Description Reports whether the book can be borrowed and, when loaned, its due date.
// @Tags books
// @Produce  json
// @Param   key path string true "Book key"
// @Success 200 {object} dto.AvailabilityResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /books/{key}/availability [get]
func (h *bookHandler) checkAvailability(c *gin.Context) {
	key, ok := keyParam(c)
	if !ok {
		return
	}
	availability, err := h.bookService.CheckAvailability(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAvailabilityResponse(*availability))
}
