package handler

import (
	"log/slog"
	"net/http"

	"cookshelf/internal/domain/services"
	"cookshelf/internal/httputil"
)

// RecipeBookHandler handles recipe book HTTP requests
type RecipeBookHandler struct {
	bookService services.RecipeBookService
	logger      *slog.Logger
}

// NewRecipeBookHandler creates a new recipe book handler
func NewRecipeBookHandler(bookService services.RecipeBookService, logger *slog.Logger) *RecipeBookHandler {
	return &RecipeBookHandler{
		bookService: bookService,
		logger:      logger,
	}
}

// ListRecipeBooks retrieves all of the caller's recipe books
// GET /api/recipe-books
func (h *RecipeBookHandler) ListRecipeBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookService.ListRecipeBooks(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, books)
}

// CreateRecipeBook creates a new recipe book owned by the caller
// POST /api/recipe-books
func (h *RecipeBookHandler) CreateRecipeBook(w http.ResponseWriter, r *http.Request) {
	var req services.CreateRecipeBookRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	book, err := h.bookService.CreateRecipeBook(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, book)
}

// GetRecipeBook retrieves one of the caller's recipe books
// GET /api/recipe-books/{id}
func (h *RecipeBookHandler) GetRecipeBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	book, err := h.bookService.GetRecipeBook(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, book)
}

// UpdateRecipeBook applies a partial update to a recipe book
// PATCH /api/recipe-books/{id}
func (h *RecipeBookHandler) UpdateRecipeBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req services.UpdateRecipeBookRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	book, err := h.bookService.UpdateRecipeBook(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, book)
}

// DeleteRecipeBook removes a recipe book
// DELETE /api/recipe-books/{id}
func (h *RecipeBookHandler) DeleteRecipeBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.bookService.DeleteRecipeBook(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
