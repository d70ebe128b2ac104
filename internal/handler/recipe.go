package handler

import (
	"log/slog"
	"net/http"

	"cookshelf/internal/domain/services"
	"cookshelf/internal/httputil"
)

// RecipeHandler handles recipe HTTP requests
type RecipeHandler struct {
	recipeService services.RecipeService
	logger        *slog.Logger
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(recipeService services.RecipeService, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		logger:        logger,
	}
}

// CreateRecipe creates a new recipe owned by the caller
// POST /api/recipes
func (h *RecipeHandler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req services.CreateRecipeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	recipe, err := h.recipeService.CreateRecipe(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, recipe)
}

// GetRecipe retrieves one of the caller's recipes
// GET /api/recipes/{id}
func (h *RecipeHandler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipe(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, recipe)
}

// ListRecipesByBook retrieves all recipes in one of the caller's books
// GET /api/recipe-books/{id}/recipes
func (h *RecipeHandler) ListRecipesByBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	recipes, err := h.recipeService.ListRecipesByBook(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, recipes)
}

// UpdateRecipe applies a partial update to a recipe
// PATCH /api/recipes/{id}
func (h *RecipeHandler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req services.UpdateRecipeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, recipe)
}

// DeleteRecipe removes a recipe
// DELETE /api/recipes/{id}
func (h *RecipeHandler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
