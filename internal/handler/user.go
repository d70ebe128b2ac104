package handler

import (
	"log/slog"
	"net/http"

	"cookshelf/internal/domain/services"
	"cookshelf/internal/httputil"
)

// UserHandler handles identity HTTP requests
type UserHandler struct {
	identity services.IdentityResolver
	logger   *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(identity services.IdentityResolver, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		identity: identity,
		logger:   logger,
	}
}

// Me returns the caller's user record, provisioning it on first sight
// GET /api/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.identity.CurrentUser(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, user)
}
