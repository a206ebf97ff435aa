package handler

import (
	"net/http"

	"github.com/escapade/api/internal/middleware"
	"github.com/escapade/api/internal/model"
	"github.com/escapade/api/internal/service"
)

// FavoriteHandler handles favorite list HTTP requests
type FavoriteHandler struct {
	svc *service.FavoriteService
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(svc *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{svc: svc}
}

// List handles GET /v1/favorites - the caller's favorites in order
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	favorites, err := h.svc.ListByUser(ctx, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, favorites)
}

// Add handles POST /v1/favorites - append an activity to the caller's list
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.AddFavoriteRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	favorite, err := h.svc.Add(ctx, userID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, favorite)
}

// Remove handles DELETE /v1/favorites/{activityId} - drop one favorite
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	if err := h.svc.Remove(ctx, userID, r.PathValue("activityId")); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// Reorder handles PUT /v1/favorites/order - replace the caller's list order
func (h *FavoriteHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.ReorderFavoritesRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	favorites, err := h.svc.Reorder(ctx, userID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, favorites)
}
