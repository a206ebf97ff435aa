package handler

import (
	"net/http"
	"strconv"

	"github.com/escapade/api/internal/middleware"
	"github.com/escapade/api/internal/model"
	"github.com/escapade/api/internal/service"
)

// ActivityHandler handles activity catalog HTTP requests
type ActivityHandler struct {
	svc *service.CatalogService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(svc *service.CatalogService) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

// parsePageParams reads page and limit from the query string. Absent or
// unparsable values come back as zero; the service applies the defaults.
func parsePageParams(r *http.Request) (page, limit int) {
	if v := r.URL.Query().Get("page"); v != "" {
		page, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	return page, limit
}

// parseActivityFilter reads optional filter fields from the query string
func parseActivityFilter(r *http.Request) model.ActivityFilter {
	q := r.URL.Query()

	filter := model.ActivityFilter{City: q.Get("city")}
	if name := q.Get("name"); name != "" {
		filter.Name = &name
	}
	if v := q.Get("price"); v != "" {
		if price, err := strconv.Atoi(v); err == nil {
			filter.Price = &price
		}
	}
	return filter
}

// List handles GET /v1/activities - list activities with filters and pagination
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePageParams(r)

	result, err := h.svc.ListAll(r.Context(), parseActivityFilter(r), page, limit)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WritePage(w, http.StatusOK, result)
}

// Latest handles GET /v1/activities/latest - the recently added shortlist
func (h *ActivityHandler) Latest(w http.ResponseWriter, r *http.Request) {
	activities, err := h.svc.ListLatest(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, activities)
}

// Cities handles GET /v1/activities/cities - distinct cities with activities
func (h *ActivityHandler) Cities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.svc.ListCities(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, cities)
}

// ByCity handles GET /v1/activities/city/{city} - activities in one city,
// optionally narrowed by the activity (name fragment) and price query params
func (h *ActivityHandler) ByCity(w http.ResponseWriter, r *http.Request) {
	city := r.PathValue("city")
	q := r.URL.Query()

	var name *string
	if v := q.Get("activity"); v != "" {
		name = &v
	}
	var price *int
	if v := q.Get("price"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			price = &p
		}
	}

	page, limit := parsePageParams(r)

	result, err := h.svc.ListByCity(r.Context(), city, name, price, page, limit)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WritePage(w, http.StatusOK, result)
}

// Get handles GET /v1/activities/{activityId} - single activity details
// with the owner record joined in
func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	activity, err := h.svc.GetWithOwner(r.Context(), r.PathValue("activityId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, activity)
}

// Mine handles GET /v1/profile/activities - the caller's own activities
func (h *ActivityHandler) Mine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	page, limit := parsePageParams(r)

	result, err := h.svc.ListByOwner(ctx, userID, page, limit)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WritePage(w, http.StatusOK, result)
}

// Create handles POST /v1/activities - create a new activity
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateActivityRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	activity, err := h.svc.Create(ctx, userID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, activity)
}
