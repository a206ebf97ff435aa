package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/escapade/api/internal/model"
)

const (
	// DefaultPage is used when a page value is missing or not positive
	DefaultPage = 1
	// DefaultLimit is used when a limit value is missing or not positive
	DefaultLimit = 10
	// LatestActivitiesCount is the size of the recently-added shortlist
	LatestActivitiesCount = 3
)

// ActivityRepository defines the interface for activity storage
type ActivityRepository interface {
	Create(ctx context.Context, activity *model.Activity) error
	GetByID(ctx context.Context, id string) (*model.Activity, error)
	Query(ctx context.Context, filter model.ActivityFilter, page, limit int) ([]*model.Activity, int, error)
	GetLatest(ctx context.Context, n int) ([]*model.Activity, error)
	ListCities(ctx context.Context) ([]string, error)
}

// UserLookup resolves owner references into user records for the
// single-activity join. Optional; without it GetWithOwner degrades to GetByID.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// CatalogService handles activity catalog business logic
type CatalogService struct {
	activityRepo ActivityRepository
	userRepo     UserLookup
}

// CatalogServiceConfig holds configuration for the catalog service
type CatalogServiceConfig struct {
	ActivityRepo ActivityRepository
	UserRepo     UserLookup
}

// NewCatalogService creates a new catalog service
func NewCatalogService(cfg CatalogServiceConfig) *CatalogService {
	return &CatalogService{
		activityRepo: cfg.ActivityRepo,
		userRepo:     cfg.UserRepo,
	}
}

// normalizePage coerces page and limit to usable values. Zero or negative
// inputs fall back to the defaults rather than erroring, so any page request
// yields a well-formed result.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return page, limit
}

// normalizeActivityID validates an activity record ID from the API surface.
// A bare identifier gets the table prefix; an ID naming another table is
// rejected.
func normalizeActivityID(id string) (string, error) {
	if id == "" {
		return "", ErrInvalidActivityID
	}
	table, record, found := strings.Cut(id, ":")
	if !found {
		return "activity:" + id, nil
	}
	if table != "activity" || record == "" {
		return "", ErrInvalidActivityID
	}
	return id, nil
}

// ListAll returns one page of activities matching the filter
func (s *CatalogService) ListAll(ctx context.Context, filter model.ActivityFilter, page, limit int) (*model.PaginatedActivities, error) {
	page, limit = normalizePage(page, limit)

	items, total, err := s.activityRepo.Query(ctx, filter, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}

	return model.NewPaginatedActivities(items, total, page, limit), nil
}

// ListByCity returns one page of activities in the given city, optionally
// narrowed by a name fragment and an exact price
func (s *CatalogService) ListByCity(ctx context.Context, city string, name *string, price *int, page, limit int) (*model.PaginatedActivities, error) {
	if city == "" {
		return nil, ErrCityRequired
	}
	return s.ListAll(ctx, model.ActivityFilter{City: city, Name: name, Price: price}, page, limit)
}

// ListByOwner returns one page of the activities created by a user
func (s *CatalogService) ListByOwner(ctx context.Context, ownerID string, page, limit int) (*model.PaginatedActivities, error) {
	return s.ListAll(ctx, model.ActivityFilter{OwnerID: ownerID}, page, limit)
}

// ListLatest returns the most recently created activities
func (s *CatalogService) ListLatest(ctx context.Context) ([]*model.Activity, error) {
	items, err := s.activityRepo.GetLatest(ctx, LatestActivitiesCount)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest activities: %w", err)
	}
	return items, nil
}

// ListCities returns the distinct cities that have at least one activity
func (s *CatalogService) ListCities(ctx context.Context) ([]string, error) {
	cities, err := s.activityRepo.ListCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, nil
}

// GetByID retrieves a single activity
func (s *CatalogService) GetByID(ctx context.Context, id string) (*model.Activity, error) {
	recordID, err := normalizeActivityID(id)
	if err != nil {
		return nil, err
	}

	activity, err := s.activityRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}
	return activity, nil
}

// GetWithOwner retrieves a single activity with its owner resolved by an
// explicit follow-up fetch. A dangling owner reference leaves Owner nil
// rather than failing the read.
func (s *CatalogService) GetWithOwner(ctx context.Context, id string) (*model.Activity, error) {
	activity, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.userRepo != nil && activity.OwnerID != "" {
		owner, err := s.userRepo.GetByID(ctx, activity.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve owner: %w", err)
		}
		activity.Owner = owner
	}
	return activity, nil
}

// Create creates a new activity owned by the given user
func (s *CatalogService) Create(ctx context.Context, ownerID string, req *model.CreateActivityRequest) (*model.Activity, error) {
	name := strings.TrimSpace(req.Name)
	city := strings.TrimSpace(req.City)

	switch {
	case name == "":
		return nil, ErrActivityNameRequired
	case len(name) > model.MaxActivityNameLength:
		return nil, ErrActivityNameTooLong
	case city == "":
		return nil, ErrCityRequired
	case len(city) > model.MaxCityLength:
		return nil, ErrCityTooLong
	case req.Price < 0:
		return nil, ErrNegativePrice
	}

	activity := &model.Activity{
		Name:    name,
		City:    city,
		Price:   req.Price,
		OwnerID: ownerID,
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	return activity, nil
}
