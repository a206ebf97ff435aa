package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/escapade/api/internal/database"
	"github.com/escapade/api/internal/model"
)

// FavoriteRepository defines the interface for favorite storage
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *model.Favorite) error
	GetByUserAndActivity(ctx context.Context, userID, activityID string) (*model.Favorite, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Favorite, error)
	Delete(ctx context.Context, userID, activityID string) (bool, error)
	BatchUpdateOrders(ctx context.Context, userID string, positions map[string]int) error
}

// ActivityLookup is the slice of the catalog the favorites manager needs:
// just existence checks for the referenced activity.
type ActivityLookup interface {
	GetByID(ctx context.Context, id string) (*model.Activity, error)
}

// FavoriteService handles per-user favorite list business logic.
//
// Mutating operations on one user's list are serialized through a per-user
// lock, so concurrent adds cannot race the max-order read and concurrent
// reorders cannot interleave their batches. Operations on distinct users
// never contend.
type FavoriteService struct {
	favoriteRepo FavoriteRepository
	activityRepo ActivityLookup

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// FavoriteServiceConfig holds configuration for the favorite service
type FavoriteServiceConfig struct {
	FavoriteRepo FavoriteRepository
	ActivityRepo ActivityLookup
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(cfg FavoriteServiceConfig) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: cfg.FavoriteRepo,
		activityRepo: cfg.ActivityRepo,
		locks:        make(map[string]*sync.Mutex),
	}
}

// userLock returns the mutex guarding one user's favorite list
func (s *FavoriteService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// ListByUser returns the user's favorites in ascending order. Ties on order
// cannot occur for a consistent list, but creation time breaks them anyway so
// the output stays deterministic.
func (s *FavoriteService) ListByUser(ctx context.Context, userID string) ([]*model.Favorite, error) {
	favorites, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	sort.SliceStable(favorites, func(i, j int) bool {
		if favorites[i].Order != favorites[j].Order {
			return favorites[i].Order < favorites[j].Order
		}
		return favorites[i].CreatedOn.Before(favorites[j].CreatedOn)
	})
	return favorites, nil
}

// Add appends an activity to the end of the user's favorite list
func (s *FavoriteService) Add(ctx context.Context, userID string, req *model.AddFavoriteRequest) (*model.Favorite, error) {
	activityID, err := normalizeActivityID(req.ActivityID)
	if err != nil {
		return nil, err
	}

	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to check activity: %w", err)
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.favoriteRepo.GetByUserAndActivity(ctx, userID, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to check favorite: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyFavorited
	}

	favorites, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	maxOrder := 0
	for _, f := range favorites {
		if f.Order > maxOrder {
			maxOrder = f.Order
		}
	}

	favorite := &model.Favorite{
		UserID:     userID,
		ActivityID: activityID,
		Order:      maxOrder + 1,
		Activity:   activity,
	}

	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		// The per-user lock prevents races within this process; the unique
		// index catches concurrent adds from another instance.
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrAlreadyFavorited
		}
		return nil, fmt.Errorf("failed to create favorite: %w", err)
	}
	return favorite, nil
}

// Remove deletes an activity from the user's favorite list. The remaining
// entries keep their order values; relative order is all that matters.
func (s *FavoriteService) Remove(ctx context.Context, userID, activityID string) error {
	recordID, err := normalizeActivityID(activityID)
	if err != nil {
		return err
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	deleted, err := s.favoriteRepo.Delete(ctx, userID, recordID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	if !deleted {
		return ErrFavoriteNotFound
	}
	return nil
}

// Reorder replaces the user's list order with the submitted sequence. The
// sequence must be a permutation of exactly the activities currently
// favorited; anything else is rejected without touching the list. All
// position updates commit in one transaction.
func (s *FavoriteService) Reorder(ctx context.Context, userID string, req *model.ReorderFavoritesRequest) ([]*model.Favorite, error) {
	submitted := make([]string, 0, len(req.ActivityIDs))
	for _, id := range req.ActivityIDs {
		recordID, err := normalizeActivityID(id)
		if err != nil {
			return nil, err
		}
		submitted = append(submitted, recordID)
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	favorites, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	current := make(map[string]*model.Favorite, len(favorites))
	for _, f := range favorites {
		current[f.ActivityID] = f
	}

	if len(submitted) != len(current) {
		return nil, ErrReorderSetMismatch
	}

	positions := make(map[string]int, len(submitted))
	for i, activityID := range submitted {
		if _, ok := current[activityID]; !ok {
			return nil, ErrReorderSetMismatch
		}
		if _, dup := positions[activityID]; dup {
			return nil, ErrReorderSetMismatch
		}
		positions[activityID] = i
	}

	if err := s.favoriteRepo.BatchUpdateOrders(ctx, userID, positions); err != nil {
		return nil, fmt.Errorf("failed to update favorite order: %w", err)
	}

	reordered := make([]*model.Favorite, 0, len(submitted))
	for i, activityID := range submitted {
		f := current[activityID]
		f.Order = i
		reordered = append(reordered, f)
	}
	return reordered, nil
}
