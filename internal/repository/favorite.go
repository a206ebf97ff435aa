package repository

import (
	"context"
	"errors"
	"time"

	"github.com/escapade/api/internal/database"
	"github.com/escapade/api/internal/model"
)

// FavoriteRepository handles favorite data access.
//
// The explicit position of a favorite within a user's list is stored in the
// `position` field (ORDER is a reserved word in SurrealQL) and surfaced on
// the model as Order.
type FavoriteRepository struct {
	db database.Database
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db database.Database) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Create persists a favorite at the given position
func (r *FavoriteRepository) Create(ctx context.Context, favorite *model.Favorite) error {
	query := `
		CREATE favorite SET
			user_id = type::record($user_id),
			activity_id = type::record($activity_id),
			position = $position,
			created_on = time::now()
	`
	vars := map[string]interface{}{
		"user_id":     favorite.UserID,
		"activity_id": favorite.ActivityID,
		"position":    favorite.Order,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return database.ErrDuplicate
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	favorite.ID = created.ID
	favorite.CreatedOn = created.CreatedOn
	return nil
}

// GetByUserAndActivity returns the user's favorite for an activity, or nil
// when the activity is not favorited.
func (r *FavoriteRepository) GetByUserAndActivity(ctx context.Context, userID, activityID string) (*model.Favorite, error) {
	query := `
		SELECT * FROM favorite
		WHERE user_id = type::record($user_id) AND activity_id = type::record($activity_id)
		LIMIT 1
	`
	vars := map[string]interface{}{
		"user_id":     userID,
		"activity_id": activityID,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseFavoriteRecord(unwrapRecord(result))
}

// ListByUser returns all of a user's favorites with their activities
// attached. No ordering is applied here; callers sort by position.
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]*model.Favorite, error) {
	query := `SELECT *, activity_id.* AS activity FROM favorite WHERE user_id = type::record($user_id)`
	vars := map[string]interface{}{"user_id": userID}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	favorites := make([]*model.Favorite, 0)
	for _, data := range unwrapRecords(results) {
		favorite, err := parseFavoriteRecord(data)
		if err != nil {
			return nil, err
		}
		favorites = append(favorites, favorite)
	}
	return favorites, nil
}

// Delete removes the user's favorite for an activity. It reports whether a
// record was actually deleted; remaining positions are left untouched.
func (r *FavoriteRepository) Delete(ctx context.Context, userID, activityID string) (bool, error) {
	query := `
		DELETE favorite
		WHERE user_id = type::record($user_id) AND activity_id = type::record($activity_id)
		RETURN BEFORE
	`
	vars := map[string]interface{}{
		"user_id":     userID,
		"activity_id": activityID,
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return false, err
	}

	return len(unwrapRecords(results)) > 0, nil
}

// BatchUpdateOrders rewrites the positions of a user's favorites in a single
// transaction. Either every position in the map is applied or none are.
func (r *FavoriteRepository) BatchUpdateOrders(ctx context.Context, userID string, positions map[string]int) error {
	batch := database.NewAtomicBatch(r.db)

	for activityID, position := range positions {
		batch.Add(
			`UPDATE favorite SET position = $position
			 WHERE user_id = type::record($user_id) AND activity_id = type::record($activity_id)`,
			map[string]interface{}{
				"user_id":     userID,
				"activity_id": activityID,
				"position":    position,
			},
		)
	}

	return batch.Execute(ctx)
}

func parseFavoriteRecord(data map[string]interface{}) (*model.Favorite, error) {
	if data == nil {
		return nil, database.ErrNotFound
	}

	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}
	if userID, ok := data["user_id"]; ok {
		data["user_id"] = convertSurrealID(userID)
	}
	if activityID, ok := data["activity_id"]; ok {
		data["activity_id"] = convertSurrealID(activityID)
	}
	if createdOn, ok := data["created_on"]; ok {
		if t := parseTimeValue(createdOn); !t.IsZero() {
			data["created_on"] = t.Format(time.RFC3339Nano)
		}
	}

	// Stored as position, exposed as order
	if position, ok := data["position"]; ok {
		data["order"] = position
		delete(data, "position")
	}

	var favorite model.Favorite
	if embedded, ok := data["activity"].(map[string]interface{}); ok {
		delete(data, "activity")
		activity, err := parseActivityRecord(embedded)
		if err == nil {
			favorite.Activity = activity
		}
	}

	if err := decodeRecord(data, &favorite); err != nil {
		return nil, err
	}
	return &favorite, nil
}
