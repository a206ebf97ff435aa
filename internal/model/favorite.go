package model

import "time"

// Favorite represents a (user, activity) pairing with a per-user display order.
// At most one favorite exists per pair. The order value is unique within a
// user's favorite set; gaps are allowed and expected after removals.
type Favorite struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ActivityID string    `json:"activity_id"`
	Order      int       `json:"order"`
	CreatedOn  time.Time `json:"created_on"`
	// Populated by repository joins on read paths that need it
	Activity *Activity `json:"activity,omitempty"`
}

// AddFavoriteRequest represents a request to favorite an activity
type AddFavoriteRequest struct {
	ActivityID string `json:"activity_id"`
}

// ReorderFavoritesRequest carries the caller's full desired ordering of their
// current favorites. The list must be a permutation of the user's favorited
// activity ids.
type ReorderFavoritesRequest struct {
	ActivityIDs []string `json:"activity_ids"`
}
