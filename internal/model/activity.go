package model

import "time"

// Activity represents a cataloged outing offered for favoriting.
// Activities are immutable after creation; only the owning user creates them.
type Activity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Price     int       `json:"price"` // whole currency units, never negative
	OwnerID   string    `json:"owner_id"`
	CreatedOn time.Time `json:"created_on"`

	// Owner is populated only where the caller asked for the join,
	// currently the single-activity endpoint. Never persisted.
	Owner *User `json:"owner,omitempty"`
}

// Activity constraints
const (
	MaxActivityNameLength = 150
	MaxCityLength         = 100
)

// CreateActivityRequest represents a request to create an activity
type CreateActivityRequest struct {
	Name  string `json:"name"`
	City  string `json:"city"`
	Price int    `json:"price"`
}

// ActivityFilter narrows a catalog query. Zero-value fields are ignored;
// all set fields combine with logical AND.
type ActivityFilter struct {
	City    string  // exact match
	Name    *string // case-insensitive substring match
	Price   *int    // exact match
	OwnerID string  // exact match
}

// PaginatedActivities is a page of catalog results with derived metadata.
type PaginatedActivities struct {
	Items      []*Activity `json:"items"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"totalPages"`
}

// NewPaginatedActivities builds a result page. TotalPages is
// ceil(total/limit), 0 when total is 0.
func NewPaginatedActivities(items []*Activity, total, page, limit int) *PaginatedActivities {
	if items == nil {
		items = []*Activity{}
	}
	totalPages := 0
	if total > 0 && limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return &PaginatedActivities{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
