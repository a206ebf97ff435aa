package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/escapade/api/internal/database"
	"github.com/escapade/api/internal/model"
)

// ActivityRepository handles activity data access
type ActivityRepository struct {
	db database.Database
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db database.Database) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create creates a new activity with a server-assigned id and timestamp
func (r *ActivityRepository) Create(ctx context.Context, activity *model.Activity) error {
	query := `
		CREATE activity SET
			name = $name,
			city = $city,
			price = $price,
			owner_id = type::record($owner_id),
			created_on = time::now()
	`
	vars := map[string]interface{}{
		"name":     activity.Name,
		"city":     activity.City,
		"price":    activity.Price,
		"owner_id": activity.OwnerID,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	activity.ID = created.ID
	activity.CreatedOn = created.CreatedOn
	return nil
}

// GetByID retrieves an activity by ID. Returns nil when absent.
func (r *ActivityRepository) GetByID(ctx context.Context, id string) (*model.Activity, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseActivityRecord(unwrapRecord(result))
}

// Query returns one page of activities matching the filter together with the
// total count of all matches. Both run against the same WHERE clause so the
// total can never drift from the page contents. Results order by creation
// time descending, ties broken by id for determinism.
func (r *ActivityRepository) Query(ctx context.Context, filter model.ActivityFilter, page, limit int) ([]*model.Activity, int, error) {
	where, vars := buildActivityFilter(filter)

	vars["limit"] = limit
	vars["start"] = (page - 1) * limit

	itemsQuery := `SELECT * FROM activity` + where +
		` ORDER BY created_on DESC, id DESC LIMIT $limit START $start`

	results, err := r.db.Query(ctx, itemsQuery, vars)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*model.Activity, 0)
	for _, data := range unwrapRecords(results) {
		activity, err := parseActivityRecord(data)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, activity)
	}

	countQuery := `SELECT count() AS count FROM activity` + where + ` GROUP ALL`
	countResult, err := r.db.QueryOne(ctx, countQuery, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return items, 0, nil
		}
		return nil, 0, err
	}

	return items, extractCount(countResult), nil
}

// GetLatest retrieves the n most recently created activities
func (r *ActivityRepository) GetLatest(ctx context.Context, n int) ([]*model.Activity, error) {
	query := `SELECT * FROM activity ORDER BY created_on DESC, id DESC LIMIT $n`
	vars := map[string]interface{}{"n": n}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	items := make([]*model.Activity, 0, n)
	for _, data := range unwrapRecords(results) {
		activity, err := parseActivityRecord(data)
		if err != nil {
			return nil, err
		}
		items = append(items, activity)
	}
	return items, nil
}

// ListCities returns the distinct city values across all activities
func (r *ActivityRepository) ListCities(ctx context.Context) ([]string, error) {
	query := `SELECT array::distinct(array::group(city)) AS cities FROM activity GROUP ALL`

	result, err := r.db.QueryOne(ctx, query, nil)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}

	data := unwrapRecord(result)
	if data == nil {
		return []string{}, nil
	}

	cities := getStringSlice(data, "cities")
	if cities == nil {
		cities = []string{}
	}
	return cities, nil
}

// buildActivityFilter renders the filter into one WHERE clause shared by the
// page query and the count query.
func buildActivityFilter(filter model.ActivityFilter) (string, map[string]interface{}) {
	conditions := make([]string, 0, 4)
	vars := make(map[string]interface{})

	if filter.City != "" {
		conditions = append(conditions, "city = $city")
		vars["city"] = filter.City
	}
	if filter.Name != nil {
		conditions = append(conditions, "string::contains(string::lowercase(name), string::lowercase($name))")
		vars["name"] = *filter.Name
	}
	if filter.Price != nil {
		conditions = append(conditions, "price = $price")
		vars["price"] = *filter.Price
	}
	if filter.OwnerID != "" {
		conditions = append(conditions, "owner_id = type::record($owner_id)")
		vars["owner_id"] = filter.OwnerID
	}

	if len(conditions) == 0 {
		return "", vars
	}
	return " WHERE " + strings.Join(conditions, " AND "), vars
}

func parseActivityRecord(data map[string]interface{}) (*model.Activity, error) {
	if data == nil {
		return nil, database.ErrNotFound
	}

	// Convert record IDs and timestamps before the JSON round-trip
	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}
	if ownerID, ok := data["owner_id"]; ok {
		data["owner_id"] = convertSurrealID(ownerID)
	}
	if createdOn, ok := data["created_on"]; ok {
		if t := parseTimeValue(createdOn); !t.IsZero() {
			data["created_on"] = t.Format(time.RFC3339Nano)
		}
	}

	var activity model.Activity
	if err := decodeRecord(data, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}
