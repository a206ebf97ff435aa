package repository

import (
	"context"
	"errors"
	"time"

	"github.com/escapade/api/internal/database"
	"github.com/escapade/api/internal/model"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user. Returns database.ErrDuplicate when the email is
// already registered.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		CREATE user SET
			email = $email,
			username = $username,
			hash = $hash,
			created_on = time::now(),
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"email":    user.Email,
		"username": user.Username,
		"hash":     user.Hash,
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

	user.ID = created.ID
	user.CreatedOn = created.CreatedOn
	return nil
}

// GetByID retrieves a user by ID. Returns nil when absent.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseUserRecord(unwrapRecord(result))
}

// GetByEmail retrieves a user by email. Returns nil when absent.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseUserRecord(unwrapRecord(result))
}

func parseUserRecord(data map[string]interface{}) (*model.User, error) {
	if data == nil {
		return nil, database.ErrNotFound
	}

	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}
	for _, field := range []string{"created_on", "updated_on"} {
		if raw, ok := data[field]; ok {
			if t := parseTimeValue(raw); !t.IsZero() {
				data[field] = t.Format(time.RFC3339Nano)
			}
		}
	}

	var user model.User
	if err := decodeRecord(data, &user); err != nil {
		return nil, err
	}

	// json:"-" keeps the hash out of responses, so lift it by hand
	if hash, ok := data["hash"].(string); ok && hash != "" {
		user.Hash = &hash
	}

	return &user, nil
}
