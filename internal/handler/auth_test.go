package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escapade/api/internal/database"
	"github.com/escapade/api/internal/model"
	"github.com/escapade/api/internal/service"
	"github.com/escapade/api/pkg/jwt"
)

type mockUserRepo struct {
	createFn     func(ctx context.Context, user *model.User) error
	getByIDFn    func(ctx context.Context, id string) (*model.User, error)
	getByEmailFn func(ctx context.Context, email string) (*model.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	user.ID = "user:new"
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, nil
}

type staticSigner struct{}

func (staticSigner) Sign(claims jwt.Claims) (string, error) {
	return "signed-token", nil
}

func newAuthHandler(repo *mockUserRepo) *AuthHandler {
	if repo == nil {
		repo = &mockUserRepo{}
	}
	svc := service.NewAuthService(service.AuthServiceConfig{
		UserRepo: repo,
		Signer:   staticSigner{},
	})
	return NewAuthHandler(svc)
}

func TestAuthHandler_Register_Created(t *testing.T) {
	t.Parallel()

	h := newAuthHandler(nil)

	req := makeJSONRequest(http.MethodPost, "/v1/auth/register", map[string]string{
		"email":    "marie@example.com",
		"password": "correct-horse-battery",
		"username": "marie",
	})
	rr := httptest.NewRecorder()
	h.Register(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp struct {
		Data struct {
			User        *model.User `json:"user"`
			AccessToken string      `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "marie@example.com", resp.Data.User.Email)
	assert.Equal(t, "signed-token", resp.Data.AccessToken)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	h := newAuthHandler(&mockUserRepo{
		createFn: func(ctx context.Context, user *model.User) error {
			return database.ErrDuplicate
		},
	})

	req := makeJSONRequest(http.MethodPost, "/v1/auth/register", map[string]string{
		"email":    "marie@example.com",
		"password": "correct-horse-battery",
	})
	rr := httptest.NewRecorder()
	h.Register(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestAuthHandler_Register_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body map[string]string
	}{
		{"bad email", map[string]string{"email": "not-an-email", "password": "correct-horse-battery"}},
		{"short password", map[string]string{"email": "marie@example.com", "password": "short"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newAuthHandler(nil)
			req := makeJSONRequest(http.MethodPost, "/v1/auth/register", tt.body)
			rr := httptest.NewRecorder()
			h.Register(rr, req)

			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		})
	}
}

func TestAuthHandler_Register_MalformedBody(t *testing.T) {
	t.Parallel()

	h := newAuthHandler(nil)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	h.Register(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	// Seed a user through Register so the stored hash is real.
	repo := &mockUserRepo{}
	var stored *model.User
	repo.createFn = func(ctx context.Context, user *model.User) error {
		user.ID = "user:marie"
		stored = user
		return nil
	}
	repo.getByEmailFn = func(ctx context.Context, email string) (*model.User, error) {
		if stored != nil && stored.Email == email {
			return stored, nil
		}
		return nil, nil
	}

	h := newAuthHandler(repo)

	reg := makeJSONRequest(http.MethodPost, "/v1/auth/register", map[string]string{
		"email":    "marie@example.com",
		"password": "correct-horse-battery",
	})
	regRR := httptest.NewRecorder()
	h.Register(regRR, reg)
	require.Equal(t, http.StatusCreated, regRR.Code)

	login := makeJSONRequest(http.MethodPost, "/v1/auth/login", map[string]string{
		"email":    "marie@example.com",
		"password": "wrong-password-entirely",
	})
	rr := httptest.NewRecorder()
	h.Login(rr, login)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthHandler_Login_UnknownEmail(t *testing.T) {
	t.Parallel()

	h := newAuthHandler(nil)
	req := makeJSONRequest(http.MethodPost, "/v1/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "correct-horse-battery",
	})
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	t.Parallel()

	h := newAuthHandler(nil)
	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	rr := httptest.NewRecorder()
	h.Me(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthHandler_Me_ReturnsProfile(t *testing.T) {
	t.Parallel()

	h := newAuthHandler(&mockUserRepo{
		getByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Email: "marie@example.com"}, nil
		},
	})

	req := withUserContext(httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil), "user:marie")
	rr := httptest.NewRecorder()
	h.Me(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data model.User `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "user:marie", resp.Data.ID)
	assert.Equal(t, "marie@example.com", resp.Data.Email)
}

func TestAuthHandler_Me_UserGone(t *testing.T) {
	t.Parallel()

	h := newAuthHandler(&mockUserRepo{
		getByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return nil, nil
		},
	})

	req := withUserContext(httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil), "user:gone")
	rr := httptest.NewRecorder()
	h.Me(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
