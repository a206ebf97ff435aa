package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/escapade/api/internal/model"
	"github.com/escapade/api/pkg/jwt"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockUserRepo struct {
	createFunc     func(ctx context.Context, user *model.User) error
	getByIDFunc    func(ctx context.Context, id string) (*model.User, error)
	getByEmailFunc func(ctx context.Context, email string) (*model.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, nil
}

type mockSigner struct {
	signFunc func(claims jwt.Claims) (string, error)
}

func (m *mockSigner) Sign(claims jwt.Claims) (string, error) {
	if m.signFunc != nil {
		return m.signFunc(claims)
	}
	return "signed-token", nil
}

func newTestAuthService(userRepo *mockUserRepo, signer *mockSigner) *AuthService {
	if userRepo == nil {
		userRepo = &mockUserRepo{}
	}
	if signer == nil {
		signer = &mockSigner{}
	}
	return NewAuthService(AuthServiceConfig{
		UserRepo: userRepo,
		Signer:   signer,
	})
}

// ============================================================================
// Register Tests
// ============================================================================

func TestRegister_Success(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var created *model.User
	userRepo := &mockUserRepo{
		createFunc: func(ctx context.Context, user *model.User) error {
			user.ID = "user:new"
			created = user
			return nil
		},
	}
	svc := newTestAuthService(userRepo, nil)

	result, err := svc.Register(ctx, RegisterRequest{
		Email:    "  Marie@Example.COM ",
		Password: "correct-horse",
		Username: "marie",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if created.Email != "marie@example.com" {
		t.Errorf("expected normalized email, got %q", created.Email)
	}
	if created.Hash == nil || *created.Hash == "" {
		t.Error("expected password hash to be set")
	}
	if *created.Hash == "correct-horse" {
		t.Error("password must not be stored in plain text")
	}
	if result.AccessToken != "signed-token" {
		t.Errorf("expected access token, got %q", result.AccessToken)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	userRepo := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "user:existing", Email: email}, nil
		},
	}
	svc := newTestAuthService(userRepo, nil)

	_, err := svc.Register(ctx, RegisterRequest{Email: "taken@example.com", Password: "long-enough"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestRegister_InvalidInput(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestAuthService(nil, nil)

	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr error
	}{
		{"bad email", RegisterRequest{Email: "not-an-email", Password: "long-enough"}, ErrInvalidEmail},
		{"empty password", RegisterRequest{Email: "a@b.com", Password: ""}, ErrPasswordRequired},
		{"short password", RegisterRequest{Email: "a@b.com", Password: "short"}, ErrPasswordTooShort},
		{"long password", RegisterRequest{Email: "a@b.com", Password: strings.Repeat("x", 129)}, ErrPasswordTooLong},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Register(ctx, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// ============================================================================
// Login Tests
// ============================================================================

func TestLogin_Success(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	hash, err := hashPassword("correct-horse")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}

	userRepo := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "user:u1", Email: email, Hash: &hash}, nil
		},
	}
	var signedFor string
	signer := &mockSigner{
		signFunc: func(claims jwt.Claims) (string, error) {
			signedFor = claims.UserID
			return "token-u1", nil
		},
	}
	svc := newTestAuthService(userRepo, signer)

	result, err := svc.Login(ctx, LoginRequest{Email: "u1@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.AccessToken != "token-u1" {
		t.Errorf("unexpected token %q", result.AccessToken)
	}
	if signedFor != "user:u1" {
		t.Errorf("token signed for %q", signedFor)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	hash, err := hashPassword("correct-horse")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}

	userRepo := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "user:u1", Email: email, Hash: &hash}, nil
		},
	}
	svc := newTestAuthService(userRepo, nil)

	_, err = svc.Login(ctx, LoginRequest{Email: "u1@example.com", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestAuthService(nil, nil)

	_, err := svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

// ============================================================================
// Helper Tests
// ============================================================================

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		password string
		wantErr  error
	}{
		{"", ErrPasswordRequired},
		{"1234567", ErrPasswordTooShort},
		{"12345678", nil},
		{strings.Repeat("x", 128), nil},
		{strings.Repeat("x", 129), ErrPasswordTooLong},
	}

	for _, tt := range tests {
		if err := validatePassword(tt.password); !errors.Is(err, tt.wantErr) {
			t.Errorf("validatePassword(%d chars) = %v, want %v", len(tt.password), err, tt.wantErr)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"a@b.co", true},
		{"", false},
		{"no-at-sign", false},
		{"@example.com", false},
		{"user@example", false},
		{"user@example.", false},
	}

	for _, tt := range tests {
		if got := isValidEmail(tt.email); got != tt.valid {
			t.Errorf("isValidEmail(%q) = %v, want %v", tt.email, got, tt.valid)
		}
	}
}
