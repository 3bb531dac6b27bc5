package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/roomgate/backend/internal/config"
	"github.com/roomgate/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserStore backs the auth, user and door services in tests.
type fakeUserStore struct {
	users map[string]*model.User // keyed by ID
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*model.User{}}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}
	stored := *user
	stored.ID = fmt.Sprintf("user-%d", len(f.users)+1)
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.users[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetUserPublicByID(ctx context.Context, userID string) (*model.User, error) {
	user, err := f.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (f *fakeUserStore) GetUserByCardID(ctx context.Context, cardID string) (*model.User, error) {
	for _, user := range f.users {
		if user.CardID != nil && *user.CardID == cardID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserStore) ListUsers(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	for _, user := range f.users {
		copied := *user
		copied.PasswordHash = ""
		users = append(users, copied)
	}
	return users, nil
}

func (f *fakeUserStore) UpdateUser(ctx context.Context, user *model.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := f.users[user.ID]
	stored.Email = user.Email
	stored.Name = user.Name
	stored.Organization = user.Organization
	stored.CardID = user.CardID
	stored.Role = user.Role
	stored.IsActive = user.IsActive
	return nil
}

func (f *fakeUserStore) UpdateUserPassword(ctx context.Context, userID, passwordHash string) error {
	user, ok := f.users[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserStore) DeleteUser(ctx context.Context, userID string) error {
	if _, ok := f.users[userID]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.users, userID)
	return nil
}

func (f *fakeUserStore) RecordLoginFailure(ctx context.Context, userID string, threshold int, lockUntil time.Time) error {
	user, ok := f.users[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	user.FailedLoginAttempts++
	locked := user.LockUntil != nil && user.LockUntil.After(time.Now())
	if user.FailedLoginAttempts >= threshold && !locked {
		until := lockUntil
		user.LockUntil = &until
	}
	return nil
}

func (f *fakeUserStore) ResetLoginFailures(ctx context.Context, userID string) error {
	user, ok := f.users[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	user.FailedLoginAttempts = 0
	user.LockUntil = nil
	return nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		AccessSecret:     "access-secret",
		RefreshSecret:    "refresh-secret",
		AccessTTL:        time.Minute,
		RefreshTTL:       time.Hour,
		BcryptCost:       bcrypt.MinCost,
		LockoutThreshold: 5,
		LockoutWindow:    15 * time.Minute,
	}
}

func newTestAuthService(t *testing.T, store *fakeUserStore) *AuthService {
	t.Helper()
	svc, err := NewAuthService(store, testAuthConfig())
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	return svc
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(t, store)
	ctx := context.Background()

	reg, err := svc.Register(ctx, model.RegisterRequest{Email: "A@X.com", Password: "Passw0rd!", Name: "A"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.AccessToken == "" || reg.RefreshToken == "" {
		t.Fatal("expected a token pair")
	}
	if reg.User.Email != "a@x.com" {
		t.Fatalf("email not normalized: %q", reg.User.Email)
	}
	if reg.User.Role != model.RoleUser {
		t.Fatalf("unexpected default role %q", reg.User.Role)
	}

	login, err := svc.Login(ctx, model.LoginRequest{Email: "a@x.com", Password: "Passw0rd!"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.AccessToken == "" {
		t.Fatal("expected access token")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(t, store)
	ctx := context.Background()

	if _, err := svc.Register(ctx, model.RegisterRequest{Email: "a@x.com", Password: "Passw0rd!"}); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := svc.Register(ctx, model.RegisterRequest{Email: "A@x.com", Password: "Passw0rd!"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(store.users) != 1 {
		t.Fatalf("expected one user, have %d", len(store.users))
	}
}

func TestRegisterRejectsWeakPasswords(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(t, store)
	ctx := context.Background()

	for _, password := range []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"} {
		_, err := svc.Register(ctx, model.RegisterRequest{Email: "a@x.com", Password: password})
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("password %q: expected ErrInvalidInput, got %v", password, err)
		}
	}
	if len(store.users) != 0 {
		t.Fatalf("no users should exist, have %d", len(store.users))
	}
}

func TestLoginUnknownEmailIsGeneric(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserStore())

	_, err := svc.Login(context.Background(), model.LoginRequest{Email: "ghost@x.com", Password: "Passw0rd!"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLoginFailureResetOnSuccess(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(t, store)
	ctx := context.Background()

	reg, err := svc.Register(ctx, model.RegisterRequest{Email: "a@x.com", Password: "Passw0rd!"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.Login(ctx, model.LoginRequest{Email: "a@x.com", Password: "wrong"}); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("attempt %d: expected ErrUnauthorized, got %v", i, err)
		}
	}
	if got := store.users[reg.User.ID].FailedLoginAttempts; got != 3 {
		t.Fatalf("counter = %d, want 3", got)
	}

	if _, err := svc.Login(ctx, model.LoginRequest{Email: "a@x.com", Password: "Passw0rd!"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got := store.users[reg.User.ID].FailedLoginAttempts; got != 0 {
		t.Fatalf("counter = %d after success, want 0", got)
	}
	if store.users[reg.User.ID].LockUntil != nil {
		t.Fatal("lock not cleared after success")
	}
}

func TestLoginLockout(t *testing.T) {
	store := newFakeUserStore()
	cfg := testAuthConfig()
	cfg.LockoutThreshold = 2
	svc, err := NewAuthService(store, cfg)
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	ctx := context.Background()

	if _, err := svc.Register(ctx, model.RegisterRequest{Email: "a@x.com", Password: "Passw0rd!"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := svc.Login(ctx, model.LoginRequest{Email: "a@x.com", Password: "wrong"}); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("attempt %d: expected ErrUnauthorized, got %v", i, err)
		}
	}

	// The lock is enforced even with the right password.
	if _, err := svc.Login(ctx, model.LoginRequest{Email: "a@x.com", Password: "Passw0rd!"}); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestRefreshRotation(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(t, store)
	ctx := context.Background()

	reg, err := svc.Register(ctx, model.RegisterRequest{Email: "a@x.com", Password: "Passw0rd!"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	refreshed, err := svc.Refresh(ctx, reg.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == "" {
		t.Fatal("expected a new token pair")
	}
	if refreshed.User.PasswordHash != "" {
		t.Fatal("refresh leaked the password hash")
	}

	if _, err := svc.Refresh(ctx, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("empty token: expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Refresh(ctx, reg.AccessToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("access token as refresh: expected ErrUnauthorized, got %v", err)
	}
}

func TestResolveAccessToken(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(t, store)
	ctx := context.Background()

	reg, err := svc.Register(ctx, model.RegisterRequest{Email: "a@x.com", Password: "Passw0rd!"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := svc.ResolveAccessToken(ctx, reg.AccessToken)
	if err != nil {
		t.Fatalf("ResolveAccessToken: %v", err)
	}
	if user.ID != reg.User.ID {
		t.Fatalf("resolved %q, want %q", user.ID, reg.User.ID)
	}
	if user.PasswordHash != "" {
		t.Fatal("resolved identity carries the password hash")
	}

	if _, err := svc.ResolveAccessToken(ctx, reg.RefreshToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("refresh token as access: expected ErrUnauthorized, got %v", err)
	}
}
