package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/roomgate/backend/internal/config"
	"github.com/roomgate/backend/internal/db"
	"github.com/roomgate/backend/internal/model"
)

const (
	refreshCookieName = "jid"
	refreshCookiePath = "/api/auth/refresh"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
	ErrNotFound      = errors.New("not found")
	ErrLocked        = errors.New("account locked")
	ErrMisconfigured = errors.New("auth config invalid")
)

type CookieConfig struct {
	Name     string
	Path     string
	Secure   bool
	SameSite http.SameSite
	MaxAge   int
}

type AuthRepo interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserPublicByID(ctx context.Context, userID string) (*model.User, error)
	RecordLoginFailure(ctx context.Context, userID string, threshold int, lockUntil time.Time) error
	ResetLoginFailures(ctx context.Context, userID string) error
}

type AuthService struct {
	repo             AuthRepo
	hasher           *PasswordHasher
	tokens           *TokenService
	lockoutThreshold int
	lockoutWindow    time.Duration
	cookieCfg        CookieConfig
}

// AuthResult carries a freshly issued token pair. The refresh token is only
// ever delivered through the scoped cookie, never in a response body.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         *model.User
}

func NewAuthService(repo AuthRepo, cfg config.AuthConfig) (*AuthService, error) {
	tokens, err := NewTokenService(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	if err != nil {
		return nil, err
	}

	threshold := cfg.LockoutThreshold
	if threshold <= 0 {
		threshold = 5
	}
	window := cfg.LockoutWindow
	if window <= 0 {
		window = 15 * time.Minute
	}

	return &AuthService{
		repo:             repo,
		hasher:           NewPasswordHasher(cfg.BcryptCost),
		tokens:           tokens,
		lockoutThreshold: threshold,
		lockoutWindow:    window,
		cookieCfg: CookieConfig{
			Name:     refreshCookieName,
			Path:     refreshCookiePath,
			Secure:   cfg.CookieSecure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   int(tokens.RefreshTTL().Seconds()),
		},
	}, nil
}

func (s *AuthService) CookieConfig() CookieConfig {
	return s.cookieCfg
}

func (s *AuthService) Hasher() *PasswordHasher {
	return s.hasher
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*AuthResult, error) {
	email := normalizeEmail(req.Email)

	if err := CheckPasswordPolicy(req.Password); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !db.IsNoRows(err) {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, &model.User{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Role:         model.RoleUser,
		IsActive:     true,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*AuthResult, error) {
	user, err := s.repo.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	if user.LockUntil != nil && user.LockUntil.After(time.Now()) {
		return nil, ErrLocked
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		lockUntil := time.Now().Add(s.lockoutWindow)
		if err := s.repo.RecordLoginFailure(ctx, user.ID, s.lockoutThreshold, lockUntil); err != nil {
			return nil, err
		}
		return nil, ErrUnauthorized
	}

	if err := s.repo.ResetLoginFailures(ctx, user.ID); err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, ErrUnauthorized
	}

	subject, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.repo.GetUserPublicByID(ctx, subject)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	return s.issueTokens(user)
}

// ResolveAccessToken verifies a bearer token and loads the acting identity,
// hash excluded.
func (s *AuthService) ResolveAccessToken(ctx context.Context, tokenStr string) (*model.User, error) {
	subject, _, err := s.tokens.VerifyAccess(tokenStr)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.repo.GetUserPublicByID(ctx, subject)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issueTokens(user *model.User) (*AuthResult, error) {
	accessToken, err := s.tokens.IssueAccess(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsPrivileged reports whether a role may manage other identities. The
// original deployment mixed cases, so the check is case-insensitive.
func IsPrivileged(role string) bool {
	switch strings.ToLower(role) {
	case "admin", "owner":
		return true
	}
	return false
}
