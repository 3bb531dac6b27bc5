package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/roomgate/backend/internal/db"
	"github.com/roomgate/backend/internal/model"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	UpdateUserPassword(ctx context.Context, userID, passwordHash string) error
	DeleteUser(ctx context.Context, userID string) error
}

// UserService covers admin-driven identity management.
type UserService struct {
	repo   UserRepo
	hasher *PasswordHasher
}

func NewUserService(repo UserRepo, hasher *PasswordHasher) *UserService {
	return &UserService{repo: repo, hasher: hasher}
}

func (s *UserService) Create(ctx context.Context, actor *model.User, req model.CreateUserRequest) (*model.User, error) {
	if !IsPrivileged(actor.Role) {
		return nil, fmt.Errorf("%w: only admins and owners can create users", ErrForbidden)
	}

	if err := CheckPasswordPolicy(req.Password); err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: user with this email already exists", ErrConflict)
	} else if !db.IsNoRows(err) {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	user, err := s.repo.CreateUser(ctx, &model.User{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		Organization: strings.TrimSpace(req.Organization),
		CardID:       req.CardID,
		PasswordHash: hash,
		Role:         role,
		IsActive:     isActive,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: user with this email or card already exists", ErrConflict)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *UserService) Update(ctx context.Context, actor *model.User, userID string, req model.UpdateUserRequest) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return err
	}

	privileged := IsPrivileged(actor.Role)

	if req.Email != "" {
		email := normalizeEmail(req.Email)
		if email != user.Email {
			if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
				return fmt.Errorf("%w: user with this email already exists", ErrConflict)
			} else if !db.IsNoRows(err) {
				return err
			}
			user.Email = email
		}
	}

	if req.Password != "" {
		if !privileged {
			if req.CurrentPassword == "" {
				return fmt.Errorf("%w: current password is required to update password", ErrInvalidInput)
			}
			if !s.hasher.Verify(req.CurrentPassword, user.PasswordHash) {
				return fmt.Errorf("%w: current password is incorrect", ErrInvalidInput)
			}
		}
		if err := CheckPasswordPolicy(req.Password); err != nil {
			return err
		}
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return err
		}
		if err := s.repo.UpdateUserPassword(ctx, user.ID, hash); err != nil {
			return err
		}
	}

	if req.Name != "" {
		user.Name = strings.TrimSpace(req.Name)
	}
	if req.CardID != nil {
		user.CardID = req.CardID
	}
	if req.Organization != "" {
		user.Organization = strings.TrimSpace(req.Organization)
	}
	if req.Role != "" && privileged {
		user.Role = req.Role
	}
	if req.IsActive != nil && privileged {
		user.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("%w: user with this email or card already exists", ErrConflict)
		}
		return err
	}
	return nil
}

func (s *UserService) Delete(ctx context.Context, actor *model.User, userID string) error {
	if !IsPrivileged(actor.Role) {
		return fmt.Errorf("%w: only admins and owners can delete users", ErrForbidden)
	}
	if err := s.repo.DeleteUser(ctx, userID); err != nil {
		if db.IsNoRows(err) {
			return fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return err
	}
	return nil
}

// ResetPassword sets another identity's password without the current one.
// Privileged roles only; the policy still applies.
func (s *UserService) ResetPassword(ctx context.Context, actor *model.User, userID, newPassword string) error {
	if !IsPrivileged(actor.Role) {
		return fmt.Errorf("%w: only admins and owners can reset other users' passwords", ErrForbidden)
	}

	if err := CheckPasswordPolicy(newPassword); err != nil {
		return err
	}

	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		if db.IsNoRows(err) {
			return fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdateUserPassword(ctx, userID, hash)
}
