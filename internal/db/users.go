package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/roomgate/backend/internal/model"
)

const userColumns = `id, email, name, organization, card_id, password_hash, role, is_active, failed_login_attempts, lock_until, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Organization,
		&user.CardID,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.FailedLoginAttempts,
		&user.LockUntil,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (id, email, name, organization, card_id, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + userColumns
	row := db.Pool.QueryRow(ctx, query,
		uuid.NewString(),
		user.Email,
		user.Name,
		user.Organization,
		user.CardID,
		user.PasswordHash,
		user.Role,
		user.IsActive,
	)
	return scanUser(row)
}

func (db *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, email))
}

func (db *Postgres) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, userID))
}

func (db *Postgres) GetUserByCardID(ctx context.Context, cardID string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE card_id = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, cardID))
}

// GetUserPublicByID loads a user without its password hash, for attaching to
// a request context.
func (db *Postgres) GetUserPublicByID(ctx context.Context, userID string) (*model.User, error) {
	query := `
		SELECT id, email, name, organization, card_id, role, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var user model.User
	err := db.Pool.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Organization,
		&user.CardID,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) ListUsers(ctx context.Context) ([]model.User, error) {
	query := `
		SELECT id, email, name, organization, card_id, role, is_active, created_at, updated_at
		FROM users
		ORDER BY created_at
	`
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var user model.User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Name,
			&user.Organization,
			&user.CardID,
			&user.Role,
			&user.IsActive,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (db *Postgres) UpdateUser(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET email = $2, name = $3, organization = $4, card_id = $5, role = $6, is_active = $7, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := db.Pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.Organization,
		user.CardID,
		user.Role,
		user.IsActive,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (db *Postgres) UpdateUserPassword(ctx context.Context, userID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	tag, err := db.Pool.Exec(ctx, query, userID, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (db *Postgres) DeleteUser(ctx context.Context, userID string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// RecordLoginFailure bumps the failed-login counter in a single atomic
// update. When the new count reaches the threshold and no lock is currently
// in force, lock_until is set.
func (db *Postgres) RecordLoginFailure(ctx context.Context, userID string, threshold int, lockUntil time.Time) error {
	query := `
		UPDATE users
		SET failed_login_attempts = failed_login_attempts + 1,
		    lock_until = CASE
		        WHEN failed_login_attempts + 1 >= $2 AND (lock_until IS NULL OR lock_until < NOW())
		        THEN $3::timestamptz
		        ELSE lock_until
		    END,
		    updated_at = NOW()
		WHERE id = $1
	`
	_, err := db.Pool.Exec(ctx, query, userID, threshold, lockUntil)
	return err
}

func (db *Postgres) ResetLoginFailures(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET failed_login_attempts = 0, lock_until = NULL, updated_at = NOW()
		WHERE id = $1
	`
	_, err := db.Pool.Exec(ctx, query, userID)
	return err
}
