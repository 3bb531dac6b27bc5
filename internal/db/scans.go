package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/roomgate/backend/internal/model"
)

// InsertScanRecord appends one audit entry. Records are never updated or
// deleted.
func (db *Postgres) InsertScanRecord(ctx context.Context, record *model.ScanRecord) error {
	query := `
		INSERT INTO scan_history (id, user_id, card_id, room, success, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := db.Pool.Exec(ctx, query,
		uuid.NewString(),
		record.UserID,
		record.CardID,
		record.Room,
		record.Success,
		record.Message,
	)
	return err
}

func (db *Postgres) ListScanRecords(ctx context.Context, limit int) ([]model.ScanRecord, error) {
	query := `
		SELECT id, user_id, card_id, room, success, message, created_at
		FROM scan_history
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.ScanRecord{}
	for rows.Next() {
		var record model.ScanRecord
		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.CardID,
			&record.Room,
			&record.Success,
			&record.Message,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
