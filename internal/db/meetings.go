package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/roomgate/backend/internal/model"
)

const meetingColumns = `id, title, organizer_id, participant_ids, start_time, end_time, room, status, description, created_at, updated_at`

func scanMeeting(row interface{ Scan(dest ...any) error }) (*model.Meeting, error) {
	var meeting model.Meeting
	err := row.Scan(
		&meeting.ID,
		&meeting.Title,
		&meeting.OrganizerID,
		&meeting.ParticipantIDs,
		&meeting.StartTime,
		&meeting.EndTime,
		&meeting.Room,
		&meeting.Status,
		&meeting.Description,
		&meeting.CreatedAt,
		&meeting.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if meeting.ParticipantIDs == nil {
		meeting.ParticipantIDs = []string{}
	}
	return &meeting, nil
}

func (db *Postgres) CreateMeeting(ctx context.Context, meeting *model.Meeting) (*model.Meeting, error) {
	query := `
		INSERT INTO meetings (id, title, organizer_id, participant_ids, start_time, end_time, room, status, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING ` + meetingColumns
	row := db.Pool.QueryRow(ctx, query,
		uuid.NewString(),
		meeting.Title,
		meeting.OrganizerID,
		meeting.ParticipantIDs,
		meeting.StartTime,
		meeting.EndTime,
		meeting.Room,
		meeting.Status,
		meeting.Description,
	)
	return scanMeeting(row)
}

func (db *Postgres) GetMeetingByID(ctx context.Context, meetingID string) (*model.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE id = $1`
	return scanMeeting(db.Pool.QueryRow(ctx, query, meetingID))
}

// ListMeetings returns meetings, optionally filtered by organizer and/or a
// start-time range.
func (db *Postgres) ListMeetings(ctx context.Context, organizerID string, from, to *time.Time) ([]model.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings`
	where := ""
	args := []any{}

	if organizerID != "" {
		args = append(args, organizerID)
		where += fmt.Sprintf(" WHERE organizer_id = $%d", len(args))
	}
	if from != nil && to != nil {
		args = append(args, *from)
		if where == "" {
			where += fmt.Sprintf(" WHERE start_time >= $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND start_time >= $%d", len(args))
		}
		args = append(args, *to)
		where += fmt.Sprintf(" AND start_time < $%d", len(args))
	}

	rows, err := db.Pool.Query(ctx, query+where+` ORDER BY start_time`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meetings := []model.Meeting{}
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, *meeting)
	}
	return meetings, rows.Err()
}

func (db *Postgres) UpdateMeeting(ctx context.Context, meeting *model.Meeting) (*model.Meeting, error) {
	query := `
		UPDATE meetings
		SET title = $2, participant_ids = $3, start_time = $4, end_time = $5, room = $6, status = $7, description = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + meetingColumns
	row := db.Pool.QueryRow(ctx, query,
		meeting.ID,
		meeting.Title,
		meeting.ParticipantIDs,
		meeting.StartTime,
		meeting.EndTime,
		meeting.Room,
		meeting.Status,
		meeting.Description,
	)
	return scanMeeting(row)
}

func (db *Postgres) DeleteMeeting(ctx context.Context, meetingID string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM meetings WHERE id = $1`, meetingID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// FindActiveMeeting looks for a scheduled meeting organized by the user in
// the given room whose window spans the instant, bounds inclusive.
func (db *Postgres) FindActiveMeeting(ctx context.Context, organizerID, room string, at time.Time) (*model.Meeting, error) {
	query := `
		SELECT ` + meetingColumns + `
		FROM meetings
		WHERE organizer_id = $1
		  AND room = $2
		  AND status = 'scheduled'
		  AND start_time <= $3
		  AND end_time >= $3
		LIMIT 1
	`
	return scanMeeting(db.Pool.QueryRow(ctx, query, organizerID, room, at))
}
