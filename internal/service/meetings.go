package service

import (
	"context"
	"fmt"
	"time"

	"github.com/roomgate/backend/internal/db"
	"github.com/roomgate/backend/internal/model"
)

type MeetingRepo interface {
	CreateMeeting(ctx context.Context, meeting *model.Meeting) (*model.Meeting, error)
	GetMeetingByID(ctx context.Context, meetingID string) (*model.Meeting, error)
	ListMeetings(ctx context.Context, organizerID string, from, to *time.Time) ([]model.Meeting, error)
	UpdateMeeting(ctx context.Context, meeting *model.Meeting) (*model.Meeting, error)
	DeleteMeeting(ctx context.Context, meetingID string) error
}

type MeetingService struct {
	repo MeetingRepo
}

func NewMeetingService(repo MeetingRepo) *MeetingService {
	return &MeetingService{repo: repo}
}

func (s *MeetingService) Create(ctx context.Context, req model.CreateMeetingRequest) (*model.Meeting, error) {
	if !req.StartTime.Before(req.EndTime) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	status := req.Status
	if status == "" {
		status = model.MeetingScheduled
	}
	participants := req.ParticipantIDs
	if participants == nil {
		participants = []string{}
	}

	meeting, err := s.repo.CreateMeeting(ctx, &model.Meeting{
		Title:          req.Title,
		OrganizerID:    req.OrganizerID,
		ParticipantIDs: participants,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Room:           req.Room,
		Status:         status,
		Description:    req.Description,
	})
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: unknown organizer", ErrInvalidInput)
		}
		return nil, err
	}
	return meeting, nil
}

func (s *MeetingService) Get(ctx context.Context, meetingID string) (*model.Meeting, error) {
	meeting, err := s.repo.GetMeetingByID(ctx, meetingID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: meeting not found", ErrNotFound)
		}
		return nil, err
	}
	return meeting, nil
}

// List returns meetings, optionally filtered by organizer and by month in
// YYYY-MM form.
func (s *MeetingService) List(ctx context.Context, organizerID, month string) ([]model.Meeting, error) {
	var from, to *time.Time
	if month != "" {
		start, err := time.Parse("2006-01", month)
		if err != nil {
			return nil, fmt.Errorf("%w: month must be formatted as YYYY-MM", ErrInvalidInput)
		}
		end := start.AddDate(0, 1, 0)
		from, to = &start, &end
	}
	return s.repo.ListMeetings(ctx, organizerID, from, to)
}

func (s *MeetingService) Update(ctx context.Context, meetingID string, req model.UpdateMeetingRequest) (*model.Meeting, error) {
	meeting, err := s.Get(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		meeting.Title = *req.Title
	}
	if req.ParticipantIDs != nil {
		meeting.ParticipantIDs = req.ParticipantIDs
	}
	if req.StartTime != nil {
		meeting.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		meeting.EndTime = *req.EndTime
	}
	if req.Room != nil {
		meeting.Room = *req.Room
	}
	if req.Status != nil {
		meeting.Status = *req.Status
	}
	if req.Description != nil {
		meeting.Description = *req.Description
	}

	if !meeting.StartTime.Before(meeting.EndTime) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	updated, err := s.repo.UpdateMeeting(ctx, meeting)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: meeting not found", ErrNotFound)
		}
		return nil, err
	}
	return updated, nil
}

func (s *MeetingService) Delete(ctx context.Context, meetingID string) error {
	if err := s.repo.DeleteMeeting(ctx, meetingID); err != nil {
		if db.IsNoRows(err) {
			return fmt.Errorf("%w: meeting not found", ErrNotFound)
		}
		return err
	}
	return nil
}

// MonthlyHours sums meeting durations for meetings starting in the given
// month.
func (s *MeetingService) MonthlyHours(ctx context.Context, year, month int) (*model.MeetingHoursResponse, error) {
	if month < 1 || month > 12 || year < 1 {
		return nil, fmt.Errorf("%w: invalid year or month", ErrInvalidInput)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	meetings, err := s.repo.ListMeetings(ctx, "", &start, &end)
	if err != nil {
		return nil, err
	}

	var totalMinutes float64
	for _, meeting := range meetings {
		totalMinutes += meeting.EndTime.Sub(meeting.StartTime).Minutes()
	}

	return &model.MeetingHoursResponse{
		Year:         year,
		Month:        month,
		TotalHours:   fmt.Sprintf("%.2f", totalMinutes/60),
		MeetingCount: len(meetings),
	}, nil
}
