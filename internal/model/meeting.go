package model

import "time"

const (
	MeetingScheduled = "scheduled"
	MeetingCompleted = "completed"
	MeetingCancelled = "cancelled"
)

type Meeting struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	OrganizerID    string    `json:"organizer"`
	ParticipantIDs []string  `json:"participants"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	Room           string    `json:"room"`
	Status         string    `json:"status"`
	Description    string    `json:"description,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type CreateMeetingRequest struct {
	Title          string    `json:"title" binding:"required"`
	OrganizerID    string    `json:"organizer" binding:"required"`
	ParticipantIDs []string  `json:"participants"`
	StartTime      time.Time `json:"startTime" binding:"required"`
	EndTime        time.Time `json:"endTime" binding:"required"`
	Room           string    `json:"room" binding:"required"`
	Status         string    `json:"status" binding:"omitempty,oneof=scheduled completed cancelled"`
	Description    string    `json:"description"`
}

type UpdateMeetingRequest struct {
	Title          *string    `json:"title"`
	ParticipantIDs []string   `json:"participants"`
	StartTime      *time.Time `json:"startTime"`
	EndTime        *time.Time `json:"endTime"`
	Room           *string    `json:"room"`
	Status         *string    `json:"status" binding:"omitempty,oneof=scheduled completed cancelled"`
	Description    *string    `json:"description"`
}

type MeetingHoursResponse struct {
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	TotalHours   string `json:"totalHours"`
	MeetingCount int    `json:"meetingCount"`
}
