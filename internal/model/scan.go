package model

import "time"

// ScanRecord is an append-only audit entry for one badge validation attempt.
// UserID stays nil when the presented card did not resolve to a user.
type ScanRecord struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"userId"`
	CardID    string    `json:"cardID"`
	Room      string    `json:"roomId"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"timestamp"`
}

type DoorValidateRequest struct {
	CardID string `json:"cardID" binding:"required"`
	Room   string `json:"room" binding:"required"`
}

type DoorValidateResponse struct {
	Allow    bool   `json:"allow"`
	Message  string `json:"message"`
	RoomName string `json:"roomName,omitempty"`
}
