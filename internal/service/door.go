package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/roomgate/backend/internal/db"
	"github.com/roomgate/backend/internal/model"
)

// Fixed numeric-code to room-label table used by the badge readers.
var roomsByCode = map[string]string{
	"1": "Room A",
	"2": "Room B",
	"3": "Room C",
	"4": "Room D",
	"5": "Room E",
	"6": "Room F",
	"7": "Room G",
	"8": "Room H",
}

// RoomResolver maps a presented room identifier to a canonical room label.
type RoomResolver func(room string) (string, bool)

// ResolveRoomCode resolves a reader's numeric room code through the fixed
// table.
func ResolveRoomCode(code string) (string, bool) {
	name, ok := roomsByCode[code]
	return name, ok
}

// ResolveRoomLabel passes a direct room label through unchanged.
func ResolveRoomLabel(label string) (string, bool) {
	label = strings.TrimSpace(label)
	return label, label != ""
}

type DoorUserRepo interface {
	GetUserByCardID(ctx context.Context, cardID string) (*model.User, error)
}

type DoorMeetingRepo interface {
	FindActiveMeeting(ctx context.Context, organizerID, room string, at time.Time) (*model.Meeting, error)
}

type DoorScanRepo interface {
	InsertScanRecord(ctx context.Context, record *model.ScanRecord) error
	ListScanRecords(ctx context.Context, limit int) ([]model.ScanRecord, error)
}

// DoorService decides whether a badge scan opens a door. The badge itself is
// the credential; no bearer token is involved.
type DoorService struct {
	users    DoorUserRepo
	meetings DoorMeetingRepo
	scans    DoorScanRepo
	now      func() time.Time
}

func NewDoorService(users DoorUserRepo, meetings DoorMeetingRepo, scans DoorScanRepo) *DoorService {
	return &DoorService{
		users:    users,
		meetings: meetings,
		scans:    scans,
		now:      time.Now,
	}
}

// Validate resolves the room, looks up the badge holder, and checks for a
// scheduled meeting they organize in that room spanning the current instant.
// Every attempt past room resolution is appended to the scan log, including
// unknown cards.
func (s *DoorService) Validate(ctx context.Context, cardID, room string, resolve RoomResolver) (*model.DoorValidateResponse, error) {
	roomName, ok := resolve(room)
	if !ok {
		return nil, fmt.Errorf("%w: invalid room ID", ErrInvalidInput)
	}

	allow := false
	message := ""
	var userID *string

	user, err := s.users.GetUserByCardID(ctx, cardID)
	switch {
	case err != nil && db.IsNoRows(err):
		message = "Card not registered"
	case err != nil:
		return nil, err
	default:
		userID = &user.ID
		_, err := s.meetings.FindActiveMeeting(ctx, user.ID, roomName, s.now())
		switch {
		case err != nil && db.IsNoRows(err):
			message = fmt.Sprintf("No active meeting in %s", roomName)
		case err != nil:
			return nil, err
		default:
			allow = true
			message = fmt.Sprintf("Door unlocked for %s", roomName)
		}
	}

	if err := s.scans.InsertScanRecord(ctx, &model.ScanRecord{
		UserID:  userID,
		CardID:  cardID,
		Room:    roomName,
		Success: allow,
		Message: message,
	}); err != nil {
		return nil, err
	}

	return &model.DoorValidateResponse{
		Allow:    allow,
		Message:  message,
		RoomName: roomName,
	}, nil
}

// RecentScans returns the newest audit entries for review by privileged
// users.
func (s *DoorService) RecentScans(ctx context.Context, limit int) ([]model.ScanRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.scans.ListScanRecords(ctx, limit)
}
