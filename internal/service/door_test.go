package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/roomgate/backend/internal/model"
)

type fakeMeetingFinder struct {
	meetings []model.Meeting
}

func (f *fakeMeetingFinder) FindActiveMeeting(ctx context.Context, organizerID, room string, at time.Time) (*model.Meeting, error) {
	for i := range f.meetings {
		m := &f.meetings[i]
		if m.OrganizerID == organizerID && m.Room == room && m.Status == model.MeetingScheduled &&
			!m.StartTime.After(at) && !m.EndTime.Before(at) {
			return m, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeScanLog struct {
	records []model.ScanRecord
}

func (f *fakeScanLog) InsertScanRecord(ctx context.Context, record *model.ScanRecord) error {
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeScanLog) ListScanRecords(ctx context.Context, limit int) ([]model.ScanRecord, error) {
	if limit > len(f.records) {
		limit = len(f.records)
	}
	return f.records[:limit], nil
}

func newDoorFixture(now time.Time) (*DoorService, *fakeUserStore, *fakeMeetingFinder, *fakeScanLog) {
	users := newFakeUserStore()
	meetings := &fakeMeetingFinder{}
	scans := &fakeScanLog{}
	svc := NewDoorService(users, meetings, scans)
	svc.now = func() time.Time { return now }
	return svc, users, meetings, scans
}

func TestDoorUnknownCardStillAudited(t *testing.T) {
	svc, _, _, scans := newDoorFixture(time.Now())

	res, err := svc.Validate(context.Background(), "no-such-card", "1", ResolveRoomCode)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if res.Allow {
		t.Fatal("unknown card allowed")
	}
	if res.Message != "Card not registered" {
		t.Fatalf("message = %q", res.Message)
	}

	if len(scans.records) != 1 {
		t.Fatalf("scan records = %d, want 1", len(scans.records))
	}
	record := scans.records[0]
	if record.UserID != nil {
		t.Fatal("unresolved badge should leave UserID nil")
	}
	if record.CardID != "no-such-card" || record.Room != "Room A" || record.Success {
		t.Fatalf("unexpected record %+v", record)
	}
}

func TestDoorActiveMeetingAllows(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC)
	svc, users, meetings, scans := newDoorFixture(now)

	card := "card-42"
	user, err := users.CreateUser(context.Background(), &model.User{Email: "a@x.com", CardID: &card, Role: model.RoleUser})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	meetings.meetings = []model.Meeting{{
		OrganizerID: user.ID,
		Room:        "Room A",
		Status:      model.MeetingScheduled,
		StartTime:   now.Add(-time.Hour),
		EndTime:     now.Add(time.Hour),
	}}

	res, err := svc.Validate(context.Background(), card, "1", ResolveRoomCode)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !res.Allow {
		t.Fatalf("expected allow, got %+v", res)
	}
	if res.Message != "Door unlocked for Room A" {
		t.Fatalf("message = %q", res.Message)
	}
	if len(scans.records) != 1 || !scans.records[0].Success {
		t.Fatalf("expected one successful scan record, got %+v", scans.records)
	}

	// Shift the window so "now" falls outside it.
	meetings.meetings[0].StartTime = now.Add(time.Hour)
	meetings.meetings[0].EndTime = now.Add(2 * time.Hour)

	res, err = svc.Validate(context.Background(), card, "1", ResolveRoomCode)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if res.Allow {
		t.Fatal("meeting outside window still allowed")
	}
	if res.Message != "No active meeting in Room A" {
		t.Fatalf("message = %q", res.Message)
	}
}

func TestDoorWindowBoundsInclusive(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	svc, users, meetings, _ := newDoorFixture(now)

	card := "card-7"
	user, _ := users.CreateUser(context.Background(), &model.User{Email: "b@x.com", CardID: &card})
	meetings.meetings = []model.Meeting{{
		OrganizerID: user.ID,
		Room:        "Room B",
		Status:      model.MeetingScheduled,
		StartTime:   now,
		EndTime:     now,
	}}

	res, err := svc.Validate(context.Background(), card, "2", ResolveRoomCode)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !res.Allow {
		t.Fatal("boundary instant should be inside the window")
	}
}

func TestDoorInvalidRoomCodeWritesNoRecord(t *testing.T) {
	svc, _, _, scans := newDoorFixture(time.Now())

	_, err := svc.Validate(context.Background(), "card-1", "99", ResolveRoomCode)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(scans.records) != 0 {
		t.Fatalf("unresolvable room must not be audited, got %d records", len(scans.records))
	}
}

func TestDoorDirectRoomLabel(t *testing.T) {
	svc, _, _, _ := newDoorFixture(time.Now())

	res, err := svc.Validate(context.Background(), "card-1", "Room C", ResolveRoomLabel)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if res.RoomName != "Room C" {
		t.Fatalf("room = %q", res.RoomName)
	}

	if _, err := svc.Validate(context.Background(), "card-1", "   ", ResolveRoomLabel); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank label: expected ErrInvalidInput, got %v", err)
	}
}
