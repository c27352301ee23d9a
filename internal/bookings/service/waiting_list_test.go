package service

import (
	"context"
	"fmt"
	"testing"

	bookingserrors "courtops/internal/bookings/errors"
	"courtops/internal/bookings/validator"
	apperrors "courtops/pkg/errors"
	"courtops/pkg/model"
)

type mockWaitingListRepository struct {
	entries       []*model.WaitingListEntry
	statusUpdates map[string]string
}

func (m *mockWaitingListRepository) Create(ctx context.Context, entry *model.WaitingListEntry) error {
	entry.ID = fmt.Sprintf("entry-%d", len(m.entries)+1)
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockWaitingListRepository) FindByID(ctx context.Context, id string) (*model.WaitingListEntry, error) {
	for _, e := range m.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, bookingserrors.ErrEntryNotFound
}

func (m *mockWaitingListRepository) FindByClubAndDate(ctx context.Context, clubID, date string, statuses []string) ([]*model.WaitingListEntry, error) {
	var out []*model.WaitingListEntry
	for _, e := range m.entries {
		if e.ClubID != clubID || e.Date != date {
			continue
		}
		if len(statuses) > 0 {
			match := false
			for _, st := range statuses {
				if e.Status == st {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *mockWaitingListRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	if m.statusUpdates == nil {
		m.statusUpdates = map[string]string{}
	}
	for _, e := range m.entries {
		if e.ID == id {
			e.Status = status
			m.statusUpdates[id] = status
			return nil
		}
	}
	return bookingserrors.ErrEntryNotFound
}

func newWaitingListService(repo *mockWaitingListRepository) WaitingListService {
	cfg := newTestConfig()
	return NewWaitingListService(
		repo,
		&mockClubRepository{club: testClub()},
		validator.NewBookingValidator(cfg.Log),
		cfg,
	)
}

func TestWaitingListService_Add(t *testing.T) {
	repo := &mockWaitingListRepository{}
	svc := newWaitingListService(repo)

	entry := &model.WaitingListEntry{
		ClubID: testClubID,
		Date:   "2027-03-15",
		Name:   "  Pedro  Alvarez ",
		Phone:  "11 2345-6789",
	}

	if err := svc.Add(context.Background(), entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Status != model.WaitingPending {
		t.Errorf("status = %s, want %s", entry.Status, model.WaitingPending)
	}
	if entry.Phone != "+541123456789" {
		t.Errorf("phone = %s, want +541123456789", entry.Phone)
	}
	if entry.Name != "Pedro Alvarez" {
		t.Errorf("name = %q, want %q", entry.Name, "Pedro Alvarez")
	}
}

func TestWaitingListService_Add_UnknownClub(t *testing.T) {
	svc := newWaitingListService(&mockWaitingListRepository{})

	entry := &model.WaitingListEntry{
		ClubID: "507f1f77bcf86cd799439099",
		Date:   "2027-03-15",
		Name:   "Pedro Alvarez",
		Phone:  "+541123456789",
	}

	err := svc.Add(context.Background(), entry)
	if err == nil {
		t.Fatal("expected not found error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeNotFound)
	}
}

func TestWaitingListService_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantErr  bool
	}{
		{"fulfilled", model.WaitingFulfilled, false},
		{"deleted", model.WaitingDeleted, false},
		{"notified is not a resolution", model.WaitingNotified, true},
		{"pending is not a resolution", model.WaitingPending, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockWaitingListRepository{entries: []*model.WaitingListEntry{
				{ID: "entry-1", ClubID: testClubID, Date: "2027-03-15", Status: model.WaitingPending},
			}}
			svc := newWaitingListService(repo)

			err := svc.Resolve(context.Background(), "entry-1", tt.status)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if repo.statusUpdates["entry-1"] != tt.status {
				t.Errorf("status = %s, want %s", repo.statusUpdates["entry-1"], tt.status)
			}
		})
	}
}

func TestWaitingListService_Resolve_NotFound(t *testing.T) {
	svc := newWaitingListService(&mockWaitingListRepository{})

	err := svc.Resolve(context.Background(), "entry-404", model.WaitingFulfilled)
	if err == nil {
		t.Fatal("expected not found error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeNotFound)
	}
}
