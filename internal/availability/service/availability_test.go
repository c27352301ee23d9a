package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	clubserrors "courtops/internal/clubs/errors"
	"courtops/pkg/config"
	mongotx "courtops/pkg/db/mongo"
	apperrors "courtops/pkg/errors"
	"courtops/pkg/logger"
	"courtops/pkg/model"
)

const (
	testClubID  = "507f1f77bcf86cd799439011"
	testCourtID = "507f1f77bcf86cd799439012"
)

type mockClubRepository struct {
	club *model.ClubScheduleConfig
}

func (m *mockClubRepository) Create(ctx context.Context, club *model.ClubScheduleConfig) error {
	return nil
}

func (m *mockClubRepository) FindByID(ctx context.Context, id string) (*model.ClubScheduleConfig, error) {
	if m.club != nil && m.club.ID == id {
		return m.club, nil
	}
	return nil, clubserrors.ErrNotFound
}

func (m *mockClubRepository) FindBySlug(ctx context.Context, slug string) (*model.ClubScheduleConfig, error) {
	return nil, clubserrors.ErrNotFound
}

func (m *mockClubRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.ClubScheduleConfig, error) {
	return nil, nil
}

func (m *mockClubRepository) Update(ctx context.Context, id string, club *model.ClubScheduleConfig) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockClubRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockClubRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}

func (m *mockClubRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

type mockCourtRepository struct {
	courts []*model.Court
}

func (m *mockCourtRepository) Create(ctx context.Context, court *model.Court) error {
	return nil
}

func (m *mockCourtRepository) FindByID(ctx context.Context, id string) (*model.Court, error) {
	for _, c := range m.courts {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, clubserrors.ErrCourtNotFound
}

func (m *mockCourtRepository) FindByClub(ctx context.Context, clubID string, includeInactive bool) ([]*model.Court, error) {
	var out []*model.Court
	for _, c := range m.courts {
		if c.ClubID == clubID && (includeInactive || c.Active) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCourtRepository) Update(ctx context.Context, id string, court *model.Court) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockCourtRepository) Deactivate(ctx context.Context, id string) error {
	return nil
}

type mockPriceRuleRepository struct {
	rules []*model.PriceRule
}

func (m *mockPriceRuleRepository) Create(ctx context.Context, rule *model.PriceRule) error {
	return nil
}

func (m *mockPriceRuleRepository) FindByID(ctx context.Context, id string) (*model.PriceRule, error) {
	return nil, clubserrors.ErrPriceRuleNotFound
}

func (m *mockPriceRuleRepository) FindByClub(ctx context.Context, clubID string) ([]*model.PriceRule, error) {
	return m.rules, nil
}

func (m *mockPriceRuleRepository) Update(ctx context.Context, id string, rule *model.PriceRule) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockPriceRuleRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockPriceRuleRepository) CountByClub(ctx context.Context, clubID string) (int64, error) {
	return int64(len(m.rules)), nil
}

type mockBookingRepository struct {
	blocking []*model.Booking
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) FindBlockingByCourtAndWindow(ctx context.Context, courtID string, start, end time.Time) ([]*model.Booking, error) {
	var out []*model.Booking
	for _, b := range m.blocking {
		if b.CourtID == courtID && b.Blocks() && b.StartTime.Before(end) && b.EndTime.After(start) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBookingRepository) FindByClubAndWindow(ctx context.Context, clubID string, courtID string, start, end time.Time) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) FindByRecurringID(ctx context.Context, recurringID string) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) FindStalePending(ctx context.Context, olderThan time.Time) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	return nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

func newTestService(bookingRepo *mockBookingRepository) AvailabilityService {
	cfg := &config.Config{
		Log: logger.New(logger.Config{
			Level:   logger.LevelError,
			Format:  logger.FormatJSON,
			Service: "test",
		}),
	}
	clubRepo := &mockClubRepository{club: &model.ClubScheduleConfig{
		ID:              testClubID,
		Name:            "Club Norte Padel",
		Slug:            "club-norte-padel",
		OpenTime:        "08:00",
		CloseTime:       "12:30",
		SlotDurationMin: 90,
		TimeZone:        "America/Argentina/Buenos_Aires",
	}}
	courtRepo := &mockCourtRepository{courts: []*model.Court{
		{ID: testCourtID, ClubID: testClubID, Name: "Cancha 1", Sport: "padel", Active: true},
	}}
	ruleRepo := &mockPriceRuleRepository{rules: []*model.PriceRule{
		{ID: "507f1f77bcf86cd799439021", ClubID: testClubID, Name: "Base rate",
			StartTime: "00:00", EndTime: "23:59", Price: 800000, Priority: 0},
	}}
	return NewAvailabilityService(clubRepo, courtRepo, ruleRepo, bookingRepo, cfg)
}

func TestAvailabilityService_CourtDay(t *testing.T) {
	loc, _ := time.LoadLocation("America/Argentina/Buenos_Aires")
	booked := time.Date(2027, 3, 15, 9, 30, 0, 0, loc)

	bookingRepo := &mockBookingRepository{blocking: []*model.Booking{{
		ID:        "booking-1",
		CourtID:   testCourtID,
		StartTime: booked,
		EndTime:   booked.Add(90 * time.Minute),
		Status:    model.StatusConfirmed,
	}}}
	svc := newTestService(bookingRepo)

	grid, err := svc.CourtDay(context.Background(), testClubID, testCourtID, "2027-03-15", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 08:00 to 12:30 at 90 minutes yields 08:00, 09:30 and 11:00
	if len(grid.Slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(grid.Slots))
	}
	wantAvailable := []bool{true, false, true}
	for i, slot := range grid.Slots {
		if slot.Available != wantAvailable[i] {
			t.Errorf("slot %d available = %v, want %v", i, slot.Available, wantAvailable[i])
		}
		if slot.Price != 800000 {
			t.Errorf("slot %d price = %d, want 800000", i, slot.Price)
		}
	}
	if grid.TimeZone != "America/Argentina/Buenos_Aires" {
		t.Errorf("time zone = %s", grid.TimeZone)
	}
}

func TestAvailabilityService_ClubDay(t *testing.T) {
	svc := newTestService(&mockBookingRepository{})

	grids, err := svc.ClubDay(context.Background(), testClubID, "2027-03-15", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grids) != 1 {
		t.Fatalf("expected 1 court grid, got %d", len(grids))
	}
	if len(grids[0].Slots) != 3 {
		t.Errorf("expected 3 slots, got %d", len(grids[0].Slots))
	}
}

func TestAvailabilityService_QuoteSlot(t *testing.T) {
	svc := newTestService(&mockBookingRepository{})

	quote, err := svc.QuoteSlot(context.Background(), testClubID, testCourtID, "2027-03-15", "09:30", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !quote.Available {
		t.Error("expected slot to be available")
	}
	if quote.Price != 800000 {
		t.Errorf("price = %d, want 800000", quote.Price)
	}

	loc, _ := time.LoadLocation("America/Argentina/Buenos_Aires")
	wantStart := time.Date(2027, 3, 15, 9, 30, 0, 0, loc)
	if !quote.StartTime.Equal(wantStart) {
		t.Errorf("start = %v, want %v", quote.StartTime, wantStart)
	}
	if !quote.EndTime.Equal(wantStart.Add(90 * time.Minute)) {
		t.Errorf("end = %v, want 90 minutes after start", quote.EndTime)
	}
}

func TestAvailabilityService_QuoteSlot_OffGrid(t *testing.T) {
	svc := newTestService(&mockBookingRepository{})

	_, err := svc.QuoteSlot(context.Background(), testClubID, testCourtID, "2027-03-15", "09:00", false)
	if err == nil {
		t.Fatal("expected error for off-grid start")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeInvalidInput)
	}
}

func TestAvailabilityService_UnknownClub(t *testing.T) {
	svc := newTestService(&mockBookingRepository{})

	_, err := svc.CourtDay(context.Background(), "507f1f77bcf86cd799439099", testCourtID, "2027-03-15", false)
	if err == nil {
		t.Fatal("expected not found error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeNotFound)
	}
}
