package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"courtops/internal/bookings/validator"
	clubserrors "courtops/internal/clubs/errors"
	"courtops/pkg/config"
	mongotx "courtops/pkg/db/mongo"
	apperrors "courtops/pkg/errors"
	"courtops/pkg/kafka"
	"courtops/pkg/logger"
	"courtops/pkg/model"
)

const (
	testClubID  = "507f1f77bcf86cd799439011"
	testCourtID = "507f1f77bcf86cd799439012"
)

type mockBookingRepository struct {
	created       []*model.Booking
	blocking      []*model.Booking
	stale         []*model.Booking
	statusUpdates map[string]string
	findByIDFunc  func(ctx context.Context, id string) (*model.Booking, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	booking.ID = fmt.Sprintf("booking-%d", len(m.created)+1)
	booking.CreatedAt = time.Now()
	m.created = append(m.created, booking)
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockBookingRepository) FindBlockingByCourtAndWindow(ctx context.Context, courtID string, start, end time.Time) ([]*model.Booking, error) {
	var out []*model.Booking
	for _, b := range append(m.blocking, m.created...) {
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
	return m.stale, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	if m.statusUpdates == nil {
		m.statusUpdates = map[string]string{}
	}
	m.statusUpdates[id] = status
	return nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

type mockSlotLockRepository struct {
	held     map[string]bool
	acquired []string
	released []string
}

func (m *mockSlotLockRepository) Create(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
	if m.held[lock.ID] {
		return nil, mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
	}
	m.acquired = append(m.acquired, lock.ID)
	return lock, nil
}

func (m *mockSlotLockRepository) Delete(ctx context.Context, lockID string) error {
	m.released = append(m.released, lockID)
	return nil
}

func (m *mockSlotLockRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}

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
	court *model.Court
}

func (m *mockCourtRepository) Create(ctx context.Context, court *model.Court) error {
	return nil
}

func (m *mockCourtRepository) FindByID(ctx context.Context, id string) (*model.Court, error) {
	if m.court != nil && m.court.ID == id {
		return m.court, nil
	}
	return nil, clubserrors.ErrCourtNotFound
}

func (m *mockCourtRepository) FindByClub(ctx context.Context, clubID string, includeInactive bool) ([]*model.Court, error) {
	if m.court != nil {
		return []*model.Court{m.court}, nil
	}
	return nil, nil
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
	m.rules = append(m.rules, rule)
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

type capturingPublisher struct {
	messages []kafka.Message
}

func (p *capturingPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	p.messages = append(p.messages, msg)
	return nil
}

func newTestConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   logger.LevelError,
			Format:  logger.FormatJSON,
			Service: "test",
		}),
		SlotLockTTL:       30 * time.Second,
		RecurringMaxWeeks: 52,
		StalePendingTTL:   30 * time.Minute,
	}
}

func testClub() *model.ClubScheduleConfig {
	return &model.ClubScheduleConfig{
		ID:              testClubID,
		Name:            "Club Norte Padel",
		Slug:            "club-norte-padel",
		OpenTime:        "08:00",
		CloseTime:       "23:30",
		SlotDurationMin: 90,
		TimeZone:        "America/Argentina/Buenos_Aires",
	}
}

func testCourt() *model.Court {
	return &model.Court{
		ID:     testCourtID,
		ClubID: testClubID,
		Name:   "Cancha 1",
		Sport:  "padel",
		Active: true,
	}
}

func testRules() []*model.PriceRule {
	return []*model.PriceRule{
		{
			ID:        "507f1f77bcf86cd799439021",
			ClubID:    testClubID,
			Name:      "Base rate",
			StartTime: "00:00",
			EndTime:   "23:59",
			Price:     800000,
			Priority:  0,
		},
	}
}

type testEnv struct {
	service     BookingService
	bookingRepo *mockBookingRepository
	lockRepo    *mockSlotLockRepository
	publisher   *capturingPublisher
	cfg         *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := newTestConfig()
	bookingRepo := &mockBookingRepository{}
	lockRepo := &mockSlotLockRepository{held: map[string]bool{}}
	publisher := &capturingPublisher{}

	svc := NewBookingService(
		bookingRepo,
		lockRepo,
		&mockClubRepository{club: testClub()},
		&mockCourtRepository{court: testCourt()},
		&mockPriceRuleRepository{rules: testRules()},
		validator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	return &testEnv{
		service:     svc,
		bookingRepo: bookingRepo,
		lockRepo:    lockRepo,
		publisher:   publisher,
		cfg:         cfg,
	}
}

func createRequest() *validator.CreateBookingRequest {
	return &validator.CreateBookingRequest{
		ClubID:      testClubID,
		CourtID:     testCourtID,
		ClientName:  "Marta Diaz",
		ClientPhone: "11 2345-6789",
		Date:        "2027-03-15",
		StartTime:   "09:30",
	}
}

func mustLoadLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load location %s: %v", name, err)
	}
	return loc
}

func TestBookingService_Create(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.service.Create(context.Background(), createRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(created))
	}

	b := created[0]
	loc := mustLoadLocation(t, "America/Argentina/Buenos_Aires")
	wantStart := time.Date(2027, 3, 15, 9, 30, 0, 0, loc)
	if !b.StartTime.Equal(wantStart) {
		t.Errorf("start time = %v, want %v", b.StartTime, wantStart)
	}
	if !b.EndTime.Equal(wantStart.Add(90 * time.Minute)) {
		t.Errorf("end time = %v, want %v", b.EndTime, wantStart.Add(90*time.Minute))
	}
	if b.Status != model.StatusPending {
		t.Errorf("status = %s, want %s", b.Status, model.StatusPending)
	}
	if b.Price != 800000 {
		t.Errorf("price = %d, want 800000", b.Price)
	}
	if b.PaymentStatus != model.PaymentUnpaid {
		t.Errorf("payment status = %s, want %s", b.PaymentStatus, model.PaymentUnpaid)
	}
	if b.ClientPhone != "+541123456789" {
		t.Errorf("phone = %s, want +541123456789", b.ClientPhone)
	}

	if len(env.publisher.messages) != 1 {
		t.Fatalf("expected 1 event, got %d", len(env.publisher.messages))
	}
	msg := env.publisher.messages[0]
	if msg.GetEventType() != "booking.created" {
		t.Errorf("event type = %s, want booking.created", msg.GetEventType())
	}
	if msg.Key != testCourtID {
		t.Errorf("event key = %s, want court ID", msg.Key)
	}

	if len(env.lockRepo.acquired) != 1 || len(env.lockRepo.released) != 1 {
		t.Errorf("lock acquired/released = %d/%d, want 1/1", len(env.lockRepo.acquired), len(env.lockRepo.released))
	}
}

func TestBookingService_Create_Conflict(t *testing.T) {
	env := newTestEnv(t)
	loc := mustLoadLocation(t, "America/Argentina/Buenos_Aires")
	start := time.Date(2027, 3, 15, 9, 30, 0, 0, loc)
	env.bookingRepo.blocking = []*model.Booking{{
		ID:        "existing",
		CourtID:   testCourtID,
		StartTime: start,
		EndTime:   start.Add(90 * time.Minute),
		Status:    model.StatusConfirmed,
	}}

	_, err := env.service.Create(context.Background(), createRequest())
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeConflict)
	}
	if len(env.bookingRepo.created) != 0 {
		t.Errorf("expected no bookings created, got %d", len(env.bookingRepo.created))
	}
	if len(env.publisher.messages) != 0 {
		t.Errorf("expected no events, got %d", len(env.publisher.messages))
	}
}

func TestBookingService_Create_CanceledDoesNotBlock(t *testing.T) {
	env := newTestEnv(t)
	loc := mustLoadLocation(t, "America/Argentina/Buenos_Aires")
	start := time.Date(2027, 3, 15, 9, 30, 0, 0, loc)
	env.bookingRepo.blocking = []*model.Booking{{
		ID:        "canceled",
		CourtID:   testCourtID,
		StartTime: start,
		EndTime:   start.Add(90 * time.Minute),
		Status:    model.StatusCanceled,
	}}

	created, err := env.service.Create(context.Background(), createRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(created))
	}
}

func TestBookingService_Create_LockHeld(t *testing.T) {
	env := newTestEnv(t)
	loc := mustLoadLocation(t, "America/Argentina/Buenos_Aires")
	start := time.Date(2027, 3, 15, 9, 30, 0, 0, loc)
	lockID := fmt.Sprintf("slot_lock_%s_%s_%d", testClubID, testCourtID, start.Unix())
	env.lockRepo.held[lockID] = true

	_, err := env.service.Create(context.Background(), createRequest())
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeConflict)
	}
}

func TestBookingService_Create_OffGrid(t *testing.T) {
	env := newTestEnv(t)

	req := createRequest()
	req.StartTime = "09:00" // grid runs 08:00, 09:30, 11:00, ...

	_, err := env.service.Create(context.Background(), req)
	if err == nil {
		t.Fatal("expected error for off-grid start")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeInvalidInput)
	}
}

func TestBookingService_Create_RecurringSkipsOccupied(t *testing.T) {
	env := newTestEnv(t)
	loc := mustLoadLocation(t, "America/Argentina/Buenos_Aires")

	// Second week's slot is taken; weeks one and three should book.
	week2 := time.Date(2027, 3, 22, 9, 30, 0, 0, loc)
	env.bookingRepo.blocking = []*model.Booking{{
		ID:        "existing",
		CourtID:   testCourtID,
		StartTime: week2,
		EndTime:   week2.Add(90 * time.Minute),
		Status:    model.StatusPending,
	}}

	req := createRequest()
	req.RecurringWeeks = 3

	created, err := env.service.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(created))
	}
	if created[0].RecurringID == "" || created[0].RecurringID != created[1].RecurringID {
		t.Error("expected all occurrences to share one recurring ID")
	}
	if !created[1].StartTime.Equal(time.Date(2027, 3, 29, 9, 30, 0, 0, loc)) {
		t.Errorf("third occurrence start = %v, want week three", created[1].StartTime)
	}
	if len(env.publisher.messages) != 2 {
		t.Errorf("expected 2 events, got %d", len(env.publisher.messages))
	}
}

func TestBookingService_Create_RecurringFirstOccurrenceMustSucceed(t *testing.T) {
	env := newTestEnv(t)
	loc := mustLoadLocation(t, "America/Argentina/Buenos_Aires")
	week1 := time.Date(2027, 3, 15, 9, 30, 0, 0, loc)
	env.bookingRepo.blocking = []*model.Booking{{
		ID:        "existing",
		CourtID:   testCourtID,
		StartTime: week1,
		EndTime:   week1.Add(90 * time.Minute),
		Status:    model.StatusConfirmed,
	}}

	req := createRequest()
	req.RecurringWeeks = 4

	_, err := env.service.Create(context.Background(), req)
	if err == nil {
		t.Fatal("expected error when first occurrence conflicts")
	}
	if len(env.bookingRepo.created) != 0 {
		t.Errorf("expected no bookings created, got %d", len(env.bookingRepo.created))
	}
}

func TestBookingService_Create_RecurringCapped(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.RecurringMaxWeeks = 4

	req := createRequest()
	req.RecurringWeeks = 100

	created, err := env.service.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(created) != 4 {
		t.Fatalf("expected chain capped at 4, got %d", len(created))
	}
}

func TestBookingService_Create_UnknownCourt(t *testing.T) {
	env := newTestEnv(t)

	req := createRequest()
	req.CourtID = "507f1f77bcf86cd799439099"

	_, err := env.service.Create(context.Background(), req)
	if err == nil {
		t.Fatal("expected not found error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeNotFound)
	}
}

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name     string
		price    int64
		payments []model.Payment
		want     string
	}{
		{"no payments", 800000, nil, model.PaymentUnpaid},
		{"partial", 800000, []model.Payment{{Method: "CASH", Amount: 400000}}, model.PaymentPartial},
		{"exact", 800000, []model.Payment{{Method: "CARD", Amount: 800000}}, model.PaymentPaid},
		{"split covers total", 800000, []model.Payment{{Method: "CASH", Amount: 500000}, {Method: "CARD", Amount: 300000}}, model.PaymentPaid},
		{"overpaid", 800000, []model.Payment{{Method: "TRANSFER", Amount: 900000}}, model.PaymentPaid},
		{"free slot", 0, nil, model.PaymentPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := derivePaymentStatus(tt.price, tt.payments); got != tt.want {
				t.Errorf("derivePaymentStatus(%d) = %s, want %s", tt.price, got, tt.want)
			}
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	env := newTestEnv(t)
	env.bookingRepo.findByIDFunc = func(ctx context.Context, id string) (*model.Booking, error) {
		return &model.Booking{
			ID:      id,
			ClubID:  testClubID,
			CourtID: testCourtID,
			Status:  model.StatusPending,
		}, nil
	}

	booking, err := env.service.Cancel(context.Background(), "booking-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != model.StatusCanceled {
		t.Errorf("status = %s, want %s", booking.Status, model.StatusCanceled)
	}
	if env.bookingRepo.statusUpdates["booking-1"] != model.StatusCanceled {
		t.Error("expected repository status update to CANCELED")
	}
	if len(env.publisher.messages) != 1 || env.publisher.messages[0].GetEventType() != "booking.canceled" {
		t.Error("expected one booking.canceled event")
	}
}

func TestBookingService_Cancel_AlreadyCanceled(t *testing.T) {
	env := newTestEnv(t)
	env.bookingRepo.findByIDFunc = func(ctx context.Context, id string) (*model.Booking, error) {
		return &model.Booking{ID: id, Status: model.StatusCanceled}, nil
	}

	_, err := env.service.Cancel(context.Background(), "booking-1")
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeConflict)
	}
}

func TestBookingService_MarkNoShow(t *testing.T) {
	env := newTestEnv(t)
	env.bookingRepo.findByIDFunc = func(ctx context.Context, id string) (*model.Booking, error) {
		return &model.Booking{
			ID:      id,
			ClubID:  testClubID,
			CourtID: testCourtID,
			Status:  model.StatusConfirmed,
		}, nil
	}

	booking, err := env.service.MarkNoShow(context.Background(), "booking-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != model.StatusNoShow {
		t.Errorf("status = %s, want %s", booking.Status, model.StatusNoShow)
	}
	if len(env.publisher.messages) != 1 || env.publisher.messages[0].GetEventType() != "booking.no_show" {
		t.Error("expected one booking.no_show event")
	}
}

func TestBookingService_RevertNoShow(t *testing.T) {
	loc := time.FixedZone("ART", -3*60*60)
	start := time.Date(2027, 3, 15, 9, 30, 0, 0, loc)

	tests := []struct {
		name     string
		status   string
		blocking []*model.Booking
		wantCode string
	}{
		{
			name:   "reverts to confirmed",
			status: model.StatusNoShow,
		},
		{
			name:   "rejects non no-show",
			status: model.StatusPending,
			wantCode: apperrors.CodeConflict,
		},
		{
			name:   "rejects when slot rebooked",
			status: model.StatusNoShow,
			blocking: []*model.Booking{{
				ID:        "other",
				CourtID:   testCourtID,
				StartTime: start,
				EndTime:   start.Add(90 * time.Minute),
				Status:    model.StatusConfirmed,
			}},
			wantCode: apperrors.CodeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.bookingRepo.blocking = tt.blocking
			env.bookingRepo.findByIDFunc = func(ctx context.Context, id string) (*model.Booking, error) {
				return &model.Booking{
					ID:        id,
					ClubID:    testClubID,
					CourtID:   testCourtID,
					StartTime: start,
					EndTime:   start.Add(90 * time.Minute),
					Status:    tt.status,
				}, nil
			}

			booking, err := env.service.RevertNoShow(context.Background(), "booking-1")
			if tt.wantCode != "" {
				if err == nil {
					t.Fatal("expected error")
				}
				if appErr := apperrors.AsAppError(err); appErr.Code != tt.wantCode {
					t.Errorf("code = %s, want %s", appErr.Code, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if booking.Status != model.StatusConfirmed {
				t.Errorf("status = %s, want %s", booking.Status, model.StatusConfirmed)
			}
		})
	}
}

func TestBookingService_SweepStalePending(t *testing.T) {
	env := newTestEnv(t)
	env.bookingRepo.stale = []*model.Booking{
		{ID: "stale-1", ClubID: testClubID, CourtID: testCourtID, Status: model.StatusPending},
		{ID: "stale-2", ClubID: testClubID, CourtID: testCourtID, Status: model.StatusPending},
	}

	released, err := env.service.SweepStalePending(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if released != 2 {
		t.Errorf("released = %d, want 2", released)
	}
	for _, id := range []string{"stale-1", "stale-2"} {
		if env.bookingRepo.statusUpdates[id] != model.StatusCanceled {
			t.Errorf("expected %s canceled", id)
		}
	}
	if len(env.publisher.messages) != 2 {
		t.Errorf("expected 2 freed events, got %d", len(env.publisher.messages))
	}
	for _, msg := range env.publisher.messages {
		if !strings.Contains(msg.GetEventType(), "canceled") {
			t.Errorf("event type = %s, want canceled", msg.GetEventType())
		}
	}
}
