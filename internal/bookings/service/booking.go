package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "courtops/internal/bookings/errors"
	"courtops/internal/bookings/repository"
	"courtops/internal/bookings/validator"
	clubsrepository "courtops/internal/clubs/repository"
	"courtops/pkg/config"
	apperrors "courtops/pkg/errors"
	"courtops/pkg/events"
	"courtops/pkg/kafka"
	"courtops/pkg/localtime"
	"courtops/pkg/middleware"
	"courtops/pkg/model"
	"courtops/pkg/sanitizer"
	"courtops/pkg/schedule"
)

// EventPublisher is the slice of the Kafka producer the booking service
// needs. A nil publisher disables event emission.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type BookingService interface {
	Create(ctx context.Context, req *validator.CreateBookingRequest) ([]*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	ListDay(ctx context.Context, clubID, courtID, date string) ([]*model.Booking, error)
	Cancel(ctx context.Context, id string) (*model.Booking, error)
	MarkNoShow(ctx context.Context, id string) (*model.Booking, error)
	RevertNoShow(ctx context.Context, id string) (*model.Booking, error)
	SweepStalePending(ctx context.Context) (int, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.SlotLockRepository
	clubRepo  clubsrepository.ClubRepository
	courtRepo clubsrepository.CourtRepository
	ruleRepo  clubsrepository.PriceRuleRepository
	validator *validator.BookingValidator
	publisher EventPublisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.SlotLockRepository,
	clubRepo clubsrepository.ClubRepository,
	courtRepo clubsrepository.CourtRepository,
	ruleRepo clubsrepository.PriceRuleRepository,
	validator *validator.BookingValidator,
	publisher EventPublisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		clubRepo:  clubRepo,
		courtRepo: courtRepo,
		ruleRepo:  ruleRepo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// slotContext carries everything resolved once per create request: the
// club, the court, the club's location and the club's price rules.
type slotContext struct {
	club  *model.ClubScheduleConfig
	court *model.Court
	loc   *time.Location
	rules []*model.PriceRule
}

// Create books one slot, or a weekly chain of slots when RecurringWeeks is
// above one. The first occurrence must succeed; later occurrences that hit
// an occupied slot are skipped, so a chain books around existing traffic.
func (s *bookingService) Create(ctx context.Context, req *validator.CreateBookingRequest) ([]*model.Booking, error) {
	if err := s.validator.ValidateCreateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking request validation failed", "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	sc, err := s.loadSlotContext(ctx, req.ClubID, req.CourtID)
	if err != nil {
		return nil, err
	}

	phone := sanitizer.NormalizePhoneForZone(req.ClientPhone, sc.club.TimeZone)
	if phone == "" {
		return nil, apperrors.Validation("Client phone could not be normalized", map[string]any{
			"phone": req.ClientPhone,
		})
	}

	day, err := localtime.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.InvalidInput("Date must use the YYYY-MM-DD layout")
	}
	clock, err := localtime.ParseClock(req.StartTime)
	if err != nil {
		return nil, apperrors.InvalidInput("Start time must be a 24h clock value (HH:MM)")
	}

	occurrences := 1
	recurringID := ""
	if req.RecurringWeeks > 1 {
		occurrences = req.RecurringWeeks
		if occurrences > s.cfg.RecurringMaxWeeks {
			occurrences = s.cfg.RecurringMaxWeeks
		}
		recurringID = uuid.New().String()
	}

	var created []*model.Booking
	for week := 0; week < occurrences; week++ {
		occurrenceDay := day.AddDays(7 * week)
		booking, err := s.createOccurrence(ctx, sc, req, phone, occurrenceDay, clock, recurringID)
		if err != nil {
			if week == 0 {
				return nil, err
			}
			if isSlotTaken(err) {
				s.cfg.Log.Info("Skipping occupied recurring occurrence",
					"recurring_id", recurringID,
					"date", occurrenceDay.String(),
					"court_id", req.CourtID,
				)
				continue
			}
			return nil, err
		}
		created = append(created, booking)
	}

	for _, b := range created {
		s.publishEvent(ctx, events.TypeBookingCreated, b)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", created[0].ID,
		"club_id", req.ClubID,
		"court_id", req.CourtID,
		"occurrences", len(created),
		"recurring_id", recurringID,
	)
	return created, nil
}

func (s *bookingService) createOccurrence(
	ctx context.Context,
	sc *slotContext,
	req *validator.CreateBookingRequest,
	phone string,
	day localtime.Date,
	clock localtime.Clock,
	recurringID string,
) (*model.Booking, error) {
	start, err := localtime.BuildInstant(sc.loc, day, clock.Hour(), clock.Minute())
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("Start time does not exist on %s: %v", day, err))
	}
	end := start.Add(schedule.EffectiveDuration(sc.court, sc.club))

	if err := s.verifySlotOnGrid(sc, day, start); err != nil {
		return nil, err
	}

	price, err := s.priceFor(sc, start, req.Member)
	if err != nil {
		return nil, err
	}

	booking := &model.Booking{
		ClubID:        req.ClubID,
		CourtID:       req.CourtID,
		ClientName:    sanitizer.NormalizeName(req.ClientName),
		ClientPhone:   phone,
		StartTime:     start,
		EndTime:       end,
		Status:        model.StatusPending,
		PaymentStatus: derivePaymentStatus(price, req.Payments),
		Price:         price,
		RecurringID:   recurringID,
		Notes:         sanitizer.TrimAndNormalize(req.Notes),
	}
	if err := s.validator.Validate(booking); err != nil {
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	lockID, err := s.acquireSlotLock(ctx, req.ClubID, req.CourtID, start)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindBlockingByCourtAndWindow(sessCtx, req.CourtID, start, end)
		if err != nil {
			return apperrors.Internal("Failed to check existing bookings", err)
		}
		candidate := schedule.Interval{Start: start, End: end}
		if err := schedule.CheckConflict(candidate, existing); err != nil {
			return apperrors.Conflict(fmt.Sprintf(
				"Slot %s - %s is already booked",
				start.Format(time.RFC3339),
				end.Format(time.RFC3339),
			))
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// verifySlotOnGrid rejects starts that fall inside opening hours but off the
// slot raster, so ad hoc times cannot fragment the day.
func (s *bookingService) verifySlotOnGrid(sc *slotContext, day localtime.Date, start time.Time) error {
	starts, err := schedule.StartTimes(sc.club, sc.court, day, sc.loc)
	if err != nil {
		return apperrors.DataIntegrity("Club schedule configuration is invalid", err)
	}
	for _, t := range starts {
		if t.Equal(start) {
			return nil
		}
	}
	return apperrors.InvalidInput(bookingserrors.ErrOutsideOpeningHours.Error())
}

func (s *bookingService) priceFor(sc *slotContext, start time.Time, member bool) (int64, error) {
	lc := localtime.Components(start, sc.loc)
	price, err := schedule.ResolvePrice(sc.rules, lc.Date.Weekday(), lc.Hour*60+lc.Minute, member)
	if err != nil {
		if errors.Is(err, schedule.ErrNoPriceRule) {
			return 0, apperrors.DataIntegrity("Club has no matching price rule", err)
		}
		return 0, apperrors.Internal("Failed to resolve price", err)
	}
	return price, nil
}

func (s *bookingService) loadSlotContext(ctx context.Context, clubID, courtID string) (*slotContext, error) {
	club, err := s.clubRepo.FindByID(ctx, clubID)
	if err != nil {
		return nil, translateClubLookup(err, clubID)
	}

	court, err := s.courtRepo.FindByID(ctx, courtID)
	if err != nil {
		return nil, apperrors.NotFoundWithID("Court", courtID)
	}
	if court.ClubID != clubID {
		return nil, apperrors.InvalidInput("Court does not belong to the given club")
	}
	if !court.Active {
		return nil, apperrors.Conflict("Court is not active")
	}

	loc, err := localtime.LoadZone(club.TimeZone)
	if err != nil {
		return nil, apperrors.DataIntegrity("Club has an invalid time zone", err)
	}

	rules, err := s.ruleRepo.FindByClub(ctx, clubID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load price rules", err)
	}

	return &slotContext{club: club, court: court, loc: loc, rules: rules}, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

// ListDay returns every booking touching a club's local calendar day,
// optionally narrowed to one court. The day bounds come from the club's
// time zone, so DST transition days are 23 or 25 hours long here.
func (s *bookingService) ListDay(ctx context.Context, clubID, courtID, date string) ([]*model.Booking, error) {
	if clubID == "" {
		return nil, apperrors.InvalidInput("Club ID cannot be empty")
	}

	club, err := s.clubRepo.FindByID(ctx, clubID)
	if err != nil {
		return nil, translateClubLookup(err, clubID)
	}

	day, err := localtime.ParseDate(date)
	if err != nil {
		return nil, apperrors.InvalidInput("Date must use the YYYY-MM-DD layout")
	}
	loc, err := localtime.LoadZone(club.TimeZone)
	if err != nil {
		return nil, apperrors.DataIntegrity("Club has an invalid time zone", err)
	}

	dayStart, dayEnd := localtime.DayBounds(day, loc)
	bookings, err := s.repo.FindByClubAndWindow(ctx, clubID, courtID, dayStart, dayEnd)
	if err != nil {
		return nil, apperrors.Internal("Failed to list bookings", err)
	}

	return bookings, nil
}

func (s *bookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.Blocks() {
		return nil, apperrors.Conflict(bookingserrors.ErrNotCancelable.Error())
	}

	if err := s.repo.UpdateStatus(ctx, id, model.StatusCanceled); err != nil {
		return nil, apperrors.Internal("Failed to cancel booking", err)
	}
	booking.Status = model.StatusCanceled

	s.publishEvent(ctx, events.TypeBookingCanceled, booking)
	s.cfg.Log.Info("Booking canceled", "id", id, "court_id", booking.CourtID)
	return booking, nil
}

func (s *bookingService) MarkNoShow(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.Blocks() {
		return nil, apperrors.Conflict(bookingserrors.ErrNotNoShowable.Error())
	}

	if err := s.repo.UpdateStatus(ctx, id, model.StatusNoShow); err != nil {
		return nil, apperrors.Internal("Failed to mark booking as no-show", err)
	}
	booking.Status = model.StatusNoShow

	s.publishEvent(ctx, events.TypeBookingNoShow, booking)
	s.cfg.Log.Info("Booking marked as no-show", "id", id, "court_id", booking.CourtID)
	return booking, nil
}

// RevertNoShow restores a no-show to CONFIRMED. The slot was considered
// free in the meantime, so the interval is re-checked inside a transaction
// before the status flips back.
func (s *bookingService) RevertNoShow(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != model.StatusNoShow {
		return nil, apperrors.Conflict(bookingserrors.ErrNotNoShow.Error())
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindBlockingByCourtAndWindow(sessCtx, booking.CourtID, booking.StartTime, booking.EndTime)
		if err != nil {
			return apperrors.Internal("Failed to check existing bookings", err)
		}
		candidate := schedule.Interval{Start: booking.StartTime, End: booking.EndTime}
		if err := schedule.CheckConflict(candidate, existing); err != nil {
			return apperrors.Conflict("Slot has been rebooked since the no-show")
		}
		if err := s.repo.UpdateStatus(sessCtx, id, model.StatusConfirmed); err != nil {
			return apperrors.Internal("Failed to revert no-show", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	booking.Status = model.StatusConfirmed

	s.cfg.Log.Info("No-show reverted", "id", id, "court_id", booking.CourtID)
	return booking, nil
}

// SweepStalePending cancels PENDING bookings older than the configured TTL
// and publishes a canceled event per freed slot. Called from the cron
// sweeper; returns how many bookings were released.
func (s *bookingService) SweepStalePending(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.cfg.StalePendingTTL)
	stale, err := s.repo.FindStalePending(ctx, cutoff)
	if err != nil {
		return 0, apperrors.Internal("Failed to find stale pending bookings", err)
	}

	released := 0
	for _, booking := range stale {
		if err := s.repo.UpdateStatus(ctx, booking.ID, model.StatusCanceled); err != nil {
			s.cfg.Log.Error("Failed to cancel stale booking", "id", booking.ID, "error", err)
			continue
		}
		booking.Status = model.StatusCanceled
		s.publishEvent(ctx, events.TypeBookingCanceled, booking)
		released++
	}

	if released > 0 {
		s.cfg.Log.Info("Stale pending bookings released", "count", released, "cutoff", cutoff)
	}
	return released, nil
}

// --- Helpers ---

func derivePaymentStatus(price int64, payments []model.Payment) string {
	var sum int64
	for _, p := range payments {
		sum += p.Amount
	}
	switch {
	case sum >= price:
		return model.PaymentPaid
	case sum > 0:
		return model.PaymentPartial
	default:
		return model.PaymentUnpaid
	}
}

func translateClubLookup(err error, clubID string) error {
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.NotFoundWithID("Club", clubID)
}

func isSlotTaken(err error) bool {
	appErr := apperrors.AsAppError(err)
	return appErr.Code == apperrors.CodeConflict
}

func (s *bookingService) publishEvent(ctx context.Context, eventType string, booking *model.Booking) {
	if s.publisher == nil {
		return
	}

	payload := events.BookingEvent{
		BookingID:   booking.ID,
		ClubID:      booking.ClubID,
		CourtID:     booking.CourtID,
		StartTime:   booking.StartTime,
		EndTime:     booking.EndTime,
		Status:      booking.Status,
		Price:       booking.Price,
		RecurringID: booking.RecurringID,
		OccurredAt:  time.Now().UTC(),
	}

	correlationID := ""
	if v, ok := ctx.Value(middleware.RequestIDKey).(string); ok {
		correlationID = v
	}

	msg := kafka.NewMessage().
		WithKey(booking.CourtID).
		WithValue(payload).
		WithEventID(uuid.New().String()).
		WithEventType(eventType).
		WithCorrelationID(correlationID).
		WithSchemaVersion(events.SchemaVersion).
		WithSource("bookings").
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
	}
}

// acquireSlotLock creates an advisory lock so two requests cannot race the
// same slot between the conflict check and the insert.
func (s *bookingService) acquireSlotLock(ctx context.Context, clubID, courtID string, start time.Time) (string, error) {
	lockID := fmt.Sprintf("slot_lock_%s_%s_%d", clubID, courtID, start.Unix())

	lock := &model.SlotLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.SlotLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This slot is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire slot lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
